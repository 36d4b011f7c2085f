package field

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestOnePlusOne(t *testing.T) {
	one := new(Element).One()
	two := new(Element).Add(one, one)
	want := two.Bytes()

	expected := new(Element)
	expected.l[0] = 2
	if !bytes.Equal(expected.Bytes(), want) {
		t.Fatalf("1+1 = %x, want %x", want, expected.Bytes())
	}
}

func TestMultiplyByZero(t *testing.T) {
	one := new(Element).One()
	zero := new(Element).Zero()
	got := new(Element).Multiply(one, zero)
	if got.Equal(zero) != 1 {
		t.Fatalf("1*0 = %x, want 0", got.Bytes())
	}
}

func TestImaginaryUnit(t *testing.T) {
	minusOne := new(Element).Negate(new(Element).One())
	iSquared := new(Element).Multiply(SqrtM1(), SqrtM1())
	if minusOne.Equal(iSquared) != 1 {
		t.Fatalf("i^2 = %x, want -1 = %x", iSquared.Bytes(), minusOne.Bytes())
	}
}

func TestInverse(t *testing.T) {
	d := D()
	inv := new(Element).Invert(d)
	one := new(Element).Multiply(d, inv)
	want := new(Element).One()
	if one.Equal(want) != 1 {
		t.Fatalf("d * d^-1 = %x, want 1", one.Bytes())
	}
}

func TestSqrtRatioPerfectSquare(t *testing.T) {
	two := new(Element).Add(new(Element).One(), new(Element).One())
	four := new(Element).Multiply(two, two)
	one := new(Element).One()

	r, wasSquare := new(Element).SqrtRatio(four, one)
	if wasSquare != 1 {
		t.Fatalf("4 should be a square mod p")
	}
	square := new(Element).Multiply(r, r)
	if square.Equal(four) != 1 {
		t.Fatalf("sqrt(4)^2 = %x, want 4 = %x", square.Bytes(), four.Bytes())
	}
}

func TestSetBytesRejectsNonCanonical(t *testing.T) {
	// p = 2^255-19; its own little-endian encoding is the smallest
	// non-canonical representative (it would decode to 0 if accepted).
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	b[0] = 0xed
	b[31] = 0x7f

	if _, err := new(Element).SetBytes(b[:]); err == nil {
		t.Fatal("SetBytes accepted p itself as canonical")
	}
}

func TestAddMultiplyAgainstRandomSmallIntegers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		a := rng.Intn(50)
		b := rng.Intn(50)

		fa := smallInt(a)
		fb := smallInt(b)

		sum := new(Element).Add(fa, fb)
		want := smallInt(a + b)
		if sum.Equal(want) != 1 {
			t.Fatalf("%d + %d: got %x want %x", a, b, sum.Bytes(), want.Bytes())
		}

		prod := new(Element).Multiply(fa, fb)
		wantProd := smallInt(a * b)
		if prod.Equal(wantProd) != 1 {
			t.Fatalf("%d * %d: got %x want %x", a, b, prod.Bytes(), wantProd.Bytes())
		}
	}
}

func smallInt(v int) *Element {
	e := new(Element)
	for i := 0; i < v; i++ {
		e.Add(e, feOne)
	}
	return e
}
