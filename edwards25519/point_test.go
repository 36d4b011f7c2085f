package edwards25519

import (
	"bytes"
	"testing"

	"github.com/ycrypto/salty/scalar"
)

func TestIdentityRoundTrip(t *testing.T) {
	id := NewIdentityPoint()
	decoded, err := new(Point).SetBytes(id.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Equal(id) != 1 {
		t.Fatal("identity did not round-trip through Bytes/SetBytes")
	}
}

func TestGeneratorRoundTrip(t *testing.T) {
	g := NewGeneratorPoint()
	decoded, err := new(Point).SetBytes(g.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Equal(g) != 1 {
		t.Fatal("base point did not round-trip through Bytes/SetBytes")
	}
}

func TestAddGeneratorToIdentity(t *testing.T) {
	g := NewGeneratorPoint()
	id := NewIdentityPoint()
	sum := new(Point).Add(g, id)
	if sum.Equal(g) != 1 {
		t.Fatal("B + identity != B")
	}
}

func TestScalarMultByZeroIsIdentity(t *testing.T) {
	zero := scalar.Zero()
	g := NewGeneratorPoint()
	got := new(Point).ScalarMult(zero, g)
	if got.Equal(NewIdentityPoint()) != 1 {
		t.Fatalf("0*B = %x, want identity", got.Bytes())
	}
}

func TestScalarMultByOneIsIdentityOperation(t *testing.T) {
	one := scalar.ReduceWide([]byte{1})
	g := NewGeneratorPoint()
	got := new(Point).ScalarMult(one, g)
	if got.Equal(g) != 1 {
		t.Fatalf("1*B != B")
	}
}

func TestTwoBIsBPlusB(t *testing.T) {
	g := NewGeneratorPoint()
	two := scalar.ReduceWide([]byte{2})

	viaAdd := new(Point).Add(g, g)
	viaMult := new(Point).ScalarMult(two, g)

	if viaAdd.Equal(viaMult) != 1 {
		t.Fatalf("B+B != 2*B")
	}
}

func TestNegateThenAddIsIdentity(t *testing.T) {
	g := NewGeneratorPoint()
	negG := new(Point).Negate(g)
	sum := new(Point).Add(g, negG)
	if sum.Equal(NewIdentityPoint()) != 1 {
		t.Fatalf("B + (-B) != identity, got %x", sum.Bytes())
	}
}

func TestSetBytesRejectsGarbage(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	if _, err := new(Point).SetBytes(b[:]); err == nil {
		t.Fatal("SetBytes accepted an invalid compressed point")
	}
}

func TestToMontgomeryUMatchesBasepoint(t *testing.T) {
	g := NewGeneratorPoint()
	u := g.ToMontgomeryU()
	// u=9 is the standard Curve25519 base point.
	want := make([]byte, 32)
	want[0] = 9
	if !bytes.Equal(u.Bytes(), want) {
		t.Fatalf("edwards25519 basepoint maps to u=%x, want %x", u.Bytes(), want)
	}
}
