package field

import (
	"math/rand"
	"testing"

	filippofield "filippo.io/edwards25519/field"
)

// These tests cross-check this package's arithmetic against
// filippo.io/edwards25519/field, a well-reviewed reference
// implementation of the same field, on pseudo-randomly generated
// inputs. This never substitutes for the from-scratch implementation
// itself (spec.md's explicit mandate): it is a second opinion run in
// tests only, using a fixed PRNG seed rather than any entropy source,
// per this module's no-RNG stance.
func randElementPair(r *rand.Rand) (*Element, *filippofield.Element, []byte) {
	b := make([]byte, 32)
	r.Read(b)

	ours, err := new(Element).SetBytesUnreduced(b)
	if err != nil {
		panic(err)
	}
	theirs, err := new(filippofield.Element).SetBytes(b)
	if err != nil {
		panic(err)
	}
	return ours, theirs, b
}

func TestOracleAddAgreesWithFilippo(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		a, fa, _ := randElementPair(r)
		b, fb, _ := randElementPair(r)

		got := new(Element).Add(a, b)
		want := new(filippofield.Element).Add(fa, fb)

		if string(got.Bytes()) != string(want.Bytes()) {
			t.Fatalf("iteration %d: Add disagrees with filippo/field: %x != %x", i, got.Bytes(), want.Bytes())
		}
	}
}

func TestOracleMultiplyAgreesWithFilippo(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 64; i++ {
		a, fa, _ := randElementPair(r)
		b, fb, _ := randElementPair(r)

		got := new(Element).Multiply(a, b)
		want := new(filippofield.Element).Multiply(fa, fb)

		if string(got.Bytes()) != string(want.Bytes()) {
			t.Fatalf("iteration %d: Multiply disagrees with filippo/field: %x != %x", i, got.Bytes(), want.Bytes())
		}
	}
}

func TestOracleSquareAgreesWithFilippo(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 64; i++ {
		a, fa, _ := randElementPair(r)

		got := new(Element).Square(a)
		want := new(filippofield.Element).Square(fa)

		if string(got.Bytes()) != string(want.Bytes()) {
			t.Fatalf("iteration %d: Square disagrees with filippo/field: %x != %x", i, got.Bytes(), want.Bytes())
		}
	}
}

func TestOracleInvertAgreesWithFilippo(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 64; i++ {
		a, fa, b := randElementPair(r)
		if isAllZero(b) {
			continue
		}

		got := new(Element).Invert(a)
		want := new(filippofield.Element).Invert(fa)

		if string(got.Bytes()) != string(want.Bytes()) {
			t.Fatalf("iteration %d: Invert disagrees with filippo/field: %x != %x", i, got.Bytes(), want.Bytes())
		}
	}
}

func isAllZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
