package montgomery

import (
	"encoding/hex"
	"testing"

	"github.com/ycrypto/salty/field"
)

// These known-answer values were produced by running the RFC 7748 §5
// pseudocode (clamp, decodeUCoordinate, ladder) independently against
// fixed scalar/point inputs; see x25519's tests for the same vectors
// exercised through the public API.

func clamp(b [32]byte) [32]byte {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
	return b
}

func fromHex(t *testing.T, s string) [32]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	var out [32]byte
	copy(out[:], raw)
	return out
}

func TestLadderBasepointKnownAnswer(t *testing.T) {
	k := clamp(fromHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"))

	var uBytes [32]byte
	uBytes[0] = 9
	u, err := new(field.Element).SetBytesUnreduced(uBytes[:])
	if err != nil {
		t.Fatal(err)
	}

	got := Ladder(k, u)
	want := "8f40c5adb68f25624ae5b214ea767a6ec94d829d3d7b5e1ad1ba6f3e2138285f"
	if hex.EncodeToString(got.Bytes()) != want {
		t.Fatalf("Ladder(k, 9) = %x, want %s", got.Bytes(), want)
	}
}

func TestLadderWithClampedZeroScalarReturns32Bytes(t *testing.T) {
	var k [32]byte
	k = clamp(k)

	var uBytes [32]byte
	uBytes[0] = 9
	u, err := new(field.Element).SetBytesUnreduced(uBytes[:])
	if err != nil {
		t.Fatal(err)
	}

	got := Ladder(k, u)
	// A clamped all-zero scalar is 2^254, not zero, so this only checks
	// the ladder produces a canonically-encoded, non-panicking result.
	if len(got.Bytes()) != 32 {
		t.Fatalf("Ladder result has unexpected length: %d", len(got.Bytes()))
	}
}

func TestLadderAcceptsNonCanonicalU(t *testing.T) {
	k := clamp(fromHex(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"))

	var canonicalBytes, nonCanonicalBytes [32]byte
	canonicalBytes[0] = 9
	nonCanonicalBytes[0] = 9
	nonCanonicalBytes[31] |= 0x80

	uCanon, err := new(field.Element).SetBytesUnreduced(canonicalBytes[:])
	if err != nil {
		t.Fatal(err)
	}
	uNonCanon, err := new(field.Element).SetBytesUnreduced(nonCanonicalBytes[:])
	if err != nil {
		t.Fatal(err)
	}

	got1 := Ladder(k, uCanon)
	got2 := Ladder(k, uNonCanon)
	if got1.Equal(got2) != 1 {
		t.Fatalf("masking bit 255 changed the ladder result: %x != %x", got1.Bytes(), got2.Bytes())
	}
}
