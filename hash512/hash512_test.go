package hash512

import (
	"encoding/hex"
	"testing"
)

func TestEmptyMessage(t *testing.T) {
	// SHA-512("") per FIPS 180-4 test vectors.
	want := "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3"
	got := Sum512(nil)
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("SHA-512(\"\") = %x, want %s", got, want)
	}
}

func TestAbc(t *testing.T) {
	want := "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	got := Sum512([]byte("abc"))
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("SHA-512(\"abc\") = %x, want %s", got, want)
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	msg := make([]byte, 1000)
	for i := range msg {
		msg[i] = byte(i)
	}

	want := Sum512(msg)

	d := New()
	for _, chunk := range [][]byte{msg[:7], msg[7:130], msg[130:129+128], msg[257:]} {
		if _, err := d.Write(chunk); err != nil {
			t.Fatal(err)
		}
	}
	got := d.Sum(nil)

	if hex.EncodeToString(got) != hex.EncodeToString(want[:]) {
		t.Fatalf("incremental write mismatch: got %x, want %x", got, want)
	}
}

func TestSumDoesNotMutateState(t *testing.T) {
	d := New()
	_, _ = d.Write([]byte("partial"))
	first := d.Sum(nil)
	_, _ = d.Write(nil)
	second := d.Sum(nil)
	if hex.EncodeToString(first) != hex.EncodeToString(second) {
		t.Fatalf("Sum mutated digest state: %x != %x", first, second)
	}
}
