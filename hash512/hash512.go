// Package hash512 implements SHA-512 (FIPS 180-4) as an incremental
// hash, the way every other primitive in this module is built: from
// scratch, with no dependency on crypto/sha512. The block compression
// itself lives in internal/sha512block.
package hash512

import "github.com/ycrypto/salty/internal/sha512block"

// Size is the length in bytes of a SHA-512 digest.
const Size = sha512block.Size

// Digest is an incremental SHA-512 hash. The zero value is not usable;
// use New.
type Digest struct {
	h           [Size]byte
	buf         [sha512block.BlockSize]byte
	unprocessed int
	length      uint64 // total bytes written, for the length suffix
}

// New returns a Digest initialized with the SHA-512 IV.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

// Reset restores d to its initial, empty state.
func (d *Digest) Reset() {
	d.h = sha512block.IV
	d.unprocessed = 0
	d.length = 0
}

// Write adds data to the running hash. It never returns an error.
func (d *Digest) Write(data []byte) (int, error) {
	n := len(data)
	d.length += uint64(n)

	if d.unprocessed+len(data) < sha512block.BlockSize {
		copy(d.buf[d.unprocessed:], data)
		d.unprocessed += len(data)
		return n, nil
	}

	filler := sha512block.BlockSize - d.unprocessed
	copy(d.buf[d.unprocessed:], data[:filler])
	sha512block.Compress(&d.h, d.buf[:])

	rest := data[filler:]
	d.unprocessed = sha512block.Compress(&d.h, rest)
	copy(d.buf[:d.unprocessed], rest[len(rest)-d.unprocessed:])

	return n, nil
}

// Sum appends the current digest to b and returns the resulting slice,
// without modifying d's state (the way hash.Hash.Sum works).
func (d *Digest) Sum(b []byte) []byte {
	clone := *d
	digest := clone.finalize()
	return append(b, digest[:]...)
}

// finalize consumes d (via padding and a final compression) and returns
// the 64-byte digest. Called on a copy by Sum so the running hash stays
// usable afterwards.
func (d *Digest) finalize() [Size]byte {
	var padding [2 * sha512block.BlockSize]byte
	paddingLen := sha512block.BlockSize
	if d.unprocessed >= 112 {
		paddingLen = 2 * sha512block.BlockSize
	}

	copy(padding[:d.unprocessed], d.buf[:d.unprocessed])
	padding[d.unprocessed] = 0x80

	bitLen := d.length << 3
	// FIPS 180-4 uses a 128-bit big-endian bit length; this module only
	// ever hashes inputs that fit in a 64-bit byte count.
	for i := 0; i < 8; i++ {
		padding[paddingLen-1-i] = byte(bitLen >> (8 * i))
	}

	sha512block.Compress(&d.h, padding[:paddingLen])
	return d.h
}

// Sum512 returns the SHA-512 digest of data in one call.
func Sum512(data []byte) [Size]byte {
	d := New()
	_, _ = d.Write(data)
	return d.finalize()
}
