// Package scalar implements arithmetic modulo the order of the
// edwards25519 prime-order subgroup,
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// The representation and reduction algorithm are the classic
// TweetNaCl/ref10 ones: a little-endian byte string is widened into an
// array of 64 int64 "digits" and folded down 32 bytes at a time using
// the precomputed multiples of l below. This is the same technique the
// original implementation's signing code used to accumulate h*a before
// reducing (see Keypair::sign's modulo_group_order step).
package scalar

import (
	"crypto/subtle"

	"github.com/ycrypto/salty/errs"
)

// Size is the length in bytes of a Scalar's canonical encoding.
const Size = 32

// l, the subgroup order, little-endian.
var l = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// Scalar is an integer modulo l, stored in canonical little-endian form.
type Scalar struct {
	b [Size]byte
}

// Zero returns the additive identity.
func Zero() *Scalar { return &Scalar{} }

// FromUnreducedBytes wraps an arbitrary 32-byte little-endian integer
// as a Scalar without requiring it to be < l. This is how the clamped
// Ed25519 secret scalar 'a' (which is always >= l, since clamping fixes
// bit 254 and clears bit 255 while l is just over 2^252) is represented:
// it is never reduced, only ever fed into ScalarMult or MultiplyAdd,
// both of which handle un-reduced digits correctly.
func FromUnreducedBytes(b []byte) *Scalar {
	s := &Scalar{}
	copy(s.b[:], b)
	return s
}

// SetCanonicalBytes decodes the 32-byte little-endian encoding of a
// scalar that MUST already be fully reduced (< l), returning
// ErrNonCanonicalFieldElement if it is not. Signature verification uses
// this to reject S values outside [0, l) per RFC 8032.
func (s *Scalar) SetCanonicalBytes(b []byte) (*Scalar, error) {
	if len(b) != Size {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	if !isReduced(b) {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	copy(s.b[:], b)
	return s, nil
}

func isReduced(b []byte) bool {
	for i := Size - 1; i >= 0; i-- {
		if b[i] != l[i] {
			return b[i] < l[i]
		}
	}
	return false // b == l is not < l
}

// Bytes returns the canonical little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, s.b[:])
	return out
}

// Equal reports whether s == t, as canonically-encoded scalars.
func (s *Scalar) Equal(t *Scalar) int {
	return subtle.ConstantTimeCompare(s.b[:], t.b[:])
}

// ReduceWide reduces an up-to-64-byte little-endian integer modulo l.
// This is the scalar-package equivalent of the original's
// Scalar::from_u512_le: it is how a raw SHA-512 digest becomes a
// scalar in nonce generation and in the Fiat-Shamir challenge.
func ReduceWide(b []byte) *Scalar {
	var x [64]int64
	for i, v := range b {
		x[i] = int64(v)
	}
	return &Scalar{b: reduceModL(&x)}
}

// Add sets s = a + b (mod l) and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	var x [64]int64
	for i := 0; i < Size; i++ {
		x[i] = int64(a.b[i]) + int64(b.b[i])
	}
	s.b = reduceModL(&x)
	return s
}

// Multiply sets s = a * b (mod l) and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	return s.MultiplyAdd(a, b, Zero())
}

// MultiplyAdd sets s = a*b + c (mod l) and returns s. This is the
// operation RFC 8032 signing performs to compute S = r + k*s, and is
// implemented directly (rather than as Multiply-then-Add) because that
// is how the reference accumulate-then-reduce algorithm works: the
// addend is folded into the same 64-digit accumulator as the product
// before a single reduction pass.
func (s *Scalar) MultiplyAdd(a, b, c *Scalar) *Scalar {
	var x [64]int64
	for i := 0; i < Size; i++ {
		x[i] = int64(c.b[i])
	}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			x[i+j] += int64(a.b[i]) * int64(b.b[j])
		}
	}
	s.b = reduceModL(&x)
	return s
}

// lTimes holds l's bytes widened to int64, used by reduceModL.
var lTimes [Size]int64

func init() {
	for i, v := range l {
		lTimes[i] = int64(v)
	}
}

// reduceModL reduces the 64-digit little-endian, base-256 integer x
// (digits may exceed 255, as produced by MultiplyAdd's accumulation)
// modulo l, following TweetNaCl's modL.
func reduceModL(x *[64]int64) [32]byte {
	for i := 63; i >= 32; i-- {
		var carry int64
		for j := i - 32; j < i-12; j++ {
			x[j] += carry - 16*x[i]*lTimes[j-(i-32)]
			carry = (x[j] + 128) >> 8
			x[j] -= carry << 8
		}
		x[i-12] += carry
		x[i] = 0
	}

	var carry int64
	for j := 0; j < 32; j++ {
		x[j] += carry - (x[31]>>4)*lTimes[j]
		carry = x[j] >> 8
		x[j] &= 255
	}
	for j := 0; j < 32; j++ {
		x[j] -= carry * lTimes[j]
	}

	var out [32]byte
	for i := 0; i < 31; i++ {
		x[i+1] += x[i] >> 8
		out[i] = byte(x[i])
	}
	out[31] = byte(x[31])
	return out
}
