// Copyright (c) 2021 Oasis Labs Inc. All rights reserved.
// Copyright (c) 2021 Yawning Angel. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS
// IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
// TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A
// PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED
// TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
// PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
// LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
// SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package field implements arithmetic in GF(2^255-19), the base field of
// Curve25519 and its twisted Edwards form.
//
// This is the "portable" backend (build tag !salty_fast): sixteen signed
// 64-bit limbs in radix 2^16, following the representation used by
// TweetNaCl and its derivatives. A second, "fast" backend implementing
// the same Element API lives in field_fast.go behind the salty_fast
// build tag; callers never see the difference.
package field

import (
	"crypto/subtle"

	"github.com/ycrypto/salty/errs"
)

// Element is an element of GF(2^255-19), stored as 16 signed limbs in
// radix 2^16. The zero value is a valid representation of 0.
//
// Limbs are not kept fully reduced between operations; Multiply and
// Bytes normalize internally. Callers outside this package only ever
// see the chainable pointer-receiver methods below, never the limbs.
type Element struct {
	l [16]int64
}

var (
	feZero = &Element{}
	feOne  = &Element{l: [16]int64{1}}
	feTwo  = &Element{l: [16]int64{2}}

	// feD is the twisted Edwards curve parameter d = -121665/121666.
	feD = &Element{l: [16]int64{
		0x78a3, 0x1359, 0x4dca, 0x75eb,
		0xd8ab, 0x4141, 0x0a4d, 0x0070,
		0xe898, 0x7779, 0x4079, 0x8cc7,
		0xfe73, 0x2b6f, 0x6cee, 0x5203,
	}}

	feD2 = &Element{l: [16]int64{
		0xf159, 0x26b2, 0x9b94, 0xebd6,
		0xb156, 0x8283, 0x149a, 0x00e0,
		0xd130, 0xeef3, 0x80f2, 0x198e,
		0xfce7, 0x56df, 0xd9dc, 0x2406,
	}}

	// feBasepointX, feBasepointY are the coordinates of the edwards25519
	// base point B.
	feBasepointX = &Element{l: [16]int64{
		0xd51a, 0x8f25, 0x2d60, 0xc956,
		0xa7b2, 0x9525, 0xc760, 0x692c,
		0xdc5c, 0xfdd6, 0xe231, 0xc0a4,
		0x53fe, 0xcd6e, 0x36d3, 0x2169,
	}}

	feBasepointY = &Element{l: [16]int64{
		0x6658, 0x6666, 0x6666, 0x6666,
		0x6666, 0x6666, 0x6666, 0x6666,
		0x6666, 0x6666, 0x6666, 0x6666,
		0x6666, 0x6666, 0x6666, 0x6666,
	}}

	// feSqrtM1 is a square root of -1 mod p.
	feSqrtM1 = &Element{l: [16]int64{
		0xa0b0, 0x4a0e, 0x1b27, 0xc4ee,
		0xe478, 0xad2f, 0x1806, 0x2f43,
		0xd7a7, 0x3dfb, 0x0099, 0x2b4d,
		0xdf0b, 0x4fc1, 0x2480, 0x2b83,
	}}
)

// Zero sets e = 0 and returns e.
func (e *Element) Zero() *Element {
	*e = Element{}
	return e
}

// One sets e = 1 and returns e.
func (e *Element) One() *Element {
	*e = *feOne
	return e
}

// D returns the twisted Edwards curve constant d.
func D() *Element { v := *feD; return &v }

// D2 returns 2*d.
func D2() *Element { v := *feD2; return &v }

// BasepointXY returns the coordinates of the edwards25519 base point.
func BasepointXY() (*Element, *Element) {
	x, y := *feBasepointX, *feBasepointY
	return &x, &y
}

// SqrtM1 returns a square root of -1 mod p.
func SqrtM1() *Element { v := *feSqrtM1; return &v }

// Add sets e = a + b and returns e. The result is not normalized.
func (e *Element) Add(a, b *Element) *Element {
	var r Element
	for i := range r.l {
		r.l[i] = a.l[i] + b.l[i]
	}
	*e = r
	return e
}

// Subtract sets e = a - b and returns e. The result is not normalized.
func (e *Element) Subtract(a, b *Element) *Element {
	var r Element
	for i := range r.l {
		r.l[i] = a.l[i] - b.l[i]
	}
	*e = r
	return e
}

// Negate sets e = -a and returns e.
func (e *Element) Negate(a *Element) *Element {
	var r Element
	for i := range r.l {
		r.l[i] = -a.l[i]
	}
	*e = r
	return e
}

// carry propagates limbs into radix 2^16, folding the overflow at limb 15
// back into limb 0 via 2^256 ≡ 38 (mod p).
func (l *[16]int64) carry() {
	for i := 0; i < 16; i++ {
		l[i] += 1 << 16
		c := l[i] >> 16
		next := (i + 1) % 16
		if i < 15 {
			l[next] += c - 1
		} else {
			l[0] += 38 * (c - 1)
		}
		l[i] -= c << 16
	}
}

// Multiply sets e = a * b and returns e.
func (e *Element) Multiply(a, b *Element) *Element {
	var wide [31]int64
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			wide[i+j] += a.l[i] * b.l[j]
		}
	}
	for i := 0; i < 15; i++ {
		wide[i] += 38 * wide[i+16]
	}

	var r Element
	copy(r.l[:], wide[:16])
	r.l.carry()
	r.l.carry()

	*e = r
	return e
}

// Square sets e = a * a and returns e.
func (e *Element) Square(a *Element) *Element {
	return e.Multiply(a, a)
}

// Invert sets e = 1/a and returns e, using Fermat's little theorem
// (a^(p-2) = a^-1 mod p). The behavior when a == 0 is to return 0.
func (e *Element) Invert(a *Element) *Element {
	c := *a
	for i := 253; i >= 0; i-- {
		sq := new(Element)
		sq.Square(&c)
		c = *sq
		if i != 2 && i != 4 {
			m := new(Element)
			m.Multiply(&c, a)
			c = *m
		}
	}
	*e = c
	return e
}

// pow22523 raises a to the power 2^252-3, the exponent used both for
// edwards25519 point decompression and for SqrtRatio below.
func pow22523(a *Element) *Element {
	c := *a
	for i := 250; i >= 0; i-- {
		sq := new(Element)
		sq.Square(&c)
		c = *sq
		if i != 1 {
			m := new(Element)
			m.Multiply(&c, a)
			c = *m
		}
	}
	return &c
}

// Select sets e = a if cond == 0, e = b if cond == 1, and returns e.
// cond must be 0 or 1; any other value is undefined behavior.
func (e *Element) Select(a, b *Element, cond int) *Element {
	mask := int64(-(int64(cond) & 1))
	var r Element
	for i := range r.l {
		r.l[i] = a.l[i] ^ (mask & (a.l[i] ^ b.l[i]))
	}
	*e = r
	return e
}

// Equal returns 1 if e == b (as field elements, i.e. after reduction),
// and 0 otherwise.
func (e *Element) Equal(b *Element) int {
	be := e.Bytes()
	bb := b.Bytes()
	return subtle.ConstantTimeCompare(be, bb)
}

// IsNegative returns 1 if the canonical encoding of e has its least
// significant bit set, and 0 otherwise. This is the "sign" convention
// used for the x-coordinate of edwards25519 points.
func (e *Element) IsNegative() int {
	b := e.Bytes()
	return int(b[0] & 1)
}

// Bytes returns the canonical little-endian encoding of e, fully
// reduced modulo p.
func (e *Element) Bytes() []byte {
	fe := e.l
	fe.carry()
	fe.carry()
	fe.carry()

	var m [16]int64
	for pass := 0; pass < 2; pass++ {
		m[0] = fe[0] - 0xffed
		for i := 1; i < 15; i++ {
			m[i] = fe[i] - 0xffff - ((m[i-1] >> 16) & 1)
			m[i-1] &= 0xffff
		}
		m[15] = fe[15] - 0x7fff - ((m[14] >> 16) & 1)
		b := (m[15] >> 16) & 1
		m[14] &= 0xffff

		// conditional_swap(fe, m, 1-b): when b == 0 the subtraction did
		// not borrow, i.e. fe >= the constant being subtracted, so we
		// swap in the reduced value m.
		cond := int64(1 - b)
		mask := -cond
		for i := 0; i < 16; i++ {
			t := mask & (fe[i] ^ m[i])
			fe[i] ^= t
			m[i] ^= t
		}
	}

	out := make([]byte, 32)
	for i := 0; i < 16; i++ {
		out[2*i] = byte(fe[i])
		out[2*i+1] = byte(fe[i] >> 8)
	}
	return out
}

// setBytesUnchecked decodes 32 little-endian bytes into e, masking off
// bit 255 (the top bit of byte 31), and does not reject non-canonical
// input (i.e. values in [p, 2^255) are accepted and silently reduced
// by subsequent arithmetic). This is the representation X25519 requires
// for peer-supplied u-coordinates per RFC 7748 §5.
func (e *Element) setBytesUnchecked(b []byte) *Element {
	var r Element
	for i := 0; i < 16; i++ {
		r.l[i] = int64(b[2*i]) | int64(b[2*i+1])<<8
	}
	r.l[15] &= 0x7fff
	*e = r
	return e
}

// SetBytesUnreduced decodes 32 little-endian bytes into e without
// requiring a canonical (< p) encoding, masking only bit 255. It is the
// building block for decoding X25519 u-coordinates, which RFC 7748
// requires implementations to accept even when not canonical.
func (e *Element) SetBytesUnreduced(b []byte) (*Element, error) {
	if len(b) != 32 {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	return e.setBytesUnchecked(b), nil
}

// SetBytes decodes 32 little-endian bytes into e. It requires bit 255 to
// be clear and the value to be the canonical (fully reduced) encoding,
// returning ErrNonCanonicalFieldElement otherwise.
func (e *Element) SetBytes(b []byte) (*Element, error) {
	if len(b) != 32 {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	if b[31]&0x80 != 0 {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	e.setBytesUnchecked(b)
	if subtle.ConstantTimeCompare(e.Bytes(), b) != 1 {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	return e, nil
}

// decodeRaw256 decodes exactly 32 little-endian bytes into 16 radix-2^16
// limbs with no masking or reduction; the result may represent any value
// in [0, 2^256), not just [0, p).
func decodeRaw256(b []byte) [16]int64 {
	var l [16]int64
	for i := 0; i < 16; i++ {
		l[i] = int64(b[2*i]) | int64(b[2*i+1])<<8
	}
	return l
}

// SetWideBytes decodes up to 64 little-endian bytes into e, reducing the
// full 512-bit value modulo p via 2^256 ≡ 38 (mod p). This is the wide
// reduction hash-to-field needs to turn an XMD/XOF-expanded byte string
// into a uniformly distributed field element, per RFC 9380 §5.2's
// "hash_to_field" with expand_message producing L = 48 bytes (zero-
// extended to 64 here by the caller).
func (e *Element) SetWideBytes(b []byte) (*Element, error) {
	if len(b) > 64 {
		return nil, errs.ErrNonCanonicalFieldElement
	}
	var buf [64]byte
	copy(buf[:], b)

	lo := decodeRaw256(buf[:32])
	hi := decodeRaw256(buf[32:64])

	var r Element
	for i := range r.l {
		r.l[i] = lo[i] + 38*hi[i]
	}
	r.l.carry()
	r.l.carry()
	*e = r
	return e, nil
}

// SqrtRatio sets e to a square root of u/v and returns (e, 1) if u/v is
// a square in the field, or to a square root of sqrt(-1)*u/v and returns
// (e, 0) otherwise. e is always set to the nonnegative (even, per
// IsNegative) root.
func (e *Element) SqrtRatio(u, v *Element) (*Element, int) {
	v2 := new(Element).Square(v)
	v3 := new(Element).Multiply(v2, v)
	uv3 := new(Element).Multiply(u, v3)
	v4 := new(Element).Square(v2)
	uv7 := new(Element).Multiply(uv3, v4)

	t0 := pow22523(uv7)
	t0.Multiply(t0, uv3)

	check := new(Element).Square(t0)
	check.Multiply(check, v)

	uNeg := new(Element).Negate(u)
	negUTimesSqrtM1 := new(Element).Multiply(uNeg, feSqrtM1)

	correctSignSqrt := check.Equal(u)
	flippedSignSqrt := check.Equal(uNeg)
	flippedSignSqrtI := check.Equal(negUTimesSqrtM1)

	rPrime := new(Element).Multiply(t0, feSqrtM1)
	t0.Select(t0, rPrime, flippedSignSqrt|flippedSignSqrtI)

	negT0 := new(Element).Negate(t0)
	isNeg := t0.IsNegative()
	t0.Select(t0, negT0, isNeg)

	*e = *t0
	wasSquare := correctSignSqrt | flippedSignSqrt
	return e, wasSquare
}
