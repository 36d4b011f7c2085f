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

// Package edwards25519 implements group operations on the twisted
// Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2
//
// underlying Ed25519, in extended (projective) coordinates (X:Y:Z:T)
// with x = X/Z, y = Y/Z, x*y = T/Z, following Hisil-Wong-Carter-Dawson.
package edwards25519

import (
	"github.com/ycrypto/salty/errs"
	"github.com/ycrypto/salty/field"
	"github.com/ycrypto/salty/scalar"
)

// Point is a point on edwards25519, in extended projective coordinates.
// The zero value is NOT a valid point; use NewIdentityPoint or SetBytes.
type Point struct {
	x, y, z, t field.Element
}

// NewIdentityPoint returns the neutral element (0, 1).
func NewIdentityPoint() *Point {
	p := &Point{}
	p.x.Zero()
	p.y.One()
	p.z.One()
	p.t.Zero()
	return p
}

// NewGeneratorPoint returns the edwards25519 base point B.
func NewGeneratorPoint() *Point {
	p := &Point{}
	bx, by := field.BasepointXY()
	p.x = *bx
	p.y = *by
	p.z.One()
	p.t.Multiply(&p.x, &p.y)
	return p
}

// SetExtendedCoordinates sets p to the point with the given extended
// coordinates, trusting the caller that x*y == t*z (callers are other
// packages in this module constructing points from known-good math, not
// arbitrary untrusted input; untrusted input goes through SetBytes).
func (p *Point) SetExtendedCoordinates(x, y, z, t *field.Element) *Point {
	p.x, p.y, p.z, p.t = *x, *y, *z, *t
	return p
}

// ExtendedCoordinates returns p's raw (X, Y, Z, T) coordinates.
func (p *Point) ExtendedCoordinates() (x, y, z, t *field.Element) {
	xc, yc, zc, tc := p.x, p.y, p.z, p.t
	return &xc, &yc, &zc, &tc
}

// affine returns the affine (x, y) coordinates of p.
func (p *Point) affine() (x, y *field.Element) {
	zInv := new(field.Element).Invert(&p.z)
	x = new(field.Element).Multiply(&p.x, zInv)
	y = new(field.Element).Multiply(&p.y, zInv)
	return x, y
}

// Bytes returns the 32-byte compressed encoding of p: the little-endian
// encoding of the affine y-coordinate, with the sign (parity) of the
// affine x-coordinate folded into the top bit.
func (p *Point) Bytes() []byte {
	x, y := p.affine()
	b := y.Bytes()
	b[31] ^= byte(x.IsNegative()) << 7
	return b
}

// SetBytes decodes the 32-byte compressed encoding of an edwards25519
// point into p, following RFC 8032 §5.1.3: recover x from y via
//
//	x^2 = (y^2-1) / (d*y^2+1)
//
// computed as a single exponentiation by (p+3)/8 (here pow22523, whose
// exponent is (p-5)/8, folded into the same candidate-then-fixup shape
// ref10 and the original Rust source use), trying the sqrt(-1) twist
// when the first candidate doesn't satisfy the curve equation, and
// finally correcting x's sign to match the encoded bit.
func (p *Point) SetBytes(b []byte) (*Point, error) {
	if len(b) != 32 {
		return nil, errs.ErrPublicKeyBytesInvalid
	}
	sign := b[31] >> 7

	var yb [32]byte
	copy(yb[:], b)
	yb[31] &= 0x7f

	var y field.Element
	if _, err := y.SetBytes(yb[:]); err != nil {
		return nil, errs.ErrPublicKeyBytesInvalid
	}

	one := new(field.Element).One()
	y2 := new(field.Element).Square(&y)
	u := new(field.Element).Subtract(y2, one)

	v := new(field.Element).Multiply(field.D(), y2)
	v.Add(v, one)

	v2 := new(field.Element).Square(v)
	v3 := new(field.Element).Multiply(v2, v)
	v7 := new(field.Element).Square(v3)
	v7.Multiply(v7, v)

	t := new(field.Element).Multiply(v7, u)
	xCandidate := rawPow22523(t)
	x := new(field.Element).Multiply(xCandidate, u)
	x.Multiply(x, v3)

	check := new(field.Element).Square(x)
	check.Multiply(check, v)

	negU := new(field.Element).Negate(u)
	switch {
	case check.Equal(u) == 1:
		// x is correct as-is.
	case check.Equal(negU) == 1:
		x.Multiply(x, field.SqrtM1())
	default:
		return nil, errs.ErrPublicKeyBytesInvalid
	}

	if x.IsNegative() != int(sign) {
		x.Negate(x)
	}

	p.x = *x
	p.y = y
	p.z = *one
	p.t.Multiply(x, &y)
	return p, nil
}

// rawPow22523 computes a^(2^252-3), the exponent (p-5)/8 used by point
// decompression to produce a candidate square root.
func rawPow22523(a *field.Element) *field.Element {
	c := *a
	sq := new(field.Element)
	m := new(field.Element)
	for i := 250; i >= 0; i-- {
		sq.Square(&c)
		c = *sq
		if i != 1 {
			m.Multiply(&c, a)
			c = *m
		}
	}
	return &c
}

// Equal reports whether p == q.
func (p *Point) Equal(q *Point) int {
	// X1*Z2 == X2*Z1 and Y1*Z2 == Y2*Z1
	lx := new(field.Element).Multiply(&p.x, &q.z)
	rx := new(field.Element).Multiply(&q.x, &p.z)
	ly := new(field.Element).Multiply(&p.y, &q.z)
	ry := new(field.Element).Multiply(&q.y, &p.z)
	return lx.Equal(rx) & ly.Equal(ry)
}

// Negate sets p = -q and returns p.
func (p *Point) Negate(q *Point) *Point {
	p.x.Negate(&q.x)
	p.y = q.y
	p.z = q.z
	p.t.Negate(&q.t)
	return p
}

// Add sets p = a + b using the unified Hisil-Wong-Carter-Dawson
// addition formula for twisted Edwards curves with a = -1, and
// returns p. It is complete: it also handles a == b (doubling).
func (p *Point) Add(a, b *Point) *Point {
	A := new(field.Element).Subtract(&a.y, &a.x)
	tmp := new(field.Element).Subtract(&b.y, &b.x)
	A.Multiply(A, tmp)

	B := new(field.Element).Add(&a.y, &a.x)
	tmp.Add(&b.y, &b.x)
	B.Multiply(B, tmp)

	C := new(field.Element).Multiply(&a.t, &b.t)
	C.Multiply(C, field.D2())

	D := new(field.Element).Multiply(&a.z, &b.z)
	D.Add(D, D)

	E := new(field.Element).Subtract(B, A)
	F := new(field.Element).Subtract(D, C)
	G := new(field.Element).Add(D, C)
	H := new(field.Element).Add(B, A)

	p.x.Multiply(E, F)
	p.y.Multiply(G, H)
	p.z.Multiply(F, G)
	p.t.Multiply(E, H)
	return p
}

// Select sets p = a if cond == 0, p = b if cond == 1, and returns p.
func (p *Point) Select(a, b *Point, cond int) *Point {
	p.x.Select(&a.x, &b.x, cond)
	p.y.Select(&a.y, &b.y, cond)
	p.z.Select(&a.z, &b.z, cond)
	p.t.Select(&a.t, &b.t, cond)
	return p
}

// ScalarMult sets p = s*q and returns p, via constant-time
// double-and-always-add: every bit of s triggers both a doubling and an
// addition, the addend being the identity when the bit is 0, so the
// sequence of field operations performed never depends on s.
func (p *Point) ScalarMult(s *scalar.Scalar, q *Point) *Point {
	identity := NewIdentityPoint()
	acc := NewIdentityPoint()
	sb := s.Bytes()

	addend := NewIdentityPoint()
	for i := 255; i >= 0; i-- {
		acc.Add(acc, acc)
		bit := int((sb[i/8] >> (uint(i) % 8)) & 1)
		addend.Select(identity, q, bit)
		acc.Add(acc, addend)
	}
	*p = *acc
	return p
}

// ScalarBaseMult sets p = s*B, where B is the edwards25519 base point,
// and returns p.
func (p *Point) ScalarBaseMult(s *scalar.Scalar) *Point {
	return p.ScalarMult(s, NewGeneratorPoint())
}

// MultByCofactor sets p = 8*q (edwards25519's cofactor) via three doublings
// and returns p. This clears any small-order component of q, as required
// after mapping an arbitrary field element onto the curve (Elligator2
// lands on the full curve, not just the prime-order subgroup).
func (p *Point) MultByCofactor(q *Point) *Point {
	r := new(Point).Add(q, q)
	r.Add(r, r)
	r.Add(r, r)
	*p = *r
	return p
}

// ToMontgomeryU returns the u-coordinate of the birational map of p onto
// the Montgomery form curve25519: u = (1+y)/(1-y), y = p's affine
// y-coordinate.
func (p *Point) ToMontgomeryU() *field.Element {
	_, y := p.affine()
	one := new(field.Element).One()
	numerator := new(field.Element).Add(one, y)
	denominator := new(field.Element).Subtract(one, y)
	denominator.Invert(denominator)
	return numerator.Multiply(numerator, denominator)
}

// SetFromMontgomeryU sets p to the edwards25519 point obtained from the
// birational map applied to the Montgomery u-coordinate u, choosing the
// sign given by sign (0 for positive, 1 for negative), and returns p.
//
// The map is y = (u-1)/(u+1), which is undefined at u = -1; at that
// point v^2 = u*(u^2+486662*u+1) = 486660, a non-square mod p, so u =
// -1 is the u-coordinate of a point on curve25519's twist rather than
// on the curve itself, and is rejected as ErrWrongTwist without needing
// the (more expensive) Edwards decompression to discover it.
func (p *Point) SetFromMontgomeryU(u *field.Element, sign byte) (*Point, error) {
	one := new(field.Element).One()
	uPlusOne := new(field.Element).Add(u, one)
	if feIsZero(uPlusOne) {
		return nil, errs.ErrWrongTwist
	}

	uMinusOne := new(field.Element).Subtract(u, one)
	y := new(field.Element).Invert(uPlusOne)
	y.Multiply(uMinusOne, y)

	yBytes := y.Bytes()
	yBytes[31] ^= (sign & 1) << 7

	return p.SetBytes(yBytes)
}

// feIsZero reports whether e is the zero field element.
func feIsZero(e *field.Element) bool {
	return e.Equal(new(field.Element).Zero()) == 1
}
