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

package h2c

import (
	"encoding/binary"

	"github.com/ycrypto/salty/edwards25519"
	"github.com/ycrypto/salty/field"
)

var (
	constZero = new(field.Element).Zero()
	constOne  = new(field.Element).One()
	constTwo  = new(field.Element).Add(constOne, constOne)

	constMontgomeryA        = mustFeFromUint64(486662)
	constMontgomeryASquared = mustFeFromUint64(486662 * 486662)

	constSqrtM1 = mustFeFromBytes([]byte{
		0xb0, 0xa0, 0x0e, 0x4a, 0x27, 0x1b, 0xee, 0xc4, 0x78, 0xe4, 0x2f, 0xad, 0x06, 0x18, 0x43, 0x2f,
		0xa7, 0xd7, 0xfb, 0x3d, 0x99, 0x00, 0x4d, 0x2b, 0x0b, 0xdf, 0xc1, 0x4f, 0x80, 0x24, 0x83, 0x2b,
	})

	constMontgomeryNegA = mustFeFromBytes([]byte{
		0xe7, 0x92, 0xf8, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	})

	constMontgomerySqrtNegAPlusTwo = mustFeFromBytes([]byte{
		0x06, 0x7e, 0x45, 0xff, 0xaa, 0x04, 0x6e, 0xcc, 0x82, 0x1a, 0x7d, 0x4b, 0xd1, 0xd3, 0xa1, 0xc5,
		0x7e, 0x4f, 0xfc, 0x03, 0xdc, 0x08, 0x7b, 0xd2, 0xbb, 0x06, 0xa0, 0x60, 0xf4, 0xed, 0x26, 0x0f,
	})

	constMontgomeryUFactor = mustFeFromBytes([]byte{
		0x8d, 0xbe, 0xe2, 0x6b, 0xb1, 0xc9, 0x23, 0x76, 0x0e, 0x37, 0xa0, 0xa5, 0xf2, 0xcf, 0x79, 0xa1,
		0xb1, 0x50, 0x08, 0x84, 0xcd, 0xfe, 0x65, 0xa9, 0xe9, 0x41, 0x7c, 0x60, 0xff, 0xb6, 0xf9, 0x28,
	})

	constMontgomeryVFactor = mustFeFromBytes([]byte{
		0x3e, 0x5f, 0xf1, 0xb5, 0xd8, 0xe4, 0x11, 0x3b, 0x87, 0x1b, 0xd0, 0x52, 0xf9, 0xe7, 0xbc, 0xd0,
		0x58, 0x28, 0x04, 0xc2, 0x66, 0xff, 0xb2, 0xd4, 0xf4, 0x20, 0x3e, 0xb0, 0x7f, 0xdb, 0x7c, 0x54,
	})
)

func mustFeFromBytes(b []byte) *field.Element {
	fe, err := new(field.Element).SetBytes(b)
	if err != nil {
		panic("h2c: failed to deserialize constant: " + err.Error())
	}
	return fe
}

func mustFeFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return mustFeFromBytes(b[:])
}

func feIsZero(fe *field.Element) int {
	return fe.Equal(constZero)
}

// ell2EdwardsFlavor maps a field element onto an edwards25519 point via
// Elligator2: first onto the birationally-equivalent Montgomery curve
// curve25519 (ell2MontgomeryFlavor), then across to Edwards coordinates
// via RFC 7748's (x, y) = (sqrt(-486664)*u/v, (u-1)/(u+1)).
func ell2EdwardsFlavor(r *field.Element) *edwards25519.Point {
	montU, montV := ell2MontgomeryFlavor(r)

	montVInverse := new(field.Element).Invert(montV)
	edwardsX := new(field.Element).Multiply(montU, montVInverse)
	edwardsX.Multiply(edwardsX, constMontgomerySqrtNegAPlusTwo)

	denom := new(field.Element).Add(montU, constOne)
	denomIsZero := feIsZero(denom)
	numer := new(field.Element).Subtract(montU, constOne)

	denom.Invert(denom)
	edwardsY := new(field.Element).Multiply(numer, denom)

	// The map is undefined at montV == 0 or montU == -1 (the zeros of
	// the two denominators above); RFC 9380 sends those exceptional
	// inputs to the curve's identity point (0, 1) instead.
	undefined := feIsZero(montV) | denomIsZero
	edwardsX.Select(edwardsX, constZero, undefined)
	edwardsY.Select(edwardsY, constOne, undefined)

	return newEdwardsFromXY(edwardsX, edwardsY)
}

func newEdwardsFromXY(x, y *field.Element) *edwards25519.Point {
	z := new(field.Element).One()
	t := new(field.Element).Multiply(x, y)
	return new(edwards25519.Point).SetExtendedCoordinates(x, y, z, t)
}

// ell2MontgomeryFlavor maps r onto the Montgomery curve
// v^2 = u^3 + A*u^2 + u (A = 486662, curve25519) via Elligator2, following
// RFC 9380 appendix F.2's general construction directly, with Z = 2 (the
// field's canonical nonsquare) as the map's fixed non-residue.
func ell2MontgomeryFlavor(r *field.Element) (*field.Element, *field.Element) {
	zrSquared := new(field.Element).Square(r)
	zrSquared.Multiply(zrSquared, constTwo)

	// Exceptional input: 1 + Z*r^2 == 0 would make the candidate's
	// denominator zero. Per the RFC's inv0(0) := 0 convention, force the
	// numerator's scaling factor to 0 instead of inverting.
	negOne := new(field.Element).Negate(constOne)
	zrSquared.Select(zrSquared, constZero, zrSquared.Equal(negOne))

	denom := new(field.Element).Add(zrSquared, constOne)
	u1 := new(field.Element).Invert(denom)
	u1.Multiply(u1, constMontgomeryNegA)

	// g(u1) = u1^3 + A*u1^2 + u1 = u1*(u1*(u1+A)+1)
	gu1 := new(field.Element).Add(u1, constMontgomeryA)
	gu1.Multiply(gu1, u1)
	gu1.Add(gu1, constOne)
	gu1.Multiply(gu1, u1)

	// u2 is the companion root with g(u2) = Z*r^2 * g(u1): exactly one
	// of g(u1), g(u2) is a square, since Z is a non-residue.
	u2 := new(field.Element).Negate(u1)
	u2.Subtract(u2, constMontgomeryA)
	gu2 := new(field.Element).Multiply(zrSquared, gu1)

	sqrtGu1, gu1IsSquare := new(field.Element).SqrtRatio(gu1, constOne)
	sqrtGu2, _ := new(field.Element).SqrtRatio(gu2, constOne)

	u := new(field.Element).Select(u2, u1, gu1IsSquare)
	v := new(field.Element).Select(sqrtGu2, sqrtGu1, gu1IsSquare)

	// Elligator2 fixes the output's sign so that sgn0(v) == sgn0(r),
	// independent of which branch (u1 or u2) was taken.
	negV := new(field.Element).Negate(v)
	v.Select(v, negV, v.IsNegative()^r.IsNegative())

	return u, v
}
