// Package x25519 implements the X25519 Diffie-Hellman function over
// Curve25519, per RFC 7748. Scalars are clamped exactly as RFC 7748 §5
// requires; u-coordinates are decoded leniently (only bit 255 is
// masked), so non-canonical peer input is accepted rather than
// rejected, matching the original implementation's make_255_bit /
// from_unreduced_bytes path in agreement.rs.
package x25519

import (
	"github.com/ycrypto/salty/edwards25519"
	"github.com/ycrypto/salty/field"
	"github.com/ycrypto/salty/internal/montgomery"
)

// Size is the length in bytes of a scalar, a u-coordinate, and a shared
// secret.
const Size = 32

// basepointU is the u-coordinate of the Curve25519 base point, u = 9.
var basepointU = func() *field.Element {
	var b [32]byte
	b[0] = 9
	e, err := new(field.Element).SetBytesUnreduced(b[:])
	if err != nil {
		panic("x25519: failed to construct basepoint: " + err.Error())
	}
	return e
}()

// clampScalar applies the RFC 7748 §5 bit twiddles that turn an
// arbitrary 32-byte seed into a valid X25519 scalar.
func clampScalar(scalar []byte) [32]byte {
	var k [32]byte
	copy(k[:], scalar)
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
	return k
}

// ScalarBaseMult sets dst to the result of multiplying the Curve25519
// base point by the clamped scalar decoded from scalar. scalar must be
// 32 bytes; dst and scalar may overlap.
func ScalarBaseMult(dst, scalar *[32]byte) {
	k := clampScalar(scalar[:])
	result := montgomery.Ladder(k, basepointU)
	copy(dst[:], result.Bytes())
}

// ScalarMult sets dst to the result of multiplying the u-coordinate
// point by the clamped scalar. point is decoded
// leniently per RFC 7748: only bit 255 is masked, non-canonical values
// (u >= p) are accepted and reduced by field arithmetic rather than
// rejected.
func ScalarMult(dst, scalar, point *[32]byte) {
	k := clampScalar(scalar[:])
	u, err := new(field.Element).SetBytesUnreduced(point[:])
	if err != nil {
		// SetBytesUnreduced only fails on wrong-length input, which
		// cannot happen given the fixed-size array argument.
		panic("x25519: " + err.Error())
	}
	result := montgomery.Ladder(k, u)
	copy(dst[:], result.Bytes())
}

// PublicKey computes the X25519 public key for the given 32-byte
// private scalar.
func PublicKey(privateKey *[32]byte) [32]byte {
	var dst [32]byte
	ScalarBaseMult(&dst, privateKey)
	return dst
}

// SharedSecret computes the X25519 shared secret between a local
// private key and a peer's public key.
func SharedSecret(privateKey, peerPublicKey *[32]byte) [32]byte {
	var dst [32]byte
	ScalarMult(&dst, privateKey, peerPublicKey)
	return dst
}

// ToEdwardsPoint converts a curve25519 u-coordinate to the
// corresponding edwards25519 point via the birational map, choosing
// the affine x sign given by sign (0 positive, 1 negative). It returns
// ErrWrongTwist when u = -1, the one input where the map is undefined;
// any other u that is not on curve25519 fails Edwards decompression and
// returns ErrPublicKeyBytesInvalid.
func ToEdwardsPoint(u *[32]byte, sign byte) (*edwards25519.Point, error) {
	fe, err := new(field.Element).SetBytesUnreduced(u[:])
	if err != nil {
		// SetBytesUnreduced only fails on wrong-length input, which
		// cannot happen given the fixed-size array argument.
		panic("x25519: " + err.Error())
	}
	return new(edwards25519.Point).SetFromMontgomeryU(fe, sign)
}
