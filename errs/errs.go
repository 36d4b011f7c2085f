// Package errs collects the sentinel errors returned across this module's
// packages, so callers can use errors.Is instead of string matching.
package errs

import "errors"

var (
	// ErrNonCanonicalFieldElement is returned when decoding a field
	// element whose 32-byte encoding is not the unique, fully-reduced
	// representative of its value mod p.
	ErrNonCanonicalFieldElement = errors.New("salty: non-canonical field element")

	// ErrPublicKeyBytesInvalid is returned when a 32-byte string does not
	// decode to a valid edwards25519 point (no x exists for the given y,
	// or y itself is non-canonical).
	ErrPublicKeyBytesInvalid = errors.New("salty: invalid public key bytes")

	// ErrWrongTwist is returned when converting the X25519 u-coordinate
	// u = -1 to the Edwards model: the birational map is undefined there,
	// and u = -1 lies on the curve's quadratic twist.
	ErrWrongTwist = errors.New("salty: point is on the wrong twist")

	// ErrSignatureInvalid is returned by Verify when a signature fails
	// to validate against the given message and public key.
	ErrSignatureInvalid = errors.New("salty: invalid signature")

	// ErrContextTooLong is returned when a context string passed to the
	// ed25519ctx signing/verification variants exceeds 255 bytes.
	ErrContextTooLong = errors.New("salty: context too long")

	// ErrInvalidSeedLength is returned when a seed or key slice passed
	// to a constructor is not the required size.
	ErrInvalidSeedLength = errors.New("salty: invalid seed length")
)
