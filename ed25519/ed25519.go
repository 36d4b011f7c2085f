// Package ed25519 implements EdDSA signing and verification over
// edwards25519 per RFC 8032: the pure scheme, the ed25519ctx
// context-carrying variant, and ed25519ph (prehashed). Keys are always
// constructed from a 32-byte seed; there is no random key generation
// entry point, since this module takes no dependency on an entropy
// source (callers supply the seed).
package ed25519

import (
	"crypto/subtle"

	"github.com/ycrypto/salty/edwards25519"
	"github.com/ycrypto/salty/errs"
	"github.com/ycrypto/salty/hash512"
	"github.com/ycrypto/salty/scalar"
)

const (
	// SeedSize is the length in bytes of an Ed25519 seed.
	SeedSize = 32
	// PublicKeySize is the length in bytes of a public key.
	PublicKeySize = 32
	// SignatureSize is the length in bytes of a signature.
	SignatureSize = 64
	// MaxContextSize is the largest context string the ctx/ph variants
	// accept, per RFC 8032's one-byte length prefix.
	MaxContextSize = 255
)

var domPrefix = []byte("SigEd25519 no Ed25519 collisions")

// dom2 builds the domain-separation prefix used by the ed25519ctx and
// ed25519ph variants. The pure variant uses no prefix at all; flag is 0
// for ctx, 1 for ph.
func dom2(flag byte, context []byte) []byte {
	out := make([]byte, 0, len(domPrefix)+2+len(context))
	out = append(out, domPrefix...)
	out = append(out, flag, byte(len(context)))
	out = append(out, context...)
	return out
}

// PublicKey is an Ed25519 public key.
type PublicKey struct {
	b     [PublicKeySize]byte
	point edwards25519.Point
}

// Bytes returns the 32-byte encoding of pub.
func (pub *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pub.b[:])
	return out
}

// NewPublicKey decodes a 32-byte public key, rejecting byte strings that
// do not correspond to a valid edwards25519 point.
func NewPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, errs.ErrPublicKeyBytesInvalid
	}
	pub := &PublicKey{}
	copy(pub.b[:], b)
	if _, err := pub.point.SetBytes(b); err != nil {
		return nil, err
	}
	return pub, nil
}

// PrivateKey is an Ed25519 private key, expanded from its seed into the
// clamped scalar 'a' and the nonce prefix, per RFC 8032 §5.1.5.
type PrivateKey struct {
	seed   [SeedSize]byte
	a      scalar.Scalar
	nonce  [32]byte
	public PublicKey
}

// NewKeyFromSeed expands a 32-byte seed into a PrivateKey.
func NewKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, errs.ErrInvalidSeedLength
	}
	h := hash512.Sum512(seed)

	var clamped [32]byte
	copy(clamped[:], h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64

	priv := &PrivateKey{}
	copy(priv.seed[:], seed)
	priv.a = *scalar.FromUnreducedBytes(clamped[:])
	copy(priv.nonce[:], h[32:])

	A := edwards25519.NewIdentityPoint().ScalarBaseMult(&priv.a)
	copy(priv.public.b[:], A.Bytes())
	priv.public.point = *A

	return priv, nil
}

// Seed returns the 32-byte seed priv was constructed from.
func (priv *PrivateKey) Seed() []byte {
	out := make([]byte, SeedSize)
	copy(out, priv.seed[:])
	return out
}

// Public returns priv's corresponding public key.
func (priv *PrivateKey) Public() *PublicKey {
	pub := priv.public
	return &pub
}

// Scalar returns the clamped private scalar 'a' priv was expanded into,
// for protocols built on top of this package (such as vrf) that need to
// perform their own scalar multiplications with the same key material.
func (priv *PrivateKey) Scalar() *scalar.Scalar {
	a := priv.a
	return &a
}

// NoncePrefix returns the second half of SHA-512(seed), the secret
// prefix RFC 8032 §5.1.6 mixes into deterministic nonce generation.
func (priv *PrivateKey) NoncePrefix() []byte {
	out := make([]byte, len(priv.nonce))
	copy(out, priv.nonce[:])
	return out
}

// signWithFlag implements the common signing procedure shared by the
// pure, ctx, and ph variants: dom selects which of them.
//
//	pure:  dom = "" (no domain separation at all)
//	ctx:   dom = dom2(0, context)
//	ph:    dom = dom2(1, context), and message is already PH(M)
func signWithFlag(priv *PrivateKey, dom []byte, message []byte) []byte {
	Abytes := priv.public.Bytes()

	rHash := hash512.New()
	rHash.Write(dom)
	rHash.Write(priv.nonce[:])
	rHash.Write(message)
	r := scalar.ReduceWide(rHash.Sum(nil))

	R := edwards25519.NewIdentityPoint().ScalarBaseMult(r)
	Rbytes := R.Bytes()

	kHash := hash512.New()
	kHash.Write(dom)
	kHash.Write(Rbytes)
	kHash.Write(Abytes)
	kHash.Write(message)
	k := scalar.ReduceWide(kHash.Sum(nil))

	S := new(scalar.Scalar).MultiplyAdd(k, &priv.a, r)

	sig := make([]byte, SignatureSize)
	copy(sig[:32], Rbytes)
	copy(sig[32:], S.Bytes())
	return sig
}

// Sign produces a signature over message using the pure Ed25519 scheme
// (no domain separation, no prehashing).
func Sign(priv *PrivateKey, message []byte) []byte {
	return signWithFlag(priv, nil, message)
}

// SignWithContext produces a signature using the ed25519ctx scheme,
// which domain-separates on a caller-supplied context string.
func SignWithContext(priv *PrivateKey, message, context []byte) ([]byte, error) {
	if len(context) > MaxContextSize {
		return nil, errs.ErrContextTooLong
	}
	return signWithFlag(priv, dom2(0, context), message), nil
}

// SignPrehashed produces a signature using the ed25519ph scheme: message
// is hashed with SHA-512 before the usual signing procedure runs over
// the digest, per RFC 8032 §5.1.6.
func SignPrehashed(priv *PrivateKey, message, context []byte) ([]byte, error) {
	if len(context) > MaxContextSize {
		return nil, errs.ErrContextTooLong
	}
	ph := hash512.Sum512(message)
	return signWithFlag(priv, dom2(1, context), ph[:]), nil
}

// SignPrehashedDigest is like SignPrehashed but takes an already-computed
// 64-byte SHA-512 digest instead of hashing message itself, for callers
// (such as the C ABI in cmd/capi) that hash outside this package.
func SignPrehashedDigest(priv *PrivateKey, digest, context []byte) ([]byte, error) {
	if len(context) > MaxContextSize {
		return nil, errs.ErrContextTooLong
	}
	if len(digest) != hash512.Size {
		return nil, errs.ErrInvalidSeedLength
	}
	return signWithFlag(priv, dom2(1, context), digest), nil
}

// verifyWithFlag implements the common verification procedure shared by
// the pure, ctx, and ph variants.
func verifyWithFlag(pub *PublicKey, dom []byte, message, sig []byte) error {
	if len(sig) != SignatureSize {
		return errs.ErrSignatureInvalid
	}
	Rbytes := sig[:32]
	S, err := new(scalar.Scalar).SetCanonicalBytes(sig[32:])
	if err != nil {
		return errs.ErrSignatureInvalid
	}

	kHash := hash512.New()
	kHash.Write(dom)
	kHash.Write(Rbytes)
	kHash.Write(pub.b[:])
	kHash.Write(message)
	k := scalar.ReduceWide(kHash.Sum(nil))

	sB := edwards25519.NewIdentityPoint().ScalarBaseMult(S)
	kA := edwards25519.NewIdentityPoint().ScalarMult(k, &pub.point)
	negKA := edwards25519.NewIdentityPoint().Negate(kA)
	Rcheck := edwards25519.NewIdentityPoint().Add(sB, negKA)

	if subtle.ConstantTimeCompare(Rcheck.Bytes(), Rbytes) != 1 {
		return errs.ErrSignatureInvalid
	}
	return nil
}

// Verify reports whether sig is a valid pure-Ed25519 signature over
// message by pub, returning ErrSignatureInvalid otherwise.
func Verify(pub *PublicKey, message, sig []byte) error {
	return verifyWithFlag(pub, nil, message, sig)
}

// VerifyWithContext verifies an ed25519ctx signature.
func VerifyWithContext(pub *PublicKey, message, context, sig []byte) error {
	if len(context) > MaxContextSize {
		return errs.ErrContextTooLong
	}
	return verifyWithFlag(pub, dom2(0, context), message, sig)
}

// VerifyPrehashed verifies an ed25519ph signature; message is the
// original (un-hashed) message, hashed internally as SignPrehashed does.
func VerifyPrehashed(pub *PublicKey, message, context, sig []byte) error {
	if len(context) > MaxContextSize {
		return errs.ErrContextTooLong
	}
	ph := hash512.Sum512(message)
	return verifyWithFlag(pub, dom2(1, context), ph[:], sig)
}

// VerifyPrehashedDigest is like VerifyPrehashed but takes an
// already-computed 64-byte SHA-512 digest instead of hashing message
// itself, mirroring SignPrehashedDigest for callers that hash outside
// this package.
func VerifyPrehashedDigest(pub *PublicKey, digest, context, sig []byte) error {
	if len(context) > MaxContextSize {
		return errs.ErrContextTooLong
	}
	if len(digest) != hash512.Size {
		return errs.ErrSignatureInvalid
	}
	return verifyWithFlag(pub, dom2(1, context), digest, sig)
}
