// Package compat adapts ed25519.PrivateKey to the standard library's
// crypto.Signer interface, following the same SignerOptions/SchemeID
// pattern used by circl's ed25519 package to let one Sign method select
// between the pure, ed25519ctx, and ed25519ph variants. This lets this
// module's keys drop into crypto/tls-adjacent code that only knows about
// crypto.Signer, without this module depending on crypto/tls itself.
package compat

import (
	"crypto"
	"errors"
	"io"

	"github.com/ycrypto/salty/ed25519"
)

// Scheme selects which RFC 8032 signing variant Signer.Sign uses.
type Scheme uint

const (
	// SchemePure selects plain Ed25519 (no domain separation, no prehashing).
	SchemePure Scheme = iota
	// SchemeCtx selects ed25519ctx, context-separated signing.
	SchemeCtx
	// SchemePh selects ed25519ph, prehashed signing.
	SchemePh
)

// SignerOptions implements crypto.SignerOpts and carries the extra
// parameters Ed25519's variants need beyond a hash function identifier.
type SignerOptions struct {
	// Hash must be crypto.Hash(0) for the pure and ctx variants, or
	// crypto.SHA512 for the ph variant.
	crypto.Hash

	// Context is the domain-separation string for the ctx and ph
	// variants. Required (non-empty) for SchemeCtx; optional for
	// SchemePh; ignored for SchemePure.
	Context []byte

	// Scheme picks which of the three RFC 8032 variants Sign performs.
	// The zero value is SchemePure.
	Scheme Scheme
}

// HashFunc returns o.Hash, satisfying crypto.SignerOpts.
func (o SignerOptions) HashFunc() crypto.Hash { return o.Hash }

// Signer adapts an ed25519.PrivateKey to crypto.Signer.
type Signer struct {
	priv *ed25519.PrivateKey
}

// NewSigner wraps priv as a crypto.Signer.
func NewSigner(priv *ed25519.PrivateKey) *Signer {
	return &Signer{priv: priv}
}

// Public returns the crypto.PublicKey corresponding to the wrapped
// private key.
func (s *Signer) Public() crypto.PublicKey {
	return s.priv.Public()
}

// Sign produces a signature over message. opts selects the RFC 8032
// variant: pass compat.SignerOptions to choose ed25519ctx or ed25519ph;
// any other crypto.SignerOpts (including nil) falls back to the pure
// scheme, matching crypto/ed25519's convention that opts.HashFunc() must
// be zero for plain Ed25519. rand is ignored: this module takes no
// entropy source, per spec.
func (s *Signer) Sign(_ io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	so, ok := opts.(SignerOptions)
	if !ok {
		return ed25519.Sign(s.priv, message), nil
	}

	switch so.Scheme {
	case SchemePure:
		return ed25519.Sign(s.priv, message), nil
	case SchemeCtx:
		return ed25519.SignWithContext(s.priv, message, so.Context)
	case SchemePh:
		return ed25519.SignPrehashed(s.priv, message, so.Context)
	default:
		return nil, errors.New("compat: unknown signing scheme")
	}
}

// Verifier adapts an ed25519.PublicKey to the verification half of
// crypto.Signer's contract, for callers who only hold the public half.
type Verifier struct {
	pub *ed25519.PublicKey
}

// NewVerifier wraps pub.
func NewVerifier(pub *ed25519.PublicKey) *Verifier {
	return &Verifier{pub: pub}
}

// Verify checks sig against message using the scheme and context carried
// in opts, mirroring Signer.Sign's variant selection.
func (v *Verifier) Verify(message, sig []byte, opts crypto.SignerOpts) error {
	so, ok := opts.(SignerOptions)
	if !ok {
		return ed25519.Verify(v.pub, message, sig)
	}

	switch so.Scheme {
	case SchemePure:
		return ed25519.Verify(v.pub, message, sig)
	case SchemeCtx:
		return ed25519.VerifyWithContext(v.pub, message, so.Context, sig)
	case SchemePh:
		return ed25519.VerifyPrehashed(v.pub, message, so.Context, sig)
	default:
		return errors.New("compat: unknown signing scheme")
	}
}
