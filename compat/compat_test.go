package compat

import (
	"bytes"
	"crypto"
	"testing"

	"github.com/ycrypto/salty/ed25519"
)

func testKey(t *testing.T) *ed25519.PrivateKey {
	t.Helper()
	seed := bytes.Repeat([]byte{0x11}, 32)
	priv, err := ed25519.NewKeyFromSeed(seed)
	if err != nil {
		t.Fatal(err)
	}
	return priv
}

func TestSignerPureMatchesDirectSign(t *testing.T) {
	priv := testKey(t)
	s := NewSigner(priv)
	message := []byte("hello compat")

	sig, err := s.Sign(nil, message, crypto.Hash(0))
	if err != nil {
		t.Fatal(err)
	}

	want := ed25519.Sign(priv, message)
	if !bytes.Equal(sig, want) {
		t.Fatalf("Sign via compat.Signer = %x, want %x", sig, want)
	}

	if err := ed25519.Verify(priv.Public(), message, sig); err != nil {
		t.Fatalf("Verify failed on compat.Signer output: %v", err)
	}
}

func TestSignerCtxRoundTrips(t *testing.T) {
	priv := testKey(t)
	s := NewSigner(priv)
	message := []byte("hello compat")
	ctx := []byte("compat-test-ctx")

	sig, err := s.Sign(nil, message, SignerOptions{Context: ctx, Scheme: SchemeCtx})
	if err != nil {
		t.Fatal(err)
	}

	v := NewVerifier(priv.Public())
	if err := v.Verify(message, sig, SignerOptions{Context: ctx, Scheme: SchemeCtx}); err != nil {
		t.Fatalf("Verify rejected a valid ed25519ctx signature: %v", err)
	}
	if err := v.Verify(message, sig, SignerOptions{Context: []byte("wrong"), Scheme: SchemeCtx}); err == nil {
		t.Fatal("Verify accepted a signature under the wrong context")
	}
}

func TestSignerPhRoundTrips(t *testing.T) {
	priv := testKey(t)
	s := NewSigner(priv)
	message := []byte("hello compat")

	sig, err := s.Sign(nil, message, SignerOptions{Hash: crypto.SHA512, Scheme: SchemePh})
	if err != nil {
		t.Fatal(err)
	}

	v := NewVerifier(priv.Public())
	if err := v.Verify(message, sig, SignerOptions{Hash: crypto.SHA512, Scheme: SchemePh}); err != nil {
		t.Fatalf("Verify rejected a valid ed25519ph signature: %v", err)
	}
}

func TestSignerPublicMatchesKeyPublic(t *testing.T) {
	priv := testKey(t)
	s := NewSigner(priv)

	pub, ok := s.Public().(*ed25519.PublicKey)
	if !ok {
		t.Fatalf("Public() returned unexpected type %T", s.Public())
	}
	if !bytes.Equal(pub.Bytes(), priv.Public().Bytes()) {
		t.Fatal("Signer.Public() does not match priv.Public()")
	}
}
