package vrf

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ycrypto/salty/ed25519"
)

// These are the RFC 9381 (draft-irtf-cfrg-vrf) test vectors for
// ECVRF-EDWARDS25519-SHA512-ELL2, the same ones the package this was
// ported from (vrf/ecvrf_test.go) checks against.
func TestProveAndVerifyAgainstIETFVectors(t *testing.T) {
	vectors := []struct {
		sk    string
		pk    string
		alpha string
		pi    string
		beta  string
	}{
		{
			sk:    "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			pk:    "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			alpha: "",
			pi:    "7d9c633ffeee27349264cf5c667579fc583b4bda63ab71d001f89c10003ab46f25898f6bd7d4ed4c75f0282b0f7bb9d0e61b387b76db60b3cbf34bf09109ccb33fab742a8bddc0c8ba3caf5c0b75bb04",
			beta:  "9d574bf9b8302ec0fc1e21c3ec5368269527b87b462ce36dab2d14ccf80c53cccf6758f058c5b1c856b116388152bbe509ee3b9ecfe63d93c3b4346c1fbc6c54",
		},
		{
			sk:    "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			pk:    "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
			alpha: "72",
			pi:    "47b327393ff2dd81336f8a2ef10339112401253b3c714eeda879f12c509072ef9bf1a234f833f72d8fff36075fd9b836da28b5569e74caa418bae7ef521f2ddd35f5727d271ecc70b4a83c1fc8ebc40c",
			beta:  "38561d6b77b71d30eb97a062168ae12b667ce5c28caccdf76bc88e093e4635987cd96814ce55b4689b3dd2947f80e59aac7b7675f8083865b46c89b2ce9cc735",
		},
		{
			sk:    "c5aa8df43f9f837bedb7442f31dcb7b166d38535076f094b85ce3a2e0b4458f7",
			pk:    "fc51cd8e6218a1a38da47ed00230f0580816ed13ba3303ac5deb911548908025",
			alpha: "af82",
			pi:    "926e895d308f5e328e7aa159c06eddbe56d06846abf5d98c2512235eaa57fdce6187befa109606682503b3a1424f0f729ca0418099fbd86a48093e6a8de26307b8d93e02da927e6dd5b73c8f119aee0f",
			beta:  "121b7f9b9aaaa29099fc04a94ba52784d44eac976dd1a3cca458733be5cd090a7b5fbd148444f17f8daf1fb55cb04b1ae85a626e30a54b4b0f8abf4a43314a58",
		},
	}

	for i, vec := range vectors {
		seed := mustUnhex(t, vec.sk)
		pkBytes := mustUnhex(t, vec.pk)
		alpha := mustUnhex(t, vec.alpha)
		wantPi := mustUnhex(t, vec.pi)
		wantBeta := mustUnhex(t, vec.beta)

		priv, err := ed25519.NewKeyFromSeed(seed)
		if err != nil {
			t.Fatalf("[%d] NewKeyFromSeed: %v", i, err)
		}
		if !bytes.Equal(priv.Public().Bytes(), pkBytes) {
			t.Fatalf("[%d] derived public key does not match vector", i)
		}

		pi := Prove(priv, alpha)
		if !bytes.Equal(pi, wantPi) {
			t.Fatalf("[%d] pi = %x, want %x", i, pi, wantPi)
		}

		pub, err := ed25519.NewPublicKey(pkBytes)
		if err != nil {
			t.Fatalf("[%d] NewPublicKey: %v", i, err)
		}

		ok, beta := Verify(pub, pi, alpha)
		if !ok {
			t.Fatalf("[%d] Verify failed on its own proof", i)
		}
		if !bytes.Equal(beta, wantBeta) {
			t.Fatalf("[%d] beta = %x, want %x", i, beta, wantBeta)
		}

		fromHash, err := ProofToHash(pi)
		if err != nil {
			t.Fatalf("[%d] ProofToHash: %v", i, err)
		}
		if !bytes.Equal(fromHash, wantBeta) {
			t.Fatalf("[%d] ProofToHash = %x, want %x", i, fromHash, wantBeta)
		}

		tampered := append([]byte{}, pi...)
		tampered[0] ^= 0xa5
		if ok, _ := Verify(pub, tampered, alpha); ok {
			t.Fatalf("[%d] Verify accepted a tampered proof", i)
		}
	}
}

func mustUnhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
