// Package vrf implements the "Verifiable Random Functions (VRFs)" IETF
// draft's ECVRF-EDWARDS25519-SHA512-ELL2 suite on top of this module's
// own edwards25519/scalar/ed25519 types, so a VRF proof never has to
// round-trip through another curve implementation.
package vrf

import (
	"bytes"
	"crypto/subtle"
	"fmt"

	"github.com/ycrypto/salty/ed25519"
	"github.com/ycrypto/salty/edwards25519"
	"github.com/ycrypto/salty/h2c"
	"github.com/ycrypto/salty/hash512"
	"github.com/ycrypto/salty/scalar"
)

const (
	// ProofSize is the length in bytes of a proof produced by Prove.
	ProofSize = 80

	// OutputSize is the length in bytes of the hash produced by
	// ProofToHash and returned alongside a valid proof by Verify.
	OutputSize = 64

	zeroString  = 0x00
	twoString   = 0x02
	threeString = 0x03
	suiteString = 0x04
)

// h2cDST is the domain separation tag required by ECVRF_hash_to_curve:
// "ECVRF_" || h2c_suite_ID_string || suite_string.
var h2cDST = []byte("ECVRF_edwards25519_XMD:SHA-512_ELL2_NU_\x04")

// Prove implements ECVRF_prove: it derives a deterministic proof that
// priv produced the VRF output for alphaString, without revealing
// priv's secret scalar.
func Prove(priv *ed25519.PrivateKey, alphaString []byte) []byte {
	// Step 1 (derive secret scalar x, nonce prefix, and public key Y)
	// are already done by ed25519.NewKeyFromSeed; priv carries them.
	x := priv.Scalar()
	noncePrefix := priv.NoncePrefix()
	Ybytes := priv.Public().Bytes()

	// 2. H = ECVRF_hash_to_curve(Y, alpha_string)
	H, err := hashToCurveH2cSuite(Ybytes, alphaString)
	if err != nil {
		panic("vrf: failed to hash to curve: " + err.Error())
	}
	hString := H.Bytes()

	// 4. Gamma = x*H
	gamma := new(edwards25519.Point).ScalarMult(x, H)
	gammaString := gamma.Bytes()

	// 5. k = ECVRF_nonce_generation(SK, h_string)
	kh := hash512.New()
	kh.Write(noncePrefix)
	kh.Write(hString)
	k := scalar.ReduceWide(kh.Sum(nil))

	// 6. c = ECVRF_hash_points(H, Gamma, k*B, k*H)
	kB := new(edwards25519.Point).ScalarBaseMult(k)
	kH := new(edwards25519.Point).ScalarMult(k, H)
	c := hashPoints(hString, gammaString, kB, kH)

	// 7. s = (k + c*x) mod q
	s := new(scalar.Scalar).MultiplyAdd(c, x, k)

	// 8. pi_string = point_to_string(Gamma) || int_to_string(c, 16) ||
	//    int_to_string(s, 32); c is truncated to its low 16 bytes.
	var piString [ProofSize]byte
	copy(piString[:32], gammaString)
	copy(piString[32:48], c.Bytes()[:16])
	copy(piString[48:], s.Bytes())

	return piString[:]
}

// ProofToHash implements ECVRF_proof_to_hash. It should only be called
// on a pi_string known to have come from Prove, or already checked by
// Verify.
func ProofToHash(piString []byte) ([]byte, error) {
	gamma, _, _, err := decodeProof(piString)
	if err != nil {
		return nil, fmt.Errorf("vrf: failed to decode proof: %w", err)
	}
	return gammaToHash(gamma), nil
}

// Verify implements ECVRF_verify, checking piString against pub and
// alphaString. It returns the VRF output alongside true on success.
func Verify(pub *ed25519.PublicKey, piString, alphaString []byte) (bool, []byte) {
	gamma, c, s, err := decodeProof(piString)
	if err != nil {
		return false, nil
	}
	gammaString := piString[:32]

	Ybytes := pub.Bytes()
	Y, err := new(edwards25519.Point).SetBytes(Ybytes)
	if err != nil {
		return false, nil
	}
	if !bytes.Equal(Y.Bytes(), Ybytes) {
		return false, nil
	}
	cY := new(edwards25519.Point).MultByCofactor(Y)
	if cY.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return false, nil
	}

	H, err := hashToCurveH2cSuite(Ybytes, alphaString)
	if err != nil {
		panic("vrf: failed to hash to curve: " + err.Error())
	}
	hString := H.Bytes()

	// U = s*B - c*Y
	sB := new(edwards25519.Point).ScalarBaseMult(s)
	cY2 := new(edwards25519.Point).ScalarMult(c, Y)
	U := new(edwards25519.Point).Add(sB, new(edwards25519.Point).Negate(cY2))

	// V = s*H - c*Gamma
	sH := new(edwards25519.Point).ScalarMult(s, H)
	cGamma := new(edwards25519.Point).ScalarMult(c, gamma)
	V := new(edwards25519.Point).Add(sH, new(edwards25519.Point).Negate(cGamma))

	cPrime := hashPoints(hString, gammaString, U, V)
	if c.Equal(cPrime) == 0 {
		return false, nil
	}
	return true, gammaToHash(gamma)
}

func gammaToHash(gamma *edwards25519.Point) []byte {
	cG := new(edwards25519.Point).MultByCofactor(gamma)
	h := hash512.New()
	h.Write([]byte{suiteString, threeString})
	h.Write(cG.Bytes())
	h.Write([]byte{zeroString})
	return h.Sum(nil)
}

func hashToCurveH2cSuite(Y, alphaString []byte) (*edwards25519.Point, error) {
	stringToHash := make([]byte, 0, len(Y)+len(alphaString))
	stringToHash = append(stringToHash, Y...)
	stringToHash = append(stringToHash, alphaString...)
	return h2c.Edwards25519_XMD_SHA512_ELL2_NU(h2cDST, stringToHash)
}

func hashPoints(p1, p2 []byte, p3, p4 *edwards25519.Point) *scalar.Scalar {
	h := hash512.New()
	h.Write([]byte{suiteString, twoString})
	h.Write(p1)
	h.Write(p2)
	h.Write(p3.Bytes())
	h.Write(p4.Bytes())
	h.Write([]byte{zeroString})
	digest := h.Sum(nil)

	var cBytes [32]byte
	copy(cBytes[:16], digest[:16])
	c, err := new(scalar.Scalar).SetCanonicalBytes(cBytes[:])
	if err != nil {
		panic("vrf: truncated hash output was non-canonical: " + err.Error())
	}
	return c
}

func decodeProof(piString []byte) (*edwards25519.Point, *scalar.Scalar, *scalar.Scalar, error) {
	if l := len(piString); l != ProofSize {
		return nil, nil, nil, fmt.Errorf("vrf: invalid proof size: %d", l)
	}

	gammaString := piString[:32]
	gamma, err := new(edwards25519.Point).SetBytes(gammaString)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("vrf: failed to decompress gamma: %w", err)
	}
	if subtle.ConstantTimeCompare(gamma.Bytes(), gammaString) != 1 {
		return nil, nil, nil, fmt.Errorf("vrf: non-canonical gamma")
	}

	var cBytes [32]byte
	copy(cBytes[:16], piString[32:48])
	c, err := new(scalar.Scalar).SetCanonicalBytes(cBytes[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("vrf: failed to deserialize c: %w", err)
	}

	s, err := new(scalar.Scalar).SetCanonicalBytes(piString[48:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("vrf: failed to deserialize s: %w", err)
	}

	return gamma, c, s, nil
}
