// Command capi builds a C-callable shared library exposing this
// module's Ed25519 and X25519 operations under the salty_* symbol
// prefix, mirroring the cdylib cffi surface of the implementation this
// module was ported from (c-api/src/lib.rs): seed in, public key or
// signature out, no heap allocation crossing the C boundary beyond what
// cgo itself requires.
//
// Build with:
//
//	go build -buildmode=c-shared -o libsalty.so ./cmd/capi
package main

/*
#include <stddef.h>
#include <string.h>

typedef enum {
	SALTY_NO_ERROR = 0,
	SALTY_SIGNATURE_INVALID = 1,
	SALTY_PUBLIC_KEY_INVALID = 2,
	SALTY_CONTEXT_TOO_LONG = 3,
} salty_error_t;
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/ycrypto/salty/ed25519"
	"github.com/ycrypto/salty/errs"
	"github.com/ycrypto/salty/x25519"
)

const (
	seedLength      = 32
	publicKeyLength = 32
	signatureLength = 64
	sha512Length    = 64
	scalarLength    = 32
	fieldElementLen = 32
)

func keypairFromSeed(seedPtr *C.uchar) *ed25519.PrivateKey {
	seed := C.GoBytes(unsafe.Pointer(seedPtr), seedLength)
	priv, err := ed25519.NewKeyFromSeed(seed)
	if err != nil {
		// NewKeyFromSeed only fails on wrong seed length, which cannot
		// happen given the fixed-size C array this is called with.
		panic("capi: " + err.Error())
	}
	return priv
}

func errorCode(err error) C.salty_error_t {
	switch {
	case err == nil:
		return C.SALTY_NO_ERROR
	case errors.Is(err, errs.ErrContextTooLong):
		return C.SALTY_CONTEXT_TOO_LONG
	case errors.Is(err, errs.ErrPublicKeyBytesInvalid), errors.Is(err, errs.ErrWrongTwist):
		return C.SALTY_PUBLIC_KEY_INVALID
	default:
		return C.SALTY_SIGNATURE_INVALID
	}
}

//export salty_public_key
func salty_public_key(seed *C.uchar, publicKey *C.uchar) {
	priv := keypairFromSeed(seed)
	out := priv.Public().Bytes()
	C.memcpy(unsafe.Pointer(publicKey), unsafe.Pointer(&out[0]), publicKeyLength)
}

//export salty_sign
func salty_sign(seed *C.uchar, dataPtr *C.uchar, dataLen C.size_t, signature *C.uchar) {
	priv := keypairFromSeed(seed)
	data := C.GoBytes(unsafe.Pointer(dataPtr), C.int(dataLen))

	sig := ed25519.Sign(priv, data)
	C.memcpy(unsafe.Pointer(signature), unsafe.Pointer(&sig[0]), signatureLength)
}

//export salty_sign_with_context
func salty_sign_with_context(seed *C.uchar, dataPtr *C.uchar, dataLen C.size_t, contextPtr *C.uchar, contextLen C.size_t, signature *C.uchar) C.salty_error_t {
	priv := keypairFromSeed(seed)
	data := C.GoBytes(unsafe.Pointer(dataPtr), C.int(dataLen))
	context := goBytesOrNil(contextPtr, contextLen)

	sig, err := ed25519.SignWithContext(priv, data, context)
	if err != nil {
		return errorCode(err)
	}
	C.memcpy(unsafe.Pointer(signature), unsafe.Pointer(&sig[0]), signatureLength)
	return C.SALTY_NO_ERROR
}

//export salty_sign_prehashed
func salty_sign_prehashed(seed *C.uchar, prehashed *C.uchar, contextPtr *C.uchar, contextLen C.size_t, signature *C.uchar) C.salty_error_t {
	priv := keypairFromSeed(seed)
	digest := C.GoBytes(unsafe.Pointer(prehashed), sha512Length)
	context := goBytesOrNil(contextPtr, contextLen)

	sig, err := ed25519.SignPrehashedDigest(priv, digest, context)
	if err != nil {
		return errorCode(err)
	}
	C.memcpy(unsafe.Pointer(signature), unsafe.Pointer(&sig[0]), signatureLength)
	return C.SALTY_NO_ERROR
}

//export salty_verify
func salty_verify(publicKey *C.uchar, dataPtr *C.uchar, dataLen C.size_t, signature *C.uchar) C.salty_error_t {
	pub, err := ed25519.NewPublicKey(C.GoBytes(unsafe.Pointer(publicKey), publicKeyLength))
	if err != nil {
		return errorCode(err)
	}
	data := C.GoBytes(unsafe.Pointer(dataPtr), C.int(dataLen))
	sig := C.GoBytes(unsafe.Pointer(signature), signatureLength)

	return errorCode(ed25519.Verify(pub, data, sig))
}

//export salty_verify_with_context
func salty_verify_with_context(publicKey *C.uchar, dataPtr *C.uchar, dataLen C.size_t, signature *C.uchar, contextPtr *C.uchar, contextLen C.size_t) C.salty_error_t {
	pub, err := ed25519.NewPublicKey(C.GoBytes(unsafe.Pointer(publicKey), publicKeyLength))
	if err != nil {
		return errorCode(err)
	}
	data := C.GoBytes(unsafe.Pointer(dataPtr), C.int(dataLen))
	sig := C.GoBytes(unsafe.Pointer(signature), signatureLength)
	context := goBytesOrNil(contextPtr, contextLen)

	return errorCode(ed25519.VerifyWithContext(pub, data, context, sig))
}

//export salty_verify_prehashed
func salty_verify_prehashed(publicKey *C.uchar, prehashed *C.uchar, signature *C.uchar, contextPtr *C.uchar, contextLen C.size_t) C.salty_error_t {
	pub, err := ed25519.NewPublicKey(C.GoBytes(unsafe.Pointer(publicKey), publicKeyLength))
	if err != nil {
		return errorCode(err)
	}
	digest := C.GoBytes(unsafe.Pointer(prehashed), sha512Length)
	sig := C.GoBytes(unsafe.Pointer(signature), signatureLength)
	context := goBytesOrNil(contextPtr, contextLen)

	return errorCode(ed25519.VerifyPrehashedDigest(pub, digest, context, sig))
}

//export salty_agree
func salty_agree(scalarPtr *C.uchar, inputU *C.uchar, outputU *C.uchar) {
	var scalar, u [scalarLength]byte
	copy(scalar[:], C.GoBytes(unsafe.Pointer(scalarPtr), scalarLength))
	copy(u[:], C.GoBytes(unsafe.Pointer(inputU), fieldElementLen))

	shared := x25519.SharedSecret(&scalar, &u)
	C.memcpy(unsafe.Pointer(outputU), unsafe.Pointer(&shared[0]), fieldElementLen)
}

func goBytesOrNil(ptr *C.uchar, length C.size_t) []byte {
	if length == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(ptr), C.int(length))
}

func main() {}
