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
	"crypto"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// ExpandMessageXMD implements expand_message_xmd from RFC 9380 §5.3.1,
// stretching msg into len(dst) pseudorandom bytes using hFunc and the
// domain separation tag domainSeparator.
func ExpandMessageXMD(dst []byte, hFunc crypto.Hash, domainSeparator, msg []byte) error {
	if !hFunc.Available() {
		return fmt.Errorf("h2c: hash function %v is not available", hFunc)
	}
	if len(domainSeparator) > 255 {
		return fmt.Errorf("h2c: domain separation tag too long")
	}

	h := hFunc.New()
	bInBytes := h.Size()
	sInBytes := h.BlockSize()

	lenInBytes := len(dst)
	ell := (lenInBytes + bInBytes - 1) / bInBytes
	if ell > 255 {
		return fmt.Errorf("h2c: requested output too long for expand_message_xmd")
	}

	dstPrime := append(append([]byte{}, domainSeparator...), byte(len(domainSeparator)))

	zPad := make([]byte, sInBytes)
	lInBytesStr := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	h.Reset()
	h.Write(zPad)
	h.Write(msg)
	h.Write(lInBytesStr)
	h.Write([]byte{0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h.Reset()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	bi := h.Sum(nil)

	out := make([]byte, 0, ell*bInBytes)
	out = append(out, bi...)
	for i := 2; i <= ell; i++ {
		xored := make([]byte, bInBytes)
		for j := range xored {
			xored[j] = b0[j] ^ bi[j]
		}
		h.Reset()
		h.Write(xored)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi = h.Sum(nil)
		out = append(out, bi...)
	}

	copy(dst, out[:lenInBytes])
	return nil
}

// ExpandMessageXOF implements expand_message_xof from RFC 9380 §5.3.2,
// stretching msg into len(dst) pseudorandom bytes using the extendable
// output function xofFunc and the domain separation tag domainSeparator.
func ExpandMessageXOF(dst []byte, xofFunc sha3.ShakeHash, domainSeparator, msg []byte) error {
	if len(domainSeparator) > 255 {
		return fmt.Errorf("h2c: domain separation tag too long")
	}

	lenInBytes := len(dst)
	dstPrime := append(append([]byte{}, domainSeparator...), byte(len(domainSeparator)))
	lInBytesStr := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	xofFunc.Reset()
	xofFunc.Write(msg)
	xofFunc.Write(lInBytesStr)
	xofFunc.Write(dstPrime)

	if _, err := xofFunc.Read(dst); err != nil {
		return fmt.Errorf("h2c: failed to read expanded message: %w", err)
	}
	return nil
}
