// Package sha512block implements the SHA-512 compression function per
// FIPS 180-4 section 6.4.2. It has no notion of padding or incremental
// state; hash512 builds the streaming API on top of it.
package sha512block

import "encoding/binary"

const (
	// Size is the length in bytes of a SHA-512 digest.
	Size = 64
	// BlockSize is the block size, in bytes, on which Compress operates.
	BlockSize = 128
)

// IV holds the initial hash value H(0), the first 64 bits of the
// fractional parts of the square roots of the first 8 primes.
var IV = [Size]byte{
	0x6a, 0x09, 0xe6, 0x67, 0xf3, 0xbc, 0xc9, 0x08,
	0xbb, 0x67, 0xae, 0x85, 0x84, 0xca, 0xa7, 0x3b,
	0x3c, 0x6e, 0xf3, 0x72, 0xfe, 0x94, 0xf8, 0x2b,
	0xa5, 0x4f, 0xf5, 0x3a, 0x5f, 0x1d, 0x36, 0xf1,
	0x51, 0x0e, 0x52, 0x7f, 0xad, 0xe6, 0x82, 0xd1,
	0x9b, 0x05, 0x68, 0x8c, 0x2b, 0x3e, 0x6c, 0x1f,
	0x1f, 0x83, 0xd9, 0xab, 0xfb, 0x41, 0xbd, 0x6b,
	0x5b, 0xe0, 0xcd, 0x19, 0x13, 0x7e, 0x21, 0x79,
}

// k holds the first 64 bits of the fractional parts of the cube roots
// of the first 80 primes.
var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

func rotr(x uint64, n uint) uint64 { return (x >> n) | (x << (64 - n)) }
func ch(x, y, z uint64) uint64     { return (x & y) ^ (^x & z) }
func maj(x, y, z uint64) uint64    { return (x & y) ^ (x & z) ^ (y & z) }
func bigSigma0(x uint64) uint64    { return rotr(x, 28) ^ rotr(x, 34) ^ rotr(x, 39) }
func bigSigma1(x uint64) uint64    { return rotr(x, 14) ^ rotr(x, 18) ^ rotr(x, 41) }
func smallSigma0(x uint64) uint64  { return rotr(x, 1) ^ rotr(x, 8) ^ (x >> 7) }
func smallSigma1(x uint64) uint64  { return rotr(x, 19) ^ rotr(x, 61) ^ (x >> 6) }

// Compress processes as many complete 128-byte blocks from msg as
// available, updating digest in place, and returns the number of
// trailing bytes of msg (< BlockSize) that were not consumed.
func Compress(digest *[Size]byte, msg []byte) int {
	var h [8]uint64
	for i := range h {
		h[i] = binary.BigEndian.Uint64(digest[i*8 : i*8+8])
	}

	unprocessed := len(msg) % BlockSize
	n := len(msg) - unprocessed
	var w [80]uint64
	for off := 0; off < n; off += BlockSize {
		block := msg[off : off+BlockSize]
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint64(block[i*8 : i*8+8])
		}
		for i := 16; i < 80; i++ {
			w[i] = w[i-16] + smallSigma0(w[i-15]) + w[i-7] + smallSigma1(w[i-2])
		}

		a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
		for t := 0; t < 80; t++ {
			t1 := hh + bigSigma1(e) + ch(e, f, g) + k[t] + w[t]
			t2 := bigSigma0(a) + maj(a, b, c)
			hh, g, f, e = g, f, e, d+t1
			d, c, b, a = c, b, a, t1+t2
		}
		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += hh
	}

	for i, hi := range h {
		binary.BigEndian.PutUint64(digest[i*8:i*8+8], hi)
	}
	return unprocessed
}
