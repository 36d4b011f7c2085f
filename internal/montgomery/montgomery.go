// Package montgomery implements the X25519 Montgomery ladder: scalar
// multiplication on the Montgomery-form curve
//
//	v^2 = u^3 + 486662*u^2 + u
//
// using only the u-coordinate, per RFC 7748 §5. This is a from-scratch
// ladder (not the teacher's internal/montgomery, which backs Elligator2
// and depends on packages absent from this module's lineage); it is
// grounded on the Costello-Smith differential addition-and-doubling
// step as implemented in the original Rust source's
// differential_add_and_double/Mul<&Scalar> for &MontgomeryPoint, here
// expressed directly in RFC 7748's x2/z2/x3/z3 form.
package montgomery

import "github.com/ycrypto/salty/field"

// a24 is (486662-2)/4, the Montgomery ladder constant from RFC 7748 §5.
var a24 = mustFieldElementFromUint32(121665)

func mustFieldElementFromUint32(v uint32) *field.Element {
	var b [32]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	e, err := new(field.Element).SetBytesUnreduced(b[:])
	if err != nil {
		panic("montgomery: failed to construct constant: " + err.Error())
	}
	return e
}

// condSwap swaps *a and *b in place when swap == 1, and leaves them
// unchanged when swap == 0, without branching on swap.
func condSwap(swap int, a, b *field.Element) {
	na := new(field.Element).Select(a, b, swap)
	nb := new(field.Element).Select(b, a, swap)
	*a, *b = *na, *nb
}

// Ladder computes the X25519 scalar multiplication of the point with
// u-coordinate u by the already-clamped 32-byte little-endian scalar k,
// returning the resulting u-coordinate. It implements every step of the
// loop regardless of the bits of k, and never branches on a bit value
// except through condSwap's constant-time select.
func Ladder(k [32]byte, u *field.Element) *field.Element {
	x1 := u
	x2 := new(field.Element).One()
	z2 := new(field.Element).Zero()
	x3 := *u
	z3 := new(field.Element).One()

	swap := 0
	for t := 254; t >= 0; t-- {
		kt := int((k[t/8] >> uint(t%8)) & 1)
		swap ^= kt
		condSwap(swap, x2, &x3)
		condSwap(swap, z2, z3)
		swap = kt

		a := new(field.Element).Add(x2, z2)
		aa := new(field.Element).Square(a)
		b := new(field.Element).Subtract(x2, z2)
		bb := new(field.Element).Square(b)
		e := new(field.Element).Subtract(aa, bb)
		c := new(field.Element).Add(&x3, z3)
		d := new(field.Element).Subtract(&x3, z3)
		da := new(field.Element).Multiply(d, a)
		cb := new(field.Element).Multiply(c, b)

		x3sum := new(field.Element).Add(da, cb)
		x3 = *new(field.Element).Square(x3sum)

		z3diff := new(field.Element).Subtract(da, cb)
		z3diffSq := new(field.Element).Square(z3diff)
		z3 = new(field.Element).Multiply(x1, z3diffSq)

		x2 = new(field.Element).Multiply(aa, bb)

		aE := new(field.Element).Multiply(a24, e)
		aE.Add(aE, aa)
		z2 = new(field.Element).Multiply(e, aE)
	}
	condSwap(swap, x2, &x3)
	condSwap(swap, z2, z3)

	zInv := new(field.Element).Invert(z2)
	return new(field.Element).Multiply(x2, zInv)
}
