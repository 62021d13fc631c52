/*
Package limb implements the multi-word kernel behind num.Uint and num.Int.

A vector is a little-endian []uint64: element 0 is the least significant
word. Unless a function says otherwise, every vector passed to a single call
has the same length, and z may alias x or y.
*/
package limb

import (
	"math/bits"
)

// maxWords is the widest vector the kernel keeps on the stack. Wider vectors
// still work but allocate scratch space.
const maxWords = 32

func scratch(buf []uint64, n int) []uint64 {
	if n <= len(buf) {
		s := buf[:n]
		for i := range s {
			s[i] = 0
		}
		return s
	}
	return make([]uint64, n)
}

// Add sets z = x + y and returns the carry out of the top word.
func Add(z, x, y []uint64) (c uint64) {
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return c
}

// Sub sets z = x - y and returns the borrow out of the top word.
func Sub(z, x, y []uint64) (b uint64) {
	for i := range z {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return b
}

// AddWord sets z = x + y and returns the carry.
func AddWord(z, x []uint64, y uint64) (c uint64) {
	c = y
	for i := range z {
		z[i], c = bits.Add64(x[i], c, 0)
	}
	return c
}

// SubWord sets z = x - y and returns the borrow.
func SubWord(z, x []uint64, y uint64) (b uint64) {
	b = y
	for i := range z {
		z[i], b = bits.Sub64(x[i], b, 0)
	}
	return b
}

// MulAddWord sets z = x*y + r and returns the high word of the result.
func MulAddWord(z, x []uint64, y, r uint64) (c uint64) {
	c = r
	for i := range z {
		hi, lo := bits.Mul64(x[i], y)
		var cc uint64
		z[i], cc = bits.Add64(lo, c, 0)
		c = hi + cc
	}
	return c
}

// AddMulWord adds x*y to z in place and returns the carry word. len(z) must
// equal len(x).
func AddMulWord(z, x []uint64, y uint64) (c uint64) {
	for i := range z {
		hi, lo := bits.Mul64(x[i], y)
		var cc uint64
		lo, cc = bits.Add64(lo, z[i], 0)
		hi += cc
		z[i], cc = bits.Add64(lo, c, 0)
		c = hi + cc
	}
	return c
}

// Neg sets z to the two's complement of x.
func Neg(z, x []uint64) {
	var b uint64
	for i := range z {
		z[i], b = bits.Sub64(0, x[i], b)
	}
}

func Not(z, x []uint64) {
	for i := range z {
		z[i] = ^x[i]
	}
}

func And(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] & y[i]
	}
}

func AndNot(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] &^ y[i]
	}
}

func Or(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] | y[i]
	}
}

func Xor(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] ^ y[i]
	}
}

// Cmp compares x and y as unsigned integers, from the most significant word
// down.
func Cmp(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] > y[i] {
			return 1
		} else if x[i] < y[i] {
			return -1
		}
	}
	return 0
}

func IsZero(x []uint64) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// BitLen returns the number of bits needed to represent x.
func BitLen(x []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*64 + bits.Len64(x[i])
		}
	}
	return 0
}

func LeadingZeros(x []uint64) uint {
	return uint(len(x)*64 - BitLen(x))
}

// TrailingZeros returns the number of trailing zero bits in x; it returns
// len(x)*64 when x is zero.
func TrailingZeros(x []uint64) uint {
	for i, w := range x {
		if w != 0 {
			return uint(i*64 + bits.TrailingZeros64(w))
		}
	}
	return uint(len(x) * 64)
}

// Shl sets z = x << s. Bits shifted past the top word are discarded and a
// shift of len(x)*64 or more clears z.
func Shl(z, x []uint64, s uint) {
	n := len(z)
	if s >= uint(n)*64 {
		clear(z)
		return
	}
	w, b := int(s/64), s%64
	for i := n - 1; i >= w; i-- {
		v := x[i-w] << b
		if b != 0 && i-w > 0 {
			v |= x[i-w-1] >> (64 - b)
		}
		z[i] = v
	}
	for i := 0; i < w; i++ {
		z[i] = 0
	}
}

// Shr sets z = x >> s, filling vacated high bits from fill, which must be 0
// for a logical shift or ^0 for an arithmetic one.
func Shr(z, x []uint64, s uint, fill uint64) {
	n := len(z)
	if s >= uint(n)*64 {
		for i := range z {
			z[i] = fill
		}
		return
	}
	w, b := int(s/64), s%64
	for i := 0; i < n-w; i++ {
		v := x[i+w] >> b
		if b != 0 {
			hi := fill
			if i+w+1 < n {
				hi = x[i+w+1]
			}
			v |= hi << (64 - b)
		}
		z[i] = v
	}
	for i := n - w; i < n; i++ {
		z[i] = fill
	}
}

// shlBits sets z = x << s for s < 64 and returns the bits shifted out.
func shlBits(z, x []uint64, s uint) (c uint64) {
	n := len(x)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	c = x[n-1] >> (64 - s)
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>(64-s)
	}
	z[0] = x[0] << s
	return c
}

// sigWords returns the length of x without its zero high words.
func sigWords(x []uint64) int {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return n
}
