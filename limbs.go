package num

import (
	"math"
	"math/big"
	"unsafe"

	"github.com/fixedwidth/go-num/internal/limb"
)

// Limbs is the set of word arrays that back Uint and Int. The array length
// fixes the width: Uint[[4]uint64] is a 256-bit unsigned integer. Words are
// stored least significant first.
type Limbs interface {
	[1]uint64 | [2]uint64 | [3]uint64 | [4]uint64 | [6]uint64 |
		[8]uint64 | [12]uint64 | [16]uint64 | [32]uint64
}

// words returns a slice aliasing the array behind n.
func words[L Limbs](n *L) []uint64 {
	return unsafe.Slice((*uint64)(unsafe.Pointer(n)), len(*n))
}

// ResizeUint converts u to another width, zero-extending when To is wider
// and discarding the high words when it is narrower.
func ResizeUint[To, From Limbs](u Uint[From]) (out Uint[To]) {
	copy(words(&out.n), words(&u.n))
	return out
}

// ResizeInt converts i to another width, sign-extending when To is wider
// and discarding the high words when it is narrower.
func ResizeInt[To, From Limbs](i Int[From]) (out Int[To]) {
	dst, src := words(&out.n), words(&i.n)
	copy(dst, src)
	if len(dst) > len(src) && i.Sign() < 0 {
		for j := len(src); j < len(dst); j++ {
			dst[j] = maxUint64
		}
	}
	return out
}

// float64Parts splits a finite x into sign, integer mantissa and binary
// exponent: |x| == mant * 2^exp exactly.
func float64Parts(x float64) (neg bool, mant uint64, exp int) {
	b := math.Float64bits(x)
	neg = b>>63 != 0
	e := int(b>>52) & 0x7FF
	mant = b & (1<<52 - 1)
	if e == 0 {
		return neg, mant, -1074
	}
	return neg, mant | 1<<52, e - 1075
}

// truncFloat64 stores the integer part of |x| into w modulo 2^(64*len(w)).
func truncFloat64(w []uint64, x float64) (neg bool) {
	neg, mant, exp := float64Parts(x)
	clear(w)
	w[0] = mant
	if exp > 0 {
		limb.Shl(w, w, uint(exp))
	} else if exp < 0 {
		limb.Shr(w, w, uint(-exp), 0)
	}
	return neg
}

// fillFromBig stores the low 64*len(w) bits of |b| into w.
func fillFromBig(w []uint64, b *big.Int) {
	clear(w)
	ws := b.Bits()
	switch intSize {
	case 64:
		for i := 0; i < len(w) && i < len(ws); i++ {
			w[i] = uint64(ws[i])
		}
	case 32:
		for i := 0; i < len(ws) && i/2 < len(w); i++ {
			w[i/2] |= uint64(ws[i]) << (32 * uint(i%2))
		}
	default:
		panic("num: unsupported bit size")
	}
}

// bigFromWords sets b to the unsigned value of w.
func bigFromWords(b *big.Int, w []uint64) *big.Int {
	switch intSize {
	case 64:
		ws := make([]big.Word, len(w))
		for i, v := range w {
			ws[i] = big.Word(v)
		}
		return b.SetBits(ws)
	case 32:
		ws := make([]big.Word, 2*len(w))
		for i, v := range w {
			ws[2*i] = big.Word(v & 0xFFFFFFFF)
			ws[2*i+1] = big.Word(v >> 32)
		}
		return b.SetBits(ws)
	default:
		panic("num: unsupported bit size")
	}
}
