package num

import (
	"fmt"
	"math"
	"math/big"
	"sync"
)

// RoundingMode selects how inexact Float results are rounded. It is the same
// type as big.RoundingMode so the two can be passed back and forth freely.
type RoundingMode = big.RoundingMode

const (
	ToNearestEven = big.ToNearestEven
	ToNearestAway = big.ToNearestAway
	ToZero        = big.ToZero
	AwayFromZero  = big.AwayFromZero
	ToNegativeInf = big.ToNegativeInf
	ToPositiveInf = big.ToPositiveInf
)

// Format describes the layout of a Float: a sign bit, a mantissa field of
// MantissaBits bits holding digits in Radix, and an exponent field of
// ExponentBits bits stored with a bias of 2^(ExponentBits-1)-1.
// MantissaBits may be at most 256.
//
// Implementations are normally empty structs used only as type parameters.
// A Format may also implement Rounder to choose a rounding mode other than
// ToNearestEven.
type Format interface {
	MantissaBits() uint
	Radix() uint
	ExponentBits() uint
}

// Rounder is implemented by a Format that rounds with something other than
// ToNearestEven.
type Rounder interface {
	Rounding() RoundingMode
}

// IEEE 754 binary interchange formats.
type (
	Binary16  struct{}
	Binary32  struct{}
	Binary64  struct{}
	Binary128 struct{}
	Binary256 struct{}
)

func (Binary16) MantissaBits() uint { return 10 }
func (Binary16) Radix() uint        { return 2 }
func (Binary16) ExponentBits() uint { return 5 }

func (Binary32) MantissaBits() uint { return 23 }
func (Binary32) Radix() uint        { return 2 }
func (Binary32) ExponentBits() uint { return 8 }

func (Binary64) MantissaBits() uint { return 52 }
func (Binary64) Radix() uint        { return 2 }
func (Binary64) ExponentBits() uint { return 11 }

func (Binary128) MantissaBits() uint { return 112 }
func (Binary128) Radix() uint        { return 2 }
func (Binary128) ExponentBits() uint { return 15 }

func (Binary256) MantissaBits() uint { return 236 }
func (Binary256) Radix() uint        { return 2 }
func (Binary256) ExponentBits() uint { return 19 }

// Decimal formats. The mantissa field holds the coefficient as a plain
// binary integer; Decimal64 carries 16 significant digits and Decimal128
// carries 34.
type (
	Decimal64  struct{}
	Decimal128 struct{}
)

func (Decimal64) MantissaBits() uint { return 54 }
func (Decimal64) Radix() uint        { return 10 }
func (Decimal64) ExponentBits() uint { return 10 }

func (Decimal128) MantissaBits() uint { return 113 }
func (Decimal128) Radix() uint        { return 10 }
func (Decimal128) ExponentBits() uint { return 14 }

// layout is everything the engine needs to know about a format, derived once
// from (p, b, r, mode).
//
// A finite value is coeff * radix^q. Normal values have exactly digits
// significant digits in coeff; subnormals have fewer and q == qmin.
type layout struct {
	p, r   uint
	radix  uint
	digits int64
	hidden bool
	bias   int64
	qmin   int64
	qmax   int64
	mode   RoundingMode

	maxField uint64
	bigRadix *big.Int
	minCoeff *big.Int // radix^(digits-1)
	maxCoeff *big.Int // radix^digits
	hideBit  *big.Int // 2^p when the leading bit is hidden
	log2b    float64

	powMu sync.Mutex
	pows  []*big.Int
}

type layoutKey struct {
	p, b, r uint
	mode    RoundingMode
}

var layouts sync.Map

func formatLayout[F Format]() *layout {
	var f F
	mode := ToNearestEven
	if r, ok := any(f).(Rounder); ok {
		mode = r.Rounding()
	}
	if p := f.MantissaBits(); p > maxMantissaBits {
		panic(fmt.Errorf("num: invalid float format p=%d: mantissa wider than %d bits", p, maxMantissaBits))
	}
	return layoutFor(f.MantissaBits(), f.Radix(), f.ExponentBits(), mode)
}

func layoutFor(p, b, r uint, mode RoundingMode) *layout {
	key := layoutKey{p, b, r, mode}
	if l, ok := layouts.Load(key); ok {
		return l.(*layout)
	}
	l, _ := layouts.LoadOrStore(key, newLayout(p, b, r, mode))
	return l.(*layout)
}

func newLayout(p, b, r uint, mode RoundingMode) *layout {
	if p < 1 || b < 2 || r < 2 || r > 62 {
		panic(fmt.Errorf("num: invalid float format p=%d b=%d r=%d", p, b, r))
	}
	l := &layout{
		p:        p,
		r:        r,
		radix:    b,
		mode:     mode,
		maxField: 1<<r - 1,
		bigRadix: new(big.Int).SetUint64(uint64(b)),
		log2b:    math.Log2(float64(b)),
	}

	if b == 2 {
		l.digits = int64(p) + 1
		l.hidden = true
		l.hideBit = new(big.Int).Lsh(big1, p)
	} else {
		limit := new(big.Int).Lsh(big1, p)
		pow := big.NewInt(1)
		for {
			pow.Mul(pow, l.bigRadix)
			if pow.Cmp(limit) > 0 {
				break
			}
			l.digits++
		}
		if l.digits == 0 {
			panic(fmt.Errorf("num: invalid float format p=%d b=%d r=%d: radix wider than mantissa", p, b, r))
		}
	}

	l.bias = 1<<(r-1) - 1
	l.qmin = 1 - l.bias - (l.digits - 1)
	l.qmax = int64(l.maxField-1) - l.bias - (l.digits - 1)
	l.minCoeff = l.pow(l.digits - 1)
	l.maxCoeff = l.pow(l.digits)
	return l
}

// pow returns radix^k. The result is shared and must not be modified.
func (l *layout) pow(k int64) *big.Int {
	if k < 0 {
		panic("num: negative power")
	}
	if l.radix == 2 {
		return new(big.Int).Lsh(big1, uint(k))
	}
	if k > 2*l.digits+8 {
		return new(big.Int).Exp(l.bigRadix, big.NewInt(k), nil)
	}

	l.powMu.Lock()
	defer l.powMu.Unlock()
	if len(l.pows) == 0 {
		l.pows = append(l.pows, big.NewInt(1))
	}
	for int64(len(l.pows)) <= k {
		last := l.pows[len(l.pows)-1]
		l.pows = append(l.pows, new(big.Int).Mul(last, l.bigRadix))
	}
	return l.pows[k]
}

// ndigits returns the number of radix digits in c, or 0 if c is zero.
func (l *layout) ndigits(c *big.Int) int64 {
	if c == nil || c.Sign() == 0 {
		return 0
	}
	bl := c.BitLen()
	if l.radix == 2 {
		return int64(bl)
	}
	d := int64(float64(bl-1)/l.log2b) + 1
	for d > 1 && l.pow(d-1).Cmp(c) > 0 {
		d--
	}
	for l.pow(d).Cmp(c) <= 0 {
		d++
	}
	return d
}

// divPow returns c / radix^k along with the remainder and the divisor.
func (l *layout) divPow(c *big.Int, k int64) (quo, rem, div *big.Int) {
	div = l.pow(k)
	if l.radix == 2 {
		quo = new(big.Int).Rsh(c, uint(k))
		rem = new(big.Int).Sub(c, new(big.Int).Lsh(quo, uint(k)))
		return quo, rem, div
	}
	quo, rem = new(big.Int).QuoRem(c, div, new(big.Int))
	return quo, rem, div
}

func (l *layout) mulPow(c *big.Int, k int64) *big.Int {
	if k == 0 {
		return c
	}
	if l.radix == 2 {
		return new(big.Int).Lsh(c, uint(k))
	}
	return new(big.Int).Mul(c, l.pow(k))
}

// String describes the layout, for diagnostics.
func (l *layout) String() string {
	return fmt.Sprintf("float(p=%d,b=%d,r=%d,%s)", l.p, l.radix, l.r, l.mode)
}
