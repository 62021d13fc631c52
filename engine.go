package num

import (
	"math"
	"math/big"
)

type form uint8

const (
	formZero form = iota
	formFinite
	formInf
	formNaN
)

// value is a decoded Float: coeff * radix^exp for finite values. coeff is
// never modified once a value holds it, so values may share coefficients.
type value struct {
	form  form
	neg   bool
	coeff *big.Int
	exp   int64
}

func zeroValue(neg bool) value { return value{form: formZero, neg: neg} }
func infValue(neg bool) value  { return value{form: formInf, neg: neg} }
func nanValue() value          { return value{form: formNaN} }

func (v value) negate() value {
	v.neg = !v.neg
	return v
}

// top returns the exclusive upper exponent of a finite value: the value is
// below radix^top.
func (l *layout) top(v value) int64 {
	return v.exp + l.ndigits(v.coeff)
}

// round rounds neg * c * radix^q to the layout. sticky reports that the true
// value is slightly larger in magnitude than c * radix^q, by less than one
// unit of its last digit; callers that set it must leave at least one digit
// of c below the rounding point.
func (l *layout) round(neg bool, c *big.Int, q int64, sticky bool) value {
	if c.Sign() == 0 && !sticky {
		return zeroValue(neg)
	}
	if sticky {
		c = new(big.Int).Mul(c, l.bigRadix)
		c.Add(c, big1)
		q--
	}

	n := l.ndigits(c)
	tq := max(q+n-l.digits, l.qmin)

	switch {
	case tq > q:
		k := tq - q
		var quo *big.Int
		var half int
		inexact := true
		if k > n+1 {
			// c < radix^(k-1), which is below half a unit at tq.
			quo, half = new(big.Int), -1
		} else {
			var rem, div *big.Int
			quo, rem, div = l.divPow(c, k)
			inexact = rem.Sign() != 0
			half = new(big.Int).Lsh(rem, 1).Cmp(div)
		}
		if inexact && l.roundUp(neg, half, quo) {
			quo.Add(quo, big1)
			if quo.Cmp(l.maxCoeff) == 0 {
				quo.Set(l.minCoeff)
				tq++
			}
		}
		c, q = quo, tq

	case tq < q:
		c = l.mulPow(c, q-tq)
		q = tq
	}

	if q > l.qmax {
		return l.overflow(neg)
	}
	if c.Sign() == 0 {
		return zeroValue(neg)
	}
	return value{form: formFinite, neg: neg, coeff: c, exp: q}
}

func (l *layout) roundUp(neg bool, half int, quo *big.Int) bool {
	switch l.mode {
	case ToNearestEven:
		if half != 0 {
			return half > 0
		}
		return l.lastDigitOdd(quo)
	case ToNearestAway:
		return half >= 0
	case ToZero:
		return false
	case AwayFromZero:
		return true
	case ToNegativeInf:
		return neg
	case ToPositiveInf:
		return !neg
	}
	panic("num: unknown rounding mode")
}

func (l *layout) lastDigitOdd(c *big.Int) bool {
	if l.radix%2 == 0 {
		return c.Bit(0) == 1
	}
	return new(big.Int).Mod(c, l.bigRadix).Bit(0) == 1
}

// overflow returns the result for a magnitude beyond the largest finite
// value: infinity, unless the rounding mode points back towards zero.
func (l *layout) overflow(neg bool) value {
	switch l.mode {
	case ToZero:
		return l.maxFinite(neg)
	case ToNegativeInf:
		if !neg {
			return l.maxFinite(neg)
		}
	case ToPositiveInf:
		if neg {
			return l.maxFinite(neg)
		}
	}
	return infValue(neg)
}

func (l *layout) maxFinite(neg bool) value {
	c := new(big.Int).Sub(l.maxCoeff, big1)
	return value{form: formFinite, neg: neg, coeff: c, exp: l.qmax}
}

// exactZero is the sign of an exact zero sum: positive except when rounding
// towards negative infinity.
func (l *layout) exactZero() value {
	return zeroValue(l.mode == ToNegativeInf)
}

func (l *layout) add(x, y value) value {
	switch {
	case x.form == formNaN || y.form == formNaN:
		return nanValue()
	case x.form == formInf:
		if y.form == formInf && x.neg != y.neg {
			return nanValue()
		}
		return x
	case y.form == formInf:
		return y
	case x.form == formZero && y.form == formZero:
		if x.neg == y.neg {
			return x
		}
		return l.exactZero()
	case x.form == formZero:
		return y
	case y.form == formZero:
		return x
	}

	if l.top(x) < l.top(y) {
		x, y = y, x
	}

	// Give x a couple of guard digits. If all of y lies below them, y only
	// matters as a sticky bit.
	nx := l.ndigits(x.coeff)
	m := max(0, l.digits+2-nx)
	qx := x.exp - m
	if l.top(y) <= qx {
		c := l.mulPow(x.coeff, m)
		if x.neg != y.neg {
			c = new(big.Int).Sub(c, big1)
		}
		return l.round(x.neg, c, qx, true)
	}

	q := min(x.exp, y.exp)
	cx := l.mulPow(x.coeff, x.exp-q)
	cy := l.mulPow(y.coeff, y.exp-q)
	if x.neg {
		cx = new(big.Int).Neg(cx)
	}
	if y.neg {
		cy = new(big.Int).Neg(cy)
	}
	s := new(big.Int).Add(cx, cy)
	if s.Sign() == 0 {
		return l.exactZero()
	}
	neg := s.Sign() < 0
	return l.round(neg, s.Abs(s), q, false)
}

func (l *layout) sub(x, y value) value {
	if y.form == formNaN {
		return y
	}
	return l.add(x, y.negate())
}

func (l *layout) mul(x, y value) value {
	neg := x.neg != y.neg
	switch {
	case x.form == formNaN || y.form == formNaN:
		return nanValue()
	case x.form == formInf || y.form == formInf:
		if x.form == formZero || y.form == formZero {
			return nanValue()
		}
		return infValue(neg)
	case x.form == formZero || y.form == formZero:
		return zeroValue(neg)
	}
	return l.round(neg, new(big.Int).Mul(x.coeff, y.coeff), x.exp+y.exp, false)
}

// quo returns x / y. divByZero reports a finite non-zero x divided by zero,
// which produces a signed infinity.
func (l *layout) quo(x, y value) (v value, divByZero bool) {
	neg := x.neg != y.neg
	switch {
	case x.form == formNaN || y.form == formNaN:
		return nanValue(), false
	case x.form == formInf:
		if y.form == formInf {
			return nanValue(), false
		}
		return infValue(neg), false
	case y.form == formInf:
		return zeroValue(neg), false
	case y.form == formZero:
		if x.form == formZero {
			return nanValue(), false
		}
		return infValue(neg), true
	case x.form == formZero:
		return zeroValue(neg), false
	}
	return l.ratio(neg, x.coeff, y.coeff, x.exp-y.exp), false
}

// ratio rounds neg * (num / den) * radix^q, scaling num so the quotient
// carries at least two digits beyond the layout's precision.
func (l *layout) ratio(neg bool, num, den *big.Int, q int64) value {
	s := max(0, l.digits+2+l.ndigits(den)-l.ndigits(num))
	n := l.mulPow(num, s)
	quo, rem := new(big.Int).QuoRem(n, den, new(big.Int))
	return l.round(neg, quo, q-s, rem.Sign() != 0)
}

// rem returns x - y*trunc(x/y), computed exactly. The result has the sign of
// x and is always representable.
func (l *layout) rem(x, y value) value {
	switch {
	case x.form == formNaN || y.form == formNaN:
		return nanValue()
	case x.form == formInf || y.form == formZero:
		return nanValue()
	case y.form == formInf || x.form == formZero:
		return x
	}
	if l.top(x) < l.top(y)-1 {
		return x
	}

	var r *big.Int
	q := min(x.exp, y.exp)
	if x.exp >= y.exp {
		// x.coeff * radix^d mod y.coeff without building radix^d.
		d := big.NewInt(x.exp - y.exp)
		r = new(big.Int).Exp(l.bigRadix, d, y.coeff)
		r.Mul(r, x.coeff)
		r.Mod(r, y.coeff)
	} else {
		cy := l.mulPow(y.coeff, y.exp-x.exp)
		r = new(big.Int).Mod(x.coeff, cy)
	}
	if r.Sign() == 0 {
		return zeroValue(x.neg)
	}
	return l.round(x.neg, r, q, false)
}

// cmp compares x and y. ordered is false when either is NaN, in which case c
// is 0 and means nothing.
func (l *layout) cmp(x, y value) (c int, ordered bool) {
	if x.form == formNaN || y.form == formNaN {
		return 0, false
	}
	sx, sy := x.sign(), y.sign()
	if sx != sy {
		if sx < sy {
			return -1, true
		}
		return 1, true
	}
	if sx == 0 {
		return 0, true
	}
	c = l.cmpAbs(x, y)
	if sx < 0 {
		c = -c
	}
	return c, true
}

func (v value) sign() int {
	switch {
	case v.form == formZero || v.form == formNaN:
		return 0
	case v.neg:
		return -1
	}
	return 1
}

func (l *layout) cmpAbs(x, y value) int {
	switch {
	case x.form == formInf && y.form == formInf:
		return 0
	case x.form == formInf:
		return 1
	case y.form == formInf:
		return -1
	}
	tx, ty := l.top(x), l.top(y)
	if tx != ty {
		if tx < ty {
			return -1
		}
		return 1
	}
	q := min(x.exp, y.exp)
	return l.mulPow(x.coeff, x.exp-q).Cmp(l.mulPow(y.coeff, y.exp-q))
}

// trunc discards the fractional digits of x.
func (l *layout) trunc(x value) value {
	if x.form != formFinite || x.exp >= 0 {
		return x
	}
	k := -x.exp
	if k >= l.ndigits(x.coeff) {
		return zeroValue(x.neg)
	}
	quo, _, _ := l.divPow(x.coeff, k)
	return l.round(x.neg, quo, 0, false)
}

func (l *layout) isInt(x value) bool {
	switch x.form {
	case formZero:
		return true
	case formFinite:
		if x.exp >= 0 {
			return true
		}
		k := -x.exp
		if k >= l.ndigits(x.coeff) {
			return false
		}
		_, rem, _ := l.divPow(x.coeff, k)
		return rem.Sign() == 0
	}
	return false
}

// convert rounds v, which is expressed in radix from, into l.
func (l *layout) convert(v value, from uint) value {
	if v.form != formFinite {
		return v
	}
	if from == l.radix {
		return l.round(v.neg, v.coeff, v.exp, false)
	}

	// Estimate the top exponent in the target radix so values that are far
	// out of range never build enormous intermediates.
	log2From := math.Log2(float64(from))
	est := (float64(v.coeff.BitLen()) + float64(v.exp)*log2From) / l.log2b
	switch {
	case est > float64(l.qmax+l.digits+2):
		return l.overflow(v.neg)
	case est < float64(l.qmin-3):
		return l.round(v.neg, new(big.Int), l.qmin-2, true)
	}

	bf := new(big.Int).SetUint64(uint64(from))
	if v.exp >= 0 {
		n := new(big.Int).Exp(bf, big.NewInt(v.exp), nil)
		return l.round(v.neg, n.Mul(n, v.coeff), 0, false)
	}
	den := new(big.Int).Exp(bf, big.NewInt(-v.exp), nil)
	return l.ratio(v.neg, v.coeff, den, 0)
}

// fromFloat64 decodes x exactly; the result is in radix 2.
func fromFloat64(x float64) value {
	switch {
	case math.IsNaN(x):
		return nanValue()
	case math.IsInf(x, 0):
		return infValue(x < 0)
	case x == 0:
		return zeroValue(math.Signbit(x))
	}
	neg, mant, exp := float64Parts(x)
	return value{form: formFinite, neg: neg, coeff: new(big.Int).SetUint64(mant), exp: int64(exp)}
}

func binary64Layout() *layout { return layoutFor(52, 2, 11, ToNearestEven) }
func binary32Layout() *layout { return layoutFor(23, 2, 8, ToNearestEven) }

// toFloat64 rounds v, expressed in radix from, to the nearest float64.
func toFloat64(v value, from uint) float64 {
	l := binary64Layout()
	neg, exp, mant := l.encode(l.convert(v, from))
	b := exp<<52 | mant.Uint64()
	if neg {
		b |= 1 << 63
	}
	return math.Float64frombits(b)
}

func toFloat32(v value, from uint) float32 {
	l := binary32Layout()
	neg, exp, mant := l.encode(l.convert(v, from))
	b := uint32(exp)<<23 | uint32(mant.Uint64())
	if neg {
		b |= 1 << 31
	}
	return math.Float32frombits(b)
}

// decode unpacks the stored fields of a Float.
func (l *layout) decode(neg bool, exp uint64, mant *big.Int) value {
	mantZero := mant == nil || mant.Sign() == 0
	switch {
	case exp == l.maxField:
		if mantZero {
			return infValue(neg)
		}
		return nanValue()
	case exp == 0 && mantZero:
		return zeroValue(neg)
	case exp == 0:
		return value{form: formFinite, neg: neg, coeff: new(big.Int).Set(mant), exp: l.qmin}
	}
	c := new(big.Int)
	if mant != nil {
		c.Set(mant)
	}
	if l.hidden {
		c.Or(c, l.hideBit)
	}
	return value{form: formFinite, neg: neg, coeff: c, exp: int64(exp) - l.bias - (l.digits - 1)}
}

// encode packs a value produced by round into the stored fields.
func (l *layout) encode(v value) (neg bool, exp uint64, mant *big.Int) {
	switch v.form {
	case formZero:
		return v.neg, 0, new(big.Int)
	case formInf:
		return v.neg, l.maxField, new(big.Int)
	case formNaN:
		return false, l.maxField, new(big.Int).Lsh(big1, l.p-1)
	}
	if v.coeff.Cmp(l.minCoeff) < 0 {
		return v.neg, 0, v.coeff
	}
	exp = uint64(v.exp + l.bias + l.digits - 1)
	if l.hidden {
		return v.neg, exp, new(big.Int).Sub(v.coeff, l.hideBit)
	}
	return v.neg, exp, v.coeff
}
