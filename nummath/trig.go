package nummath

import (
	num "github.com/fixedwidth/go-num"
)

// maxReduceExp bounds the binary exponent of an argument that sin, cos and
// tan will reduce modulo pi/2. Beyond it the reduction would need pi to more
// bits than is reasonable and the result is NaN.
const maxReduceExp = 1 << 16

// reduce returns r and q such that x = q*(pi/2) + r with |r| <= pi/4,
// where only q mod 4 is reported. ok is false if x is too large to reduce.
func reduce(x num.Extended, w uint) (r num.Extended, q int64, ok bool) {
	e := expOf(x)
	if e > maxReduceExp {
		return x, 0, false
	}
	if e < 0 {
		return x.SetPrec(w), 0, true
	}

	wp := w + uint(e) + 64
	xw := x.SetPrec(wp)
	halfPi := pi(wp).Ldexp(-1)
	k := xw.Quo(halfPi).Round()
	r = xw.Sub(k.Mul(halfPi)).SetPrec(w)
	q, _ = k.Rem(ext(4, wp)).Int64()
	if q < 0 {
		q += 4
	}
	return r, q, true
}

// sinSeries sums r - r**3/3! + r**5/5! - ... for |r| <= pi/4.
func sinSeries(r num.Extended, w uint) num.Extended {
	if r.IsZero() {
		return r
	}
	r2 := r.Mul(r)
	term, sum := r, r
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		term = term.Mul(r2).Quo(ext((2*k)*(2*k+1), w)).Neg()
		sum = sum.Add(term)
		if negligible(term, sum, w) {
			break
		}
	}
	return sum
}

// cosSeries sums 1 - r**2/2! + r**4/4! - ... for |r| <= pi/4.
func cosSeries(r num.Extended, w uint) num.Extended {
	one := ext(1, w)
	if r.IsZero() {
		return one
	}
	r2 := r.Mul(r)
	term, sum := one, one
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		term = term.Mul(r2).Quo(ext((2*k-1)*(2*k), w)).Neg()
		sum = sum.Add(term)
		if negligible(term, sum, w) {
			break
		}
	}
	return sum
}

func sin(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsZero():
		return x
	case x.IsInf(0):
		return nan(p)
	}
	w := p + guardBits
	r, q, ok := reduce(x, w)
	if !ok {
		return nan(p)
	}
	var s num.Extended
	switch q {
	case 0:
		s = sinSeries(r, w)
	case 1:
		s = cosSeries(r, w)
	case 2:
		s = sinSeries(r, w).Neg()
	default:
		s = cosSeries(r, w).Neg()
	}
	return s.SetPrec(p)
}

func cos(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN():
		return x
	case x.IsInf(0):
		return nan(p)
	case x.IsZero():
		return ext(1, p)
	}
	w := p + guardBits
	r, q, ok := reduce(x, w)
	if !ok {
		return nan(p)
	}
	var c num.Extended
	switch q {
	case 0:
		c = cosSeries(r, w)
	case 1:
		c = sinSeries(r, w).Neg()
	case 2:
		c = cosSeries(r, w).Neg()
	default:
		c = sinSeries(r, w)
	}
	return c.SetPrec(p)
}

func tan(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsZero():
		return x
	case x.IsInf(0):
		return nan(p)
	}
	// The quotient compounds the error of both series, and near a multiple
	// of pi/2 one of them is tiny.
	w := p + 2*guardBits
	r, q, ok := reduce(x, w)
	if !ok {
		return nan(p)
	}
	s, c := sinSeries(r, w), cosSeries(r, w)
	if q%2 == 1 {
		// tan(r + pi/2) == -cos(r)/sin(r)
		s, c = c.Neg(), s
	}
	return s.Quo(c).SetPrec(p)
}

// atanHalvings is the most times atan applies
// atan(a) = 2*atan(a/(1+sqrt(1+a*a))) before summing the series.
const atanHalvings = 8

// atan reduces |x| > 1 with atan(x) = pi/2 - atan(1/x), then shrinks the
// argument by halving before the series.
func atan(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsZero():
		return x
	case x.IsInf(0):
		return pi(p).Ldexp(-1).Mul(ext(int64(x.Sign()), p))
	}

	w := p + guardBits + atanHalvings
	neg := x.Sign() < 0
	a := x.SetPrec(w).Abs()
	one := ext(1, w)

	inverted := a.Cmp(one) > 0
	if inverted {
		a = one.Quo(a)
	}

	sixteenth := one.Ldexp(-4)
	doublings := int64(0)
	for doublings < atanHalvings && a.Cmp(sixteenth) >= 0 {
		a = a.Quo(one.Add(sqrt(one.Add(a.Mul(a)))))
		doublings++
	}

	r := atanSeries(a, w).Ldexp(doublings)
	if inverted {
		r = pi(w).Ldexp(-1).Sub(r)
	}
	if neg {
		r = r.Neg()
	}
	return r.SetPrec(p)
}

// atanSeries sums a - a**3/3 + a**5/5 - ... for |a| < 1.
func atanSeries(a num.Extended, w uint) num.Extended {
	a2 := a.Mul(a)
	pw, sum := a, a
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		pw = pw.Mul(a2).Neg()
		t := pw.Quo(ext(2*k+1, w))
		sum = sum.Add(t)
		if negligible(t, sum, w) {
			break
		}
	}
	return sum
}

// asin is atan(x/sqrt((1-x)(1+x))). The factored form keeps the
// cancellation near |x| = 1 exact.
func asin(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() || x.IsZero() {
		return x
	}
	w := p + guardBits
	xw := x.SetPrec(w)
	one := ext(1, w)
	switch xw.Abs().Cmp(one) {
	case 1:
		return nan(p)
	case 0:
		return pi(p).Ldexp(-1).Mul(ext(int64(x.Sign()), p))
	}
	d := sqrt(one.Sub(xw).Mul(one.Add(xw)))
	return atan(xw.Quo(d)).SetPrec(p)
}

// acos is 2*atan(sqrt((1-x)/(1+x))).
func acos(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() {
		return x
	}
	w := p + guardBits
	xw := x.SetPrec(w)
	one := ext(1, w)
	switch c := xw.Abs().Cmp(one); {
	case c > 0:
		return nan(p)
	case c == 0 && x.Sign() < 0:
		return pi(p)
	case c == 0:
		return ext(0, p)
	}
	t := sqrt(one.Sub(xw).Quo(one.Add(xw)))
	return atan(t).Ldexp(1).SetPrec(p)
}
