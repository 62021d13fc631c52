package nummath

import (
	num "github.com/fixedwidth/go-num"
)

// smallHyper reports whether |x| < 2**-4, below which sinh and tanh use
// their series to avoid the cancellation in (e**x - e**-x).
func smallHyper(x num.Extended) bool {
	return expOf(x) <= -4
}

// sinhSeries sums x + x**3/3! + x**5/5! + ...
func sinhSeries(x num.Extended, w uint) num.Extended {
	x2 := x.Mul(x)
	term, sum := x, x
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		term = term.Mul(x2).Quo(ext((2*k)*(2*k+1), w))
		sum = sum.Add(term)
		if negligible(term, sum, w) {
			break
		}
	}
	return sum
}

func sinh(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() || x.IsZero() || x.IsInf(0) {
		return x
	}
	w := p + guardBits
	xw := x.SetPrec(w)
	if smallHyper(x) {
		return sinhSeries(xw, w).SetPrec(p)
	}
	ex := exp(xw)
	return ex.Sub(ext(1, w).Quo(ex)).Ldexp(-1).SetPrec(p)
}

func cosh(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN():
		return x
	case x.IsInf(0):
		return x.Abs()
	case x.IsZero():
		return ext(1, p)
	}
	w := p + guardBits
	ex := exp(x.SetPrec(w))
	return ex.Add(ext(1, w).Quo(ex)).Ldexp(-1).SetPrec(p)
}

// tanh saturates to +/-1 once e**-2|x| is below the working precision.
func tanh(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsZero():
		return x
	case x.IsInf(0):
		return ext(int64(x.Sign()), p)
	}
	w := p + guardBits
	xw := x.SetPrec(w)
	if xw.Abs().Cmp(ext(int64(w/2+4), w)) > 0 {
		return ext(int64(x.Sign()), p)
	}
	if smallHyper(x) {
		s := sinhSeries(xw, w)
		c := ext(1, w).Add(s.Mul(s))
		return s.Quo(sqrt(c)).SetPrec(p)
	}
	// tanh(x) = (e**2x - 1) / (e**2x + 1)
	one := ext(1, w)
	e2 := exp(xw.Ldexp(1))
	return e2.Sub(one).Quo(e2.Add(one)).SetPrec(p)
}

// asinh is sign(x)*log(|x| + sqrt(x*x + 1)).
func asinh(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() || x.IsZero() || x.IsInf(0) {
		return x
	}
	w := p + guardBits + 32
	a := x.SetPrec(w).Abs()
	one := ext(1, w)

	var r num.Extended
	if expOf(a) > int64(w/2)+1 {
		// x*x + 1 == x*x at this precision.
		r = log(a).Add(ln2(w))
	} else {
		// log(a + sqrt(a*a+1)) == 2*atanh(a / (1 + sqrt(a*a+1)))
		s := sqrt(a.Mul(a).Add(one))
		z := a.Quo(one.Add(s))
		r = atanhRatio(z, w)
	}
	if x.Sign() < 0 {
		r = r.Neg()
	}
	return r.SetPrec(p)
}

// acosh is log(x + sqrt(x*x - 1)) for x >= 1.
func acosh(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() {
		return x
	}
	w := p + guardBits + 32
	xw := x.SetPrec(w)
	one := ext(1, w)
	switch c := xw.Cmp(one); {
	case c < 0:
		return nan(p)
	case c == 0:
		return ext(0, p)
	case x.IsInf(1):
		return x
	}
	if expOf(xw) > int64(w/2)+1 {
		return log(xw).Add(ln2(w)).SetPrec(p)
	}
	// log(x + sqrt(x*x-1)) == 2*atanh(sqrt((x-1)/(x+1)))
	z := sqrt(xw.Sub(one).Quo(xw.Add(one)))
	return atanhRatio(z, w).SetPrec(p)
}

// atanh is log((1+x)/(1-x))/2, or the series directly for small x.
func atanh(x num.Extended) num.Extended {
	p := x.Prec()
	if x.IsNaN() || x.IsZero() {
		return x
	}
	w := p + guardBits + 32
	xw := x.SetPrec(w)
	one := ext(1, w)
	switch xw.Abs().Cmp(one) {
	case 1:
		return nan(p)
	case 0:
		return inf(x.Sign(), p)
	}
	return atanhRatio(xw, w).Ldexp(-1).SetPrec(p)
}

// atanhRatio returns 2*atanh(z) for |z| < 1. Small z goes straight to the
// series; larger z is evaluated as log((1+z)/(1-z)).
func atanhRatio(z num.Extended, w uint) num.Extended {
	if expOf(z) <= -4 {
		return atanhSeries(z, w).Ldexp(1)
	}
	one := ext(1, w)
	return log(one.Add(z).Quo(one.Sub(z)))
}
