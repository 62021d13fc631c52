package nummath

import (
	num "github.com/fixedwidth/go-num"
)

// expHalvings is how many times exp halves its reduced argument before the
// series, squaring the same number of times afterwards.
const expHalvings = 16

// exp computes e**x. The argument is reduced to x = k*ln2 + r with
// |r| <= ln2/2, r is halved expHalvings times, the Taylor series is summed,
// and the result is squared back up and scaled by 2**k.
func exp(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsInf(1):
		return x
	case x.IsInf(-1):
		return ext(0, p)
	case x.IsZero():
		return ext(1, p)
	}
	if expOf(x) > 62 {
		if x.Sign() > 0 {
			return inf(1, p)
		}
		return ext(0, p)
	}

	w := p + guardBits + expHalvings
	wr := w + 64
	xw := x.SetPrec(wr)
	l2 := ln2(wr)
	k, _ := xw.Quo(l2).Round().Int64()
	r := xw.Sub(ext(k, wr).Mul(l2)).SetPrec(w).Ldexp(-expHalvings)

	one := ext(1, w)
	sum, term := one, one
	for n := int64(1); n < int64(maxTerms(w)); n++ {
		term = term.Mul(r).Quo(ext(n, w))
		sum = sum.Add(term)
		if negligible(term, sum, w) {
			break
		}
	}
	for range expHalvings {
		sum = sum.Mul(sum)
	}
	return sum.Ldexp(k).SetPrec(p)
}

// log computes the natural logarithm. x is split into m * 2**e with m in
// [sqrt(1/2), sqrt(2)), and log(m) = 2*atanh((m-1)/(m+1)) is summed as a
// series in which every term is at least five bits smaller than the last.
func log(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsInf(1):
		return x
	case x.Sign() < 0:
		return nan(p)
	case x.IsZero():
		return inf(-1, p)
	}

	w := p + guardBits
	m, e := x.SetPrec(w).MantExp()
	half := ext(1, w).Ldexp(-1)
	if m.Mul(m).Cmp(half) < 0 {
		m = m.Ldexp(1)
		e--
	}

	one := ext(1, w)
	z := m.Sub(one).Quo(m.Add(one))
	s := atanhSeries(z, w).Ldexp(1)
	if e != 0 {
		wl := w + 64
		s = s.SetPrec(wl).Add(ext(e, wl).Mul(ln2(wl)))
	}
	return s.SetPrec(p)
}

// atanhSeries sums z + z**3/3 + z**5/5 + ... for |z| < 1.
func atanhSeries(z num.Extended, w uint) num.Extended {
	if z.IsZero() {
		return z
	}
	z2 := z.Mul(z)
	pw, sum := z, z
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		pw = pw.Mul(z2)
		t := pw.Quo(ext(2*k+1, w))
		sum = sum.Add(t)
		if negligible(t, sum, w) {
			break
		}
	}
	return sum
}

// log2 is exact for powers of two and log(x)/ln(2) otherwise.
func log2(x num.Extended) num.Extended {
	p := x.Prec()
	if x.Sign() > 0 && !x.IsInf(0) {
		m, e := x.MantExp()
		if m.Cmp(ext(1, p).Ldexp(-1)) == 0 {
			return ext(e-1, p)
		}
	}
	w := p + guardBits
	return log(x.SetPrec(w)).Quo(ln2(w)).SetPrec(p)
}

func log10(x num.Extended) num.Extended {
	p := x.Prec()
	w := p + guardBits
	return log(x.SetPrec(w)).Quo(ln10(w)).SetPrec(p)
}

func exp2(x num.Extended) num.Extended {
	return pow(ext(2, x.Prec()), x)
}

func exp10(x num.Extended) num.Extended {
	return pow(ext(10, x.Prec()), x)
}

// pow computes x**y. Integer exponents that fit in an int64 go through
// powInt; everything else is exp(y*log(x)) with enough guard bits to absorb
// the magnitude of y*log(x).
func pow(x, y num.Extended) num.Extended {
	p := max(x.Prec(), y.Prec())
	switch {
	case y.IsZero():
		return ext(1, p)
	case x.IsNaN() || y.IsNaN():
		return nan(p)
	case y.IsInt() && expOf(y) <= 62:
		n, _ := y.Int64()
		return powInt(x.SetPrec(p), n)
	}

	one := ext(1, p)
	switch {
	case x.Sign() < 0:
		return nan(p)
	case x.Cmp(one) == 0:
		return one
	case x.IsZero():
		if y.Sign() > 0 {
			return ext(0, p)
		}
		return inf(1, p)
	case x.IsInf(1):
		if y.Sign() > 0 {
			return x.SetPrec(p)
		}
		return ext(0, p)
	case y.IsInf(0):
		if (x.Cmp(one) > 0) == (y.Sign() > 0) {
			return inf(1, p)
		}
		return ext(0, p)
	}

	// exp turns the absolute error in t into relative error, so t needs as
	// many extra bits as its integer part has.
	w := p + guardBits + 64
	if est := y.SetPrec(64).Mul(log(x.SetPrec(64))); !est.IsZero() && !est.IsInf(0) {
		w += uint(max(0, min(expOf(est), 64)))
	}
	t := y.SetPrec(w).Mul(log(x.SetPrec(w)))
	return exp(t).SetPrec(p)
}

// powInt computes x**n by binary exponentiation, carrying one extra bit of
// precision for every squaring.
func powInt(x num.Extended, n int64) num.Extended {
	p := x.Prec()
	if n == 0 {
		return ext(1, p)
	}
	if x.IsNaN() {
		return x
	}

	neg := n < 0
	u := uint64(n)
	if neg {
		u = -u
	}
	bits := uint(0)
	for v := u; v > 0; v >>= 1 {
		bits++
	}
	w := p + guardBits + bits

	r := ext(1, w)
	b := x.SetPrec(w)
	for ; u > 0; u >>= 1 {
		if u&1 == 1 {
			r = r.Mul(b)
		}
		b = b.Mul(b)
	}
	if neg {
		r = ext(1, w).Quo(r)
	}
	return r.SetPrec(p)
}
