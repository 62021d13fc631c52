package nummath

import (
	"math"

	num "github.com/fixedwidth/go-num"
)

// maxNewton caps the Newton iteration in sqrt. Starting from a 53-bit guess
// each step doubles the correct bits, so 64 steps is far beyond any
// precision this package will see.
const maxNewton = 64

// sqrt uses Newton's method, z = (z + x/z)/2, seeded from math.Sqrt of the
// mantissa and iterated until successive values stop moving.
func sqrt(x num.Extended) num.Extended {
	p := x.Prec()
	switch {
	case x.IsNaN(), x.IsZero(), x.IsInf(1):
		return x
	case x.Sign() < 0:
		return nan(p)
	}

	w := p + guardBits
	m, e := x.SetPrec(w).MantExp()
	if e%2 != 0 {
		m = m.Ldexp(1)
		e--
	}
	// m is now in [0.5, 2) and x == m * 2**e with e even.
	z := num.ExtendedFromFloat64(math.Sqrt(m.Float64()), w)
	for range maxNewton {
		next := z.Add(m.Quo(z)).Ldexp(-1)
		d := num.Difference(next, z)
		z = next
		if d.IsZero() || expOf(d) <= expOf(z)-int64(w)+1 {
			break
		}
	}
	return z.Ldexp(e / 2).SetPrec(p)
}

// hypot is max * sqrt(1 + (min/max)**2), so neither square can overflow.
func hypot(x, y num.Extended) num.Extended {
	p := max(x.Prec(), y.Prec())
	switch {
	case x.IsInf(0) || y.IsInf(0):
		return inf(1, p)
	case x.IsNaN() || y.IsNaN():
		return nan(p)
	}

	w := p + guardBits
	a, b := x.SetPrec(w).Abs(), y.SetPrec(w).Abs()
	if a.Cmp(b) < 0 {
		a, b = b, a
	}
	if a.IsZero() {
		return ext(0, p)
	}
	if b.IsZero() {
		return a.SetPrec(p)
	}
	r := b.Quo(a)
	return a.Mul(sqrt(ext(1, w).Add(r.Mul(r)))).SetPrec(p)
}
