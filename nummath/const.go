package nummath

import (
	"sync"

	num "github.com/fixedwidth/go-num"
)

// guardBits is the extra working precision each function carries over its
// argument.
const guardBits = 32

func ext(v int64, prec uint) num.Extended { return num.ExtendedFromInt64(v, prec) }

func nan(prec uint) num.Extended {
	z := ext(0, prec)
	return z.Quo(z)
}

func inf(sign int, prec uint) num.Extended {
	return ext(int64(sign), prec).Quo(ext(0, prec))
}

// expOf returns e such that 2^(e-1) <= |x| < 2^e, for finite non-zero x.
func expOf(x num.Extended) int64 {
	_, e := x.MantExp()
	return e
}

// negligible reports whether adding term to sum can no longer change sum at
// w bits.
func negligible(term, sum num.Extended, w uint) bool {
	if term.IsZero() {
		return true
	}
	if sum.IsZero() {
		return false
	}
	return expOf(term) < expOf(sum)-int64(w)-1
}

// maxTerms caps every series. None of the series here converges slower
// than one bit per term once the argument has been reduced.
func maxTerms(w uint) int { return int(w) + 64 }

// constant caches a value at the highest precision asked for so far.
type constant struct {
	mu      sync.Mutex
	v       num.Extended
	ok      bool
	compute func(w uint) num.Extended
}

func (c *constant) at(prec uint) num.Extended {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ok || c.v.Prec() < prec {
		c.v = c.compute(prec + guardBits).SetPrec(prec)
		c.ok = true
	}
	return c.v.SetPrec(prec)
}

var (
	piConst   = &constant{compute: machin}
	ln2Const  = &constant{compute: computeLn2}
	ln10Const = &constant{compute: computeLn10}
)

func pi(prec uint) num.Extended   { return piConst.at(prec) }
func ln2(prec uint) num.Extended  { return ln2Const.at(prec) }
func ln10(prec uint) num.Extended { return ln10Const.at(prec) }

// machin evaluates pi = 16*atan(1/5) - 4*atan(1/239).
func machin(w uint) num.Extended {
	a := atanInv(5, w).Mul(ext(16, w))
	b := atanInv(239, w).Mul(ext(4, w))
	return a.Sub(b)
}

// computeLn2 evaluates ln(2) = 2*atanh(1/3).
func computeLn2(w uint) num.Extended {
	return atanhInv(3, w).Ldexp(1)
}

// computeLn10 evaluates ln(10) = 3*ln(2) + ln(5/4), with
// ln(5/4) = 2*atanh(1/9).
func computeLn10(w uint) num.Extended {
	return ln2(w).Mul(ext(3, w)).Add(atanhInv(9, w).Ldexp(1))
}

// atanInv returns atan(1/n) from its Taylor series.
func atanInv(n int64, w uint) num.Extended {
	return inverseSeries(n, w, true)
}

// atanhInv returns atanh(1/n) from its Taylor series.
func atanhInv(n int64, w uint) num.Extended {
	return inverseSeries(n, w, false)
}

// inverseSeries sums (+/-)1/((2k+1)*n^(2k+1)), alternating signs for atan.
func inverseSeries(n int64, w uint, alternate bool) num.Extended {
	n2 := ext(n*n, w)
	pw := ext(1, w).Quo(ext(n, w))
	sum := pw
	for k := int64(1); k < int64(maxTerms(w)); k++ {
		pw = pw.Quo(n2)
		t := pw.Quo(ext(2*k+1, w))
		if alternate && k%2 == 1 {
			sum = sum.Sub(t)
		} else {
			sum = sum.Add(t)
		}
		if negligible(t, sum, w) {
			break
		}
	}
	return sum
}
