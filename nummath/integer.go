package nummath

import (
	"math/big"

	num "github.com/fixedwidth/go-num"
)

// intPow raises x to the power y with wrapping multiplication in T.
func intPow[T Number[T]](name string, x, y T) T {
	ye := y.Extend()
	if ye.Sign() < 0 {
		odd := !ye.Rem(num.ExtendedFromInt64(2, ye.Prec())).IsZero()
		return intPowNeg(name, x, odd)
	}
	e, _ := ye.BigInt()
	return intPowBits(x, e)
}

// intPowBits is left-to-right binary exponentiation. The loop runs once per
// bit of e, so an exponent of N bits costs at most 2N multiplications.
func intPowBits[T Number[T]](x T, e *big.Int) T {
	r := x.FromInt64(1)
	for i := e.BitLen() - 1; i >= 0; i-- {
		r = r.Mul(r)
		if e.Bit(i) == 1 {
			r = r.Mul(x)
		}
	}
	return r
}

// intPowNeg is x**-n truncated towards zero, for n > 0.
func intPowNeg[T Number[T]](name string, x T, odd bool) T {
	one := x.FromInt64(1)
	switch {
	case x.Sign() == 0:
		domainPanic(name, x)
	case x.Cmp(one) == 0:
		return one
	case x.Sign() < 0 && x.Add(one).Sign() == 0:
		if odd {
			return x
		}
		return one
	}
	return x.FromInt64(0)
}

func intLog2[T Number[T]](x T) T {
	xe := x.Extend()
	if xe.Sign() <= 0 {
		domainPanic("Log2", x)
	}
	_, e := xe.MantExp()
	return x.FromInt64(e - 1)
}

func intLog10[T Number[T]](x T) T {
	xe := x.Extend()
	if xe.Sign() <= 0 {
		domainPanic("Log10", x)
	}
	prec := xe.Prec()
	ten := num.ExtendedFromInt64(10, prec)

	// The estimate can only be off by one near exact powers of ten.
	r, _ := log10(xe).Trunc().Int64()
	p := powInt(ten, r)
	if p.Cmp(xe) > 0 {
		r--
	} else if p.Mul(ten).Cmp(xe) <= 0 {
		r++
	}
	return x.FromInt64(r)
}

// floorSqrt returns floor(sqrt(s)) for an integral s >= 0. s must carry
// enough precision that the square of the root is exact.
func floorSqrt(s num.Extended) num.Extended {
	if s.IsZero() {
		return s
	}
	one := num.ExtendedFromInt64(1, s.Prec())
	r := sqrt(s).Trunc()
	for r.Mul(r).Cmp(s) > 0 {
		r = r.Sub(one)
	}
	for {
		next := r.Add(one)
		if next.Mul(next).Cmp(s) > 0 {
			return r
		}
		r = next
	}
}
