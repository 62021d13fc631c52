/*
Package nummath implements elementary functions for every number type in
package num, and for num.Extended itself.

Each function lifts its argument into num.Extended, evaluates there with
guard bits using argument reduction and power series, and lowers the result
back. Floats are rounded once on the way back. Integers get the result
truncated towards zero; where the true answer is itself an integer (Sqrt,
Hypot, Log2, Log10, Pow, Exp2, Exp10) it is computed exactly.

Float results follow IEEE conventions for special values: Sqrt(-1) is NaN,
Log(0) is -Inf and so on. Integers cannot hold those, so an integer argument
whose result is NaN or infinite panics with a *DomainError.

Every series and iteration is capped, so each call is bounded in time by the
precision of the type.
*/
package nummath

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	num "github.com/fixedwidth/go-num"
)

// Number is the set of operations nummath needs from a type. Every type in
// package num satisfies it.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Cmp(T) int
	Sign() int
	FromInt64(int64) T
	Extend() num.Extended
	FromExtended(num.Extended) T
	Limits() num.Limits[T]
}

// ErrDomain is matched by every *DomainError.
var ErrDomain = errors.New("nummath: argument out of domain")

// DomainError is the panic value when an integer argument has no finite
// result, such as Log(0) or Sqrt(-4).
type DomainError struct {
	Func string
	Arg  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("nummath: %s(%s) has no finite result", e.Func, e.Arg)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func isInteger[T Number[T]](x T) bool {
	return x.Limits().IsInteger
}

func domainPanic[T Number[T]](name string, args ...T) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	panic(&DomainError{Func: name, Arg: strings.Join(parts, ", ")})
}

// lower converts r back to T, panicking for integers that cannot hold it.
func lower[T Number[T]](name string, x T, r num.Extended, args ...T) T {
	if (r.IsNaN() || r.IsInf(0)) && isInteger(x) {
		domainPanic(name, args...)
	}
	return x.FromExtended(r)
}

func apply[T Number[T]](name string, x T, f func(num.Extended) num.Extended) T {
	return lower(name, x, f(x.Extend()), x)
}

// Abs returns |x|. For Uint that is x itself; for Int, Abs of the minimum
// value wraps to itself.
func Abs[T Number[T]](x T) T {
	if a, ok := any(x).(interface{ Abs() T }); ok {
		return a.Abs()
	}
	if x.Sign() < 0 {
		return x.FromInt64(0).Sub(x)
	}
	return x
}

func Sin[T Number[T]](x T) T  { return apply("Sin", x, sin) }
func Cos[T Number[T]](x T) T  { return apply("Cos", x, cos) }
func Tan[T Number[T]](x T) T  { return apply("Tan", x, tan) }
func Asin[T Number[T]](x T) T { return apply("Asin", x, asin) }
func Acos[T Number[T]](x T) T { return apply("Acos", x, acos) }
func Atan[T Number[T]](x T) T { return apply("Atan", x, atan) }

func Sinh[T Number[T]](x T) T  { return apply("Sinh", x, sinh) }
func Cosh[T Number[T]](x T) T  { return apply("Cosh", x, cosh) }
func Tanh[T Number[T]](x T) T  { return apply("Tanh", x, tanh) }
func Asinh[T Number[T]](x T) T { return apply("Asinh", x, asinh) }
func Acosh[T Number[T]](x T) T { return apply("Acosh", x, acosh) }
func Atanh[T Number[T]](x T) T { return apply("Atanh", x, atanh) }

func Exp[T Number[T]](x T) T { return apply("Exp", x, exp) }
func Log[T Number[T]](x T) T { return apply("Log", x, log) }

// Exp2 returns 2**x. For integers this is exact and wraps like repeated
// multiplication would.
func Exp2[T Number[T]](x T) T {
	if isInteger(x) {
		return intPow("Exp2", x.FromInt64(2), x)
	}
	return apply("Exp2", x, exp2)
}

// Exp10 returns 10**x. For integers this is exact and wraps like repeated
// multiplication would.
func Exp10[T Number[T]](x T) T {
	if isInteger(x) {
		return intPow("Exp10", x.FromInt64(10), x)
	}
	return apply("Exp10", x, exp10)
}

// Log2 returns the binary logarithm of x. For integers it is exactly
// floor(log2(x)).
func Log2[T Number[T]](x T) T {
	if isInteger(x) {
		return intLog2(x)
	}
	return apply("Log2", x, log2)
}

// Log10 returns the decimal logarithm of x. For integers it is exactly
// floor(log10(x)).
func Log10[T Number[T]](x T) T {
	if isInteger(x) {
		return intLog10(x)
	}
	return apply("Log10", x, log10)
}

// Sqrt returns the square root of x. For integers it is exactly
// floor(sqrt(x)).
func Sqrt[T Number[T]](x T) T {
	if isInteger(x) {
		xe := x.Extend()
		if xe.Sign() < 0 {
			domainPanic("Sqrt", x)
		}
		return x.FromExtended(floorSqrt(xe))
	}
	return apply("Sqrt", x, sqrt)
}

// Hypot returns sqrt(x*x + y*y) without overflow in the intermediate
// squares. For integers the result is exactly floor(sqrt(x*x + y*y)), which
// wraps if it does not fit in T.
func Hypot[T Number[T]](x, y T) T {
	xe, ye := x.Extend(), y.Extend()
	if isInteger(x) {
		return x.FromExtended(floorSqrt(xe.Mul(xe).Add(ye.Mul(ye))))
	}
	return lower("Hypot", x, hypot(xe, ye), x, y)
}

// Pow returns x**y. Integer exponents use binary exponentiation; anything
// else uses exp(y*log(x)).
//
// For integer types the result wraps like repeated multiplication would.
// Negative exponents truncate towards zero, so only 1 and -1 give non-zero
// results; Pow(0, y) for negative y panics with a *DomainError.
func Pow[T Number[T]](x, y T) T {
	if isInteger(x) {
		return intPow("Pow", x, y)
	}
	return lower("Pow", x, pow(x.Extend(), y.Extend()), x, y)
}

// PowInt returns x**n using binary exponentiation.
func PowInt[T Number[T]](x T, n int64) T {
	if isInteger(x) {
		if n < 0 {
			return intPowNeg("PowInt", x, n%2 != 0)
		}
		return intPowBits(x, new(big.Int).SetInt64(n))
	}
	return lower("PowInt", x, powInt(x.Extend(), n), x)
}

// Pi returns pi rounded (or, for integers, truncated) to T.
func Pi[T Number[T]]() T {
	var z T
	return z.FromExtended(pi(z.Extend().Prec()))
}

// Ln2 returns the natural logarithm of 2 rounded (or truncated) to T.
func Ln2[T Number[T]]() T {
	var z T
	return z.FromExtended(ln2(z.Extend().Prec()))
}
