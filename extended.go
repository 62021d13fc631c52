package num

import (
	"fmt"
	"math/big"
)

// Extended is a binary floating point value whose precision is chosen at run
// time. It is the working type that the fixed types lift into for elementary
// functions: integers lift exactly, and floats lift with guard bits so that
// a single rounding happens on the way back.
//
// The exponent range is wide enough that overflow is not a practical
// concern. Results of binary operations take the larger precision of the
// operands, and round to nearest even.
type Extended struct {
	prec uint
	v    value
}

const defaultExtendedPrec = 64

func extendedLayout(prec uint) *layout {
	if prec == 0 {
		prec = defaultExtendedPrec
	}
	return layoutFor(prec-1, 2, 62, ToNearestEven)
}

func (x Extended) layout() *layout { return extendedLayout(x.Prec()) }

// Prec returns the precision of x in bits.
func (x Extended) Prec() uint {
	if x.prec == 0 {
		return defaultExtendedPrec
	}
	return x.prec
}

// SetPrec rounds x to prec bits.
func (x Extended) SetPrec(prec uint) Extended {
	if prec == 0 {
		prec = defaultExtendedPrec
	}
	return Extended{prec: prec, v: extendedLayout(prec).convert(x.v, 2)}
}

func extendedFromValue(v value, radix uint, prec uint) Extended {
	return Extended{prec: prec, v: extendedLayout(prec).convert(v, radix)}
}

func extendedFromBig(neg bool, mag *big.Int, prec uint) Extended {
	v := zeroValue(false)
	if mag.Sign() != 0 {
		v = value{form: formFinite, neg: neg, coeff: mag}
	}
	return extendedFromValue(v, 2, prec)
}

func ExtendedFromInt64(v int64, prec uint) Extended {
	c := big.NewInt(v)
	return extendedFromBig(v < 0, c.Abs(c), prec)
}

func ExtendedFromBigInt(v *big.Int, prec uint) Extended {
	return extendedFromBig(v.Sign() < 0, new(big.Int).Abs(v), prec)
}

func ExtendedFromFloat64(v float64, prec uint) Extended {
	return extendedFromValue(fromFloat64(v), 2, prec)
}

// ExtendedFromString parses the same grammar as FloatFromString.
func ExtendedFromString(s string, prec uint) (Extended, error) {
	v, err := parseFloat(s)
	if err != nil {
		return Extended{}, &ConversionError{Type: "extended", Input: s, Err: err}
	}
	return extendedFromValue(v, 10, prec), nil
}

func (x Extended) widest(y Extended) *layout {
	return extendedLayout(max(x.Prec(), y.Prec()))
}

func (x Extended) with(l *layout, v value) Extended {
	return Extended{prec: uint(l.digits), v: v}
}

func (x Extended) Add(y Extended) Extended {
	l := x.widest(y)
	return x.with(l, l.add(x.v, y.v))
}

func (x Extended) Sub(y Extended) Extended {
	l := x.widest(y)
	return x.with(l, l.sub(x.v, y.v))
}

func (x Extended) Mul(y Extended) Extended {
	l := x.widest(y)
	return x.with(l, l.mul(x.v, y.v))
}

func (x Extended) Quo(y Extended) Extended {
	l := x.widest(y)
	v, _ := l.quo(x.v, y.v)
	return x.with(l, v)
}

func (x Extended) Rem(y Extended) Extended {
	l := x.widest(y)
	return x.with(l, l.rem(x.v, y.v))
}

func (x Extended) Neg() Extended {
	if x.v.form != formNaN {
		x.v = x.v.negate()
	}
	return x
}

func (x Extended) Abs() Extended {
	x.v.neg = false
	return x
}

// Cmp compares x and y, returning 0 if either is NaN.
func (x Extended) Cmp(y Extended) int {
	c, _ := x.widest(y).cmp(x.v, y.v)
	return c
}

func (x Extended) Sign() int    { return x.v.sign() }
func (x Extended) IsZero() bool { return x.v.form == formZero }
func (x Extended) IsNaN() bool  { return x.v.form == formNaN }

// IsInf reports whether x is an infinity with the given sign, or either
// sign if sign is 0.
func (x Extended) IsInf(sign int) bool {
	return x.v.form == formInf && (sign == 0 || (sign > 0) != x.v.neg)
}

func (x Extended) IsInt() bool { return x.layout().isInt(x.v) }

// Trunc rounds x towards zero to an integer.
func (x Extended) Trunc() Extended {
	x.v = x.layout().trunc(x.v)
	return x
}

// Round rounds x to the nearest integer, with ties to even.
func (x Extended) Round() Extended {
	if x.v.form != formFinite || x.v.exp >= 0 {
		return x
	}
	l := x.layout()
	k := -x.v.exp
	n := l.ndigits(x.v.coeff)
	if k > n {
		return Extended{prec: x.prec, v: zeroValue(x.v.neg)}
	}
	quo, rem, div := l.divPow(x.v.coeff, k)
	switch new(big.Int).Lsh(rem, 1).Cmp(div) {
	case 1:
		quo.Add(quo, big1)
	case 0:
		if quo.Bit(0) == 1 {
			quo.Add(quo, big1)
		}
	}
	x.v = l.round(x.v.neg, quo, 0, false)
	return x
}

// Int64 returns the integer part of x. ok is false if x is not finite or the
// integer part does not fit in an int64.
func (x Extended) Int64() (v int64, ok bool) {
	b, ok := x.BigInt()
	if !ok || !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

// BigInt returns the integer part of x. ok is false for NaN and infinities.
func (x Extended) BigInt() (*big.Int, bool) {
	switch x.v.form {
	case formZero:
		return new(big.Int), true
	case formFinite:
	default:
		return new(big.Int), false
	}
	t := x.Trunc().v
	if t.form == formZero {
		return new(big.Int), true
	}
	var b *big.Int
	if t.exp >= 0 {
		b = new(big.Int).Lsh(t.coeff, uint(t.exp))
	} else {
		b = new(big.Int).Rsh(t.coeff, uint(-t.exp))
	}
	if t.neg {
		b.Neg(b)
	}
	return b, true
}

// MantExp splits a finite non-zero x into a mantissa in [0.5, 1) with the
// sign of x and an exponent, so x == mant * 2^exp. Zero returns (0, 0), and
// infinities and NaN are returned unchanged.
func (x Extended) MantExp() (mant Extended, exp int64) {
	if x.v.form != formFinite {
		return x, 0
	}
	n := int64(x.v.coeff.BitLen())
	exp = x.v.exp + n
	mant = x
	mant.v.exp = -n
	return mant, exp
}

// Ldexp returns x * 2^exp.
func (x Extended) Ldexp(exp int64) Extended {
	if x.v.form != formFinite {
		return x
	}
	v := x.v
	v.exp += exp
	l := x.layout()
	return Extended{prec: x.prec, v: l.round(v.neg, v.coeff, v.exp, false)}
}

// AsBigFloat returns x as a big.Float of the same precision. NaN panics with
// big.ErrNaN.
func (x Extended) AsBigFloat() *big.Float {
	return bigFloatFromValue(x.v, 2, x.Prec())
}

// Float64 returns the float64 nearest to x.
func (x Extended) Float64() float64 { return toFloat64(x.v, 2) }

// String returns the shortest decimal that parses back to x at its own
// precision, in the same style as Float.String.
func (x Extended) String() string {
	return x.layout().formatValue(x.v, 'g', -1)
}

func (x Extended) Format(s fmt.State, c rune) {
	if x.v.form == formNaN {
		fmt.Fprint(s, "NaN")
		return
	}
	x.AsBigFloat().Format(s, c)
}

func (x Extended) FromInt64(v int64) Extended { return ExtendedFromInt64(v, x.Prec()) }

func (x Extended) Extend() Extended { return x }

func (x Extended) FromExtended(e Extended) Extended { return e.SetPrec(x.Prec()) }

// truncWords stores the integer part of |x| into w modulo 2^(64*len(w)) and
// reports whether x is negative. NaN and infinities store 0.
func (x Extended) truncWords(w []uint64) (neg bool) {
	clear(w)
	if x.v.form != formFinite {
		return false
	}
	v := x.v
	if v.exp >= int64(len(w)*64) {
		return false
	}
	var b *big.Int
	if v.exp >= 0 {
		b = new(big.Int).Lsh(v.coeff, uint(v.exp))
	} else if -v.exp < int64(v.coeff.BitLen()) {
		b = new(big.Int).Rsh(v.coeff, uint(-v.exp))
	} else {
		return false
	}
	fillFromBig(w, b)
	return v.neg
}
