package num

import (
	"math"
	"math/big"
)

// Float is a floating point number laid out by F: a sign, an exponent field
// and a mantissa field. The zero value is +0.
//
// Every arithmetic result is computed exactly and then rounded once, using
// the Format's rounding mode. Overflow produces an infinity (or the largest
// finite value, when the rounding mode points towards zero) and underflow
// produces subnormals and then zero; neither is an error.
//
// Floats are comparable values with no heap storage, so == compares the
// encodings and a Float can be a map key. Every NaN shares one encoding; +0
// and -0 do not. Use Cmp or Equal for numeric comparison.
type Float[F Format] struct {
	neg  bool
	exp  uint64
	mant mantWords
}

// mantWords holds the mantissa field, least significant word first. It
// bounds MantissaBits for every Format.
type mantWords [maxMantissaBits / 64]uint64

const maxMantissaBits = 256

func (x Float[F]) layout() *layout { return formatLayout[F]() }

func (x Float[F]) value() value {
	return x.layout().decode(x.neg, x.exp, bigFromWords(new(big.Int), x.mant[:]))
}

func (x Float[F]) mantZero() bool { return x.mant == mantWords{} }

func fromValue[F Format](v value) Float[F] {
	neg, exp, mant := formatLayout[F]().encode(v)
	out := Float[F]{neg: neg, exp: exp}
	fillFromBig(out.mant[:], mant)
	return out
}

// FloatFromBits assembles a Float from its raw fields. The exponent is
// masked to the exponent width and the mantissa to the mantissa width.
// Decimal mantissas that are not canonical are rounded into range.
func FloatFromBits[F Format](neg bool, exp uint64, mant *big.Int) Float[F] {
	l := formatLayout[F]()
	exp &= l.maxField
	m := new(big.Int)
	if mant != nil {
		m.Abs(mant)
		mask := new(big.Int).Sub(new(big.Int).Lsh(big1, l.p), big1)
		m.And(m, mask)
	}
	v := l.decode(neg, exp, m)
	if v.form == formFinite {
		v = l.round(v.neg, v.coeff, v.exp, false)
	}
	return fromValue[F](v)
}

// Bits returns the raw fields of x. mant is a fresh copy.
func (x Float[F]) Bits() (neg bool, exp uint64, mant *big.Int) {
	return x.neg, x.exp, bigFromWords(new(big.Int), x.mant[:])
}

// Inf returns +Inf if sign >= 0 and -Inf otherwise.
func Inf[F Format](sign int) Float[F] {
	return fromValue[F](infValue(sign < 0))
}

// NaN returns the quiet NaN of F.
func NaN[F Format]() Float[F] {
	return fromValue[F](nanValue())
}

// FloatFromFloat64 converts x, rounding when F is narrower than float64. If F
// has the float64 layout the bits are copied unchanged.
func FloatFromFloat64[F Format](x float64) Float[F] {
	l := formatLayout[F]()
	if l.radix == 2 && l.p == 52 && l.r == 11 {
		b := math.Float64bits(x)
		out := Float[F]{neg: b>>63 != 0, exp: b >> 52 & 0x7FF}
		out.mant[0] = b & (1<<52 - 1)
		if out.exp == 0x7FF && out.mant[0] != 0 {
			return NaN[F]()
		}
		return out
	}
	return fromValue[F](l.convert(fromFloat64(x), 2))
}

func FloatFromFloat32[F Format](x float32) Float[F] {
	l := formatLayout[F]()
	if l.radix == 2 && l.p == 23 && l.r == 8 {
		b := math.Float32bits(x)
		out := Float[F]{neg: b>>31 != 0, exp: uint64(b >> 23 & 0xFF)}
		out.mant[0] = uint64(b & (1<<23 - 1))
		if out.exp == 0xFF && out.mant[0] != 0 {
			return NaN[F]()
		}
		return out
	}
	return fromValue[F](l.convert(fromFloat64(float64(x)), 2))
}

// FloatFromInt converts a native integer, rounding if it has more digits
// than F can hold.
func FloatFromInt[F Format, T interface{ ~int | ~int8 | ~int16 | ~int32 | ~int64 }](v T) Float[F] {
	c := big.NewInt(int64(v))
	neg := c.Sign() < 0
	return fromValue[F](formatLayout[F]().convertInt(neg, c.Abs(c)))
}

func FloatFromUint[F Format, T interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}](v T) Float[F] {
	c := new(big.Int).SetUint64(uint64(v))
	return fromValue[F](formatLayout[F]().convertInt(false, c))
}

// FloatFromBigInt converts v, rounding if it has more digits than F can
// hold.
func FloatFromBigInt[F Format](v *big.Int) Float[F] {
	c := new(big.Int).Abs(v)
	return fromValue[F](formatLayout[F]().convertInt(v.Sign() < 0, c))
}

// FloatFromBigFloat converts v, rounding with F's rounding mode.
func FloatFromBigFloat[F Format](v *big.Float) Float[F] {
	return fromValue[F](formatLayout[F]().convert(fromBigFloat(v), 2))
}

// ConvertFloat rounds x into another format.
func ConvertFloat[To, From Format](x Float[From]) Float[To] {
	return fromValue[To](formatLayout[To]().convert(x.value(), x.layout().radix))
}

func (l *layout) convertInt(neg bool, mag *big.Int) value {
	if mag.Sign() == 0 {
		return zeroValue(false)
	}
	return l.convert(value{form: formFinite, neg: neg, coeff: mag}, l.radix)
}

func fromBigFloat(v *big.Float) value {
	switch {
	case v.IsInf():
		return infValue(v.Signbit())
	case v.Sign() == 0:
		return zeroValue(v.Signbit())
	}
	mant := new(big.Float)
	exp := v.MantExp(mant)
	c, _ := mant.SetMantExp(mant, int(mant.MinPrec())).Int(nil)
	neg := c.Sign() < 0
	return value{form: formFinite, neg: neg, coeff: c.Abs(c), exp: int64(exp) - int64(mant.MinPrec())}
}

func (x Float[F]) Add(y Float[F]) Float[F] {
	return fromValue[F](x.layout().add(x.value(), y.value()))
}

func (x Float[F]) Sub(y Float[F]) Float[F] {
	return fromValue[F](x.layout().sub(x.value(), y.value()))
}

func (x Float[F]) Mul(y Float[F]) Float[F] {
	return fromValue[F](x.layout().mul(x.value(), y.value()))
}

// Quo returns x / y following IEEE 754: a non-zero x divided by zero is a
// signed infinity, and 0/0 is NaN. Use CheckedQuo to detect the former.
func (x Float[F]) Quo(y Float[F]) Float[F] {
	v, _ := x.layout().quo(x.value(), y.value())
	return fromValue[F](v)
}

// CheckedQuo is Quo, but also returns ErrDivisionByZero alongside the signed
// infinity when a finite non-zero x is divided by zero.
func (x Float[F]) CheckedQuo(y Float[F]) (Float[F], error) {
	v, dz := x.layout().quo(x.value(), y.value())
	if dz {
		return fromValue[F](v), ErrDivisionByZero
	}
	return fromValue[F](v), nil
}

// Rem returns x - y*trunc(x/y), which is exact. The result has the sign of
// x. Rem of an infinity, or by zero, is NaN.
func (x Float[F]) Rem(y Float[F]) Float[F] {
	return fromValue[F](x.layout().rem(x.value(), y.value()))
}

// Neg flips the sign of x, including for zeros and infinities.
func (x Float[F]) Neg() Float[F] {
	if x.IsNaN() {
		return x
	}
	x.neg = !x.neg
	return x
}

func (x Float[F]) Abs() Float[F] {
	x.neg = false
	return x
}

// Trunc rounds x towards zero to an integer.
func (x Float[F]) Trunc() Float[F] {
	return fromValue[F](x.layout().trunc(x.value()))
}

func (x Float[F]) Inc() Float[F] { return x.Add(FloatFromInt[F](1)) }
func (x Float[F]) Dec() Float[F] { return x.Sub(FloatFromInt[F](1)) }

// Compare compares x and y. ordered is false if either is NaN, in which case
// c is always 0. -0 and +0 compare equal.
func (x Float[F]) Compare(y Float[F]) (c int, ordered bool) {
	return x.layout().cmp(x.value(), y.value())
}

// Cmp compares x and y, returning 0 if they are unordered. Callers that need
// to tell equality from NaN should use Compare.
func (x Float[F]) Cmp(y Float[F]) int {
	c, _ := x.Compare(y)
	return c
}

func (x Float[F]) Equal(y Float[F]) bool {
	c, ok := x.Compare(y)
	return ok && c == 0
}

// NotEqual is the negation of Equal, so it is true whenever either operand
// is NaN.
func (x Float[F]) NotEqual(y Float[F]) bool { return !x.Equal(y) }

func (x Float[F]) GreaterThan(y Float[F]) bool {
	c, ok := x.Compare(y)
	return ok && c > 0
}

func (x Float[F]) GreaterOrEqualTo(y Float[F]) bool {
	c, ok := x.Compare(y)
	return ok && c >= 0
}

func (x Float[F]) LessThan(y Float[F]) bool {
	c, ok := x.Compare(y)
	return ok && c < 0
}

func (x Float[F]) LessOrEqualTo(y Float[F]) bool {
	c, ok := x.Compare(y)
	return ok && c <= 0
}

// Sign returns -1, 0 or +1. Zeros of either sign and NaN return 0.
func (x Float[F]) Sign() int { return x.value().sign() }

// Signbit reports whether the sign bit of x is set.
func (x Float[F]) Signbit() bool { return x.neg }

func (x Float[F]) IsZero() bool { return x.exp == 0 && x.mantZero() }

func (x Float[F]) IsNaN() bool {
	return x.exp == x.layout().maxField && !x.mantZero()
}

// IsInf reports whether x is an infinity with the given sign: +Inf if sign
// is positive, -Inf if negative, either if zero.
func (x Float[F]) IsInf(sign int) bool {
	if x.exp != x.layout().maxField || !x.mantZero() {
		return false
	}
	return sign == 0 || (sign > 0) != x.neg
}

// IsInt reports whether x is finite and has no fractional part.
func (x Float[F]) IsInt() bool { return x.layout().isInt(x.value()) }

// Class identifies which of the five encodings a Float uses.
type Class int

const (
	ClassZero Class = iota
	ClassSubnormal
	ClassNormal
	ClassInfinity
	ClassNaN
)

func (c Class) String() string {
	switch c {
	case ClassZero:
		return "zero"
	case ClassSubnormal:
		return "subnormal"
	case ClassNormal:
		return "normal"
	case ClassInfinity:
		return "infinity"
	case ClassNaN:
		return "nan"
	}
	return "unknown"
}

func (x Float[F]) Class() Class {
	switch {
	case x.IsNaN():
		return ClassNaN
	case x.IsInf(0):
		return ClassInfinity
	case x.IsZero():
		return ClassZero
	case x.exp == 0:
		return ClassSubnormal
	}
	return ClassNormal
}

// AsFloat64 returns the float64 nearest to x. If F has the float64 layout the
// bits are copied unchanged.
func (x Float[F]) AsFloat64() float64 {
	l := x.layout()
	if l.radix == 2 && l.p == 52 && l.r == 11 {
		b := x.exp<<52 | x.mant[0]
		if x.neg {
			b |= 1 << 63
		}
		return math.Float64frombits(b)
	}
	return toFloat64(x.value(), l.radix)
}

func (x Float[F]) AsFloat32() float32 {
	return toFloat32(x.value(), x.layout().radix)
}

// AsBigFloat returns x as a big.Float with enough precision to hold it
// exactly when F is binary. NaN has no big.Float counterpart and panics with
// big.ErrNaN, as big.Float does.
func (x Float[F]) AsBigFloat() *big.Float {
	l := x.layout()
	v := x.value()
	prec := uint(l.digits)
	if l.radix != 2 {
		prec = uint(math.Ceil(float64(l.digits)*l.log2b)) + 64
	}
	return bigFloatFromValue(v, l.radix, prec)
}

func bigFloatFromValue(v value, radix uint, prec uint) *big.Float {
	out := new(big.Float).SetPrec(prec)
	switch v.form {
	case formNaN:
		panic(big.ErrNaN{})
	case formInf:
		return out.SetInf(v.neg)
	case formZero:
		out.SetInt64(0)
		if v.neg {
			out.Neg(out)
		}
		return out
	}
	if radix == 2 {
		out.SetInt(v.coeff)
		out.SetMantExp(out, int(v.exp))
	} else {
		b := new(big.Int).SetUint64(uint64(radix))
		e := v.exp
		if e < 0 {
			e = -e
		}
		p := new(big.Float).SetPrec(prec).SetInt(new(big.Int).Exp(b, big.NewInt(e), nil))
		out.SetInt(v.coeff)
		if v.exp < 0 {
			out.Quo(out, p)
		} else {
			out.Mul(out, p)
		}
	}
	if v.neg {
		out.Neg(out)
	}
	return out
}

// FromInt64 returns v converted to F; x itself is ignored.
func (x Float[F]) FromInt64(v int64) Float[F] { return FloatFromInt[F](v) }

// Extend returns x as an Extended with 64 bits more precision than F
// carries, which is exact for binary formats.
func (x Float[F]) Extend() Extended {
	l := x.layout()
	prec := uint(math.Ceil(float64(l.digits)*l.log2b)) + 64
	return extendedFromValue(x.value(), l.radix, prec)
}

// FromExtended rounds e into F.
func (x Float[F]) FromExtended(e Extended) Float[F] {
	return fromValue[F](x.layout().convert(e.v, 2))
}
