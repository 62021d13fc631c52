package num

import (
	"math"
)

// Limits describes the range and precision of a numeric type T, mirroring
// the questions generic numeric code asks of the built-in types. Fields that
// do not apply to T hold their zero value.
type Limits[T any] struct {
	// Min is the smallest finite value for integers and the smallest
	// positive normal value for floats. Lowest is the most negative finite
	// value in both cases.
	Min    T
	Max    T
	Lowest T

	// Epsilon is the gap between 1 and the next larger value. RoundError is
	// the largest error of a single rounding, in units of Epsilon.
	Epsilon    T
	RoundError T

	// Digits is the number of radix digits represented without change;
	// Digits10 the number of decimal digits that survive a round trip
	// through T; MaxDigits10 the number of decimal digits needed to tell
	// every value of T apart.
	Digits      int
	Digits10    int
	MaxDigits10 int
	Radix       int

	MinExponent   int64
	MaxExponent   int64
	MinExponent10 int64
	MaxExponent10 int64

	IsSigned   bool
	IsInteger  bool
	IsExact    bool
	IsBounded  bool
	IsModulo   bool
	IsIEC559   bool
	Traps      bool
	RoundStyle RoundingMode

	HasInfinity     bool
	HasQuietNaN     bool
	HasSignalingNaN bool
	HasDenorm       bool
	TinynessBefore  bool

	Infinity     T
	QuietNaN     T
	SignalingNaN T
	DenormMin    T
}

// LimitsOf returns the limits of T.
func LimitsOf[T interface{ Limits() Limits[T] }]() Limits[T] {
	var zero T
	return zero.Limits()
}

func (u Uint[L]) Limits() Limits[Uint[L]] {
	n := u.Width()
	return Limits[Uint[L]]{
		Max:        MaxUint[L](),
		Digits:     n,
		Digits10:   int(float64(n) * math.Log10(2)),
		Radix:      2,
		IsInteger:  true,
		IsExact:    true,
		IsBounded:  true,
		IsModulo:   true,
		RoundStyle: ToZero,
	}
}

func (i Int[L]) Limits() Limits[Int[L]] {
	n := i.Width() - 1
	return Limits[Int[L]]{
		Min:        MinInt[L](),
		Max:        MaxInt[L](),
		Lowest:     MinInt[L](),
		Digits:     n,
		Digits10:   int(float64(n) * math.Log10(2)),
		Radix:      2,
		IsSigned:   true,
		IsInteger:  true,
		IsExact:    true,
		IsBounded:  true,
		IsModulo:   true,
		RoundStyle: ToZero,
	}
}

// roundError is half an ulp for the nearest modes and a whole ulp for the
// directed ones.
func (l *layout) roundError() value {
	switch l.mode {
	case ToNearestEven, ToNearestAway:
		return l.ratio(false, big1, big2, 0)
	}
	return l.round(false, big1, 0, false)
}

func (x Float[F]) Limits() Limits[Float[F]] {
	l := x.layout()
	log10b := math.Log10(float64(l.radix))
	minExp := l.qmin + l.digits
	maxExp := l.qmax + l.digits
	maxVal := fromValue[F](l.maxFinite(false))

	return Limits[Float[F]]{
		Min:        fromValue[F](value{form: formFinite, coeff: l.minCoeff, exp: l.qmin}),
		Max:        maxVal,
		Lowest:     maxVal.Neg(),
		Epsilon:    fromValue[F](l.round(false, big1, 1-l.digits, false)),
		RoundError: fromValue[F](l.roundError()),

		Digits:        int(l.digits),
		Digits10:      int(math.Floor(float64(l.digits-1) * log10b)),
		MaxDigits10:   int(math.Ceil(1 + float64(l.digits)*log10b)),
		Radix:         int(l.radix),
		MinExponent:   minExp,
		MaxExponent:   maxExp,
		MinExponent10: int64(math.Ceil(float64(minExp-1) * log10b)),
		MaxExponent10: int64(math.Ceil(float64(maxExp)*log10b)) - 1,

		IsSigned:   true,
		IsBounded:  true,
		IsIEC559:   l.isIEC559(),
		RoundStyle: l.mode,

		HasInfinity: true,
		HasQuietNaN: true,
		HasDenorm:   true,

		Infinity:  Inf[F](1),
		QuietNaN:  NaN[F](),
		DenormMin: fromValue[F](value{form: formFinite, coeff: big1, exp: l.qmin}),
	}
}

var iec559 = map[[2]uint]bool{
	{10, 5}: true, {23, 8}: true, {52, 11}: true, {112, 15}: true, {236, 19}: true,
}

func (l *layout) isIEC559() bool {
	return l.radix == 2 && l.mode == ToNearestEven && iec559[[2]uint{l.p, l.r}]
}

// Limits for Extended describe the precision x carries.
func (x Extended) Limits() Limits[Extended] {
	l := x.layout()
	return Limits[Extended]{
		Epsilon:     ExtendedFromInt64(1, x.Prec()).Ldexp(1 - l.digits),
		RoundError:  ExtendedFromFloat64(0.5, x.Prec()),
		Digits:      int(l.digits),
		Digits10:    int(math.Floor(float64(l.digits-1) * math.Log10(2))),
		MaxDigits10: int(math.Ceil(1 + float64(l.digits)*math.Log10(2))),
		Radix:       2,
		IsSigned:    true,
		RoundStyle:  ToNearestEven,
		HasInfinity: true,
		HasQuietNaN: true,
		Infinity:    Extended{prec: x.prec, v: infValue(false)},
		QuietNaN:    Extended{prec: x.prec, v: nanValue()},
	}
}
