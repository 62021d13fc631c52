package nummath

import (
	"errors"
	"math"
	"math/big"
	"testing"

	num "github.com/fixedwidth/go-num"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

const (
	piDigits   = "3.14159265358979323846264338327950288419716939937510582097494459"
	eDigits    = "2.71828182845904523536028747135266249775724709369995957496696763"
	ln2Digits  = "0.693147180559945309417232121458176568075500134360255254120680009"
	ln10Digits = "2.30258509299404568401799145468436420760110148862877297603332790"
	sqrt2      = "1.41421356237309504880168872420969807856967187537694807317667974"
)

func f64(v float64) num.Float64 { return num.FloatFromFloat64[num.Binary64](v) }

func u128(s string) num.U128 {
	u, err := num.UintFromString[[2]uint64](s)
	if err != nil {
		panic(err)
	}
	return u
}

func i128(v int64) num.I128 { return num.IntFrom64[[2]uint64](v) }

// requireClose checks that got agrees with the decimal string want to at
// least bits bits of relative precision.
func requireClose(t *testing.T, want string, got num.Extended, bits int) {
	t.Helper()
	w, _, err := big.ParseFloat(want, 10, 400, big.ToNearestEven)
	require.NoError(t, err)
	g := got.AsBigFloat().SetPrec(400)
	d := new(big.Float).SetPrec(400).Sub(g, w)
	if d.Sign() == 0 {
		return
	}
	d.Quo(d, w).Abs(d)
	limit := new(big.Float).SetMantExp(big.NewFloat(1), -bits)
	require.True(t, d.Cmp(limit) < 0, "got %s, want %s, relative error %s", got, want, d.Text('g', 5))
}

func requireULPs(t *testing.T, want, got float64, ulps uint64) {
	t.Helper()
	if want == got {
		return
	}
	require.False(t, math.IsNaN(got), "got NaN, want %v", want)
	require.Equal(t, math.Signbit(want), math.Signbit(got), "got %v, want %v", got, want)
	a, b := math.Float64bits(math.Abs(want)), math.Float64bits(math.Abs(got))
	if a < b {
		a, b = b, a
	}
	require.LessOrEqual(t, a-b, ulps, "got %v, want %v", got, want)
}

func requireDomainPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrDomain))
		var de *DomainError
		require.True(t, errors.As(err, &de))
	}()
	fn()
}

func TestConstants(t *testing.T) {
	const prec = 256
	// The references carry 63 significant digits, about 209 bits.
	requireClose(t, piDigits, pi(prec), 200)
	requireClose(t, ln2Digits, ln2(prec), 200)
	requireClose(t, ln10Digits, ln10(prec), 200)

	// A lower precision request after a higher one reuses the cache.
	requireClose(t, piDigits, pi(64), 62)
	require.Equal(t, uint(64), pi(64).Prec())
}

func TestExtendedFunctions(t *testing.T) {
	const prec = 200
	one := num.ExtendedFromInt64(1, prec)
	two := num.ExtendedFromInt64(2, prec)

	requireClose(t, eDigits, Exp(one), 195)
	requireClose(t, ln10Digits, Log(num.ExtendedFromInt64(10, prec)), 195)
	requireClose(t, sqrt2, Sqrt(two), 195)
	requireClose(t, piDigits, Atan(one).Mul(num.ExtendedFromInt64(4, prec)), 195)
	requireClose(t, piDigits, Acos(one.Neg()), 195)
	requireClose(t, piDigits, Asin(one).Ldexp(1), 195)
	requireClose(t, "0.5", Sin(pi(prec).Quo(num.ExtendedFromInt64(6, prec))), 190)
	requireClose(t, "0.5", Cos(pi(prec).Quo(num.ExtendedFromInt64(3, prec))), 190)
	requireClose(t, "1", Tan(pi(prec).Ldexp(-2)), 190)
	requireClose(t, "1024", Exp2(num.ExtendedFromInt64(10, prec)), 195)
	requireClose(t, "10", Log2(num.ExtendedFromInt64(1024, prec)), 195)
	requireClose(t, "3", Log10(num.ExtendedFromInt64(1000, prec)), 190)
	requireClose(t, "5", Hypot(num.ExtendedFromInt64(3, prec), num.ExtendedFromInt64(4, prec)), 195)
}

func TestFloat64AgainstMath(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func(num.Float64) num.Float64
		ref  func(float64) float64
		args []float64
	}{
		{"sin", Sin[num.Float64], math.Sin, []float64{0.1, 0.5, 1, 2, 3, -1.25, 10, 100}},
		{"cos", Cos[num.Float64], math.Cos, []float64{0.1, 0.5, 1, 2, 3, -1.25, 10, 100}},
		{"tan", Tan[num.Float64], math.Tan, []float64{0.1, 0.5, 1, -1.25, 10}},
		{"asin", Asin[num.Float64], math.Asin, []float64{0.1, 0.5, -0.9, 0.999}},
		{"acos", Acos[num.Float64], math.Acos, []float64{0.1, 0.5, -0.9}},
		{"atan", Atan[num.Float64], math.Atan, []float64{0.01, 0.5, 1, -3, 1e10}},
		{"sinh", Sinh[num.Float64], math.Sinh, []float64{0.01, 0.5, 1, -3, 20}},
		{"cosh", Cosh[num.Float64], math.Cosh, []float64{0.01, 0.5, 1, -3, 20}},
		{"tanh", Tanh[num.Float64], math.Tanh, []float64{0.01, 0.5, 1, -3, 20}},
		{"asinh", Asinh[num.Float64], math.Asinh, []float64{0.01, 0.5, 1, -3, 1e20}},
		{"acosh", Acosh[num.Float64], math.Acosh, []float64{1.5, 2, 10, 1e20}},
		{"atanh", Atanh[num.Float64], math.Atanh, []float64{0.01, 0.5, -0.9}},
		{"exp", Exp[num.Float64], math.Exp, []float64{-10, -1, 0.5, 1, 10, 700}},
		{"log", Log[num.Float64], math.Log, []float64{1e-300, 0.5, 2, 10, 1e300}},
		{"log2", Log2[num.Float64], math.Log2, []float64{0.3, 3, 1024, 1e100}},
		{"log10", Log10[num.Float64], math.Log10, []float64{0.3, 3, 1000, 1e100}},
		{"sqrt", Sqrt[num.Float64], math.Sqrt, []float64{1e-300, 0.5, 2, 3, 1e300}},
		{"exp2", Exp2[num.Float64], math.Exp2, []float64{-3.5, 0.5, 10, 100.25}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, a := range tc.args {
				got := tc.fn(f64(a)).AsFloat64()
				requireULPs(t, tc.ref(a), got, 2)
			}
		})
	}
}

func TestFloat64Binary(t *testing.T) {
	requireULPs(t, math.Hypot(3e200, 4e200), Hypot(f64(3e200), f64(4e200)).AsFloat64(), 1)
	requireULPs(t, math.Pow(2.5, 3.5), Pow(f64(2.5), f64(3.5)).AsFloat64(), 2)
	requireULPs(t, math.Pow(-2, 3), Pow(f64(-2), f64(3)).AsFloat64(), 0)
	requireULPs(t, math.Pow(1.1, -20), PowInt(f64(1.1), -20).AsFloat64(), 2)
}

func TestFloat64SmallArguments(t *testing.T) {
	// Each of these reduces its argument through an integer part.
	requireULPs(t, math.E, Exp(f64(1)).AsFloat64(), 1)
	requireULPs(t, math.Sin(2), Sin(f64(2)).AsFloat64(), 2)
	requireULPs(t, math.Cos(3), Cos(f64(3)).AsFloat64(), 2)
	require.Equal(t, 8.0, Pow(f64(2), f64(3)).AsFloat64())

	require.Equal(t, "8", Pow(u128("2"), u128("3")).String())
	require.Equal(t, "1024", Exp2(u128("10")).String())
	require.Equal(t, "1000", Exp10(i128(3)).String())
	require.Equal(t, "2", Log10(u128("100")).String())
}

func TestFloat64CorrectlyRounded(t *testing.T) {
	// math.Acos is a few ulp out here; this is the correctly rounded value.
	require.Equal(t, 0.044725087168733454, Acos(f64(0.999)).AsFloat64())
}

// wide evaluates f on x at 256 bits and rounds once to float64.
func wide(f func(num.Extended) num.Extended, x float64) float64 {
	return f(num.ExtendedFromFloat64(x, 256)).Float64()
}

func TestFloat64PowLargeProduct(t *testing.T) {
	for _, tc := range []struct{ x, y float64 }{
		{1.0001, 10000.5},
		{0.5, 1000.25},
		{3.7, 123.456},
		{1e-3, -90.5},
		{1.5, 1700.3},
		{0.999, -650000.75},
	} {
		got := Pow(f64(tc.x), f64(tc.y)).AsFloat64()
		want := pow(num.ExtendedFromFloat64(tc.x, 256), num.ExtendedFromFloat64(tc.y, 256)).Float64()
		require.Equal(t, want, got, "Pow(%v, %v)", tc.x, tc.y)
		require.InEpsilon(t, math.Pow(tc.x, tc.y), got, 1e-12, "Pow(%v, %v)", tc.x, tc.y)
	}
}

func TestFloat64TanNearZero(t *testing.T) {
	for _, x := range []float64{1e-5, -3e-8, 0.001, 0x1p-30, 1e-300} {
		got := Tan(f64(x)).AsFloat64()
		require.Equal(t, wide(tan, x), got, "Tan(%v)", x)
		requireULPs(t, math.Tan(x), got, 1)
	}

	// Near multiples of pi the reduced argument is tiny.
	for _, x := range []float64{math.Pi, -2 * math.Pi, 3 * math.Pi} {
		got := Tan(f64(x)).AsFloat64()
		require.Equal(t, wide(tan, x), got, "Tan(%v)", x)
	}
}

func TestFloat64Specials(t *testing.T) {
	qnan, posInf := math.NaN(), math.Inf(1)

	require.True(t, Sqrt(f64(-1)).IsNaN())
	require.True(t, Log(f64(0)).IsInf(-1))
	require.True(t, Log(f64(-1)).IsNaN())
	require.True(t, Exp(f64(posInf)).IsInf(1))
	require.True(t, Exp(f64(math.Inf(-1))).IsZero())
	require.True(t, Exp(f64(1e300)).IsInf(1))
	require.True(t, Sin(f64(posInf)).IsNaN())
	require.True(t, Sin(f64(qnan)).IsNaN())
	require.True(t, Asin(f64(2)).IsNaN())
	require.True(t, Acosh(f64(0.5)).IsNaN())
	require.True(t, Atanh(f64(1)).IsInf(1))
	require.True(t, Atanh(f64(-1)).IsInf(-1))
	require.True(t, Pow(f64(-2), f64(0.5)).IsNaN())
	require.True(t, Pow(f64(0), f64(-1)).IsInf(1))

	require.Equal(t, math.Pi/2, Atan(f64(posInf)).AsFloat64())
	require.Equal(t, 1.0, Tanh(f64(100)).AsFloat64())
	require.Equal(t, -1.0, Tanh(f64(-100)).AsFloat64())
	require.Equal(t, 1.0, Pow(f64(qnan), f64(0)).AsFloat64())
	require.Equal(t, 2.0, Sqrt(f64(4)).AsFloat64())

	// Signed zero passes through the odd functions.
	negZero := f64(math.Copysign(0, -1))
	require.True(t, Sin(negZero).Signbit())
	require.True(t, Atan(negZero).Signbit())
	require.True(t, Sqrt(negZero).Signbit())
}

func TestPiAndLn2(t *testing.T) {
	require.Equal(t, math.Pi, Pi[num.Float64]().AsFloat64())
	require.Equal(t, math.Ln2, Ln2[num.Float64]().AsFloat64())
	require.Equal(t, "3", Pi[num.U128]().String())
	require.Equal(t, "0", Ln2[num.I128]().String())
	requireClose(t, piDigits, Pi[num.Extended](), 62)
}

func TestDecimal(t *testing.T) {
	want, err := num.FloatFromString[num.Decimal64]("1.414213562373095")
	require.NoError(t, err)
	got := Sqrt(num.FloatFromInt[num.Decimal64](2))
	require.True(t, want.Equal(got), "got %s", got)

	third, err := num.FloatFromString[num.Decimal64]("0.3333333333333333")
	require.NoError(t, err)
	require.True(t, third.Equal(PowInt(num.FloatFromInt[num.Decimal64](3), -1)))
}

func TestIntegerExact(t *testing.T) {
	require.Equal(t, "10000000000", Sqrt(u128("100000000000000000000")).String())
	require.Equal(t, "9999999999", Sqrt(u128("99999999999999999999")).String())
	require.Equal(t, "18446744073709551615", Sqrt(num.MaxUint[[2]uint64]()).String())
	require.Equal(t, "5", Hypot(u128("3"), u128("4")).String())
	require.Equal(t, "7", Hypot(u128("5"), u128("5")).String())

	require.Equal(t, "10", Log2(u128("1024")).String())
	require.Equal(t, "10", Log2(u128("2047")).String())
	require.Equal(t, "127", Log2(num.MaxUint[[2]uint64]()).String())
	require.Equal(t, "2", Log10(u128("999")).String())
	require.Equal(t, "3", Log10(u128("1000")).String())
	require.Equal(t, "38", Log10(num.MaxUint[[2]uint64]()).String())

	require.Equal(t, "1267650600228229401496703205376", Exp2(u128("100")).String())
	require.Equal(t, "0", Exp2(u128("128")).String())
	require.Equal(t, "100000000000000000000", Exp10(u128("20")).String())

	require.Equal(t, "-8", Pow(i128(-2), i128(3)).String())
	require.Equal(t, "16", Pow(i128(-2), i128(4)).String())
	require.Equal(t, "0", Pow(i128(2), i128(-1)).String())
	require.Equal(t, "-1", Pow(i128(-1), i128(-3)).String())
	require.Equal(t, "1", Pow(i128(-1), i128(-4)).String())
	require.Equal(t, "1", Pow(i128(7), i128(0)).String())
	require.Equal(t, "-1", PowInt(i128(-1), -5).String())
	require.Equal(t, "81", PowInt(i128(3), 4).String())
}

func TestIntegerTruncated(t *testing.T) {
	require.Equal(t, "2", Exp(u128("1")).String())
	require.Equal(t, "22026", Exp(u128("10")).String())
	require.Equal(t, "2", Log(u128("10")).String())
	require.Equal(t, "0", Sin(i128(0)).String())
	require.Equal(t, "1", Cos(i128(0)).String())
	require.Equal(t, "0", Sin(i128(3)).String())
	require.Equal(t, "-2", Tan(i128(2)).String())
	require.Equal(t, "1", Atan(i128(100)).String())
	require.Equal(t, "-1", Atan(i128(-100)).String())
	require.Equal(t, "11013", Sinh(i128(10)).String())
	require.Equal(t, "0", Tanh(i128(10)).String())
	require.Equal(t, "5", Abs(i128(-5)).String())
	require.Equal(t, "5", Abs(u128("5")).String())
}

func TestIntegerDomain(t *testing.T) {
	requireDomainPanic(t, func() { Log(u128("0")) })
	requireDomainPanic(t, func() { Log(i128(-1)) })
	requireDomainPanic(t, func() { Log2(i128(0)) })
	requireDomainPanic(t, func() { Log10(i128(-10)) })
	requireDomainPanic(t, func() { Sqrt(i128(-4)) })
	requireDomainPanic(t, func() { Pow(i128(0), i128(-1)) })
	requireDomainPanic(t, func() { PowInt(i128(0), -2) })
	requireDomainPanic(t, func() { Asin(i128(2)) })
	requireDomainPanic(t, func() { Atanh(i128(1)) })

	require.PanicsWithError(t, "nummath: Sqrt(-4) has no finite result", func() { Sqrt(i128(-4)) })
}

func TestSqrtProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("integer sqrt is the floor of the root", prop.ForAll(
		func(lo, hi uint64) bool {
			x := num.UintFromRaw([2]uint64{lo, hi})
			r := Sqrt(x).AsBigInt()
			xb := x.AsBigInt()
			r1 := new(big.Int).Add(r, big.NewInt(1))
			return new(big.Int).Mul(r, r).Cmp(xb) <= 0 && new(big.Int).Mul(r1, r1).Cmp(xb) > 0
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("float sqrt matches math.Sqrt", prop.ForAll(
		func(v float64) bool {
			got := Sqrt(f64(v)).AsFloat64()
			return got == math.Sqrt(v)
		},
		gen.Float64Range(1e-300, 1e300),
	))

	properties.Property("exp and log are inverses", prop.ForAll(
		func(v float64) bool {
			x := num.ExtendedFromFloat64(v, 128)
			back := Log(Exp(x))
			d := num.Difference(back, x)
			return d.Cmp(num.ExtendedFromInt64(1, 128).Ldexp(-110)) < 0
		},
		gen.Float64Range(-500, 500).SuchThat(func(v float64) bool { return v != 0 }),
	))

	properties.TestingRun(t)
}
