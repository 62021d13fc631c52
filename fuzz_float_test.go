package num

import (
	"fmt"
	"math"
	"strconv"
)

// fuzzFloat checks a Float format against the hardware type with the same
// layout. Every operation is correctly rounded on both sides, so results
// must agree bit for bit; NaNs only need to agree on being NaN.
type fuzzFloat[F Format, N float32 | float64] struct {
	source  *rando
	name    string
	bitSize int
	rand    func(*rando) N
}

type (
	fuzzFloat32 = fuzzFloat[Binary32, float32]
	fuzzFloat64 = fuzzFloat[Binary64, float64]
)

func newFuzzFloat32(source *rando) fuzzFloat32 {
	return fuzzFloat32{source: source, name: "f32", bitSize: 32, rand: (*rando).Float32}
}

func newFuzzFloat64(source *rando) fuzzFloat64 {
	return fuzzFloat64{source: source, name: "f64", bitSize: 64, rand: (*rando).Float64}
}

func (f fuzzFloat[F, N]) Name() string { return f.name }

func (f fuzzFloat[F, N]) x1() (N, Float[F]) {
	a := f.rand(f.source)
	return a, FloatFromFloat64[F](float64(a))
}

func (f fuzzFloat[F, N]) x2() (a, b N, x, y Float[F]) {
	a = f.rand(f.source)
	if f.source.samesies(2) > 0 {
		b = a
		f.source.operands = append(f.source.operands, b)
	} else {
		b = f.rand(f.source)
	}
	return a, b, FloatFromFloat64[F](float64(a)), FloatFromFloat64[F](float64(b))
}

func (f fuzzFloat[F, N]) check(x Float[F], want N) error {
	return checkEqualFloat64(float64(N(x.AsFloat64())), float64(want))
}

func (f fuzzFloat[F, N]) Abs() error {
	a, x := f.x1()
	return f.check(x.Abs(), N(math.Abs(float64(a))))
}

func (f fuzzFloat[F, N]) Neg() error {
	a, x := f.x1()
	return f.check(x.Neg(), -a)
}

func (f fuzzFloat[F, N]) Inc() error {
	a, x := f.x1()
	return f.check(x.Inc(), a+1)
}

func (f fuzzFloat[F, N]) Dec() error {
	a, x := f.x1()
	return f.check(x.Dec(), a-1)
}

func (f fuzzFloat[F, N]) Add() error {
	a, b, x, y := f.x2()
	return f.check(x.Add(y), a+b)
}

func (f fuzzFloat[F, N]) Sub() error {
	a, b, x, y := f.x2()
	return f.check(x.Sub(y), a-b)
}

func (f fuzzFloat[F, N]) Mul() error {
	a, b, x, y := f.x2()
	return f.check(x.Mul(y), a*b)
}

func (f fuzzFloat[F, N]) Quo() error {
	a, b, x, y := f.x2()
	return f.check(x.Quo(y), a/b)
}

func (f fuzzFloat[F, N]) Rem() error {
	a, b, x, y := f.x2()
	return f.check(x.Rem(y), N(math.Mod(float64(a), float64(b))))
}

func (f fuzzFloat[F, N]) QuoRem() error {
	return nil // no such op on floats
}

func (f fuzzFloat[F, N]) Cmp() error {
	a, b, x, y := f.x2()
	c, ordered := x.Compare(y)
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return checkEqualBool(ordered, false)
	}
	want := 0
	if a < b {
		want = -1
	} else if a > b {
		want = 1
	}
	if !ordered {
		return fmt.Errorf("unordered compare of %v and %v", a, b)
	}
	return checkEqualInt(c, want)
}

func (f fuzzFloat[F, N]) Equal() error {
	a, b, x, y := f.x2()
	return checkEqualBool(x.Equal(y), a == b)
}

func (f fuzzFloat[F, N]) GreaterThan() error {
	a, b, x, y := f.x2()
	return checkEqualBool(x.GreaterThan(y), a > b)
}

func (f fuzzFloat[F, N]) GreaterOrEqualTo() error {
	a, b, x, y := f.x2()
	return checkEqualBool(x.GreaterOrEqualTo(y), a >= b)
}

func (f fuzzFloat[F, N]) LessThan() error {
	a, b, x, y := f.x2()
	return checkEqualBool(x.LessThan(y), a < b)
}

func (f fuzzFloat[F, N]) LessOrEqualTo() error {
	a, b, x, y := f.x2()
	return checkEqualBool(x.LessOrEqualTo(y), a <= b)
}

func (f fuzzFloat[F, N]) AsFloat64() error {
	a, x := f.x1()
	return checkEqualFloat64(x.AsFloat64(), float64(a))
}

func (f fuzzFloat[F, N]) FromFloat64() error {
	v := f.source.Float64()
	return f.check(FloatFromFloat64[F](v), N(v))
}

func (f fuzzFloat[F, N]) String() error {
	a, x := f.x1()
	s := x.String()
	back, err := FloatFromString[F](s)
	if err != nil {
		return err
	}
	if err := f.check(back, a); err != nil {
		return fmt.Errorf("%q did not round trip: %w", s, err)
	}

	// At powers of two the rounding interval is lopsided and more than one
	// shortest string can exist; only compare the exact text elsewhere.
	if m, _ := math.Frexp(float64(a)); m != 0.5 && m != -0.5 {
		return checkEqualString(stringer(s), stringer(strconv.FormatFloat(float64(a), 'g', -1, f.bitSize)))
	}
	return nil
}

type stringer string

func (s stringer) String() string { return string(s) }

// The bitwise ops have no meaning for floats.

func (f fuzzFloat[F, N]) And() error    { return nil }
func (f fuzzFloat[F, N]) AndNot() error { return nil }
func (f fuzzFloat[F, N]) Or() error     { return nil }
func (f fuzzFloat[F, N]) Xor() error    { return nil }
func (f fuzzFloat[F, N]) Not() error    { return nil }
func (f fuzzFloat[F, N]) Lsh() error    { return nil }
func (f fuzzFloat[F, N]) Rsh() error    { return nil }
func (f fuzzFloat[F, N]) Bit() error    { return nil }
func (f fuzzFloat[F, N]) BitLen() error { return nil }
func (f fuzzFloat[F, N]) SetBit() error { return nil }
