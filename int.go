package num

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/fixedwidth/go-num/internal/limb"
	"golang.org/x/exp/constraints"
)

// Int is a two's complement signed integer of exactly 64*len(L) bits. The
// zero value is 0. Addition, subtraction and multiplication wrap exactly like
// Uint of the same width.
type Int[L Limbs] struct {
	n L
}

// IntFromRaw is the complement to Int.Raw(); it creates an Int from its
// two's complement words, least significant first.
func IntFromRaw[L Limbs](n L) Int[L] { return Int[L]{n: n} }

func IntFrom64[L Limbs](v int64) (out Int[L]) {
	return IntFromInt[L](v)
}

// IntFromInt creates an Int from any native integer. Signed inputs are
// sign-extended; unsigned inputs are taken as a bit pattern and zero-extended,
// so a uint64 always lands on a non-negative value unless N is 64.
func IntFromInt[L Limbs, T constraints.Integer](v T) (out Int[L]) {
	out.n[0] = uint64(v)
	if v < 0 {
		w := words(&out.n)
		for i := 1; i < len(w); i++ {
			w[i] = maxUint64
		}
	}
	return out
}

// IntFromFloat creates an Int from a float32 or float64, truncating towards
// zero and wrapping modulo 2^N when the value is out of range. NaN and
// infinities produce 0; inRange is false in all of those cases.
func IntFromFloat[L Limbs, T constraints.Float](f T) (out Int[L], inRange bool) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return out, false
	}
	w := words(&out.n)
	if truncFloat64(w, x) {
		limb.Neg(w, w)
	}
	lim := math.Ldexp(1, len(w)*64-1)
	return out, x >= -lim && x < lim
}

// IntFromString parses a signed decimal integer with an optional leading '+'
// or '-'. Values outside [MinInt, MaxInt] return a *ConversionError wrapping
// ErrRange.
func IntFromString[L Limbs](s string) (out Int[L], err error) {
	digits, neg := s, false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	w := words(&out.n)
	if err := limb.ParseDecimal(w, digits); err != nil {
		return Int[L]{}, &ConversionError{Type: out.typeName(), Input: s, Err: err}
	}
	top := w[len(w)-1]
	if top&signBit != 0 {
		// Only -2^(N-1) itself has the sign bit set in its magnitude.
		if !neg || top != signBit || !limb.IsZero(w[:len(w)-1]) {
			return Int[L]{}, &ConversionError{Type: out.typeName(), Input: s, Err: ErrRange}
		}
	}
	if neg {
		limb.Neg(w, w)
	}
	return out, nil
}

// IntFromBigInt creates an Int from a big.Int, keeping the low N bits of the
// two's complement pattern. accurate is false if v does not fit.
func IntFromBigInt[L Limbs](v *big.Int) (out Int[L], accurate bool) {
	w := words(&out.n)
	fillFromBig(w, v)
	if v.Sign() < 0 {
		limb.Neg(w, w)
	}
	n := len(w) * 64
	if v.Sign() >= 0 {
		accurate = v.BitLen() < n
	} else {
		// -2^(N-1) has a bit length of N, but so does nothing else that fits.
		accurate = out.Sign() < 0 && v.BitLen() <= n
	}
	return out, accurate
}

// MaxInt returns 2^(N-1) - 1.
func MaxInt[L Limbs]() (out Int[L]) {
	w := words(&out.n)
	for i := range w {
		w[i] = maxUint64
	}
	w[len(w)-1] = signBit - 1
	return out
}

// MinInt returns -2^(N-1).
func MinInt[L Limbs]() (out Int[L]) {
	w := words(&out.n)
	w[len(w)-1] = signBit
	return out
}

// RandInt generates a random N-bit integer, positive or negative, from an
// external source.
func RandInt[L Limbs](source RandSource) (out Int[L]) {
	return RandUint[L](source).AsInt()
}

func (i Int[L]) Width() int { return len(i.n) * 64 }

func (i Int[L]) typeName() string { return "i" + strconv.Itoa(i.Width()) }

// Raw returns access to the Int as a series of two's complement words, least
// significant first. See IntFromRaw() for the counterpart.
func (i Int[L]) Raw() L { return i.n }

func (i Int[L]) IsZero() bool { return limb.IsZero(words(&i.n)) }

func (i Int[L]) top() uint64 { return i.n[len(i.n)-1] }

func (i Int[L]) Sign() int {
	if i.top()&signBit != 0 {
		return -1
	} else if i.IsZero() {
		return 0
	}
	return 1
}

func (i Int[L]) FromInt64(v int64) Int[L] { return IntFromInt[L](v) }

func (i *Int[L]) Swap(v *Int[L]) { *i, *v = *v, *i }

// AsUint performs a direct cast of an Int to a Uint of the same width, which
// will reinterpret the two's complement pattern as an unsigned value.
func (i Int[L]) AsUint() Uint[L] { return Uint[L]{n: i.n} }

// IsUint reports whether i is non-negative.
func (i Int[L]) IsUint() bool { return i.top()&signBit == 0 }

// mag returns |i| as a Uint. MinInt's magnitude fits because the result is
// unsigned.
func (i Int[L]) mag() Uint[L] {
	if i.Sign() < 0 {
		return i.Neg().AsUint()
	}
	return i.AsUint()
}

func (i Int[L]) String() string {
	s := i.mag().String()
	if i.Sign() < 0 {
		return "-" + s
	}
	return s
}

func (i Int[L]) Format(s fmt.State, c rune) {
	i.AsBigInt().Format(s, c)
}

// Scan implements fmt.Scanner for signed decimal input.
func (i *Int[L]) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, func(r rune) bool {
		return isDigit(r) || r == '-' || r == '+'
	})
	if err != nil {
		return err
	}
	v, err := IntFromString[L](string(tok))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i Int[L]) IntoBigInt(b *big.Int) {
	m := i.mag()
	bigFromWords(b, words(&m.n))
	if i.Sign() < 0 {
		b.Neg(b)
	}
}

func (i Int[L]) AsBigInt() *big.Int {
	var v big.Int
	i.IntoBigInt(&v)
	return &v
}

func (i Int[L]) AsBigFloat() *big.Float {
	return new(big.Float).SetInt(i.AsBigInt())
}

func (i Int[L]) AsFloat64() float64 {
	if i.IsInt64() {
		return float64(int64(i.n[0]))
	}
	f, _ := i.AsBigFloat().Float64()
	return f
}

// AsInt64 truncates the Int to fit in an int64. Values outside the range will
// over/underflow. See IsInt64() if you want to check before you convert.
func (i Int[L]) AsInt64() int64 { return int64(i.n[0]) }

// IsInt64 reports whether i can be represented as an int64.
func (i Int[L]) IsInt64() bool {
	w := words(&i.n)
	fill := uint64(0)
	if w[0]&signBit != 0 {
		fill = maxUint64
	}
	for _, v := range w[1:] {
		if v != fill {
			return false
		}
	}
	return true
}

func (i Int[L]) Inc() Int[L] { return i.AsUint().Inc().AsInt() }
func (i Int[L]) Dec() Int[L] { return i.AsUint().Dec().AsInt() }

func (i Int[L]) Add(n Int[L]) Int[L] { return i.AsUint().Add(n.AsUint()).AsInt() }
func (i Int[L]) Sub(n Int[L]) Int[L] { return i.AsUint().Sub(n.AsUint()).AsInt() }
func (i Int[L]) Mul(n Int[L]) Int[L] { return i.AsUint().Mul(n.AsUint()).AsInt() }

// Neg returns -i. MinInt has no positive counterpart, so it negates to
// itself, as int64 does.
func (i Int[L]) Neg() Int[L] { return i.Not().Inc() }

// Abs returns the absolute value of i. Abs(MinInt) is MinInt.
func (i Int[L]) Abs() Int[L] {
	if i.Sign() < 0 {
		return i.Neg()
	}
	return i
}

// AbsUint returns the absolute value of i as a Uint, which always fits.
func (i Int[L]) AbsUint() Uint[L] { return i.mag() }

// CheckedQuoRem performs truncated division: the quotient rounds towards zero
// and the remainder takes the sign of the dividend, so i == by*q + r. It
// returns ErrDivisionByZero if by is zero.
func (i Int[L]) CheckedQuoRem(by Int[L]) (q, r Int[L], err error) {
	if by.IsZero() {
		return q, r, ErrDivisionByZero
	}
	uq, ur := i.mag().QuoRem(by.mag())
	q, r = uq.AsInt(), ur.AsInt()
	if (i.Sign() < 0) != (by.Sign() < 0) {
		q = q.Neg()
	}
	if i.Sign() < 0 {
		r = r.Neg()
	}
	return q, r, nil
}

func (i Int[L]) CheckedQuo(by Int[L]) (q Int[L], err error) {
	q, _, err = i.CheckedQuoRem(by)
	return q, err
}

func (i Int[L]) CheckedRem(by Int[L]) (r Int[L], err error) {
	_, r, err = i.CheckedQuoRem(by)
	return r, err
}

// QuoRem returns the truncated quotient and remainder of i and by. It panics
// with ErrDivisionByZero if by is zero.
//
// MinInt.QuoRem(-1) wraps to (MinInt, 0) like the native types.
func (i Int[L]) QuoRem(by Int[L]) (q, r Int[L]) {
	q, r, err := i.CheckedQuoRem(by)
	if err != nil {
		panic(err)
	}
	return q, r
}

// Quo returns the quotient i/by for by != 0, truncated towards zero. If
// by == 0, a division-by-zero run-time panic occurs.
func (i Int[L]) Quo(by Int[L]) (q Int[L]) {
	q, _ = i.QuoRem(by)
	return q
}

// Rem returns the remainder of i%by for by != 0, with the sign of i. If
// by == 0, a division-by-zero run-time panic occurs.
func (i Int[L]) Rem(by Int[L]) (r Int[L]) {
	_, r = i.QuoRem(by)
	return r
}

// Cmp compares i to n and returns -1, 0 or +1.
func (i Int[L]) Cmp(n Int[L]) int {
	is, ns := i.top()&signBit != 0, n.top()&signBit != 0
	if is != ns {
		if is {
			return -1
		}
		return 1
	}
	// Same sign: the two's complement patterns order like unsigned values.
	return limb.Cmp(words(&i.n), words(&n.n))
}

func (i Int[L]) Equal(n Int[L]) bool            { return i.n == n.n }
func (i Int[L]) GreaterThan(n Int[L]) bool      { return i.Cmp(n) > 0 }
func (i Int[L]) GreaterOrEqualTo(n Int[L]) bool { return i.Cmp(n) >= 0 }
func (i Int[L]) LessThan(n Int[L]) bool         { return i.Cmp(n) < 0 }
func (i Int[L]) LessOrEqualTo(n Int[L]) bool    { return i.Cmp(n) <= 0 }

func (i Int[L]) And(n Int[L]) Int[L]    { return i.AsUint().And(n.AsUint()).AsInt() }
func (i Int[L]) AndNot(n Int[L]) Int[L] { return i.AsUint().AndNot(n.AsUint()).AsInt() }
func (i Int[L]) Or(n Int[L]) Int[L]     { return i.AsUint().Or(n.AsUint()).AsInt() }
func (i Int[L]) Xor(n Int[L]) Int[L]    { return i.AsUint().Xor(n.AsUint()).AsInt() }
func (i Int[L]) Not() Int[L]            { return i.AsUint().Not().AsInt() }

// Lsh returns i << n. The low bits are zero-filled, exactly as for Uint.
func (i Int[L]) Lsh(n uint) Int[L] { return i.AsUint().Lsh(n).AsInt() }

// Rsh is an arithmetic shift: vacated high bits copy the sign bit, so
// negative values stay negative and shifting by N or more yields 0 or -1.
func (i Int[L]) Rsh(n uint) (v Int[L]) {
	var fill uint64
	if i.Sign() < 0 {
		fill = maxUint64
	}
	limb.Shr(words(&v.n), words(&i.n), n, fill)
	return v
}

func (i Int[L]) CheckedLsh(n int) (Int[L], error) {
	if n < 0 {
		return Int[L]{}, &ShiftError{Shift: n}
	}
	return i.Lsh(uint(n)), nil
}

func (i Int[L]) CheckedRsh(n int) (Int[L], error) {
	if n < 0 {
		return Int[L]{}, &ShiftError{Shift: n}
	}
	return i.Rsh(uint(n)), nil
}

func (i Int[L]) LeadingZeros() uint  { return limb.LeadingZeros(words(&i.n)) }
func (i Int[L]) TrailingZeros() uint { return limb.TrailingZeros(words(&i.n)) }

// BitLen returns the bit length of |i|.
func (i Int[L]) BitLen() int { return i.mag().BitLen() }

// Bit returns the i'th bit of the two's complement pattern. Bits at or
// beyond N repeat the sign bit.
func (i Int[L]) Bit(b int) uint {
	if b >= i.Width() {
		b = i.Width() - 1
	}
	return i.AsUint().Bit(b)
}

func (i Int[L]) SetBit(b int, v uint) Int[L] { return i.AsUint().SetBit(b, v).AsInt() }

// Extend returns i as an Extended wide enough that i*i is exact.
func (i Int[L]) Extend() Extended {
	return extendedFromBig(i.Sign() < 0, i.mag().AsBigInt(), uint(2*i.Width()+64))
}

// FromExtended truncates x towards zero and wraps it into the two's
// complement range. NaN produces 0.
func (i Int[L]) FromExtended(x Extended) Int[L] {
	return Uint[L]{}.FromExtended(x).AsInt()
}

func (i Int[L]) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Int[L]) UnmarshalText(bts []byte) (err error) {
	v, err := IntFromString[L](string(bts))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i Int[L]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

func (i *Int[L]) UnmarshalJSON(bts []byte) (err error) {
	bts, err = unquoteJSON(i.typeName(), bts)
	if err != nil {
		return err
	}
	return i.UnmarshalText(bts)
}
