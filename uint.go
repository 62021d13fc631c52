package num

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/fixedwidth/go-num/internal/limb"
	"golang.org/x/exp/constraints"
)

// Uint is an unsigned integer of exactly 64*len(L) bits. The zero value is 0.
// Arithmetic wraps modulo 2^N like the native unsigned types.
type Uint[L Limbs] struct {
	n L
}

// UintFromRaw is the complement to Uint.Raw(); it creates a Uint from its
// words, least significant first.
func UintFromRaw[L Limbs](n L) Uint[L] { return Uint[L]{n: n} }

func UintFrom64[L Limbs](v uint64) (out Uint[L]) {
	out.n[0] = v
	return out
}

// UintFromInt creates a Uint from any native integer. Negative values are
// sign-extended and so wrap modulo 2^N, as a conversion to a native unsigned
// type would.
func UintFromInt[L Limbs, T constraints.Integer](v T) (out Uint[L]) {
	out.n[0] = uint64(v)
	if v < 0 {
		w := words(&out.n)
		for i := 1; i < len(w); i++ {
			w[i] = maxUint64
		}
	}
	return out
}

// UintFromFloat creates a Uint from a float32 or float64. Any fractional
// portion is truncated towards zero, and values outside [0, 2^N) wrap modulo
// 2^N. inRange reports whether no wrapping happened.
//
// NaN and infinities produce 0 with inRange set to false.
func UintFromFloat[L Limbs, T constraints.Float](f T) (out Uint[L], inRange bool) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return out, false
	}
	w := words(&out.n)
	if truncFloat64(w, x) {
		limb.Neg(w, w)
	}
	return out, x > -1 && x < math.Ldexp(1, len(w)*64)
}

// UintFromString parses an unsigned decimal integer. Malformed or out of
// range input returns a *ConversionError.
func UintFromString[L Limbs](s string) (out Uint[L], err error) {
	if err := limb.ParseDecimal(words(&out.n), s); err != nil {
		return Uint[L]{}, &ConversionError{Type: out.typeName(), Input: s, Err: err}
	}
	return out, nil
}

// UintFromBigInt creates a Uint from a big.Int, keeping the low N bits of the
// two's complement pattern. accurate is false if v does not fit.
func UintFromBigInt[L Limbs](v *big.Int) (out Uint[L], accurate bool) {
	w := words(&out.n)
	fillFromBig(w, v)
	if v.Sign() < 0 {
		limb.Neg(w, w)
	}
	return out, v.Sign() >= 0 && v.BitLen() <= len(w)*64
}

// MaxUint returns 2^N - 1.
func MaxUint[L Limbs]() (out Uint[L]) {
	w := words(&out.n)
	for i := range w {
		w[i] = maxUint64
	}
	return out
}

// RandUint generates a random N-bit unsigned integer from an external source.
func RandUint[L Limbs](source RandSource) (out Uint[L]) {
	w := words(&out.n)
	for i := range w {
		w[i] = source.Uint64()
	}
	return out
}

// Width returns N, the number of bits in u.
func (u Uint[L]) Width() int { return len(u.n) * 64 }

func (u Uint[L]) typeName() string { return "u" + strconv.Itoa(u.Width()) }

// Raw returns the words of u, least significant first. See UintFromRaw() for
// the counterpart.
func (u Uint[L]) Raw() L { return u.n }

func (u Uint[L]) IsZero() bool { return limb.IsZero(words(&u.n)) }

// Sign returns 0 if u is zero and 1 otherwise.
func (u Uint[L]) Sign() int {
	if u.IsZero() {
		return 0
	}
	return 1
}

// FromInt64 returns v converted to the type of u; u itself is ignored. It lets
// generic code build constants of a type it only knows by its methods.
func (u Uint[L]) FromInt64(v int64) Uint[L] { return UintFromInt[L](v) }

// Swap exchanges the values of u and v.
func (u *Uint[L]) Swap(v *Uint[L]) { *u, *v = *v, *u }

func (u Uint[L]) String() string {
	return limb.FormatDecimal(words(&u.n))
}

func (u Uint[L]) Format(s fmt.State, c rune) {
	u.AsBigInt().Format(s, c)
}

// Scan implements fmt.Scanner for decimal input.
func (u *Uint[L]) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, isDigit)
	if err != nil {
		return err
	}
	v, err := UintFromString[L](string(tok))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Uint[L]) IntoBigInt(b *big.Int) {
	bigFromWords(b, words(&u.n))
}

func (u Uint[L]) AsBigInt() *big.Int {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}

func (u Uint[L]) AsBigFloat() *big.Float {
	return new(big.Float).SetInt(u.AsBigInt())
}

// AsFloat64 returns the float64 nearest to u, ties to even.
func (u Uint[L]) AsFloat64() float64 {
	if u.IsUint64() {
		return float64(u.n[0])
	}
	f, _ := u.AsBigFloat().Float64()
	return f
}

// AsInt performs a direct cast of a Uint to an Int of the same width, which
// will interpret it as a two's complement value.
func (u Uint[L]) AsInt() Int[L] { return Int[L]{n: u.n} }

// IsInt reports whether u can be represented in an Int of the same width.
func (u Uint[L]) IsInt() bool {
	w := words(&u.n)
	return w[len(w)-1]&signBit == 0
}

// AsUint64 truncates u to fit in a uint64. See IsUint64() if you want to
// check before you convert.
func (u Uint[L]) AsUint64() uint64 { return u.n[0] }

// IsUint64 reports whether u can be represented as a uint64.
func (u Uint[L]) IsUint64() bool {
	w := words(&u.n)
	return limb.IsZero(w[1:])
}

func (u Uint[L]) Inc() (v Uint[L]) {
	limb.AddWord(words(&v.n), words(&u.n), 1)
	return v
}

func (u Uint[L]) Dec() (v Uint[L]) {
	limb.SubWord(words(&v.n), words(&u.n), 1)
	return v
}

func (u Uint[L]) Add(n Uint[L]) (v Uint[L]) {
	limb.Add(words(&v.n), words(&u.n), words(&n.n))
	return v
}

func (u Uint[L]) Sub(n Uint[L]) (v Uint[L]) {
	limb.Sub(words(&v.n), words(&u.n), words(&n.n))
	return v
}

// Mul returns the low N bits of u*n.
func (u Uint[L]) Mul(n Uint[L]) (v Uint[L]) {
	limb.Mul(words(&v.n), words(&u.n), words(&n.n))
	return v
}

// MulFull returns the full 2N-bit product of u and n as two halves.
func (u Uint[L]) MulFull(n Uint[L]) (hi, lo Uint[L]) {
	k := len(u.n)
	z := make([]uint64, 2*k)
	limb.MulFull(z, words(&u.n), words(&n.n))
	copy(words(&lo.n), z[:k])
	copy(words(&hi.n), z[k:])
	return hi, lo
}

// CheckedQuoRem returns the quotient q and remainder r of u and by, or
// ErrDivisionByZero if by is zero.
func (u Uint[L]) CheckedQuoRem(by Uint[L]) (q, r Uint[L], err error) {
	if by.IsZero() {
		return q, r, ErrDivisionByZero
	}
	limb.QuoRem(words(&q.n), words(&r.n), words(&u.n), words(&by.n))
	return q, r, nil
}

func (u Uint[L]) CheckedQuo(by Uint[L]) (q Uint[L], err error) {
	q, _, err = u.CheckedQuoRem(by)
	return q, err
}

func (u Uint[L]) CheckedRem(by Uint[L]) (r Uint[L], err error) {
	_, r, err = u.CheckedQuoRem(by)
	return r, err
}

// QuoRem returns the quotient q and remainder r for by != 0. If by == 0, a
// division-by-zero run-time panic occurs with ErrDivisionByZero.
//
// Both operands are non-negative, so the quotient is truncated towards zero
// and u == by*q + r always holds.
func (u Uint[L]) QuoRem(by Uint[L]) (q, r Uint[L]) {
	q, r, err := u.CheckedQuoRem(by)
	if err != nil {
		panic(err)
	}
	return q, r
}

// Quo returns the quotient u/by for by != 0. If by == 0, a division-by-zero
// run-time panic occurs.
func (u Uint[L]) Quo(by Uint[L]) (q Uint[L]) {
	q, _ = u.QuoRem(by)
	return q
}

// Rem returns the remainder of u%by for by != 0. If by == 0, a
// division-by-zero run-time panic occurs.
func (u Uint[L]) Rem(by Uint[L]) (r Uint[L]) {
	_, r = u.QuoRem(by)
	return r
}

func (u Uint[L]) Cmp(n Uint[L]) int {
	return limb.Cmp(words(&u.n), words(&n.n))
}

func (u Uint[L]) Equal(n Uint[L]) bool            { return u.n == n.n }
func (u Uint[L]) GreaterThan(n Uint[L]) bool      { return u.Cmp(n) > 0 }
func (u Uint[L]) GreaterOrEqualTo(n Uint[L]) bool { return u.Cmp(n) >= 0 }
func (u Uint[L]) LessThan(n Uint[L]) bool         { return u.Cmp(n) < 0 }
func (u Uint[L]) LessOrEqualTo(n Uint[L]) bool    { return u.Cmp(n) <= 0 }

func (u Uint[L]) And(n Uint[L]) (v Uint[L]) {
	limb.And(words(&v.n), words(&u.n), words(&n.n))
	return v
}

func (u Uint[L]) AndNot(n Uint[L]) (v Uint[L]) {
	limb.AndNot(words(&v.n), words(&u.n), words(&n.n))
	return v
}

func (u Uint[L]) Or(n Uint[L]) (v Uint[L]) {
	limb.Or(words(&v.n), words(&u.n), words(&n.n))
	return v
}

func (u Uint[L]) Xor(n Uint[L]) (v Uint[L]) {
	limb.Xor(words(&v.n), words(&u.n), words(&n.n))
	return v
}

func (u Uint[L]) Not() (v Uint[L]) {
	limb.Not(words(&v.n), words(&u.n))
	return v
}

// Lsh returns u << n. Shifting by N or more bits yields zero.
func (u Uint[L]) Lsh(n uint) (v Uint[L]) {
	limb.Shl(words(&v.n), words(&u.n), n)
	return v
}

// Rsh returns u >> n, filling with zeros. Shifting by N or more bits yields
// zero.
func (u Uint[L]) Rsh(n uint) (v Uint[L]) {
	limb.Shr(words(&v.n), words(&u.n), n, 0)
	return v
}

// CheckedLsh is Lsh for a signed count; negative counts return a
// *ShiftError.
func (u Uint[L]) CheckedLsh(n int) (Uint[L], error) {
	if n < 0 {
		return Uint[L]{}, &ShiftError{Shift: n}
	}
	return u.Lsh(uint(n)), nil
}

// CheckedRsh is Rsh for a signed count; negative counts return a
// *ShiftError.
func (u Uint[L]) CheckedRsh(n int) (Uint[L], error) {
	if n < 0 {
		return Uint[L]{}, &ShiftError{Shift: n}
	}
	return u.Rsh(uint(n)), nil
}

func (u Uint[L]) LeadingZeros() uint  { return limb.LeadingZeros(words(&u.n)) }
func (u Uint[L]) TrailingZeros() uint { return limb.TrailingZeros(words(&u.n)) }

// BitLen returns the length of the absolute value of u in bits.
func (u Uint[L]) BitLen() int { return limb.BitLen(words(&u.n)) }

// Bit returns the value of the i'th bit of u. Bits at or beyond N are 0.
func (u Uint[L]) Bit(i int) uint {
	if i < 0 {
		panic(&ShiftError{Shift: i})
	}
	if i >= u.Width() {
		return 0
	}
	return uint(words(&u.n)[i/64]>>uint(i%64)) & 1
}

// SetBit returns a copy of u with the i'th bit set to b (0 or 1).
func (u Uint[L]) SetBit(i int, b uint) Uint[L] {
	if i < 0 {
		panic(&ShiftError{Shift: i})
	}
	if i >= u.Width() {
		return u
	}
	w := words(&u.n)
	mask := uint64(1) << uint(i%64)
	if b&1 == 0 {
		w[i/64] &^= mask
	} else {
		w[i/64] |= mask
	}
	return u
}

// Extend returns u as an Extended wide enough that u*u is exact.
func (u Uint[L]) Extend() Extended {
	return extendedFromBig(false, u.AsBigInt(), uint(2*u.Width()+64))
}

// FromExtended truncates x towards zero and wraps it modulo 2^N. NaN
// produces 0.
func (u Uint[L]) FromExtended(x Extended) (out Uint[L]) {
	w := words(&out.n)
	if x.truncWords(w) {
		limb.Neg(w, w)
	}
	return out
}

func (u Uint[L]) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint[L]) UnmarshalText(bts []byte) (err error) {
	v, err := UintFromString[L](string(bts))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Uint[L]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *Uint[L]) UnmarshalJSON(bts []byte) (err error) {
	bts, err = unquoteJSON(u.typeName(), bts)
	if err != nil {
		return err
	}
	return u.UnmarshalText(bts)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func unquoteJSON(typ string, bts []byte) ([]byte, error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return nil, fmt.Errorf("num: %s invalid JSON %q", typ, string(bts))
		}
		bts = bts[1 : ln-1]
	}
	return bts, nil
}
