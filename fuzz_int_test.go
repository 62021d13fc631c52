package num

import (
	"fmt"
	"math/big"
)

func accUintFromBigInt[L Limbs](b *big.Int) Uint[L] {
	u, acc := UintFromBigInt[L](b)
	if !acc {
		panic(fmt.Errorf("num: inaccurate conversion to %s in fuzz tester for %s", u.typeName(), b))
	}
	return u
}

func accIntFromBigInt[L Limbs](b *big.Int) Int[L] {
	i, acc := IntFromBigInt[L](b)
	if !acc {
		panic(fmt.Errorf("num: inaccurate conversion to %s in fuzz tester for %s", i.typeName(), b))
	}
	return i
}

type fuzzUint[L Limbs] struct {
	source *rando
}

func (f fuzzUint[L]) width() int { return Uint[L]{}.Width() }

func (f fuzzUint[L]) Name() string { return Uint[L]{}.typeName() }

func (f fuzzUint[L]) x1() (*big.Int, Uint[L]) {
	b := f.source.BigUint(f.width())
	return b, accUintFromBigInt[L](b)
}

func (f fuzzUint[L]) x2() (b1, b2 *big.Int, u1, u2 Uint[L]) {
	b1, b2 = f.source.BigUintx2(f.width())
	return b1, b2, accUintFromBigInt[L](b1), accUintFromBigInt[L](b2)
}

// check compares u with b reduced modulo 2^width.
func (f fuzzUint[L]) check(u Uint[L], b *big.Int) error {
	return checkEqualString(u, wrapUint(b, f.width()))
}

func (f fuzzUint[L]) Abs() error {
	return nil // Always succeeds!
}

func (f fuzzUint[L]) Neg() error {
	return nil // nothing to do here
}

func (f fuzzUint[L]) Inc() error {
	b1, u1 := f.x1()
	return f.check(u1.Inc(), new(big.Int).Add(b1, big1))
}

func (f fuzzUint[L]) Dec() error {
	b1, u1 := f.x1()
	return f.check(u1.Dec(), new(big.Int).Sub(b1, big1))
}

func (f fuzzUint[L]) Add() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.Add(u2), new(big.Int).Add(b1, b2))
}

func (f fuzzUint[L]) Sub() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.Sub(u2), new(big.Int).Sub(b1, b2))
}

func (f fuzzUint[L]) Mul() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.Mul(u2), new(big.Int).Mul(b1, b2))
}

func (f fuzzUint[L]) Quo() error {
	b1, b2, u1, u2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	return f.check(u1.Quo(u2), new(big.Int).Quo(b1, b2))
}

func (f fuzzUint[L]) Rem() error {
	b1, b2, u1, u2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	return f.check(u1.Rem(u2), new(big.Int).Rem(b1, b2))
}

func (f fuzzUint[L]) QuoRem() error {
	b1, b2, u1, u2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	rbq, rbr := new(big.Int).QuoRem(b1, b2, new(big.Int))
	ruq, rur := u1.QuoRem(u2)
	if err := f.check(ruq, rbq); err != nil {
		return err
	}
	return f.check(rur, rbr)
}

func (f fuzzUint[L]) Cmp() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualInt(u1.Cmp(u2), b1.Cmp(b2))
}

func (f fuzzUint[L]) Equal() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualBool(u1.Equal(u2), b1.Cmp(b2) == 0)
}

func (f fuzzUint[L]) GreaterThan() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualBool(u1.GreaterThan(u2), b1.Cmp(b2) > 0)
}

func (f fuzzUint[L]) GreaterOrEqualTo() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualBool(u1.GreaterOrEqualTo(u2), b1.Cmp(b2) >= 0)
}

func (f fuzzUint[L]) LessThan() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualBool(u1.LessThan(u2), b1.Cmp(b2) < 0)
}

func (f fuzzUint[L]) LessOrEqualTo() error {
	b1, b2, u1, u2 := f.x2()
	return checkEqualBool(u1.LessOrEqualTo(u2), b1.Cmp(b2) <= 0)
}

func (f fuzzUint[L]) And() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.And(u2), new(big.Int).And(b1, b2))
}

func (f fuzzUint[L]) AndNot() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.AndNot(u2), new(big.Int).AndNot(b1, b2))
}

func (f fuzzUint[L]) Or() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.Or(u2), new(big.Int).Or(b1, b2))
}

func (f fuzzUint[L]) Xor() error {
	b1, b2, u1, u2 := f.x2()
	return f.check(u1.Xor(u2), new(big.Int).Xor(b1, b2))
}

func (f fuzzUint[L]) Not() error {
	b1, u1 := f.x1()
	return f.check(u1.Not(), new(big.Int).Not(b1))
}

func (f fuzzUint[L]) Lsh() error {
	b1, u1 := f.x1()
	by := f.source.Uintn(f.width())
	return f.check(u1.Lsh(by), new(big.Int).Lsh(b1, by))
}

func (f fuzzUint[L]) Rsh() error {
	b1, u1 := f.x1()
	by := f.source.Uintn(f.width())
	return f.check(u1.Rsh(by), new(big.Int).Rsh(b1, by))
}

func (f fuzzUint[L]) AsFloat64() error {
	b1, u1 := f.x1()
	bf, _ := new(big.Float).SetInt(b1).Float64()
	return checkEqualFloat64(u1.AsFloat64(), bf)
}

func (f fuzzUint[L]) FromFloat64() error {
	b1 := f.source.BigUint(f.width())
	f1, _ := new(big.Float).SetInt(b1).Float64()
	want, _ := big.NewFloat(f1).Int(nil)

	r1, inRange := UintFromFloat[L](f1)
	if want.BitLen() > f.width() {
		// Rounding up to the next power of two can leave the range.
		return checkEqualBool(inRange, false)
	}
	if !inRange {
		return fmt.Errorf("%v reported out of range", f1)
	}
	return f.check(r1, want)
}

func (f fuzzUint[L]) String() error {
	b1, u1 := f.x1()
	return checkEqualString(u1, b1)
}

func (f fuzzUint[L]) SetBit() error {
	b1, u1 := f.x1()
	bt := int(f.source.Uintn(f.width()))
	bv := f.source.Uintn(2)
	return f.check(u1.SetBit(bt, bv), new(big.Int).SetBit(b1, bt, bv))
}

func (f fuzzUint[L]) Bit() error {
	b1, u1 := f.x1()
	bt := int(f.source.Uintn(f.width()))
	return checkEqualInt(int(u1.Bit(bt)), int(b1.Bit(bt)))
}

func (f fuzzUint[L]) BitLen() error {
	b1, u1 := f.x1()
	return checkEqualInt(u1.BitLen(), b1.BitLen())
}

type fuzzInt[L Limbs] struct {
	source *rando
}

func (f fuzzInt[L]) width() int { return Int[L]{}.Width() }

func (f fuzzInt[L]) Name() string { return Int[L]{}.typeName() }

func (f fuzzInt[L]) x1() (*big.Int, Int[L]) {
	b := f.source.BigInt(f.width())
	return b, accIntFromBigInt[L](b)
}

func (f fuzzInt[L]) x2() (b1, b2 *big.Int, i1, i2 Int[L]) {
	b1, b2 = f.source.BigIntx2(f.width())
	return b1, b2, accIntFromBigInt[L](b1), accIntFromBigInt[L](b2)
}

// check compares i with b wrapped into the two's complement range.
func (f fuzzInt[L]) check(i Int[L], b *big.Int) error {
	return checkEqualString(i, wrapInt(b, f.width()))
}

func (f fuzzInt[L]) Abs() error {
	b1, i1 := f.x1()
	return f.check(i1.Abs(), new(big.Int).Abs(b1))
}

func (f fuzzInt[L]) Neg() error {
	b1, i1 := f.x1()
	return f.check(i1.Neg(), new(big.Int).Neg(b1))
}

func (f fuzzInt[L]) Inc() error {
	b1, i1 := f.x1()
	return f.check(i1.Inc(), new(big.Int).Add(b1, big1))
}

func (f fuzzInt[L]) Dec() error {
	b1, i1 := f.x1()
	return f.check(i1.Dec(), new(big.Int).Sub(b1, big1))
}

func (f fuzzInt[L]) Add() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.Add(i2), new(big.Int).Add(b1, b2))
}

func (f fuzzInt[L]) Sub() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.Sub(i2), new(big.Int).Sub(b1, b2))
}

func (f fuzzInt[L]) Mul() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.Mul(i2), new(big.Int).Mul(b1, b2))
}

func (f fuzzInt[L]) Quo() error {
	b1, b2, i1, i2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	return f.check(i1.Quo(i2), new(big.Int).Quo(b1, b2))
}

func (f fuzzInt[L]) Rem() error {
	b1, b2, i1, i2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	return f.check(i1.Rem(i2), new(big.Int).Rem(b1, b2))
}

func (f fuzzInt[L]) QuoRem() error {
	b1, b2, i1, i2 := f.x2()
	if b2.Sign() == 0 {
		return nil // Just skip this iteration, we know what happens!
	}
	rbq, rbr := new(big.Int).QuoRem(b1, b2, new(big.Int))
	riq, rir := i1.QuoRem(i2)
	if err := f.check(riq, rbq); err != nil {
		return err
	}
	return f.check(rir, rbr)
}

func (f fuzzInt[L]) Cmp() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualInt(i1.Cmp(i2), b1.Cmp(b2))
}

func (f fuzzInt[L]) Equal() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualBool(i1.Equal(i2), b1.Cmp(b2) == 0)
}

func (f fuzzInt[L]) GreaterThan() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualBool(i1.GreaterThan(i2), b1.Cmp(b2) > 0)
}

func (f fuzzInt[L]) GreaterOrEqualTo() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualBool(i1.GreaterOrEqualTo(i2), b1.Cmp(b2) >= 0)
}

func (f fuzzInt[L]) LessThan() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualBool(i1.LessThan(i2), b1.Cmp(b2) < 0)
}

func (f fuzzInt[L]) LessOrEqualTo() error {
	b1, b2, i1, i2 := f.x2()
	return checkEqualBool(i1.LessOrEqualTo(i2), b1.Cmp(b2) <= 0)
}

// The bitwise ops lean on big.Int's infinite two's complement semantics for
// negative operands, which agree with the fixed-width ones once wrapped.

func (f fuzzInt[L]) And() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.And(i2), new(big.Int).And(b1, b2))
}

func (f fuzzInt[L]) AndNot() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.AndNot(i2), new(big.Int).AndNot(b1, b2))
}

func (f fuzzInt[L]) Or() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.Or(i2), new(big.Int).Or(b1, b2))
}

func (f fuzzInt[L]) Xor() error {
	b1, b2, i1, i2 := f.x2()
	return f.check(i1.Xor(i2), new(big.Int).Xor(b1, b2))
}

func (f fuzzInt[L]) Not() error {
	b1, i1 := f.x1()
	return f.check(i1.Not(), new(big.Int).Not(b1))
}

func (f fuzzInt[L]) Lsh() error {
	b1, i1 := f.x1()
	by := f.source.Uintn(f.width())
	return f.check(i1.Lsh(by), new(big.Int).Lsh(b1, by))
}

func (f fuzzInt[L]) Rsh() error {
	b1, i1 := f.x1()
	by := f.source.Uintn(f.width())
	return f.check(i1.Rsh(by), new(big.Int).Rsh(b1, by))
}

func (f fuzzInt[L]) AsFloat64() error {
	b1, i1 := f.x1()
	bf, _ := new(big.Float).SetInt(b1).Float64()
	return checkEqualFloat64(i1.AsFloat64(), bf)
}

func (f fuzzInt[L]) FromFloat64() error {
	b1 := f.source.BigInt(f.width())
	f1, _ := new(big.Float).SetInt(b1).Float64()
	want, _ := big.NewFloat(f1).Int(nil)

	r1, inRange := IntFromFloat[L](f1)
	if wrapInt(want, f.width()).Cmp(want) != 0 {
		return checkEqualBool(inRange, false)
	}
	if !inRange {
		return fmt.Errorf("%v reported out of range", f1)
	}
	return f.check(r1, want)
}

func (f fuzzInt[L]) String() error {
	b1, i1 := f.x1()
	return checkEqualString(i1, b1)
}

func (f fuzzInt[L]) SetBit() error {
	b1, i1 := f.x1()
	bt := int(f.source.Uintn(f.width()))
	bv := f.source.Uintn(2)
	return f.check(i1.SetBit(bt, bv), new(big.Int).SetBit(b1, bt, bv))
}

func (f fuzzInt[L]) Bit() error {
	b1, i1 := f.x1()
	bt := int(f.source.Uintn(f.width()))
	return checkEqualInt(int(i1.Bit(bt)), int(b1.Bit(bt)))
}

func (f fuzzInt[L]) BitLen() error {
	b1, i1 := f.x1()
	return checkEqualInt(i1.BitLen(), b1.BitLen())
}
