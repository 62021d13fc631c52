/*
Package num provides fixed-width integer and floating point types wider than
the built-in ones.

Uint and Int are unsigned and two's complement integers whose width is fixed
by an array of 64-bit words, from 64 up to 2048 bits. Float is a floating
point number whose mantissa width, radix and exponent width are chosen by a
Format type parameter. All three are value types; all operations return new
values.

Simple example:

	u1 := num.UintFrom64[[2]uint64](math.MaxUint64)
	u2 := num.UintFrom64[[2]uint64](math.MaxUint64)
	fmt.Println(u1.Mul(u2))
	// Output: 340282366920938463426481119284349108225

Aliases cover the common widths: U128, U256 ... U2048, I128 ... I2048, and
Float16, Float32, Float64, Float128, Float256, Dec64 and Dec128.

Integer arithmetic wraps modulo 2^N like the built-in types. Division by zero
panics in Quo, Rem and QuoRem and returns ErrDivisionByZero from their
Checked counterparts. Int division truncates towards zero and the remainder
takes the sign of the dividend.

Float arithmetic is computed exactly and rounded once to the format. Floats
have signed zeros, subnormals, infinities and a quiet NaN; NaN is unordered,
so Equal, LessThan and friends are false and NotEqual is true.

Integers can be created from a variety of sources:

	UintFrom64(v uint64)
	UintFromInt(v T) // any built-in integer
	UintFromFloat(f T) (out, inRange bool)
	UintFromString(s string) (out, error)
	UintFromBigInt(v *big.Int) (out, accurate bool)
	UintFromRaw(words L)

Every type supports the following formatting and marshalling interfaces:

	- fmt.Formatter
	- fmt.Stringer
	- fmt.Scanner
	- json.Marshaler
	- json.Unmarshaler
	- encoding.TextMarshaler
	- encoding.TextUnmarshaler

Every type can also lift into Extended, a binary float with run time
precision, and come back again; package nummath uses that to evaluate
elementary functions for all of them.
*/
package num
