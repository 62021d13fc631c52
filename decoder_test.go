package num

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestDecoderMixedTypes(t *testing.T) {
	tt := assert.WrapTB(t)
	dec := NewDecoder(strings.NewReader("  18446744073709551616\t-42\n\n1.5e3 0.1 nan "))

	var u U128
	var i I128
	var f Float64
	var d Dec64
	var g Float32

	tt.MustOK(dec.Decode(&u))
	tt.MustEqual("18446744073709551616", u.String())
	tt.MustOK(dec.Decode(&i))
	tt.MustEqual(i64(-42), i)
	tt.MustOK(dec.Decode(&f))
	tt.MustEqual(1500.0, f.AsFloat64())
	tt.MustOK(dec.Decode(&d))
	tt.MustEqual("0.1", d.String())
	tt.MustOK(dec.Decode(&g))
	tt.MustAssert(g.IsNaN())

	tt.MustEqual(io.EOF, dec.Decode(&u))
	tt.MustAssert(!dec.Failed())
}

func TestDecoderStickyFailure(t *testing.T) {
	tt := assert.WrapTB(t)
	dec := NewDecoder(strings.NewReader("1 x 3 -4"))

	var u U64
	tt.MustOK(dec.Decode(&u))
	tt.MustEqual(UintFrom64[[1]uint64](1), u)

	err := dec.Decode(&u)
	tt.MustAssert(errors.Is(err, ErrSyntax))
	tt.MustAssert(dec.Failed())
	tt.MustEqual(UintFrom64[[1]uint64](1), u)

	// The failure sticks without consuming anything more.
	tt.MustEqual(err, dec.Decode(&u))
	tt.MustEqual(err, dec.Err())

	dec.Clear()
	tt.MustAssert(!dec.Failed())
	tt.MustOK(dec.Decode(&u))
	tt.MustEqual(UintFrom64[[1]uint64](3), u)

	err = dec.Decode(&u)
	var ce *ConversionError
	tt.MustAssert(errors.As(err, &ce))
	tt.MustEqual("-4", ce.Input)
	tt.MustEqual("u64", ce.Type)
}

func TestDecoderRange(t *testing.T) {
	tt := assert.WrapTB(t)
	dec := NewDecoder(strings.NewReader("128 -129"))
	var v Int[[1]uint64]
	tt.MustOK(dec.Decode(&v))

	var small U64
	dec = NewDecoder(strings.NewReader("18446744073709551616"))
	tt.MustAssert(errors.Is(dec.Decode(&small), ErrRange))
}

func TestDecoderInvalidUTF8(t *testing.T) {
	tt := assert.WrapTB(t)
	dec := NewDecoder(strings.NewReader("1\xff2 5"))
	var u U128
	tt.MustAssert(errors.Is(dec.Decode(&u), ErrSyntax))
	dec.Clear()
	tt.MustOK(dec.Decode(&u))
	tt.MustEqual(u64(5), u)
}
