package num

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FloatFromString parses a decimal floating point number:
//
//	[+-] (digits [. [digits]] | . digits) [(e|E) [+-] digits]
//	[+-] (inf | infinity)
//	nan
//
// Keywords are case-insensitive. The value is rounded once with F's rounding
// mode. Malformed input returns a *ConversionError wrapping ErrSyntax.
func FloatFromString[F Format](s string) (Float[F], error) {
	l := formatLayout[F]()
	v, err := parseFloat(s)
	if err != nil {
		return Float[F]{}, &ConversionError{Type: l.typeName(), Input: s, Err: err}
	}
	return fromValue[F](l.convert(v, 10)), nil
}

func (l *layout) typeName() string {
	return fmt.Sprintf("float(%d,%d,%d)", l.p, l.radix, l.r)
}

// Exponents past this are clamped; the value has long since overflowed or
// underflowed every layout.
const maxParsedExp = 1 << 40

func parseFloat(s string) (value, error) {
	i, neg := 0, false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	switch strings.ToLower(s[i:]) {
	case "inf", "infinity":
		return infValue(neg), nil
	case "nan":
		return nanValue(), nil
	}

	var digits strings.Builder
	var frac int64
	seen, dot := false, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seen = true
			if digits.Len() > 0 || c != '0' {
				digits.WriteByte(c)
			}
			if dot {
				frac++
			}
			continue
		case c == '.' && !dot:
			dot = true
			continue
		}
		break
	}
	if !seen {
		return value{}, ErrSyntax
	}

	var exp int64
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		eneg := false
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			eneg = s[i] == '-'
			i++
		}
		start := i
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			if exp < maxParsedExp {
				exp = exp*10 + int64(s[i]-'0')
			}
		}
		if i == start {
			return value{}, ErrSyntax
		}
		if eneg {
			exp = -exp
		}
	}
	if i != len(s) {
		return value{}, ErrSyntax
	}

	if digits.Len() == 0 {
		return zeroValue(neg), nil
	}
	c, _ := new(big.Int).SetString(digits.String(), 10)
	return value{form: formFinite, neg: neg, coeff: c, exp: exp - frac}, nil
}

// scaled returns |v| / 10^s rounded half to even, for a finite v.
func (l *layout) scaled(v value, s int64) *big.Int {
	num, den := new(big.Int).Set(v.coeff), big.NewInt(1)
	if v.exp >= 0 {
		num = l.mulPow(num, v.exp)
	} else {
		den = l.pow(-v.exp)
	}
	p := new(big.Int).Exp(big10, big.NewInt(abs64(s)), nil)
	if s >= 0 {
		den = new(big.Int).Mul(den, p)
	} else {
		num.Mul(num, p)
	}

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	switch rem.Lsh(rem, 1).Cmp(den) {
	case 1:
		quo.Add(quo, big1)
	case 0:
		if quo.Bit(0) == 1 {
			quo.Add(quo, big1)
		}
	}
	return quo
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// log10 estimates log10 of a finite v.
func (l *layout) log10(v value) float64 {
	f := new(big.Float).SetInt(v.coeff)
	m := new(big.Float)
	e := f.MantExp(m)
	mf, _ := m.Float64()
	return math.Log10(mf) + float64(e)*math.Log10(2) + float64(v.exp)*math.Log10(float64(l.radix))
}

// digitsN returns |v| rounded to n significant decimal digits, as the
// digit string and the position of the decimal point: |v| ~ 0.digits * 10^dp.
func (l *layout) digitsN(v value, n int) (digits string, dp int64) {
	e10 := int64(math.Floor(l.log10(v)))
	lo := new(big.Int).Exp(big10, big.NewInt(int64(n-1)), nil)
	hi := new(big.Int).Mul(lo, big10)
	for range 4 {
		s := e10 - int64(n) + 1
		d := l.scaled(v, s)
		switch {
		case d.Cmp(hi) >= 0:
			e10++
		case d.Cmp(lo) < 0:
			e10--
		default:
			return d.String(), s + int64(n)
		}
	}
	// The estimate is never off by more than one; reaching here means a
	// rounding carry, which leaves a power of ten.
	return "1" + strings.Repeat("0", n-1), e10 + 1
}

// shortest returns the fewest decimal digits that parse back to exactly v,
// with trailing zeros removed.
func (l *layout) shortest(v value) (digits string, dp int64) {
	if l.radix == 10 {
		s := strings.TrimRight(v.coeff.String(), "0")
		n := int64(len(v.coeff.String()))
		return s, v.exp + n
	}

	maxN := int(math.Ceil(float64(l.digits)*math.Log10(float64(l.radix)))) + 1
	lo, hi := 1, maxN
	for lo < hi {
		mid := (lo + hi) / 2
		if l.roundTrips(v, mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	digits, dp = l.digitsN(v, lo)
	return strings.TrimRight(digits, "0"), dp
}

func (l *layout) roundTrips(v value, n int) bool {
	digits, dp := l.digitsN(v, n)
	c, _ := new(big.Int).SetString(digits, 10)
	back := l.convert(value{form: formFinite, neg: v.neg, coeff: c, exp: dp - int64(n)}, 10)
	if back.form != formFinite {
		return false
	}
	return back.exp == v.exp && back.coeff.Cmp(v.coeff) == 0
}

// formatValue renders v. verb is one of 'e', 'f' or 'g'; a negative prec
// asks for the shortest representation that round-trips.
func (l *layout) formatValue(v value, verb byte, prec int) string {
	switch v.form {
	case formNaN:
		return "NaN"
	case formInf:
		if v.neg {
			return "-Inf"
		}
		return "+Inf"
	}

	var sb strings.Builder
	if v.neg {
		sb.WriteByte('-')
	}
	if v.form == formZero {
		switch {
		case verb == 'e':
			writeE(&sb, "0", 1, max(prec, 0))
		case verb == 'f':
			writeF(&sb, "0", 1, max(prec, 0))
		default:
			sb.WriteByte('0')
		}
		return sb.String()
	}

	switch verb {
	case 'e':
		var digits string
		var dp int64
		if prec < 0 {
			digits, dp = l.shortest(v)
			prec = len(digits) - 1
		} else {
			digits, dp = l.digitsN(v, prec+1)
		}
		writeE(&sb, digits, dp, prec)

	case 'f':
		if prec < 0 {
			digits, dp := l.shortest(v)
			writeF(&sb, digits, dp, max(len(digits)-int(dp), 0))
			break
		}
		d := l.scaled(v, int64(-prec)).String()
		writeF(&sb, d, int64(len(d)-prec), prec)

	default:
		var digits string
		var dp int64
		eprec := 6
		if prec < 0 {
			digits, dp = l.shortest(v)
		} else {
			if prec == 0 {
				prec = 1
			}
			digits, dp = l.digitsN(v, prec)
			digits = strings.TrimRight(digits, "0")
			eprec = prec
			if eprec > len(digits) && int64(len(digits)) >= dp {
				eprec = len(digits)
			}
		}
		if exp := dp - 1; exp < -4 || exp >= int64(eprec) {
			writeE(&sb, digits, dp, len(digits)-1)
		} else {
			writeF(&sb, digits, dp, max(len(digits)-int(dp), 0))
		}
	}
	return sb.String()
}

// writeE writes 0.digits * 10^dp as d.ddd e±xx with prec fraction digits.
func writeE(sb *strings.Builder, digits string, dp int64, prec int) {
	sb.WriteByte(digits[0])
	if prec > 0 {
		sb.WriteByte('.')
		frac := digits[1:]
		if len(frac) > prec {
			frac = frac[:prec]
		}
		sb.WriteString(frac)
		for i := len(frac); i < prec; i++ {
			sb.WriteByte('0')
		}
	}
	exp := dp - 1
	if digits == "0" {
		exp = 0
	}
	sb.WriteByte('e')
	if exp < 0 {
		sb.WriteByte('-')
		exp = -exp
	} else {
		sb.WriteByte('+')
	}
	if exp < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.FormatInt(exp, 10))
}

// writeF writes 0.digits * 10^dp in positional form with frac fraction
// digits. Digits past frac are dropped; callers round beforehand.
func writeF(sb *strings.Builder, digits string, dp int64, frac int) {
	digit := func(i int64) byte {
		if i < 0 || i >= int64(len(digits)) {
			return '0'
		}
		return digits[i]
	}
	if dp <= 0 {
		sb.WriteByte('0')
	} else {
		for i := int64(0); i < dp; i++ {
			sb.WriteByte(digit(i))
		}
	}
	if frac > 0 {
		sb.WriteByte('.')
		for i := 0; i < frac; i++ {
			sb.WriteByte(digit(dp + int64(i)))
		}
	}
}

// String returns the shortest decimal that parses back to x, in %g style:
// "1.5", "1e+06", "-0", "NaN", "+Inf".
func (x Float[F]) String() string {
	return x.layout().formatValue(x.value(), 'g', -1)
}

// Text formats x like strconv.FormatFloat, for the verbs 'e', 'f' and 'g'.
// A negative prec selects the shortest representation.
func (x Float[F]) Text(verb byte, prec int) string {
	return x.layout().formatValue(x.value(), verb, prec)
}

// Format implements fmt.Formatter for the verbs e, E, f, F, g, G, v and s,
// honouring precision, width and the '+', '-' and '0' flags.
func (x Float[F]) Format(s fmt.State, c rune) {
	prec, hasPrec := s.Precision()
	if !hasPrec {
		prec = -1
		if c == 'e' || c == 'E' || c == 'f' || c == 'F' {
			prec = 6
		}
	}

	var out string
	switch c {
	case 'e', 'E':
		out = x.Text('e', prec)
	case 'f', 'F':
		out = x.Text('f', prec)
	case 'g', 'G', 'v', 's':
		out = x.Text('g', prec)
	default:
		fmt.Fprintf(s, "%%!%c(num.Float=%s)", c, x.String())
		return
	}
	if (c == 'E' || c == 'G') && !x.IsNaN() && !x.IsInf(0) {
		out = strings.ToUpper(out)
	}
	if s.Flag('+') && out[0] != '-' && out[0] != '+' {
		out = "+" + out
	}

	if w, ok := s.Width(); ok && w > len(out) {
		pad := w - len(out)
		switch {
		case s.Flag('-'):
			out += strings.Repeat(" ", pad)
		case s.Flag('0') && !x.IsNaN() && !x.IsInf(0):
			sign := ""
			if out[0] == '-' || out[0] == '+' {
				sign, out = out[:1], out[1:]
			}
			out = sign + strings.Repeat("0", pad) + out
		default:
			out = strings.Repeat(" ", pad) + out
		}
	}
	fmt.Fprint(s, out)
}

func isFloatRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '+', r == '-', r == '.':
		return true
	}
	return false
}

// Scan implements fmt.Scanner using the FloatFromString grammar.
func (x *Float[F]) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, isFloatRune)
	if err != nil {
		return err
	}
	v, err := FloatFromString[F](string(tok))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x Float[F]) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Float[F]) UnmarshalText(bts []byte) error {
	v, err := FloatFromString[F](string(bts))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a quoted string, since JSON numbers cannot carry
// NaN, infinities or more precision than a float64.
func (x Float[F]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + x.String() + `"`), nil
}

func (x *Float[F]) UnmarshalJSON(bts []byte) (err error) {
	bts, err = unquoteJSON(x.layout().typeName(), bts)
	if err != nil {
		return err
	}
	return x.UnmarshalText(bts)
}
