package limb

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrSyntax = errors.New("invalid syntax")
	ErrRange  = errors.New("value out of range")
)

// 10^19 is the largest power of ten that fits in a word.
const (
	chunkDigits = 19
	chunkBase   = 10000000000000000000
)

var pow10 = [chunkDigits + 1]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// FormatDecimal renders x as an unsigned decimal string with no leading
// zeros.
func FormatDecimal(x []uint64) string {
	if IsZero(x) {
		return "0"
	}
	if sigWords(x) == 1 {
		return strconv.FormatUint(x[0], 10)
	}

	t := make([]uint64, len(x))
	copy(t, x)

	var chunks []uint64
	for !IsZero(t) {
		chunks = append(chunks, DivWord(t, t, chunkBase))
	}

	var sb strings.Builder
	sb.Grow(len(chunks) * chunkDigits)
	sb.WriteString(strconv.FormatUint(chunks[len(chunks)-1], 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		s := strconv.FormatUint(chunks[i], 10)
		for pad := chunkDigits - len(s); pad > 0; pad-- {
			sb.WriteByte('0')
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// ParseDecimal sets z to the unsigned decimal integer in s. It returns
// ErrSyntax if s is empty or contains anything other than ASCII digits, and
// ErrRange if the value does not fit in z. z is unspecified after an error.
func ParseDecimal(z []uint64, s string) error {
	clear(z)
	if s == "" {
		return ErrSyntax
	}

	overflow := false
	for i := 0; i < len(s); i += chunkDigits {
		chunk := s[i:min(i+chunkDigits, len(s))]
		var v uint64
		for j := 0; j < len(chunk); j++ {
			c := chunk[j]
			if c < '0' || c > '9' {
				return ErrSyntax
			}
			v = v*10 + uint64(c-'0')
		}
		if !overflow && MulAddWord(z, z, pow10[len(chunk)], v) != 0 {
			overflow = true
		}
	}
	if overflow {
		return ErrRange
	}
	return nil
}
