package limb

// karatsubaThreshold is the operand length, in words, at or above which
// products are split recursively instead of using the schoolbook loop. See
// BenchmarkMulFull for the numbers that helped pick it.
var karatsubaThreshold = 16

// Mul sets z to the low len(z) words of x*y.
func Mul(z, x, y []uint64) {
	n := len(z)
	if n >= karatsubaThreshold && n%2 == 0 {
		var buf [2 * maxWords]uint64
		t := scratch(buf[:], 2*n)
		karatsuba(t, x, y)
		copy(z, t[:n])
		return
	}

	var buf [maxWords]uint64
	t := scratch(buf[:], n)
	for i := 0; i < n; i++ {
		if d := y[i]; d != 0 {
			// Anything that carries past word n-1 is discarded.
			AddMulWord(t[i:n], x[:n-i], d)
		}
	}
	copy(z, t)
}

// MulFull sets z, which must have len(x)+len(y) words and must not alias x or
// y, to the full product of x and y.
func MulFull(z, x, y []uint64) {
	if len(x) == len(y) {
		karatsuba(z, x, y)
		return
	}
	basicMul(z, x, y)
}

// basicMul is the schoolbook product; z must hold len(x)+len(y) words.
func basicMul(z, x, y []uint64) {
	clear(z[:len(x)+len(y)])
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = AddMulWord(z[i:i+len(x)], x, d)
		}
	}
}

// karatsuba computes the full product of two n-word vectors into the 2n words
// of z. Odd or short operands fall back to the schoolbook loop, so the result
// is always bit-identical to basicMul.
func karatsuba(z, x, y []uint64) {
	n := len(x)
	if n < karatsubaThreshold || n%2 != 0 || n < 4 {
		basicMul(z, x, y)
		return
	}

	h := n / 2
	x0, x1 := x[:h], x[h:]
	y0, y1 := y[:h], y[h:]

	// z = x1*y1<<(2h words) + x0*y0, laid out side by side.
	karatsuba(z[:n], x0, y0)
	karatsuba(z[n:], x1, y1)

	xs := make([]uint64, h+1)
	ys := make([]uint64, h+1)
	xs[h] = Add(xs[:h], x0, x1)
	ys[h] = Add(ys[:h], y0, y1)

	// p = (x0+x1)(y0+y1) - x0*y0 - x1*y1 = x0*y1 + x1*y0
	p := make([]uint64, 2*h+2)
	karatsuba(p, xs, ys)
	SubWord(p[n:], p[n:], Sub(p[:n], p[:n], z[:n]))
	SubWord(p[n:], p[n:], Sub(p[:n], p[:n], z[n:]))

	c := Add(z[h:h+len(p)], z[h:h+len(p)], p)
	AddWord(z[h+len(p):], z[h+len(p):], c)
}
