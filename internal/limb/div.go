package limb

import (
	"math/bits"
)

// binaryCutoff is the largest quotient bit count for which QuoRem uses the
// shift-subtract loop rather than word-at-a-time long division. See
// BenchmarkQuoRem for the test that helps determine this magic number.
const binaryCutoff = 16

// DivWord sets q = x / y and returns x % y. y must not be zero; q may alias x.
func DivWord(q, x []uint64, y uint64) (r uint64) {
	for i := len(x) - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, x[i], y)
	}
	return r
}

// QuoRem sets q = u / v and r = u % v. v must not be zero. q and r may alias
// u or v, but not each other.
func QuoRem(q, r, u, v []uint64) {
	n, m := sigWords(v), sigWords(u)

	if m < n || (m == n && Cmp(u[:m], v[:n]) < 0) {
		copy(r, u) // it's 100% remainder
		clear(q)
		return
	}

	if n == 1 {
		d := v[0]
		rem := DivWord(q, u, d)
		clear(r)
		r[0] = rem
		return
	}

	uLeading0, vLeading0 := LeadingZeros(u), LeadingZeros(v)
	if vLeading0-uLeading0 <= binaryCutoff {
		quoRemBinary(q, r, u, v, vLeading0-uLeading0)
		return
	}
	quoRemKnuth(q, r, u[:m], v[:n])
}

// quoRemBinary is restoring shift-subtract division: shift lines v up with
// the top bit of u.
func quoRemBinary(q, r, u, v []uint64, shift uint) {
	var buf [2 * maxWords]uint64
	k := len(u)
	t := scratch(buf[:], 2*k)
	rem, by := t[:k], t[k:]
	copy(rem, u)
	Shl(by, v, shift)
	clear(q)

	for {
		Shl(q, q, 1)
		if Cmp(rem, by) >= 0 {
			Sub(rem, rem, by)
			q[0] |= 1
		}
		Shr(by, by, 1, 0)

		if shift == 0 {
			break
		}
		shift--
	}
	copy(r, rem)
}

// quoRemKnuth is Knuth's Algorithm D (TAOCP vol. 2, 4.3.1) over 64-bit
// digits. len(u) >= len(v) >= 2 and the top words of both are non-zero; q and
// r are full width.
func quoRemKnuth(q, r, u, v []uint64) {
	m, n := len(u), len(v)
	s := uint(bits.LeadingZeros64(v[n-1]))

	vn := make([]uint64, n)
	un := make([]uint64, m+1)
	qv := make([]uint64, n+1)
	shlBits(vn, v, s)
	un[m] = shlBits(un[:m], u, s)

	clear(q)
	vn1, vn2 := vn[n-1], vn[n-2]
	for j := m - n; j >= 0; j-- {
		qhat := ^uint64(0)
		if ujn := un[j+n]; ujn != vn1 {
			var rhat uint64
			qhat, rhat = bits.Div64(ujn, un[j+n-1], vn1)

			// Trim qhat until qhat*vn2 fits under rhat:un[j+n-2].
			x1, x2 := bits.Mul64(qhat, vn2)
			for x1 > rhat || (x1 == rhat && x2 > un[j+n-2]) {
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					break
				}
				x1, x2 = bits.Mul64(qhat, vn2)
			}
		}

		qv[n] = MulAddWord(qv[:n], vn, qhat, 0)
		if Sub(un[j:j+n+1], un[j:j+n+1], qv) != 0 {
			// qhat was one too large; add a divisor back.
			c := Add(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	clear(r)
	Shr(r[:n], un[:n], s, 0)
}
