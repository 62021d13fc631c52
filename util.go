package num

type RandSource interface {
	Uint64() uint64
}

// Ordered is satisfied by every number type in this package.
type Ordered[T any] interface {
	Cmp(T) int
	Sub(T) T
}

// Difference subtracts the smaller of a and b from the larger.
func Difference[T Ordered[T]](a, b T) T {
	if a.Cmp(b) >= 0 {
		return a.Sub(b)
	}
	return b.Sub(a)
}

// Larger returns the larger of a and b, or a if they are equal.
func Larger[T Ordered[T]](a, b T) T {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}

// Smaller returns the smaller of a and b, or a if they are equal.
func Smaller[T Ordered[T]](a, b T) T {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}
