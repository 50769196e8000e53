package functional

import (
	"math/rand/v2"
	"sync"
)

// Supplier produces a value on demand.
type Supplier[T any] func() T

// Get invokes the supplier.
func (s Supplier[T]) Get() T {
	return s()
}

// Constant returns a supplier that always yields v.
func Constant[T any](v T) Supplier[T] {
	return func() T { return v }
}

// Memoize returns a supplier that invokes s at most once and replays its
// result. Safe for concurrent use.
func Memoize[T any](s Supplier[T]) Supplier[T] {
	var once sync.Once
	var rv T
	return func() T {
		once.Do(func() {
			rv = s()
		})
		return rv
	}
}

// Take calls s n times and returns the values in call order.
func Take[T any](s Supplier[T], n int) []T {
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	for i := range out {
		out[i] = s()
	}
	return out
}

// UniformInt returns a supplier drawing uniformly from [lo, hi]. Swapped
// bounds are reordered. A nil rng uses the global source.
func UniformInt(rng *rand.Rand, lo, hi int) Supplier[int] {
	if hi < lo {
		lo, hi = hi, lo
	}
	// Unsigned, so wide ranges cannot overflow. Wraps to 0 only when [lo, hi]
	// covers every int.
	span := uint64(hi) - uint64(lo) + 1
	draw, full := rand.Uint64N, rand.Uint64
	if rng != nil {
		draw, full = rng.Uint64N, rng.Uint64
	}
	if span == 0 {
		return func() int { return int(full()) }
	}
	return func() int { return lo + int(draw(span)) }
}
