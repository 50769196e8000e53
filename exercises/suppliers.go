package exercises

import (
	"math/rand/v2"
	"time"

	"github.com/kbukum/funckit/functional"
)

// Clock returns the current time.
type Clock func() time.Time

// CurrentYearSupplier returns a supplier of the current calendar year.
// A nil clock falls back to time.Now.
func CurrentYearSupplier(clock Clock) functional.Supplier[int] {
	if clock == nil {
		clock = time.Now
	}
	return func() int { return clock().Year() }
}

// RandomScoreSupplier returns a supplier of uniformly distributed scores in
// [1, 100]. A nil rng uses the global source.
func RandomScoreSupplier(rng *rand.Rand) functional.Supplier[int] {
	return functional.UniformInt(rng, 1, 100)
}

// ScoreSupplier returns a supplier of scores in [0, 100].
func ScoreSupplier(rng *rand.Rand) functional.Supplier[int] {
	return functional.UniformInt(rng, 0, 100)
}
