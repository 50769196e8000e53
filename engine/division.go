package engine

import (
	"github.com/kbukum/funckit/functional"
	"github.com/kbukum/funckit/optional"
)

// DivisionFallback is returned by ProcessDivision when the denominator is zero.
const DivisionFallback = -1.0

// SafeDivide returns a/b, or an empty Optional when b is zero.
func SafeDivide(a, b float64) optional.Optional[float64] {
	if b == 0 {
		return optional.Empty[float64]()
	}
	return optional.Of(a / b)
}

// ProcessDivision divides, scales a present result by ten and falls back to
// DivisionFallback otherwise.
func ProcessDivision(a, b float64) float64 {
	timesTen := functional.Function[float64, float64](func(q float64) float64 { return q * 10 })
	return optional.Map(SafeDivide(a, b), timesTen).OrElse(DivisionFallback)
}
