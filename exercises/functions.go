package exercises

import (
	"strings"
	"unicode"

	"github.com/kbukum/funckit/functional"
)

// CelsiusToFahrenheit converts with F = C * 9/5 + 32.
func CelsiusToFahrenheit() functional.Function[float64, float64] {
	return func(c float64) float64 { return c*1.8 + 32 }
}

// CountVowels counts a, e, i, o and u regardless of case.
func CountVowels() functional.Function[string, int] {
	return func(s string) int {
		n := 0
		for _, r := range s {
			if strings.ContainsRune("aeiou", unicode.ToLower(r)) {
				n++
			}
		}
		return n
	}
}
