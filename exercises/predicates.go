package exercises

import (
	"strings"

	"github.com/kbukum/funckit/functional"
)

// IsAllUpperCase reports whether upper-casing s leaves it unchanged.
// Strings without letters count as upper case.
func IsAllUpperCase() functional.Predicate[string] {
	return func(s string) bool { return s == strings.ToUpper(s) }
}

// PositiveAndDivisibleByFive chains two predicates with And.
func PositiveAndDivisibleByFive() functional.Predicate[int] {
	positive := functional.Predicate[int](func(n int) bool { return n > 0 })
	return positive.And(divisibleBy(5))
}

func divisibleBy(d int) functional.Predicate[int] {
	return func(n int) bool { return n%d == 0 }
}
