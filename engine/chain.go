package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/kbukum/funckit/functional"
)

// BuildStringLengthPipeline returns trim, then lower-case, then length in
// runes, chained with AndThen.
func BuildStringLengthPipeline() functional.Function[string, int] {
	trim := functional.Function[string, string](strings.TrimSpace)
	lower := functional.Function[string, string](strings.ToLower)
	length := functional.Function[string, int](utf8.RuneCountInString)

	return functional.AndThen(functional.AndThen(trim, lower), length)
}
