package exercises

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/funckit/functional"
	"github.com/kbukum/funckit/pipeline"
)

// PassingScore is the exclusive lower bound used by GenerateAndFilterScores.
const PassingScore = 70

// ProcessStrings keeps the values longer than three characters, lower-cases
// them and writes them back to back. It returns the first write error.
func ProcessStrings(w io.Writer, values []string) error {
	out := &errWriter{w: w}

	longEnough := functional.Predicate[string](func(s string) bool { return utf8.RuneCountInString(s) > 3 })
	toLower := functional.Function[string, string](strings.ToLower)
	printer := functional.Consumer[string](func(s string) { io.WriteString(out, s) })

	pipeline.Run(values, longEnough, toLower, printer)
	return out.err
}

// GenerateAndFilterScores draws five scores from supplier and writes the ones
// above PassingScore, one per line. A nil supplier draws from ScoreSupplier.
func GenerateAndFilterScores(w io.Writer, supplier functional.Supplier[int]) error {
	if supplier == nil {
		supplier = ScoreSupplier(nil)
	}
	out := &errWriter{w: w}

	pass := functional.Predicate[int](func(n int) bool { return n > PassingScore })
	printer := functional.Consumer[int](func(n int) { fmt.Fprintln(out, n) })

	pipeline.Run(functional.Take(supplier, 5), pass, functional.Identity[int](), printer)
	return out.err
}
