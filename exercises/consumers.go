package exercises

import (
	"fmt"
	"io"

	"github.com/kbukum/funckit/functional"
)

// StarPrinter writes each value framed by "***" on its own line.
func StarPrinter(w io.Writer) functional.Consumer[string] {
	return func(s string) { fmt.Fprintf(w, "*** %s ***\n", s) }
}

// PrintSquare writes n*n with no separator.
func PrintSquare(w io.Writer) functional.Consumer[int] {
	return func(n int) { fmt.Fprint(w, n*n) }
}

// errWriter keeps the first write error so that consumers, which cannot
// return one, still let the driving function report it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
