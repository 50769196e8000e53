// Package exercises contains small, self-contained uses of the functional
// types: suppliers, predicates, functions and consumers built from plain
// closures, and two drivers that combine them through the pipeline engine.
//
// Everything that prints takes an io.Writer so the output can be captured:
//
//	exercises.StarPrinter(os.Stdout).Accept("Hello") // *** Hello ***
//	_ = exercises.ProcessStrings(os.Stdout, []string{"Go", "Java", "KOTLIN"})
//	// javakotlin
package exercises
