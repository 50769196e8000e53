// Package pipeline provides the filter → transform → consume engine and the
// composable, pull-based operators it is built from.
//
// # Engine
//
// Run and RunE perform one synchronous pass over a slice. For every element,
// in input order, the filter is evaluated; only if it accepts the element is
// the transform applied and its result handed to the consumer. Rejected
// elements never reach the transform or the consumer.
//
//	var out []int
//	pipeline.Run([]int{1, 2, 3, 4, 5, 6},
//	    func(n int) bool { return n%2 == 0 },
//	    func(n int) int { return n * 10 },
//	    func(n int) { out = append(out, n) },
//	)
//	// out == [20 40 60]
//
// RunE is the error-aware form. The first error raised by any stage aborts
// the pass and is returned as an *errors.AppError with code STAGE_FAILED,
// carrying the stage name and element index and wrapping the original error.
//
// # Operators
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous one on demand.
//
//   - Map: transform each value
//   - FlatMap: transform each value into multiple values
//   - Filter, FilterE: keep values matching a predicate
//   - Tap: side-effect without altering the value
//   - Reduce: accumulate all values into one result
//   - Concat: join pipelines sequentially
//
// Usage:
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := pipeline.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	evens := pipeline.Filter(doubled, func(n int) bool { return n%2 == 0 })
//	results, _ := pipeline.Collect(ctx, evens)
package pipeline
