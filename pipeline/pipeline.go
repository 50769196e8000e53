package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// NextFunc adapts a plain pull function to an Iterator with a no-op Close.
type NextFunc[T any] func(ctx context.Context) (T, bool, error)

// Next calls f.
func (f NextFunc[T]) Next(ctx context.Context) (T, bool, error) { return f(ctx) }

// Close does nothing.
func (f NextFunc[T]) Close() error { return nil }

// Pipeline is a lazy, pull-based stream of values.
// No work happens until values are pulled via Collect, Drain, or ForEach.
// A pipeline built from FromSlice or FromSupplier can be run repeatedly;
// every run creates fresh iterators.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// Runnable is a pipeline bound to its sink, ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run pulls the pipeline to completion or to the first error.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// From wraps an existing Iterator. The iterator is shared, so the
// pipeline can only be drained once.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return FromFunc(func(context.Context) Iterator[T] { return iter })
}

// FromSlice streams the elements of items in order.
func FromSlice[T any](items []T) *Pipeline[T] {
	return FromFunc(func(context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	})
}

// FromFunc builds a pipeline whose every run opens a new Iterator via fn.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{open: fn}
}

// FromSupplier yields n values, calling supply once per value as each is
// requested. A non-positive n yields nothing.
func FromSupplier[T any](n int, supply func() T) *Pipeline[T] {
	return FromFunc(func(context.Context) Iterator[T] {
		left := n
		return NextFunc[T](func(context.Context) (T, bool, error) {
			if left <= 0 {
				return end[T](nil)
			}
			left--
			return supply(), true, nil
		})
	})
}

// Drain binds p to sink. Each run pulls every value and hands it to sink,
// stopping at the first error from either side.
func Drain[T any](p *Pipeline[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{run: func(ctx context.Context) error {
		return pull(ctx, p.open(ctx), sink)
	}}
}

// Collect runs p and gathers its values. On error the values gathered so
// far are returned alongside it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := pull(ctx, p.open(ctx), func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// ForEach is Drain(p, fn).Run(ctx).
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	return Drain(p, fn).Run(ctx)
}

// Iter opens a raw Iterator over p. The caller must Close it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.open(ctx)
}

func pull[T any](ctx context.Context, it Iterator[T], sink func(context.Context, T) error) error {
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err = sink(ctx, v); err != nil {
			return err
		}
	}
}

// end is the zero-value return of an exhausted or failed Next.
func end[T any](err error) (T, bool, error) {
	var zero T
	return zero, false, err
}

type sliceIter[T any] struct {
	items []T
	pos   int
}

func (it *sliceIter[T]) Next(context.Context) (T, bool, error) {
	if it.pos == len(it.items) {
		return end[T](nil)
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
