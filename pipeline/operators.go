package pipeline

import "context"

// stage is an Iterator assembled from closures over an upstream iterator.
type stage[T any] struct {
	next  func(ctx context.Context) (T, bool, error)
	close func() error
}

func (s *stage[T]) Next(ctx context.Context) (T, bool, error) { return s.next(ctx) }
func (s *stage[T]) Close() error                              { return s.close() }

// derive builds a pipeline that, on every run, opens p and wraps the
// resulting iterator with step. The upstream iterator is closed with it.
func derive[I, O any](p *Pipeline[I], step func(up Iterator[I]) func(context.Context) (O, bool, error)) *Pipeline[O] {
	return FromFunc(func(ctx context.Context) Iterator[O] {
		up := p.open(ctx)
		return &stage[O]{next: step(up), close: up.Close}
	})
}

// Map transforms each value using fn.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return derive(p, func(up Iterator[I]) func(context.Context) (O, bool, error) {
		return func(ctx context.Context) (O, bool, error) {
			in, ok, err := up.Next(ctx)
			if err != nil || !ok {
				return end[O](err)
			}
			out, err := fn(ctx, in)
			if err != nil {
				return end[O](err)
			}
			return out, true, nil
		}
	})
}

// FlatMap expands each value into an iterator and yields the expanded
// values in order. Each inner iterator is closed once exhausted.
func FlatMap[I, O any](p *Pipeline[I], fn func(context.Context, I) (Iterator[O], error)) *Pipeline[O] {
	return FromFunc(func(ctx context.Context) Iterator[O] {
		up := p.open(ctx)
		var inner Iterator[O]
		closeInner := func() error {
			if inner == nil {
				return nil
			}
			err := inner.Close()
			inner = nil
			return err
		}
		return &stage[O]{
			next: func(ctx context.Context) (O, bool, error) {
				for {
					if inner != nil {
						v, ok, err := inner.Next(ctx)
						if err != nil {
							return end[O](err)
						}
						if ok {
							return v, true, nil
						}
						_ = closeInner()
					}
					in, ok, err := up.Next(ctx)
					if err != nil || !ok {
						return end[O](err)
					}
					if inner, err = fn(ctx, in); err != nil {
						return end[O](err)
					}
				}
			},
			close: func() error {
				innerErr := closeInner()
				if err := up.Close(); err != nil {
					return err
				}
				return innerErr
			},
		}
	})
}

// Filter keeps only values that satisfy keep.
func Filter[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return FilterE(p, func(_ context.Context, v T) (bool, error) {
		return keep(v), nil
	})
}

// FilterE keeps only values that satisfy a fallible predicate.
// A predicate error ends the stream with that error.
func FilterE[T any](p *Pipeline[T], keep func(context.Context, T) (bool, error)) *Pipeline[T] {
	return derive(p, func(up Iterator[T]) func(context.Context) (T, bool, error) {
		return func(ctx context.Context) (T, bool, error) {
			for {
				v, ok, err := up.Next(ctx)
				if err != nil || !ok {
					return end[T](err)
				}
				if ok, err = keep(ctx, v); err != nil {
					return end[T](err)
				}
				if ok {
					return v, true, nil
				}
			}
		}
	})
}

// Tap runs fn on each value as it passes through unchanged.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return Map(p, func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	})
}

// Reduce folds every value into an accumulator seeded with init.
// The resulting pipeline yields exactly one value, the final accumulator.
func Reduce[T, R any](p *Pipeline[T], init R, fn func(R, T) R) *Pipeline[R] {
	return derive(p, func(up Iterator[T]) func(context.Context) (R, bool, error) {
		folded := false
		return func(ctx context.Context) (R, bool, error) {
			if folded {
				return end[R](nil)
			}
			acc := init
			for {
				v, ok, err := up.Next(ctx)
				if err != nil {
					return end[R](err)
				}
				if !ok {
					break
				}
				acc = fn(acc, v)
			}
			folded = true
			return acc, true, nil
		}
	})
}

// Concat yields every value of each pipeline in turn. Each pipeline is
// opened only once the previous one is exhausted.
func Concat[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return FromFunc(func(context.Context) Iterator[T] {
		rest := pipelines
		var cur Iterator[T]
		return &stage[T]{
			next: func(ctx context.Context) (T, bool, error) {
				for {
					if cur == nil {
						if len(rest) == 0 {
							return end[T](nil)
						}
						cur, rest = rest[0].open(ctx), rest[1:]
					}
					v, ok, err := cur.Next(ctx)
					if err != nil {
						return end[T](err)
					}
					if ok {
						return v, true, nil
					}
					_ = cur.Close()
					cur = nil
				}
			},
			close: func() error {
				if cur == nil {
					return nil
				}
				return cur.Close()
			},
		}
	})
}
