package pipeline

import (
	"context"

	"github.com/kbukum/funckit/errors"
)

// Run performs one pass over input: for each element in order, filter is
// evaluated and, only if it returns true, transform is applied and its
// result passed to consume.
//
// Run has no error channel. A panic raised by any stage aborts the pass
// and propagates to the caller. Run panics with an *errors.AppError if any
// stage is nil.
func Run[T, R any](input []T, filter func(T) bool, transform func(T) R, consume func(R)) {
	if err := checkStages(filter != nil, transform != nil, consume != nil); err != nil {
		panic(err)
	}
	// Lifted stages cannot fail, so RunE can only return nil here.
	_ = RunE(context.Background(), input,
		func(_ context.Context, v T) (bool, error) { return filter(v), nil },
		func(_ context.Context, v T) (R, error) { return transform(v), nil },
		func(_ context.Context, r R) error { consume(r); return nil },
	)
}

// RunE is the error-aware form of Run.
//
// The pass stops at the first error: an error from filter, transform or
// consume, or cancellation of ctx (checked before each element). It is
// returned as an *errors.AppError with code STAGE_FAILED whose details hold
// the stage name and element index; the original error is its cause. No
// element after the failing one is evaluated.
func RunE[T, R any](
	ctx context.Context,
	input []T,
	filter func(context.Context, T) (bool, error),
	transform func(context.Context, T) (R, error),
	consume func(context.Context, R) error,
) error {
	if err := checkStages(filter != nil, transform != nil, consume != nil); err != nil {
		return err
	}

	src := fromIndexed(input)
	kept := FilterE(src, func(ctx context.Context, e indexed[T]) (bool, error) {
		ok, err := filter(ctx, e.val)
		if err != nil {
			return false, errors.StageFailed(errors.StageFilter, e.index, err)
		}
		return ok, nil
	})
	mapped := Map(kept, func(ctx context.Context, e indexed[T]) (indexed[R], error) {
		out, err := transform(ctx, e.val)
		if err != nil {
			return indexed[R]{}, errors.StageFailed(errors.StageTransform, e.index, err)
		}
		return indexed[R]{index: e.index, val: out}, nil
	})
	return Drain(mapped, func(ctx context.Context, e indexed[R]) error {
		if err := consume(ctx, e.val); err != nil {
			return errors.StageFailed(errors.StageConsume, e.index, err)
		}
		return nil
	}).Run(ctx)
}

func checkStages(hasFilter, hasTransform, hasConsume bool) error {
	switch {
	case !hasFilter:
		return errors.InvalidInput(errors.StageFilter, "filter must not be nil")
	case !hasTransform:
		return errors.InvalidInput(errors.StageTransform, "transform must not be nil")
	case !hasConsume:
		return errors.InvalidInput(errors.StageConsume, "consume must not be nil")
	}
	return nil
}

// indexed pairs a value with its position in the input slice.
type indexed[T any] struct {
	index int
	val   T
}

// fromIndexed streams items paired with their positions. ctx is checked
// before each element so a cancelled pass stops at the source.
func fromIndexed[T any](items []T) *Pipeline[indexed[T]] {
	return FromFunc(func(context.Context) Iterator[indexed[T]] {
		pos := 0
		return NextFunc[indexed[T]](func(ctx context.Context) (indexed[T], bool, error) {
			if pos == len(items) {
				return end[indexed[T]](nil)
			}
			if err := ctx.Err(); err != nil {
				return end[indexed[T]](errors.StageFailed(errors.StageSource, pos, err))
			}
			pos++
			return indexed[T]{index: pos - 1, val: items[pos-1]}, true, nil
		})
	})
}
