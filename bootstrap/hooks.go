package bootstrap

import (
	"context"
	"errors"
	"fmt"
)

// Hook is a lifecycle callback run around the task.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run, in registration order, once telemetry
// is up and before the configure callbacks. The first failure aborts
// startup.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run after the task returns, even when it
// failed, and before telemetry is flushed. They run in reverse
// registration order so teardown mirrors setup.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// startAll runs hooks in order and stops at the first error.
func startAll(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

// stopAll runs every hook last to first and joins their errors.
func stopAll(ctx context.Context, hooks []Hook) error {
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("hook %d failed: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
