package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/funckit/logger"
	"github.com/kbukum/funckit/observability"
)

// App runs one finite task with the funckit lifecycle.
// The type parameter C is the config type; any struct embedding
// config.ServiceConfig satisfies Config.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	// Metrics records pipeline passes. It is valid after startup; with
	// tracing disabled it records into a no-op provider.
	Metrics *observability.PassMetrics
	Summary *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer
	shutdown        observability.ShutdownFunc

	onConfigure []func(ctx context.Context, app *App[C]) error
	onStart     []Hook
	onStop      []Hook
}

// NewApp applies defaults, validates the config and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	set := newSettings(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Logger:          set.logger,
		gracefulTimeout: set.gracefulTimeout,
		summaryOut:      set.summaryOut,
	}
	if app.Logger == nil {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// OnConfigure registers a callback that runs after the start hooks. Use it
// to build processors that need the app's logger or metrics.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// RunTask runs startup, the task and shutdown. SIGINT and SIGTERM cancel
// the task's context. The task error wins over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("task interrupted by signal")
	}
	stopSignals()

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Step runs fn as a named pass and records its outcome in the summary.
func (a *App[C]) Step(ctx context.Context, name string, fn func(ctx context.Context) (Counts, error)) error {
	start := time.Now()
	counts, err := fn(ctx)
	a.Summary.TrackPass(name, counts, time.Since(start), err)
	if err != nil {
		a.Logger.WithError(err).Error("step failed", logger.Fields(logger.FieldOperation, name))
	}
	return err
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	base := a.Cfg.GetServiceConfig()

	a.Logger.Info("starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
		"environment", base.Environment,
	))

	shutdown, err := observability.Setup(ctx, base.Tracing, base.Resource())
	if err != nil {
		return fmt.Errorf("telemetry setup failed: %w", err)
	}
	a.shutdown = shutdown

	metrics, err := observability.NewPassMetrics(observability.Meter(a.Name))
	if err != nil {
		return fmt.Errorf("metrics setup failed: %w", err)
	}
	a.Metrics = metrics

	if err := startAll(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}

	a.Summary.SetStartupDuration(time.Since(start))
	return nil
}

// stop runs the stop hooks and flushes telemetry within the graceful timeout.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var stopErr error
	if err := stopAll(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.ErrorFields("stop", err))
		stopErr = err
	}

	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.Logger.Error("telemetry shutdown error", logger.ErrorFields("stop", err))
			if stopErr == nil {
				stopErr = err
			}
		}
	}

	if a.summaryOut != nil {
		a.Summary.Display(a.summaryOut)
	}
	a.Logger.Info("application finished")
	return stopErr
}
