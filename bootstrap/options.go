package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/kbukum/funckit/logger"
)

// Option tunes an App at construction. Options are not generic, so the
// same values work for every config type.
type Option func(*settings)

// settings holds what Options can change, starting from defaultSettings.
type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

func defaultSettings() settings {
	return settings{
		gracefulTimeout: 15 * time.Second,
		summaryOut:      os.Stderr,
	}
}

func newSettings(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger uses l instead of initializing the global logger from the
// config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds the stop hooks and telemetry flush.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.gracefulTimeout = d }
}

// WithSummaryOutput writes the closing summary to w instead of stderr.
func WithSummaryOutput(w io.Writer) Option {
	return func(s *settings) { s.summaryOut = w }
}

// WithoutSummary disables the closing summary.
func WithoutSummary() Option {
	return WithSummaryOutput(nil)
}
