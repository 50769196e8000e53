package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Element outcomes recorded on pass.elements.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// PassMetrics holds the instruments recorded for every pipeline pass.
type PassMetrics struct {
	passTotal    metric.Int64Counter
	passDuration metric.Float64Histogram
	elements     metric.Int64Counter
	errorTotal   metric.Int64Counter
}

// NewPassMetrics creates the pass instruments on the given meter.
func NewPassMetrics(meter metric.Meter) (*PassMetrics, error) {
	passTotal, err := meter.Int64Counter("pass.total",
		metric.WithDescription("Total number of pipeline passes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.total counter: %w", err)
	}

	passDuration, err := meter.Float64Histogram("pass.duration",
		metric.WithDescription("Duration of pipeline passes in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.duration histogram: %w", err)
	}

	elements, err := meter.Int64Counter("pass.elements",
		metric.WithDescription("Elements seen by pipeline passes, by filter outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.elements counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pass.errors",
		metric.WithDescription("Failed pipeline passes by stage and code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass.errors counter: %w", err)
	}

	return &PassMetrics{
		passTotal:    passTotal,
		passDuration: passDuration,
		elements:     elements,
		errorTotal:   errorTotal,
	}, nil
}

// RecordPass records one completed pass.
func (m *PassMetrics) RecordPass(ctx context.Context, operation, status string, duration time.Duration) {
	m.passTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.passDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordElements adds n elements with the given outcome. Zero is skipped.
func (m *PassMetrics) RecordElements(ctx context.Context, operation, outcome string, n int) {
	if n <= 0 {
		return
	}
	m.elements.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordError records a failed pass by stage and error code.
func (m *PassMetrics) RecordError(ctx context.Context, operation, stage, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("stage", stage),
		attribute.String("code", code),
	))
}
