package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/funckit/observability"

// SpanPass names the span covering one pipeline pass.
const SpanPass = "pipeline.pass"

// Span attribute keys set by PassContext.
const (
	AttrOperation    = "pass.operation"
	AttrRunID        = "pass.run_id"
	AttrAccepted     = "pass.accepted"
	AttrRejected     = "pass.rejected"
	AttrStage        = "pass.stage"
	AttrIndex        = "pass.index"
	AttrDurationMs   = "duration_ms"
	AttrStatus       = "status"
	AttrErrorCode    = "error.code"
	AttrErrorMessage = "error.message"
)

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a span on the package tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(instrumentationName).Start(ctx, name, opts...)
}
