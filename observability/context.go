package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/funckit/errors"
	"github.com/kbukum/funckit/logger"
)

// Pass statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// PassResult summarizes what the filter did during a pass.
type PassResult struct {
	Accepted int
	Rejected int
}

// PassContext tracks one pipeline pass: its run ID, timing and metrics.
type PassContext struct {
	Operation string
	RunID     string
	StartTime time.Time
	Metrics   *PassMetrics
}

// NewPassContext creates a pass context with a fresh run ID.
// If metrics is nil, metric recording is skipped.
func NewPassContext(operation string, metrics *PassMetrics) *PassContext {
	return &PassContext{
		Operation: operation,
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type passContextKey struct{}

// WithPassContext stores a PassContext in the context.
func WithPassContext(ctx context.Context, pc *PassContext) context.Context {
	return context.WithValue(ctx, passContextKey{}, pc)
}

// PassContextFromContext retrieves the PassContext from context, or nil.
func PassContextFromContext(ctx context.Context) *PassContext {
	if pc, ok := ctx.Value(passContextKey{}).(*PassContext); ok {
		return pc
	}
	return nil
}

// Start opens the pass span. The returned context carries the span, the
// pass context and the run ID for logger.WithContext.
func (pc *PassContext) Start(ctx context.Context) (context.Context, trace.Span) {
	pc.StartTime = time.Now()
	ctx = logger.ContextWithRunID(WithPassContext(ctx, pc), pc.RunID)
	ctx, span := StartSpan(ctx, SpanPass)
	span.SetAttributes(
		attribute.String(AttrOperation, pc.Operation),
		attribute.String(AttrRunID, pc.RunID),
	)
	return ctx, span
}

// End closes the span and records the pass. A stage failure contributes its
// stage and index to the span and the error counter.
func (pc *PassContext) End(ctx context.Context, span trace.Span, res PassResult, err error) {
	duration := time.Since(pc.StartTime)
	status := StatusOK

	span.SetAttributes(
		attribute.Int(AttrAccepted, res.Accepted),
		attribute.Int(AttrRejected, res.Rejected),
	)

	var stage, code string
	if err != nil {
		status = StatusError
		code = string(errors.Wrap(err).Code)
		if s, i, ok := errors.StageOf(err); ok {
			stage = s
			span.SetAttributes(attribute.String(AttrStage, s), attribute.Int(AttrIndex, i))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, err.Error()),
		)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if pc.Metrics == nil {
		return
	}
	pc.Metrics.RecordElements(ctx, pc.Operation, OutcomeAccepted, res.Accepted)
	pc.Metrics.RecordElements(ctx, pc.Operation, OutcomeRejected, res.Rejected)
	pc.Metrics.RecordPass(ctx, pc.Operation, status, duration)
	if err != nil {
		pc.Metrics.RecordError(ctx, pc.Operation, stage, code)
	}
}

// Duration returns the elapsed time since the pass started.
func (pc *PassContext) Duration() time.Duration {
	return time.Since(pc.StartTime)
}
