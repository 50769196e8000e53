// Package observability provides OpenTelemetry tracing and metrics for
// pipeline passes.
//
// Nothing is exported unless Config.Enabled is set; otherwise the global
// no-op providers stay in place and spans and instruments cost nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg.Tracing, observability.Resource{Service: "funcdemo"})
//	defer shutdown(ctx)
//
// A pass is wrapped in a PassContext, which owns the run ID, the span and
// the per-pass metrics:
//
//	metrics, _ := observability.NewPassMetrics(observability.Meter("engine"))
//	pc := observability.NewPassContext("scores", metrics)
//	ctx, span := pc.Start(ctx)
//	err := run(ctx)
//	pc.End(ctx, span, observability.PassResult{Accepted: 4, Rejected: 6}, err)
package observability
