// Package engine is the smart data engine: optional-valued division,
// kind-dispatched value transformation, function chaining and the score
// processor, which drives a full filter-transform-consume pass over
// generated scores with logging, tracing and metrics.
//
//	proc, err := engine.NewScoreProcessor(engine.DefaultConfig(), nil, engine.WriterSink(os.Stdout))
//	if err != nil {
//	    return err
//	}
//	res, err := proc.Run(ctx)
package engine
