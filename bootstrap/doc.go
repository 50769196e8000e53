// Package bootstrap runs a funckit binary as a finite task with a uniform
// lifecycle: config defaults and validation, logger and telemetry setup,
// start and stop hooks, signal cancellation and a closing summary of the
// passes that ran.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return runScores(ctx, app)
//	})
package bootstrap
