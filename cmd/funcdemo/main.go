// Command funcdemo runs the functional exercises, the engine examples and
// the score processor, printing their output to stdout and logs to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/funckit/bootstrap"
	"github.com/kbukum/funckit/config"
	"github.com/kbukum/funckit/engine"
	"github.com/kbukum/funckit/exercises"
	"github.com/kbukum/funckit/logger"
	"github.com/kbukum/funckit/validation"
	"github.com/kbukum/funckit/variant"
	"github.com/kbukum/funckit/version"
)

const serviceName = "funcdemo"

// Demo selections.
const (
	DemoAll       = "all"
	DemoExercises = "exercises"
	DemoEngine    = "engine"
	DemoScores    = "scores"
)

var demos = []string{DemoAll, DemoExercises, DemoEngine, DemoScores}

// AppConfig is the funcdemo configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Demo string `yaml:"demo" mapstructure:"demo"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed   uint64        `yaml:"seed" mapstructure:"seed"`
	Scores engine.Config `yaml:"scores" mapstructure:"scores"`
}

func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Demo == "" {
		c.Demo = DemoAll
	}
	c.Scores.ApplyDefaults()
}

func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.New().OneOf("demo", c.Demo, demos).Validate(); err != nil {
		return err
	}
	if err := c.Scores.Validate(); err != nil {
		return fmt.Errorf("config.scores: %w", err)
	}
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, showVersion, err := loadConfig(args)
	if err != nil {
		return err
	}
	if showVersion {
		fmt.Fprintln(stdout, serviceName, version.Get())
		return nil
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	logger.RegisterDefaults("engine", "exercises")

	return app.RunTask(ctx, func(ctx context.Context) error {
		return runDemos(ctx, app, stdout)
	})
}

// loadConfig parses flags and loads the config. Flags win over the
// environment, which wins over the config file.
func loadConfig(args []string) (*AppConfig, bool, error) {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to config.yml (searched when empty)")
	envFile := fs.String("env-file", "", "path to a .env file (searched when empty)")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.String("demo", DemoAll, "demo to run: all, exercises, engine or scores")
	fs.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error or disabled")
	fs.String("log-format", "", "log format: json, console or pretty")
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	if *showVersion {
		return nil, true, nil
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"demo":           "demo",
		"seed":           "seed",
		"logging.level":  "log-level",
		"logging.format": "log-format",
	} {
		f := fs.Lookup(flag)
		if !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, false, err
		}
	}

	opts := []config.LoaderOption{config.WithViper(v)}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	// Seeded so a file that omits scores.threshold still gets 50; zero
	// would be a real cutoff.
	cfg := AppConfig{Scores: engine.DefaultConfig()}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, false, err
	}
	return &cfg, false, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func runDemos(ctx context.Context, app *bootstrap.App[*AppConfig], out io.Writer) error {
	cfg := app.Cfg
	rng := newRand(cfg.Seed)
	log := app.Logger.WithComponent(serviceName)
	log.Debug("running demos", logger.Fields("demo", cfg.Demo, "seed", cfg.Seed))

	want := func(name string) bool { return cfg.Demo == DemoAll || cfg.Demo == name }

	if want(DemoExercises) {
		if err := app.Step(ctx, DemoExercises, func(context.Context) (bootstrap.Counts, error) {
			return bootstrap.Counts{}, runExercises(out, rng)
		}); err != nil {
			return err
		}
	}
	if want(DemoEngine) {
		if err := app.Step(ctx, DemoEngine, func(context.Context) (bootstrap.Counts, error) {
			return bootstrap.Counts{}, runEngine(out)
		}); err != nil {
			return err
		}
	}
	if want(DemoScores) {
		if err := app.Step(ctx, DemoScores, func(ctx context.Context) (bootstrap.Counts, error) {
			return runScores(ctx, app, out, rng)
		}); err != nil {
			return err
		}
	}
	return nil
}

func runExercises(out io.Writer, rng *rand.Rand) error {
	section(out, "Exercises")

	fmt.Fprintf(out, "current year: %d\n", exercises.CurrentYearSupplier(time.Now).Get())
	fmt.Fprintf(out, "random score: %d\n", exercises.RandomScoreSupplier(rng).Get())
	fmt.Fprintf(out, "\"HELLO\" all upper case: %t\n", exercises.IsAllUpperCase().Test("HELLO"))
	fmt.Fprintf(out, "25 positive and divisible by five: %t\n", exercises.PositiveAndDivisibleByFive().Test(25))
	fmt.Fprintf(out, "100°C in °F: %g\n", exercises.CelsiusToFahrenheit().Apply(100))
	fmt.Fprintf(out, "vowels in \"Functional Programming\": %d\n", exercises.CountVowels().Apply("Functional Programming"))

	exercises.StarPrinter(out).Accept("Hello")
	fmt.Fprint(out, "square of 7: ")
	exercises.PrintSquare(out).Accept(7)
	fmt.Fprintln(out)

	fmt.Fprint(out, "long strings, lower-cased: ")
	if err := exercises.ProcessStrings(out, []string{"Java", "Go", "Kotlin", "C", "Scala"}); err != nil {
		return err
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "scores above %d:\n", exercises.PassingScore)
	return exercises.GenerateAndFilterScores(out, exercises.ScoreSupplier(rng))
}

func runEngine(out io.Writer) error {
	section(out, "Engine")

	for _, d := range [][2]float64{{10, 2}, {10, 0}} {
		fmt.Fprintf(out, "processDivision(%g, %g) = %g\n", d[0], d[1], engine.ProcessDivision(d[0], d[1]))
	}
	for _, v := range []variant.Value{variant.Int(5), variant.Text("hello"), variant.Float(3.7), variant.Other(true)} {
		fmt.Fprintf(out, "transform %s(%s) = %s\n", v.Kind(), v, engine.TransformObject(v))
	}
	in := "  Hello World  "
	fmt.Fprintf(out, "length of trimmed %q = %d\n", in, engine.BuildStringLengthPipeline().Apply(in))
	return nil
}

func runScores(ctx context.Context, app *bootstrap.App[*AppConfig], out io.Writer, rng *rand.Rand) (bootstrap.Counts, error) {
	section(out, "Scores")

	p, err := engine.NewScoreProcessor(app.Cfg.Scores, nil, engine.WriterSink(out),
		engine.WithRand(rng),
		engine.WithLogger(logger.Get("engine")),
		engine.WithMetrics(app.Metrics),
	)
	if err != nil {
		return bootstrap.Counts{}, err
	}
	res, err := p.Run(ctx)
	return bootstrap.Counts{Accepted: res.Accepted, Rejected: res.Rejected}, err
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n== %s ==\n", title)
}
