package engine

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/kbukum/funckit/functional"
	"github.com/kbukum/funckit/logger"
	"github.com/kbukum/funckit/observability"
	"github.com/kbukum/funckit/pipeline"
	"github.com/kbukum/funckit/validation"
)

// OperationScores names score passes in logs, spans and metrics.
const OperationScores = "scores"

// Config configures the score processor.
type Config struct {
	// Count is how many scores are drawn per run.
	Count int `yaml:"count" mapstructure:"count" validate:"min=1,max=10000"`
	// Min and Max bound the default supplier, inclusive.
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max" validate:"gtefield=Min"`
	// Threshold is exclusive: only scores above it are printed.
	Threshold int `yaml:"threshold" mapstructure:"threshold"`
	// Format renders an accepted score. It takes exactly one integer verb.
	Format string `yaml:"format" mapstructure:"format" validate:"required,intverb"`
}

// DefaultConfig draws ten scores in [1, 100] and prints those above 50.
func DefaultConfig() Config {
	return Config{
		Count:     10,
		Min:       1,
		Max:       100,
		Threshold: 50,
		Format:    "Score: %d",
	}
}

// ApplyDefaults fills zero fields from DefaultConfig. A zero range means
// [1, 100]. Threshold is left alone since 0 is a valid cutoff; start from
// DefaultConfig to get 50.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Count == 0 {
		c.Count = def.Count
	}
	if c.Min == 0 && c.Max == 0 {
		c.Min, c.Max = def.Min, def.Max
	}
	if c.Format == "" {
		c.Format = def.Format
	}
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Sink receives each rendered score. Returning an error aborts the run.
type Sink func(ctx context.Context, line string) error

// WriterSink writes each line to w followed by a newline.
func WriterSink(w io.Writer) Sink {
	return func(_ context.Context, line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	}
}

// ConsumerSink adapts a consumer that cannot fail.
func ConsumerSink(c functional.Consumer[string]) Sink {
	return func(_ context.Context, line string) error {
		c.Accept(line)
		return nil
	}
}

// Result describes a finished run.
type Result struct {
	RunID string
	// Scores holds every drawn score in draw order.
	Scores   []int
	Accepted int
	Rejected int
}

// ScoreProcessor draws scores, keeps those above the threshold, renders
// them and hands them to a sink, one pipeline pass per Run.
type ScoreProcessor struct {
	cfg      Config
	supplier functional.Supplier[int]
	sink     Sink
	rng      *rand.Rand
	log      *logger.Logger
	metrics  *observability.PassMetrics
	runID    string
}

// Option configures a ScoreProcessor.
type Option func(*ScoreProcessor)

// WithRand sets the source of the default supplier.
func WithRand(rng *rand.Rand) Option {
	return func(p *ScoreProcessor) { p.rng = rng }
}

// WithLogger replaces the "engine" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *ScoreProcessor) { p.log = l }
}

// WithMetrics records every run on m.
func WithMetrics(m *observability.PassMetrics) Option {
	return func(p *ScoreProcessor) { p.metrics = m }
}

// WithRunID fixes the run ID instead of generating one per run.
func WithRunID(id string) Option {
	return func(p *ScoreProcessor) { p.runID = id }
}

// NewScoreProcessor validates cfg after applying defaults. A nil supplier
// draws uniformly from [cfg.Min, cfg.Max].
func NewScoreProcessor(cfg Config, supplier functional.Supplier[int], sink Sink, opts ...Option) (*ScoreProcessor, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &ScoreProcessor{
		cfg:      cfg,
		supplier: supplier,
		sink:     sink,
	}
	for _, opt := range opts {
		opt(p)
	}

	v := validation.New().Custom(sink != nil, "sink", "must not be nil")
	if p.runID != "" {
		v.RequiredUUID("run_id", p.runID)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if p.log == nil {
		p.log = logger.Get("engine")
	}
	if p.supplier == nil {
		p.supplier = functional.UniformInt(p.rng, cfg.Min, cfg.Max)
	}
	return p, nil
}

// Config returns the effective configuration.
func (p *ScoreProcessor) Config() Config {
	return p.cfg
}

// Run performs one pass. On failure the Result still reports what happened
// up to the failing element, and the error is a STAGE_FAILED AppError.
func (p *ScoreProcessor) Run(ctx context.Context) (Result, error) {
	pc := observability.NewPassContext(OperationScores, p.metrics)
	if p.runID != "" {
		pc.RunID = p.runID
	}
	ctx, span := pc.Start(ctx)
	log := p.log.WithContext(ctx)

	res := Result{RunID: pc.RunID}
	log.Debug("score pass started", logger.Fields(
		"count", p.cfg.Count,
		"threshold", p.cfg.Threshold,
	))

	scores, err := pipeline.Collect(ctx, pipeline.FromSupplier(p.cfg.Count, p.supplier))
	res.Scores = scores
	if err == nil {
		err = pipeline.RunE(ctx, scores, p.filter(&res), p.render, p.sink)
	}

	pc.End(ctx, span, observability.PassResult{Accepted: res.Accepted, Rejected: res.Rejected}, err)

	fields := logger.DurationFields(OperationScores, pc.Duration())
	fields[logger.FieldAccepted] = res.Accepted
	fields[logger.FieldRejected] = res.Rejected
	if err != nil {
		log.WithError(err).Error("score pass failed", fields)
		return res, err
	}
	log.Info("score pass finished", fields)
	return res, nil
}

func (p *ScoreProcessor) filter(res *Result) func(context.Context, int) (bool, error) {
	above := functional.Predicate[int](func(n int) bool { return n > p.cfg.Threshold })
	return func(_ context.Context, n int) (bool, error) {
		if above.Test(n) {
			res.Accepted++
			return true, nil
		}
		res.Rejected++
		return false, nil
	}
}

func (p *ScoreProcessor) render(_ context.Context, n int) (string, error) {
	return fmt.Sprintf(p.cfg.Format, n), nil
}
