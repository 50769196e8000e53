package engine

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/funckit/errors"
	"github.com/kbukum/funckit/functional"
	"github.com/kbukum/funckit/logger"
	"github.com/kbukum/funckit/observability"
)

// sequence returns a supplier that yields values in order and then zeros.
func sequence(values ...int) functional.Supplier[int] {
	i := 0
	return func() int {
		if i >= len(values) {
			return 0
		}
		v := values[i]
		i++
		return v
	}
}

func collectLines(lines *[]string) Sink {
	return func(_ context.Context, line string) error {
		*lines = append(*lines, line)
		return nil
	}
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "disabled", Format: logger.FormatJSON}, "engine", &bytes.Buffer{})
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Threshold: 50}
	cfg.ApplyDefaults()
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want %+v", cfg, DefaultConfig())
	}

	var zero Config
	zero.ApplyDefaults()
	if zero.Threshold != 0 {
		t.Errorf("threshold = %d, want 0 kept", zero.Threshold)
	}

	custom := Config{Count: 3, Min: 5, Max: 9, Threshold: 7, Format: "%d!"}
	got := custom
	got.ApplyDefaults()
	if got != custom {
		t.Errorf("explicit fields were overwritten: %+v", got)
	}

	// A range of [0, 0] is indistinguishable from unset.
	zeroRange := Config{Count: 1, Threshold: 1, Format: "%d"}
	zeroRange.ApplyDefaults()
	if zeroRange.Min != 1 || zeroRange.Max != 100 {
		t.Errorf("range = [%d, %d], want [1, 100]", zeroRange.Min, zeroRange.Max)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"single value range", func(c *Config) { c.Min, c.Max = 5, 5 }, false},
		{"negative count", func(c *Config) { c.Count = -1 }, true},
		{"count too large", func(c *Config) { c.Count = 10001 }, true},
		{"max below min", func(c *Config) { c.Min, c.Max = 10, 9 }, true},
		{"format without verb", func(c *Config) { c.Format = "Score" }, true},
		{"format with string verb", func(c *Config) { c.Format = "Score: %s" }, true},
		{"format with two verbs", func(c *Config) { c.Format = "%d/%d" }, true},
		{"escaped percent", func(c *Config) { c.Format = "%d%%" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && !errors.IsCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestNewScoreProcessor_Errors(t *testing.T) {
	var lines []string
	sink := collectLines(&lines)

	tests := []struct {
		name string
		cfg  Config
		sink Sink
		opts []Option
	}{
		{"invalid config", Config{Count: -5}, sink, nil},
		{"nil sink", DefaultConfig(), nil, nil},
		{"malformed run id", DefaultConfig(), sink, []Option{WithRunID("run-1")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewScoreProcessor(tc.cfg, nil, tc.sink, tc.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if p != nil {
				t.Error("expected nil processor on error")
			}
		})
	}
}

func TestScoreProcessor_Run(t *testing.T) {
	var lines []string
	cfg := Config{Count: 6, Min: 1, Max: 100, Threshold: 50, Format: "Score: %d"}
	p, err := NewScoreProcessor(cfg, sequence(12, 88, 50, 51, 3, 100), collectLines(&lines), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Score: 88", "Score: 51", "Score: 100"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %v, want %v", lines, want)
	}
	if res.Accepted != 3 || res.Rejected != 3 {
		t.Errorf("accepted=%d rejected=%d, want 3/3", res.Accepted, res.Rejected)
	}
	if len(res.Scores) != 6 || res.Scores[1] != 88 {
		t.Errorf("scores = %v", res.Scores)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("run ID %q is not a uuid: %v", res.RunID, err)
	}
}

func TestScoreProcessor_ThresholdIsExclusive(t *testing.T) {
	var lines []string
	cfg := Config{Count: 3, Threshold: 70, Format: "%d"}
	p, err := NewScoreProcessor(cfg, sequence(70, 71, 69), collectLines(&lines), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "71" {
		t.Errorf("lines = %v, want [71]", lines)
	}
}

func TestScoreProcessor_ZeroThreshold(t *testing.T) {
	var lines []string
	cfg := Config{Count: 4, Threshold: 0, Format: "%d"}
	p, err := NewScoreProcessor(cfg, sequence(1, 0, -3, 50), collectLines(&lines), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Config().Threshold; got != 0 {
		t.Fatalf("threshold = %d, want 0", got)
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(lines, ",") != "1,50" {
		t.Errorf("lines = %v, want [1 50]", lines)
	}
	if res.Accepted != 2 || res.Rejected != 2 {
		t.Errorf("accepted=%d rejected=%d, want 2/2", res.Accepted, res.Rejected)
	}
}

func TestScoreProcessor_RunIDs(t *testing.T) {
	p, err := NewScoreProcessor(Config{Count: 1}, sequence(1), ConsumerSink(functional.Discard[string]()), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	first, _ := p.Run(context.Background())
	second, _ := p.Run(context.Background())
	if first.RunID == second.RunID {
		t.Errorf("expected a fresh run ID per run, got %s twice", first.RunID)
	}

	fixed := uuid.NewString()
	p, err = NewScoreProcessor(Config{Count: 1}, sequence(1), ConsumerSink(functional.Discard[string]()),
		WithLogger(quietLogger()), WithRunID(fixed))
	if err != nil {
		t.Fatal(err)
	}
	res, _ := p.Run(context.Background())
	if res.RunID != fixed {
		t.Errorf("run ID = %s, want %s", res.RunID, fixed)
	}
}

func TestScoreProcessor_DefaultSupplierInRange(t *testing.T) {
	cfg := Config{Count: 500, Min: 40, Max: 45, Threshold: 42, Format: "%d"}
	p, err := NewScoreProcessor(cfg, nil, ConsumerSink(functional.Discard[string]()),
		WithRand(rand.New(rand.NewPCG(1, 2))), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	for _, s := range res.Scores {
		if s < 40 || s > 45 {
			t.Fatalf("score %d outside [40, 45]", s)
		}
		seen[s] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected every value in range to appear in 500 draws, saw %v", seen)
	}
	if res.Accepted+res.Rejected != 500 {
		t.Errorf("accepted+rejected = %d, want 500", res.Accepted+res.Rejected)
	}
}

func TestScoreProcessor_ExtremeRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"wider than half the ints", math.MinInt / 2, math.MaxInt/2 + 10},
		{"every int", math.MinInt, math.MaxInt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Count: 50, Min: tc.min, Max: tc.max, Threshold: 1, Format: "%d"}
			p, err := NewScoreProcessor(cfg, nil, ConsumerSink(functional.Discard[string]()),
				WithRand(rand.New(rand.NewPCG(9, 9))), WithLogger(quietLogger()))
			if err != nil {
				t.Fatal(err)
			}
			res, err := p.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Scores) != 50 {
				t.Fatalf("drew %d scores, want 50", len(res.Scores))
			}
			for _, s := range res.Scores {
				if s < tc.min || s > tc.max {
					t.Fatalf("score %d outside [%d, %d]", s, tc.min, tc.max)
				}
			}
		})
	}
}

func TestScoreProcessor_SeededIsDeterministic(t *testing.T) {
	run := func() []int {
		p, err := NewScoreProcessor(DefaultConfig(), nil, ConsumerSink(functional.Discard[string]()),
			WithRand(rand.New(rand.NewPCG(42, 7))), WithLogger(quietLogger()))
		if err != nil {
			t.Fatal(err)
		}
		res, _ := p.Run(context.Background())
		return res.Scores
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs differ: %v vs %v", a, b)
		}
	}
}

func TestScoreProcessor_SinkError(t *testing.T) {
	closed := stderrors.New("sink closed")
	var lines []string
	sink := func(_ context.Context, line string) error {
		if len(lines) == 1 {
			return closed
		}
		lines = append(lines, line)
		return nil
	}

	p, err := NewScoreProcessor(Config{Count: 4, Threshold: 50, Format: "%d"}, sequence(60, 10, 70, 80), sink,
		WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background())
	if !stderrors.Is(err, closed) {
		t.Fatalf("expected sink error to be reachable, got %v", err)
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeStageFailed {
		t.Fatalf("expected STAGE_FAILED, got %v", err)
	}
	if appErr.Details["stage"] != errors.StageConsume || appErr.Details["index"] != 2 {
		t.Errorf("details = %v, want consume at index 2", appErr.Details)
	}
	if res.Accepted != 2 || res.Rejected != 1 {
		t.Errorf("accepted=%d rejected=%d, want 2/1", res.Accepted, res.Rejected)
	}
	if len(lines) != 1 || lines[0] != "60" {
		t.Errorf("lines = %v, want [60]", lines)
	}
}

func TestScoreProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	sink := func(context.Context, string) error { calls++; return nil }
	p, err := NewScoreProcessor(Config{Count: 3}, sequence(90, 91, 92), sink, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr == nil || appErr.Details["stage"] != errors.StageSource || appErr.Details["index"] != 0 {
		t.Errorf("unexpected error details: %v", err)
	}
	if calls != 0 {
		t.Errorf("sink called %d times after cancellation", calls)
	}
	if len(res.Scores) != 3 {
		t.Errorf("drawn scores should still be reported, got %v", res.Scores)
	}
}

func TestScoreProcessor_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "engine", &buf)

	p, err := NewScoreProcessor(Config{Count: 2, Threshold: 50, Format: "%d"}, sequence(99, 1), ConsumerSink(functional.Discard[string]()),
		WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var finished map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if entry[logger.FieldRunID] != res.RunID {
			t.Errorf("log line missing run_id %s: %v", res.RunID, entry)
		}
		if entry["message"] == "score pass finished" {
			finished = entry
		}
	}
	if finished == nil {
		t.Fatalf("no completion log in %s", buf.String())
	}
	if finished[logger.FieldAccepted] != float64(1) || finished[logger.FieldRejected] != float64(1) {
		t.Errorf("unexpected counts in %v", finished)
	}
	if _, ok := finished[logger.FieldDuration]; !ok {
		t.Errorf("missing %s in %v", logger.FieldDuration, finished)
	}
}

func TestScoreProcessor_Telemetry(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observability.NewPassMetrics(mp.Meter("engine-test"))
	if err != nil {
		t.Fatal(err)
	}

	fail := stderrors.New("full")
	sink := func(_ context.Context, line string) error {
		if line == "77" {
			return fail
		}
		return nil
	}
	p, err := NewScoreProcessor(Config{Count: 3, Threshold: 50, Format: "%d"}, sequence(55, 20, 77), sink,
		WithLogger(quietLogger()), WithMetrics(metrics))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != observability.SpanPass {
		t.Errorf("span name = %s", span.Name())
	}
	if span.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", span.Status().Code)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[observability.AttrRunID].AsString() != res.RunID {
		t.Errorf("span run ID = %v, want %s", attrs[observability.AttrRunID], res.RunID)
	}
	if attrs[observability.AttrStage].AsString() != errors.StageConsume {
		t.Errorf("span stage = %v", attrs[observability.AttrStage])
	}
	if attrs[observability.AttrIndex].AsInt64() != 2 {
		t.Errorf("span index = %v", attrs[observability.AttrIndex])
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				key := m.Name
				if v, ok := dp.Attributes.Value("outcome"); ok {
					key += "/" + v.AsString()
				}
				if v, ok := dp.Attributes.Value("status"); ok {
					key += "/" + v.AsString()
				}
				sums[key] += dp.Value
			}
		}
	}
	want := map[string]int64{
		"pass.total/error":       1,
		"pass.errors":            1,
		"pass.elements/accepted": 2,
		"pass.elements/rejected": 1,
	}
	for k, v := range want {
		if sums[k] != v {
			t.Errorf("%s = %d, want %d (all: %v)", k, sums[k], v, sums)
		}
	}
}
