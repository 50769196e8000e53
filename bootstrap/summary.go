package bootstrap

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kbukum/funckit/errors"
)

// Counts is what a pass reports to the summary.
type Counts struct {
	Accepted int
	Rejected int
}

// PassInfo is one recorded pass.
type PassInfo struct {
	Name     string
	Counts   Counts
	Duration time.Duration
	Err      error
}

// Summary tracks the passes of a run and prints them when the app stops.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration

	mu     sync.Mutex
	passes []PassInfo
}

// NewSummary creates a summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		passes:      make([]PassInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackPass records a finished pass.
func (s *Summary) TrackPass(name string, counts Counts, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes = append(s.passes, PassInfo{
		Name:     name,
		Counts:   counts,
		Duration: d,
		Err:      err,
	})
}

// Passes returns a copy of the recorded passes.
func (s *Summary) Passes() []PassInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PassInfo, len(s.passes))
	copy(out, s.passes)
	return out
}

// Display writes the summary to w.
func (s *Summary) Display(w io.Writer) {
	passes := s.Passes()

	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(passes) == 0 {
		fmt.Fprintf(w, "   └── No passes recorded\n\n")
		return
	}

	fmt.Fprintf(w, "🔁 Passes (%d)\n", len(passes))
	ok := 0
	for i, p := range passes {
		fmt.Fprintf(w, "   %s %s %s%s (%.3fs)\n",
			treePrefix(i, len(passes)), statusIcon(p.Err), p.Name, passDetail(p), p.Duration.Seconds())
		if p.Err == nil {
			ok++
		}
	}
	fmt.Fprintf(w, "\n")

	if ok == len(passes) {
		fmt.Fprintf(w, "✅ All passes succeeded (%d/%d)\n\n", ok, len(passes))
	} else {
		fmt.Fprintf(w, "⚠️  Some passes failed (%d/%d succeeded)\n\n", ok, len(passes))
	}
}

func passDetail(p PassInfo) string {
	if p.Err != nil {
		if stage, index, ok := errors.StageOf(p.Err); ok {
			return fmt.Sprintf(": %s (%s #%d)", errors.ErrCodeStageFailed, stage, index)
		}
		if code := errors.CodeOf(p.Err); code != "" {
			return fmt.Sprintf(": %s", code)
		}
		return ": failed"
	}
	if p.Counts.Accepted+p.Counts.Rejected == 0 {
		return ""
	}
	return fmt.Sprintf(": %d accepted, %d rejected", p.Counts.Accepted, p.Counts.Rejected)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(err error) string {
	if err != nil {
		return "❌"
	}
	return "✅"
}
