// Package report records a playback run and writes it as JSON.
//
// A report is built with sjson one path at a time and read back with
// gjson, so a report file can be inspected or extended by other tools
// without sharing Go types.
package report

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyplay/internal/macro/interp"
)

// MaxSteps bounds the number of step entries kept in a report. A script
// that restarts forever would otherwise grow the report without limit.
const MaxSteps = 1000

// ErrInvalidReport is returned by Summarize for data that is not a report.
var ErrInvalidReport = errors.New("invalid report")

// Step is one executed top-level instruction.
type Step struct {
	Cursor    int
	Line      int
	Text      string
	Restarted bool
	At        time.Time
}

// Recorder collects steps of a run. Observe can be passed to
// interp.WithObserver.
type Recorder struct {
	runID   string
	script  string
	backend string
	now     func() time.Time

	mu        sync.Mutex
	started   time.Time
	steps     []Step
	truncated int
}

// NewRecorder creates a recorder for one run.
func NewRecorder(runID, script, backend string) *Recorder {
	r := &Recorder{
		runID:   runID,
		script:  script,
		backend: backend,
		now:     time.Now,
	}
	r.started = r.now()
	return r
}

// Observe records a step.
func (r *Recorder) Observe(info interp.StepInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.steps) >= MaxSteps {
		r.truncated++
		return
	}
	r.steps = append(r.steps, Step{
		Cursor:    info.Cursor,
		Line:      info.Instruction.Line,
		Text:      info.Instruction.String(),
		Restarted: info.Restarted,
		At:        r.now(),
	})
}

// Result is the final state of a run.
type Result struct {
	Phase interp.Phase
	Stats interp.Stats
	Err   error
}

// Marshal renders the report as JSON.
func (r *Recorder) Marshal(res Result) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	finished := r.now()
	fields := []struct {
		path  string
		value any
	}{
		{"run_id", r.runID},
		{"script", r.script},
		{"backend", r.backend},
		{"started", r.started.Format(time.RFC3339Nano)},
		{"finished", finished.Format(time.RFC3339Nano)},
		{"duration_seconds", finished.Sub(r.started).Seconds()},
		{"phase", res.Phase.String()},
		{"stats.steps", res.Stats.Steps},
		{"stats.dispatched", res.Stats.Dispatched},
		{"stats.skipped", res.Stats.Skipped},
		{"stats.restarts", res.Stats.Restarts},
		{"steps_truncated", r.truncated},
	}

	data := []byte("{}")
	var err error
	for _, f := range fields {
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return nil, fmt.Errorf("set %s: %w", f.path, err)
		}
	}

	if res.Err != nil {
		if data, err = sjson.SetBytes(data, "error", res.Err.Error()); err != nil {
			return nil, fmt.Errorf("set error: %w", err)
		}
	}

	if data, err = sjson.SetRawBytes(data, "steps", []byte("[]")); err != nil {
		return nil, fmt.Errorf("set steps: %w", err)
	}
	for _, s := range r.steps {
		entry := map[string]any{
			"cursor": s.Cursor,
			"line":   s.Line,
			"text":   s.Text,
			"at":     s.At.Format(time.RFC3339Nano),
		}
		if s.Restarted {
			entry["restarted"] = true
		}
		if data, err = sjson.SetBytes(data, "steps.-1", entry); err != nil {
			return nil, fmt.Errorf("append step: %w", err)
		}
	}
	return data, nil
}

// WriteFile writes the report to path.
func (r *Recorder) WriteFile(path string, res Result) error {
	data, err := r.Marshal(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Summary is the headline of a report.
type Summary struct {
	RunID    string
	Script   string
	Phase    string
	Steps    int
	Restarts int
	Duration time.Duration
	Error    string
}

// String renders the summary on one line.
func (s Summary) String() string {
	out := fmt.Sprintf("run %s: %s %s after %d steps (%d restarts) in %s",
		s.RunID, s.Script, s.Phase, s.Steps, s.Restarts, s.Duration.Round(time.Millisecond))
	if s.Error != "" {
		out += ": " + s.Error
	}
	return out
}

// Summarize reads the headline fields of a JSON report.
func Summarize(data []byte) (Summary, error) {
	if !gjson.ValidBytes(data) {
		return Summary{}, fmt.Errorf("%w: malformed JSON", ErrInvalidReport)
	}

	res := gjson.GetManyBytes(data, "run_id", "script", "phase", "stats.steps",
		"stats.restarts", "duration_seconds", "error")
	if !res[0].Exists() || !res[2].Exists() {
		return Summary{}, fmt.Errorf("%w: missing run_id or phase", ErrInvalidReport)
	}

	return Summary{
		RunID:    res[0].String(),
		Script:   res[1].String(),
		Phase:    res[2].String(),
		Steps:    int(res[3].Int()),
		Restarts: int(res[4].Int()),
		Duration: time.Duration(res[5].Float() * float64(time.Second)),
		Error:    res[6].String(),
	}, nil
}
