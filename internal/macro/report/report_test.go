package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/keyplay/internal/macro/interp"
	"github.com/dshills/keyplay/internal/macro/script"
)

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func newTestRecorder() *Recorder {
	r := NewRecorder("run-1", "m/test.pym", "log")
	r.now = fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), time.Second)
	r.started = r.now()
	return r
}

func TestMarshal(t *testing.T) {
	r := newTestRecorder()

	press := script.Instruction{Command: script.CommandPress, Name: "PRESS", Args: []string{"a"}, Line: 1, Key: "a"}
	restart := script.Instruction{Command: script.CommandRestart, Name: "RESTART", Line: 2}
	r.Observe(interp.StepInfo{Cursor: 0, Instruction: press})
	r.Observe(interp.StepInfo{Cursor: 1, Instruction: restart, Restarted: true})

	data, err := r.Marshal(Result{
		Phase: interp.Finished,
		Stats: interp.Stats{Steps: 2, Dispatched: 1, Restarts: 1},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	checks := map[string]string{
		"run_id":            "run-1",
		"script":            "m/test.pym",
		"backend":           "log",
		"phase":             "finished",
		"started":           "2026-01-02T03:04:05Z",
		"stats.steps":       "2",
		"stats.dispatched":  "1",
		"stats.restarts":    "1",
		"steps.#":           "2",
		"steps.0.text":      "PRESS a",
		"steps.1.line":      "2",
		"steps.1.restarted": "true",
	}
	for path, want := range checks {
		if got := gjson.GetBytes(data, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
	if gjson.GetBytes(data, "error").Exists() {
		t.Error("error field present for a clean run")
	}
	if gjson.GetBytes(data, "steps.0.restarted").Exists() {
		t.Error("restarted set on a plain step")
	}
}

func TestMarshalError(t *testing.T) {
	r := newTestRecorder()

	data, err := r.Marshal(Result{Phase: interp.Running, Err: errors.New("line 3 (PRESS x): boom")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := gjson.GetBytes(data, "error").String(); got != "line 3 (PRESS x): boom" {
		t.Errorf("error = %q", got)
	}
	if got := gjson.GetBytes(data, "steps.#").Int(); got != 0 {
		t.Errorf("steps.# = %d, want 0", got)
	}
}

func TestObserveTruncates(t *testing.T) {
	r := newTestRecorder()
	in := script.Instruction{Command: script.CommandWait, Name: "WAIT", Args: []string{"0"}, Line: 1}
	for n := 0; n < MaxSteps+5; n++ {
		r.Observe(interp.StepInfo{Instruction: in})
	}

	data, err := r.Marshal(Result{Phase: interp.Finished})
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "steps.#").Int(); got != MaxSteps {
		t.Errorf("steps.# = %d, want %d", got, MaxSteps)
	}
	if got := gjson.GetBytes(data, "steps_truncated").Int(); got != 5 {
		t.Errorf("steps_truncated = %d, want 5", got)
	}
}

func TestWriteFileAndSummarize(t *testing.T) {
	r := newTestRecorder()
	path := filepath.Join(t.TempDir(), "report.json")

	err := r.WriteFile(path, Result{
		Phase: interp.Finished,
		Stats: interp.Stats{Steps: 7, Restarts: 2},
	})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Summarize(data)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.RunID != "run-1" || s.Script != "m/test.pym" || s.Phase != "finished" {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.Steps != 7 || s.Restarts != 2 {
		t.Errorf("steps/restarts = %d/%d, want 7/2", s.Steps, s.Restarts)
	}
	if s.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", s.Duration)
	}
	if !strings.Contains(s.String(), "finished after 7 steps (2 restarts)") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestSummarizeInvalid(t *testing.T) {
	tests := []string{
		"",
		"{not json",
		`{"script":"x"}`,
	}
	for _, data := range tests {
		if _, err := Summarize([]byte(data)); !errors.Is(err, ErrInvalidReport) {
			t.Errorf("Summarize(%q) error = %v, want ErrInvalidReport", data, err)
		}
	}
}
