package inject

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keyplay/internal/input/key"
	"github.com/dshills/keyplay/internal/logging"
)

func newTestLog() (*Log, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LevelDebug
	cfg.Output = &buf
	return NewLog(logging.New(cfg)), &buf
}

func TestLogEffects(t *testing.T) {
	l, buf := newTestLog()

	steps := []struct {
		name string
		fn   func(string) error
		key  string
	}{
		{"down", l.KeyDown, "shift"},
		{"press", l.PressOnce, "a"},
		{"up", l.KeyUp, "SHIFT"},
		{"press", l.PressOnce, "ctrl+s"},
	}
	for _, s := range steps {
		if err := s.fn(s.key); err != nil {
			t.Fatalf("%s(%q) error = %v", s.name, s.key, err)
		}
	}

	want := []string{"down Shift", "press a", "up Shift", "press Ctrl+s"}
	effects := l.Effects()
	if len(effects) != len(want) {
		t.Fatalf("got %d effects, want %d", len(effects), len(want))
	}
	for i, e := range effects {
		if e.String() != want[i] {
			t.Errorf("effect[%d] = %q, want %q", i, e.String(), want[i])
		}
	}

	if held := l.Held(); len(held) != 0 {
		t.Errorf("Held() = %v, want none", held)
	}
	if !strings.Contains(buf.String(), "component=inject") || !strings.Contains(buf.String(), "action=press") {
		t.Errorf("log output missing fields:\n%s", buf.String())
	}
}

func TestLogHeld(t *testing.T) {
	l, _ := newTestLog()

	for _, k := range []string{"w", "shift"} {
		if err := l.KeyDown(k); err != nil {
			t.Fatalf("KeyDown(%q) error = %v", k, err)
		}
	}

	got := l.Held()
	if len(got) != 2 || got[0] != "Shift" || got[1] != "w" {
		t.Errorf("Held() = %v, want [Shift w]", got)
	}
}

func TestLogErrors(t *testing.T) {
	l, _ := newTestLog()

	if err := l.KeyDown("nosuchkey"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("KeyDown(nosuchkey) = %v, want ErrInvalidSpec", err)
	}
	if err := l.KeyUp("a"); !errors.Is(err, ErrNotHeld) {
		t.Errorf("KeyUp without KeyDown = %v, want ErrNotHeld", err)
	}
	if err := l.KeyDown("a"); err != nil {
		t.Fatalf("KeyDown(a) error = %v", err)
	}
	if err := l.KeyDown("a"); !errors.Is(err, ErrAlreadyHeld) {
		t.Errorf("second KeyDown(a) = %v, want ErrAlreadyHeld", err)
	}
	if err := l.PressOnce(""); !errors.Is(err, key.ErrEmptySpec) {
		t.Errorf("PressOnce(\"\") = %v, want ErrEmptySpec", err)
	}
}

func TestValidateKey(t *testing.T) {
	l := NewLog(nil)
	if err := l.ValidateKey("enter"); err != nil {
		t.Errorf("ValidateKey(enter) = %v", err)
	}
	if err := l.ValidateKey("leftclick"); err == nil {
		t.Error("ValidateKey(leftclick) succeeded")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionDown, "down"},
		{ActionUp, "up"},
		{ActionPress, "press"},
		{Action(9), "Action(9)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
