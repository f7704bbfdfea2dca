package screen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyplay/internal/inject"
	"github.com/dshills/keyplay/internal/input/key"
)

func newSimInjector(t *testing.T) (*Injector, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	i := New(sim, WithTitle("test.pym"))
	if err := i.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(40, 8)
	t.Cleanup(i.Fini)
	return i, sim
}

func row(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestInjectorStatus(t *testing.T) {
	i, sim := newSimInjector(t)

	if err := i.KeyDown("shift"); err != nil {
		t.Fatalf("KeyDown error = %v", err)
	}
	if err := i.PressOnce("a"); err != nil {
		t.Fatalf("PressOnce error = %v", err)
	}

	if got := row(sim, 0); got != "test.pym" {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(sim, 1); got != "held:   Shift" {
		t.Errorf("row 1 = %q", got)
	}
	if got := row(sim, 2); got != "last:   press a" {
		t.Errorf("row 2 = %q", got)
	}
	if got := row(sim, 3); got != "events: 2" {
		t.Errorf("row 3 = %q", got)
	}

	if err := i.KeyUp("shift"); err != nil {
		t.Fatalf("KeyUp error = %v", err)
	}
	if got := row(sim, 1); got != "held:   -" {
		t.Errorf("row 1 after release = %q", got)
	}
	if i.Count() != 3 {
		t.Errorf("Count() = %d, want 3", i.Count())
	}
}

func TestInjectorPostsEvents(t *testing.T) {
	i, sim := newSimInjector(t)

	if err := i.PressOnce("ctrl+s"); err != nil {
		t.Fatalf("PressOnce error = %v", err)
	}

	// Init queues a resize event ahead of the injected one.
	for n := 0; n < 5; n++ {
		injected, ok := sim.PollEvent().(*EventInjected)
		if !ok {
			continue
		}
		if injected.Action != inject.ActionPress {
			t.Errorf("Action = %v, want press", injected.Action)
		}
		if !injected.Key.Equals(key.NewRuneEvent('s', key.ModCtrl)) {
			t.Errorf("Key = %v, want Ctrl+s", injected.Key)
		}
		if injected.When().IsZero() {
			t.Error("event has no timestamp")
		}
		tk := injected.EventKey()
		if tk == nil {
			t.Fatal("EventKey() = nil")
		}
		if tk.Modifiers()&tcell.ModCtrl == 0 {
			t.Errorf("tcell modifiers = %v, want Ctrl", tk.Modifiers())
		}
		return
	}
	t.Fatal("no injected event")
}

func TestInjectorErrors(t *testing.T) {
	i, _ := newSimInjector(t)

	if err := i.KeyUp("a"); !errors.Is(err, inject.ErrNotHeld) {
		t.Errorf("KeyUp without KeyDown = %v, want ErrNotHeld", err)
	}
	if err := i.KeyDown("a"); err != nil {
		t.Fatal(err)
	}
	if err := i.KeyDown("a"); !errors.Is(err, inject.ErrAlreadyHeld) {
		t.Errorf("second KeyDown = %v, want ErrAlreadyHeld", err)
	}
	if err := i.ValidateKey("mouse4"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("ValidateKey(mouse4) = %v, want ErrInvalidSpec", err)
	}
}

func TestWatchStopKey(t *testing.T) {
	i, sim := newSimInjector(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		i.Watch(ctx, cancel)
		close(done)
	}()

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after Esc")
	}
	if ctx.Err() == nil {
		t.Error("Esc did not cancel the context")
	}
}

func TestWatchContextDone(t *testing.T) {
	i, _ := newSimInjector(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		i.Watch(ctx, func() {})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConvertToTcellKey(t *testing.T) {
	tests := []struct {
		spec   string
		want   tcell.Key
		wantR  rune
		wantOK bool
	}{
		{"a", tcell.KeyRune, 'a', true},
		{"space", tcell.KeyRune, ' ', true},
		{"enter", tcell.KeyEnter, 0, true},
		{"f1", tcell.KeyF1, 0, true},
		{"f12", tcell.KeyF12, 0, true},
		{"f24", tcell.KeyF24, 0, true},
		{"num7", tcell.KeyRune, '7', true},
		{"multiply", tcell.KeyRune, '*', true},
		{"volumeup", tcell.KeyNUL, 0, false},
		{"pgdn", tcell.KeyPgDn, 0, true},
		{"shift", tcell.KeyNUL, 0, false},
		{"capslock", tcell.KeyNUL, 0, false},
	}

	for _, tt := range tests {
		k, r, ok := convertToTcellKey(key.MustParse(tt.spec))
		if k != tt.want || r != tt.wantR || ok != tt.wantOK {
			t.Errorf("convertToTcellKey(%q) = (%v, %q, %v), want (%v, %q, %v)",
				tt.spec, k, r, ok, tt.want, tt.wantR, tt.wantOK)
		}
	}
}

func TestConvertToTcellMod(t *testing.T) {
	got := convertToTcellMod(key.ModCtrl | key.ModShift)
	if got != tcell.ModCtrl|tcell.ModShift {
		t.Errorf("convertToTcellMod = %v", got)
	}
	if convertToTcellMod(key.ModNone) != tcell.ModNone {
		t.Error("ModNone should map to tcell.ModNone")
	}
}
