// Package screen provides a terminal injector built on tcell.
//
// Injected effects are posted to the screen's event queue as EventInjected
// and the screen shows which keys are held, the last effect and a running
// count. Watch polls the queue so the user can stop playback with Esc or
// Ctrl-C.
package screen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyplay/internal/inject"
	"github.com/dshills/keyplay/internal/input/key"
	"github.com/dshills/keyplay/internal/logging"
)

// EventInjected is posted to the screen for every injected effect.
type EventInjected struct {
	tcell.EventTime
	Action inject.Action
	Key    key.Event
}

// EventKey returns the tcell key event equivalent to the injected key, or
// nil for keys tcell cannot represent (bare modifiers and lock keys).
func (ev *EventInjected) EventKey() *tcell.EventKey {
	k, r, ok := convertToTcellKey(ev.Key)
	if !ok {
		return nil
	}
	return tcell.NewEventKey(k, r, convertToTcellMod(ev.Key.Modifiers))
}

// Injector drives a tcell screen.
type Injector struct {
	screen tcell.Screen
	logger *logging.Logger

	mu      sync.Mutex
	held    map[key.Event]bool
	last    string
	count   int
	dropped int
	title   string
}

// Option configures an Injector.
type Option func(*Injector)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(i *Injector) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithTitle sets the text on the first screen row.
func WithTitle(title string) Option {
	return func(i *Injector) {
		i.title = title
	}
}

// New creates an injector for an already constructed screen.
// The screen must be initialised with Init before use.
func New(s tcell.Screen, opts ...Option) *Injector {
	i := &Injector{
		screen: s,
		logger: logging.Null(),
		held:   make(map[key.Event]bool),
		title:  "keyplay",
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewTerminal creates an injector on the controlling terminal.
func NewTerminal(opts ...Option) (*Injector, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(s, opts...), nil
}

// Init initialises the screen and draws the initial status.
func (i *Injector) Init() error {
	if err := i.screen.Init(); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.draw()
	return nil
}

// Fini restores the terminal. Watch returns once the screen is finalised.
func (i *Injector) Fini() {
	i.screen.Fini()
}

// ValidateKey reports whether name is a key this backend understands.
func (i *Injector) ValidateKey(name string) error {
	return key.Validate(name)
}

// KeyDown marks name as held.
func (i *Injector) KeyDown(name string) error {
	return i.inject(inject.ActionDown, name)
}

// KeyUp releases name.
func (i *Injector) KeyUp(name string) error {
	return i.inject(inject.ActionUp, name)
}

// PressOnce presses and releases name.
func (i *Injector) PressOnce(name string) error {
	return i.inject(inject.ActionPress, name)
}

func (i *Injector) inject(action inject.Action, name string) error {
	ev, err := key.Parse(name)
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	switch action {
	case inject.ActionDown:
		if i.held[ev] {
			return fmt.Errorf("%w: %s", inject.ErrAlreadyHeld, ev)
		}
		i.held[ev] = true
	case inject.ActionUp:
		if !i.held[ev] {
			return fmt.Errorf("%w: %s", inject.ErrNotHeld, ev)
		}
		delete(i.held, ev)
	}

	i.count++
	i.last = action.String() + " " + ev.String()

	injected := &EventInjected{Action: action, Key: ev}
	injected.SetEventNow()
	if err := i.screen.PostEvent(injected); err != nil {
		// The queue is full when nothing is polling; the effect still counts.
		i.dropped++
		i.logger.Debug("event queue full, dropped %s", i.last)
	}

	i.draw()
	return nil
}

// Held returns the names of keys currently down, sorted.
func (i *Injector) Held() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.heldNames()
}

// Count returns the number of effects injected.
func (i *Injector) Count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}

// Watch polls screen events until ctx is done or the screen is finalised.
// Esc or Ctrl-C typed by the user calls cancel. Resize events redraw.
func (i *Injector) Watch(ctx context.Context, cancel context.CancelFunc) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = i.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := i.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			if isStopKey(ev) {
				i.logger.Info("playback stopped from keyboard")
				cancel()
				return
			}
		case *tcell.EventResize:
			i.mu.Lock()
			i.screen.Sync()
			i.draw()
			i.mu.Unlock()
		case *EventInjected:
			i.logger.Debug("%s %s", ev.Action, ev.Key)
		}
	}
}

func isStopKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C')
	default:
		return false
	}
}

// heldNames must be called with i.mu held.
func (i *Injector) heldNames() []string {
	names := make([]string, 0, len(i.held))
	for ev := range i.held {
		names = append(names, ev.String())
	}
	sort.Strings(names)
	return names
}

// draw must be called with i.mu held.
func (i *Injector) draw() {
	i.screen.Clear()

	title := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Dim(true)

	held := "-"
	if names := i.heldNames(); len(names) > 0 {
		held = strings.Join(names, " ")
	}
	last := i.last
	if last == "" {
		last = "-"
	}

	i.drawText(0, 0, title, i.title)
	i.drawText(0, 1, plain, "held:   "+held)
	i.drawText(0, 2, plain, "last:   "+last)
	i.drawText(0, 3, plain, fmt.Sprintf("events: %d", i.count))

	_, height := i.screen.Size()
	if height > 5 {
		i.drawText(0, height-1, dim, "Esc or Ctrl-C stops playback")
	}
	i.screen.Show()
}

func (i *Injector) drawText(x, y int, style tcell.Style, text string) {
	width, height := i.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range text {
		if x >= width {
			return
		}
		i.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
