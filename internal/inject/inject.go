// Package inject provides injector backends for macro playback.
//
// The Log injector performs no real input. It validates key names, tracks
// which keys are down, and writes every effect to a logger, which makes it
// the default backend and the one used for dry runs.
package inject

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/keyplay/internal/input/key"
	"github.com/dshills/keyplay/internal/logging"
)

// Injector errors.
var (
	ErrAlreadyHeld = errors.New("key already held")
	ErrNotHeld     = errors.New("key not held")
)

// Action identifies an injected effect.
type Action uint8

const (
	ActionDown Action = iota
	ActionUp
	ActionPress
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionPress:
		return "press"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Effect is one injected key effect.
type Effect struct {
	Action Action
	Key    key.Event
	At     time.Time
}

// String renders the effect as "down Shift".
func (e Effect) String() string {
	return e.Action.String() + " " + e.Key.String()
}

// Log is an Injector that logs effects instead of performing them.
type Log struct {
	logger *logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	held    map[key.Event]int
	effects []Effect
}

// NewLog creates a log injector writing to logger.
func NewLog(logger *logging.Logger) *Log {
	if logger == nil {
		logger = logging.Null()
	}
	return &Log{
		logger: logger.WithComponent("inject"),
		now:    time.Now,
		held:   make(map[key.Event]int),
	}
}

// ValidateKey reports whether name is a key this backend understands.
func (l *Log) ValidateKey(name string) error {
	return key.Validate(name)
}

// KeyDown records name as held.
func (l *Log) KeyDown(name string) error {
	ev, err := key.Parse(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[ev] > 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyHeld, ev)
	}
	l.held[ev]++
	l.record(ActionDown, ev)
	return nil
}

// KeyUp releases a key previously pressed with KeyDown.
func (l *Log) KeyUp(name string) error {
	ev, err := key.Parse(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[ev] == 0 {
		return fmt.Errorf("%w: %s", ErrNotHeld, ev)
	}
	delete(l.held, ev)
	l.record(ActionUp, ev)
	return nil
}

// PressOnce records a press and release of name.
func (l *Log) PressOnce(name string) error {
	ev, err := key.Parse(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.record(ActionPress, ev)
	return nil
}

// Held returns the names of keys currently down, sorted.
func (l *Log) Held() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.held))
	for ev := range l.held {
		names = append(names, ev.String())
	}
	sort.Strings(names)
	return names
}

// Effects returns a copy of every effect recorded so far.
func (l *Log) Effects() []Effect {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Effect, len(l.effects))
	copy(out, l.effects)
	return out
}

// record must be called with l.mu held.
func (l *Log) record(action Action, ev key.Event) {
	l.effects = append(l.effects, Effect{Action: action, Key: ev, At: l.now()})
	l.logger.WithField("action", action.String()).Info("%s", ev)
}
