// Package dispatch maps decoded macro instructions to input effects.
//
// The Dispatcher handles WAIT, HOLD and PRESS by suspending the caller or
// driving an Injector. RESTART and LOOP are control flow owned by the
// interpreter and are rejected here. Instructions with unknown commands are
// ignored.
//
// HoldKey always pairs its key-down with a key-up, including when the
// context is cancelled during the hold. ReleaseAll lets a process that is
// exiting without unwinding (for example from a signal handler) release
// any keys that are still down.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/keyplay/internal/logging"
	"github.com/dshills/keyplay/internal/macro/script"
)

//go:generate mockgen -destination mock_injector_test.go -package dispatch github.com/dshills/keyplay/internal/macro/dispatch Injector

// ErrControlFlow is returned when RESTART or LOOP reaches the dispatcher.
var ErrControlFlow = errors.New("control-flow instruction cannot be dispatched")

// Injector is the platform input-injection capability.
type Injector interface {
	// KeyDown presses key without releasing it.
	KeyDown(key string) error
	// KeyUp releases a key previously pressed with KeyDown.
	KeyUp(key string) error
	// PressOnce presses and releases key.
	PressOnce(key string) error
}

// KeyValidator is implemented by injectors that only understand a fixed
// set of key names.
type KeyValidator interface {
	ValidateKey(key string) error
}

// SleepFunc suspends the caller for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Dispatcher executes action instructions against an Injector.
type Dispatcher struct {
	injector Injector
	sleep    SleepFunc
	logger   *logging.Logger

	mu   sync.Mutex
	held map[string]int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSleep replaces the suspension function.
func WithSleep(fn SleepFunc) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.sleep = fn
		}
	}
}

// WithLogger sets the logger used for effect tracing.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a dispatcher that drives injector.
func New(injector Injector, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		injector: injector,
		sleep:    Sleep,
		logger:   logging.Null(),
		held:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes a single action instruction.
func (d *Dispatcher) Dispatch(ctx context.Context, in script.Instruction) error {
	switch in.Command {
	case script.CommandWait:
		return d.Wait(ctx, in.Duration)
	case script.CommandHold:
		return d.HoldKey(ctx, in.Key, in.Duration)
	case script.CommandPress:
		return d.PressKey(ctx, in.Key)
	case script.CommandRestart, script.CommandLoop:
		return fmt.Errorf("%w: %s at line %d", ErrControlFlow, in.Command, in.Line)
	case script.CommandUnknown:
		d.logger.Debug("ignoring unknown command %q at line %d", in.Name, in.Line)
		return nil
	default:
		return fmt.Errorf("unhandled command %v", in.Command)
	}
}

// Wait suspends for duration.
func (d *Dispatcher) Wait(ctx context.Context, duration time.Duration) error {
	return d.sleep(ctx, duration)
}

// HoldKey presses key, suspends for duration, then releases it.
// The release happens on every return path.
func (d *Dispatcher) HoldKey(ctx context.Context, key string, duration time.Duration) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.injector.KeyDown(key); err != nil {
		return fmt.Errorf("key down %q: %w", key, err)
	}
	d.markHeld(key)
	d.logger.Debug("key down %s for %s", key, duration)

	defer func() {
		if !d.markReleased(key) {
			return
		}
		upErr := d.injector.KeyUp(key)
		d.logger.Debug("key up %s", key)
		if upErr != nil && err == nil {
			err = fmt.Errorf("key up %q: %w", key, upErr)
		}
	}()

	return d.sleep(ctx, duration)
}

// PressKey presses and releases key.
func (d *Dispatcher) PressKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.injector.PressOnce(key); err != nil {
		return fmt.Errorf("press %q: %w", key, err)
	}
	d.logger.Debug("press %s", key)
	return nil
}

// Held returns the keys currently held down.
func (d *Dispatcher) Held() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.held))
	for k := range d.held {
		keys = append(keys, k)
	}
	return keys
}

// ReleaseAll releases every key that is still held.
// Keys released here are not released again when their HoldKey returns.
func (d *Dispatcher) ReleaseAll() error {
	d.mu.Lock()
	held := d.held
	d.held = make(map[string]int)
	d.mu.Unlock()

	var errs []error
	for key := range held {
		if err := d.injector.KeyUp(key); err != nil {
			errs = append(errs, fmt.Errorf("key up %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) markHeld(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held[key]++
}

// markReleased reports whether the caller still owns a release of key.
func (d *Dispatcher) markReleased(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.held[key]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(d.held, key)
	} else {
		d.held[key] = n - 1
	}
	return true
}
