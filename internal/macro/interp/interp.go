// Package interp steps through a macro program.
//
// An Interpreter owns a cursor over the program's top-level instructions
// and moves through the phases Idle, Running and Finished. LOOP
// instructions replay their body synchronously; RESTART moves the cursor
// back to the first instruction without rebuilding the program. There is
// no implicit restart at the end of a script.
//
// Example:
//
//	prog, err := script.Load("m/walk.pym")
//	if err != nil {
//	    return err
//	}
//	in := interp.New(prog, dispatch.New(injector),
//	    interp.WithStartDelay(time.Second))
//	err = in.Run(ctx)
//
// An Interpreter is not safe for concurrent use, and a Program should be
// executed by at most one Interpreter at a time.
package interp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/keyplay/internal/logging"
	"github.com/dshills/keyplay/internal/macro/dispatch"
	"github.com/dshills/keyplay/internal/macro/script"
)

// ErrNotIdle is returned when Start is called on an interpreter that has
// already started.
var ErrNotIdle = errors.New("interpreter already started")

// ErrNotRunning is returned when Step is called outside the Running phase.
var ErrNotRunning = errors.New("interpreter not running")

// Phase is the interpreter lifecycle state.
type Phase int

const (
	// Idle means Start has not been called.
	Idle Phase = iota
	// Running means instructions are being executed.
	Running
	// Finished means the cursor ran past the last instruction.
	Finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Dispatcher executes action instructions (WAIT, HOLD, PRESS, unknown).
type Dispatcher interface {
	Dispatch(ctx context.Context, in script.Instruction) error
}

// Stats counts what an interpreter has executed.
type Stats struct {
	// Steps is the number of top-level instructions executed.
	Steps int
	// Dispatched is the number of instructions sent to the dispatcher,
	// including loop body instructions and unknown commands.
	Dispatched int
	// Skipped is the number of unknown-command instructions encountered.
	Skipped int
	// Restarts is the number of RESTART instructions honored.
	Restarts int
}

// StepInfo describes an executed top-level instruction.
type StepInfo struct {
	// Cursor is the index the instruction was fetched from.
	Cursor int
	// Instruction is the executed instruction.
	Instruction script.Instruction
	// Restarted is true if execution requested a restart.
	Restarted bool
}

// Observer is called after each top-level instruction completes.
type Observer func(StepInfo)

// Interpreter executes a Program.
type Interpreter struct {
	prog       *script.Program
	dispatcher Dispatcher

	startDelay   time.Duration
	lineDelay    time.Duration
	restartDelay bool
	sleep        dispatch.SleepFunc
	logger       *logging.Logger
	observer     Observer

	cursor int
	phase  Phase
	stats  Stats
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStartDelay sets the suspension applied before the first instruction.
func WithStartDelay(d time.Duration) Option {
	return func(in *Interpreter) {
		if d >= 0 {
			in.startDelay = d
		}
	}
}

// WithLineDelay sets the suspension applied after every top-level instruction.
func WithLineDelay(d time.Duration) Option {
	return func(in *Interpreter) {
		if d >= 0 {
			in.lineDelay = d
		}
	}
}

// WithRestartDelay re-applies the start delay each time RESTART is honored.
func WithRestartDelay(enabled bool) Option {
	return func(in *Interpreter) {
		in.restartDelay = enabled
	}
}

// WithSleep replaces the suspension function used for delays.
func WithSleep(fn dispatch.SleepFunc) Option {
	return func(in *Interpreter) {
		if fn != nil {
			in.sleep = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithObserver registers a callback invoked after each top-level step.
func WithObserver(fn Observer) Option {
	return func(in *Interpreter) {
		in.observer = fn
	}
}

// New creates an interpreter for prog.
func New(prog *script.Program, d Dispatcher, opts ...Option) *Interpreter {
	in := &Interpreter{
		prog:       prog,
		dispatcher: d,
		sleep:      dispatch.Sleep,
		logger:     logging.Null(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Cursor returns the index of the next top-level instruction.
func (in *Interpreter) Cursor() int {
	return in.cursor
}

// Phase returns the current lifecycle phase.
func (in *Interpreter) Phase() Phase {
	return in.phase
}

// Stats returns execution counters.
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// String describes the interpreter position.
func (in *Interpreter) String() string {
	line := ""
	if in.cursor >= 0 && in.cursor < in.prog.Len() {
		line = in.prog.At(in.cursor).String()
	}
	return fmt.Sprintf("Interpreter<phase=%s cursor=%d line=%q>", in.phase, in.cursor, line)
}

// Start applies the start delay and moves the interpreter to Running.
// An empty program goes straight to Finished.
func (in *Interpreter) Start(ctx context.Context) error {
	if in.phase != Idle {
		return ErrNotIdle
	}

	in.logger.Debug("starting %s in %s", in.prog.Source, in.startDelay)
	if err := in.sleep(ctx, in.startDelay); err != nil {
		return err
	}

	in.cursor = 0
	in.phase = Running
	in.finishIfDone()
	return nil
}

// Step executes the instruction at the cursor, applies the line delay and
// advances the cursor. It returns ErrNotRunning outside the Running phase.
func (in *Interpreter) Step(ctx context.Context) error {
	if in.phase != Running {
		return ErrNotRunning
	}

	at := in.cursor
	instr := in.prog.At(at)
	in.logger.Info("%s", instr)

	restarted, err := in.execute(ctx, instr)
	if err != nil {
		return fmt.Errorf("line %d (%s): %w", instr.Line, instr, err)
	}
	in.stats.Steps++

	if restarted {
		in.stats.Restarts++
		in.cursor = -1
		if in.restartDelay {
			if err := in.sleep(ctx, in.startDelay); err != nil {
				return err
			}
		}
	}

	if err := in.sleep(ctx, in.lineDelay); err != nil {
		return err
	}
	in.cursor++

	if in.observer != nil {
		in.observer(StepInfo{Cursor: at, Instruction: instr, Restarted: restarted})
	}

	in.finishIfDone()
	return nil
}

// Run starts the interpreter and steps until the program finishes or an
// error occurs. On error the interpreter stays Running and must be discarded.
func (in *Interpreter) Run(ctx context.Context) error {
	if err := in.Start(ctx); err != nil {
		return err
	}
	for in.phase == Running {
		if err := in.Step(ctx); err != nil {
			return err
		}
	}
	in.logger.Debug("finished %s after %d steps", in.prog.Source, in.stats.Steps)
	return nil
}

// execute runs one top-level instruction and reports whether it requested
// a restart.
func (in *Interpreter) execute(ctx context.Context, instr script.Instruction) (bool, error) {
	switch instr.Command {
	case script.CommandRestart:
		return true, nil

	case script.CommandLoop:
		for rep := 0; rep < instr.Count; rep++ {
			for _, body := range instr.Body {
				in.logger.Debug("  %s (loop %d/%d)", body, rep+1, instr.Count)
				restarted, err := in.execute(ctx, body)
				if err != nil {
					return false, err
				}
				if restarted {
					return true, nil
				}
			}
		}
		return false, nil

	case script.CommandUnknown:
		in.stats.Skipped++
		in.logger.Warn("unknown command %q at line %d ignored", instr.Name, instr.Line)
		return false, in.dispatch(ctx, instr)

	case script.CommandWait, script.CommandHold, script.CommandPress:
		return false, in.dispatch(ctx, instr)

	default:
		return false, fmt.Errorf("unhandled command %v", instr.Command)
	}
}

func (in *Interpreter) dispatch(ctx context.Context, instr script.Instruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	in.stats.Dispatched++
	return in.dispatcher.Dispatch(ctx, instr)
}

func (in *Interpreter) finishIfDone() {
	if in.phase == Running && in.cursor >= in.prog.Len() {
		in.phase = Finished
	}
}
