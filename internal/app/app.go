// Package app wires keyplay together: it layers configuration, builds the
// logger, injector and dispatcher, and runs one of the three modes
// (play, check, check-and-watch, or report summary).
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/keyplay/internal/config"
	"github.com/dshills/keyplay/internal/inject"
	"github.com/dshills/keyplay/internal/inject/screen"
	"github.com/dshills/keyplay/internal/logging"
	"github.com/dshills/keyplay/internal/macro/dispatch"
	"github.com/dshills/keyplay/internal/macro/script"
)

// Application owns the components of one keyplay invocation.
type Application struct {
	opts   Options
	config config.Config
	logger *logging.Logger
	runID  string

	injector   dispatch.Injector
	screen     *screen.Injector
	dispatcher *dispatch.Dispatcher

	running      atomic.Bool
	screenActive atomic.Bool
	shutdownOnce sync.Once
}

// heldKeys is implemented by injectors that track which keys are down.
type heldKeys interface {
	Held() []string
}

// Options configures the application. Zero values leave the configured
// setting alone; pointer fields distinguish "unset" from the zero value.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Macro is the macro file to play or check.
	Macro string

	// Backend selects the injector backend.
	Backend string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Report is a path to write a JSON playback report to.
	Report string

	StartDelay   *float64
	LineDelay    *float64
	RestartDelay *bool
	Normalize    *bool

	// Check builds and prints the program without playing it.
	Check bool

	// Watch re-checks the macro file whenever it changes. Implies Check.
	Watch bool

	// Summary prints the headline of a JSON report written by an earlier
	// run instead of playing.
	Summary string

	// Output receives check output. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup config.LookupFunc

	// Injector replaces the configured backend.
	Injector dispatch.Injector

	// RunID replaces the generated run id.
	RunID string
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Watch {
		opts.Check = true
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration: file, environment, then flags.
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := cfg.ApplyEnv(app.opts.Lookup); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.opts.applyTo(&cfg)
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger, tagged with the run id.
	app.runID = app.opts.RunID
	if app.runID == "" {
		app.runID = uuid.NewString()
	}
	app.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: app.opts.LogOutput,
		Prefix: "keyplay",
	}).WithField("run", app.runID)

	// 3. Injector. Only play mode touches the terminal.
	switch {
	case app.opts.Injector != nil:
		app.injector = app.opts.Injector
	case cfg.Backend == config.BackendScreen && !app.opts.Check && app.opts.Summary == "":
		scr, err := screen.NewTerminal(
			screen.WithLogger(app.logger.WithComponent("screen")),
			screen.WithTitle("keyplay "+cfg.Macro),
		)
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screen = scr
		app.injector = scr
	default:
		app.injector = inject.NewLog(app.logger)
	}

	// 4. Dispatcher
	app.dispatcher = dispatch.New(app.injector,
		dispatch.WithLogger(app.logger.WithComponent("dispatch")))

	return nil
}

func (opts Options) applyTo(cfg *config.Config) {
	if opts.Macro != "" {
		cfg.Macro = opts.Macro
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Report != "" {
		cfg.Report = opts.Report
	}
	if opts.StartDelay != nil {
		cfg.Playback.StartDelay = *opts.StartDelay
	}
	if opts.LineDelay != nil {
		cfg.Playback.LineDelay = *opts.LineDelay
	}
	if opts.RestartDelay != nil {
		cfg.Playback.RestartDelay = *opts.RestartDelay
	}
	if opts.Normalize != nil {
		cfg.Playback.Normalize = *opts.Normalize
	}
}

// Run executes the selected mode until it completes or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	switch {
	case app.opts.Summary != "":
		return app.summary()
	case app.opts.Watch:
		return app.watch(ctx)
	case app.opts.Check:
		return app.check()
	default:
		return interrupted(app.play(ctx))
	}
}

// Shutdown releases any keys still held and restores the terminal.
// It is safe to call more than once and from an exit handler.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if err := app.ReleaseKeys(); err != nil {
			app.logger.Error("release keys: %v", err)
		}
		if h, ok := app.injector.(heldKeys); ok {
			if held := h.Held(); len(held) > 0 {
				app.logger.Error("keys still down after release: %s", strings.Join(held, " "))
			}
		}
		if app.screenActive.CompareAndSwap(true, false) {
			app.screen.Fini()
		}
	})
}

// ReleaseKeys releases every key the dispatcher still holds.
func (app *Application) ReleaseKeys() error {
	held := app.dispatcher.Held()
	if len(held) == 0 {
		return nil
	}
	app.logger.Warn("releasing %d held keys", len(held))
	return app.dispatcher.ReleaseAll()
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// RunID returns the id attached to every log line of this run.
func (app *Application) RunID() string {
	return app.runID
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// validateKeys checks every HOLD and PRESS key against the injector.
func (app *Application) validateKeys(prog *script.Program) error {
	v, ok := app.injector.(dispatch.KeyValidator)
	if !ok {
		return nil
	}

	var errs []error
	check := func(in script.Instruction) {
		if in.Command != script.CommandHold && in.Command != script.CommandPress {
			return
		}
		if err := v.ValidateKey(in.Key); err != nil {
			target := fmt.Sprintf("%s:%d", prog.Source, in.Line)
			errs = append(errs, NewOperationError("validate key", target, err))
		}
	}
	for _, in := range prog.Instructions {
		check(in)
		for _, body := range in.Body {
			check(body)
		}
	}
	return errors.Join(errs...)
}

// interrupted marks cancellation errors with ErrInterrupted.
func interrupted(err error) error {
	if err != nil && errors.Is(err, context.Canceled) && !errors.Is(err, ErrInterrupted) {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return err
}
