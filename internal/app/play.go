package app

import (
	"context"

	"github.com/dshills/keyplay/internal/inject"
	"github.com/dshills/keyplay/internal/inject/screen"
	"github.com/dshills/keyplay/internal/macro/interp"
	"github.com/dshills/keyplay/internal/macro/report"
	"github.com/dshills/keyplay/internal/macro/script"
)

// play loads the macro file and executes it once.
func (app *Application) play(ctx context.Context) error {
	cfg := app.config
	path := cfg.Macro

	if cfg.Playback.Normalize {
		changed, err := script.Rewrite(path)
		if err != nil {
			return err
		}
		if changed {
			app.logger.Info("rewrote %s in canonical form", path)
		}
	}

	prog, err := script.Load(path)
	if err != nil {
		return err
	}
	if err := app.validateKeys(prog); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.screen != nil {
		if err := app.screen.Init(); err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screenActive.Store(true)
		defer func() {
			if app.screenActive.CompareAndSwap(true, false) {
				app.screen.Fini()
			}
		}()
		go app.screen.Watch(ctx, cancel)
	}

	opts := []interp.Option{
		interp.WithStartDelay(cfg.StartDelay()),
		interp.WithLineDelay(cfg.LineDelay()),
		interp.WithRestartDelay(cfg.Playback.RestartDelay),
		interp.WithLogger(app.logger.WithComponent("interp")),
	}

	var rec *report.Recorder
	if cfg.Report != "" {
		rec = report.NewRecorder(app.runID, path, cfg.Backend)
		opts = append(opts, interp.WithObserver(rec.Observe))
	}

	in := interp.New(prog, app.dispatcher, opts...)
	app.logger.Info("playing %s: %d instructions, %d keys, starting in %s",
		path, prog.Len(), len(prog.Keys()), cfg.StartDelay())

	runErr := in.Run(ctx)

	if rec != nil {
		res := report.Result{Phase: in.Phase(), Stats: in.Stats(), Err: runErr}
		if err := rec.WriteFile(cfg.Report, res); err != nil {
			app.logger.Error("%v", err)
			if runErr == nil {
				runErr = NewOperationError("report", cfg.Report, err)
			}
		}
	}

	switch inj := app.injector.(type) {
	case *inject.Log:
		app.logger.Debug("dry run recorded %d effects", len(inj.Effects()))
	case *screen.Injector:
		app.logger.Debug("posted %d effects to the screen", inj.Count())
	}

	stats := in.Stats()
	if runErr != nil {
		app.logger.Error("playback stopped at %s: %v", in, runErr)
		return runErr
	}
	app.logger.Info("finished %s: %d steps, %d restarts, %d skipped",
		path, stats.Steps, stats.Restarts, stats.Skipped)
	return nil
}
