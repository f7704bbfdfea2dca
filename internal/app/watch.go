package app

import (
	"context"
	"strings"

	"github.com/dshills/keyplay/internal/watcher"
)

// watch checks the macro file, then checks it again after every change
// until ctx is cancelled. Check failures are printed and do not stop it.
func (app *Application) watch(ctx context.Context) error {
	path := app.config.Macro

	w, err := watcher.New()
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return NewOperationError("watch", path, err)
	}

	_ = app.check()
	app.logger.Info("watching %s", strings.Join(w.Files(), ", "))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			app.logger.Debug("%s %s", ev.Op, ev.Path)
			_ = app.check()

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			app.logger.Warn("watch %s: %v", path, err)
		}
	}
}
