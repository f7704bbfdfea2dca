package app

import (
	"fmt"
	"os"

	"github.com/dshills/keyplay/internal/macro/report"
)

// summary prints the headline of a report file.
func (app *Application) summary() error {
	path := app.opts.Summary

	data, err := os.ReadFile(path)
	if err != nil {
		return NewOperationError("read report", path, err)
	}
	s, err := report.Summarize(data)
	if err != nil {
		return NewOperationError("read report", path, err)
	}

	style := okStyle
	if s.Phase != "finished" || s.Error != "" {
		style = errorStyle
	}
	fmt.Fprintln(app.opts.Output, style.Render(s.Phase)+" "+s.String())
	return nil
}
