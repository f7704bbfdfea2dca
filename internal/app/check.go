package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dshills/keyplay/internal/macro/script"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

// check builds the macro file and prints it as a table.
func (app *Application) check() error {
	path := app.config.Macro

	prog, err := script.Load(path)
	if err == nil {
		err = app.validateKeys(prog)
	}
	if err != nil {
		fmt.Fprintln(app.opts.Output, errorStyle.Render("✗ "+path)+" "+err.Error())
		return err
	}

	fmt.Fprintln(app.opts.Output, renderProgram(prog))

	summary := fmt.Sprintf("%d instructions, %d keys", prog.Len(), len(prog.Keys()))
	fmt.Fprintln(app.opts.Output, okStyle.Render("✓ "+path)+" "+mutedStyle.Render(summary))
	return nil
}

// renderProgram renders prog as a table with loop bodies under their LOOP.
func renderProgram(prog *script.Program) string {
	t := table.NewWriter()
	t.SetTitle(prog.Source)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Line", "Command", "Arguments"})

	for i, in := range prog.Instructions {
		t.AppendRow(table.Row{i, in.Line, commandLabel(in), strings.Join(in.Args, " ")})
		for _, body := range in.Body {
			t.AppendRow(table.Row{"", body.Line, "  " + commandLabel(body), strings.Join(body.Args, " ")})
		}
	}

	keys := prog.Keys()
	if len(keys) == 0 {
		keys = []string{"-"}
	}
	t.AppendFooter(table.Row{"", "", "keys", strings.Join(keys, " ")})
	return t.Render()
}

func commandLabel(in script.Instruction) string {
	switch in.Command {
	case script.CommandUnknown:
		return in.Name + " (ignored)"
	case script.CommandLoop:
		return in.Name + " ×" + strconv.Itoa(in.Count)
	default:
		return in.Name
	}
}
