package script

import (
	"errors"
	"fmt"
)

// Errors returned while loading and building a macro script.
var (
	// ErrNotFound indicates the macro file is missing or unreadable.
	ErrNotFound = errors.New("macro file not found")

	// ErrEmptyLine indicates a line with no command token.
	ErrEmptyLine = errors.New("empty line")

	// ErrOrphanIndent indicates an indented line that does not follow a LOOP header.
	ErrOrphanIndent = errors.New("indented line outside of a loop")

	// ErrMalformedInstruction indicates missing, extra, or non-numeric arguments.
	ErrMalformedInstruction = errors.New("malformed instruction")

	// ErrNestedLoop indicates a LOOP inside a loop body.
	ErrNestedLoop = errors.New("nested loops are not supported")
)

// SyntaxError describes a build failure at a specific script line.
type SyntaxError struct {
	// Source names the script (usually its path).
	Source string
	// Line is the 1-based line number.
	Line int
	// Text is the offending line as read.
	Text string
	// Message adds detail to Err.
	Message string
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	msg := e.Err.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Source != "" {
		return fmt.Sprintf("%s:%d: %s (%q)", e.Source, e.Line, msg, e.Text)
	}
	return fmt.Sprintf("line %d: %s (%q)", e.Line, msg, e.Text)
}

// Unwrap returns the sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxErr(line int, text string, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line:    line,
		Text:    text,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
