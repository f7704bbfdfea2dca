package script

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Build normalizes lines and groups them into a Program.
//
// Each top-level line starts a new instruction. A LOOP header takes every
// in-block line that immediately follows it as its body. The first error
// aborts the build; no partial program is returned.
func Build(source string, lines []string) (*Program, error) {
	canon, err := Normalize(lines)
	if err != nil {
		return nil, withSource(source, err)
	}

	prog := &Program{Source: source}
	for i := 0; i < len(canon); i++ {
		line := canon[i]
		if isInBlock(line) {
			return nil, withSource(source, syntaxErr(i+1, lines[i], ErrOrphanIndent, "no LOOP header above"))
		}

		in, err := decode(line, i+1)
		if err != nil {
			return nil, withSource(source, annotate(err, lines[i]))
		}

		if in.Command == CommandLoop {
			for i+1 < len(canon) && isInBlock(canon[i+1]) {
				i++
				body, err := decode(strings.TrimPrefix(canon[i], indentUnit), i+1)
				if err != nil {
					return nil, withSource(source, annotate(err, lines[i]))
				}
				if body.Command == CommandLoop {
					return nil, withSource(source, syntaxErr(i+1, lines[i], ErrNestedLoop, "loop bodies are one level deep"))
				}
				in.Body = append(in.Body, body)
			}
		}

		prog.Instructions = append(prog.Instructions, in)
	}

	return prog, nil
}

// decode turns one canonical, unindented line into an Instruction.
func decode(line string, lineno int) (Instruction, error) {
	tokens := strings.Fields(line)
	in := Instruction{
		Command: ParseCommand(tokens[0]),
		Name:    tokens[0],
		Args:    tokens[1:],
		Line:    lineno,
	}

	switch in.Command {
	case CommandWait:
		if err := wantArgs(in, 1, "WAIT <seconds>"); err != nil {
			return in, err
		}
		d, err := parseSeconds(in.Args[0])
		if err != nil {
			return in, syntaxErr(lineno, "", ErrMalformedInstruction, "WAIT duration: %v", err)
		}
		in.Duration = d

	case CommandHold:
		if err := wantArgs(in, 2, "HOLD <key> <seconds>"); err != nil {
			return in, err
		}
		d, err := parseSeconds(in.Args[1])
		if err != nil {
			return in, syntaxErr(lineno, "", ErrMalformedInstruction, "HOLD duration: %v", err)
		}
		in.Key = in.Args[0]
		in.Duration = d

	case CommandPress:
		if err := wantArgs(in, 1, "PRESS <key>"); err != nil {
			return in, err
		}
		in.Key = in.Args[0]

	case CommandRestart:
		if err := wantArgs(in, 0, "RESTART"); err != nil {
			return in, err
		}

	case CommandLoop:
		if err := wantArgs(in, 1, "LOOP <count>"); err != nil {
			return in, err
		}
		n, err := strconv.Atoi(in.Args[0])
		if err != nil || n < 0 {
			return in, syntaxErr(lineno, "", ErrMalformedInstruction, "LOOP count %q is not a non-negative integer", in.Args[0])
		}
		in.Count = n
		// "+3", "-0" and "007" are written back as 3, 0 and 7.
		in.Args = []string{strconv.Itoa(n)}

	case CommandUnknown:
		// Kept as-is; the dispatcher ignores it.
	}

	return in, nil
}

func wantArgs(in Instruction, n int, usage string) error {
	if len(in.Args) == n {
		return nil
	}
	return syntaxErr(in.Line, "", ErrMalformedInstruction, "expected %s, got %d argument(s)", usage, len(in.Args))
}

// maxSeconds bounds durations to what time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

var errBadSeconds = errors.New("not a non-negative number of seconds")

func parseSeconds(s string) (time.Duration, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || f >= maxSeconds {
		return 0, errBadSeconds
	}
	return time.Duration(f * float64(time.Second)), nil
}

// annotate fills in the raw line text on a SyntaxError produced by decode.
func annotate(err error, text string) error {
	var se *SyntaxError
	if errors.As(err, &se) && se.Text == "" {
		se.Text = text
	}
	return err
}

func withSource(source string, err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		se.Source = source
	}
	return err
}
