package script

import (
	"strings"
	"time"
)

// Instruction is one decoded script line.
type Instruction struct {
	// Command is the decoded operation.
	Command Command

	// Name is the command token as written, uppercased.
	// For CommandUnknown it preserves the unrecognized token.
	Name string

	// Args are the remaining tokens in order.
	Args []string

	// Line is the 1-based source line.
	Line int

	// Key is the key identifier for HOLD and PRESS.
	Key string

	// Duration is the suspension for WAIT and HOLD.
	Duration time.Duration

	// Count is the repeat count for LOOP.
	Count int

	// Body holds the loop body for LOOP. It never contains a LOOP.
	Body []Instruction
}

// String returns the canonical text form of the instruction header.
func (i Instruction) String() string {
	if len(i.Args) == 0 {
		return i.Name
	}
	return i.Name + " " + strings.Join(i.Args, " ")
}

// Program is an ordered sequence of top-level instructions.
// Loop bodies are kept inside their LOOP instruction, not flattened.
// A Program is not modified after Build returns it.
type Program struct {
	// Source names where the program was loaded from.
	Source string

	// Instructions are the top-level instructions.
	Instructions []Instruction
}

// Len returns the number of top-level instructions.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// At returns the instruction at index i.
func (p *Program) At(i int) Instruction {
	return p.Instructions[i]
}

// Lines renders the program back to canonical script lines.
func (p *Program) Lines() []string {
	lines := make([]string, 0, len(p.Instructions))
	for _, in := range p.Instructions {
		lines = append(lines, in.String())
		for _, b := range in.Body {
			lines = append(lines, indentUnit+b.String())
		}
	}
	return lines
}

// Keys returns every distinct key referenced by HOLD and PRESS, in first-use order.
func (p *Program) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(in Instruction) {
		if in.Command != CommandHold && in.Command != CommandPress {
			return
		}
		if !seen[in.Key] {
			seen[in.Key] = true
			keys = append(keys, in.Key)
		}
	}
	for _, in := range p.Instructions {
		add(in)
		for _, b := range in.Body {
			add(b)
		}
	}
	return keys
}
