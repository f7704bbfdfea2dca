package script

import "strings"

// Command identifies the operation of an instruction.
type Command uint8

const (
	// CommandUnknown is any token that is not a recognized command.
	// Unknown instructions are kept in the program and ignored at dispatch.
	CommandUnknown Command = iota

	// CommandWait suspends playback: WAIT <seconds>.
	CommandWait

	// CommandHold holds a key down for a duration: HOLD <key> <seconds>.
	CommandHold

	// CommandPress presses and releases a key: PRESS <key>.
	CommandPress

	// CommandRestart moves the cursor back to the first instruction.
	CommandRestart

	// CommandLoop repeats its indented body: LOOP <count>.
	CommandLoop
)

// String returns the canonical command token.
func (c Command) String() string {
	switch c {
	case CommandWait:
		return "WAIT"
	case CommandHold:
		return "HOLD"
	case CommandPress:
		return "PRESS"
	case CommandRestart:
		return "RESTART"
	case CommandLoop:
		return "LOOP"
	default:
		return "UNKNOWN"
	}
}

// IsControlFlow reports whether the command is handled by the interpreter
// rather than dispatched as an action.
func (c Command) IsControlFlow() bool {
	return c == CommandRestart || c == CommandLoop
}

// ParseCommand maps a token to its Command (case-insensitive).
// Unrecognized tokens return CommandUnknown.
func ParseCommand(token string) Command {
	switch strings.ToUpper(token) {
	case "WAIT":
		return CommandWait
	case "HOLD":
		return CommandHold
	case "PRESS":
		return CommandPress
	case "RESTART":
		return CommandRestart
	case "LOOP":
		return CommandLoop
	default:
		return CommandUnknown
	}
}
