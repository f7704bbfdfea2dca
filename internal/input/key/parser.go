package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key name as written in a macro script.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@", "+"
//   - Named keys: "enter", "Escape", "space", "f5", "shift"
//   - With modifiers: "ctrl+s", "Alt+F4", "ctrl+shift+p", "ctrl++"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// The last '+' separates modifiers from the key; a trailing '+' is the
	// plus key itself.
	if i := strings.LastIndex(spec[:len(spec)-1], "+"); i > 0 {
		mods, err := parseModifiers(spec[:i])
		if err != nil {
			return Event{}, err
		}
		return parseKey(spec[i+1:], mods)
	}

	return parseKey(spec, ModNone)
}

// parseModifiers parses "ctrl+shift" style modifier lists.
func parseModifiers(s string) (Modifier, error) {
	var mods Modifier
	for _, p := range strings.Split(s, "+") {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return mods, nil
}

// parseKey parses a key name or single character with already-known modifiers.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}

	r := runes[0]
	switch {
	case mods.Has(ModCtrl):
		// Control combinations are case-insensitive.
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// Validate reports whether spec names a key Parse understands.
func Validate(spec string) error {
	_, err := Parse(spec)
	return err
}
