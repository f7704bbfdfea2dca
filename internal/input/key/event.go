package key

import "unicode"

// Event is a resolved key: what an injector presses or releases.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held with Key.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// String returns a canonical name that Parse accepts, e.g. "a", "Ctrl+s",
// "Shift", "Alt+F4".
func (e Event) String() string {
	mods := e.Modifiers
	if e.IsRune() && unicode.IsUpper(e.Rune) {
		// An uppercase character already implies Shift.
		mods = mods &^ ModShift
	}

	name := e.Key.String()
	if e.IsRune() {
		name = string(e.Rune)
	}

	if prefix := mods.String(); prefix != "" {
		return prefix + "+" + name
	}
	return name
}

// Equals returns true if two events represent the same key.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}
