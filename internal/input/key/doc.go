// Package key names the keys a macro script can hold or press.
//
// Macro scripts identify keys by plain names such as "a", "space", "shift"
// or "f5", optionally combined with modifiers ("ctrl+c"). This package
// resolves those names to a Key, a Modifier set and, for character keys,
// a rune:
//
//   - Characters: "a", "A", "1", "@"
//   - Named keys: "enter", "esc", "tab", "backspace", "space", "up", "f1"
//   - Keypad, media and browser keys: "num5", "add", "volumeup",
//     "playpause", "browserback", "launchmail"
//   - Modifier keys held on their own: "shift", "ctrl", "alt", "win"
//   - Combinations: "ctrl+s", "alt+f4", "ctrl+shift+p"
//
// Names are case-insensitive except for single characters, where an
// uppercase letter implies Shift.
package key
