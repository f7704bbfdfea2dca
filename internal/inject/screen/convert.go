package screen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyplay/internal/input/key"
)

// convertToTcellKey converts a key event to tcell's key and rune.
// ok is false for keys with no tcell equivalent.
func convertToTcellKey(ev key.Event) (k tcell.Key, r rune, ok bool) {
	switch ev.Key {
	case key.KeyRune:
		return tcell.KeyRune, ev.Rune, true
	case key.KeySpace:
		return tcell.KeyRune, ' ', true
	case key.KeyEscape:
		return tcell.KeyEscape, 0, true
	case key.KeyEnter:
		return tcell.KeyEnter, 0, true
	case key.KeyTab:
		return tcell.KeyTab, 0, true
	case key.KeyBackspace:
		return tcell.KeyBackspace2, 0, true
	case key.KeyDelete:
		return tcell.KeyDelete, 0, true
	case key.KeyInsert:
		return tcell.KeyInsert, 0, true
	case key.KeyHome:
		return tcell.KeyHome, 0, true
	case key.KeyEnd:
		return tcell.KeyEnd, 0, true
	case key.KeyPageUp:
		return tcell.KeyPgUp, 0, true
	case key.KeyPageDown:
		return tcell.KeyPgDn, 0, true
	case key.KeyUp:
		return tcell.KeyUp, 0, true
	case key.KeyDown:
		return tcell.KeyDown, 0, true
	case key.KeyLeft:
		return tcell.KeyLeft, 0, true
	case key.KeyRight:
		return tcell.KeyRight, 0, true
	case key.KeyPause:
		return tcell.KeyPause, 0, true
	case key.KeyPrintScreen, key.KeyPrint:
		return tcell.KeyPrint, 0, true
	case key.KeyClear:
		return tcell.KeyClear, 0, true
	case key.KeyHelp:
		return tcell.KeyHelp, 0, true
	case key.KeyAdd:
		return tcell.KeyRune, '+', true
	case key.KeySubtract:
		return tcell.KeyRune, '-', true
	case key.KeyMultiply:
		return tcell.KeyRune, '*', true
	case key.KeyDivide:
		return tcell.KeyRune, '/', true
	case key.KeyDecimal:
		return tcell.KeyRune, '.', true
	}

	if ev.Key >= key.KeyNum0 && ev.Key <= key.KeyNum9 {
		return tcell.KeyRune, '0' + rune(ev.Key-key.KeyNum0), true
	}

	if ev.Key.IsFunctionKey() {
		return tcell.KeyF1 + tcell.Key(ev.Key-key.KeyF1), 0, true
	}
	return tcell.KeyNUL, 0, false
}

// convertToTcellMod converts modifiers to tcell's modifier mask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var mod tcell.ModMask
	if m.Has(key.ModShift) {
		mod |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		mod |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		mod |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		mod |= tcell.ModMeta
	}
	return mod
}
