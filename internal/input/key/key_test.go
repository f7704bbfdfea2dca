package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeySpace, "Space"},
		{KeyF12, "F12"},
		{KeyShift, "Shift"},
		{KeyMeta, "Meta"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyNamesComplete(t *testing.T) {
	for k := KeyNone; k <= KeyRune; k++ {
		if keyNames[k] == "" {
			t.Errorf("Key(%d) has no name", k)
		}
	}
}

func TestKeyNamesParse(t *testing.T) {
	for k := KeyEscape; k < KeyRune; k++ {
		if got := KeyFromName(k.String()); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	tests := []struct {
		key      Key
		special  bool
		function bool
		modifier bool
	}{
		{KeyNone, false, false, false},
		{KeyRune, false, false, false},
		{KeyEscape, true, false, false},
		{KeyF1, true, true, false},
		{KeyF12, true, true, false},
		{KeyF24, true, true, false},
		{KeyNum1, true, false, false},
		{KeyShift, true, false, true},
		{KeyMeta, true, false, true},
		{KeyCapsLock, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsSpecial(); got != tt.special {
				t.Errorf("IsSpecial() = %v, want %v", got, tt.special)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsModifierKey(); got != tt.modifier {
				t.Errorf("IsModifierKey() = %v, want %v", got, tt.modifier)
			}
		})
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"enter", KeyEnter},
		{"ENTER", KeyEnter},
		{" esc ", KeyEscape},
		{"pgdn", KeyPageDown},
		{"shiftleft", KeyShift},
		{"win", KeyMeta},
		{"option", KeyAlt},
		{"a", KeyNone},
		{"volumeup", KeyVolumeUp},
		{"F13", KeyF13},
		{"num0", KeyNum0},
		{"hanguel", KeyHangul},
		{"optionleft", KeyAlt},
		{"volume", KeyNone},
		{"", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModifier(t *testing.T) {
	if got := KeyCtrl.Modifier(); got != ModCtrl {
		t.Errorf("KeyCtrl.Modifier() = %v, want Ctrl", got)
	}
	if got := KeyEnter.Modifier(); got != ModNone {
		t.Errorf("KeyEnter.Modifier() = %v, want none", got)
	}
	if got := ModifierFromName("command"); got != ModMeta {
		t.Errorf("ModifierFromName(command) = %v, want Meta", got)
	}

	m := ModNone.With(ModShift).With(ModCtrl)
	if !m.Has(ModShift) || !m.Has(ModCtrl) || m.Has(ModAlt) {
		t.Errorf("modifier set = %v", m)
	}
	if got := m.String(); got != "Ctrl+Shift" {
		t.Errorf("String() = %q, want Ctrl+Shift", got)
	}
	if got := ModNone.String(); got != "" {
		t.Errorf("ModNone.String() = %q, want empty", got)
	}
}
