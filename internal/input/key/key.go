package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Editing and whitespace keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeySpace

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Lock and system keys
	KeyPause
	KeyPrintScreen
	KeyScrollLock
	KeyNumLock
	KeyCapsLock

	// Numeric keypad
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyAdd
	KeySubtract
	KeyMultiply
	KeyDivide
	KeyDecimal
	KeySeparator

	// Media and volume keys
	KeyVolumeUp
	KeyVolumeDown
	KeyVolumeMute
	KeyPlayPause
	KeyStop
	KeyNextTrack
	KeyPrevTrack

	// Browser and launcher keys
	KeyBrowserBack
	KeyBrowserForward
	KeyBrowserRefresh
	KeyBrowserStop
	KeyBrowserSearch
	KeyBrowserFavorites
	KeyBrowserHome
	KeyLaunchMail
	KeyLaunchMediaSelect
	KeyLaunchApp1
	KeyLaunchApp2

	// System and editing keys found on some keyboards
	KeyApps
	KeySleep
	KeyClear
	KeySelect
	KeyExecute
	KeyHelp
	KeyPrint
	KeyFn

	// Input method keys
	KeyAccept
	KeyConvert
	KeyNonConvert
	KeyModeChange
	KeyFinal
	KeyHangul
	KeyHanja
	KeyJunja
	KeyKana
	KeyKanji
	KeyYen

	// Modifier keys pressed on their own, e.g. HOLD shift 2
	KeyShift
	KeyCtrl
	KeyAlt
	KeyMeta

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:              "None",
	KeyEscape:            "Escape",
	KeyEnter:             "Enter",
	KeyTab:               "Tab",
	KeyBackspace:         "Backspace",
	KeyDelete:            "Delete",
	KeyInsert:            "Insert",
	KeySpace:             "Space",
	KeyHome:              "Home",
	KeyEnd:               "End",
	KeyPageUp:            "PageUp",
	KeyPageDown:          "PageDown",
	KeyUp:                "Up",
	KeyDown:              "Down",
	KeyLeft:              "Left",
	KeyRight:             "Right",
	KeyF1:                "F1",
	KeyF2:                "F2",
	KeyF3:                "F3",
	KeyF4:                "F4",
	KeyF5:                "F5",
	KeyF6:                "F6",
	KeyF7:                "F7",
	KeyF8:                "F8",
	KeyF9:                "F9",
	KeyF10:               "F10",
	KeyF11:               "F11",
	KeyF12:               "F12",
	KeyF13:               "F13",
	KeyF14:               "F14",
	KeyF15:               "F15",
	KeyF16:               "F16",
	KeyF17:               "F17",
	KeyF18:               "F18",
	KeyF19:               "F19",
	KeyF20:               "F20",
	KeyF21:               "F21",
	KeyF22:               "F22",
	KeyF23:               "F23",
	KeyF24:               "F24",
	KeyPause:             "Pause",
	KeyPrintScreen:       "PrintScreen",
	KeyScrollLock:        "ScrollLock",
	KeyNumLock:           "NumLock",
	KeyCapsLock:          "CapsLock",
	KeyNum0:              "Num0",
	KeyNum1:              "Num1",
	KeyNum2:              "Num2",
	KeyNum3:              "Num3",
	KeyNum4:              "Num4",
	KeyNum5:              "Num5",
	KeyNum6:              "Num6",
	KeyNum7:              "Num7",
	KeyNum8:              "Num8",
	KeyNum9:              "Num9",
	KeyAdd:               "Add",
	KeySubtract:          "Subtract",
	KeyMultiply:          "Multiply",
	KeyDivide:            "Divide",
	KeyDecimal:           "Decimal",
	KeySeparator:         "Separator",
	KeyVolumeUp:          "VolumeUp",
	KeyVolumeDown:        "VolumeDown",
	KeyVolumeMute:        "VolumeMute",
	KeyPlayPause:         "PlayPause",
	KeyStop:              "Stop",
	KeyNextTrack:         "NextTrack",
	KeyPrevTrack:         "PrevTrack",
	KeyBrowserBack:       "BrowserBack",
	KeyBrowserForward:    "BrowserForward",
	KeyBrowserRefresh:    "BrowserRefresh",
	KeyBrowserStop:       "BrowserStop",
	KeyBrowserSearch:     "BrowserSearch",
	KeyBrowserFavorites:  "BrowserFavorites",
	KeyBrowserHome:       "BrowserHome",
	KeyLaunchMail:        "LaunchMail",
	KeyLaunchMediaSelect: "LaunchMediaSelect",
	KeyLaunchApp1:        "LaunchApp1",
	KeyLaunchApp2:        "LaunchApp2",
	KeyApps:              "Apps",
	KeySleep:             "Sleep",
	KeyClear:             "Clear",
	KeySelect:            "Select",
	KeyExecute:           "Execute",
	KeyHelp:              "Help",
	KeyPrint:             "Print",
	KeyFn:                "Fn",
	KeyAccept:            "Accept",
	KeyConvert:           "Convert",
	KeyNonConvert:        "NonConvert",
	KeyModeChange:        "ModeChange",
	KeyFinal:             "Final",
	KeyHangul:            "Hangul",
	KeyHanja:             "Hanja",
	KeyJunja:             "Junja",
	KeyKana:              "Kana",
	KeyKanji:             "Kanji",
	KeyYen:               "Yen",
	KeyShift:             "Shift",
	KeyCtrl:              "Ctrl",
	KeyAlt:               "Alt",
	KeyMeta:              "Meta",
	KeyRune:              "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F24).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// IsModifierKey returns true for Shift, Ctrl, Alt and Meta.
func (k Key) IsModifierKey() bool {
	return k >= KeyShift && k <= KeyMeta
}

// Modifier returns the modifier a modifier key activates, or ModNone.
func (k Key) Modifier() Modifier {
	switch k {
	case KeyShift:
		return ModShift
	case KeyCtrl:
		return ModCtrl
	case KeyAlt:
		return ModAlt
	case KeyMeta:
		return ModMeta
	default:
		return ModNone
	}
}

// keyNameMap maps key names (lowercase) to Key values. Left/right variants
// of modifier keys collapse to a single key.
var keyNameMap = map[string]Key{
	"escape":            KeyEscape,
	"esc":               KeyEscape,
	"enter":             KeyEnter,
	"return":            KeyEnter,
	"cr":                KeyEnter,
	"tab":               KeyTab,
	"backspace":         KeyBackspace,
	"bs":                KeyBackspace,
	"delete":            KeyDelete,
	"del":               KeyDelete,
	"insert":            KeyInsert,
	"ins":               KeyInsert,
	"space":             KeySpace,
	"home":              KeyHome,
	"end":               KeyEnd,
	"pageup":            KeyPageUp,
	"pgup":              KeyPageUp,
	"pagedown":          KeyPageDown,
	"pgdn":              KeyPageDown,
	"up":                KeyUp,
	"down":              KeyDown,
	"left":              KeyLeft,
	"right":             KeyRight,
	"f1":                KeyF1,
	"f2":                KeyF2,
	"f3":                KeyF3,
	"f4":                KeyF4,
	"f5":                KeyF5,
	"f6":                KeyF6,
	"f7":                KeyF7,
	"f8":                KeyF8,
	"f9":                KeyF9,
	"f10":               KeyF10,
	"f11":               KeyF11,
	"f12":               KeyF12,
	"f13":               KeyF13,
	"f14":               KeyF14,
	"f15":               KeyF15,
	"f16":               KeyF16,
	"f17":               KeyF17,
	"f18":               KeyF18,
	"f19":               KeyF19,
	"f20":               KeyF20,
	"f21":               KeyF21,
	"f22":               KeyF22,
	"f23":               KeyF23,
	"f24":               KeyF24,
	"pause":             KeyPause,
	"printscreen":       KeyPrintScreen,
	"prtsc":             KeyPrintScreen,
	"prtscr":            KeyPrintScreen,
	"prntscrn":          KeyPrintScreen,
	"scrolllock":        KeyScrollLock,
	"numlock":           KeyNumLock,
	"capslock":          KeyCapsLock,
	"num0":              KeyNum0,
	"num1":              KeyNum1,
	"num2":              KeyNum2,
	"num3":              KeyNum3,
	"num4":              KeyNum4,
	"num5":              KeyNum5,
	"num6":              KeyNum6,
	"num7":              KeyNum7,
	"num8":              KeyNum8,
	"num9":              KeyNum9,
	"add":               KeyAdd,
	"subtract":          KeySubtract,
	"multiply":          KeyMultiply,
	"divide":            KeyDivide,
	"decimal":           KeyDecimal,
	"separator":         KeySeparator,
	"volumeup":          KeyVolumeUp,
	"volumedown":        KeyVolumeDown,
	"volumemute":        KeyVolumeMute,
	"playpause":         KeyPlayPause,
	"stop":              KeyStop,
	"nexttrack":         KeyNextTrack,
	"prevtrack":         KeyPrevTrack,
	"browserback":       KeyBrowserBack,
	"browserforward":    KeyBrowserForward,
	"browserrefresh":    KeyBrowserRefresh,
	"browserstop":       KeyBrowserStop,
	"browsersearch":     KeyBrowserSearch,
	"browserfavorites":  KeyBrowserFavorites,
	"browserhome":       KeyBrowserHome,
	"launchmail":        KeyLaunchMail,
	"launchmediaselect": KeyLaunchMediaSelect,
	"launchapp1":        KeyLaunchApp1,
	"launchapp2":        KeyLaunchApp2,
	"apps":              KeyApps,
	"sleep":             KeySleep,
	"clear":             KeyClear,
	"select":            KeySelect,
	"execute":           KeyExecute,
	"help":              KeyHelp,
	"print":             KeyPrint,
	"fn":                KeyFn,
	"accept":            KeyAccept,
	"convert":           KeyConvert,
	"nonconvert":        KeyNonConvert,
	"modechange":        KeyModeChange,
	"final":             KeyFinal,
	"hangul":            KeyHangul,
	"hanja":             KeyHanja,
	"junja":             KeyJunja,
	"kana":              KeyKana,
	"kanji":             KeyKanji,
	"yen":               KeyYen,
	"hanguel":           KeyHangul,
	"shift":             KeyShift,
	"shiftleft":         KeyShift,
	"shiftright":        KeyShift,
	"ctrl":              KeyCtrl,
	"control":           KeyCtrl,
	"ctrlleft":          KeyCtrl,
	"ctrlright":         KeyCtrl,
	"alt":               KeyAlt,
	"altleft":           KeyAlt,
	"altright":          KeyAlt,
	"option":            KeyAlt,
	"optionleft":        KeyAlt,
	"optionright":       KeyAlt,
	"meta":              KeyMeta,
	"win":               KeyMeta,
	"winleft":           KeyMeta,
	"winright":          KeyMeta,
	"cmd":               KeyMeta,
	"command":           KeyMeta,
	"super":             KeyMeta,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
