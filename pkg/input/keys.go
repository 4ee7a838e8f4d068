package input

import (
	"fmt"
	"strings"
)

// Key is a physical key code. Values match GLFW key codes, which use ASCII
// values for printable keys, so the window layer converts with a plain cast.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

// KeyAction is the kind of raw key event delivered by the window.
type KeyAction int

// Key event kinds, matching glfw.Release, glfw.Press and glfw.Repeat
const (
	Release KeyAction = 0
	Press   KeyAction = 1
	Repeat  KeyAction = 2
)

// Printable keys (ASCII)
const (
	KeyUnknown      Key = -1
	KeySpace        Key = 32
	KeyApostrophe   Key = 39
	KeyComma        Key = 44
	KeyMinus        Key = 45
	KeyPeriod       Key = 46
	KeySlash        Key = 47
	Key0            Key = 48
	Key9            Key = 57
	KeySemicolon    Key = 59
	KeyEqual        Key = 61
	KeyA            Key = 65
	KeyC            Key = 67
	KeyD            Key = 68
	KeyE            Key = 69
	KeyQ            Key = 81
	KeyS            Key = 83
	KeyW            Key = 87
	KeyZ            Key = 90
	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyGraveAccent  Key = 96
)

// Function and modifier keys (GLFW)
const (
	KeyEscape       Key = 256
	KeyEnter        Key = 257
	KeyTab          Key = 258
	KeyBackspace    Key = 259
	KeyInsert       Key = 260
	KeyDelete       Key = 261
	KeyRight        Key = 262
	KeyLeft         Key = 263
	KeyDown         Key = 264
	KeyUp           Key = 265
	KeyPageUp       Key = 266
	KeyPageDown     Key = 267
	KeyHome         Key = 268
	KeyEnd          Key = 269
	KeyCapsLock     Key = 280
	KeyScrollLock   Key = 281
	KeyNumLock      Key = 282
	KeyPrintScreen  Key = 283
	KeyPause        Key = 284
	KeyF1           Key = 290
	KeyF12          Key = 301
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyLeftSuper    Key = 343
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
	KeyRightSuper   Key = 347
	KeyMenu         Key = 348
)

var namedKeys = map[string]Key{
	"space":         KeySpace,
	"apostrophe":    KeyApostrophe,
	"comma":         KeyComma,
	"minus":         KeyMinus,
	"period":        KeyPeriod,
	"slash":         KeySlash,
	"semicolon":     KeySemicolon,
	"equal":         KeyEqual,
	"left_bracket":  KeyLeftBracket,
	"backslash":     KeyBackslash,
	"right_bracket": KeyRightBracket,
	"grave_accent":  KeyGraveAccent,
	"escape":        KeyEscape,
	"enter":         KeyEnter,
	"tab":           KeyTab,
	"backspace":     KeyBackspace,
	"insert":        KeyInsert,
	"delete":        KeyDelete,
	"right":         KeyRight,
	"left":          KeyLeft,
	"down":          KeyDown,
	"up":            KeyUp,
	"page_up":       KeyPageUp,
	"page_down":     KeyPageDown,
	"home":          KeyHome,
	"end":           KeyEnd,
	"caps_lock":     KeyCapsLock,
	"scroll_lock":   KeyScrollLock,
	"num_lock":      KeyNumLock,
	"print_screen":  KeyPrintScreen,
	"pause":         KeyPause,
	"left_shift":    KeyLeftShift,
	"left_control":  KeyLeftControl,
	"left_alt":      KeyLeftAlt,
	"left_super":    KeyLeftSuper,
	"right_shift":   KeyRightShift,
	"right_control": KeyRightControl,
	"right_alt":     KeyRightAlt,
	"right_super":   KeyRightSuper,
	"menu":          KeyMenu,
}

var keyNames = make(map[Key]string, len(namedKeys)+48)

func init() {
	for name, key := range namedKeys {
		keyNames[key] = name
	}
	for k := KeyA; k <= KeyZ; k++ {
		name := string(rune('a' + (k - KeyA)))
		namedKeys[name] = k
		keyNames[k] = name
	}
	for k := Key0; k <= Key9; k++ {
		name := string(rune('0' + (k - Key0)))
		namedKeys[name] = k
		keyNames[k] = name
	}
	for k := KeyF1; k <= KeyF12; k++ {
		name := fmt.Sprintf("f%d", k-KeyF1+1)
		namedKeys[name] = k
		keyNames[k] = name
	}
}

// ParseKey converts a human readable key name ("w", "space", "left_shift",
// "f1") to its key code. Matching is case-insensitive and accepts '-' or ' '
// in place of '_'.
func ParseKey(name string) (Key, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if key, ok := namedKeys[norm]; ok {
		return key, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key name %q", name)
}

// String returns the canonical name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}
