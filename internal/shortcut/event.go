package shortcut

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Event is a key press as delivered by the host.
type Event struct {
	// Key is the key identifier ("s", "S", "ArrowUp", "Enter", ...).
	Key string

	// Mods are the modifiers held during the press.
	Mods Modifier
}

// Printable returns the character typed by e, if e is a plain character key.
// Shift is allowed; Ctrl, Alt and Meta are not.
func (e Event) Printable() (rune, bool) {
	if e.Mods.Has(ModCtrl) || e.Mods.Has(ModAlt) || e.Mods.Has(ModMeta) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(e.Key)
	if r == utf8.RuneError || size != len(e.Key) || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

// String returns a representation like "Ctrl+Shift+s".
func (e Event) String() string {
	if e.Mods == ModNone {
		return e.Key
	}
	return e.Mods.String() + "+" + e.Key
}

// keyAliases folds common spellings onto one identifier. Keys not listed
// here are compared case-insensitively.
var keyAliases = map[string]string{
	"up":        "arrowup",
	"down":      "arrowdown",
	"left":      "arrowleft",
	"right":     "arrowright",
	"esc":       "escape",
	"return":    "enter",
	"cr":        "enter",
	"del":       "delete",
	"ins":       "insert",
	"bs":        "backspace",
	"pgup":      "pageup",
	"pgdown":    "pagedown",
	"pgdn":      "pagedown",
	"page_up":   "pageup",
	"page_down": "pagedown",
	" ":         "space",
	"spacebar":  "space",
	"plus":      "+",
	"minus":     "-",
}

// NormalizeKey returns the canonical form of a key identifier used for
// indexing and matching.
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
