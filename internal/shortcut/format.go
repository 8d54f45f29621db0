package shortcut

import (
	"strings"
	"unicode/utf8"
)

// keyNames holds display names for named keys: PC form, then Mac form.
var keyNames = map[string][2]string{
	"arrowup":    {"Up", "↑"},
	"arrowdown":  {"Down", "↓"},
	"arrowleft":  {"Left", "←"},
	"arrowright": {"Right", "→"},
	"escape":     {"Esc", "⎋"},
	"enter":      {"Enter", "↩"},
	"delete":     {"Delete", "⌦"},
	"backspace":  {"Backspace", "⌫"},
	"tab":        {"Tab", "⇥"},
	"space":      {"Space", "Space"},
	"pageup":     {"PageUp", "⇞"},
	"pagedown":   {"PageDown", "⇟"},
	"home":       {"Home", "↖"},
	"end":        {"End", "↘"},
	"insert":     {"Insert", "Insert"},
}

// Format renders s for display on platform p. Only the first key
// alternative is shown. Unbound shortcuts render as "".
func (s Shortcut) Format(p Platform) string {
	if !s.Bound() {
		return ""
	}
	mods := s.Mods(p)
	key := displayKey(s.keys[0], p)

	if p.IsMac() {
		var b strings.Builder
		if mods.Has(ModCtrl) {
			b.WriteString("⌃")
		}
		if mods.Has(ModAlt) {
			b.WriteString("⌥")
		}
		if mods.Has(ModShift) {
			b.WriteString("⇧")
		}
		if mods.Has(ModMeta) {
			b.WriteString("⌘")
		}
		b.WriteString(key)
		return b.String()
	}

	var parts []string
	if mods.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if mods.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if mods.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if mods.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(append(parts, key), "+")
}

// String formats s for PlatformPC.
func (s Shortcut) String() string {
	return s.Format(PlatformPC)
}

// Format renders the first shortcut of g for display on platform p.
func (g *Group) Format(p Platform) string {
	if g.Len() == 0 {
		return ""
	}
	return g.items[0].Format(p)
}

// String formats g for PlatformPC.
func (g *Group) String() string {
	return g.Format(PlatformPC)
}

// FormatBinding renders any Binding; unbound values render as "".
func FormatBinding(b Binding, p Platform) string {
	if b == nil {
		return ""
	}
	items := b.Shortcuts()
	if len(items) == 0 {
		return ""
	}
	return items[0].Format(p)
}

func displayKey(key string, p Platform) string {
	if names, ok := keyNames[NormalizeKey(key)]; ok {
		if p.IsMac() {
			return names[1]
		}
		return names[0]
	}
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	r, size := utf8.DecodeRuneInString(key)
	return strings.ToUpper(string(r)) + key[size:]
}
