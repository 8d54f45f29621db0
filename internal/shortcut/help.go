package shortcut

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

// teaNames maps canonical key identifiers to bubbletea key names.
var teaNames = map[string]string{
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"escape":     "esc",
	"space":      " ",
	"pageup":     "pgup",
	"pagedown":   "pgdown",
}

// TeaKeys returns the bubbletea key strings that press s on platform p.
// Combinations a terminal cannot report (anything with Meta, or Shift with a
// Ctrl-letter) are omitted.
func TeaKeys(s Shortcut, p Platform) []string {
	mods := s.Mods(p)
	if mods.Has(ModMeta) {
		return nil
	}
	var out []string
	for _, k := range s.keys {
		name := NormalizeKey(k)
		if n, ok := teaNames[name]; ok {
			name = n
		}
		single := utf8.RuneCountInString(name) == 1 && name != " "

		var b strings.Builder
		if mods.Has(ModAlt) {
			b.WriteString("alt+")
		}
		switch {
		case single && mods.Has(ModCtrl):
			if mods.Has(ModShift) {
				continue
			}
			b.WriteString("ctrl+" + name)
		case single && mods.Has(ModShift):
			b.WriteString(strings.ToUpper(name))
		default:
			if mods.Has(ModCtrl) {
				b.WriteString("ctrl+")
			}
			if mods.Has(ModShift) {
				b.WriteString("shift+")
			}
			b.WriteString(name)
		}
		out = append(out, b.String())
	}
	return out
}

// HelpBinding converts b into a bubbles key.Binding for help rendering.
// The help key is the platform display form; unbound values yield a
// disabled binding.
func HelpBinding(b Binding, desc string, p Platform) key.Binding {
	if b == nil || len(b.Shortcuts()) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	var keys []string
	for _, s := range b.Shortcuts() {
		keys = append(keys, TeaKeys(s, p)...)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(FormatBinding(b, p), desc),
	)
}
