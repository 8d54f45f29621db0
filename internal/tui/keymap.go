package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
)

// teaKeyNames maps bubbletea key names to shortcut key identifiers.
var teaKeyNames = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"esc":       "Escape",
	"enter":     "Enter",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	" ":         "Space",
}

// EventFromKey converts a bubbletea key press to a shortcut.Event. ok is
// false for pastes and multi-rune input.
func EventFromKey(msg tea.KeyMsg) (shortcut.Event, bool) {
	if msg.Paste {
		return shortcut.Event{}, false
	}
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return shortcut.Event{}, false
		}
		r := msg.Runes[0]
		var mods shortcut.Modifier
		if msg.Alt {
			mods |= shortcut.ModAlt
		}
		if unicode.IsUpper(r) {
			mods |= shortcut.ModShift
		}
		return shortcut.Event{Key: string(r), Mods: mods}, true
	}

	name := msg.String()
	var mods shortcut.Modifier
	for done := false; !done; {
		switch {
		case strings.HasPrefix(name, "alt+") && len(name) > len("alt+"):
			mods |= shortcut.ModAlt
			name = name[len("alt+"):]
		case strings.HasPrefix(name, "ctrl+") && len(name) > len("ctrl+"):
			mods |= shortcut.ModCtrl
			name = name[len("ctrl+"):]
		case strings.HasPrefix(name, "shift+") && len(name) > len("shift+"):
			mods |= shortcut.ModShift
			name = name[len("shift+"):]
		default:
			done = true
		}
	}
	if alias, ok := teaKeyNames[name]; ok {
		name = alias
	}
	if name == "" {
		return shortcut.Event{}, false
	}
	return shortcut.Event{Key: name, Mods: mods}, true
}

// KeyEntry journals a key press.
func KeyEntry(e shortcut.Event) store.Entry {
	return store.Entry{Kind: store.KindKey, Key: e.Key, Mods: e.Mods.String()}
}

// MouseEntry converts a left-button press or release, or motion, into a
// journal entry. Wheel and other buttons report false. A release with no
// button comes from the legacy X10 encoding, which never names the button;
// it counts as a left release.
func MouseEntry(msg tea.MouseMsg) (store.Entry, bool) {
	e := store.Entry{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionMotion:
		e.Kind = store.KindMove
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return store.Entry{}, false
		}
		e.Kind = store.KindDown
	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return store.Entry{}, false
		}
		e.Kind = store.KindClick
	default:
		return store.Entry{}, false
	}
	return e, true
}

// helpKeys implements help.KeyMap for the footer. Short help depends on
// whether a menu is open; full help also lists every bound command.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeys) ShortHelp() []key.Binding  { return k.short }
func (k helpKeys) FullHelp() [][]key.Binding { return k.full }

// menuHelp lists the keys the menu manager handles.
func menuHelp(p shortcut.Platform) []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		shortcut.HelpBinding(shortcut.MustParse("ArrowRight"), "open", p),
		shortcut.HelpBinding(shortcut.MustParse("ArrowLeft"), "back", p),
		shortcut.HelpBinding(shortcut.MustParse("Enter"), "activate", p),
		shortcut.HelpBinding(shortcut.MustParse("Escape"), "close", p),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a-z", "jump")),
	}
}

// barHelp lists the keys the host handles while menus are closed.
func barHelp(titles []string) []key.Binding {
	var mnemonics []string
	for _, t := range titles {
		if r := []rune(t); len(r) > 0 {
			mnemonics = append(mnemonics, "alt+"+strings.ToLower(string(r[0])))
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("f10"), key.WithHelp("F10", "menu")),
		key.NewBinding(key.WithKeys(mnemonics...), key.WithHelp("Alt+letter", "open menu")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "focus")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "quit")),
	}
}

// commandHelp lists every bound command, in columns of size per.
func commandHelp(cmds []Command, p shortcut.Platform, per int) [][]key.Binding {
	var cols [][]key.Binding
	var col []key.Binding
	for _, c := range cmds {
		if c.Shortcut == nil {
			continue
		}
		col = append(col, shortcut.HelpBinding(c.Shortcut, c.Label, p))
		if len(col) == per {
			cols = append(cols, col)
			col = nil
		}
	}
	if len(col) > 0 {
		cols = append(cols, col)
	}
	return cols
}

// keysFor builds the footer key map for the current host state.
func keysFor(h *Host, p shortcut.Platform) helpKeys {
	short := barHelp(h.Titles())
	if h.Stack().IsOpen() {
		short = menuHelp(p)
	}
	full := append([][]key.Binding{short}, commandHelp(h.Commands(), p, 6)...)
	return helpKeys{short: short, full: full}
}
