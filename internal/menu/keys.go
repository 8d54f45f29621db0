package menu

import (
	"strings"
	"unicode"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
)

// KeyResult tells the host what happened to a key event.
type KeyResult int

const (
	// KeyNotBound means no menu command uses the key; the host may handle it.
	KeyNotBound KeyResult = iota

	// KeyDeclined means a menu command matched but chose not to act (Right
	// on a leaf, Left on the root). The host should handle it, e.g. by
	// moving to a neighbouring menu bar entry.
	KeyDeclined

	// KeyCaptured means the key was consumed without changing state.
	KeyCaptured

	// KeyHandled means the key changed the menu state.
	KeyHandled
)

// Propagate reports whether the host should keep processing the event.
func (r KeyResult) Propagate() bool {
	return r == KeyNotBound || r == KeyDeclined
}

func (r KeyResult) String() string {
	switch r {
	case KeyDeclined:
		return "declined"
	case KeyCaptured:
		return "captured"
	case KeyHandled:
		return "handled"
	default:
		return "not-bound"
	}
}

// keyCommand is a menu navigation command. run returns the next stack, or
// ok=false to decline.
type keyCommand struct {
	name    string
	binding shortcut.Binding
	run     func(m *Manager, s *Stack) (next *Stack, ok bool)
}

func keyCommandBinding(c keyCommand) shortcut.Binding { return c.binding }

var keyCommands = []keyCommand{
	{"close", shortcut.MustParse("Escape"), func(_ *Manager, s *Stack) (*Stack, bool) {
		return s.CloseOne(), true
	}},
	{"previous", shortcut.MustParse("ArrowUp"), func(_ *Manager, s *Stack) (*Stack, bool) {
		return s.MoveFocus(func(items *descendant.Collection[*Item], cur *Item) *Item {
			if cur == nil {
				return orNil(items.GetLastEnabled())
			}
			return orNil(items.GetPrevious(cur))
		}), true
	}},
	{"next", shortcut.MustParse("ArrowDown"), func(_ *Manager, s *Stack) (*Stack, bool) {
		return s.MoveFocus(func(items *descendant.Collection[*Item], cur *Item) *Item {
			if cur == nil {
				return orNil(items.GetFirstEnabled())
			}
			return orNil(items.GetNext(cur))
		}), true
	}},
	{"first", shortcut.MustParse("Home PageUp"), func(_ *Manager, s *Stack) (*Stack, bool) {
		return s.MoveFocus(func(items *descendant.Collection[*Item], cur *Item) *Item {
			return orKeep(cur)(items.GetFirstEnabled())
		}), true
	}},
	{"last", shortcut.MustParse("End PageDown"), func(_ *Manager, s *Stack) (*Stack, bool) {
		return s.MoveFocus(func(items *descendant.Collection[*Item], cur *Item) *Item {
			return orKeep(cur)(items.GetLastEnabled())
		}), true
	}},
	{"open", shortcut.MustParse("ArrowRight"), func(m *Manager, s *Stack) (*Stack, bool) {
		it := s.Focus()
		if it == nil || it.Disabled || !it.HasSubmenu() {
			return s, false
		}
		m.firstNeedsFocus = true
		return s.OpenSubmenu(it), true
	}},
	{"back", shortcut.MustParse("ArrowLeft"), func(_ *Manager, s *Stack) (*Stack, bool) {
		if s.Depth() <= 1 {
			return s, false
		}
		return s.CloseOne(), true
	}},
	{"activate", shortcut.MustParse("Enter Space"), func(m *Manager, s *Stack) (*Stack, bool) {
		m.firstNeedsFocus = true
		return s.ActivateCurrent(), true
	}},
}

func orNil(it *Item, ok bool) *Item {
	if !ok {
		return nil
	}
	return it
}

func orKeep(cur *Item) func(*Item, bool) *Item {
	return func(it *Item, ok bool) *Item {
		if !ok {
			return cur
		}
		return it
	}
}

// typeAhead moves focus to the next enabled item in the deepest menu whose
// label starts with r. A single match is focused and activated.
func (m *Manager) typeAhead(s *Stack, r rune) *Stack {
	deepest := s.Deepest()
	prefix := string(unicode.ToLower(r))
	matches := func(it *Item) bool {
		return !it.Disabled && strings.HasPrefix(strings.ToLower(strings.TrimSpace(it.Label)), prefix)
	}

	candidates := deepest.Menu.Items.Filter(matches)
	switch len(candidates) {
	case 0:
		return s
	case 1:
		m.firstNeedsFocus = true
		return s.MoveFocus(FocusItem(candidates[0])).ActivateCurrent()
	}

	// Several matches: step to the first match after the current focus in
	// visual order, wrapping.
	items := deepest.Menu.Items.Items()
	start := -1
	for i, it := range items {
		if it == s.Focus() {
			start = i
			break
		}
	}
	for i := 1; i <= len(items); i++ {
		it := items[(start+i+len(items))%len(items)]
		if matches(it) {
			return s.MoveFocus(FocusItem(it))
		}
	}
	return s
}
