package menu

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"
)

// Stack is an immutable snapshot of the open menu chain and the item that
// holds logical focus. Every transition returns a new *Stack, or the
// receiver itself when nothing changes, so callers detect changes by
// pointer comparison.
//
// Invariants: open[i+1].Parent belongs to open[i].Menu; a non-nil focus is
// an item of the deepest open menu; an empty chain has no focus.
type Stack struct {
	env   *env
	open  []*OpenMenu
	focus *Item
}

// env is shared by every snapshot derived from the same NewStack call.
type env struct {
	log      zerolog.Logger
	schedule func(func())
}

// NewStack returns a closed stack. Protocol violations are logged to log.
// schedule runs an activated item's OnActivate on the next tick; nil runs
// it synchronously.
func NewStack(log zerolog.Logger, schedule func(func())) *Stack {
	if schedule == nil {
		schedule = func(f func()) { f() }
	}
	return &Stack{env: &env{log: log, schedule: schedule}}
}

// Open returns a copy of the open chain, root first.
func (s *Stack) Open() []*OpenMenu {
	return slices.Clone(s.open)
}

// Focus returns the focused item, or nil.
func (s *Stack) Focus() *Item { return s.focus }

// IsOpen reports whether at least one menu is open.
func (s *Stack) IsOpen() bool { return len(s.open) > 0 }

// Depth returns the number of open menus.
func (s *Stack) Depth() int { return len(s.open) }

// Deepest returns the innermost open menu, or nil when closed.
func (s *Stack) Deepest() *OpenMenu {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[len(s.open)-1]
}

// Root returns the root open menu, or nil when closed.
func (s *Stack) Root() *OpenMenu {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[0]
}

// IndexOf returns the position of om in the chain, or -1.
func (s *Stack) IndexOf(om *OpenMenu) int {
	return slices.Index(s.open, om)
}

// IsSubmenuOpen reports whether it is the parent of an open submenu.
func (s *Stack) IsSubmenuOpen(it *Item) bool {
	for _, om := range s.open[min(1, len(s.open)):] {
		if om.Parent == it {
			return true
		}
	}
	return false
}

func (s *Stack) with(open []*OpenMenu, focus *Item) *Stack {
	return &Stack{env: s.env, open: open, focus: focus}
}

// OpenRoot discards any prior state and opens m as the only menu.
func (s *Stack) OpenRoot(m *Menu) *Stack {
	if m == nil {
		s.violation("open_root", nil, nil)
		return s
	}
	s.env.log.Debug().Str("menu", m.Label).Msg("menu: open root")
	return s.with([]*OpenMenu{{Menu: m}}, nil)
}

// OpenSubmenu opens parent's submenu below the open menu that owns parent,
// closing anything deeper first. Focus is cleared.
func (s *Stack) OpenSubmenu(parent *Item) *Stack {
	if parent == nil || parent.Submenu == nil {
		s.violation("open_submenu", parent, nil)
		return s
	}
	i := s.ownerIndex(parent)
	if i < 0 {
		s.violation("open_submenu", parent, nil)
		return s
	}
	open := make([]*OpenMenu, i+1, i+2)
	copy(open, s.open[:i+1])
	open = append(open, &OpenMenu{Menu: parent.Submenu, Parent: parent})
	s.env.log.Debug().
		Str("item", parent.Label).
		Str("menu", parent.Submenu.Label).
		Int("depth", len(open)).
		Msg("menu: open submenu")
	return s.with(open, nil)
}

// ownerIndex searches deepest first for the open menu owning it.
func (s *Stack) ownerIndex(it *Item) int {
	for i := len(s.open) - 1; i >= 0; i-- {
		if s.open[i].Menu.Owns(it) {
			return i
		}
	}
	return -1
}

// ActivateCurrent activates the focused item. A submenu item opens its
// submenu. A leaf item closes every menu and its OnActivate is scheduled
// for the next tick, after the caller has committed the closed stack.
func (s *Stack) ActivateCurrent() *Stack {
	it := s.focus
	if it == nil || it.Disabled {
		return s
	}
	if it.HasSubmenu() {
		return s.OpenSubmenu(it)
	}
	s.env.log.Debug().Str("item", it.Label).Msg("menu: activate")
	if it.OnActivate != nil {
		s.env.schedule(it.OnActivate)
	}
	return s.CloseAll()
}

// CloseAll returns the closed stack.
func (s *Stack) CloseAll() *Stack {
	if len(s.open) == 0 && s.focus == nil {
		return s
	}
	return s.with(nil, nil)
}

// CloseOne closes the deepest menu and focuses the item that opened it.
// Closing the root yields the closed stack; on a closed stack it is a no-op.
func (s *Stack) CloseOne() *Stack {
	if len(s.open) == 0 {
		return s
	}
	last := s.open[len(s.open)-1]
	if len(s.open) == 1 {
		return s.with(nil, nil)
	}
	return s.with(slices.Clone(s.open[:len(s.open)-1]), last.Parent)
}

// CloseUpTo closes every menu deeper than om. Focus is kept when it still
// belongs to om and cleared otherwise.
func (s *Stack) CloseUpTo(om *OpenMenu) *Stack {
	i := s.IndexOf(om)
	if i < 0 {
		var label string
		if om != nil {
			label = om.Menu.Label
		}
		s.env.log.Warn().Str("op", "close_up_to").Str("menu", label).
			Msg("menu: protocol violation: menu is not open")
		return s
	}
	if i == len(s.open)-1 {
		return s
	}
	focus := s.focus
	if focus != nil && !om.Menu.Items.Has(focus) {
		focus = nil
	}
	return s.with(slices.Clone(s.open[:i+1]), focus)
}

// MoveFocus sets focus to the item cb picks from the deepest menu. cb
// receives the deepest menu's items and the current focus. A nil result
// clears focus; an item outside the deepest menu is a protocol violation.
func (s *Stack) MoveFocus(cb func(items *descendant.Collection[*Item], current *Item) *Item) *Stack {
	deepest := s.Deepest()
	if deepest == nil {
		return s
	}
	next := cb(deepest.Menu.Items, s.focus)
	if next == s.focus {
		return s
	}
	if next != nil && !deepest.Menu.Items.Has(next) {
		s.violation("move_focus", next, deepest.Menu)
		return s
	}
	return s.with(s.open, next)
}

// FocusItem is a MoveFocus callback that always picks it.
func FocusItem(it *Item) func(*descendant.Collection[*Item], *Item) *Item {
	return func(*descendant.Collection[*Item], *Item) *Item { return it }
}

func (s *Stack) violation(op string, it *Item, m *Menu) {
	ev := s.env.log.Warn().Str("op", op)
	if it != nil {
		ev = ev.Str("item", it.Label)
	}
	if m != nil {
		ev = ev.Str("menu", m.Label)
	}
	ev.Msg("menu: protocol violation: item is not part of the open chain")
}

// Path returns the labels of the open menus, root first.
func (s *Stack) Path() []string {
	out := make([]string, len(s.open))
	for i, om := range s.open {
		out[i] = om.Menu.Label
	}
	return out
}

// String renders the chain and focus, e.g. "File > Recent [notes.txt]".
func (s *Stack) String() string {
	if len(s.open) == 0 {
		return "(closed)"
	}
	var b strings.Builder
	b.WriteString(strings.Join(s.Path(), " > "))
	if s.focus != nil {
		b.WriteString(" [" + s.focus.Label + "]")
	}
	return b.String()
}

// sameChain reports whether a and b hold the same open menus.
func sameChain(a, b *Stack) bool {
	return slices.Equal(a.open, b.open)
}
