package menu

import "github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"

// Item is one entry of a rendered menu. The host creates an Item per
// rendered entry and registers it with its Menu on mount.
type Item struct {
	// Element is the host's visual element for the entry.
	Element descendant.Element

	// Label is used for type-ahead and diagnostics.
	Label string

	// Disabled items are skipped by navigation and never activate.
	Disabled bool

	// Submenu, when set, is opened instead of running OnActivate.
	Submenu *Menu

	// OnActivate runs one scheduler tick after the menus have closed.
	OnActivate func()
}

// Ref implements descendant.Handle.
func (it *Item) Ref() descendant.Element { return it.Element }

// IsDisabled implements descendant.Handle.
func (it *Item) IsDisabled() bool { return it.Disabled }

// HasSubmenu reports whether activating it opens a submenu.
func (it *Item) HasSubmenu() bool { return it.Submenu != nil }

func (it *Item) String() string {
	if it == nil {
		return "<nil>"
	}
	return it.Label
}

// Menu is a rendered popup: its visual element plus the collection of
// items mounted inside it.
type Menu struct {
	Element descendant.Element
	Label   string
	Items   *descendant.Collection[*Item]
}

// NewMenu returns an empty menu whose items are ordered by geo.
func NewMenu(el descendant.Element, label string, geo descendant.Geometry) *Menu {
	return &Menu{
		Element: el,
		Label:   label,
		Items:   descendant.New[*Item](geo),
	}
}

// Add registers items with the menu.
func (m *Menu) Add(items ...*Item) {
	for _, it := range items {
		m.Items.Register(it)
	}
}

// Remove unregisters items from the menu.
func (m *Menu) Remove(items ...*Item) {
	for _, it := range items {
		m.Items.Unregister(it)
	}
}

// Contains reports whether el is the menu's element or lies inside it.
func (m *Menu) Contains(el descendant.Element) bool {
	if el == nil {
		return false
	}
	if el == m.Element {
		return true
	}
	return m.Items.Geometry().Contains(m.Element, el)
}

// Owns reports whether it belongs to the menu, either registered with it or
// visually contained by it.
func (m *Menu) Owns(it *Item) bool {
	if it == nil {
		return false
	}
	return m.Items.Has(it) || m.Contains(it.Element)
}

func (m *Menu) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.Label
}

// OpenMenu is one link of the open chain. Parent is nil only for the root.
type OpenMenu struct {
	Menu   *Menu
	Parent *Item
}
