package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"
)

// box is a synthetic visual element; pos orders it, parent contains it.
type box struct {
	name   string
	pos    int
	parent *box
}

type treeGeometry struct{}

func (treeGeometry) Compare(a, b descendant.Element) descendant.Order {
	pa, pb := a.(*box).pos, b.(*box).pos
	switch {
	case pa < pb:
		return descendant.Before
	case pa > pb:
		return descendant.After
	}
	return descendant.Unrelated
}

func (treeGeometry) Contains(container, el descendant.Element) bool {
	c, ok := container.(*box)
	if !ok {
		return false
	}
	n, ok := el.(*box)
	for ok && n != nil {
		if n == c {
			return true
		}
		n = n.parent
	}
	return false
}

// outside is an element contained by no menu.
var outside = &box{name: "outside", pos: -1}

// buildMenu creates a menu whose items are laid out in label order. A label
// starting with "-" is disabled.
func buildMenu(name string, labels ...string) *Menu {
	el := &box{name: name}
	m := NewMenu(el, name, treeGeometry{})
	// Register in reverse so the collection has to sort.
	for i := len(labels) - 1; i >= 0; i-- {
		label := labels[i]
		disabled := false
		if label[0] == '-' {
			label = label[1:]
			disabled = true
		}
		m.Add(&Item{
			Element:  &box{name: label, pos: i, parent: el},
			Label:    label,
			Disabled: disabled,
		})
	}
	return m
}

// item returns the item labelled label in m.
func item(t *testing.T, m *Menu, label string) *Item {
	t.Helper()
	for _, it := range m.Items.Items() {
		if it.Label == label {
			return it
		}
	}
	t.Fatalf("menu %s has no item %q", m.Label, label)
	return nil
}

// checkInvariants asserts the structural invariants of s.
func checkInvariants(t *testing.T, s *Stack) {
	t.Helper()
	open := s.Open()
	if len(open) == 0 {
		assert.Nil(t, s.Focus(), "closed stack must have no focus")
		return
	}
	assert.Nil(t, open[0].Parent, "root has no parent item")
	for i := 1; i < len(open); i++ {
		assert.True(t, open[i-1].Menu.Owns(open[i].Parent),
			"%s must be owned by %s", open[i].Parent, open[i-1].Menu)
		assert.Same(t, open[i].Parent.Submenu, open[i].Menu)
	}
	if f := s.Focus(); f != nil {
		assert.True(t, open[len(open)-1].Menu.Items.Has(f),
			"focus %s must be in the deepest menu", f)
	}
}

type mockListeners struct {
	mock.Mock
}

func (l *mockListeners) Attach() { l.Called() }
func (l *mockListeners) Detach() { l.Called() }

func newMockListeners(t *testing.T) *mockListeners {
	l := &mockListeners{}
	l.Test(t)
	l.On("Attach").Return()
	l.On("Detach").Return()
	return l
}
