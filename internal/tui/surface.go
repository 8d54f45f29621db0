package tui

import (
	"github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"
)

// Node is one element of the drawing surface: the bar, a bar title, a menu
// box or a menu row. Nodes form a tree; tree order is visual order.
type Node struct {
	Name string
	Rect Rect

	parent   *Node
	children []*Node
	path     []int
	shown    bool
}

// Add appends a child node.
func (n *Node) Add(name string) *Node {
	c := &Node{
		Name:   name,
		parent: n,
		path:   append(append([]int(nil), n.path...), len(n.children)),
		shown:  true,
	}
	n.children = append(n.children, c)
	return c
}

// Parent returns the enclosing node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in tree order.
func (n *Node) Children() []*Node { return n.children }

// Shown reports whether the node takes part in hit-testing.
func (n *Node) Shown() bool { return n.shown }

// SetShown shows or hides the node and its subtree.
func (n *Node) SetShown(shown bool) { n.shown = shown }

// Within reports whether n is anc or one of its descendants.
func (n *Node) Within(anc *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == anc {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}

// Surface is the host geometry: containment is tree ancestry and visual
// order is tree order.
type Surface struct {
	root *Node
}

// NewSurface returns a surface holding only its root node.
func NewSurface() *Surface {
	return &Surface{root: &Node{Name: "screen", shown: true}}
}

// Root returns the screen node.
func (s *Surface) Root() *Node { return s.root }

// Compare implements descendant.Geometry.
func (s *Surface) Compare(a, b descendant.Element) descendant.Order {
	na, okA := a.(*Node)
	nb, okB := b.(*Node)
	if !okA || !okB || na == nil || nb == nil || na == nb {
		return descendant.Unrelated
	}
	if na.root() != nb.root() {
		return descendant.Unrelated
	}
	for i := 0; i < len(na.path) && i < len(nb.path); i++ {
		switch {
		case na.path[i] < nb.path[i]:
			return descendant.Before
		case na.path[i] > nb.path[i]:
			return descendant.After
		}
	}
	// An ancestor precedes its descendants.
	if len(na.path) < len(nb.path) {
		return descendant.Before
	}
	return descendant.After
}

// Contains implements descendant.Geometry.
func (s *Surface) Contains(container, el descendant.Element) bool {
	c, okC := container.(*Node)
	n, okN := el.(*Node)
	if !okC || !okN || c == nil || n == nil {
		return false
	}
	return n.Within(c)
}

// HitTest returns the deepest shown node under (x, y). Later siblings are
// drawn on top and win. The root is returned when nothing else is hit.
func (s *Surface) HitTest(x, y int) *Node {
	if hit := hitTest(s.root, x, y); hit != nil {
		return hit
	}
	return s.root
}

func hitTest(n *Node, x, y int) *Node {
	if !n.shown {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	if n.Rect.Contains(x, y) {
		return n
	}
	return nil
}

func (n *Node) root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}
