// Package descendant keeps an ordered registry of navigable items (menu
// entries, toolbar buttons) and answers directional navigation queries.
//
// Items register and unregister as the host mounts and unmounts them. The
// collection re-sorts itself lazily, by the host's visual order, the first
// time it is queried after a batch of changes.
package descendant

import "slices"

// Element identifies a visual element owned by the host. Elements must be
// comparable (pointers, strings, ids).
type Element any

// Order is the visual relation between two elements.
type Order int

const (
	Before    Order = -1 // a is placed before b
	Unrelated Order = 0  // no defined order
	After     Order = 1  // a is placed after b
)

// Geometry is supplied by the host.
type Geometry interface {
	// Compare returns the visual order of a relative to b.
	Compare(a, b Element) Order

	// Contains reports whether container visually contains el.
	Contains(container, el Element) bool
}

// Handle is a registered item.
type Handle interface {
	comparable

	// Ref returns the item's visual element.
	Ref() Element

	// IsDisabled reports whether navigation should skip the item.
	IsDisabled() bool
}

// registration is one entry of the registration log.
type registration[T any] struct {
	h   T
	seq uint64
}

// Collection is an insertion-tracked set of handles that sorts itself into
// visual order on demand. It is not safe for concurrent use.
type Collection[T Handle] struct {
	geo Geometry

	// registered maps live members to their registration number; pending
	// records registration order and may hold stale entries until the next
	// sort or compaction.
	registered map[T]uint64
	pending    []registration[T]
	seq        uint64

	sorted bool
	items  []T
	index  map[T]int
}

// New returns an empty collection ordered by geo.
func New[T Handle](geo Geometry) *Collection[T] {
	return &Collection[T]{
		geo:        geo,
		registered: make(map[T]uint64),
		sorted:     true,
		index:      make(map[T]int),
	}
}

// Geometry returns the host geometry the collection sorts by.
func (c *Collection[T]) Geometry() Geometry {
	return c.geo
}

// Register adds h. Registering a present handle is a no-op.
func (c *Collection[T]) Register(h T) {
	if _, ok := c.registered[h]; ok {
		return
	}
	c.seq++
	c.registered[h] = c.seq
	c.pending = append(c.pending, registration[T]{h: h, seq: c.seq})
	c.sorted = false
}

// Unregister removes h. Removing an absent handle is a no-op.
func (c *Collection[T]) Unregister(h T) {
	if _, ok := c.registered[h]; !ok {
		return
	}
	delete(c.registered, h)
	c.sorted = false
	if len(c.pending) > 2*len(c.registered) {
		c.compact()
	}
}

// compact drops stale entries from the registration log.
func (c *Collection[T]) compact() {
	c.pending = slices.DeleteFunc(c.pending, func(r registration[T]) bool {
		return !c.live(r)
	})
}

func (c *Collection[T]) live(r registration[T]) bool {
	seq, ok := c.registered[r.h]
	return ok && seq == r.seq
}

// Has reports whether h is registered.
func (c *Collection[T]) Has(h T) bool {
	_, ok := c.registered[h]
	return ok
}

// Len returns the number of registered handles.
func (c *Collection[T]) Len() int {
	return len(c.registered)
}

// Items returns all handles in visual order.
func (c *Collection[T]) Items() []T {
	c.sortIfNeeded()
	return slices.Clone(c.items)
}

// sortIfNeeded rebuilds items from the registration log and sorts it by the
// host's visual order. Unrelated pairs keep registration order.
func (c *Collection[T]) sortIfNeeded() {
	if c.sorted {
		return
	}
	c.compact()
	live := make([]T, len(c.pending))
	for i, r := range c.pending {
		live[i] = r.h
	}

	slices.SortStableFunc(live, func(a, b T) int {
		return int(c.geo.Compare(a.Ref(), b.Ref()))
	})
	c.items = live
	clear(c.index)
	for i, h := range live {
		c.index[h] = i
	}
	c.sorted = true
}

// GetFirst returns the first handle in visual order.
func (c *Collection[T]) GetFirst() (T, bool) {
	c.sortIfNeeded()
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[0], true
}

// GetLast returns the last handle in visual order.
func (c *Collection[T]) GetLast() (T, bool) {
	c.sortIfNeeded()
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[len(c.items)-1], true
}

// GetFirstEnabled returns the first handle that is not disabled.
func (c *Collection[T]) GetFirstEnabled() (T, bool) {
	c.sortIfNeeded()
	for _, h := range c.items {
		if !h.IsDisabled() {
			return h, true
		}
	}
	var zero T
	return zero, false
}

// GetLastEnabled returns the last handle that is not disabled.
func (c *Collection[T]) GetLastEnabled() (T, bool) {
	c.sortIfNeeded()
	for i := len(c.items) - 1; i >= 0; i-- {
		if !c.items[i].IsDisabled() {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// GetNext returns the next enabled handle after current, wrapping around.
// When current is the only enabled handle it is returned itself. When
// current is not registered the scan starts before the first handle.
func (c *Collection[T]) GetNext(current T) (T, bool) {
	return c.scan(current, 1, nil)
}

// GetPrevious returns the previous enabled handle before current, wrapping
// around. See GetNext.
func (c *Collection[T]) GetPrevious(current T) (T, bool) {
	return c.scan(current, -1, nil)
}

// GetNextInParent is GetNext restricted to handles visually contained in
// container. Unlike GetNext it never wraps back to current: if no other
// contained enabled handle exists it reports false.
func (c *Collection[T]) GetNextInParent(container Element, current T) (T, bool) {
	return c.scan(current, 1, func(h T) bool {
		return c.geo.Contains(container, h.Ref())
	})
}

// GetPreviousInParent is the backwards form of GetNextInParent.
func (c *Collection[T]) GetPreviousInParent(container Element, current T) (T, bool) {
	return c.scan(current, -1, func(h T) bool {
		return c.geo.Contains(container, h.Ref())
	})
}

func (c *Collection[T]) scan(current T, step int, within func(T) bool) (T, bool) {
	c.sortIfNeeded()
	var zero T
	n := len(c.items)
	if n == 0 {
		return zero, false
	}

	start, found := c.index[current]
	if !found {
		// Begin just outside the range so the first probe lands on an end.
		if step > 0 {
			start = -1
		} else {
			start = n
		}
	}

	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		h := c.items[idx]
		if found && idx == start {
			break
		}
		if h.IsDisabled() {
			continue
		}
		if within != nil && !within(h) {
			continue
		}
		return h, true
	}

	if found && within == nil {
		return current, true
	}
	return zero, false
}

// Filter returns the handles matching pred in visual order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.sortIfNeeded()
	var out []T
	for _, h := range c.items {
		if pred(h) {
			out = append(out, h)
		}
	}
	return out
}

// FindManagedRef returns the handle owning target: the handle whose element
// is target, or failing that the first handle whose element contains it.
func (c *Collection[T]) FindManagedRef(target Element) (T, bool) {
	c.sortIfNeeded()
	var zero T
	if target == nil {
		return zero, false
	}
	for _, h := range c.items {
		if h.Ref() == target {
			return h, true
		}
	}
	for _, h := range c.items {
		if c.geo.Contains(h.Ref(), target) {
			return h, true
		}
	}
	return zero, false
}
