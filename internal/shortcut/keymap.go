package shortcut

// Entry pairs a command with one of its shortcuts.
type Entry[T any] struct {
	Command  T
	Shortcut Shortcut
}

// Map dispatches key events to commands. It is built once from a fixed
// command list and is safe for concurrent lookups.
type Map[T any] struct {
	platform Platform
	index    map[string][]Entry[T]
	entries  []Entry[T]
}

// NewMap indexes every shortcut of every command under each of its key
// alternatives. Bucket order follows command order, which is the tie-break
// for overlapping bindings. getShortcut may return nil for unbound commands.
func NewMap[T any](commands []T, getShortcut func(T) Binding, p Platform) *Map[T] {
	m := &Map[T]{
		platform: p,
		index:    make(map[string][]Entry[T]),
	}
	for _, cmd := range commands {
		b := getShortcut(cmd)
		if b == nil {
			continue
		}
		for _, s := range b.Shortcuts() {
			e := Entry[T]{Command: cmd, Shortcut: s}
			m.entries = append(m.entries, e)
			for _, k := range s.keys {
				key := NormalizeKey(k)
				m.index[key] = append(m.index[key], e)
			}
		}
	}
	return m
}

// Get returns the first command bound to e's key whose modifiers match e.
func (m *Map[T]) Get(e Event) (T, bool) {
	for _, c := range m.index[NormalizeKey(e.Key)] {
		if c.Shortcut.TestModifiers(e, m.platform) {
			return c.Command, true
		}
	}
	var zero T
	return zero, false
}

// Entries returns every command/shortcut pair in registration order.
func (m *Map[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(m.entries))
	copy(out, m.entries)
	return out
}

// Platform returns the platform the map resolves accelerators for.
func (m *Map[T]) Platform() Platform {
	return m.platform
}
