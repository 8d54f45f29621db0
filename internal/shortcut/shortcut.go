// Package shortcut parses, matches and formats platform-aware keyboard
// shortcuts, and dispatches key events to commands through a Map.
//
// Shortcut text grammar:
//
//	[Primary+|Secondary+][Shift+][Alt+]Key[ Key2 ...]
//
// The modifier run is case-insensitive, in any order, each token at most
// once. The remaining space-separated tokens are alternative physical keys
// for the same binding, matched in listed order. Parsing never fails:
// malformed text produces an unbound Shortcut that matches no event.
package shortcut

import (
	"slices"
	"strings"
)

// Binding is a Shortcut or a *Group. A nil Binding means "unbound".
type Binding interface {
	Shortcuts() []Shortcut
}

// Shortcut is one or more alternative keys sharing a modifier set.
// The zero value is unbound.
type Shortcut struct {
	keys  []string
	accel Accel
	shift bool
	alt   bool
}

// New returns a Shortcut for keys with the given modifiers.
func New(accel Accel, shift, alt bool, keys ...string) Shortcut {
	var ks []string
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			ks = append(ks, k)
		}
	}
	return Shortcut{keys: ks, accel: accel, shift: shift, alt: alt}
}

// modifierTokens maps grammar tokens (lowercase) to their role.
var modifierTokens = map[string]string{
	"primary":   "primary",
	"secondary": "secondary",
	"shift":     "shift",
	"alt":       "alt",
}

// Parse parses shortcut text. Empty or malformed text yields an unbound
// Shortcut; callers treat that as "no binding available".
func Parse(text string) Shortcut {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Shortcut{}
	}

	var s Shortcut
	seen := make(map[string]bool, 4)
	first := tokens[0]
	for {
		i := strings.IndexByte(first, '+')
		if i <= 0 {
			break
		}
		role, ok := modifierTokens[strings.ToLower(first[:i])]
		if !ok {
			break
		}
		if seen[role] {
			return Shortcut{}
		}
		seen[role] = true
		first = first[i+1:]
	}
	if seen["primary"] && seen["secondary"] {
		return Shortcut{}
	}
	// A leftover "+" inside a multi-character key means an unknown modifier.
	if first == "" || (len(first) > 1 && strings.Contains(first, "+")) {
		return Shortcut{}
	}

	switch {
	case seen["primary"]:
		s.accel = AccelPrimary
	case seen["secondary"]:
		s.accel = AccelSecondary
	}
	s.shift = seen["shift"]
	s.alt = seen["alt"]
	s.keys = append([]string{first}, tokens[1:]...)
	return s
}

// MustParse parses text and panics if the result is unbound.
// Use only for known-valid literals in initialization code.
func MustParse(text string) Shortcut {
	s := Parse(text)
	if !s.Bound() {
		panic("shortcut: invalid shortcut text: " + text)
	}
	return s
}

// Keys returns a copy of the alternative key identifiers.
func (s Shortcut) Keys() []string {
	return slices.Clone(s.keys)
}

// Accel returns the accelerator requirement.
func (s Shortcut) Accel() Accel { return s.accel }

// Shift reports whether Shift is required.
func (s Shortcut) Shift() bool { return s.shift }

// Alt reports whether Alt is required.
func (s Shortcut) Alt() bool { return s.alt }

// Bound reports whether s has at least one key.
func (s Shortcut) Bound() bool { return len(s.keys) > 0 }

// Shortcuts implements Binding.
func (s Shortcut) Shortcuts() []Shortcut {
	if !s.Bound() {
		return nil
	}
	return []Shortcut{s}
}

// TestModifiers reports whether the modifiers held in e satisfy s on
// platform p. Secondary requires the secondary accelerator, Primary requires
// the primary one, None forbids both. Shift and Alt must match exactly.
func (s Shortcut) TestModifiers(e Event, p Platform) bool {
	switch s.accel {
	case AccelSecondary:
		if !p.IsSecondary(e) {
			return false
		}
	case AccelPrimary:
		if !p.IsPrimary(e) {
			return false
		}
	default:
		if p.IsPrimary(e) || p.IsSecondary(e) {
			return false
		}
	}
	return s.shift == e.Mods.Has(ModShift) && s.alt == e.Mods.Has(ModAlt)
}

// Matches reports whether e presses one of the keys of s with matching
// modifiers.
func (s Shortcut) Matches(e Event, p Platform) bool {
	key := NormalizeKey(e.Key)
	for _, k := range s.keys {
		if NormalizeKey(k) == key {
			return s.TestModifiers(e, p)
		}
	}
	return false
}

// Equal reports whether s and o are structurally identical.
func (s Shortcut) Equal(o Shortcut) bool {
	return s.accel == o.accel && s.shift == o.shift && s.alt == o.alt && slices.Equal(s.keys, o.keys)
}

// Mods returns the physical modifiers s requires on platform p.
func (s Shortcut) Mods(p Platform) Modifier {
	m := p.Resolve(s.accel)
	if s.shift {
		m = m.With(ModShift)
	}
	if s.alt {
		m = m.With(ModAlt)
	}
	return m
}

// Group is an ordered, non-empty set of alternative shortcuts for one
// command. A nil *Group is unbound.
type Group struct {
	items []Shortcut
}

// NewGroup returns a Group of the bound shortcuts in items, or nil if none
// are bound.
func NewGroup(items ...Shortcut) *Group {
	var bound []Shortcut
	for _, s := range items {
		if s.Bound() {
			bound = append(bound, s)
		}
	}
	if len(bound) == 0 {
		return nil
	}
	return &Group{items: bound}
}

// ParseGroup parses each text into a Shortcut and wraps them in a Group.
// It returns nil for an empty list or when no text parses to a bound
// shortcut.
func ParseGroup(texts ...string) *Group {
	if len(texts) == 0 {
		return nil
	}
	items := make([]Shortcut, 0, len(texts))
	for _, t := range texts {
		items = append(items, Parse(t))
	}
	return NewGroup(items...)
}

// Shortcuts implements Binding.
func (g *Group) Shortcuts() []Shortcut {
	if g == nil {
		return nil
	}
	return slices.Clone(g.items)
}

// Len returns the number of alternatives.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.items)
}

// Equal reports whether a and b bind the same shortcuts in the same order.
// Two unbound values are equal.
func Equal(a, b Binding) bool {
	var as, bs []Shortcut
	if a != nil {
		as = a.Shortcuts()
	}
	if b != nil {
		bs = b.Shortcuts()
	}
	return slices.EqualFunc(as, bs, Shortcut.Equal)
}
