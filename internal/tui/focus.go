package tui

// FocusTarget identifies which region owns the keyboard while no menu is
// open. An open menu always takes the keyboard first.
type FocusTarget int

const (
	FocusBar FocusTarget = iota // menu bar: arrows move between titles
	FocusLog                    // activity log: arrows scroll

	focusCount
)

// Next returns the next focus target in forward tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % focusCount
}

// Prev returns the previous focus target in reverse tab order.
func (f FocusTarget) Prev() FocusTarget {
	return (f + focusCount - 1) % focusCount
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusBar:
		return "bar"
	case FocusLog:
		return "log"
	default:
		return "unknown"
	}
}
