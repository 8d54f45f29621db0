package tui

// Minimum terminal size the demo will draw in.
const (
	MinWidth  = 40
	MinHeight = 10
)

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Layout holds the computed screen regions for a given terminal size.
type Layout struct {
	Bar, Body, Status, Footer Rect
	TooSmall                  bool // true when terminal is below MinWidth×MinHeight
}

// Calculate computes the screen layout for a terminal of the given dimensions.
// Returns a Layout with TooSmall=true below the minimum size.
//
//   - Bar: full width, 1 row at top
//   - Footer: full width, 1 row at bottom (key help)
//   - Status: full width, 1 row above the footer
//   - Body: everything in between (activity log)
func Calculate(width, height int) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}
	return Layout{
		Bar:    Rect{X: 0, Y: 0, Width: width, Height: 1},
		Body:   Rect{X: 0, Y: 1, Width: width, Height: height - 3},
		Status: Rect{X: 0, Y: height - 2, Width: width, Height: 1},
		Footer: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
	}
}
