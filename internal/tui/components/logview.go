package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultLogLimit caps the activity log.
const DefaultLogLimit = 500

// LogView is the scrollable activity log. It wraps bubbles/viewport and
// keeps at most limit lines, dropping the oldest. In follow mode new lines
// scroll the view to the bottom; scrolling up leaves follow mode.
type LogView struct {
	vp     viewport.Model
	lines  []string // rendered (pre-styled) lines
	limit  int
	follow bool
}

// NewLogView creates a LogView with the given dimensions, initially in
// follow mode. A limit of 0 or less uses DefaultLogLimit.
func NewLogView(w, h, limit int) LogView {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return LogView{
		vp:     viewport.New(w, h),
		limit:  limit,
		follow: true,
	}
}

// Append adds pre-rendered lines, trimming the oldest past the limit.
func (v LogView) Append(rendered ...string) LogView {
	lines := append(v.lines[:len(v.lines):len(v.lines)], rendered...)
	if over := len(lines) - v.limit; over > 0 {
		lines = lines[over:]
	}
	v.lines = lines
	return v.refresh()
}

// Clear drops every line.
func (v LogView) Clear() LogView {
	v.lines = nil
	return v.refresh()
}

func (v LogView) refresh() LogView {
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Len returns the number of stored lines.
func (v LogView) Len() int {
	return len(v.lines)
}

// ToggleFollow switches follow mode on or off.
// When turned on, scrolls immediately to the bottom.
func (v LogView) ToggleFollow() LogView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// SetSize resizes the log view to the given dimensions.
func (v LogView) SetSize(w, h int) LogView {
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Following reports whether follow mode is currently active.
func (v LogView) Following() bool {
	return v.follow
}

// Update handles scroll keys and mouse wheel messages.
func (v LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	if v.follow && !v.vp.AtBottom() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			v.follow = false
		}
	}
	if !v.follow && v.vp.AtBottom() {
		if _, ok := msg.(tea.KeyMsg); ok {
			v.follow = true
		}
	}
	return v, cmd
}

// View renders the visible part of the log.
func (v LogView) View() string {
	return v.vp.View()
}
