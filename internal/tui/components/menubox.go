package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// submenuArrow marks rows that open a submenu.
const submenuArrow = "▸"

// MenuStyles styles a MenuBox.
type MenuStyles struct {
	Box      lipgloss.Style // border and background
	Item     lipgloss.Style
	Hint     lipgloss.Style // shortcut text
	Focused  lipgloss.Style
	Expanded lipgloss.Style // row whose submenu is open but not focused
	Disabled lipgloss.Style
}

// DefaultMenuStyles derives menu styles from an accent color.
func DefaultMenuStyles(accent lipgloss.Color) MenuStyles {
	bg := lipgloss.Color("#262626")
	return MenuStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			BorderBackground(bg),
		Item:     lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#E4E4E4")),
		Hint:     lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#888888")),
		Focused:  lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		Expanded: lipgloss.NewStyle().Background(lipgloss.Color("#4E4E4E")).Foreground(lipgloss.Color("#FFFFFF")),
		Disabled: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#5F5F5F")),
	}
}

// MenuRow is one rendered menu entry.
type MenuRow struct {
	Label    string
	Hint     string
	Disabled bool
	Submenu  bool
	Focused  bool
	Expanded bool
}

// MenuBox renders a bordered popup menu.
type MenuBox struct {
	Rows   []MenuRow
	Styles MenuStyles
}

// innerWidth is the content width: " label  hint ▸ ", at least one space
// after the label and two before the hint column.
func (b MenuBox) innerWidth() int {
	label, hint := 0, 0
	for _, r := range b.Rows {
		label = max(label, ansi.StringWidth(r.Label))
		hint = max(hint, ansi.StringWidth(r.Hint))
	}
	w := label + 5
	if hint > 0 {
		w += hint + 1
	}
	return max(w, 8)
}

// Width returns the rendered width including the border.
func (b MenuBox) Width() int {
	return b.innerWidth() + 2
}

// Height returns the rendered height including the border.
func (b MenuBox) Height() int {
	return max(len(b.Rows), 1) + 2
}

// View renders the box. Every line has exactly Width() cells.
func (b MenuBox) View() string {
	inner := b.innerWidth()
	lines := make([]string, 0, len(b.Rows))
	for _, r := range b.Rows {
		lines = append(lines, b.renderRow(r, inner))
	}
	if len(lines) == 0 {
		lines = append(lines, b.Styles.Disabled.Render(pad(" (empty)", inner)))
	}
	return b.Styles.Box.Render(strings.Join(lines, "\n"))
}

func (b MenuBox) renderRow(r MenuRow, inner int) string {
	arrow := " "
	if r.Submenu {
		arrow = submenuArrow
	}
	tail := r.Hint + " " + arrow + " "
	gap := inner - 1 - ansi.StringWidth(r.Label) - ansi.StringWidth(tail)
	text := " " + r.Label + strings.Repeat(" ", max(gap, 1)) + tail

	switch {
	case r.Focused:
		return b.Styles.Focused.Render(pad(text, inner))
	case r.Disabled:
		return b.Styles.Disabled.Render(pad(text, inner))
	case r.Expanded:
		return b.Styles.Expanded.Render(pad(text, inner))
	}
	left := " " + r.Label + strings.Repeat(" ", max(gap, 1))
	return b.Styles.Item.Render(left) + b.Styles.Hint.Render(r.Hint) + b.Styles.Item.Render(" "+arrow+" ")
}

// pad truncates or right-pads s to exactly w cells.
func pad(s string, w int) string {
	n := ansi.StringWidth(s)
	if n > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-n)
}
