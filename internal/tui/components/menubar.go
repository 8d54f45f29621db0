// Package components provides the rendering pieces of the cascade demo:
// the menu bar, menu boxes, the activity log and the popup overlay.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BarStyles styles a MenuBar.
type BarStyles struct {
	Bar      lipgloss.Style // background of the whole row
	Title    lipgloss.Style
	Active   lipgloss.Style // highlighted title, menu closed
	Open     lipgloss.Style // title whose menu is open
	Mnemonic lipgloss.Style // applied on top of the title style to its first letter
}

// DefaultBarStyles derives bar styles from an accent color.
func DefaultBarStyles(accent lipgloss.Color) BarStyles {
	return BarStyles{
		Bar:      lipgloss.NewStyle().Background(lipgloss.Color("#303030")),
		Title:    lipgloss.NewStyle().Background(lipgloss.Color("#303030")).Foreground(lipgloss.Color("#DADADA")),
		Active:   lipgloss.NewStyle().Background(lipgloss.Color("#4E4E4E")).Foreground(lipgloss.Color("#FFFFFF")),
		Open:     lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		Mnemonic: lipgloss.NewStyle().Underline(true),
	}
}

// Span is the horizontal extent of one title, in cells.
type Span struct {
	X, Width int
}

// MenuBar is a stateless row of menu titles. At most one title is active;
// it renders as open while its menu is showing.
type MenuBar struct {
	titles []string
	active int
	open   bool
	width  int
	styles BarStyles
}

// NewMenuBar creates a MenuBar with no active title.
func NewMenuBar(titles []string, styles BarStyles) MenuBar {
	return MenuBar{titles: titles, active: -1, styles: styles}
}

// Active returns the active title index, -1 when none is.
func (b MenuBar) Active() int {
	return b.active
}

// SetActive returns a MenuBar with title i active; out-of-range clears it.
func (b MenuBar) SetActive(i int, open bool) MenuBar {
	if i < 0 || i >= len(b.titles) {
		i, open = -1, false
	}
	b.active = i
	b.open = open
	return b
}

// SetWidth returns a MenuBar configured for the given render width.
func (b MenuBar) SetWidth(w int) MenuBar {
	b.width = w
	return b
}

// Spans returns where each title is drawn, for hit-testing.
func (b MenuBar) Spans() []Span {
	spans := make([]Span, len(b.titles))
	x := 1
	for i, t := range b.titles {
		w := ansi.StringWidth(t) + 2
		spans[i] = Span{X: x, Width: w}
		x += w
	}
	return spans
}

// View renders the bar as a single line padded to the configured width.
func (b MenuBar) View() string {
	var sb strings.Builder
	sb.WriteString(b.styles.Bar.Render(" "))
	for i, t := range b.titles {
		style := b.styles.Title
		if i == b.active {
			style = b.styles.Active
			if b.open {
				style = b.styles.Open
			}
		}
		sb.WriteString(renderTitle(t, style, b.styles.Mnemonic))
	}
	line := sb.String()
	if pad := b.width - ansi.StringWidth(line); pad > 0 {
		line += b.styles.Bar.Render(strings.Repeat(" ", pad))
	}
	return line
}

// renderTitle draws " Title " with the first letter marked as the mnemonic.
func renderTitle(title string, style, mnemonic lipgloss.Style) string {
	if title == "" {
		return style.Render("  ")
	}
	r := []rune(title)
	return style.Render(" ") +
		style.Inherit(mnemonic).Render(string(r[0])) +
		style.Render(string(r[1:])+" ")
}
