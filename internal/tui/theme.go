package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui/components"
)

// Theme holds the accent-derived styles of the demo.
type Theme struct {
	Bar    components.BarStyles
	Menu   components.MenuStyles
	Status lipgloss.Style
	Footer lipgloss.Style
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		Bar:  components.DefaultBarStyles(c),
		Menu: components.DefaultMenuStyles(c),
		Status: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")),
		Footer: footerStyle,
	}
}

// RenderActivity renders one activity entry as a single log line no wider
// than width.
func (t Theme) RenderActivity(a Activity, width int) string {
	ts := timestampStyle.Render("[" + formatOffset(a.At) + "]")
	text := strings.Join(strings.Fields(a.Text), " ")
	avail := width - lipgloss.Width(ts) - 2
	if avail < 10 {
		avail = 10
	}
	text = ansi.Truncate(text, avail, "…")
	return ts + "  " + activityStyle(a).Render(text)
}
