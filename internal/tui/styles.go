package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

// Styles shared by every theme. Accent-dependent styles live on Theme.
var (
	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	quitStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	tooSmallStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)
)

// formatOffset renders a session offset as mm:ss.mmm. Minutes keep
// counting past the hour.
func formatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// activityStyle picks the style for an activity line.
func activityStyle(a Activity) lipgloss.Style {
	switch a.Command {
	case "":
		return noticeStyle
	case QuitCommand:
		return quitStyle
	default:
		return commandStyle
	}
}
