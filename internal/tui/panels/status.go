// Package panels renders the fixed rows of the cascade demo: the status
// line and the key-help footer.
package panels

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusProps holds all data needed to render the status line.
type StatusProps struct {
	Path      string // open chain, e.g. "File > Open Recent [todo.txt]"
	LastInput string // e.g. "ArrowDown → handled"
	Focus     string // "bar", "log"
	Pending   int    // scheduled callbacks not yet run
	Journal   string // path being recorded to, empty when not recording
	Elapsed   time.Duration
}

// AbbreviatePath returns a display-friendly path, replacing the home directory
// with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// FormatElapsed renders a duration as a compact string: "5s", "2m30s", "1h15m".
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// RenderStatus renders the status line. style is applied to the full width.
func RenderStatus(props StatusProps, width int, style lipgloss.Style) string {
	path := props.Path
	if path == "" {
		path = "(closed)"
	}
	parts := []string{"☰ " + path}
	if props.LastInput != "" {
		parts = append(parts, "key: "+props.LastInput)
	}
	if props.Focus != "" {
		parts = append(parts, "focus: "+props.Focus)
	}
	if props.Pending > 0 {
		parts = append(parts, fmt.Sprintf("timers: %d", props.Pending))
	}
	if props.Journal != "" {
		parts = append(parts, "● rec "+AbbreviatePath(props.Journal))
	}
	if props.Elapsed > 0 {
		parts = append(parts, FormatElapsed(props.Elapsed))
	}

	content := ansi.Truncate(strings.Join(parts, "  │  "), width, "…")
	return style.Width(width).Render(content)
}
