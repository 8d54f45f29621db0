package panels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Footer renders key help for whatever currently has input: the open menu,
// the bar, or the command table.
type Footer struct {
	help  help.Model
	style lipgloss.Style
}

// NewFooter returns a footer in short-help mode.
func NewFooter(style lipgloss.Style) Footer {
	h := help.New()
	h.ShortSeparator = "  "
	h.FullSeparator = "   "
	return Footer{help: h, style: style}
}

// SetWidth bounds the rendered help; bindings that do not fit are elided.
func (f *Footer) SetWidth(w int) { f.help.Width = w }

// ToggleAll switches between the one-line and the full help.
func (f *Footer) ToggleAll() { f.help.ShowAll = !f.help.ShowAll }

// ShowAll reports whether full help is shown.
func (f Footer) ShowAll() bool { return f.help.ShowAll }

// View renders keys. In full mode the result spans several lines.
func (f Footer) View(keys help.KeyMap) string {
	if keys == nil {
		return f.style.Width(f.help.Width).Render("")
	}
	return f.style.Width(f.help.Width).Render(f.help.View(keys))
}
