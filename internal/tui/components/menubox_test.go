package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func testBox(rows ...MenuRow) MenuBox {
	return MenuBox{Rows: rows, Styles: DefaultMenuStyles(lipgloss.Color("#7D56F4"))}
}

func TestMenuBox_Dimensions(t *testing.T) {
	b := testBox(
		MenuRow{Label: "Save", Hint: "Ctrl+S"},
		MenuRow{Label: "Recent", Submenu: true},
		MenuRow{Label: "Print", Disabled: true},
	)
	lines := strings.Split(b.View(), "\n")
	if len(lines) != b.Height() {
		t.Fatalf("lines: got %d, want %d", len(lines), b.Height())
	}
	if b.Height() != 5 {
		t.Errorf("Height: got %d, want 5", b.Height())
	}
	for i, ln := range lines {
		if got := ansi.StringWidth(ln); got != b.Width() {
			t.Errorf("line %d width: got %d, want %d", i, got, b.Width())
		}
	}
}

func TestMenuBox_RowContent(t *testing.T) {
	b := testBox(
		MenuRow{Label: "Save", Hint: "Ctrl+S", Focused: true},
		MenuRow{Label: "Recent", Submenu: true, Expanded: true},
	)
	lines := strings.Split(ansi.Strip(b.View()), "\n")

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"hint", lines[1], []string{"Save", "Ctrl+S"}},
		{"submenu arrow", lines[2], []string{"Recent", submenuArrow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				if !strings.Contains(tt.line, w) {
					t.Errorf("line %q missing %q", tt.line, w)
				}
			}
		})
	}
	if strings.Contains(lines[1], submenuArrow) {
		t.Error("leaf row must not show the submenu arrow")
	}
}

func TestMenuBox_HintsAlign(t *testing.T) {
	b := testBox(
		MenuRow{Label: "New", Hint: "Ctrl+N"},
		MenuRow{Label: "Save As", Hint: "Ctrl+Shift+S"},
	)
	lines := strings.Split(ansi.Strip(b.View()), "\n")
	end := func(s, sub string) int { return strings.Index(s, sub) + len(sub) }
	if end(lines[1], "Ctrl+N") != end(lines[2], "Ctrl+Shift+S") {
		t.Errorf("hints are not right-aligned:\n%s\n%s", lines[1], lines[2])
	}
}

func TestMenuBox_Empty(t *testing.T) {
	b := testBox()
	if b.Height() != 3 {
		t.Errorf("Height: got %d, want 3", b.Height())
	}
	if !strings.Contains(ansi.Strip(b.View()), "(empty)") {
		t.Error("empty menu should render a placeholder row")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 3, "abc"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := pad(tt.in, tt.w); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}
