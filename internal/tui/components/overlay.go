package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws fg over bg with its top-left corner at column x, row y.
// Cells of bg around fg keep their styling. Rows of fg that fall outside bg
// are dropped; bg lines shorter than x are padded with spaces.
func Overlay(bg, fg string, x, y int) string {
	if fg == "" {
		return bg
	}
	x = max(x, 0)
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	fgW := 0
	for _, ln := range fgLines {
		fgW = max(fgW, ansi.StringWidth(ln))
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLine := bgLines[row]
		bw := ansi.StringWidth(bgLine)
		if bw < x {
			bgLine += strings.Repeat(" ", x-bw)
			bw = x
		}

		left := ansi.Cut(bgLine, 0, x)
		right := ""
		if bw > x+fgW {
			right = ansi.Cut(bgLine, x+fgW, bw)
		}
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		}
		bgLines[row] = left + ansi.ResetStyle + fgLine + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
