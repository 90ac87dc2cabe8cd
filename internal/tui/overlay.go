package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel draws a rendered box centred over the base view. Cells the
// box does not cover keep their base content and styling.
type OverlayModel struct {
	minWidth int
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{minWidth: 18}
}

// Render places box over base, which is first normalized to width x height.
func (o OverlayModel) Render(base string, width, height int, box string) string {
	if width <= 0 || height <= 0 {
		return base
	}
	lines := o.normalize(base, width, height)
	if box == "" {
		return strings.Join(lines, "\n")
	}

	boxLines := strings.Split(box, "\n")
	boxW := min(max(lipgloss.Width(box), min(o.minWidth, width)), width)
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)

	for i, line := range boxLines {
		row := top + i
		if row >= height {
			break
		}
		line = ansi.Truncate(line, boxW, "")
		if pad := boxW - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		under := lines[row]
		lines[row] = ansi.Cut(under, 0, left) + line + ansi.Cut(under, left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// normalize pads or cuts base to exactly height lines of width cells.
func (o OverlayModel) normalize(base string, width, height int) []string {
	src := strings.Split(base, "\n")
	lines := make([]string, height)
	for i := range lines {
		var line string
		if i < len(src) {
			line = src[i]
		}
		w := ansi.StringWidth(line)
		switch {
		case w > width:
			line = ansi.Cut(line, 0, width)
		case w < width:
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = line
	}
	return lines
}
