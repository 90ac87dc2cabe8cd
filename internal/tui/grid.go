package tui

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

// laneView is one lane of a layout pass mapped to terminal rows. Each
// distinct item top becomes a row, in top order; overlay items share a row
// of their own above the stacked ones.
type laneView struct {
	group item.Group
	rows  [][]layout.Entry
	more  []overflow.Button
}

// height is the number of terminal lines the lane takes.
func (l laneView) height() int {
	h := max(len(l.rows), 1)
	if len(l.more) > 0 {
		h++
	}
	return h
}

func buildLanes(out layout.Output) []laneView {
	lanes := make([]laneView, 0, len(out.Lanes))
	for i, g := range out.Lanes {
		lv := laneView{group: g, more: overflow.ForGroup(out.ShowMore, g.ID)}
		if i < len(out.Groups) {
			lv.rows = laneRows(out.Groups[i])
		}
		lanes = append(lanes, lv)
	}
	return lanes
}

func laneRows(entries []layout.Entry) [][]layout.Entry {
	var overlay []layout.Entry
	byTop := map[int64][]layout.Entry{}
	for _, e := range entries {
		if e.Dim.Hide || !e.Dim.Positioned {
			continue
		}
		if !e.Dim.Stack {
			overlay = append(overlay, e)
			continue
		}
		key := int64(math.Round(e.Dim.Top * 100))
		byTop[key] = append(byTop[key], e)
	}

	keys := make([]int64, 0, len(byTop))
	for k := range byTop {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var rows [][]layout.Entry
	if len(overlay) > 0 {
		rows = append(rows, overlay)
	}
	for _, k := range keys {
		rows = append(rows, byTop[k])
	}
	return rows
}

// span converts an entry's pixels to columns of the visible body. The layout
// runs one pixel per column, so only the canvas offset is removed.
func span(e layout.Entry, offset float64) (col, width int) {
	col = int(math.Round(e.Dim.Left - offset))
	width = max(int(math.Round(e.Dim.Width)), 1)
	return col, width
}

// canvasOffset is the pixel distance from the canvas start to the visible start.
func canvasOffset(w layout.Window) float64 {
	if !w.Valid() {
		return 0
	}
	ratio := float64(w.CanvasEnd-w.CanvasStart) / w.CanvasWidth
	return float64(w.VisibleStart-w.CanvasStart) / ratio
}

// segmentLabel fits title into width cells, marking clipped edges.
func segmentLabel(e layout.Entry, width int) string {
	if width <= 0 {
		return ""
	}
	title := e.Title
	if title == "" {
		title = e.ID
	}
	if e.Dim.ClippedLeft && width > 1 {
		title = "‹" + title
	}
	text := ansi.Truncate(" "+title, width, "…")
	if pad := width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	if e.Dim.ClippedRight && width > 1 {
		text = ansi.Truncate(text, width-1, "") + "›"
	}
	return text
}

// renderRow draws one row of entries across cols cells. Entries are drawn
// left to right; an entry starting under an earlier one loses its overlap.
func renderRow(entries []layout.Entry, offset float64, cols int, bg lipgloss.Style, styleFor func(layout.Entry, int) lipgloss.Style) string {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b layout.Entry) int {
		if c := cmp.Compare(a.Dim.Left, b.Dim.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var b strings.Builder
	cursor := 0
	for i, e := range sorted {
		col, w := span(e, offset)
		if col+w <= cursor || col >= cols {
			continue
		}
		if col < cursor {
			w -= cursor - col
			col = cursor
		}
		w = min(w, cols-col)
		if col > cursor {
			b.WriteString(bg.Render(strings.Repeat(" ", col-cursor)))
		}
		b.WriteString(styleFor(e, i).Render(segmentLabel(e, w)))
		cursor = col + w
	}
	if cursor < cols {
		b.WriteString(bg.Render(strings.Repeat(" ", cols-cursor)))
	}
	return b.String()
}

// moreRow places a "+N" marker at the start of each show-more slot.
func moreRow(buttons []overflow.Button, xAt func(time.Time) float64, cols int) string {
	line := []rune(strings.Repeat(" ", cols))
	next := 0
	for _, btn := range buttons {
		col := max(int(math.Round(xAt(btn.Slot))), next)
		label := []rune("+" + strconv.Itoa(len(btn.Items)))
		if col+len(label) > cols {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

// tickRow writes each cell label at the column where its cell starts.
// Labels that would run into the previous one are skipped.
func tickRow(start, end time.Time, u timeunit.Unit, steps timeunit.Steps, xAt func(time.Time) float64, cols int, label func(timeunit.Unit, time.Time) string) string {
	line := []rune(strings.Repeat(" ", cols))
	next := 0
	timeunit.Iterate(start, end, u, steps, func(from, _ time.Time) {
		col := int(math.Round(xAt(from)))
		text := []rune(label(u, from))
		if col < 0 {
			// The cell started left of the view; pin its label to the edge.
			col = 0
		}
		if col < next || col >= cols {
			return
		}
		line[col] = '│'
		n := copy(line[col+1:], text)
		next = col + 1 + n + 1
	})
	return string(line)
}
