package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

func entry(id string, left, width, top float64) layout.Entry {
	return layout.Entry{
		ID:    id,
		Title: id,
		Dim: layout.Dimensions{
			Left:       left,
			Width:      width,
			Top:        top,
			Positioned: true,
			Stack:      true,
		},
	}
}

func TestLaneRows(t *testing.T) {
	over := entry("over", 0, 10, 2)
	over.Dim.Stack = false
	hidden := entry("hidden", 0, 10, 5)
	hidden.Dim.Hide = true
	loose := entry("loose", 0, 10, 0)
	loose.Dim.Positioned = false

	rows := laneRows([]layout.Entry{
		entry("low", 0, 10, 35),
		entry("a", 0, 10, 5),
		over,
		hidden,
		entry("b", 20, 10, 5.001),
		loose,
	})

	want := [][]string{{"over"}, {"a", "b"}, {"low"}}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		var ids []string
		for _, e := range row {
			ids = append(ids, e.ID)
		}
		if strings.Join(ids, ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, ids, want[i])
		}
	}
}

func TestSegmentLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry layout.Entry
		width int
		want  string
	}{
		{name: "padded", entry: entry("ab", 0, 5, 0), width: 5, want: " ab  "},
		{name: "zero width", entry: entry("ab", 0, 5, 0), width: 0, want: ""},
		{name: "exact", entry: entry("abc", 0, 4, 0), width: 4, want: " abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentLabel(tt.entry, tt.width); got != tt.want {
				t.Errorf("segmentLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegmentLabel_ClippedRight(t *testing.T) {
	e := entry("abcdef", 0, 8, 0)
	e.Dim.ClippedRight = true

	got := segmentLabel(e, 8)
	if !strings.HasSuffix(got, "›") {
		t.Errorf("segmentLabel() = %q, want a trailing ›", got)
	}
	if w := lipgloss.Width(got); w != 8 {
		t.Errorf("width = %d, want 8", w)
	}
}

func TestRenderRow(t *testing.T) {
	plain := lipgloss.NewStyle()
	styleFor := func(layout.Entry, int) lipgloss.Style { return plain }

	entries := []layout.Entry{
		entry("def", 105, 6, 0), // starts under "abc" and loses two columns
		entry("abc", 102, 5, 0),
		entry("off", 130, 4, 0), // past the right edge
	}
	got := renderRow(entries, 100, 20, plain, styleFor)

	want := "  " + " abc " + " def" + strings.Repeat(" ", 9)
	if got != want {
		t.Errorf("renderRow() = %q, want %q", got, want)
	}
}

func TestCanvasOffset(t *testing.T) {
	w := layout.Window{
		CanvasStart:  0,
		CanvasEnd:    3000,
		CanvasWidth:  300,
		VisibleStart: 1000,
		VisibleEnd:   2000,
	}
	if got := canvasOffset(w); got != 100 {
		t.Errorf("canvasOffset() = %v, want 100", got)
	}
	if got := canvasOffset(layout.Window{}); got != 0 {
		t.Errorf("canvasOffset(empty) = %v, want 0", got)
	}
}

func TestTickRow(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	xAt := func(ts time.Time) float64 { return ts.Sub(start).Hours() * 4 }
	steps := timeunit.Steps{timeunit.Hour: 6}

	got := []rune(tickRow(start, start.Add(24*time.Hour), timeunit.Hour, steps, xAt, 96,
		func(u timeunit.Unit, ts time.Time) string { return u.ShortLabel(ts) }))

	if len(got) != 96 {
		t.Fatalf("got %d cells, want 96", len(got))
	}
	for _, tc := range []struct {
		col   int
		label string
	}{
		{0, "00:00"},
		{24, "06:00"},
		{48, "12:00"},
		{72, "18:00"},
	} {
		if got[tc.col] != '│' {
			t.Errorf("cell %d = %q, want a tick", tc.col, got[tc.col])
		}
		if s := string(got[tc.col+1 : tc.col+6]); s != tc.label {
			t.Errorf("label at %d = %q, want %q", tc.col, s, tc.label)
		}
	}
}

func TestMoreRow(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	xAt := func(ts time.Time) float64 { return ts.Sub(start).Hours() / 24 * 10 }

	buttons := []overflow.Button{
		{Slot: start, Items: make([]overflow.Item, 2)},
		{Slot: start.Add(24 * time.Hour), Items: make([]overflow.Item, 12)},
		{Slot: start.Add(10 * 24 * time.Hour), Items: make([]overflow.Item, 1)}, // off screen
	}
	got := moreRow(buttons, xAt, 20)

	want := "+2" + strings.Repeat(" ", 8) + "+12" + strings.Repeat(" ", 7)
	if got != want {
		t.Errorf("moreRow() = %q, want %q", got, want)
	}
}
