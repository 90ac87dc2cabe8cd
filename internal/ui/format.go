package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timelane/internal/layout"
)

// layoutReport is the JSON form of one layout pass.
type layoutReport struct {
	VisibleStart time.Time    `json:"visible_start"`
	VisibleEnd   time.Time    `json:"visible_end"`
	CanvasStart  time.Time    `json:"canvas_start"`
	CanvasEnd    time.Time    `json:"canvas_end"`
	CanvasWidth  float64      `json:"canvas_width"`
	TotalHeight  float64      `json:"total_height"`
	Lanes        []laneReport `json:"lanes"`
	ShowMore     []moreReport `json:"show_more,omitempty"`
}

type laneReport struct {
	ID     string        `json:"id"`
	Title  string        `json:"title,omitempty"`
	Top    float64       `json:"top"`
	Height float64       `json:"height"`
	Items  []entryReport `json:"items"`
}

type entryReport struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Left         float64   `json:"left"`
	Width        float64   `json:"width"`
	Top          float64   `json:"top"`
	Height       float64   `json:"height"`
	Overlay      bool      `json:"overlay,omitempty"`
	Hidden       bool      `json:"hidden,omitempty"`
	ClippedLeft  bool      `json:"clipped_left,omitempty"`
	ClippedRight bool      `json:"clipped_right,omitempty"`
}

type moreReport struct {
	Group string    `json:"group"`
	Slot  time.Time `json:"slot"`
	Label string    `json:"label"`
	Items []string  `json:"items"`
}

func newLayoutReport(out layout.Output, loc *time.Location) layoutReport {
	ms := func(v int64) time.Time { return time.UnixMilli(v).In(loc) }
	win := out.Window

	r := layoutReport{
		VisibleStart: ms(win.VisibleStart),
		VisibleEnd:   ms(win.VisibleEnd),
		CanvasStart:  ms(win.CanvasStart),
		CanvasEnd:    ms(win.CanvasEnd),
		CanvasWidth:  win.CanvasWidth,
		TotalHeight:  out.TotalHeight,
		Lanes:        make([]laneReport, 0, len(out.Lanes)),
	}
	for i, g := range out.Lanes {
		lane := laneReport{ID: g.ID, Title: g.Title, Items: []entryReport{}}
		if i < len(out.GroupTops) {
			lane.Top = out.GroupTops[i]
			lane.Height = out.GroupHeights[i]
		}
		if i < len(out.Groups) {
			for _, e := range out.Groups[i] {
				lane.Items = append(lane.Items, entryReport{
					ID:           e.ID,
					Title:        e.Title,
					Start:        ms(e.Start),
					End:          ms(e.End),
					Left:         e.Dim.Left,
					Width:        e.Dim.Width,
					Top:          e.Dim.Top,
					Height:       e.Dim.Height,
					Overlay:      !e.Dim.Stack,
					Hidden:       e.Dim.Hide,
					ClippedLeft:  e.Dim.ClippedLeft,
					ClippedRight: e.Dim.ClippedRight,
				})
			}
		}
		r.Lanes = append(r.Lanes, lane)
	}
	for _, btn := range out.ShowMore {
		ids := make([]string, 0, len(btn.Items))
		for _, it := range btn.Items {
			ids = append(ids, it.ID)
		}
		r.ShowMore = append(r.ShowMore, moreReport{Group: btn.GroupID, Slot: btn.Slot.In(loc), Label: btn.Label, Items: ids})
	}
	return r
}

// printLayout writes a readable table of one layout pass, lane by lane.
// Titles are cut to fit width columns.
func printLayout(w io.Writer, out layout.Output, loc *time.Location, width int) {
	win := out.Window
	fmt.Fprintf(w, "%s %s\n\n", formatHeader("Layout"),
		formatSpan(time.UnixMilli(win.VisibleStart).In(loc), time.UnixMilli(win.VisibleEnd).In(loc)))

	if len(out.Lanes) == 0 {
		fmt.Fprintln(w, "No lanes.")
		return
	}

	titleWidth := max(width-62, 12)
	for i, g := range out.Lanes {
		var top, height float64
		if i < len(out.GroupTops) {
			top, height = out.GroupTops[i], out.GroupHeights[i]
		}
		fmt.Fprintf(w, "%s %s\n", formatLane(g.Label()), formatMuted(fmt.Sprintf("top=%.1f height=%.1f", top, height)))

		var entries []layout.Entry
		if i < len(out.Groups) {
			entries = out.Groups[i]
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, formatMuted("  (empty)"))
		}
		for _, e := range entries {
			title := e.Title
			if title == "" {
				title = e.ID
			}
			title = ansi.Truncate(title, titleWidth, "…")
			span := formatSpan(time.UnixMilli(e.Start).In(loc), time.UnixMilli(e.End).In(loc))
			line := fmt.Sprintf("  %-30s %-*s x=%7.1f w=%6.1f y=%6.1f%s",
				span, titleWidth, title, e.Dim.Left, e.Dim.Width, e.Dim.Top, entryFlags(e))
			switch {
			case e.Dim.Hide:
				line = formatHidden(line)
			case !e.Dim.Stack:
				line = formatOverlay(line)
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(out.ShowMore) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", formatHeader("Show more"))
	titles := make(map[string]string, len(out.Lanes))
	for _, g := range out.Lanes {
		titles[g.ID] = g.Label()
	}
	for _, btn := range out.ShowMore {
		ids := make([]string, 0, len(btn.Items))
		for _, it := range btn.Items {
			ids = append(ids, it.ID)
		}
		fmt.Fprintf(w, "  %s · %s: %s (%s)\n", titles[btn.GroupID], btn.Label,
			formatHidden(fmt.Sprintf("+%d", len(btn.Items))), strings.Join(ids, ", "))
	}
}

func entryFlags(e layout.Entry) string {
	var flags []string
	if e.Dim.Hide {
		flags = append(flags, "hidden")
	}
	if !e.Dim.Stack {
		flags = append(flags, "overlay")
	}
	if e.Dim.ClippedLeft {
		flags = append(flags, "‹")
	}
	if e.Dim.ClippedRight {
		flags = append(flags, "›")
	}
	if len(flags) == 0 {
		return ""
	}
	return " " + strings.Join(flags, " ")
}

// formatSpan formats an interval, omitting the second date when both ends
// fall on the same day.
func formatSpan(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return start.Format("Mon 2006-01-02 15:04") + "-" + end.Format("15:04")
	}
	return start.Format("Mon 2006-01-02 15:04") + " - " + end.Format("Mon 2006-01-02 15:04")
}
