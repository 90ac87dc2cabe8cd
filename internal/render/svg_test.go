package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

var base = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return base.Add(time.Duration(h * float64(time.Hour)))
}

// Visible 08:00-16:00 on a 24h canvas of 2400px.
func window() layout.Window {
	return layout.Window{
		CanvasStart:  base.UnixMilli(),
		CanvasEnd:    at(24).UnixMilli(),
		CanvasWidth:  2400,
		VisibleStart: at(8).UnixMilli(),
		VisibleEnd:   at(16).UnixMilli(),
	}
}

func run(mode layout.Mode, items item.List) layout.Output {
	opts := layout.DefaultOptions()
	opts.Mode = mode
	e := layout.NewEngine(opts, zerolog.Nop())
	return e.Run(layout.Input{
		Groups: item.Groups{{ID: "g1", Title: "One"}, {ID: "g2", Title: "R&D <lab>"}},
		Items:  items,
		Window: window(),
	})
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return opts
}

func TestSVG(t *testing.T) {
	out := run(layout.FreeMode(), item.List{
		{ID: "a", GroupID: "g1", Title: "Deploy", Start: at(9), End: at(11)},
		{ID: "b", GroupID: "g2", Title: "Q&A", Start: at(10), End: at(12), Overlay: true},
	})

	var buf bytes.Buffer
	if err := SVG(&buf, out, testOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svg := buf.String()

	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("expected xml declaration")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("expected closing svg tag")
	}
	// 120px sidebar plus eight visible hours at 36s per pixel.
	if !strings.Contains(svg, `width="920"`) {
		t.Error("expected drawing width 920")
	}
	// 09:00 is 900px into the canvas, 800px of which lie left of the view.
	if !strings.Contains(svg, `<rect x="220.0"`) {
		t.Error("expected item a at x 220")
	}
	if !strings.Contains(svg, `<g id="a">`) || !strings.Contains(svg, `<g id="b">`) {
		t.Error("expected both items drawn")
	}
	if !strings.Contains(svg, "R&amp;D &lt;lab&gt;") || !strings.Contains(svg, "Q&amp;A") {
		t.Error("expected escaped text")
	}
	if !strings.Contains(svg, DefaultPalette().Overlay) {
		t.Error("expected overlay color for item b")
	}
	if strings.Contains(svg, "more</text>") {
		t.Error("expected no show-more markers in free mode")
	}
}

func TestSVG_YearHeader(t *testing.T) {
	year := func(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }
	e := layout.NewEngine(layout.DefaultOptions(), zerolog.Nop())
	out := e.Run(layout.Input{
		Groups: item.Groups{{ID: "g1", Title: "One"}},
		Items:  item.List{{ID: "a", GroupID: "g1", Start: year(2018), End: year(2019)}},
		Window: layout.Window{
			CanvasStart:  year(2005).UnixMilli(),
			CanvasEnd:    year(2035).UnixMilli(),
			CanvasWidth:  2400,
			VisibleStart: year(2015).UnixMilli(),
			VisibleEnd:   year(2025).UnixMilli(),
		},
	})

	done := make(chan error, 1)
	var buf bytes.Buffer
	go func() { done <- SVG(&buf, out, testOptions()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SVG did not return for a decade-wide window")
	}
	if !strings.Contains(buf.String(), ">2020</text>") {
		t.Error("expected a 2020 year tick")
	}
}

func TestSVG_ShowMore(t *testing.T) {
	var items item.List
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, item.Item{ID: id, GroupID: "g1", Start: at(9), End: at(10)})
	}
	out := run(layout.FixedMode(layout.FixedParams{Timeframe: timeunit.Day, Location: time.UTC}), items)
	if len(out.ShowMore) != 1 {
		t.Fatalf("expected 1 show-more button, got %d", len(out.ShowMore))
	}

	var buf bytes.Buffer
	if err := SVG(&buf, out, testOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "+" + string(rune('0'+len(out.ShowMore[0].Items))) + " more"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected marker %q", want)
	}
}

func TestSVG_InvalidWindow(t *testing.T) {
	if err := SVG(&bytes.Buffer{}, layout.Output{}, testOptions()); err == nil {
		t.Error("expected error for invalid window")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVG_WriteError(t *testing.T) {
	out := run(layout.FreeMode(), item.List{{ID: "a", GroupID: "g1", Start: at(9), End: at(11)}})
	if err := SVG(failingWriter{}, out, testOptions()); err == nil {
		t.Error("expected write error")
	}
}
