// Package render draws a layout pass as a standalone SVG document.
package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/timelane/internal/layout"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

// Palette holds the colors of a drawing.
type Palette struct {
	Background string
	Header     string
	Grid       string
	LaneAlt    string
	Item       string
	Overlay    string
	Text       string
	More       string
}

// DefaultPalette returns a light palette.
func DefaultPalette() Palette {
	return Palette{
		Background: "#ffffff",
		Header:     "#eff1f5",
		Grid:       "#ccd0da",
		LaneAlt:    "#f7f8fa",
		Item:       "#1e66f5",
		Overlay:    "#df8e1d",
		Text:       "#4c4f69",
		More:       "#d20f39",
	}
}

// Options configures SVG output.
type Options struct {
	SidebarWidth float64
	FontSize     int
	Steps        timeunit.Steps
	Location     *time.Location
	Palette      Palette
}

// DefaultOptions returns a 120px sidebar and the light palette.
func DefaultOptions() Options {
	return Options{
		SidebarWidth: 120,
		FontSize:     11,
		Steps:        timeunit.DefaultSteps(),
		Location:     time.Local,
		Palette:      DefaultPalette(),
	}
}

// SVG writes the visible part of out. Items are drawn at their pass
// positions shifted so that the visible start sits right of the sidebar.
func SVG(w io.Writer, out layout.Output, opts Options) error {
	if !out.Window.Valid() {
		return fmt.Errorf("render: invalid window %+v", out.Window)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 11
	}

	c := newCanvas(out, opts)
	bw := bufio.NewWriter(w)
	p := &printer{w: bw}

	p.printf(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	p.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif" font-size="%d">`+"\n",
		c.width, c.height, c.width, c.height, opts.FontSize)
	p.printf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Palette.Background)
	p.printf(`<defs><clipPath id="body"><rect x="%.1f" y="0" width="%.1f" height="%.0f"/></clipPath></defs>`+"\n",
		opts.SidebarWidth, c.bodyWidth, c.height)

	c.lanes(p)
	c.header(p)
	c.items(p)
	c.showMore(p)

	p.printf("</svg>\n")
	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

type canvas struct {
	out          layout.Output
	opts         Options
	ratio        float64 // ms per pixel
	offset       float64 // pixels between canvas start and visible start
	headerHeight float64
	bodyWidth    float64
	width        float64
	height       float64
}

func newCanvas(out layout.Output, opts Options) *canvas {
	win := out.Window
	ratio := float64(win.CanvasEnd-win.CanvasStart) / win.CanvasWidth

	c := &canvas{
		out:       out,
		opts:      opts,
		ratio:     ratio,
		offset:    float64(win.VisibleStart-win.CanvasStart) / ratio,
		bodyWidth: float64(win.VisibleEnd-win.VisibleStart) / ratio,
	}
	if len(out.GroupTops) > 0 {
		c.headerHeight = out.GroupTops[0]
	} else {
		c.headerHeight = layout.DefaultHeaderHeight
	}
	c.width = opts.SidebarWidth + c.bodyWidth
	c.height = max(out.TotalHeight, c.headerHeight)
	return c
}

// x maps a canvas pixel offset to the drawing.
func (c *canvas) x(left float64) float64 {
	return c.opts.SidebarWidth + left - c.offset
}

func (c *canvas) timeX(t time.Time) float64 {
	return c.x(float64(t.UnixMilli()-c.out.Window.CanvasStart) / c.ratio)
}

func (c *canvas) lanes(p *printer) {
	pal := c.opts.Palette
	for i, lane := range c.out.Lanes {
		if i >= len(c.out.GroupTops) || i >= len(c.out.GroupHeights) {
			break
		}
		top, h := c.out.GroupTops[i], c.out.GroupHeights[i]
		if i%2 == 1 {
			p.printf(`<rect x="0" y="%.1f" width="%.0f" height="%.1f" fill="%s"/>`+"\n", top, c.width, h, pal.LaneAlt)
		}
		p.printf(`<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="%s"/>`+"\n", top+h, c.width, top+h, pal.Grid)
		p.printf(`<text x="6" y="%.1f" fill="%s">%s</text>`+"\n", top+h/2+4, pal.Text, escape(lane.Label()))
	}
	p.printf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f" stroke="%s"/>`+"\n",
		c.opts.SidebarWidth, c.opts.SidebarWidth, c.height, pal.Grid)
}

// header draws two rows: the coarser unit above the finest readable one.
func (c *canvas) header(p *printer) {
	pal := c.opts.Palette
	win := c.out.Window
	start := time.UnixMilli(win.VisibleStart).In(c.opts.Location)
	end := time.UnixMilli(win.VisibleEnd).In(c.opts.Location)

	fine := timeunit.MinUnit(float64(win.VisibleEnd-win.VisibleStart), c.bodyWidth, c.opts.Steps)
	coarse := timeunit.NextUnit(fine)
	row := c.headerHeight / 2

	p.printf(`<rect x="0" y="0" width="%.0f" height="%.1f" fill="%s"/>`+"\n", c.width, c.headerHeight, pal.Header)
	p.printf(`<g clip-path="url(#body)">`+"\n")
	if coarse != "" && coarse != fine {
		timeunit.Iterate(start, end, coarse, timeunit.DefaultSteps(), func(from, _ time.Time) {
			x := c.timeX(from)
			p.printf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n", x, x, row, pal.Grid)
			p.printf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>`+"\n",
				max(x, c.opts.SidebarWidth)+4, row-6, pal.Text, escape(coarse.Label(from)))
		})
	}
	timeunit.Iterate(start, end, fine, c.opts.Steps, func(from, _ time.Time) {
		x := c.timeX(from)
		p.printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.0f" stroke="%s" stroke-opacity="0.5"/>`+"\n",
			x, row, x, c.height, pal.Grid)
		p.printf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>`+"\n", x+3, c.headerHeight-6, pal.Text, escape(fine.ShortLabel(from)))
	})
	p.printf("</g>\n")
	p.printf(`<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="%s"/>`+"\n", c.headerHeight, c.width, c.headerHeight, pal.Grid)
}

func (c *canvas) items(p *printer) {
	pal := c.opts.Palette
	p.printf(`<g clip-path="url(#body)">`+"\n")
	for _, e := range c.out.Visible() {
		fill, opacity := pal.Item, 0.85
		if !e.Dim.Stack {
			fill, opacity = pal.Overlay, 0.35
		}
		x := c.x(e.Dim.Left)
		p.printf(`<g id="%s">`, escape(e.ID))
		p.printf(`<title>%s</title>`, escape(e.Title))
		p.printf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" fill-opacity="%.2f"/>`,
			x, e.Dim.Top, e.Dim.Width, e.Dim.Height, fill, opacity)
		if e.Dim.Width > 24 && e.Title != "" {
			p.printf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>`,
				x+4, e.Dim.Top+e.Dim.Height/2+4, pal.Background, escape(e.Title))
		}
		p.printf("</g>\n")
	}
	p.printf("</g>\n")
}

func (c *canvas) showMore(p *printer) {
	if len(c.out.ShowMore) == 0 {
		return
	}
	order := make(map[string]int, len(c.out.Lanes))
	for i, g := range c.out.Lanes {
		order[g.ID] = i
	}

	p.printf(`<g clip-path="url(#body)">`+"\n")
	for _, b := range c.out.ShowMore {
		i, ok := order[b.GroupID]
		if !ok || i >= len(c.out.GroupTops) || i >= len(c.out.GroupHeights) {
			continue
		}
		bottom := c.out.GroupTops[i] + c.out.GroupHeights[i]
		p.printf(`<text id="%s" x="%.1f" y="%.1f" fill="%s" font-weight="bold">+%d more</text>`+"\n",
			escape(b.ID), c.timeX(b.Slot)+4, bottom-4, c.opts.Palette.More, len(b.Items))
	}
	p.printf("</g>\n")
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
