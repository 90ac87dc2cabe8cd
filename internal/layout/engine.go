// Package layout positions timeline items inside their lanes.
//
// A pass runs in a fixed order: items outside the canvas window are dropped,
// the remaining ones get a rectangle from ComputeDimensions, are split into
// lanes by group order and handed to one stacking strategy. Every pass works
// on fresh values; nothing carries over between passes unless the caller
// feeds a previous Result back in.
package layout

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/item"
)

// Default geometry, in pixels.
const (
	DefaultLineHeight      = 30
	DefaultItemHeightRatio = 0.65
	DefaultHeaderHeight    = 60
)

// Options configures an Engine.
type Options struct {
	LineHeight      float64
	ItemHeightRatio float64
	HeaderHeight    float64
	Snap            time.Duration
	FullUpdate      bool
	Mode            Mode
}

// DefaultOptions returns free stacking with a 15 minute snap.
func DefaultOptions() Options {
	return Options{
		LineHeight:      DefaultLineHeight,
		ItemHeightRatio: DefaultItemHeightRatio,
		HeaderHeight:    DefaultHeaderHeight,
		Snap:            15 * time.Minute,
		FullUpdate:      true,
		Mode:            FreeMode(),
	}
}

// ItemHeight returns the height every item is drawn with under the configured
// mode.
func (o Options) ItemHeight() float64 {
	if o.Mode.Kind == Fixed {
		return o.Mode.Fixed.withDefaults().ItemHeight
	}
	return o.LineHeight * o.ItemHeightRatio
}

// Input is everything a pass reads.
type Input struct {
	Items       item.Source
	Groups      item.GroupSource
	Window      Window
	Interaction Interaction
	Force       bool
}

// Output is the layout of one pass.
type Output struct {
	Result
	Window Window
	Lanes  []item.Group
}

// Visible returns every entry that is not hidden, lane by lane.
func (o Output) Visible() []Entry {
	var out []Entry
	for _, lane := range o.Groups {
		for _, e := range lane {
			if !e.Dim.Hide {
				out = append(out, e)
			}
		}
	}
	return out
}

// Hidden returns the entries tucked behind show-more buttons.
func (o Output) Hidden() []Entry {
	var out []Entry
	for _, lane := range o.Groups {
		for _, e := range lane {
			if e.Dim.Hide {
				out = append(out, e)
			}
		}
	}
	return out
}

// Engine runs layout passes with fixed options.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

// NewEngine creates an Engine. Zero geometry options take their defaults.
func NewEngine(opts Options, log zerolog.Logger) *Engine {
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultLineHeight
	}
	if opts.ItemHeightRatio <= 0 || opts.ItemHeightRatio > 1 {
		opts.ItemHeightRatio = DefaultItemHeightRatio
	}
	if opts.HeaderHeight < 0 {
		opts.HeaderHeight = DefaultHeaderHeight
	}
	return &Engine{opts: opts, log: log.With().Str("component", "layout").Logger()}
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// WithMode returns a copy of the engine using another stacking mode.
func (e *Engine) WithMode(m Mode) *Engine {
	opts := e.opts
	opts.Mode = m
	return &Engine{opts: opts, log: e.log}
}

// Run performs one layout pass. An empty group list or an invalid window
// yields an empty output.
func (e *Engine) Run(in Input) Output {
	out := Output{Window: in.Window}
	if in.Groups == nil || in.Groups.Len() == 0 {
		return out
	}
	if !in.Window.Valid() {
		e.log.Warn().
			Int64("canvas_start", in.Window.CanvasStart).
			Int64("canvas_end", in.Window.CanvasEnd).
			Float64("canvas_width", in.Window.CanvasWidth).
			Msg("skipping layout pass for empty canvas")
		return out
	}

	lanes := item.CollectGroups(in.Groups)
	order := GroupOrder(item.Groups(lanes))

	var visible []item.Item
	if in.Items != nil {
		visible = SelectVisible(in.Items, in.Window.CanvasStart, in.Window.CanvasEnd)
	}

	height := e.opts.ItemHeight()
	snap := e.opts.Snap.Milliseconds()

	entries := make([]Entry, 0, len(visible))
	dropped := 0
	for _, it := range visible {
		dim, ok := ComputeDimensions(DimensionParams{
			ID:          it.ID,
			Start:       it.StartMillis(),
			End:         it.EndMillis(),
			Window:      in.Window,
			Interaction: in.Interaction,
			Snap:        snap,
			FullUpdate:  e.opts.FullUpdate,
		})
		if !ok {
			continue
		}

		laneID := it.GroupID
		if dim.Dragging && in.Interaction.DragGroup != "" {
			laneID = in.Interaction.DragGroup
		}
		ord, ok := order[laneID]
		if !ok {
			dropped++
			continue
		}

		dim.Order = ord
		dim.Height = height
		dim.Stack = !it.Overlay

		entries = append(entries, Entry{
			ID:      it.ID,
			GroupID: laneID,
			Title:   it.Title,
			Start:   it.StartMillis(),
			End:     it.EndMillis(),
			Dim:     dim,
		})
	}

	res := Arrange(e.opts.Mode, GroupByOrder(entries, len(lanes)), e.opts.LineHeight, e.opts.HeaderHeight, in.Force)

	e.log.Debug().
		Str("mode", e.opts.Mode.Kind.String()).
		Int("lanes", len(lanes)).
		Int("visible", len(visible)).
		Int("placed", len(entries)).
		Int("unknown_group", dropped).
		Int("show_more", len(res.ShowMore)).
		Float64("height", res.TotalHeight).
		Msg("layout pass")

	out.Result = res
	out.Lanes = lanes
	return out
}
