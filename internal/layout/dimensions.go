package layout

import (
	"math"

	"github.com/javiermolinar/timelane/internal/geom"
)

// MinWidth is the narrowest rectangle, in pixels, an item is drawn with.
const MinWidth = 3

// Dimensions is the derived on-screen record of one item for one pass.
type Dimensions struct {
	Left   float64 // pixels from the canvas start
	Width  float64 // pixels, never below MinWidth
	Top    float64 // pixels from the top of the canvas, valid when Positioned
	Height float64

	Positioned bool
	Order      int

	// Time-space box used for collisions, unaffected by clipping.
	CollisionLeft  float64
	CollisionWidth float64
	OriginalLeft   float64

	ClippedLeft  bool
	ClippedRight bool
	Stack        bool
	Hide         bool
	Dragging     bool
}

// CollisionRect returns the rectangle used by the stacking strategies.
func (d Dimensions) CollisionRect() geom.Rect {
	return geom.Rect{
		Left:   d.CollisionLeft,
		Width:  d.CollisionWidth,
		Top:    d.Top,
		Height: d.Height,
	}
}

// PixelRect returns the rectangle as drawn on the canvas.
func (d Dimensions) PixelRect() geom.Rect {
	return geom.Rect{
		Left:   d.Left,
		Width:  d.Width,
		Top:    d.Top,
		Height: d.Height,
	}
}

// Entry is an item together with its dimensions for one layout pass.
type Entry struct {
	ID      string
	GroupID string
	Title   string
	Start   int64
	End     int64
	Dim     Dimensions
}

// DimensionParams holds everything ComputeDimensions needs for one item.
type DimensionParams struct {
	ID          string
	Start       int64
	End         int64
	Window      Window
	Interaction Interaction
	Snap        int64 // ms
	FullUpdate  bool
}

// ComputeDimensions converts an item's time bounds into a rectangle on the
// canvas. The second result is false when, under a full update, the item lies
// wholly outside the visible window and is not being dragged.
func ComputeDimensions(p DimensionParams) (Dimensions, bool) {
	in := p.Interaction
	dragging := in.IsDragging(p.ID)
	resizing := in.IsResizing(p.ID)

	origStart := float64(p.Start)
	origEnd := float64(p.End)
	snap := float64(p.Snap)

	start, end := origStart, origEnd
	if resizing {
		switch in.ResizeEdge {
		case EdgeLeft:
			start = float64(in.ResizeTime)
		case EdgeRight:
			end = float64(in.ResizeTime)
		}
	}

	x := start
	if dragging {
		x = float64(in.DragTime)
	}
	w := math.Max(end-start, snap)

	collisionX, collisionW := start, w
	if dragging {
		dragTime := float64(in.DragTime)
		if origStart >= dragTime {
			collisionX = dragTime
			collisionW = math.Max(origEnd-dragTime, snap)
		} else {
			collisionW = math.Max(dragTime-origStart+w, snap)
		}
	}

	var clippedLeft, clippedRight bool
	if p.FullUpdate {
		visStart := float64(p.Window.VisibleStart)
		visEnd := float64(p.Window.VisibleEnd)

		if !dragging && (visStart > x+w || visEnd < x) {
			return Dimensions{}, false
		}

		if visStart > x {
			w -= visStart - x
			x = visStart
			if dragging && w < 0 {
				x += w
				w = 0
			}
			clippedLeft = true
		}
		if x+w > visEnd {
			w -= x + w - visEnd
			if w < 0 {
				w = 0
			}
			clippedRight = true
		}
	}

	ratio := geom.TimeToPixelRatio(float64(p.Window.CanvasStart), float64(p.Window.CanvasEnd), p.Window.CanvasWidth)

	return Dimensions{
		Left:           (x - float64(p.Window.CanvasStart)) / ratio,
		Width:          math.Max(w/ratio, MinWidth),
		CollisionLeft:  collisionX,
		CollisionWidth: collisionW,
		OriginalLeft:   origStart,
		ClippedLeft:    clippedLeft,
		ClippedRight:   clippedRight,
		Dragging:       dragging,
	}, true
}
