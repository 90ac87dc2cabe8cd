// Package viewport tracks the visible time range of the timeline and the
// three times wider canvas that layout passes run against.
package viewport

import (
	"errors"
	"math"
	"time"

	"github.com/javiermolinar/timelane/internal/layout"
)

// Zoom limits applied when none are configured.
const (
	DefaultMinZoom = time.Hour
	DefaultMaxZoom = 5 * 365 * 24 * time.Hour
)

// Viewport errors.
var (
	ErrEmptyRange = errors.New("visible range must end after it starts")
	ErrNoWidth    = errors.New("visible width must be positive")
)

// Limits bounds the visible span.
type Limits struct {
	MinZoom time.Duration
	MaxZoom time.Duration
}

// Viewport is the visible window plus a canvas that spans one zoom before and
// one zoom after it. The canvas only moves when the visible window leaves its
// middle third, so small pans reuse the previous layout.
type Viewport struct {
	visibleStart time.Time
	visibleEnd   time.Time
	canvasStart  time.Time
	width        float64 // visible width in pixels
	limits       Limits
}

// New creates a viewport showing [start, end) over width pixels.
func New(start, end time.Time, width float64, limits Limits) (*Viewport, error) {
	if !end.After(start) {
		return nil, ErrEmptyRange
	}
	if width <= 0 {
		return nil, ErrNoWidth
	}
	if limits.MinZoom <= 0 {
		limits.MinZoom = DefaultMinZoom
	}
	if limits.MaxZoom < limits.MinZoom {
		limits.MaxZoom = DefaultMaxZoom
	}

	v := &Viewport{width: width, limits: limits}
	v.visibleStart = start
	v.visibleEnd = end
	v.canvasStart = start.Add(-v.Zoom())
	return v, nil
}

// VisibleStart returns the left edge of the visible window.
func (v *Viewport) VisibleStart() time.Time { return v.visibleStart }

// VisibleEnd returns the right edge of the visible window.
func (v *Viewport) VisibleEnd() time.Time { return v.visibleEnd }

// Zoom returns the visible span.
func (v *Viewport) Zoom() time.Duration { return v.visibleEnd.Sub(v.visibleStart) }

// CanvasStart returns the left edge of the canvas.
func (v *Viewport) CanvasStart() time.Time { return v.canvasStart }

// CanvasEnd returns the right edge of the canvas.
func (v *Viewport) CanvasEnd() time.Time { return v.canvasStart.Add(3 * v.Zoom()) }

// Width returns the visible width in pixels.
func (v *Viewport) Width() float64 { return v.width }

// CanvasWidth returns the canvas width in pixels.
func (v *Viewport) CanvasWidth() float64 { return 3 * v.width }

// Limits returns the zoom limits.
func (v *Viewport) Limits() Limits { return v.limits }

// Window returns the ranges a layout pass needs.
func (v *Viewport) Window() layout.Window {
	return layout.Window{
		CanvasStart:  v.canvasStart.UnixMilli(),
		CanvasEnd:    v.CanvasEnd().UnixMilli(),
		CanvasWidth:  v.CanvasWidth(),
		VisibleStart: v.visibleStart.UnixMilli(),
		VisibleEnd:   v.visibleEnd.UnixMilli(),
	}
}

// CanKeepCanvas reports whether [start, end) still sits in the middle third
// of the current canvas.
func (v *Viewport) CanKeepCanvas(start, end time.Time) bool {
	zoom := v.Zoom()
	at := func(f float64) time.Time {
		return v.canvasStart.Add(time.Duration(float64(zoom) * f))
	}
	return !start.Before(at(0.5)) && !start.After(at(1.5)) &&
		!end.Before(at(1.5)) && !end.After(at(2.5))
}

// SetVisible moves the visible window. It reports whether the canvas was
// reset, in which case the caller must run a new layout pass. A change of
// zoom always resets the canvas.
func (v *Viewport) SetVisible(start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrEmptyRange
	}

	keep := end.Sub(start) == v.Zoom() && v.CanKeepCanvas(start, end)
	v.visibleStart = start
	v.visibleEnd = end
	if keep {
		return false, nil
	}
	v.canvasStart = start.Add(-v.Zoom())
	return true, nil
}

// Pan shifts the visible window by d.
func (v *Viewport) Pan(d time.Duration) bool {
	reset, _ := v.SetVisible(v.visibleStart.Add(d), v.visibleEnd.Add(d))
	return reset
}

// PanPixels shifts the visible window by dx pixels.
func (v *Viewport) PanPixels(dx float64) bool {
	return v.Pan(time.Duration(dx * float64(v.Zoom()) / v.width))
}

// ScrollTo centres the visible window on t.
func (v *Viewport) ScrollTo(t time.Time) bool {
	half := v.Zoom() / 2
	reset, _ := v.SetVisible(t.Add(-half), t.Add(v.Zoom()-half))
	return reset
}

// ChangeZoom scales the visible span by scale, clamped to the limits.
// offset is the fraction of the window, from the left, that stays put.
func (v *Viewport) ChangeZoom(scale, offset float64) bool {
	if scale <= 0 || math.IsNaN(scale) {
		return false
	}
	if offset < 0 || offset > 1 || math.IsNaN(offset) {
		offset = 0.5
	}
	oldZoom := v.Zoom()
	z := math.Round(float64(oldZoom) * scale)
	z = math.Min(math.Max(z, float64(v.limits.MinZoom)), float64(v.limits.MaxZoom))
	newZoom := time.Duration(z)
	if newZoom == oldZoom {
		return false
	}

	start := v.visibleStart.Add(time.Duration(math.Round(float64(oldZoom-newZoom) * offset)))
	reset, _ := v.SetVisible(start, start.Add(newZoom))
	return reset
}

// Resize changes the visible width. The time range is unchanged.
func (v *Viewport) Resize(width float64) error {
	if width <= 0 {
		return ErrNoWidth
	}
	v.width = width
	return nil
}

// TimeAt returns the time under pixel x of the visible window, floored to a
// multiple of snap since the Unix epoch when snap is positive.
func (v *Viewport) TimeAt(x float64, snap time.Duration) time.Time {
	t := v.visibleStart.Add(time.Duration(x * float64(v.Zoom()) / v.width))
	if s := snap.Milliseconds(); s > 0 {
		ms := t.UnixMilli()
		rem := ms % s
		if rem < 0 {
			rem += s
		}
		t = time.UnixMilli(ms - rem).In(t.Location())
	}
	return t
}

// XAt returns the pixel offset of t from the visible window's left edge.
func (v *Viewport) XAt(t time.Time) float64 {
	return float64(t.Sub(v.visibleStart)) * v.width / float64(v.Zoom())
}

// RowAt returns the lane under y, where lanes start below headerHeight and
// have the given heights.
func RowAt(y, headerHeight float64, groupHeights []float64) (int, bool) {
	if y < headerHeight {
		return 0, false
	}
	top := headerHeight
	for i, h := range groupHeights {
		if y < top+h {
			return i, true
		}
		top += h
	}
	return 0, false
}
