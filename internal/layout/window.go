package layout

// Window is the canvas and visible time range of one layout pass, in unix ms,
// plus the canvas width in pixels.
type Window struct {
	CanvasStart  int64
	CanvasEnd    int64
	CanvasWidth  float64
	VisibleStart int64
	VisibleEnd   int64
}

// Valid reports whether the window satisfies the ratio preconditions.
func (w Window) Valid() bool {
	return w.CanvasWidth > 0 && w.CanvasEnd > w.CanvasStart
}
