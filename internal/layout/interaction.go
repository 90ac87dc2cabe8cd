package layout

// Edge is the item edge being resized.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

// Interaction is the drag/resize state captured for one layout pass.
// The zero value means nothing is being dragged or resized.
type Interaction struct {
	DraggingID string
	DragTime   int64  // new start of the dragged item, unix ms
	DragGroup  string // lane the dragged item is hovering, empty keeps its own

	ResizingID string
	ResizeEdge Edge
	ResizeTime int64 // new position of the resized edge, unix ms
}

// IsDragging reports whether the item with the given id is being dragged.
func (in Interaction) IsDragging(id string) bool {
	return in.DraggingID != "" && in.DraggingID == id
}

// IsResizing reports whether the item with the given id is being resized.
func (in Interaction) IsResizing(id string) bool {
	return in.ResizingID != "" && in.ResizingID == id && in.ResizeEdge != EdgeNone
}

// Active reports whether any interaction is in progress.
func (in Interaction) Active() bool {
	return in.DraggingID != "" || (in.ResizingID != "" && in.ResizeEdge != EdgeNone)
}
