package layout

import (
	"math"
	"testing"

	"github.com/javiermolinar/timelane/internal/geom"
)

// 4000ms over 400px: one pixel is 10ms.
var testWindow = Window{
	CanvasStart:  1000,
	CanvasEnd:    5000,
	CanvasWidth:  400,
	VisibleStart: 1000,
	VisibleEnd:   5000,
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeDimensions(t *testing.T) {
	narrow := testWindow
	narrow.VisibleStart = 2000
	narrow.VisibleEnd = 4000

	tests := []struct {
		name         string
		params       DimensionParams
		wantLeft     float64
		wantWidth    float64
		wantCollLeft float64
		wantCollW    float64
		wantClipL    bool
		wantClipR    bool
	}{
		{
			name:         "plain item",
			params:       DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow, FullUpdate: true},
			wantLeft:     100,
			wantWidth:    100,
			wantCollLeft: 2000,
			wantCollW:    1000,
		},
		{
			name:         "zero length floors to three pixels",
			params:       DimensionParams{ID: "1", Start: 2000, End: 2000, Window: testWindow},
			wantLeft:     100,
			wantWidth:    MinWidth,
			wantCollLeft: 2000,
			wantCollW:    0,
		},
		{
			name:         "inverted interval floors to three pixels",
			params:       DimensionParams{ID: "1", Start: 3000, End: 2000, Window: testWindow},
			wantLeft:     200,
			wantWidth:    MinWidth,
			wantCollLeft: 3000,
			wantCollW:    0,
		},
		{
			name:         "snap floors width",
			params:       DimensionParams{ID: "1", Start: 2000, End: 2000, Window: testWindow, Snap: 500},
			wantLeft:     100,
			wantWidth:    50,
			wantCollLeft: 2000,
			wantCollW:    500,
		},
		{
			name:         "clipped left",
			params:       DimensionParams{ID: "1", Start: 1500, End: 2500, Window: narrow, FullUpdate: true},
			wantLeft:     100,
			wantWidth:    50,
			wantCollLeft: 1500,
			wantCollW:    1000,
			wantClipL:    true,
		},
		{
			name:         "clipped right",
			params:       DimensionParams{ID: "1", Start: 3500, End: 4500, Window: narrow, FullUpdate: true},
			wantLeft:     250,
			wantWidth:    50,
			wantCollLeft: 3500,
			wantCollW:    1000,
			wantClipR:    true,
		},
		{
			name:         "no clipping without full update",
			params:       DimensionParams{ID: "1", Start: 1500, End: 2500, Window: narrow},
			wantLeft:     50,
			wantWidth:    100,
			wantCollLeft: 1500,
			wantCollW:    1000,
		},
		{
			name: "resize left edge",
			params: DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow,
				Interaction: Interaction{ResizingID: "1", ResizeEdge: EdgeLeft, ResizeTime: 1500}},
			wantLeft:     50,
			wantWidth:    150,
			wantCollLeft: 1500,
			wantCollW:    1500,
		},
		{
			name: "resize right edge",
			params: DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow,
				Interaction: Interaction{ResizingID: "1", ResizeEdge: EdgeRight, ResizeTime: 4000}},
			wantLeft:     100,
			wantWidth:    200,
			wantCollLeft: 2000,
			wantCollW:    2000,
		},
		{
			name: "resize of another item is ignored",
			params: DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow,
				Interaction: Interaction{ResizingID: "2", ResizeEdge: EdgeRight, ResizeTime: 4000}},
			wantLeft:     100,
			wantWidth:    100,
			wantCollLeft: 2000,
			wantCollW:    1000,
		},
		{
			name: "drag right sweeps from the original start",
			params: DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow,
				Interaction: Interaction{DraggingID: "1", DragTime: 2500}},
			wantLeft:     150,
			wantWidth:    100,
			wantCollLeft: 2000,
			wantCollW:    1500,
		},
		{
			name: "drag left sweeps to the original end",
			params: DimensionParams{ID: "1", Start: 2000, End: 3000, Window: testWindow,
				Interaction: Interaction{DraggingID: "1", DragTime: 1500}},
			wantLeft:     50,
			wantWidth:    100,
			wantCollLeft: 1500,
			wantCollW:    1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeDimensions(tt.params)
			if !ok {
				t.Fatal("ComputeDimensions() returned no record")
			}
			if !almostEqual(got.Left, tt.wantLeft) {
				t.Errorf("Left = %v, want %v", got.Left, tt.wantLeft)
			}
			if !almostEqual(got.Width, tt.wantWidth) {
				t.Errorf("Width = %v, want %v", got.Width, tt.wantWidth)
			}
			if !almostEqual(got.CollisionLeft, tt.wantCollLeft) {
				t.Errorf("CollisionLeft = %v, want %v", got.CollisionLeft, tt.wantCollLeft)
			}
			if !almostEqual(got.CollisionWidth, tt.wantCollW) {
				t.Errorf("CollisionWidth = %v, want %v", got.CollisionWidth, tt.wantCollW)
			}
			if got.ClippedLeft != tt.wantClipL || got.ClippedRight != tt.wantClipR {
				t.Errorf("clipped = (%v, %v), want (%v, %v)", got.ClippedLeft, got.ClippedRight, tt.wantClipL, tt.wantClipR)
			}
			if got.Positioned {
				t.Error("Positioned = true before stacking")
			}
		})
	}
}

func TestComputeDimensions_OutsideVisibleWindow(t *testing.T) {
	w := testWindow
	w.VisibleStart = 2000
	w.VisibleEnd = 3000

	p := DimensionParams{ID: "1", Start: 4000, End: 4500, Window: w, FullUpdate: true}
	if _, ok := ComputeDimensions(p); ok {
		t.Error("item outside the visible window produced a record")
	}

	p.FullUpdate = false
	if _, ok := ComputeDimensions(p); !ok {
		t.Error("item was dropped without a full update")
	}

	p.FullUpdate = true
	p.Interaction = Interaction{DraggingID: "1", DragTime: 4000}
	got, ok := ComputeDimensions(p)
	if !ok {
		t.Fatal("dragged item was dropped")
	}
	if !got.Dragging || !got.ClippedRight {
		t.Errorf("got Dragging=%v ClippedRight=%v, want both true", got.Dragging, got.ClippedRight)
	}
	if got.Width < MinWidth {
		t.Errorf("Width = %v, want at least %v", got.Width, MinWidth)
	}
}

func TestComputeDimensions_DraggedPastLeftEdge(t *testing.T) {
	w := testWindow
	w.VisibleStart = 3000
	w.VisibleEnd = 5000

	got, ok := ComputeDimensions(DimensionParams{
		ID:          "1",
		Start:       2000,
		End:         2500,
		Window:      w,
		FullUpdate:  true,
		Interaction: Interaction{DraggingID: "1", DragTime: 1500},
	})
	if !ok {
		t.Fatal("dragged item was dropped")
	}
	if !got.ClippedLeft {
		t.Error("ClippedLeft = false, want true")
	}
	// Width collapses to zero, left stays at the item's dragged end.
	if !almostEqual(got.Left, 100) {
		t.Errorf("Left = %v, want 100", got.Left)
	}
	if !almostEqual(got.Width, MinWidth) {
		t.Errorf("Width = %v, want %v", got.Width, MinWidth)
	}
}

func TestComputeDimensions_WidthFloor(t *testing.T) {
	for start := int64(1000); start <= 5000; start += 250 {
		for _, length := range []int64{-300, 0, 1, 7, 40, 900} {
			got, ok := ComputeDimensions(DimensionParams{
				ID:     "x",
				Start:  start,
				End:    start + length,
				Window: testWindow,
			})
			if !ok {
				continue
			}
			if got.Width < MinWidth {
				t.Fatalf("Width = %v for [%d, %d], want >= %v", got.Width, start, start+length, MinWidth)
			}
		}
	}
}

func TestComputeDimensions_DragSweepCollides(t *testing.T) {
	w := Window{CanvasStart: 0, CanvasEnd: 12000, CanvasWidth: 1200, VisibleStart: 0, VisibleEnd: 12000}

	still, _ := ComputeDimensions(DimensionParams{ID: "still", Start: 3990, End: 4010, Window: w})
	still.Height = 20

	tests := []struct {
		name       string
		start, end int64
		dragTo     int64
	}{
		{name: "rightwards", start: 1000, end: 2000, dragTo: 6000},
		{name: "leftwards", start: 6000, end: 7000, dragTo: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moving, ok := ComputeDimensions(DimensionParams{
				ID:          "moving",
				Start:       tt.start,
				End:         tt.end,
				Window:      w,
				Interaction: Interaction{DraggingID: "moving", DragTime: tt.dragTo},
			})
			if !ok {
				t.Fatal("dragged item was dropped")
			}
			moving.Height = 20

			if !geom.Collides(moving.CollisionRect(), still.CollisionRect()) {
				t.Errorf("swept box %v..%v misses the item it passed over",
					moving.CollisionLeft, moving.CollisionLeft+moving.CollisionWidth)
			}

			rendered := moving.PixelRect()
			if geom.OverlapsHorizontally(rendered, still.PixelRect()) {
				t.Fatal("rest position overlaps, the sweep is not what is being tested")
			}
		})
	}
}
