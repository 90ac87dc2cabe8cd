package viewport

import (
	"errors"
	"testing"
	"time"
)

var base = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func newTest(t *testing.T) *Viewport {
	t.Helper()
	v, err := New(base, base.Add(8*time.Hour), 800, Limits{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}

func TestNew(t *testing.T) {
	v := newTest(t)

	if got, want := v.CanvasStart(), base.Add(-8*time.Hour); !got.Equal(want) {
		t.Errorf("CanvasStart() = %v, want %v", got, want)
	}
	if got, want := v.CanvasEnd(), base.Add(16*time.Hour); !got.Equal(want) {
		t.Errorf("CanvasEnd() = %v, want %v", got, want)
	}
	if v.CanvasWidth() != 2400 {
		t.Errorf("CanvasWidth() = %v, want 2400", v.CanvasWidth())
	}
	if v.Limits().MinZoom != DefaultMinZoom || v.Limits().MaxZoom != DefaultMaxZoom {
		t.Errorf("Limits() = %+v, want defaults", v.Limits())
	}

	w := v.Window()
	if w.CanvasStart != base.Add(-8*time.Hour).UnixMilli() || w.VisibleEnd != base.Add(8*time.Hour).UnixMilli() {
		t.Errorf("Window() = %+v", w)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(base, base, 800, Limits{}); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("New(empty range) error = %v, want ErrEmptyRange", err)
	}
	if _, err := New(base, base.Add(time.Hour), 0, Limits{}); !errors.Is(err, ErrNoWidth) {
		t.Errorf("New(zero width) error = %v, want ErrNoWidth", err)
	}
}

func TestPan(t *testing.T) {
	tests := []struct {
		name      string
		pan       time.Duration
		wantReset bool
	}{
		{name: "small step right", pan: time.Hour, wantReset: false},
		{name: "small step left", pan: -3 * time.Hour, wantReset: false},
		{name: "half a zoom", pan: 4 * time.Hour, wantReset: false},
		{name: "past the middle third", pan: 5 * time.Hour, wantReset: true},
		{name: "far left", pan: -6 * time.Hour, wantReset: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTest(t)
			canvas := v.CanvasStart()

			if got := v.Pan(tt.pan); got != tt.wantReset {
				t.Errorf("Pan(%v) reset = %v, want %v", tt.pan, got, tt.wantReset)
			}
			if !v.VisibleStart().Equal(base.Add(tt.pan)) {
				t.Errorf("VisibleStart() = %v, want %v", v.VisibleStart(), base.Add(tt.pan))
			}

			wantCanvas := canvas
			if tt.wantReset {
				wantCanvas = base.Add(tt.pan).Add(-8 * time.Hour)
			}
			if !v.CanvasStart().Equal(wantCanvas) {
				t.Errorf("CanvasStart() = %v, want %v", v.CanvasStart(), wantCanvas)
			}
		})
	}
}

func TestPanPixels(t *testing.T) {
	v := newTest(t)
	v.PanPixels(100) // 100px of 800px is one hour

	if want := base.Add(time.Hour); !v.VisibleStart().Equal(want) {
		t.Errorf("VisibleStart() = %v, want %v", v.VisibleStart(), want)
	}
}

func TestChangeZoom(t *testing.T) {
	v := newTest(t)

	if !v.ChangeZoom(0.5, 0.5) {
		t.Error("zooming in did not reset the canvas")
	}
	if v.Zoom() != 4*time.Hour {
		t.Errorf("Zoom() = %v, want 4h", v.Zoom())
	}
	if want := base.Add(2 * time.Hour); !v.VisibleStart().Equal(want) {
		t.Errorf("VisibleStart() = %v, want %v", v.VisibleStart(), want)
	}
	if want := base.Add(-2 * time.Hour); !v.CanvasStart().Equal(want) {
		t.Errorf("CanvasStart() = %v, want %v", v.CanvasStart(), want)
	}

	v.ChangeZoom(0.01, 0)
	if v.Zoom() != DefaultMinZoom {
		t.Errorf("Zoom() = %v, want clamp to %v", v.Zoom(), DefaultMinZoom)
	}
	if v.ChangeZoom(0.5, 0.5) {
		t.Error("zooming past the minimum reported a reset")
	}

	v.ChangeZoom(1e9, 0.5)
	if v.Zoom() != DefaultMaxZoom {
		t.Errorf("Zoom() = %v, want clamp to %v", v.Zoom(), DefaultMaxZoom)
	}
}

func TestScrollTo(t *testing.T) {
	v := newTest(t)
	target := base.Add(48 * time.Hour)

	if !v.ScrollTo(target) {
		t.Error("ScrollTo() far away did not reset the canvas")
	}
	if want := target.Add(-4 * time.Hour); !v.VisibleStart().Equal(want) {
		t.Errorf("VisibleStart() = %v, want %v", v.VisibleStart(), want)
	}
}

func TestTimeAt(t *testing.T) {
	v := newTest(t)

	tests := []struct {
		x    float64
		snap time.Duration
		want time.Time
	}{
		{x: 0, want: base},
		{x: 100, want: base.Add(time.Hour)},
		{x: 130, snap: 15 * time.Minute, want: base.Add(time.Hour + 15*time.Minute)},
		{x: 130, want: base.Add(time.Hour + 18*time.Minute)},
	}

	for _, tt := range tests {
		if got := v.TimeAt(tt.x, tt.snap); !got.Equal(tt.want) {
			t.Errorf("TimeAt(%v, %v) = %v, want %v", tt.x, tt.snap, got, tt.want)
		}
	}

	if got := v.XAt(base.Add(2 * time.Hour)); got != 200 {
		t.Errorf("XAt(+2h) = %v, want 200", got)
	}
}

func TestTimeAt_SnapFromEpoch(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	v, err := New(epoch, epoch.Add(time.Hour), 60, Limits{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		x    float64
		snap time.Duration
		want time.Time
	}{
		{name: "seven minutes", x: 10, snap: 7 * time.Minute, want: epoch.Add(7 * time.Minute)},
		{name: "on a boundary", x: 14, snap: 7 * time.Minute, want: epoch.Add(14 * time.Minute)},
		{name: "before the epoch", x: -1, snap: 7 * time.Minute, want: epoch.Add(-7 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.TimeAt(tt.x, tt.snap); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	v := newTest(t)
	if err := v.Resize(1200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if v.CanvasWidth() != 3600 {
		t.Errorf("CanvasWidth() = %v, want 3600", v.CanvasWidth())
	}
	if err := v.Resize(-1); !errors.Is(err, ErrNoWidth) {
		t.Errorf("Resize(-1) error = %v, want ErrNoWidth", err)
	}
}

func TestRowAt(t *testing.T) {
	heights := []float64{30, 60, 30}

	tests := []struct {
		y      float64
		want   int
		wantOK bool
	}{
		{y: 10, wantOK: false},
		{y: 60, want: 0, wantOK: true},
		{y: 89.9, want: 0, wantOK: true},
		{y: 90, want: 1, wantOK: true},
		{y: 170, want: 2, wantOK: true},
		{y: 180, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := RowAt(tt.y, 60, heights)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("RowAt(%v) = %d, %v, want %d, %v", tt.y, got, ok, tt.want, tt.wantOK)
		}
	}
}
