package layout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/timelane/internal/geom"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

// ErrUnknownMode is returned by ParseKind for unsupported stacking modes.
var ErrUnknownMode = errors.New("unknown stacking mode")

// Kind selects a stacking strategy.
type Kind int

const (
	Free Kind = iota
	None
	Fixed
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Fixed:
		return "fixed"
	default:
		return "free"
	}
}

// ParseKind parses a stacking mode name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "stack", "":
		return Free, nil
	case "none", "nostack":
		return None, nil
	case "fixed", "fixed-height":
		return Fixed, nil
	default:
		return Free, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// FixedParams configures fixed-height lanes.
type FixedParams struct {
	LaneHeight float64
	ItemHeight float64
	Spacing    float64
	Timeframe  timeunit.Unit
	Location   *time.Location
}

// Mode is a stacking strategy with its parameters. Fixed is only read when
// Kind is Fixed.
type Mode struct {
	Kind  Kind
	Fixed FixedParams
}

// FreeMode returns the free stacking mode.
func FreeMode() Mode { return Mode{Kind: Free} }

// NoStackMode returns the overlapping single-row mode.
func NoStackMode() Mode { return Mode{Kind: None} }

// FixedMode returns the fixed-height mode.
func FixedMode(p FixedParams) Mode { return Mode{Kind: Fixed, Fixed: p} }

// Result is the outcome of a stacking strategy.
type Result struct {
	TotalHeight  float64
	GroupHeights []float64
	GroupTops    []float64
	Groups       [][]Entry
	ShowMore     []overflow.Button
}

// Arrange runs the strategy selected by mode.
func Arrange(mode Mode, groups [][]Entry, lineHeight, headerHeight float64, force bool) Result {
	switch mode.Kind {
	case None:
		return NoStack(groups, lineHeight, headerHeight, force)
	case Fixed:
		return StackFixedHeight(groups, headerHeight, mode.Fixed)
	default:
		return Stack(groups, lineHeight, headerHeight, force)
	}
}

// Entry returns the entry with the given id.
func (r Result) Entry(id string) (Entry, bool) {
	for _, lane := range r.Groups {
		for _, e := range lane {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Collisions returns the ids of positioned, visible entries in the same lane
// whose collision rectangles overlap the entry with the given id.
func (r Result) Collisions(id string) []string {
	for _, lane := range r.Groups {
		idx := -1
		for i, e := range lane {
			if e.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		target := lane[idx]
		var out []string
		for i, other := range lane {
			if i == idx || other.Dim.Hide || !other.Dim.Positioned {
				continue
			}
			if geom.Collides(target.Dim.CollisionRect(), other.Dim.CollisionRect()) {
				out = append(out, other.ID)
			}
		}
		return out
	}
	return nil
}

// cloneGroups copies the lanes so strategies never write to their input.
func cloneGroups(groups [][]Entry, force bool) [][]Entry {
	out := make([][]Entry, len(groups))
	for i, lane := range groups {
		out[i] = make([]Entry, len(lane))
		copy(out[i], lane)
		if force {
			for j := range out[i] {
				out[i][j].Dim.Positioned = false
				out[i][j].Dim.Top = 0
			}
		}
	}
	return out
}

// firstCollision returns the index of the first entry in lane, other than
// self, that is eligible and collides with r, or -1.
func firstCollision(lane []Entry, self int, r geom.Rect, eligible func(i int) bool) int {
	for j := range lane {
		if j == self || !eligible(j) {
			continue
		}
		if geom.Collides(r, lane[j].Dim.CollisionRect()) {
			return j
		}
	}
	return -1
}

// settle bumps top down by step past colliders until it is free.
func settle(lane []Entry, self int, top, step float64, eligible func(i int) bool) float64 {
	r := lane[self].Dim.CollisionRect()
	for {
		r.Top = top
		j := firstCollision(lane, self, r, eligible)
		if j < 0 {
			return top
		}
		next := lane[j].Dim.Top + step
		if next <= top {
			next = top + step
		}
		top = next
	}
}
