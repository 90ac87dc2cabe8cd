package layout

import (
	"time"

	"github.com/javiermolinar/timelane/internal/geom"
	"github.com/javiermolinar/timelane/internal/overflow"
)

// Fixed-height defaults.
const (
	DefaultItemHeight  = 20
	DefaultItemSpacing = 3
	DefaultLaneHeight  = 90
)

// StackFixedHeight stacks entries inside lanes of a fixed height. Rows are
// ItemHeight+Spacing apart, starting Spacing below the lane top. An entry that
// would cross the bottom of its lane is hidden, as is the entry right before
// it, whose rectangle stays reserved for the show-more affordance. Every entry
// takes the highest free row, so late entries that do not overlap earlier
// ones in time share their rows. Hidden entries are collected into show-more
// buttons by timeframe slot.
func StackFixedHeight(groups [][]Entry, headerHeight float64, p FixedParams) Result {
	p = p.withDefaults()
	lanes := cloneGroups(groups, true)
	bucketer := overflow.New(p.Timeframe, p.Location)

	res := Result{
		TotalHeight:  headerHeight,
		GroupHeights: make([]float64, 0, len(lanes)),
		GroupTops:    make([]float64, 0, len(lanes)),
		Groups:       lanes,
	}

	step := p.ItemHeight + p.Spacing

	for _, lane := range lanes {
		laneTop := res.TotalHeight
		laneBottom := laneTop + p.LaneHeight
		res.GroupTops = append(res.GroupTops, laneTop)

		// reserved marks entries whose rectangle blocks later entries.
		reserved := make([]bool, len(lane))
		blocking := func(i int) bool { return reserved[i] }

		for i := range lane {
			dim := &lane[i].Dim
			dim.Height = p.ItemHeight
			dim.Hide = false

			top := settle(lane, i, laneTop+p.Spacing, step, blocking)
			dim.Top = top

			if top+dim.Height > laneBottom+geom.Epsilon {
				dim.Hide = true
				bucketer.Add(toOverflow(lane[i], p.Location))

				if i > 0 && !lane[i-1].Dim.Hide {
					lane[i-1].Dim.Hide = true
					bucketer.Add(toOverflow(lane[i-1], p.Location))
				}
				continue
			}

			dim.Positioned = true
			reserved[i] = true
		}

		res.GroupHeights = append(res.GroupHeights, p.LaneHeight)
		res.TotalHeight += p.LaneHeight
	}

	res.ShowMore = bucketer.Buttons()
	return res
}

func toOverflow(e Entry, loc *time.Location) overflow.Item {
	return overflow.Item{
		ID:      e.ID,
		GroupID: e.GroupID,
		Title:   e.Title,
		Start:   time.UnixMilli(e.Start).In(loc),
		End:     time.UnixMilli(e.End).In(loc),
	}
}

func (p FixedParams) withDefaults() FixedParams {
	if p.LaneHeight <= 0 {
		p.LaneHeight = DefaultLaneHeight
	}
	if p.ItemHeight <= 0 {
		p.ItemHeight = DefaultItemHeight
	}
	if p.Spacing <= 0 {
		p.Spacing = DefaultItemSpacing
	}
	if p.Location == nil {
		p.Location = time.Local
	}
	return p
}
