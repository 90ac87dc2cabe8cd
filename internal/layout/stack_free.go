package layout

import "math"

// Stack places every stacking entry on the first free row of its lane, rows
// being lineHeight apart. Lanes grow to fit their deepest row. Entries that do
// not stack sit on the first row. With force, tops from a previous pass are
// discarded first.
func Stack(groups [][]Entry, lineHeight, headerHeight float64, force bool) Result {
	lanes := cloneGroups(groups, force)
	res := Result{
		TotalHeight:  headerHeight,
		GroupHeights: make([]float64, 0, len(lanes)),
		GroupTops:    make([]float64, 0, len(lanes)),
		Groups:       lanes,
	}

	for _, lane := range lanes {
		laneTop := res.TotalHeight
		res.GroupTops = append(res.GroupTops, laneTop)

		placed := func(i int) bool {
			return lane[i].Dim.Positioned && lane[i].Dim.Stack
		}

		groupHeight := 0.0
		for i := range lane {
			dim := &lane[i].Dim
			margin := (lineHeight - dim.Height) / 2

			if !dim.Positioned {
				top := laneTop + margin
				if dim.Stack {
					top = settle(lane, i, top, lineHeight, placed)
				}
				dim.Top = top
				dim.Positioned = true
			}
			groupHeight = math.Max(groupHeight, dim.Top+dim.Height+margin-laneTop)
		}

		height := math.Max(groupHeight, lineHeight)
		res.GroupHeights = append(res.GroupHeights, height)
		res.TotalHeight += height
	}

	return res
}
