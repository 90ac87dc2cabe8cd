package layout

// NoStack centres every entry on its lane's single row. Overlapping entries
// are drawn over each other and every lane is lineHeight tall.
func NoStack(groups [][]Entry, lineHeight, headerHeight float64, force bool) Result {
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

		for i := range lane {
			dim := &lane[i].Dim
			if !dim.Positioned {
				dim.Top = laneTop + (lineHeight-dim.Height)/2
				dim.Positioned = true
			}
		}

		res.GroupHeights = append(res.GroupHeights, lineHeight)
		res.TotalHeight += lineHeight
	}

	return res
}
