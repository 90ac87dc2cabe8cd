package layout

import "github.com/javiermolinar/timelane/internal/item"

// GroupOrder maps every group id to its lane order, which is the group's
// position in src.
func GroupOrder(src item.GroupSource) map[string]int {
	order := make(map[string]int, src.Len())
	for i, n := 0, src.Len(); i < n; i++ {
		order[src.At(i).ID] = i
	}
	return order
}

// GroupByOrder splits entries into one slice per lane using Dimensions.Order.
// Entries with an order outside [0, lanes) are dropped.
func GroupByOrder(entries []Entry, lanes int) [][]Entry {
	out := make([][]Entry, lanes)
	for _, e := range entries {
		if e.Dim.Order < 0 || e.Dim.Order >= lanes {
			continue
		}
		out[e.Dim.Order] = append(out[e.Dim.Order], e)
	}
	return out
}
