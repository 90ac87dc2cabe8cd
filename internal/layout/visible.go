package layout

import "github.com/javiermolinar/timelane/internal/item"

// SelectVisible returns the items of src that overlap [canvasStart, canvasEnd].
// Both bounds are inclusive, in unix ms.
func SelectVisible(src item.Source, canvasStart, canvasEnd int64) []item.Item {
	var out []item.Item
	for i, n := 0, src.Len(); i < n; i++ {
		it := src.At(i)
		if it.EndMillis() >= canvasStart && it.StartMillis() <= canvasEnd {
			out = append(out, it)
		}
	}
	return out
}
