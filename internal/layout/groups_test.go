package layout

import (
	"testing"
	"time"

	"github.com/javiermolinar/timelane/internal/item"
)

func ms(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func TestSelectVisible(t *testing.T) {
	src := item.List{
		{ID: "before", GroupID: "g", Start: ms(0), End: ms(999)},
		{ID: "touches-start", GroupID: "g", Start: ms(500), End: ms(1000)},
		{ID: "inside", GroupID: "g", Start: ms(1500), End: ms(2500)},
		{ID: "touches-end", GroupID: "g", Start: ms(3000), End: ms(3500)},
		{ID: "after", GroupID: "g", Start: ms(3001), End: ms(4000)},
		{ID: "spans", GroupID: "g", Start: ms(0), End: ms(9000)},
	}

	got := SelectVisible(src, 1000, 3000)

	want := []string{"touches-start", "inside", "touches-end", "spans"}
	if len(got) != len(want) {
		t.Fatalf("SelectVisible() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSelectVisible_WiderWindowKeepsItems(t *testing.T) {
	var src item.List
	for i := int64(0); i < 40; i++ {
		start := i * 250
		src = append(src, item.Item{ID: string(rune('a' + i)), Start: ms(start), End: ms(start + 600)})
	}

	narrow := SelectVisible(src, 3000, 5000)
	wide := SelectVisible(src, 2000, 6000)

	kept := make(map[string]bool, len(wide))
	for _, it := range wide {
		kept[it.ID] = true
	}
	for _, it := range narrow {
		if !kept[it.ID] {
			t.Errorf("item %q visible in the narrow window but not the wide one", it.ID)
		}
	}
}

func TestSelectVisible_Records(t *testing.T) {
	src := item.Records{
		Rows: []map[string]any{
			{"id": 1, "group": "g", "start_time": int64(100), "end_time": int64(200)},
			{"id": 2, "group": "g", "start_time": int64(5000), "end_time": int64(6000)},
		},
		Keys: item.DefaultKeys(),
	}

	got := SelectVisible(src, 0, 1000)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("SelectVisible(records) = %+v, want item 1 only", got)
	}
}

func TestGroupOrder(t *testing.T) {
	groups := item.Groups{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	got := GroupOrder(groups)

	want := map[string]int{"b": 0, "a": 1, "c": 2}
	if len(got) != len(want) {
		t.Fatalf("GroupOrder() = %v, want %v", got, want)
	}
	for id, ord := range want {
		if got[id] != ord {
			t.Errorf("order[%q] = %d, want %d", id, got[id], ord)
		}
	}
}

func TestGroupByOrder(t *testing.T) {
	entries := []Entry{
		{ID: "1", Dim: Dimensions{Order: 1}},
		{ID: "2", Dim: Dimensions{Order: 0}},
		{ID: "3", Dim: Dimensions{Order: 5}},
		{ID: "4", Dim: Dimensions{Order: -1}},
		{ID: "5", Dim: Dimensions{Order: 1}},
	}

	got := GroupByOrder(entries, 3)

	if len(got) != 3 {
		t.Fatalf("GroupByOrder() returned %d lanes, want 3", len(got))
	}
	if len(got[0]) != 1 || got[0][0].ID != "2" {
		t.Errorf("lane 0 = %+v, want [2]", got[0])
	}
	if len(got[1]) != 2 || got[1][0].ID != "1" || got[1][1].ID != "5" {
		t.Errorf("lane 1 = %+v, want [1 5]", got[1])
	}
	if len(got[2]) != 0 {
		t.Errorf("lane 2 = %+v, want empty", got[2])
	}
}
