package item

import (
	"errors"
	"testing"
	"time"
)

var base = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		group   string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{name: "valid", id: "1", group: "g", start: base, end: base.Add(time.Hour)},
		{name: "zero length", id: "1", group: "g", start: base, end: base},
		{name: "empty id", id: " ", group: "g", start: base, end: base.Add(time.Hour), wantErr: ErrEmptyID},
		{name: "empty group", id: "1", group: "", start: base, end: base.Add(time.Hour), wantErr: ErrEmptyGroup},
		{name: "missing time", id: "1", group: "g", end: base, wantErr: ErrMissingTime},
		{name: "inverted", id: "1", group: "g", start: base, end: base.Add(-time.Minute), wantErr: ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := New(tt.id, tt.group, "title", tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if it.ID != tt.id || it.GroupID != tt.group {
				t.Errorf("New() = %+v, want id %q group %q", it, tt.id, tt.group)
			}
		})
	}
}

func TestItem_Overlaps(t *testing.T) {
	it := Item{Start: base, End: base.Add(time.Hour)}

	if !it.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)) {
		t.Error("expected overlap when window starts at item end")
	}
	if !it.Overlaps(base.Add(-time.Hour), base) {
		t.Error("expected overlap when window ends at item start")
	}
	if it.Overlaps(base.Add(time.Hour+time.Millisecond), base.Add(2*time.Hour)) {
		t.Error("expected no overlap after item end")
	}
}

func TestRecords_At(t *testing.T) {
	rows := []map[string]any{
		{"id": 7, "group": "team", "title": "Standup", "start_time": int64(1000), "end_time": 2000.0},
		{"id": "b", "group": 3, "start_time": "2025-01-06T09:00:00Z", "end_time": base, "overlay": true},
		{"id": "c", "start_time": "not a time"},
	}
	src := Records{Rows: rows, Keys: DefaultKeys()}

	if src.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", src.Len())
	}

	first := src.At(0)
	if first.ID != "7" || first.GroupID != "team" || first.Title != "Standup" {
		t.Errorf("At(0) = %+v", first)
	}
	if first.StartMillis() != 1000 || first.EndMillis() != 2000 {
		t.Errorf("At(0) times = %d..%d, want 1000..2000", first.StartMillis(), first.EndMillis())
	}

	second := src.At(1)
	if second.GroupID != "3" || !second.Overlay {
		t.Errorf("At(1) = %+v", second)
	}
	if !second.Start.Equal(base) || !second.End.Equal(base) {
		t.Errorf("At(1) times = %v..%v, want %v", second.Start, second.End, base)
	}

	third := src.At(2)
	if !third.Start.IsZero() || !third.End.IsZero() {
		t.Errorf("At(2) times should be zero, got %v..%v", third.Start, third.End)
	}
}

func TestCollect(t *testing.T) {
	src := List{{ID: "a"}, {ID: "b"}}
	got := Collect(src)
	if len(got) != 2 || got[1].ID != "b" {
		t.Errorf("Collect() = %+v", got)
	}
	if Collect(nil) != nil {
		t.Error("Collect(nil) should be nil")
	}
}

func TestGroupRecords_CustomKeys(t *testing.T) {
	keys := DefaultKeys()
	keys.GroupID = "key"
	keys.GroupTitle = "name"
	src := GroupRecords{
		Rows: []map[string]any{{"key": "a", "name": "Alpha"}, {"key": "b"}},
		Keys: keys,
	}

	got := CollectGroups(src)
	if len(got) != 2 {
		t.Fatalf("CollectGroups() len = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].Title != "Alpha" {
		t.Errorf("group 0 = %+v", got[0])
	}
	if got[1].Label() != "b" {
		t.Errorf("group 1 label = %q, want %q", got[1].Label(), "b")
	}
}
