package overflow

import (
	"testing"
	"time"

	"github.com/javiermolinar/timelane/internal/timeunit"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestBucketer_Add(t *testing.T) {
	b := New(timeunit.Day, time.UTC)

	b.Add(Item{ID: "a", GroupID: "g1", Start: at(3, 9), End: at(3, 11)})
	b.Add(Item{ID: "b", GroupID: "g1", Start: at(3, 22), End: at(5, 2)})
	b.Add(Item{ID: "c", GroupID: "g2", Start: at(4, 8), End: at(4, 8)})

	buttons := b.Buttons()

	wantIDs := []string{
		"g1-20250303T000000",
		"g1-20250304T000000",
		"g1-20250305T000000",
		"g2-20250304T000000",
	}
	if len(buttons) != len(wantIDs) {
		t.Fatalf("Buttons() returned %d buttons, want %d: %+v", len(buttons), len(wantIDs), buttons)
	}
	for i, id := range wantIDs {
		if buttons[i].ID != id {
			t.Errorf("buttons[%d].ID = %q, want %q", i, buttons[i].ID, id)
		}
	}

	if got := len(buttons[0].Items); got != 2 {
		t.Errorf("first slot has %d items, want 2", got)
	}
	if got := buttons[0].Label; got != "Monday, March 3, 2025" {
		t.Errorf("Label = %q, want %q", got, "Monday, March 3, 2025")
	}
	if got := len(buttons[3].Items); got != 1 {
		t.Errorf("zero-length item landed in %d items, want 1", got)
	}
}

func TestBucketer_Deduplicates(t *testing.T) {
	b := New(timeunit.Hour, time.UTC)
	it := Item{ID: "a", GroupID: "g", Start: at(3, 9), End: at(3, 10)}

	b.Add(it)
	b.Add(it)

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	if got := len(b.Buttons()[0].Items); got != 1 {
		t.Errorf("bucket holds %d items, want 1", got)
	}
}

func TestNew_FallsBackToDay(t *testing.T) {
	if got := New(timeunit.Minute, nil).Unit(); got != timeunit.Day {
		t.Errorf("Unit() = %q, want %q", got, timeunit.Day)
	}
}

func TestBucketer_ButtonsAreCopies(t *testing.T) {
	b := New(timeunit.Day, time.UTC)
	b.Add(Item{ID: "a", GroupID: "g", Start: at(3, 9), End: at(3, 10)})

	first := b.Buttons()
	first[0].Items[0].ID = "changed"

	if got := b.Buttons()[0].Items[0].ID; got != "a" {
		t.Errorf("internal item mutated to %q", got)
	}
}

func TestForGroupAndFind(t *testing.T) {
	b := New(timeunit.Week, time.UTC)
	b.Add(Item{ID: "a", GroupID: "g1", Start: at(3, 9), End: at(3, 10)})
	b.Add(Item{ID: "b", GroupID: "g2", Start: at(3, 9), End: at(3, 10)})
	buttons := b.Buttons()

	if got := ForGroup(buttons, "g2"); len(got) != 1 || got[0].Items[0].ID != "b" {
		t.Errorf("ForGroup(g2) = %+v", got)
	}
	if _, ok := Find(buttons, "g1-20250303T000000"); !ok {
		t.Error("Find() did not find the g1 week bucket")
	}
	if _, ok := Find(buttons, "missing"); ok {
		t.Error("Find() found a missing button")
	}
}
