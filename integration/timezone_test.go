package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/timelane/internal/item"
	"github.com/javiermolinar/timelane/internal/overflow"
	"github.com/javiermolinar/timelane/internal/timeunit"
)

func TestStoredTimes_KeepInstant(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}
	repo := openRepo(t)
	ctx := context.Background()

	// 08:00 in Tokyo is 23:00 UTC on the previous day.
	start := time.Date(2025, 1, 20, 8, 0, 0, 0, tokyo)
	seed(t, repo, item.Item{ID: "early", GroupID: "team", Start: start, End: start.Add(time.Hour)})

	utcDay := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)
	items, err := repo.ListItemsInRange(ctx, utcDay, utcDay.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ListItemsInRange: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items on the UTC day: got %d, want 1", len(items))
	}
	if !items[0].Start.Equal(start) {
		t.Errorf("start: got %v, want %v", items[0].Start, start)
	}
}

func TestShowMoreBuckets_FollowLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}

	// Both items fall on 2025-01-19 in UTC but on different Tokyo days.
	a := time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC) // 19:00 Tokyo, Jan 19
	b := time.Date(2025, 1, 19, 16, 0, 0, 0, time.UTC) // 01:00 Tokyo, Jan 20

	tests := []struct {
		name string
		loc  *time.Location
		want int
	}{
		{name: "utc", loc: time.UTC, want: 1},
		{name: "tokyo", loc: tokyo, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bk := overflow.New(timeunit.Day, tt.loc)
			bk.Add(overflow.Item{ID: "a", GroupID: "team", Start: a, End: a.Add(time.Hour)})
			bk.Add(overflow.Item{ID: "b", GroupID: "team", Start: b, End: b.Add(time.Hour)})
			if got := len(bk.Buttons()); got != tt.want {
				t.Errorf("buttons: got %d, want %d", got, tt.want)
			}
		})
	}
}
