package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/item"
)

type fakeStore struct {
	groups   []item.Group
	replaced map[string][]item.Item
}

func (s *fakeStore) UpsertGroups(_ context.Context, groups []item.Group) error {
	s.groups = append(s.groups, groups...)
	return nil
}

func (s *fakeStore) ReplaceGroupItems(_ context.Context, groupID string, items []item.Item) error {
	if s.replaced == nil {
		s.replaced = make(map[string][]item.Item)
	}
	s.replaced[groupID] = items
	return nil
}

type fakeFetcher map[string][]byte

func (f fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return body, nil
}

func TestSyncer_SyncAll(t *testing.T) {
	store := &fakeStore{}
	fetcher := fakeFetcher{"https://example.com/team.ics": fixture()}
	sources := []Source{
		{ID: "team", Name: "Team", URL: "https://example.com/team.ics"},
		{ID: "ops", Name: "Ops", URL: "https://example.com/ops.ics"},
	}

	s := NewSyncer(store, fetcher, sources, SyncOptions{Location: time.UTC, Logger: zerolog.Nop()})
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

	results, err := s.SyncAll(context.Background(), now)
	if err == nil || !strings.Contains(err.Error(), "feed ops") {
		t.Errorf("expected ops failure to be reported, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[1].Err == nil {
		t.Errorf("expected team ok and ops failed, got %+v", results)
	}

	if len(store.groups) != 2 || store.groups[0].ID != "team" || store.groups[1].Title != "Ops" {
		t.Errorf("expected both feed lanes registered, got %+v", store.groups)
	}
	if _, ok := store.replaced["ops"]; ok {
		t.Error("expected failed feed to keep its items")
	}

	team := store.replaced["team"]
	// Four standup occurrences plus the offsite day.
	if len(team) != 5 || results[0].Items != 5 {
		t.Fatalf("expected 5 team items, got %d", len(team))
	}
	for _, it := range team {
		if !strings.HasPrefix(it.ID, "team:") {
			t.Errorf("expected id prefixed with the feed, got %s", it.ID)
		}
		if it.GroupID != "team" {
			t.Errorf("expected group team, got %s", it.GroupID)
		}
	}
}

func TestSyncer_NoSources(t *testing.T) {
	store := &fakeStore{}
	s := NewSyncer(store, fakeFetcher{}, nil, SyncOptions{})

	results, err := s.SyncAll(context.Background(), time.Now())
	if err != nil || results != nil {
		t.Errorf("expected nothing to do, got %v, %v", results, err)
	}
	if s.horizon != DefaultHorizon {
		t.Errorf("expected default horizon, got %v", s.horizon)
	}
}

func TestSyncer_WatchBadSchedule(t *testing.T) {
	s := NewSyncer(&fakeStore{}, fakeFetcher{}, nil, SyncOptions{})
	if err := s.Watch(context.Background(), "whenever"); err == nil {
		t.Error("expected error for bad schedule")
	}
}

func TestSyncer_WatchStops(t *testing.T) {
	s := NewSyncer(&fakeStore{}, fakeFetcher{}, nil, SyncOptions{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, "@every 1h") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Watch to return after cancel")
	}
}
