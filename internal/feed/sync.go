package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timelane/internal/item"
)

// DefaultHorizon is how far before and after now feeds are expanded.
const DefaultHorizon = 90 * 24 * time.Hour

// Store is the part of item.Repository a sync writes to.
type Store interface {
	UpsertGroups(ctx context.Context, groups []item.Group) error
	ReplaceGroupItems(ctx context.Context, groupID string, items []item.Item) error
}

// BodyFetcher downloads a feed body.
type BodyFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result is the outcome of syncing one source.
type Result struct {
	Source Source
	Items  int
	Err    error
}

// Syncer refreshes every source into the lane of the same id.
type Syncer struct {
	store   Store
	fetcher BodyFetcher
	sources []Source
	horizon time.Duration
	loc     *time.Location
	log     zerolog.Logger
}

// SyncOptions configures a Syncer.
type SyncOptions struct {
	Horizon  time.Duration
	Location *time.Location
	Logger   zerolog.Logger
}

// NewSyncer creates a Syncer.
func NewSyncer(store Store, fetcher BodyFetcher, sources []Source, opts SyncOptions) *Syncer {
	if opts.Horizon <= 0 {
		opts.Horizon = DefaultHorizon
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Syncer{
		store:   store,
		fetcher: fetcher,
		sources: sources,
		horizon: opts.Horizon,
		loc:     opts.Location,
		log:     opts.Logger.With().Str("component", "sync").Logger(),
	}
}

// SyncAll syncs every source. A failing source keeps its previous items and
// does not stop the others; the joined error reports all failures.
func (s *Syncer) SyncAll(ctx context.Context, now time.Time) ([]Result, error) {
	if len(s.sources) == 0 {
		return nil, nil
	}

	groups := make([]item.Group, 0, len(s.sources))
	for _, src := range s.sources {
		groups = append(groups, item.Group{ID: src.ID, Title: src.Name})
	}
	if err := s.store.UpsertGroups(ctx, groups); err != nil {
		return nil, fmt.Errorf("register feed lanes: %w", err)
	}

	results := make([]Result, 0, len(s.sources))
	var errs []error
	for _, src := range s.sources {
		n, err := s.syncOne(ctx, src, now)
		if err != nil {
			s.log.Error().Err(err).Str("feed", src.ID).Msg("sync failed")
			errs = append(errs, fmt.Errorf("feed %s: %w", src.ID, err))
		} else {
			s.log.Info().Str("feed", src.ID).Int("items", n).Msg("feed synced")
		}
		results = append(results, Result{Source: src, Items: n, Err: err})
	}
	return results, errors.Join(errs...)
}

func (s *Syncer) syncOne(ctx context.Context, src Source, now time.Time) (int, error) {
	body, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return 0, err
	}
	events, err := ParseICS(src.ID, body)
	if err != nil {
		return 0, err
	}

	items := Expand(events, now.Add(-s.horizon), now.Add(s.horizon), s.loc)
	// UIDs are only unique within a calendar.
	for i := range items {
		items[i].ID = src.ID + ":" + items[i].ID
	}
	if err := s.store.ReplaceGroupItems(ctx, src.ID, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Watch runs SyncAll on the cron schedule spec until ctx is done.
func (s *Syncer) Watch(ctx context.Context, spec string) error {
	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(spec, func() {
		// Failures are already logged per feed.
		_, _ = s.SyncAll(ctx, time.Now())
	})
	if err != nil {
		return fmt.Errorf("parse sync schedule %q: %w", spec, err)
	}

	s.log.Info().Str("schedule", spec).Int("feeds", len(s.sources)).Msg("watching feeds")
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
