// Package item defines the core domain types for timelane.
package item

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyID        = errors.New("id cannot be empty")
	ErrEmptyGroup     = errors.New("group cannot be empty")
	ErrMissingTime    = errors.New("start and end time are required")
	ErrEndBeforeStart = errors.New("end time must not be before start time")
)

// Domain errors.
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrGroupNotFound = errors.New("group not found")
)

// Item is a scheduled interval shown in one lane of the timeline.
type Item struct {
	ID      string
	GroupID string
	Title   string
	Start   time.Time
	End     time.Time
	// Overlay items are drawn on top of the lane and take no part in stacking.
	Overlay bool
}

// Group is a lane descriptor. Lane order is the group's position in the list
// handed to the layout engine, not a property of the group.
type Group struct {
	ID    string
	Title string
}

// New creates a new Item with validation.
// Unlike items coming from feeds, items created by hand must not end before
// they start.
func New(id, groupID, title string, start, end time.Time) (*Item, error) {
	it := &Item{
		ID:      strings.TrimSpace(id),
		GroupID: strings.TrimSpace(groupID),
		Title:   title,
		Start:   start,
		End:     end,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// Validate checks the fields required to store an item.
func (i Item) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if i.GroupID == "" {
		return ErrEmptyGroup
	}
	if i.Start.IsZero() || i.End.IsZero() {
		return ErrMissingTime
	}
	if i.End.Before(i.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// StartMillis returns the start as unix milliseconds.
func (i Item) StartMillis() int64 {
	return i.Start.UnixMilli()
}

// EndMillis returns the end as unix milliseconds.
func (i Item) EndMillis() int64 {
	return i.End.UnixMilli()
}

// Duration returns End - Start, which may be negative for malformed items.
func (i Item) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether the item intersects [start, end]. Bounds are inclusive.
func (i Item) Overlaps(start, end time.Time) bool {
	return !i.End.Before(start) && !i.Start.After(end)
}

// String returns a compact representation for logs and errors.
func (i Item) String() string {
	return fmt.Sprintf("%s[%s %s..%s]", i.ID, i.GroupID,
		i.Start.Format("2006-01-02 15:04"), i.End.Format("2006-01-02 15:04"))
}

// Label returns the title, falling back to the id.
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.ID
}

// Label returns the title, falling back to the id.
func (g Group) Label() string {
	if g.Title != "" {
		return g.Title
	}
	return g.ID
}
