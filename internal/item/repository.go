package item

import (
	"context"
	"time"
)

// Move describes the result of a drop or resize that should be persisted.
type Move struct {
	ID      string
	GroupID string
	Start   time.Time
	End     time.Time
}

// Repository defines the storage interface for groups and items.
type Repository interface {
	// UpsertGroups stores groups in the given lane order.
	UpsertGroups(ctx context.Context, groups []Group) error

	// ListGroups returns all groups in lane order.
	ListGroups(ctx context.Context) ([]Group, error)

	// CreateItem adds a new item. The group must exist.
	CreateItem(ctx context.Context, item *Item) error

	// UpsertItems inserts or replaces items in a batch.
	UpsertItems(ctx context.Context, items []Item) error

	// GetItem retrieves an item by ID.
	// Returns ErrItemNotFound if it does not exist.
	GetItem(ctx context.Context, id string) (*Item, error)

	// MoveItem applies a drop or resize to an item.
	MoveItem(ctx context.Context, move Move) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error

	// ListItemsInRange returns the items intersecting [start, end].
	ListItemsInRange(ctx context.Context, start, end time.Time) ([]Item, error)

	// ReplaceGroupItems atomically swaps every item of a group for items.
	ReplaceGroupItems(ctx context.Context, groupID string, items []Item) error

	// Close releases any resources held by the repository.
	Close() error
}
