// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timelane/internal/item"
)

// SQLite implements item.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ item.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// UpsertGroups stores groups. New groups are appended after the existing ones
// in the given order; existing groups keep their position and get the new title.
func (s *SQLite) UpsertGroups(ctx context.Context, groups []item.Group) error {
	if len(groups) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM lanes`).Scan(&next); err != nil {
		return fmt.Errorf("reading group positions: %w", err)
	}

	query := `
		INSERT INTO lanes (id, title, position) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, g := range groups {
		if g.ID == "" {
			return item.ErrEmptyGroup
		}
		if _, err := stmt.ExecContext(ctx, g.ID, g.Title, next); err != nil {
			return fmt.Errorf("upserting group %q: %w", g.ID, err)
		}
		next++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListGroups returns all groups in lane order.
func (s *SQLite) ListGroups(ctx context.Context) ([]item.Group, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM lanes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []item.Group
	for rows.Next() {
		var g item.Group
		if err := rows.Scan(&g.ID, &g.Title); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

// CreateItem adds a new item to an existing group.
func (s *SQLite) CreateItem(ctx context.Context, it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if err := s.checkGroup(ctx, s.db, it.GroupID); err != nil {
		return err
	}

	query := `
		INSERT INTO items (id, group_id, title, start_ms, end_ms, overlay)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, itemArgs(*it)...); err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// UpsertItems inserts or replaces items in a batch using a transaction.
func (s *SQLite) UpsertItems(ctx context.Context, items []item.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertItemsTx(ctx, tx, s, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLite) GetItem(ctx context.Context, id string) (*item.Item, error) {
	query := `
		SELECT id, group_id, title, start_ms, end_ms, overlay
		FROM items
		WHERE id = ?
	`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return &it, nil
}

// MoveItem persists a drop or resize.
func (s *SQLite) MoveItem(ctx context.Context, move item.Move) error {
	if move.End.Before(move.Start) {
		return item.ErrEndBeforeStart
	}
	if err := s.checkGroup(ctx, s.db, move.GroupID); err != nil {
		return err
	}

	query := `
		UPDATE items
		SET group_id = ?, start_ms = ?, end_ms = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, move.GroupID, move.Start.UnixMilli(), move.End.UnixMilli(), move.ID)
	if err != nil {
		return fmt.Errorf("moving item: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, move.ID)
	}
	return nil
}

// DeleteItem removes an item.
func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	}
	return nil
}

// ListItemsInRange returns the items intersecting [start, end], ordered by
// start time.
func (s *SQLite) ListItemsInRange(ctx context.Context, start, end time.Time) ([]item.Item, error) {
	query := `
		SELECT id, group_id, title, start_ms, end_ms, overlay
		FROM items
		WHERE end_ms >= ? AND start_ms <= ?
		ORDER BY start_ms, id
	`

	rows, err := s.db.QueryContext(ctx, query, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// ReplaceGroupItems deletes every item of a group and inserts items in one
// transaction.
func (s *SQLite) ReplaceGroupItems(ctx context.Context, groupID string, items []item.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.checkGroup(ctx, tx, groupID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("clearing group items: %w", err)
	}

	for _, it := range items {
		if it.GroupID != groupID {
			return fmt.Errorf("item %s belongs to group %s, not %s", it.ID, it.GroupID, groupID)
		}
	}
	if err := upsertItemsTx(ctx, tx, s, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// checkGroup returns ErrGroupNotFound if the group does not exist.
func (s *SQLite) checkGroup(ctx context.Context, q queryer, groupID string) error {
	if groupID == "" {
		return item.ErrEmptyGroup
	}
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM lanes WHERE id = ?`, groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", item.ErrGroupNotFound, groupID)
	}
	if err != nil {
		return fmt.Errorf("checking group: %w", err)
	}
	return nil
}

func upsertItemsTx(ctx context.Context, tx *sql.Tx, s *SQLite, items []item.Item) error {
	query := `
		INSERT INTO items (id, group_id, title, start_ms, end_ms, overlay)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			group_id = excluded.group_id,
			title = excluded.title,
			start_ms = excluded.start_ms,
			end_ms = excluded.end_ms,
			overlay = excluded.overlay,
			updated_at = CURRENT_TIMESTAMP
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	checked := make(map[string]bool)
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", it.ID, err)
		}
		if !checked[it.GroupID] {
			if err := s.checkGroup(ctx, tx, it.GroupID); err != nil {
				return err
			}
			checked[it.GroupID] = true
		}
		if _, err := stmt.ExecContext(ctx, itemArgs(it)...); err != nil {
			return fmt.Errorf("upserting item %q: %w", it.ID, err)
		}
	}
	return nil
}

func itemArgs(it item.Item) []any {
	overlay := 0
	if it.Overlay {
		overlay = 1
	}
	return []any{it.ID, it.GroupID, it.Title, it.Start.UnixMilli(), it.End.UnixMilli(), overlay}
}

func scanItem(row scanner) (item.Item, error) {
	var (
		it      item.Item
		startMs int64
		endMs   int64
		overlay int
	)
	if err := row.Scan(&it.ID, &it.GroupID, &it.Title, &startMs, &endMs, &overlay); err != nil {
		return item.Item{}, err
	}
	it.Start = time.UnixMilli(startMs)
	it.End = time.UnixMilli(endMs)
	it.Overlay = overlay == 1
	return it, nil
}
