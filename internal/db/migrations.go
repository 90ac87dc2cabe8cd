package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS lanes (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			position   INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS items (
			id         TEXT PRIMARY KEY,
			group_id   TEXT NOT NULL REFERENCES lanes(id) ON DELETE CASCADE,
			title      TEXT NOT NULL DEFAULT '',
			start_ms   INTEGER NOT NULL,
			end_ms     INTEGER NOT NULL,
			overlay    INTEGER NOT NULL DEFAULT 0 CHECK(overlay IN (0, 1)),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_lanes_position ON lanes(position);
		CREATE INDEX IF NOT EXISTS idx_items_group ON items(group_id);
		CREATE INDEX IF NOT EXISTS idx_items_range ON items(start_ms, end_ms);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating timeline tables: %w", err)
	}

	return nil
}
