package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Plans are persisted as one JSON blob per key.
	`CREATE TABLE IF NOT EXISTS kv_store (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`ALTER TABLE kv_store ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id           TEXT PRIMARY KEY,
		heading      TEXT NOT NULL,
		body         TEXT NOT NULL,
		fire_at      TEXT NOT NULL,
		delivered_at TEXT,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminders_pending ON reminders(fire_at) WHERE delivered_at IS NULL`,
}
