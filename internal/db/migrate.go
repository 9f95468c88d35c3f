package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; the
// list is re-executed in full on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every open; tolerate
			// columns that already exist.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per calendar day. The blob is the JSON DayRecord; legacy
	// flat-shape blobs are upgraded by the day store at load time, not
	// here, because the distinction lives inside the JSON.
	`CREATE TABLE IF NOT EXISTS day_records (
		day_key    TEXT PRIMARY KEY,
		record     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Per category/activity usage counters, maintained alongside the
	// day map and renamed together with aggregate keys.
	`CREATE TABLE IF NOT EXISTS usage_stats (
		category      TEXT NOT NULL,
		activity      TEXT NOT NULL,
		total_seconds INTEGER NOT NULL DEFAULT 0,
		session_count INTEGER NOT NULL DEFAULT 0,
		last_used     TEXT NOT NULL,
		PRIMARY KEY (category, activity)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_usage_stats_last_used ON usage_stats(last_used)`,
}
