package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ahenriksen/tempus/internal/db"
)

// SQLiteUsageStatRepo maintains per category/activity usage counters.
// Rename operations merge counters when the target pair already exists,
// mirroring how aggregate keys merge on rename.
type SQLiteUsageStatRepo struct {
	db db.DBTX
}

// NewSQLiteUsageStatRepo creates a repo bound to a *sql.DB or *sql.Tx.
func NewSQLiteUsageStatRepo(dbtx db.DBTX) *SQLiteUsageStatRepo {
	return &SQLiteUsageStatRepo{db: dbtx}
}

func (r *SQLiteUsageStatRepo) Bump(ctx context.Context, category, activity string, seconds int64, usedAt time.Time) error {
	query := `INSERT INTO usage_stats (category, activity, total_seconds, session_count, last_used)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(category, activity) DO UPDATE SET
			total_seconds = total_seconds + excluded.total_seconds,
			session_count = session_count + 1,
			last_used = MAX(last_used, excluded.last_used)`
	_, err := r.db.ExecContext(ctx, query, category, activity, seconds, usedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("bumping usage stats for %s/%s: %w", category, activity, err)
	}
	return nil
}

func (r *SQLiteUsageStatRepo) RenameCategory(ctx context.Context, oldName, newName string) error {
	merge := `INSERT INTO usage_stats (category, activity, total_seconds, session_count, last_used)
		SELECT ?, activity, total_seconds, session_count, last_used
		FROM usage_stats WHERE category = ?
		ON CONFLICT(category, activity) DO UPDATE SET
			total_seconds = total_seconds + excluded.total_seconds,
			session_count = session_count + excluded.session_count,
			last_used = MAX(last_used, excluded.last_used)`
	if _, err := r.db.ExecContext(ctx, merge, newName, oldName); err != nil {
		return fmt.Errorf("renaming usage stats category %q: %w", oldName, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM usage_stats WHERE category = ?`, oldName); err != nil {
		return fmt.Errorf("removing old usage stats category %q: %w", oldName, err)
	}
	return nil
}

func (r *SQLiteUsageStatRepo) RenameActivity(ctx context.Context, category, oldActivity, newActivity string) error {
	merge := `INSERT INTO usage_stats (category, activity, total_seconds, session_count, last_used)
		SELECT category, ?, total_seconds, session_count, last_used
		FROM usage_stats WHERE category = ? AND activity = ?
		ON CONFLICT(category, activity) DO UPDATE SET
			total_seconds = total_seconds + excluded.total_seconds,
			session_count = session_count + excluded.session_count,
			last_used = MAX(last_used, excluded.last_used)`
	if _, err := r.db.ExecContext(ctx, merge, newActivity, category, oldActivity); err != nil {
		return fmt.Errorf("renaming usage stats activity %q/%q: %w", category, oldActivity, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM usage_stats WHERE category = ? AND activity = ?`, category, oldActivity); err != nil {
		return fmt.Errorf("removing old usage stats activity %q/%q: %w", category, oldActivity, err)
	}
	return nil
}

func (r *SQLiteUsageStatRepo) TopPairs(ctx context.Context, limit int) ([]UsageStat, error) {
	query := `SELECT category, activity, total_seconds, session_count, last_used
		FROM usage_stats ORDER BY session_count DESC, last_used DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing usage stats: %w", err)
	}
	defer rows.Close()
	return r.scanStats(rows)
}

func (r *SQLiteUsageStatRepo) scanStats(rows *sql.Rows) ([]UsageStat, error) {
	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		var lastUsedStr string
		if err := rows.Scan(&s.Category, &s.Activity, &s.TotalSeconds, &s.SessionCount, &lastUsedStr); err != nil {
			return nil, fmt.Errorf("scanning usage stat row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, lastUsedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing last_used: %w", err)
		}
		s.LastUsed = t
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage stats: %w", err)
	}
	return stats, nil
}
