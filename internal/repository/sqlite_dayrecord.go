package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/domain"
)

// SQLiteDayRecordRepo persists day records as one JSON blob per
// calendar day. It is a key-value view over SQLite: the blob is
// opaque here, interpretation belongs to the day store.
type SQLiteDayRecordRepo struct {
	db db.DBTX
}

// NewSQLiteDayRecordRepo creates a repo bound to a *sql.DB or *sql.Tx.
func NewSQLiteDayRecordRepo(dbtx db.DBTX) *SQLiteDayRecordRepo {
	return &SQLiteDayRecordRepo{db: dbtx}
}

func (r *SQLiteDayRecordRepo) LoadRaw(ctx context.Context) ([]RawDayRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day_key, record FROM day_records ORDER BY day_key`)
	if err != nil {
		return nil, fmt.Errorf("loading day records: %w", err)
	}
	defer rows.Close()

	var out []RawDayRow
	for rows.Next() {
		var key string
		var blob []byte
		if err := rows.Scan(&key, &blob); err != nil {
			return nil, fmt.Errorf("scanning day record row: %w", err)
		}
		out = append(out, RawDayRow{Key: domain.DayKey(key), Blob: blob})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day records: %w", err)
	}
	return out, nil
}

func (r *SQLiteDayRecordRepo) Upsert(ctx context.Context, key domain.DayKey, rec *domain.DayRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding day record %s: %w", key, err)
	}
	query := `INSERT INTO day_records (day_key, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(day_key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, string(key), string(blob), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upserting day record %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteDayRecordRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM day_records`); err != nil {
		return fmt.Errorf("clearing day records: %w", err)
	}
	return nil
}
