// Package store owns the mapping from calendar day to stored DayRecord:
// loading and decoding the persisted form, upgrading legacy blobs,
// durable per-mutation saves, and the session retention window. It
// never maintains the aggregate/session invariant; that belongs to the
// engine.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/repository"
)

// RetentionForever disables session pruning.
const RetentionForever = -1

// DayStore holds the full day map in memory and mirrors every change
// to SQLite. All access is serialized by the engine; the store itself
// is not safe for concurrent use.
type DayStore struct {
	days    map[domain.DayKey]*domain.DayRecord
	records repository.DayRecordRepo
	uow     db.UnitOfWork
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a DayStore over the given database. Call Load before use.
func New(database *sql.DB, logger *slog.Logger) *DayStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DayStore{
		days:    make(map[domain.DayKey]*domain.DayRecord),
		records: repository.NewSQLiteDayRecordRepo(database),
		uow:     db.NewSQLiteUnitOfWork(database),
		logger:  logger,
		now:     time.Now,
	}
}

// SetNowFunc overrides the clock. Tests use this to pin "today" for
// retention pruning.
func (s *DayStore) SetNowFunc(now func() time.Time) {
	s.now = now
}

// Load reads the persisted day map. Legacy flat-shape entries are
// migrated in place and re-persisted immediately so migration runs at
// most once. Individual rows that cannot be decoded are skipped with a
// warning; a store that cannot be read at all fails loudly. After
// loading, sessions outside the retention window are pruned.
func (s *DayStore) Load(ctx context.Context, retentionDays int) error {
	rows, err := s.records.LoadRaw(ctx)
	if err != nil {
		return fmt.Errorf("loading day store: %w", err)
	}

	days := make(map[domain.DayKey]*domain.DayRecord, len(rows))
	var migrated []domain.DayKey
	for _, row := range rows {
		if !row.Key.Valid() {
			s.logger.Warn("skipping day entry with malformed key", "day_key", string(row.Key))
			continue
		}
		rec, wasLegacy, err := decodeDayBlob(row.Blob)
		if err != nil {
			s.logger.Warn("skipping corrupt day entry", "day_key", string(row.Key), "error", err)
			continue
		}
		days[row.Key] = rec
		if wasLegacy {
			migrated = append(migrated, row.Key)
		}
	}
	s.days = days

	if len(migrated) > 0 {
		s.logger.Info("migrated legacy day entries", "count", len(migrated))
		if err := s.SaveDays(ctx, migrated...); err != nil {
			return fmt.Errorf("persisting migrated day entries: %w", err)
		}
	}

	if err := s.Prune(ctx, retentionDays); err != nil {
		return err
	}

	s.logger.Debug("day store loaded", "days", len(s.days))
	return nil
}

// Prune clears the session list of every day strictly older than
// today minus retentionDays and persists the cleared days. Aggregates
// are never touched. RetentionForever disables pruning.
func (s *DayStore) Prune(ctx context.Context, retentionDays int) error {
	if retentionDays == RetentionForever {
		return nil
	}
	today := s.now()
	cutoff := domain.DayKeyFor(today.AddDate(0, 0, -retentionDays))

	var cleared []domain.DayKey
	for key, rec := range s.days {
		if key.Before(cutoff) && len(rec.Sessions) > 0 {
			rec.Sessions = []*domain.Session{}
			cleared = append(cleared, key)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	s.logger.Info("pruned expired sessions", "days", len(cleared), "cutoff", string(cutoff))
	if err := s.SaveDays(ctx, cleared...); err != nil {
		return fmt.Errorf("persisting pruned days: %w", err)
	}
	return nil
}

// Day returns the record for the given day, if present.
func (s *DayStore) Day(key domain.DayKey) (*domain.DayRecord, bool) {
	rec, ok := s.days[key]
	return rec, ok
}

// GetOrCreate returns the record for the given day, creating an empty
// one lazily on first write.
func (s *DayStore) GetOrCreate(key domain.DayKey) *domain.DayRecord {
	if rec, ok := s.days[key]; ok {
		return rec
	}
	rec := domain.NewDayRecord()
	s.days[key] = rec
	return rec
}

// Keys returns every stored day key in chronological order.
func (s *DayStore) Keys() []domain.DayKey {
	keys := make([]domain.DayKey, 0, len(s.days))
	for key := range s.days {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of stored days.
func (s *DayStore) Len() int {
	return len(s.days)
}

// SaveDays persists the named days inside a single transaction.
func (s *DayStore) SaveDays(ctx context.Context, keys ...domain.DayKey) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.SaveDaysTx(ctx, tx, keys...)
	})
}

// SaveDaysTx persists the named days using the caller's transaction.
// The engine uses this to commit day rows and usage-stat rows together.
func (s *DayStore) SaveDaysTx(ctx context.Context, tx db.DBTX, keys ...domain.DayKey) error {
	txRecords := repository.NewSQLiteDayRecordRepo(tx)
	for _, key := range keys {
		rec, ok := s.days[key]
		if !ok {
			continue
		}
		if err := txRecords.Upsert(ctx, key, rec); err != nil {
			return err
		}
	}
	return nil
}

// ExportAll returns a deep copy of the entire day map.
func (s *DayStore) ExportAll() map[domain.DayKey]*domain.DayRecord {
	out := make(map[domain.DayKey]*domain.DayRecord, len(s.days))
	for key, rec := range s.days {
		out[key] = rec.Clone()
	}
	return out
}

// ReplaceAll atomically replaces the whole store with the given day
// map. The previous contents are deleted and the new rows written in
// one transaction; the in-memory map swaps only after commit, so a
// failed import leaves the store as it was.
func (s *DayStore) ReplaceAll(ctx context.Context, days map[domain.DayKey]*domain.DayRecord) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteDayRecordRepo(tx)
		if err := txRecords.DeleteAll(ctx); err != nil {
			return err
		}
		for key, rec := range days {
			if err := txRecords.Upsert(ctx, key, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing day store: %w", err)
	}
	s.days = days
	return nil
}
