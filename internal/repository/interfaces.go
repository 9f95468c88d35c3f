package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahenriksen/tempus/internal/domain"
)

// ErrNotFound is returned when a lookup targets a row that does not exist.
var ErrNotFound = errors.New("not found")

// RawDayRow is one persisted day entry before JSON decoding. The day
// store decodes and, for legacy blobs, migrates it.
type RawDayRow struct {
	Key  domain.DayKey
	Blob []byte
}

// UsageStat is one category/activity usage counter row.
type UsageStat struct {
	Category     string
	Activity     string
	TotalSeconds int64
	SessionCount int64
	LastUsed     time.Time
}

type DayRecordRepo interface {
	LoadRaw(ctx context.Context) ([]RawDayRow, error)
	Upsert(ctx context.Context, key domain.DayKey, rec *domain.DayRecord) error
	DeleteAll(ctx context.Context) error
}

type UsageStatRepo interface {
	Bump(ctx context.Context, category, activity string, seconds int64, usedAt time.Time) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	RenameActivity(ctx context.Context, category, oldActivity, newActivity string) error
	TopPairs(ctx context.Context, limit int) ([]UsageStat, error)
}
