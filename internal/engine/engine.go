// Package engine implements every mutation and lookup over the day
// store while preserving its invariants: each day's aggregates equal
// the sum of that day's session durations, a session lives under the
// calendar day of its current start time, and session ids are unique
// across the whole store.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/repository"
	"github.com/ahenriksen/tempus/internal/store"
	"github.com/google/uuid"
)

// Engine serializes all mutations behind one mutex; every mutation
// persists before returning, so callers never observe a half-applied
// retract/apply pair and a crash between calls never loses a completed
// call.
type Engine struct {
	mu       sync.Mutex
	days     *store.DayStore
	stats    repository.UsageStatRepo
	uow      db.UnitOfWork
	observer Observer
	now      func() time.Time
	newID    func() string
}

// New creates an Engine over a loaded day store.
func New(days *store.DayStore, stats repository.UsageStatRepo, uow db.UnitOfWork, observers ...Observer) *Engine {
	return &Engine{
		days:     days,
		stats:    stats,
		uow:      uow,
		observer: observerOrNoop(observers),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SetNowFunc overrides the clock for tests.
func (e *Engine) SetNowFunc(now func() time.Time) {
	e.now = now
}

// RecordSession creates a new session from a completed tracking
// interval and credits its duration to the owning day's aggregates.
// The owning day is the calendar day of start. Duration is the value
// the timer computed and may differ from the wall-clock span.
func (e *Engine) RecordSession(ctx context.Context, category, activity string, duration int64, start, end time.Time, paused int64) (*domain.Session, error) {
	started := e.now()
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sess := &domain.Session{
		ID:         e.newID(),
		Category:   category,
		Activity:   activity,
		StartTime:  start.UnixMilli(),
		EndTime:    end.UnixMilli(),
		Duration:   duration,
		PausedTime: paused,
		CreatedAt:  started.UnixMilli(),
	}

	key := sess.DayKey()
	rec := e.days.GetOrCreate(key)
	rec.Sessions = append(rec.Sessions, sess)
	rec.Aggregates.Add(category, activity, duration)

	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := e.days.SaveDaysTx(ctx, tx, key); err != nil {
			return err
		}
		return repository.NewSQLiteUsageStatRepo(tx).Bump(ctx, category, activity, duration, started)
	})

	e.observe(ctx, "record_session", started, err, map[string]any{
		"session_id": sess.ID,
		"day_key":    string(key),
		"duration_s": duration,
	})
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// FindSessionByID scans all days for the session with the given id and
// returns a copy together with its owning day key. Linear scan: at
// personal-data scale a secondary index is not worth carrying.
func (e *Engine) FindSessionByID(id string) (*domain.Session, domain.DayKey, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, key := e.locate(id)
	if sess == nil {
		return nil, "", ErrNotFound
	}
	return sess.Clone(), key, nil
}

// DeleteSession removes a session and retracts its aggregate
// contribution from its owning day.
func (e *Engine) DeleteSession(ctx context.Context, id string) error {
	started := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	sess, key := e.locate(id)
	if sess == nil {
		return ErrNotFound
	}

	rec, _ := e.days.Day(key)
	rec.Aggregates.Subtract(sess.Category, sess.Activity, sess.Duration)
	rec.RemoveSession(id)

	err := e.days.SaveDays(ctx, key)
	e.observe(ctx, "delete_session", started, err, map[string]any{
		"session_id": id,
		"day_key":    string(key),
	})
	return err
}

// locate returns the live session object and its owning day key, or
// (nil, ""). Caller holds the mutex.
func (e *Engine) locate(id string) (*domain.Session, domain.DayKey) {
	for _, key := range e.days.Keys() {
		rec, _ := e.days.Day(key)
		if sess := rec.FindSession(id); sess != nil {
			return sess, key
		}
	}
	return nil, ""
}

func (e *Engine) observe(ctx context.Context, op string, started time.Time, err error, fields map[string]any) {
	e.observer.ObserveMutation(ctx, MutationEvent{
		Op:        op,
		Duration:  e.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
