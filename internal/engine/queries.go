package engine

import (
	"context"
	"sort"
	"time"

	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/repository"
)

// GetDateData returns a copy of the day's aggregates, empty if the day
// is unknown. Reads never mutate the store.
func (e *Engine) GetDateData(day domain.DayKey) domain.Aggregates {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.days.Day(day)
	if !ok {
		return make(domain.Aggregates)
	}
	return rec.Aggregates.Clone()
}

// GetDateSessions returns copies of the day's sessions ordered most
// recent start first.
func (e *Engine) GetDateSessions(day domain.DayKey) []*domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionsForDay(day)
}

// GetSessionsInRange returns copies of every session whose owning day
// falls within the inclusive range, ordered most recent start first.
func (e *Engine) GetSessionsInRange(start, end time.Time) []*domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []*domain.Session
	for _, key := range domain.DayKeysInRange(start, end) {
		out = append(out, e.sessionsForDay(key)...)
	}
	sortByStartDesc(out)
	return out
}

// GetTodayTime returns today's accumulated seconds. An empty category
// means all categories; an empty activity means all activities within
// the category.
func (e *Engine) GetTodayTime(category, activity string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.days.Day(domain.DayKeyFor(e.now()))
	if !ok {
		return 0
	}
	switch {
	case category == "":
		return rec.Aggregates.Total()
	case activity == "":
		return rec.Aggregates.CategoryTotal(category)
	default:
		return rec.Aggregates.Get(category, activity)
	}
}

// GetAllTimeTotal sums every aggregate entry across all days.
func (e *Engine) GetAllTimeTotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total int64
	for _, key := range e.days.Keys() {
		rec, _ := e.days.Day(key)
		total += rec.Aggregates.Total()
	}
	return total
}

// TopPairs returns the most-used category/activity pairs, for callers
// offering suggestions.
func (e *Engine) TopPairs(ctx context.Context, limit int) ([]repository.UsageStat, error) {
	return e.stats.TopPairs(ctx, limit)
}

// sessionsForDay returns clones for one day, most recent start first.
// Caller holds the mutex.
func (e *Engine) sessionsForDay(day domain.DayKey) []*domain.Session {
	rec, ok := e.days.Day(day)
	if !ok || len(rec.Sessions) == 0 {
		return nil
	}
	out := make([]*domain.Session, 0, len(rec.Sessions))
	for _, s := range rec.Sessions {
		out = append(out, s.Clone())
	}
	sortByStartDesc(out)
	return out
}

func sortByStartDesc(sessions []*domain.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime > sessions[j].StartTime
	})
}
