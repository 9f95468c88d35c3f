package engine

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/repository"
	"github.com/ahenriksen/tempus/internal/store"
	"github.com/ahenriksen/tempus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	days := store.New(database, nil)
	require.NoError(t, days.Load(context.Background(), store.RetentionForever))
	e := New(days, repository.NewSQLiteUsageStatRepo(database), db.NewSQLiteUnitOfWork(database))
	return e, database
}

// checkConsistency recomputes every day's aggregate from its sessions
// and asserts the stored aggregate matches exactly.
func checkConsistency(t *testing.T, e *Engine) {
	t.Helper()
	for _, key := range e.days.Keys() {
		rec, _ := e.days.Day(key)
		want := make(domain.Aggregates)
		for _, s := range rec.Sessions {
			want.Add(s.Category, s.Activity, s.Duration)
		}
		assert.Equal(t, want, rec.Aggregates, "aggregates on %s must equal the sum of sessions", key)
	}
}

func at(day string, hour int) time.Time {
	d, err := domain.DayKey(day).Time()
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestRecordSession(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	sess, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.DayKey("2024-03-05"), sess.DayKey())

	aggs := e.GetDateData("2024-03-05")
	assert.Equal(t, int64(3600), aggs.Get("Work", "Write"))

	sessions := e.GetDateSessions("2024-03-05")
	require.Len(t, sessions, 1)
	assert.Equal(t, sess.ID, sessions[0].ID)

	checkConsistency(t, e)
}

func TestRecordSession_NegativeDuration(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.RecordSession(context.Background(), "Work", "Write", -1, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Empty(t, e.GetDateData("2024-03-05"))
}

func TestRecordSession_ManualDurationKept(t *testing.T) {
	e, _ := newTestEngine(t)

	// One-hour span but the user credited only 30 minutes; the engine
	// must not normalize the discrepancy away.
	sess, err := e.RecordSession(context.Background(), "Work", "Write", 1800, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), sess.Duration)
	assert.Equal(t, int64(3600), sess.SpanSeconds())
	assert.Equal(t, int64(1800), e.GetDateData("2024-03-05").Get("Work", "Write"))
}

func TestRecordSession_BumpsUsageStats(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	_, err = e.RecordSession(ctx, "Work", "Write", 600, at("2024-03-05", 11), at("2024-03-05", 12), 0)
	require.NoError(t, err)

	stats, err := e.TopPairs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Work", stats[0].Category)
	assert.Equal(t, "Write", stats[0].Activity)
	assert.Equal(t, int64(4200), stats[0].TotalSeconds)
	assert.Equal(t, int64(2), stats[0].SessionCount)
}

func TestFindSessionByID(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	sess, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)

	found, key, err := e.FindSessionByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, found.ID)
	assert.Equal(t, domain.DayKey("2024-03-05"), key)

	_, _, err = e.FindSessionByID("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	e, database := newTestEngine(t)
	ctx := context.Background()

	sess, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	keep, err := e.RecordSession(ctx, "Work", "Review", 600, at("2024-03-05", 11), at("2024-03-05", 12), 0)
	require.NoError(t, err)

	require.NoError(t, e.DeleteSession(ctx, sess.ID))

	aggs := e.GetDateData("2024-03-05")
	assert.NotContains(t, aggs["Work"], "Write", "fully retracted entry is removed")
	assert.Equal(t, int64(600), aggs.Get("Work", "Review"))

	_, _, err = e.FindSessionByID(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	sessions := e.GetDateSessions("2024-03-05")
	require.Len(t, sessions, 1)
	assert.Equal(t, keep.ID, sessions[0].ID)

	checkConsistency(t, e)

	// Deletion is durable: a rebuilt engine over the same database
	// agrees.
	days2 := store.New(database, nil)
	require.NoError(t, days2.Load(ctx, store.RetentionForever))
	e2 := New(days2, repository.NewSQLiteUsageStatRepo(database), db.NewSQLiteUnitOfWork(database))
	_, _, err = e2.FindSessionByID(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(600), e2.GetDateData("2024-03-05").Get("Work", "Review"))
}

func TestDeleteSession_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.ErrorIs(t, e.DeleteSession(context.Background(), "missing"), ErrNotFound)
}

func TestMutationSequencePreservesConsistency(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	s1, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	checkConsistency(t, e)

	s2, err := e.RecordSession(ctx, "Rest", "Walk", 1200, at("2024-03-05", 12), at("2024-03-05", 13), 0)
	require.NoError(t, err)
	checkConsistency(t, e)

	newDuration := int64(1800)
	_, err = e.UpdateSession(ctx, s1.ID, SessionUpdate{Duration: &newDuration})
	require.NoError(t, err)
	checkConsistency(t, e)

	newStart := at("2024-03-06", 9)
	newEnd := at("2024-03-06", 10)
	_, err = e.UpdateSession(ctx, s2.ID, SessionUpdate{StartTime: &newStart, EndTime: &newEnd})
	require.NoError(t, err)
	checkConsistency(t, e)

	category := "Deep Work"
	_, err = e.UpdateSession(ctx, s1.ID, SessionUpdate{Category: &category})
	require.NoError(t, err)
	checkConsistency(t, e)

	require.NoError(t, e.DeleteSession(ctx, s1.ID))
	checkConsistency(t, e)
	require.NoError(t, e.DeleteSession(ctx, s2.ID))
	checkConsistency(t, e)

	assert.Equal(t, int64(0), e.GetAllTimeTotal())
}

func TestEndToEndScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	sess, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)

	aggs := e.GetDateData("2024-03-05")
	assert.Equal(t, domain.Aggregates{"Work": {"Write": 3600}}, aggs)

	half := int64(1800)
	_, err = e.UpdateSession(ctx, sess.ID, SessionUpdate{Duration: &half})
	require.NoError(t, err)
	assert.Equal(t, domain.Aggregates{"Work": {"Write": 1800}}, e.GetDateData("2024-03-05"))

	require.NoError(t, e.DeleteSession(ctx, sess.ID))
	assert.Empty(t, e.GetDateData("2024-03-05"))
}
