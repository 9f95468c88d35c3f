package engine

import (
	"context"
	"testing"

	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCategoryData(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	_, err = e.RecordSession(ctx, "Work", "Review", 600, at("2024-03-06", 9), at("2024-03-06", 10), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateCategoryData(ctx, "Work", "Job"))

	for _, day := range []string{"2024-03-05", "2024-03-06"} {
		aggs := e.GetDateData(domain.DayKey(day))
		assert.NotContains(t, aggs, "Work", "old name gone on %s", day)
	}
	assert.Equal(t, int64(3600), e.GetDateData("2024-03-05").Get("Job", "Write"))
	assert.Equal(t, int64(600), e.GetDateData("2024-03-06").Get("Job", "Review"))
}

func TestMigrateCategoryData_MergesIntoExisting(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	_, err = e.RecordSession(ctx, "Job", "Write", 600, at("2024-03-05", 11), at("2024-03-05", 12), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateCategoryData(ctx, "Work", "Job"))

	// Durations sum, nothing is overwritten.
	assert.Equal(t, int64(4200), e.GetDateData("2024-03-05").Get("Job", "Write"))
}

func TestMigrateCategoryData_SessionsKeepHistoricalLabel(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	sess, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateCategoryData(ctx, "Work", "Job"))

	found, _, err := e.FindSessionByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", found.Category, "session records keep the name they were recorded under")
}

func TestMigrateCategoryData_RenamesUsageStats(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	_, err = e.RecordSession(ctx, "Job", "Write", 600, at("2024-03-05", 11), at("2024-03-05", 12), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateCategoryData(ctx, "Work", "Job"))

	stats, err := e.TopPairs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Job", stats[0].Category)
	assert.Equal(t, int64(4200), stats[0].TotalSeconds)
	assert.Equal(t, int64(2), stats[0].SessionCount)
}

func TestMigrateCategoryData_SameNameIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateCategoryData(ctx, "Work", "Work"))
	assert.Equal(t, int64(3600), e.GetDateData("2024-03-05").Get("Work", "Write"))
}

func TestMigrateActivityData(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.RecordSession(ctx, "Work", "Write", 3600, at("2024-03-05", 9), at("2024-03-05", 10), 0)
	require.NoError(t, err)
	_, err = e.RecordSession(ctx, "Work", "Edit", 600, at("2024-03-05", 11), at("2024-03-05", 12), 0)
	require.NoError(t, err)
	// Same activity name under another category stays put.
	_, err = e.RecordSession(ctx, "Hobby", "Write", 300, at("2024-03-05", 13), at("2024-03-05", 14), 0)
	require.NoError(t, err)

	require.NoError(t, e.MigrateActivityData(ctx, "Work", "Write", "Edit"))

	aggs := e.GetDateData("2024-03-05")
	assert.NotContains(t, aggs["Work"], "Write")
	assert.Equal(t, int64(4200), aggs.Get("Work", "Edit"))
	assert.Equal(t, int64(300), aggs.Get("Hobby", "Write"))

	stats, err := e.TopPairs(ctx, 10)
	require.NoError(t, err)
	byPair := make(map[string]int64)
	for _, s := range stats {
		byPair[s.Category+"/"+s.Activity] = s.TotalSeconds
	}
	assert.Equal(t, int64(4200), byPair["Work/Edit"])
	assert.Equal(t, int64(300), byPair["Hobby/Write"])
	assert.NotContains(t, byPair, "Work/Write")
}
