package engine

import (
	"context"

	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/repository"
)

// MigrateCategoryData moves every day's aggregate entries from oldName
// to newName, summing with any entries already under newName, and
// renames matching usage-stat rows. Session records keep their
// historical category label; they are display history, not foreign
// keys, and downstream readers treat them that way.
func (e *Engine) MigrateCategoryData(ctx context.Context, oldName, newName string) error {
	started := e.now()
	if oldName == newName {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var touched []domain.DayKey
	for _, key := range e.days.Keys() {
		rec, _ := e.days.Day(key)
		acts, ok := rec.Aggregates[oldName]
		if !ok {
			continue
		}
		for activity, secs := range acts {
			rec.Aggregates.Add(newName, activity, secs)
		}
		delete(rec.Aggregates, oldName)
		touched = append(touched, key)
	}

	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := e.days.SaveDaysTx(ctx, tx, touched...); err != nil {
			return err
		}
		return repository.NewSQLiteUsageStatRepo(tx).RenameCategory(ctx, oldName, newName)
	})

	e.observe(ctx, "migrate_category", started, err, map[string]any{
		"old_name":     oldName,
		"new_name":     newName,
		"days_touched": len(touched),
	})
	return err
}

// MigrateActivityData moves one activity's aggregate entries under the
// given category from oldActivity to newActivity on every day, merging
// by summation, and renames the matching usage-stat row. As with
// category renames, session labels are left as recorded.
func (e *Engine) MigrateActivityData(ctx context.Context, category, oldActivity, newActivity string) error {
	started := e.now()
	if oldActivity == newActivity {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var touched []domain.DayKey
	for _, key := range e.days.Keys() {
		rec, _ := e.days.Day(key)
		acts, ok := rec.Aggregates[category]
		if !ok {
			continue
		}
		secs, ok := acts[oldActivity]
		if !ok {
			continue
		}
		acts[newActivity] += secs
		delete(acts, oldActivity)
		touched = append(touched, key)
	}

	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := e.days.SaveDaysTx(ctx, tx, touched...); err != nil {
			return err
		}
		return repository.NewSQLiteUsageStatRepo(tx).RenameActivity(ctx, category, oldActivity, newActivity)
	})

	e.observe(ctx, "migrate_activity", started, err, map[string]any{
		"category":     category,
		"old_name":     oldActivity,
		"new_name":     newActivity,
		"days_touched": len(touched),
	})
	return err
}
