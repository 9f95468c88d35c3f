package engine

import (
	"context"
	"time"

	"github.com/ahenriksen/tempus/internal/domain"
)

// SessionUpdate carries the fields of an edit; nil fields keep their
// current value. Supplying new times without a duration derives the
// duration from the new span; an explicit Duration is authoritative
// even when it disagrees with the span (manual correction support).
type SessionUpdate struct {
	Category   *string
	Activity   *string
	StartTime  *time.Time
	EndTime    *time.Time
	Duration   *int64
	PausedTime *int64
}

// UpdateSession edits a session in place, relocating it to a different
// day when the new start time crosses a day boundary. The old
// contribution is always retracted and the new one always applied,
// whether or not category, activity or day changed: one code path
// covers every combination of edited fields. Validation happens before
// any state changes, so a failed update leaves the store untouched.
func (e *Engine) UpdateSession(ctx context.Context, id string, updates SessionUpdate) (*domain.Session, error) {
	started := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	sess, oldKey := e.locate(id)
	if sess == nil {
		return nil, ErrNotFound
	}

	// Effective new values: absent fields keep the old value.
	newCategory := sess.Category
	if updates.Category != nil {
		newCategory = *updates.Category
	}
	newActivity := sess.Activity
	if updates.Activity != nil {
		newActivity = *updates.Activity
	}
	newStart := sess.StartTime
	if updates.StartTime != nil {
		newStart = updates.StartTime.UnixMilli()
	}
	newEnd := sess.EndTime
	if updates.EndTime != nil {
		newEnd = updates.EndTime.UnixMilli()
	}
	newPaused := sess.PausedTime
	if updates.PausedTime != nil {
		newPaused = *updates.PausedTime
	}

	newDuration := sess.Duration
	switch {
	case updates.Duration != nil:
		newDuration = *updates.Duration
	case updates.StartTime != nil || updates.EndTime != nil:
		newDuration = (newEnd - newStart + 500) / 1000
	}

	if newStart >= newEnd {
		return nil, ErrInvalidRange
	}
	if newDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	newKey := domain.DayKeyFor(time.UnixMilli(newStart))

	// Retract the old contribution from the old day.
	oldRec, _ := e.days.Day(oldKey)
	oldRec.Aggregates.Subtract(sess.Category, sess.Activity, sess.Duration)

	// Relocate the storage slot when the owning day changed.
	if newKey != oldKey {
		oldRec.RemoveSession(id)
		newRec := e.days.GetOrCreate(newKey)
		newRec.Sessions = append(newRec.Sessions, sess)
	}

	sess.Category = newCategory
	sess.Activity = newActivity
	sess.StartTime = newStart
	sess.EndTime = newEnd
	sess.Duration = newDuration
	sess.PausedTime = newPaused
	sess.ModifiedAt = started.UnixMilli()

	// Apply the new contribution on the new day.
	newRec, _ := e.days.Day(newKey)
	newRec.Aggregates.Add(newCategory, newActivity, newDuration)

	keys := []domain.DayKey{oldKey}
	if newKey != oldKey {
		keys = append(keys, newKey)
	}
	err := e.days.SaveDays(ctx, keys...)

	e.observe(ctx, "update_session", started, err, map[string]any{
		"session_id": id,
		"old_day":    string(oldKey),
		"new_day":    string(newKey),
	})
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}
