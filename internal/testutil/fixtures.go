package testutil

import (
	"time"

	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/google/uuid"
)

// SessionOption tweaks a test session.
type SessionOption func(*domain.Session)

func WithStart(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.StartTime = t.UnixMilli()
	}
}

func WithEnd(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.EndTime = t.UnixMilli()
	}
}

func WithDuration(seconds int64) SessionOption {
	return func(s *domain.Session) {
		s.Duration = seconds
	}
}

func WithPaused(seconds int64) SessionOption {
	return func(s *domain.Session) {
		s.PausedTime = seconds
	}
}

// NewTestSession builds a one-hour session ending now for the given
// category/activity pair.
func NewTestSession(category, activity string, opts ...SessionOption) *domain.Session {
	now := time.Now()
	s := &domain.Session{
		ID:        uuid.New().String(),
		Category:  category,
		Activity:  activity,
		StartTime: now.Add(-time.Hour).UnixMilli(),
		EndTime:   now.UnixMilli(),
		Duration:  3600,
		CreatedAt: now.UnixMilli(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
