package domain

import "time"

// Session is one individually tracked start/stop interval.
//
// Duration is the authoritative value credited to aggregates and may
// legitimately disagree with EndTime-StartTime: users can enter a
// manually corrected duration, and the engine never normalizes it away.
// Category and Activity are historical labels, not foreign keys; a
// rename elsewhere does not rewrite them.
type Session struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Activity   string `json:"activity"`
	StartTime  int64  `json:"startTime"` // milliseconds since epoch
	EndTime    int64  `json:"endTime"`   // milliseconds since epoch
	Duration   int64  `json:"duration"`  // seconds
	PausedTime int64  `json:"pausedTime,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
	ModifiedAt int64  `json:"modifiedAt,omitempty"` // zero if never edited
}

// Start returns the session's start instant.
func (s *Session) Start() time.Time {
	return time.UnixMilli(s.StartTime)
}

// End returns the session's end instant.
func (s *Session) End() time.Time {
	return time.UnixMilli(s.EndTime)
}

// DayKey returns the calendar day owning this session's storage slot.
func (s *Session) DayKey() DayKey {
	return DayKeyFor(s.Start())
}

// SpanSeconds returns the wall-clock span rounded to whole seconds.
func (s *Session) SpanSeconds() int64 {
	return (s.EndTime - s.StartTime + 500) / 1000
}

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
