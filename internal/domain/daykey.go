package domain

import (
	"time"
)

// dayKeyLayout is the canonical calendar-day format. Keys sort
// chronologically as plain strings, which the store relies on.
const dayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day in local time, formatted as an ISO
// date (YYYY-MM-DD). It is locale-independent by construction.
type DayKey string

// DayKeyFor returns the key of the calendar day containing t, evaluated
// in t's location.
func DayKeyFor(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// Valid reports whether k parses as a calendar date.
func (k DayKey) Valid() bool {
	_, err := time.ParseInLocation(dayKeyLayout, string(k), time.Local)
	return err == nil
}

// Time returns local midnight at the start of the day.
func (k DayKey) Time() (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, string(k), time.Local)
}

// Before reports whether k is an earlier calendar day than other.
// ISO date strings compare correctly byte-wise.
func (k DayKey) Before(other DayKey) bool {
	return k < other
}

// DayKeysInRange returns the keys of every calendar day from start
// through end inclusive, in chronological order. Returns nil if end
// precedes start.
func DayKeysInRange(start, end time.Time) []DayKey {
	first := DayKeyFor(start)
	last := DayKeyFor(end)
	if last.Before(first) {
		return nil
	}

	var keys []DayKey
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for {
		k := DayKeyFor(day)
		keys = append(keys, k)
		if k == last {
			return keys
		}
		day = day.AddDate(0, 0, 1)
	}
}
