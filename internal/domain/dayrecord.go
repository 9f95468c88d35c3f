package domain

// Aggregates maps category name to activity name to accumulated whole
// seconds. Entries are never zero-valued: retracting a contribution to
// zero removes the activity entry, and removes the category when its
// last activity goes.
type Aggregates map[string]map[string]int64

// Add credits seconds to the category/activity pair, creating nested
// entries as needed. Adding zero is a no-op.
func (a Aggregates) Add(category, activity string, seconds int64) {
	if seconds == 0 {
		return
	}
	acts, ok := a[category]
	if !ok {
		acts = make(map[string]int64)
		a[category] = acts
	}
	acts[activity] += seconds
}

// Subtract retracts seconds from the category/activity pair. A value
// that reaches zero (or below, which indicates drift) is deleted, and
// an emptied category is deleted with it.
func (a Aggregates) Subtract(category, activity string, seconds int64) {
	acts, ok := a[category]
	if !ok {
		return
	}
	remaining := acts[activity] - seconds
	if remaining > 0 {
		acts[activity] = remaining
	} else {
		delete(acts, activity)
		if len(acts) == 0 {
			delete(a, category)
		}
	}
}

// Get returns the accumulated seconds for the pair, zero if absent.
func (a Aggregates) Get(category, activity string) int64 {
	return a[category][activity]
}

// CategoryTotal sums all activities under one category.
func (a Aggregates) CategoryTotal(category string) int64 {
	var total int64
	for _, secs := range a[category] {
		total += secs
	}
	return total
}

// Total sums every entry.
func (a Aggregates) Total() int64 {
	var total int64
	for category := range a {
		total += a.CategoryTotal(category)
	}
	return total
}

// Clone returns a deep copy.
func (a Aggregates) Clone() Aggregates {
	out := make(Aggregates, len(a))
	for category, acts := range a {
		cp := make(map[string]int64, len(acts))
		for activity, secs := range acts {
			cp[activity] = secs
		}
		out[category] = cp
	}
	return out
}

// DayRecord is one calendar day's stored state: the compact aggregate
// view plus the individual sessions, in insertion order. The engine
// keeps the two representations exactly consistent; retention pruning
// may empty Sessions while Aggregates persist forever.
type DayRecord struct {
	Aggregates Aggregates `json:"aggregates"`
	Sessions   []*Session `json:"sessions"`
}

// NewDayRecord returns an empty record ready for writes.
func NewDayRecord() *DayRecord {
	return &DayRecord{Aggregates: make(Aggregates), Sessions: []*Session{}}
}

// FindSession returns the session with the given id, or nil.
func (d *DayRecord) FindSession(id string) *Session {
	for _, s := range d.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RemoveSession removes and returns the session with the given id,
// preserving the order of the rest. Returns nil if absent.
func (d *DayRecord) RemoveSession(id string) *Session {
	for i, s := range d.Sessions {
		if s.ID == id {
			d.Sessions = append(d.Sessions[:i], d.Sessions[i+1:]...)
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of the record.
func (d *DayRecord) Clone() *DayRecord {
	out := &DayRecord{
		Aggregates: d.Aggregates.Clone(),
		Sessions:   make([]*Session, 0, len(d.Sessions)),
	}
	for _, s := range d.Sessions {
		out.Sessions = append(out.Sessions, s.Clone())
	}
	return out
}
