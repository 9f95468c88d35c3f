package exporter

import (
	"fmt"

	"github.com/ahenriksen/tempus/internal/domain"
)

// Validate checks a document before import. Returns every problem
// found; an import proceeds only with an empty result.
func Validate(doc *Document) []error {
	var errs []error

	if doc.Version != DocumentVersion {
		errs = append(errs, fmt.Errorf("unsupported document version %d (expected %d)", doc.Version, DocumentVersion))
	}

	seenIDs := make(map[string]string) // session id -> day key
	for key, rec := range doc.Days {
		if !domain.DayKey(key).Valid() {
			errs = append(errs, fmt.Errorf("days[%s]: malformed day key (expected YYYY-MM-DD)", key))
		}
		if rec == nil {
			errs = append(errs, fmt.Errorf("days[%s]: null day record", key))
			continue
		}
		errs = append(errs, validateAggregates(key, rec.Aggregates)...)
		for i, sess := range rec.Sessions {
			errs = append(errs, validateSession(key, i, sess, seenIDs)...)
		}
	}

	return errs
}

func validateAggregates(key string, aggs domain.Aggregates) []error {
	var errs []error
	for category, acts := range aggs {
		for activity, secs := range acts {
			if secs < 0 {
				errs = append(errs, fmt.Errorf("days[%s].aggregates[%s][%s]: negative duration %d", key, category, activity, secs))
			}
		}
	}
	return errs
}

func validateSession(key string, i int, sess *domain.Session, seenIDs map[string]string) []error {
	var errs []error

	if sess == nil {
		return []error{fmt.Errorf("days[%s].sessions[%d]: null session", key, i)}
	}
	if sess.ID == "" {
		errs = append(errs, fmt.Errorf("days[%s].sessions[%d]: missing id", key, i))
	} else if prev, dup := seenIDs[sess.ID]; dup {
		errs = append(errs, fmt.Errorf("days[%s].sessions[%d]: duplicate session id %q (also on %s)", key, i, sess.ID, prev))
	} else {
		seenIDs[sess.ID] = key
	}
	if sess.StartTime >= sess.EndTime {
		errs = append(errs, fmt.Errorf("days[%s].sessions[%d]: start time is not before end time", key, i))
	}
	if sess.Duration < 0 {
		errs = append(errs, fmt.Errorf("days[%s].sessions[%d]: negative duration", key, i))
	}

	return errs
}
