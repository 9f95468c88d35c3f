package store

import (
	"encoding/json"
	"fmt"

	"github.com/ahenriksen/tempus/internal/domain"
)

// decodeDayBlob decodes one persisted day entry. Entries written by
// older versions are a flat category→activity→seconds map with no
// aggregates/sessions split; those become the day's aggregates with an
// empty session list. Per-session detail predating the split is gone
// and is accepted data loss; the aggregates carry over fully.
func decodeDayBlob(blob []byte) (rec *domain.DayRecord, wasLegacy bool, err error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(blob, &probe); err != nil {
		return nil, false, fmt.Errorf("not a JSON object: %w", err)
	}

	_, hasAggregates := probe["aggregates"]
	_, hasSessions := probe["sessions"]
	if hasAggregates || hasSessions {
		var r domain.DayRecord
		if err := json.Unmarshal(blob, &r); err != nil {
			return nil, false, fmt.Errorf("decoding day record: %w", err)
		}
		if r.Aggregates == nil {
			r.Aggregates = make(domain.Aggregates)
		}
		if r.Sessions == nil {
			r.Sessions = []*domain.Session{}
		}
		return &r, false, nil
	}

	var flat domain.Aggregates
	if err := json.Unmarshal(blob, &flat); err != nil {
		return nil, false, fmt.Errorf("decoding legacy flat entry: %w", err)
	}
	r := domain.NewDayRecord()
	if flat != nil {
		r.Aggregates = flat
	}
	return r, true, nil
}
