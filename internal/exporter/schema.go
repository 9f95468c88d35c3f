// Package exporter defines the single-document form of the whole day
// map, used for backup, transfer and restore. Import is all-or-nothing;
// there is no partial mode.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ahenriksen/tempus/internal/domain"
)

// DocumentVersion is the current export format version.
const DocumentVersion = 1

// Document is the top-level JSON structure holding the entire store.
type Document struct {
	Version    int                          `json:"version"`
	ExportedAt string                       `json:"exported_at"`
	Days       map[string]*domain.DayRecord `json:"days"`
}

// Build assembles a document from an exported day map.
func Build(days map[domain.DayKey]*domain.DayRecord, exportedAt time.Time) *Document {
	doc := &Document{
		Version:    DocumentVersion,
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Days:       make(map[string]*domain.DayRecord, len(days)),
	}
	for key, rec := range days {
		doc.Days[string(key)] = rec
	}
	return doc
}

// DayMap converts the document back into a day map. Call Validate
// first; DayMap assumes the document is valid.
func (d *Document) DayMap() map[domain.DayKey]*domain.DayRecord {
	days := make(map[domain.DayKey]*domain.DayRecord, len(d.Days))
	for key, rec := range d.Days {
		if rec.Aggregates == nil {
			rec.Aggregates = make(domain.Aggregates)
		}
		if rec.Sessions == nil {
			rec.Sessions = []*domain.Session{}
		}
		days[domain.DayKey(key)] = rec
	}
	return days
}

// ReadDocument reads and parses an export file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export file: %w", err)
	}
	return &doc, nil
}

// WriteDocument writes a document as indented JSON.
func WriteDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}
