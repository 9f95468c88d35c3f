package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahenriksen/tempus/internal/exporter"
)

// Export serializes the entire day map into a single document.
func (e *Engine) Export(ctx context.Context) *exporter.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return exporter.Build(e.days.ExportAll(), e.now())
}

// Import validates a document and replaces the whole store with its
// contents. There is no partial import: either every day in the
// document becomes the new store, or nothing changes.
func (e *Engine) Import(ctx context.Context, doc *exporter.Document) error {
	started := e.now()

	if errs := exporter.Validate(doc); len(errs) > 0 {
		return fmt.Errorf("invalid export document: %w", errors.Join(errs...))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.days.ReplaceAll(ctx, doc.DayMap())
	e.observe(ctx, "import", started, err, map[string]any{
		"days": len(doc.Days),
	})
	return err
}
