package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	doc := validDocument()

	require.NoError(t, WriteDocument(path, doc))
	got, err := ReadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, doc.Version, got.Version)
	assert.Equal(t, doc.ExportedAt, got.ExportedAt)
	require.Contains(t, got.Days, "2024-03-05")
	rec := got.Days["2024-03-05"]
	require.Len(t, rec.Sessions, 1)
	assert.Equal(t, doc.Days["2024-03-05"].Sessions[0].ID, rec.Sessions[0].ID)
	assert.Empty(t, Validate(got))
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
