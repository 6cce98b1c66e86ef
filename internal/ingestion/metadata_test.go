package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	// SHA-256 of "abc"
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", computeHash("abc"))
	assert.NotEqual(t, computeHash("Data Analyst"), computeHash("Data Analyst "))
}

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("hello", "https://example.com/job")

	assert.Equal(t, "https://example.com/job", m.URL)
	assert.Equal(t, computeHash("hello"), m.Hash)
	assert.Equal(t, 5, m.Chars)
	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestMetadata_ToJSON(t *testing.T) {
	m := &Metadata{Source: SourceFile, Timestamp: "2026-01-01T00:00:00Z", Hash: "abc"}

	raw, err := m.ToJSON()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "file", fields["source"])
	assert.NotContains(t, fields, "url")
	assert.NotContains(t, fields, "rendered")
	assert.Contains(t, string(raw), "\n  ")
}
