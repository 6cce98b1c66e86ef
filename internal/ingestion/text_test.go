package ingestion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \n\t\n  ", want: ""},
		{name: "headings kept", input: "  # Title\n## Subtitle\nContent here", want: "# Title\n## Subtitle\nContent here"},
		{name: "bullets kept", input: "- Item 1\n- Item 2\n* Item 3", want: "- Item 1\n- Item 2\n* Item 3"},
		{name: "nested bullet indent kept", input: "- Go\n  - Generics", want: "- Go\n  - Generics"},
		{name: "typographic bullets", input: "• Python\n·  SQL", want: "- Python\n- SQL"},
		{name: "spaces collapse", input: "Line    with \t multiple    spaces   ", want: "Line with multiple spaces"},
		{name: "blank lines capped", input: "Line 1\n\n\n\n\nLine 2", want: "Line 1\n\nLine 2"},
		{name: "line endings", input: "Line 1\r\nLine 2\rLine 3\nLine 4", want: "Line 1\nLine 2\nLine 3\nLine 4"},
		{name: "nbsp and zero width", input: "\ufeffData\u00a0Analyst\u200b", want: "Data Analyst"},
		{name: "special characters", input: "C++ & C# - 100% remote (US/EU)", want: "C++ & C# - 100% remote (US/EU)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "Test content   with   spaces\n\n\n• Multiple   blank   lines\r\n"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Data Analyst\n\n\n\n- R\n- SQL   and Python\n"), 0644))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "# Data Analyst\n\n- R\n- SQL and Python", text)
	assert.Equal(t, SourceFile, metadata.Source)
	assert.Equal(t, computeHash(text), metadata.Hash)
	assert.Equal(t, len(text), metadata.Chars)
	assert.Empty(t, metadata.URL)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	metadata := NewMetadata("Data Analyst", "https://jobs.example.com/1")
	metadata.Source = SourceURL

	require.NoError(t, WriteOutput(outDir, "Data Analyst", metadata))

	text, err := os.ReadFile(filepath.Join(outDir, "job_posting.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", string(text))

	raw, err := os.ReadFile(filepath.Join(outDir, "job_posting.meta.json"))
	require.NoError(t, err)
	var decoded Metadata
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *metadata, decoded)
}
