package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)
	require.NotNil(t, lex)
	assert.Greater(t, lex.Size(), 50000)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, lex, again)
}

func TestIsStopWord(t *testing.T) {
	lex := MustDefault()

	for _, w := range []string{"the", "and", "with", "for", "a"} {
		assert.True(t, lex.IsStopWord(w), w)
	}
	for _, w := range []string{"data", "analyst", "biology", "r"} {
		assert.False(t, lex.IsStopWord(w), w)
	}
}

func TestKnown(t *testing.T) {
	lex := MustDefault()

	tests := []struct {
		word string
		want bool
	}{
		{"engineer", true},
		{"engineers", true},
		{"managed", true},
		{"planning", true},
		{"studies", true},
		{"first-generation", true},
		{"serverless", true},
		{"contracts", true},
		{"procurement", true},
		{"migration", true},
		{"legacy", true},
		{"overhead", true},
		{"serverness", false},
		{"recieved", false},
		{"teh", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.Known(tt.word))
		})
	}
}

func TestRank_FrequentWordsRankFirst(t *testing.T) {
	lex := MustDefault()

	the, ok := lex.Rank("the")
	require.True(t, ok)
	bachelor, ok := lex.Rank("bachelor")
	require.True(t, ok)
	assert.Less(t, the, bachelor)

	_, ok = lex.Rank("zzzz")
	assert.False(t, ok)
}

func TestSuggestions(t *testing.T) {
	lex := MustDefault()

	tests := []struct {
		word  string
		first string
	}{
		{"teh", "the"},
		{"recieved", "received"},
		{"managment", "management"},
		{"enginer", "engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := lex.Suggestions(tt.word)
			require.NotEmpty(t, got)
			assert.Contains(t, got, tt.first)
			assert.NotContains(t, got, tt.word)
		})
	}
}

func TestSuggestions_OnlyExactEntriesInRankOrder(t *testing.T) {
	lex := MustDefault()

	got := lex.Suggestions("contrcts")
	require.NotEmpty(t, got)
	prev := -1
	for _, w := range got {
		r, ok := lex.Rank(w)
		require.True(t, ok, "suggestion %q is not a dictionary entry", w)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
	assert.Contains(t, got, "contracts")

	assert.Empty(t, lex.Suggestions(""))
	assert.Empty(t, lex.Suggestions("qqqqqqqqqqqq"))
}

func TestLoad_ExtraDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.txt")
	require.NoError(t, os.WriteFile(path, []byte("# company terms\nKubeflow Snowpark\n"), 0644))

	lex, err := Load(path)
	require.NoError(t, err)
	assert.True(t, lex.Known("kubeflow"))
	assert.True(t, lex.Known("snowpark"))
	assert.False(t, MustDefault().Known("kubeflow"))
	assert.Contains(t, lex.Suggestions("kubeflw"), "kubeflow")
}

func TestLoad_MissingExtraDictionary(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "failed to open")
}
