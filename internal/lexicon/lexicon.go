// Package lexicon provides the stop-word list and spelling dictionary shared by the analyzers.
// Word lists are embedded at compile time and loaded once; the resulting Lexicon is read-only.
package lexicon

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"
)

//go:embed *.txt
var wordFiles embed.FS

const (
	stopWordsFile  = "stopwords.txt"
	dictionaryFile = "words.txt"

	// suggestDepth is the delete depth of the suggestion index. The index also
	// returns transposes and replaces, so candidates reach two edits.
	suggestDepth = 1
)

// Lexicon holds stop-words and dictionary words with their frequency rank.
// Lower rank means more frequent. A Lexicon is safe for concurrent reads.
type Lexicon struct {
	stopWords map[string]struct{}
	ranks     map[string]int

	spellerOnce sync.Once
	speller     *fuzzy.Model
}

// LoadError represents a failure reading a word list.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lexicon %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("lexicon %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the embedded lexicon, loading it on first use.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Load()
	})
	return defaultLex, defaultErr
}

// MustDefault returns the embedded lexicon, panicking if it cannot be loaded.
// Use this only where the embedded files are known to be present (tests, init).
func MustDefault() *Lexicon {
	lex, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load lexicon: %v", err))
	}
	return lex
}

// Load builds a Lexicon from the embedded lists plus any extra dictionary files.
// Extra files hold whitespace-separated words, most frequent first; lines starting
// with # are ignored. Extra words rank after the embedded ones.
func Load(extraDictionaries ...string) (*Lexicon, error) {
	lex := &Lexicon{
		stopWords: make(map[string]struct{}),
		ranks:     make(map[string]int),
	}

	stop, err := wordFiles.Open(stopWordsFile)
	if err != nil {
		return nil, &LoadError{Source: stopWordsFile, Message: "failed to open", Cause: err}
	}
	defer func() { _ = stop.Close() }()
	if err := readWords(stop, func(w string) { lex.stopWords[w] = struct{}{} }); err != nil {
		return nil, &LoadError{Source: stopWordsFile, Message: "failed to read", Cause: err}
	}

	dict, err := wordFiles.Open(dictionaryFile)
	if err != nil {
		return nil, &LoadError{Source: dictionaryFile, Message: "failed to open", Cause: err}
	}
	defer func() { _ = dict.Close() }()
	if err := readWords(dict, lex.add); err != nil {
		return nil, &LoadError{Source: dictionaryFile, Message: "failed to read", Cause: err}
	}

	for _, path := range extraDictionaries {
		if err := lex.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Stop-words are always valid spellings.
	for w := range lex.stopWords {
		if _, ok := lex.ranks[w]; !ok {
			lex.add(w)
		}
	}

	return lex, nil
}

func (l *Lexicon) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Source: path, Message: "failed to open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	if err := readWords(f, l.add); err != nil {
		return &LoadError{Source: path, Message: "failed to read", Cause: err}
	}
	return nil
}

func (l *Lexicon) add(word string) {
	if _, exists := l.ranks[word]; exists {
		return
	}
	l.ranks[word] = len(l.ranks)
}

func readWords(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			fn(strings.ToLower(w))
		}
	}
	return scanner.Err()
}

// IsStopWord reports whether the lower-cased word is a stop-word.
func (l *Lexicon) IsStopWord(word string) bool {
	_, ok := l.stopWords[word]
	return ok
}

// Rank returns the frequency rank of an exact dictionary word.
func (l *Lexicon) Rank(word string) (int, bool) {
	r, ok := l.ranks[word]
	return r, ok
}

// Size returns the number of dictionary words.
func (l *Lexicon) Size() int {
	return len(l.ranks)
}

// Suggestions returns exact dictionary entries within two edits of the lower-cased
// word, most frequent first. The suggestion index is built on first use.
func (l *Lexicon) Suggestions(word string) []string {
	if word == "" {
		return nil
	}
	l.spellerOnce.Do(l.buildSpeller)

	var out []string
	for _, c := range l.speller.Suggestions(word, true) {
		if c == word {
			continue
		}
		if _, ok := l.ranks[c]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := l.ranks[out[i]], l.ranks[out[j]]
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func (l *Lexicon) buildSpeller() {
	model := fuzzy.NewModel()
	model.SetUseAutocomplete(false)
	model.SetThreshold(0)
	model.SetDepth(suggestDepth)
	for w, r := range l.ranks {
		// Counts must be positive; more frequent words count higher.
		model.SetCount(w, len(l.ranks)-r, true)
	}
	l.speller = model
}

// Known reports whether the lower-cased word, or a regular inflection of it, is in
// the dictionary. Hyphenated words are known when every part is known.
func (l *Lexicon) Known(word string) bool {
	_, ok := l.KnownRank(word)
	return ok
}

// KnownRank is Known plus the frequency rank of the matching entry. For an
// inflected word it is the best rank among its stems; for a hyphenated word it is
// the worst rank among its parts.
func (l *Lexicon) KnownRank(word string) (int, bool) {
	if word == "" {
		return 0, false
	}
	if r, ok := l.ranks[word]; ok {
		return r, true
	}
	if strings.Contains(word, "-") {
		worst, seen := 0, false
		for _, p := range strings.Split(word, "-") {
			if p == "" {
				continue
			}
			r, ok := l.KnownRank(p)
			if !ok {
				return 0, false
			}
			worst, seen = max(worst, r), true
		}
		return worst, seen
	}
	best, found := 0, false
	for _, stem := range stems(word) {
		if r, ok := l.ranks[stem]; ok && (!found || r < best) {
			best, found = r, true
		}
	}
	return best, found
}

// suffixRules maps an inflectional suffix to the replacements that may restore the stem.
var suffixRules = []struct {
	suffix       string
	replacements []string
}{
	{"ies", []string{"y"}},
	{"ied", []string{"y"}},
	{"ily", []string{"y"}},
	{"ing", []string{"", "e"}},
	{"ers", []string{"", "e"}},
	{"es", []string{""}},
	{"ed", []string{"", "e"}},
	{"er", []string{"", "e"}},
	{"ly", []string{""}},
	{"s", []string{""}},
}

// stems returns candidate base forms of word by stripping regular suffixes.
func stems(word string) []string {
	var out []string
	for _, rule := range suffixRules {
		if !strings.HasSuffix(word, rule.suffix) || len(word)-len(rule.suffix) < 2 {
			continue
		}
		base := word[:len(word)-len(rule.suffix)]
		for _, rep := range rule.replacements {
			out = append(out, base+rep)
		}
		// planned -> plan, running -> run
		if n := len(base); n >= 3 && base[n-1] == base[n-2] {
			out = append(out, base[:n-1])
		}
	}
	return out
}
