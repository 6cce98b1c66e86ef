package signals

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

// maxSecondEditLen caps the word length for which two-edit corrections are tried.
const maxSecondEditLen = 10

var tokenPattern = regexp.MustCompile(`\S+`)

// Language finds misspelled words and per-sentence corrections against the lexicon.
// Tokens containing digits or symbols, e-mail addresses, URLs and all-caps acronyms
// are not checked.
func Language(lex *lexicon.Lexicon, text string) types.LanguageResult {
	checked, occurrences := 0, 0
	misspelled := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		w, ok := checkable(tok)
		if !ok {
			continue
		}
		checked++
		if !lex.Known(w.lower()) {
			misspelled[w.lower()] = struct{}{}
			occurrences++
		}
	}

	corrections := []types.Correction{}
	for _, sentence := range Sentences(text) {
		if corrected := correctSentence(lex, sentence); corrected != sentence {
			corrections = append(corrections, types.Correction{Original: sentence, Corrected: corrected})
		}
	}

	return types.LanguageResult{
		WordsChecked:    checked,
		Misspelled:      sortedKeys(misspelled),
		MisspelledCount: occurrences,
		Corrections:     corrections,
	}
}

// word is a whitespace token split into its core and surrounding punctuation.
type word struct {
	prefix, core, suffix string
}

func (w word) lower() string { return strings.ToLower(w.core) }

// checkable strips surrounding punctuation from tok and reports whether the
// remainder should be spell-checked.
func checkable(tok string) (word, bool) {
	if strings.Contains(tok, "@") || strings.Contains(tok, "://") {
		return word{}, false
	}
	isEdge := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }
	core := strings.TrimFunc(tok, isEdge)
	if core == "" {
		return word{}, false
	}
	start := strings.Index(tok, core)
	w := word{prefix: tok[:start], core: core, suffix: tok[start+len(core):]}

	if strings.HasSuffix(w.core, "'s") || strings.HasSuffix(w.core, "’s") {
		cut := strings.LastIndexAny(w.core, "'’")
		w.suffix = w.core[cut:] + w.suffix
		w.core = w.core[:cut]
	}

	hasUpper, hasLower := false, false
	for _, r := range w.core {
		switch {
		case unicode.IsDigit(r):
			return word{}, false
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case r != '-':
			return word{}, false
		}
	}
	if hasUpper && !hasLower {
		return word{}, false
	}
	return w, w.core != ""
}

// Sentences splits text into sentences. A sentence ends at a line break or after a
// token ending in '.', '!' or '?', so dots inside addresses and URLs do not split.
func Sentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		start := -1
		for _, loc := range tokenPattern.FindAllStringIndex(line, -1) {
			if start < 0 {
				start = loc[0]
			}
			if strings.ContainsAny(line[loc[1]-1:loc[1]], ".!?") {
				out = append(out, line[start:loc[1]])
				start = -1
			}
		}
		if start >= 0 {
			out = append(out, strings.TrimRightFunc(line[start:], unicode.IsSpace))
		}
	}
	return out
}

// correctSentence replaces every unknown word with its best dictionary candidate,
// keeping leading capitalization and surrounding punctuation.
func correctSentence(lex *lexicon.Lexicon, sentence string) string {
	return tokenPattern.ReplaceAllStringFunc(sentence, func(tok string) string {
		w, ok := checkable(tok)
		if !ok || lex.Known(w.lower()) {
			return tok
		}
		fixed, ok := correction(lex, w.lower())
		if !ok {
			return tok
		}
		if r := []rune(w.core); unicode.IsUpper(r[0]) {
			fr := []rune(fixed)
			fr[0] = unicode.ToUpper(fr[0])
			fixed = string(fr)
		}
		return w.prefix + fixed + w.suffix
	})
}

// correction returns the most frequent dictionary word one edit away, or failing
// that one two edits away. Ties break alphabetically.
func correction(lex *lexicon.Lexicon, w string) (string, bool) {
	if !isASCIILower(w) {
		return "", false
	}

	// Suggestions come back most frequent first.
	var second string
	for _, cand := range lex.Suggestions(w) {
		if oneEdit(w, cand) {
			return cand, true
		}
		if second == "" && len(w) <= maxSecondEditLen {
			second = cand
		}
	}
	return second, second != ""
}

// oneEdit reports whether b is one delete, insert, replace or adjacent transpose
// away from a.
func oneEdit(a, b string) bool {
	if len(a) < len(b) {
		a, b = b, a
	}
	switch len(a) - len(b) {
	case 0:
		i := 0
		for i < len(a) && a[i] == b[i] {
			i++
		}
		if i == len(a) {
			return false
		}
		if a[i+1:] == b[i+1:] {
			return true
		}
		return i+1 < len(a) && a[i] == b[i+1] && a[i+1] == b[i] && a[i+2:] == b[i+2:]
	case 1:
		i := 0
		for i < len(b) && a[i] == b[i] {
			i++
		}
		return a[i+1:] == b[i:]
	default:
		return false
	}
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if (s[i] < 'a' || s[i] > 'z') && s[i] != '-' {
			return false
		}
	}
	return s != ""
}
