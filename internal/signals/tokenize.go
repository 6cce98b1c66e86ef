// Package signals holds the independent resume analyzers: contact info, keyword
// overlap, title match, skills overlap, degree check, format cleanliness,
// achievement phrases, spelling and grammar, and diversity language.
//
// Every analyzer is total: missing sections or keywords degrade to empty, zero or
// false results. Set-valued outputs are sorted so results are deterministic.
package signals

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/resume-scorer/internal/lexicon"
)

var nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize lower-cases text and collapses every run of non-word characters to a
// single space. Compatibility forms (PDF ligatures, full-width letters) are folded first.
func Normalize(text string) string {
	text = strings.ToLower(norm.NFKC.String(text))
	return strings.TrimSpace(nonWordRun.ReplaceAllString(text, " "))
}

// Tokens returns the unique normalized tokens of text, excluding stop-words and
// tokens without a letter or digit.
func Tokens(lex *lexicon.Lexicon, text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Normalize(text)) {
		if !hasLetterOrDigit(tok) || lex.IsStopWord(tok) {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// TokenList tokenizes each entry and merges the results into one set.
func TokenList(lex *lexicon.Lexicon, entries []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range entries {
		for tok := range Tokens(lex, e) {
			set[tok] = struct{}{}
		}
	}
	return set
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// intersect returns the sorted members of a that are also in b.
func intersect(a, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// subtract returns the sorted members of a that are not in b.
func subtract(a, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func setOf(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// uniqueInOrder drops repeated entries, keeping first appearances.
func uniqueInOrder(items []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
