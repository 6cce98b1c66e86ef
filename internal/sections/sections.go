// Package sections partitions resume text into labeled regions using heading rules.
//
// Each rule is evaluated independently over the whole text. Overlapping or reordered
// headings produce best-effort spans: a heading word appearing inside another
// section (for example "Experience" inside "Work Experience") ends or starts a span
// exactly as a heading would. This is a known limitation of heading matching.
package sections

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Rule describes how one section is located.
type Rule struct {
	Section types.Section
	// Start is the heading that opens the section. The span begins right after it.
	Start string
	// End lists the headings that close the section. The nearest one wins.
	End []string
	// UntilEOF lets the span run to the end of the text when no end heading follows.
	UntilEOF bool
}

// DefaultRules is the ordered heading table for work experience, education and skills.
var DefaultRules = []Rule{
	{Section: types.SectionWorkExperience, Start: "Work Experience", End: []string{"Education"}},
	{Section: types.SectionEducation, Start: "Education", End: []string{"Skills", "Experience"}, UntilEOF: true},
	{Section: types.SectionSkills, Start: "Skills", End: []string{"Experience", "Education"}, UntilEOF: true},
}

// Split applies DefaultRules to text.
func Split(text string) types.SectionMap {
	return SplitWith(text, DefaultRules)
}

// SplitWith applies rules to text. Every rule's section is present in the result;
// a missing heading yields an empty, non-nil slice.
func SplitWith(text string, rules []Rule) types.SectionMap {
	m := make(types.SectionMap, len(rules))
	for _, rule := range rules {
		m[rule.Section] = rule.spans(text)
	}
	return m
}

// spans returns every non-overlapping span for the rule, in order of appearance.
// Headings are matched case-sensitively and spans may cross lines.
func (r Rule) spans(text string) []string {
	out := []string{}
	if r.Start == "" {
		return out
	}

	pos := 0
	for pos <= len(text) {
		idx := strings.Index(text[pos:], r.Start)
		if idx < 0 {
			break
		}
		begin := pos + idx + len(r.Start)

		end, ok := nearest(text, begin, r.End)
		if !ok {
			if !r.UntilEOF {
				break
			}
			end = len(text)
			if strings.HasSuffix(text, "\n") && end > begin {
				end--
			}
		}

		out = append(out, text[begin:end])
		if end == begin && end >= len(text) {
			break
		}
		if end == begin {
			// Empty span followed by a heading; step past it so the scan advances.
			end++
		}
		pos = end
		if !ok {
			break
		}
	}
	return out
}

// nearest finds the closest occurrence of any heading at or after from.
func nearest(text string, from int, headings []string) (int, bool) {
	best := -1
	for _, h := range headings {
		if h == "" {
			continue
		}
		if idx := strings.Index(text[from:], h); idx >= 0 && (best < 0 || from+idx < best) {
			best = from + idx
		}
	}
	return best, best >= 0
}
