package signals

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

var (
	blankLinePattern = regexp.MustCompile(`\n{2,}`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// Format is a syntactic cleanliness check: clean means no tabs, no blank lines and
// no HTML-like tags.
func Format(text string) types.FormatResult {
	res := types.FormatResult{
		HasTabs:       strings.Contains(text, "\t"),
		HasBlankLines: blankLinePattern.MatchString(text),
		HasHTMLTags:   htmlTagPattern.MatchString(text),
	}
	res.Clean = !res.HasTabs && !res.HasBlankLines && !res.HasHTMLTags
	return res
}
