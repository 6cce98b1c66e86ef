package signals

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// DiversityTerms is the diversity and inclusion vocabulary.
var DiversityTerms = []string{
	"diverse",
	"inclusion",
	"overcame adversity",
	"socio-economic challenges",
	"first-generation",
	"immigration",
	"LGBTQ+",
	"underrepresented",
	"minority",
	"disability",
}

// Diversity counts the vocabulary entries that appear anywhere in text. Each entry
// counts once however often it repeats.
func Diversity(text string) types.DiversityResult {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range DiversityTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return types.DiversityResult{Count: len(found), Terms: found}
}
