package signals

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

var degreePattern = regexp.MustCompile(`\b(?:Bachelor|Master|PhD)\b`)

// DegreeWords is the degree vocabulary searched for in the education section.
var DegreeWords = []string{"Bachelor", "Master", "PhD"}

// Education reports whether the required degree matches a degree word found in the
// education section. The match is case-insensitive and holds when either string
// contains the other, so "Bachelor of Science" is satisfied by a found "Bachelor".
// An empty section or an empty requirement is never verified.
func Education(educationSection, requiredDegree string) types.EducationResult {
	found := uniqueInOrder(degreePattern.FindAllString(educationSection, -1))
	required := strings.ToLower(strings.TrimSpace(requiredDegree))

	verified := false
	if required != "" {
		for _, d := range found {
			degree := strings.ToLower(d)
			if strings.Contains(degree, required) || strings.Contains(required, degree) {
				verified = true
				break
			}
		}
	}

	return types.EducationResult{
		Verified:       verified,
		RequiredDegree: strings.TrimSpace(requiredDegree),
		DegreesFound:   found,
	}
}

// DegreeMentioned returns the first degree word named in text, or "".
func DegreeMentioned(text string) string {
	return degreePattern.FindString(text)
}
