package signals

import (
	"regexp"

	"github.com/jonathan/resume-scorer/internal/types"
)

// TitleWords is the closed job-title vocabulary. Matching is case-sensitive and whole-word.
var TitleWords = []string{"Manager", "Analyst", "Engineer", "Scientist", "Developer", "Technician"}

var titlePattern = regexp.MustCompile(`\b(?:Manager|Analyst|Engineer|Scientist|Developer|Technician)\b`)

// Experience compares the titles named in the work-experience section with those
// named in the job description.
func Experience(workSection, jobDescription string) types.ExperienceResult {
	resume := setOf(titlePattern.FindAllString(workSection, -1))
	job := setOf(titlePattern.FindAllString(jobDescription, -1))
	matched := intersect(resume, job)

	return types.ExperienceResult{
		Count:         len(matched),
		MatchedTitles: matched,
		ResumeTitles:  sortedKeys(resume),
		JobTitles:     sortedKeys(job),
	}
}
