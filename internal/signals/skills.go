package signals

import (
	"github.com/jonathan/resume-scorer/internal/types"
)

// Skills is pure set arithmetic: matched = |resume ∩ job|, missing = |job ∖ resume|.
func Skills(resumeSkills, jobSkills map[string]struct{}) types.SkillsResult {
	matched := intersect(jobSkills, resumeSkills)
	missing := subtract(jobSkills, resumeSkills)

	return types.SkillsResult{
		Matched:       len(matched),
		Missing:       len(missing),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}
