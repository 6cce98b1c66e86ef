package signals

import (
	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Keywords measures how much of the job description's vocabulary the resume covers.
// Density is matched / |job tokens| and 0 when the job has no tokens.
func Keywords(lex *lexicon.Lexicon, resumeText, jobDescription string) types.KeywordResult {
	resume := Tokens(lex, resumeText)
	job := Tokens(lex, jobDescription)

	matched := intersect(job, resume)
	missing := subtract(job, resume)

	density := 0.0
	if len(job) > 0 {
		density = float64(len(matched)) / float64(len(job))
	}

	return types.KeywordResult{
		Matched:         len(matched),
		Missing:         len(missing),
		Density:         density,
		MatchedKeywords: matched,
		MissingKeywords: missing,
	}
}
