package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest holds the non-file form fields of an analysis request.
type AnalyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url,startswith=http"`
	RequiredDegree string `json:"required_degree,omitempty" validate:"omitempty,max=128"`
	JobSkills      string `json:"job_skills,omitempty" validate:"omitempty,max=4096"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SkillList splits the comma-separated JobSkills field into trimmed, non-empty entries.
func (r *AnalyzeRequest) SkillList() []string {
	if strings.TrimSpace(r.JobSkills) == "" {
		return nil
	}
	parts := strings.Split(r.JobSkills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// AnalyzeResponse is the flat JSON body returned by the analyze endpoint.
type AnalyzeResponse struct {
	KeywordScore      float64     `json:"keyword_score"`
	ExperienceScore   int         `json:"experience_score"`
	SkillsScore       int         `json:"skills_score"`
	EducationCheck    int         `json:"education_check"`
	FormatCheck       int         `json:"format_check"`
	Achievements      int         `json:"achievements"`
	MisspelledWords   []string    `json:"misspelled_words"`
	GrammaticalErrors string      `json:"grammatical_errors"`
	DiversityMentions int         `json:"diversity_mentions"`
	FinalScore        float64     `json:"final_score"`
	Contact           ContactInfo `json:"contact"`
	Components        Components  `json:"components"`
	Signals           Signals     `json:"signals"`
}

// NewAnalyzeResponse flattens a ScoreReport into the response shape.
func NewAnalyzeResponse(report *ScoreReport) *AnalyzeResponse {
	s := report.Signals
	return &AnalyzeResponse{
		KeywordScore:      s.Keywords.Density * 100,
		ExperienceScore:   s.Experience.Count,
		SkillsScore:       s.Skills.Matched,
		EducationCheck:    passFail(s.Education.Verified),
		FormatCheck:       passFail(s.Format.Clean),
		Achievements:      s.Achievements.Count,
		MisspelledWords:   s.Language.Misspelled,
		GrammaticalErrors: SummarizeCorrections(s.Language.Corrections),
		DiversityMentions: s.Diversity.Count,
		FinalScore:        report.FinalScore,
		Contact:           s.Contact,
		Components:        report.Components,
		Signals:           s,
	}
}

// SummarizeCorrections renders corrections as "original -> corrected" pairs joined by "; ".
func SummarizeCorrections(corrections []Correction) string {
	parts := make([]string, 0, len(corrections))
	for _, c := range corrections {
		parts = append(parts, c.Original+" -> "+c.Corrected)
	}
	return strings.Join(parts, "; ")
}

func passFail(ok bool) int {
	if ok {
		return 100
	}
	return 0
}
