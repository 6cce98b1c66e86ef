// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section names a labeled region of resume text.
type Section string

// Recognized resume sections
const (
	SectionWorkExperience Section = "work_experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
)

// AllSections lists every section in reporting order.
var AllSections = []Section{SectionWorkExperience, SectionEducation, SectionSkills}

// SectionMap holds the spans found for each section, in order of appearance.
// Every recognized section is present; a missing heading maps to an empty slice.
type SectionMap map[Section][]string

// First returns the first span for a section, or "" when there is none.
func (m SectionMap) First(s Section) string {
	if spans := m[s]; len(spans) > 0 {
		return spans[0]
	}
	return ""
}

// ContactInfo holds contact details found in the resume text.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	Links  []string `json:"links"`
}

// KeywordResult is the overlap between resume and job description vocabularies.
type KeywordResult struct {
	Matched         int      `json:"matched"`
	Missing         int      `json:"missing"`
	Density         float64  `json:"density"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// ExperienceResult is the overlap of job titles between the work history and the job description.
type ExperienceResult struct {
	Count         int      `json:"count"`
	MatchedTitles []string `json:"matched_titles"`
	ResumeTitles  []string `json:"resume_titles"`
	JobTitles     []string `json:"job_titles"`
}

// SkillsResult is the overlap between resume skills and required job skills.
type SkillsResult struct {
	Matched       int      `json:"matched"`
	Missing       int      `json:"missing"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// EducationResult reports whether the required degree was found in the education section.
type EducationResult struct {
	Verified       bool     `json:"verified"`
	RequiredDegree string   `json:"required_degree"`
	DegreesFound   []string `json:"degrees_found"`
}

// FormatResult reports whether the resume text is free of formatting noise.
type FormatResult struct {
	Clean         bool `json:"clean"`
	HasTabs       bool `json:"has_tabs"`
	HasBlankLines bool `json:"has_blank_lines"`
	HasHTMLTags   bool `json:"has_html_tags"`
}

// AchievementsResult counts quantified achievement phrases.
type AchievementsResult struct {
	Count   int      `json:"count"`
	Phrases []string `json:"phrases"`
}

// Correction pairs a sentence with its spell-corrected form.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// LanguageResult holds spelling and grammar findings. Misspelled lists each
// unknown word once; MisspelledCount counts every occurrence.
type LanguageResult struct {
	WordsChecked    int          `json:"words_checked"`
	Misspelled      []string     `json:"misspelled"`
	MisspelledCount int          `json:"misspelled_count"`
	Corrections     []Correction `json:"corrections"`
}

// DiversityResult counts distinct diversity and inclusion terms.
type DiversityResult struct {
	Count int      `json:"count"`
	Terms []string `json:"terms"`
}

// Signals bundles every analyzer output for one resume.
type Signals struct {
	Contact      ContactInfo        `json:"contact"`
	Keywords     KeywordResult      `json:"keywords"`
	Experience   ExperienceResult   `json:"experience"`
	Skills       SkillsResult       `json:"skills"`
	Education    EducationResult    `json:"education"`
	Format       FormatResult       `json:"format"`
	Achievements AchievementsResult `json:"achievements"`
	Language     LanguageResult     `json:"language"`
	Diversity    DiversityResult    `json:"diversity"`
}

// Components holds each normalized score component in [0,1].
type Components struct {
	Keywords     float64 `json:"keywords"`
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Achievements float64 `json:"achievements"`
	Language     float64 `json:"language"`
	Format       float64 `json:"format"`
	Diversity    float64 `json:"diversity"`
}

// ScoreReport is the final result of analyzing one resume against one job description.
type ScoreReport struct {
	FinalScore float64    `json:"final_score"`
	Components Components `json:"components"`
	Signals    Signals    `json:"signals"`
	Sections   SectionMap `json:"sections"`
}
