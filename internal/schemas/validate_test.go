package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
	schemafiles "github.com/jonathan/resume-scorer/schemas"
)

func sampleReport() *types.ScoreReport {
	sig := types.Signals{
		Keywords:  types.KeywordResult{Matched: 3, Missing: 1, Density: 0.75, MatchedKeywords: []string{"data", "r", "analyst"}},
		Skills:    types.SkillsResult{Matched: 2, Missing: 1, MatchedSkills: []string{"data", "r"}, MissingSkills: []string{"biology"}},
		Education: types.EducationResult{Verified: true, RequiredDegree: "Bachelor", DegreesFound: []string{"Bachelor"}},
		Format:    types.FormatResult{Clean: true},
		Language:  types.LanguageResult{WordsChecked: 10, Misspelled: []string{"recieved"}, MisspelledCount: 1, Corrections: []types.Correction{{Original: "Recieved", Corrected: "Received"}}},
		Diversity: types.DiversityResult{Count: 1, Terms: []string{"diverse"}},
	}
	sections := types.SectionMap{
		types.SectionWorkExperience: {"Engineer at X"},
		types.SectionEducation:      {"Bachelor of Science"},
		types.SectionSkills:         {},
	}
	return scoring.Default().Score(sig, sections)
}

func TestValidateReport_Valid(t *testing.T) {
	assert.NoError(t, ValidateReport(sampleReport()))
}

func TestValidateReport_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *types.ScoreReport)
		wantField string
	}{
		{name: "score above range", mutate: func(r *types.ScoreReport) { r.FinalScore = 101 }, wantField: "final_score"},
		{name: "component above one", mutate: func(r *types.ScoreReport) { r.Components.Skills = 1.5 }, wantField: "components.skills"},
		{name: "diversity over cap", mutate: func(r *types.ScoreReport) { r.Signals.Diversity.Count = 11 }, wantField: "signals.diversity.count"},
		{name: "empty degree", mutate: func(r *types.ScoreReport) { r.Signals.Education.RequiredDegree = "" }, wantField: "signals.education.required_degree"},
		{name: "missing section", mutate: func(r *types.ScoreReport) { delete(r.Sections, types.SectionSkills) }, wantField: "sections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sampleReport()
			tt.mutate(report)

			err := ValidateReport(report)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	err := ValidateDocument(schemafiles.ReportSchemaFile, []byte(`{"final_score": 50}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "components")

	err = ValidateDocument(schemafiles.ReportSchemaFile, []byte(`{ invalid json }`))
	require.Error(t, err)

	err = ValidateDocument("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidateJSONString(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"person": {"name": "test"}}`))

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "person", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. name: is required")
	assert.Contains(t, msg, "2. age: must be a number")
}
