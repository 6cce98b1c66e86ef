package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/extract/extracttest"
	"github.com/jonathan/resume-scorer/internal/server"
	"github.com/jonathan/resume-scorer/internal/types"
)

const scenarioJob = "Looking for a Data Analyst with R and biology skills, Bachelor required"

func writeResume(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "resume.docx")
	docx := extracttest.BuildDocx(t, "Work Experience", "Engineer at X", "Education", "Bachelor of Science", "Skills", "R data analysis")
	require.NoError(t, os.WriteFile(p, docx, 0o644))
	return p
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resume_scorer version: unknown\n", out)
}

func TestAnalyze_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	resume := writeResume(t)

	out, err := execute(t, "analyze", "--resume", resume, "--job-text", scenarioJob, "--json")
	require.NoError(t, err)

	var report types.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Signals.Education.Verified)
	assert.GreaterOrEqual(t, report.Signals.Skills.Matched, 2)
	for _, s := range types.AllSections {
		assert.Len(t, report.Sections[s], 1, s)
	}
	assert.Greater(t, report.FinalScore, 0.0)
}

func TestAnalyze_JobFileAndOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	resume := writeResume(t)
	job := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(job, []byte(scenarioJob+"\n\n\n"), 0o644))

	out, err := execute(t, "analyze", "-r", resume, "-j", job, "--degree", "PhD", "--skills", "R, biology", "--json")
	require.NoError(t, err)

	var report types.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "PhD", report.Signals.Education.RequiredDegree)
	assert.False(t, report.Signals.Education.Verified)
	assert.Equal(t, []string{"biology"}, report.Signals.Skills.MissingSkills)
}

func TestAnalyze_Printer(t *testing.T) {
	t.Chdir(t.TempDir())
	resume := writeResume(t)

	out, err := execute(t, "analyze", "--resume", resume, "--job-text", scenarioJob)
	require.NoError(t, err)
	assert.Contains(t, out, "Match Analysis")
	assert.Contains(t, out, "Education (Bachelor): verified")
}

func TestAnalyze_FlagErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	resume := writeResume(t)

	_, err := execute(t, "analyze", "--resume", resume)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags")

	_, err = execute(t, "analyze", "--resume", resume, "--job-text", "x", "--job-url", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")

	_, err = execute(t, "analyze", "--job-text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"resume" not set`)
}

func TestAnalyze_UnsupportedResume(t *testing.T) {
	t.Chdir(t.TempDir())
	p := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(p, []byte("Skills\nGo"), 0o644))

	_, err := execute(t, "analyze", "--resume", p, "--job-text", scenarioJob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestAnalyze_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	resume := writeResume(t)

	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  required_degree: Associate\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "analyze", "--resume", resume, "--job-text", "Analyst wanted", "--json")
	require.NoError(t, err)

	var report types.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Associate", report.Signals.Education.RequiredDegree)

	require.NoError(t, os.WriteFile(cfgPath, []byte("scoring:\n  weights:\n    keywords: 0.9\n"), 0o644))
	_, err = execute(t, "--config", cfgPath, "analyze", "--resume", resume, "--job-text", "Analyst wanted")
	require.Error(t, err)
	var cfgErr *config.Error
	assert.ErrorAs(t, err, &cfgErr)
}

func TestIngestJob_TextFile(t *testing.T) {
	t.Chdir(t.TempDir())
	in := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(in, []byte("Data Analyst\n\n\n\n• R and SQL\n"), 0o644))
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "ingest-job", "--text-file", in, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Source:    file")
	assert.Contains(t, out, "job_posting.cleaned.txt")

	cleaned, err := os.ReadFile(filepath.Join(outDir, "job_posting.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst\n\n- R and SQL", string(cleaned))

	_, err = os.Stat(filepath.Join(outDir, "job_posting.meta.json"))
	assert.NoError(t, err)
}

func TestIngestJob_MissingFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "missing --out", args: []string{"ingest-job", "--text-file", "job.txt"}, errorString: `"out" not set`},
		{name: "no source", args: []string{"ingest-job", "--out", "x"}, errorString: "at least one of the flags"},
		{name: "both sources", args: []string{"ingest-job", "-t", "job.txt", "-u", "https://example.com", "-o", "x"}, errorString: "none of the others can be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestToken(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "token", "--subject", "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret is required")

	secret := "0123456789abcdef0123456789abcdef"
	t.Setenv(config.EnvPrefix+"_AUTH_JWT_SECRET", secret)

	out, err := execute(t, "token", "--subject", "dashboard", "--hours", "2")
	require.NoError(t, err)

	jwtCfg, err := config.NewJWTConfig(config.AuthConfig{JWTSecret: secret, ExpirationHours: 2})
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtCfg).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
	assert.WithinDuration(t, claims.IssuedAt.Add(2*time.Hour), claims.ExpiresAt.Time, 0)
}
