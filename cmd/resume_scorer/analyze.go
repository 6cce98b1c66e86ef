package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/pipeline"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/source"
	"github.com/jonathan/resume-scorer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one resume against a job description",
	Long: "Score a resume read from a local path, an http(s) URL or s3://bucket/key against a job description " +
		"given as a file, a URL or inline text.",
	RunE: runAnalyze,
}

var (
	resumePath string
	jobFile    string
	jobURL     string
	jobText    string
	degree     string
	skills     string
	jsonOutput bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Resume location: path, http(s) URL or s3://bucket/key (required)")
	analyzeCmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to a text file containing the job description")
	analyzeCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL of the job posting")
	analyzeCmd.Flags().StringVar(&jobText, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVar(&degree, "degree", "", "Required degree (default: named in the job description, else analysis.required_degree)")
	analyzeCmd.Flags().StringVar(&skills, "skills", "", "Comma-separated required skills (default: job description tokens)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsOneRequired("job", "job-url", "job-text")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url", "job-text")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	analyzer, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	doc, err := source.New(source.Options{
		MaxBytes: cfg.Extraction.MaxBytes,
		S3:       cfg.Storage.S3,
		Logger:   log,
	}).Load(ctx, resumePath)
	if err != nil {
		return err
	}

	in := pipeline.Input{
		Document:       doc,
		JobDescription: jobText,
		JobURL:         jobURL,
		RequiredDegree: degree,
		JobSkills:      (&types.AnalyzeRequest{JobSkills: skills}).SkillList(),
	}
	if jobFile != "" {
		in.JobDescription, _, err = ingestion.IngestFromFile(jobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
	}

	report, err := analyzer.Analyze(ctx, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !jsonOutput {
		observability.NewPrinter(out).PrintReport(report)
		return nil
	}

	if err := schemas.ValidateReport(report); err != nil {
		return fmt.Errorf("report failed schema validation: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
