package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/observability"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a text file or URL",
	Long:  "Ingest a job posting from either a text file or URL, clean the content, and write the cleaned text with metadata.",
	RunE:  runIngestJob,
}

var (
	textFile string
	urlStr   string
	outDir   string
)

func init() {
	ingestJobCmd.Flags().StringVarP(&textFile, "text-file", "t", "", "Path to text file containing job posting")
	ingestJobCmd.Flags().StringVarP(&urlStr, "url", "u", "", "URL to fetch job posting from")
	ingestJobCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (required)")
	ingestJobCmd.Flags().Bool("browser", false, "Render pages in headless Chrome when static HTML yields too little text")

	_ = ingestJobCmd.MarkFlagRequired("out")
	ingestJobCmd.MarkFlagsOneRequired("text-file", "url")
	ingestJobCmd.MarkFlagsMutuallyExclusive("text-file", "url")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd, map[string]string{"fetch.use_browser": "browser"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var (
		cleanedText string
		metadata    *ingestion.Metadata
	)
	if textFile != "" {
		cleanedText, metadata, err = ingestion.IngestFromFile(textFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		cleanedText, metadata, err = newJobFetcher(cfg, log).Ingest(cmd.Context(), urlStr)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	if err := ingestion.WriteOutput(outDir, cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintJobPosting(metadata, cleanedText)
	fmt.Fprintf(out, "Cleaned text: %s/job_posting.cleaned.txt\n", outDir)
	fmt.Fprintf(out, "Metadata: %s/job_posting.meta.json\n", outDir)
	return nil
}
