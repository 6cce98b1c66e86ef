package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/extract"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/pipeline"
	"github.com/jonathan/resume-scorer/internal/scoring"
)

// newJobFetcher builds the job posting fetcher from the fetch settings.
func newJobFetcher(cfg *config.Config, log *zap.Logger) *ingestion.JobFetcher {
	opts := fetch.DefaultOptions()
	if cfg.Fetch.Timeout > 0 {
		opts.Timeout = cfg.Fetch.Timeout
	}
	if cfg.Fetch.UserAgent != "" {
		opts.UserAgent = cfg.Fetch.UserAgent
	}

	fo := &ingestion.FetcherOptions{Fetch: opts, Logger: log}
	if cfg.Fetch.UseBrowser {
		fo.Render = fetch.BrowserRenderer(cfg.Fetch.Timeout, log)
	}
	return ingestion.NewJobFetcher(fo)
}

// newAnalyzer loads the lexicon once and wires the analysis pipeline.
func newAnalyzer(cfg *config.Config, log *zap.Logger) (*pipeline.Analyzer, error) {
	lex, err := lexicon.Load(cfg.Analysis.DictionaryPaths...)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}
	log.Debug("lexicon loaded", zap.Int("words", lex.Size()), zap.Strings("extra_dictionaries", cfg.Analysis.DictionaryPaths))

	scorer, err := scoring.New(cfg.Scoring.Weights)
	if err != nil {
		return nil, err
	}

	return pipeline.NewAnalyzer(pipeline.Options{
		Lexicon: lex,
		Extractor: extract.New(&extract.Options{
			MaxBytes: cfg.Extraction.MaxBytes,
			Timeout:  cfg.Extraction.Timeout,
			Logger:   log,
		}),
		Scorer:         scorer,
		JobFetcher:     newJobFetcher(cfg, log),
		RequiredDegree: cfg.Analysis.RequiredDegree,
		Logger:         log,
	}), nil
}
