package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/logger"
)

var (
	// ErrHTTPRequestFailed is returned when the posting page cannot be retrieved
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be read from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// FetcherOptions configures a JobFetcher.
type FetcherOptions struct {
	Fetch *fetch.Options
	// Render, when set, re-renders pages whose static HTML yields too little text.
	Render fetch.Renderer
	Logger *zap.Logger
}

// JobFetcher reads job postings from URLs.
type JobFetcher struct {
	fetchOpts *fetch.Options
	render    fetch.Renderer
	log       *zap.Logger
}

// NewJobFetcher creates a JobFetcher. A nil opts fetches with fetch.DefaultOptions and no browser.
func NewJobFetcher(opts *FetcherOptions) *JobFetcher {
	if opts == nil {
		opts = &FetcherOptions{}
	}
	f := &JobFetcher{fetchOpts: opts.Fetch, render: opts.Render, log: logger.OrNop(opts.Logger)}
	if f.fetchOpts == nil {
		f.fetchOpts = fetch.DefaultOptions()
	}
	return f
}

// FetchJob returns the cleaned posting text at urlStr.
func (f *JobFetcher) FetchJob(ctx context.Context, urlStr string) (string, error) {
	text, _, err := f.Ingest(ctx, urlStr)
	return text, err
}

// Ingest fetches urlStr, extracts the posting text with platform-specific selectors,
// and cleans it. Pages that yield too little text are re-rendered when a Renderer is
// configured; a failed render falls back to the static text.
func (f *JobFetcher) Ingest(ctx context.Context, urlStr string) (string, *Metadata, error) {
	start := time.Now()
	platform := fetch.DetectPlatform(urlStr)
	log := f.log.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, f.fetchOpts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched job posting", zap.Int("html_bytes", len(result.HTML)))

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if f.render != nil && fetch.ShouldUseBrowser(text) {
		log.Info("posting text too short, rendering in browser", zap.Int("chars", len(text)))
		html, renderErr := f.render(ctx, urlStr)
		switch {
		case renderErr != nil:
			log.Warn("browser rendering failed, using static text", zap.Error(renderErr))
		default:
			if renderedText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil {
				text, rendered = renderedText, true
			} else {
				log.Warn("rendered page extraction failed", zap.Error(extractErr))
			}
		}
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, urlStr)
	metadata.Source = SourceURL
	metadata.Platform = string(platform)
	metadata.Rendered = rendered

	log.Info("job posting ingested",
		zap.Int("chars", len(cleaned)),
		zap.Bool("rendered", rendered),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cleaned, metadata, nil
}
