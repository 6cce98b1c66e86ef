// Package pipeline orchestrates resume analysis: text extraction, section
// splitting, the independent signal analyzers, and scoring.
//
// A run is a single synchronous pass over one document. Nothing is shared between
// runs except the read-only lexicon, so one Analyzer may serve concurrent requests.
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/extract"
	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/sections"
	"github.com/jonathan/resume-scorer/internal/signals"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultRequiredDegree is used when neither the caller nor the job description names a degree.
const DefaultRequiredDegree = "Bachelor"

// Step names reported in progress events and logs
const (
	StepFetchJob      = "fetch_job"
	StepExtractText   = "extract_text"
	StepSplitSections = "split_sections"
	StepContact       = "contact"
	StepKeywords      = "keywords"
	StepExperience    = "experience"
	StepSkills        = "skills"
	StepEducation     = "education"
	StepFormat        = "format"
	StepAchievements  = "achievements"
	StepLanguage      = "language"
	StepDiversity     = "diversity"
	StepScore         = "score"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// JobFetcher retrieves job description text from a URL.
type JobFetcher interface {
	FetchJob(ctx context.Context, url string) (string, error)
}

// Options configures an Analyzer. Lexicon is required; the rest have defaults.
type Options struct {
	Lexicon        *lexicon.Lexicon
	Extractor      *extract.Extractor
	Scorer         *scoring.Scorer
	JobFetcher     JobFetcher
	RequiredDegree string
	Logger         *zap.Logger
	OnProgress     ProgressCallback
}

// Analyzer runs the analysis pipeline.
type Analyzer struct {
	lex            *lexicon.Lexicon
	extractor      *extract.Extractor
	scorer         *scoring.Scorer
	fetcher        JobFetcher
	requiredDegree string
	log            *zap.Logger
	onProgress     ProgressCallback
}

// NewAnalyzer creates an Analyzer from opts.
func NewAnalyzer(opts Options) *Analyzer {
	a := &Analyzer{
		lex:            opts.Lexicon,
		extractor:      opts.Extractor,
		scorer:         opts.Scorer,
		fetcher:        opts.JobFetcher,
		requiredDegree: strings.TrimSpace(opts.RequiredDegree),
		log:            logger.OrNop(opts.Logger),
		onProgress:     opts.OnProgress,
	}
	if a.lex == nil {
		a.lex = lexicon.MustDefault()
	}
	if a.extractor == nil {
		a.extractor = extract.New(&extract.Options{MaxBytes: extract.DefaultMaxBytes, Timeout: extract.DefaultTimeout, Logger: a.log})
	}
	if a.scorer == nil {
		a.scorer = scoring.Default()
	}
	if a.requiredDegree == "" {
		a.requiredDegree = DefaultRequiredDegree
	}
	return a
}

// WithProgress returns a copy of a that reports progress to cb.
func (a *Analyzer) WithProgress(cb ProgressCallback) *Analyzer {
	c := *a
	c.onProgress = cb
	return &c
}

// Input is one analysis request.
type Input struct {
	// Document is the uploaded resume. ResumeText is used instead when Document is nil.
	Document   *extract.Document
	ResumeText string

	JobDescription string
	// JobURL is fetched when JobDescription is empty.
	JobURL string
	// RequiredDegree overrides the degree named in the job description.
	RequiredDegree string
	// JobSkills overrides the job-description tokens as the required skill set.
	JobSkills []string
}

// Analyze runs the full pipeline. It fails only on missing input, job fetch failure,
// or document extraction failure; no partial report is returned on error.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*types.ScoreReport, error) {
	job, err := a.jobDescription(ctx, in)
	if err != nil {
		return nil, err
	}

	text := in.ResumeText
	if in.Document != nil {
		a.emitProgress(StepExtractText, "extracting text from "+in.Document.Name)
		text, err = a.extractor.Text(ctx, in.Document)
		if err != nil {
			a.log.Warn("text extraction failed", zap.String(logger.FieldFile, in.Document.Name), zap.Error(err))
			return nil, err
		}
	} else if strings.TrimSpace(text) == "" {
		return nil, &MissingInputError{Field: "resume", Message: "no resume file provided"}
	}

	return a.AnalyzeText(text, job, in.RequiredDegree, in.JobSkills), nil
}

func (a *Analyzer) jobDescription(ctx context.Context, in Input) (string, error) {
	if job := strings.TrimSpace(in.JobDescription); job != "" {
		return ingestion.CleanText(job), nil
	}
	if in.JobURL == "" {
		return "", &MissingInputError{Field: "job_description", Message: "job description is empty"}
	}
	if a.fetcher == nil {
		return "", &MissingInputError{Field: "job_description", Message: "job URL given but fetching is disabled"}
	}

	a.emitProgress(StepFetchJob, "fetching job description from "+in.JobURL)
	job, err := a.fetcher.FetchJob(ctx, in.JobURL)
	if err != nil {
		return "", &JobFetchError{URL: in.JobURL, Cause: err}
	}
	if strings.TrimSpace(job) == "" {
		return "", &MissingInputError{Field: "job_description", Message: "job URL yielded no text"}
	}
	return job, nil
}

// run holds the intermediate values of one analysis.
type run struct {
	text           string
	job            string
	requiredDegree string
	jobSkills      []string
	sections       types.SectionMap
	signals        types.Signals
}

// step is one independent analyzer. Steps never fail.
type step struct {
	name  string
	apply func(a *Analyzer, r *run)
}

// signalSteps lists the analyzers in reporting order. Experience, education and
// skills read their section; the others read the whole text.
var signalSteps = []step{
	{StepContact, func(_ *Analyzer, r *run) { r.signals.Contact = signals.Contact(r.text) }},
	{StepKeywords, func(a *Analyzer, r *run) { r.signals.Keywords = signals.Keywords(a.lex, r.text, r.job) }},
	{StepExperience, func(_ *Analyzer, r *run) {
		r.signals.Experience = signals.Experience(r.sections.First(types.SectionWorkExperience), r.job)
	}},
	{StepSkills, func(a *Analyzer, r *run) {
		resume := signals.Tokens(a.lex, r.sections.First(types.SectionSkills))
		job := signals.Tokens(a.lex, r.job)
		if len(r.jobSkills) > 0 {
			job = signals.TokenList(a.lex, r.jobSkills)
		}
		r.signals.Skills = signals.Skills(resume, job)
	}},
	{StepEducation, func(_ *Analyzer, r *run) {
		r.signals.Education = signals.Education(r.sections.First(types.SectionEducation), r.requiredDegree)
	}},
	{StepFormat, func(_ *Analyzer, r *run) { r.signals.Format = signals.Format(r.text) }},
	{StepAchievements, func(_ *Analyzer, r *run) { r.signals.Achievements = signals.Achievements(r.text) }},
	{StepLanguage, func(a *Analyzer, r *run) { r.signals.Language = signals.Language(a.lex, r.text) }},
	{StepDiversity, func(_ *Analyzer, r *run) { r.signals.Diversity = signals.Diversity(r.text) }},
}

// AnalyzeText runs sections, signals and scoring over already extracted text.
// It is total: absent sections and keywords degrade to empty, zero or false signals.
func (a *Analyzer) AnalyzeText(resumeText, jobDescription, requiredDegree string, jobSkills []string) *types.ScoreReport {
	r := &run{
		text:           resumeText,
		job:            jobDescription,
		requiredDegree: a.resolveDegree(requiredDegree, jobDescription),
		jobSkills:      jobSkills,
	}

	a.emitProgress(StepSplitSections, "splitting sections")
	r.sections = sections.Split(resumeText)
	a.log.Debug("sections split",
		zap.String(logger.FieldStep, StepSplitSections),
		zap.Int(string(types.SectionWorkExperience), len(r.sections[types.SectionWorkExperience])),
		zap.Int(string(types.SectionEducation), len(r.sections[types.SectionEducation])),
		zap.Int(string(types.SectionSkills), len(r.sections[types.SectionSkills])),
	)

	for _, s := range signalSteps {
		start := time.Now()
		a.emitProgress(s.name, "running "+s.name)
		s.apply(a, r)
		a.log.Debug("signal computed", zap.String(logger.FieldStep, s.name), zap.Duration("elapsed", time.Since(start)))
	}

	a.emitProgress(StepScore, "combining signals")
	report := a.scorer.Score(r.signals, r.sections)
	a.log.Info("resume analyzed",
		zap.Float64("final_score", report.FinalScore),
		zap.Int("keywords_matched", r.signals.Keywords.Matched),
		zap.Int("skills_matched", r.signals.Skills.Matched),
		zap.Bool("education_verified", r.signals.Education.Verified),
	)
	return report
}

// resolveDegree picks the caller's degree, then the first degree the job names,
// then the configured default.
func (a *Analyzer) resolveDegree(requested, jobDescription string) string {
	if d := strings.TrimSpace(requested); d != "" {
		return d
	}
	if d := signals.DegreeMentioned(jobDescription); d != "" {
		return d
	}
	return a.requiredDegree
}

// emitProgress calls the progress callback if configured
func (a *Analyzer) emitProgress(step, message string) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message})
	}
}
