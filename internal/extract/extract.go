// Package extract converts uploaded resume documents (PDF or Word) into plain text.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/logger"
)

// Format is a supported document format.
type Format string

const (
	// FormatPDF is a Portable Document Format file
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word processing document
	FormatDOCX Format = "docx"
)

const (
	// DefaultMaxBytes caps the size of a document handed to a parser.
	DefaultMaxBytes = 10 << 20
	// DefaultTimeout bounds the time a parser may spend on one document.
	DefaultTimeout = 30 * time.Second
)

// Document is an uploaded resume. It is discarded once its text is extracted.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// parseFunc turns document bytes into plain text.
type parseFunc func(data []byte) (string, error)

var parsers = map[Format]parseFunc{
	FormatPDF:  pdfText,
	FormatDOCX: docxText,
}

// DetectFormat maps a file name to its Format using the extension, case-insensitively.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch Format(ext) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Name: name, Extension: filepath.Ext(name)}
	}
}

// NewDocument builds a Document, detecting its format from the file name.
func NewDocument(name string, data []byte) (*Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	return &Document{Name: name, Format: format, Data: data}, nil
}

// Options guards extraction against oversized or slow documents.
type Options struct {
	MaxBytes int64
	Timeout  time.Duration
	Logger   *zap.Logger
}

// DefaultOptions returns the default extraction guards.
func DefaultOptions() *Options {
	return &Options{
		MaxBytes: DefaultMaxBytes,
		Timeout:  DefaultTimeout,
	}
}

// Extractor extracts plain text from documents.
type Extractor struct {
	opts *Options
	log  *zap.Logger
}

// New creates an Extractor. A nil opts uses DefaultOptions.
func New(opts *Options) *Extractor {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Extractor{opts: opts, log: logger.OrNop(opts.Logger)}
}

type parseResult struct {
	text string
	err  error
}

// Text returns the document's plain text. Parser failures, panics inside the parser,
// and documents exceeding the size or time guard are reported as *DocumentReadError.
func (e *Extractor) Text(ctx context.Context, doc *Document) (string, error) {
	parse, ok := parsers[doc.Format]
	if !ok {
		return "", &UnsupportedFormatError{Name: doc.Name, Extension: string(doc.Format)}
	}

	if e.opts.MaxBytes > 0 && int64(len(doc.Data)) > e.opts.MaxBytes {
		return "", &DocumentReadError{
			Name:    doc.Name,
			Format:  doc.Format,
			Message: fmt.Sprintf("document is %d bytes, limit is %d", len(doc.Data), e.opts.MaxBytes),
		}
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan parseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- parseResult{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		text, err := parse(doc.Data)
		done <- parseResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &DocumentReadError{Name: doc.Name, Format: doc.Format, Message: "extraction aborted", Cause: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			return "", &DocumentReadError{Name: doc.Name, Format: doc.Format, Message: "parser failed", Cause: res.err}
		}
		e.log.Debug("extracted document text",
			zap.String(logger.FieldFile, doc.Name),
			zap.String("format", string(doc.Format)),
			zap.Int("bytes", len(doc.Data)),
			zap.Int("chars", len(res.text)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return res.text, nil
	}
}
