// Package source loads resume documents from local paths, http(s) URLs and
// S3-compatible object stores (s3://bucket/key).
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/extract"
	"github.com/jonathan/resume-scorer/internal/logger"
)

// DefaultHTTPTimeout bounds a resume download over http(s).
const DefaultHTTPTimeout = 30 * time.Second

// Error reports a resume that could not be loaded.
type Error struct {
	Location string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load resume %s: %s: %v", e.Location, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load resume %s: %s", e.Location, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ObjectGetter is the subset of the S3 client used to download objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures a Loader.
type Options struct {
	// MaxBytes caps a loaded document; zero means extract.DefaultMaxBytes.
	MaxBytes   int64
	HTTPClient *http.Client
	S3         config.S3Config
	// S3Client overrides the client built from S3 on first use.
	S3Client ObjectGetter
	Logger   *zap.Logger
}

// Loader resolves a resume location into a Document.
type Loader struct {
	maxBytes int64
	client   *http.Client
	s3cfg    config.S3Config
	log      *zap.Logger

	s3Once   sync.Once
	s3Client ObjectGetter
	s3Err    error
}

// New creates a Loader.
func New(opts Options) *Loader {
	l := &Loader{
		maxBytes: opts.MaxBytes,
		client:   opts.HTTPClient,
		s3cfg:    opts.S3,
		log:      logger.OrNop(opts.Logger),
		s3Client: opts.S3Client,
	}
	if l.maxBytes <= 0 {
		l.maxBytes = extract.DefaultMaxBytes
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return l
}

// Load reads the resume at location. The file name, and so the format, comes
// from the last path element.
func (l *Loader) Load(ctx context.Context, location string) (*extract.Document, error) {
	var (
		name string
		data []byte
		err  error
	)

	switch {
	case strings.HasPrefix(location, "s3://"):
		name, data, err = l.loadS3(ctx, location)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		name, data, err = l.loadHTTP(ctx, location)
	default:
		name, data, err = l.loadFile(location)
	}
	if err != nil {
		return nil, err
	}

	l.log.Debug("resume loaded", zap.String(logger.FieldFile, name), zap.Int("bytes", len(data)))
	return extract.NewDocument(name, data)
}

func (l *Loader) loadFile(p string) (string, []byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", nil, &Error{Location: p, Message: "cannot stat file", Cause: err}
	}
	if info.IsDir() {
		return "", nil, &Error{Location: p, Message: "is a directory"}
	}
	if info.Size() > l.maxBytes {
		return "", nil, &Error{Location: p, Message: fmt.Sprintf("file exceeds %d bytes", l.maxBytes)}
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return "", nil, &Error{Location: p, Message: "cannot read file", Cause: err}
	}
	return filepath.Base(p), data, nil
}

func (l *Loader) loadHTTP(ctx context.Context, location string) (string, []byte, error) {
	u, err := url.Parse(location)
	if err != nil || u.Host == "" {
		return "", nil, &Error{Location: location, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", nil, &Error{Location: location, Message: "failed to create request", Cause: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", nil, &Error{Location: location, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, &Error{Location: location, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	data, err := l.readLimited(location, resp.Body)
	if err != nil {
		return "", nil, err
	}
	return path.Base(u.Path), data, nil
}

func (l *Loader) loadS3(ctx context.Context, location string) (string, []byte, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return "", nil, &Error{Location: location, Message: "expected s3://bucket/key"}
	}

	client, err := l.objectGetter(ctx)
	if err != nil {
		return "", nil, &Error{Location: location, Message: "failed to configure S3 client", Cause: err}
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, &Error{Location: location, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	data, err := l.readLimited(location, out.Body)
	if err != nil {
		return "", nil, err
	}
	return path.Base(key), data, nil
}

func (l *Loader) readLimited(location string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, &Error{Location: location, Message: "failed to read body", Cause: err}
	}
	if int64(len(data)) > l.maxBytes {
		return nil, &Error{Location: location, Message: fmt.Sprintf("document exceeds %d bytes", l.maxBytes)}
	}
	return data, nil
}

func (l *Loader) objectGetter(ctx context.Context) (ObjectGetter, error) {
	l.s3Once.Do(func() {
		if l.s3Client != nil {
			return
		}
		l.s3Client, l.s3Err = NewS3Client(ctx, l.s3cfg)
	})
	return l.s3Client, l.s3Err
}

// NewS3Client builds an S3 client. Static keys are used when configured,
// otherwise the default AWS credential chain. A custom endpoint (R2, MinIO)
// switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
