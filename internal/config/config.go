// Package config loads and validates service configuration from flags, environment
// variables and an optional YAML or JSON file, all resolved through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-scorer/internal/scoring"
)

// EnvPrefix prefixes every environment variable, e.g. RESUME_SCORER_SERVER_PORT.
const EnvPrefix = "RESUME_SCORER"

// DefaultConfigName is the file looked up in the working directory when --config is not given.
const DefaultConfigName = "resume-scorer"

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"min=1024"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace" validate:"min=0"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// ExtractionConfig guards document parsing.
type ExtractionConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" validate:"min=0"`
	MaxBytes int64         `mapstructure:"max_bytes" validate:"min=0"`
}

// AnalysisConfig holds analyzer defaults.
type AnalysisConfig struct {
	RequiredDegree  string   `mapstructure:"required_degree" validate:"required"`
	DictionaryPaths []string `mapstructure:"dictionary_paths"`
}

// ScoringConfig holds the component weights.
type ScoringConfig struct {
	Weights scoring.Weights `mapstructure:"weights"`
}

// FetchConfig configures job posting retrieval.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
	UseBrowser bool          `mapstructure:"use_browser"`
	UserAgent  string        `mapstructure:"user_agent"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" validate:"min=0"`
	DefaultWindow   time.Duration `mapstructure:"default_window" validate:"min=0"`
	AnalyzeLimit    int           `mapstructure:"analyze_limit" validate:"min=0"`
	AnalyzeWindow   time.Duration `mapstructure:"analyze_window" validate:"min=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"min=0"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// AuthConfig enables bearer-token auth on the analyze endpoints when JWTSecret is set.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours" validate:"min=1"`
}

// Enabled reports whether bearer tokens are required.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// StorageConfig configures remote resume sources.
type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

// S3Config configures the S3-compatible object store used for s3:// resume paths.
// Empty keys fall back to the default AWS credential chain.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key" validate:"required_with=AccessKey"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Error reports an invalid configuration.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// SetDefaults registers every key with its default value. Viper only resolves
// environment variables for keys it knows, so all keys are registered here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.upload_dir", "")
	v.SetDefault("server.max_upload_bytes", 16<<20)
	v.SetDefault("server.shutdown_grace", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("extraction.timeout", 30*time.Second)
	v.SetDefault("extraction.max_bytes", 10<<20)

	v.SetDefault("analysis.required_degree", "Bachelor")
	v.SetDefault("analysis.dictionary_paths", []string{})

	w := scoring.DefaultWeights()
	v.SetDefault("scoring.weights.keywords", w.Keywords)
	v.SetDefault("scoring.weights.skills", w.Skills)
	v.SetDefault("scoring.weights.experience", w.Experience)
	v.SetDefault("scoring.weights.education", w.Education)
	v.SetDefault("scoring.weights.achievements", w.Achievements)
	v.SetDefault("scoring.weights.language", w.Language)
	v.SetDefault("scoring.weights.format", w.Format)
	v.SetDefault("scoring.weights.diversity", w.Diversity)

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.user_agent", "")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_limit", 1000)
	v.SetDefault("ratelimit.default_window", time.Minute)
	v.SetDefault("ratelimit.analyze_limit", 30)
	v.SetDefault("ratelimit.analyze_window", time.Minute)
	v.SetDefault("ratelimit.cleanup_interval", 5*time.Minute)
	v.SetDefault("ratelimit.whitelist", []string{})
	v.SetDefault("ratelimit.blacklist", []string{})

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration_hours", 24)

	v.SetDefault("storage.s3.region", "auto")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// BindEnv makes every key resolvable from RESUME_SCORER_<KEY> with dots as underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads path into v. With an empty path it looks for resume-scorer.{yaml,json}
// in the working directory and treats a missing file as no file.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return &Error{Message: "failed to read config file", Cause: err}
	}
	return nil
}

// Load applies defaults and environment bindings to v, decodes it, and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	BindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Message: "failed to decode configuration", Cause: err}
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize splits comma-separated list values that arrive as one element from the environment.
func (c *Config) normalize() {
	c.Server.AllowedOrigins = splitList(c.Server.AllowedOrigins)
	c.Analysis.DictionaryPaths = splitList(c.Analysis.DictionaryPaths)
	c.RateLimit.Whitelist = splitList(c.RateLimit.Whitelist)
	c.RateLimit.Blacklist = splitList(c.RateLimit.Blacklist)
	c.Analysis.RequiredDegree = strings.TrimSpace(c.Analysis.RequiredDegree)
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks field ranges and the scoring weights.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &Error{Message: "invalid configuration", Cause: err}
	}
	if err := c.Scoring.Weights.Validate(); err != nil {
		return &Error{Message: "invalid scoring.weights", Cause: err}
	}
	if c.Extraction.MaxBytes > c.Server.MaxUploadBytes {
		return &Error{Message: fmt.Sprintf("extraction.max_bytes (%d) exceeds server.max_upload_bytes (%d)",
			c.Extraction.MaxBytes, c.Server.MaxUploadBytes)}
	}
	return nil
}
