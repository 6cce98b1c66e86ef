package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/logger"
)

const app = "resume_scorer"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Score resumes against job descriptions",
		Long: "resume_scorer extracts text from PDF and DOCX resumes, compares it with a job description, " +
			"and reports a weighted 0-100 match score. Run it once from the command line or serve the HTTP API.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "json format for logging")
}

// loadConfig resolves the configuration from flags, environment and the config
// file. flagKeys maps config keys to flags of cmd that override them.
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, error) {
	v := viper.New()

	bindings := map[string]string{"log.debug": "debug", "log.json": "json-logs"}
	for key, flag := range flagKeys {
		bindings[key] = flag
	}
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return nil, fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}

	if err := config.ReadFile(v, cfgFile); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// newLogger builds the logger selected by the log settings.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, flagKeys)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
