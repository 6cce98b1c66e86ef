package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the upload form and the /analyze endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd, map[string]string{"server.port": "port"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	analyzer, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	opts := server.Options{Config: cfg, Analyzer: analyzer, Logger: log}
	if cfg.Auth.Enabled() {
		jwtCfg, err := config.NewJWTConfig(cfg.Auth)
		if err != nil {
			return err
		}
		opts.JWT = server.NewJWTService(jwtCfg)
		log.Info("bearer token auth enabled")
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting "+app, zap.String("version", version), zap.Int("port", cfg.Server.Port))
	return srv.Run(ctx)
}
