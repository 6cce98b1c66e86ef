package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the analyze endpoints",
	Long:  "Sign a bearer token with auth.jwt_secret. Clients send it as \"Authorization: Bearer <token>\".",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Client name recorded in the token (required)")
	tokenCmd.Flags().Int("hours", 24, "Token lifetime in hours")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, map[string]string{"auth.expiration_hours": "hours"})
	if err != nil {
		return err
	}

	jwtCfg, err := config.NewJWTConfig(cfg.Auth)
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
