// Package cli wires the cobra command tree. Configuration and the logger are
// loaded once in main and travel to subcommands through the command context.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumelens/internal/config"
	"resumelens/internal/errors"
)

type contextKey string

const (
	configContextKey contextKey = "config"
	loggerContextKey contextKey = "logger"
)

var rootCmd = &cobra.Command{
	Use:   "resumelens",
	Short: "AI-powered resume analysis",
	Long: `ResumeLens reads a resume document (PDF, DOCX or plain text), runs
three AI analysis tasks against it concurrently (quality feedback,
structured parsing, ATS and jargon review), and renders the combined
result as JSON, text, markdown or a PDF report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with config and logger attached to ctx
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configContextKey, cfg)
	ctx = context.WithValue(ctx, loggerContextKey, logger)
	return rootCmd.ExecuteContext(ctx)
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configContextKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*errors.Logger); ok {
		return logger
	}
	return nil
}

// requireContext pulls both dependencies or fails the command; commands never
// run with a half-initialized environment.
func requireContext(cmd *cobra.Command) (*config.Config, *errors.Logger, error) {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	if cfg == nil || logger == nil {
		return nil, nil, fmt.Errorf("command context is missing configuration")
	}
	return cfg, logger, nil
}
