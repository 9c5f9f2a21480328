package cli

import (
	"context"

	"resumelens/internal/analysis"
	"resumelens/internal/config"
	"resumelens/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumelens",
	Short: "A CLI tool for scoring and matching resumes",
	Long: `Resumelens analyzes extracted resume fields: it estimates total
experience, grades resume quality and ATS-friendliness, and matches the
resume's skills against a job description. Input is the JSON field document
produced by a resume extractor; a job description is plain text.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// newAnalyzer builds an analyzer from the configured keyword lists.
func newAnalyzer(cfg *config.Config) *analysis.Analyzer {
	return analysis.NewAnalyzer(cfg.Matcher.ToAnalysis())
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(atsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
