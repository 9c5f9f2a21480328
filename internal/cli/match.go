package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [fields-file] [job-description-file]",
	Short: "Match resume skills against a job description",
	Long: `Match a resume's extracted skills against the curated keywords found
in a job description. Reports the coverage percentage along with which
keywords the resume covers and which it is missing.

Generic filler skills (teamwork, communication, office tools) are dropped
before matching so the percentage reflects role-relevant skills only.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	analyzer := newAnalyzer(cfg)

	matchOperation := func(fields *types.ExtractedFields, jobDescription string) (types.MatchResult, error) {
		return analyzer.SkillMatch(fields, jobDescription), nil
	}

	if err := common.RunAnalysisCommand(logger, matchConfig, args[0], args[1], matchOperation); err != nil {
		return fmt.Errorf("failed to match skills: %w", err)
	}
	logger.Info("Skill matching completed successfully")
	return nil
}
