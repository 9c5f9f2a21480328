package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [fields-file]",
	Short: "Grade overall resume quality",
	Long: `Grade a resume's overall quality from its extracted field document.
The score is built from six weighted categories: contact details, summary,
skills, experience, education, and projects. Each category reports its
earned points in the breakdown.

The fields file is the JSON document produced by a resume extractor
(name, email, skills, degree, company_names, text, and so on). Missing or
mistyped fields simply earn no points; the command never fails on them.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	analyzer := newAnalyzer(cfg)

	scoreOperation := func(fields *types.ExtractedFields, _ string) (types.ResumeScore, error) {
		return analyzer.ResumeScore(fields), nil
	}

	if err := common.RunAnalysisCommand(logger, scoreConfig, args[0], "", scoreOperation); err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
