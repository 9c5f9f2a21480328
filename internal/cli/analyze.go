package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [fields-file] [job-description-file]",
	Short: "Run the full resume analysis",
	Long: `Run every analysis over one resume and produce a combined report:
estimated years of experience, resume quality score, ATS-friendliness
audit, and, when a job description is supplied, the skill match.

The report also lists detected education institutions, falling back to a
scan of the resume text when the extractor produced none.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	analyzer := newAnalyzer(cfg)

	var jdFile string
	if len(args) == 2 {
		jdFile = args[1]
	}

	analyzeOperation := func(fields *types.ExtractedFields, jobDescription string) (types.Report, error) {
		return analyzer.Analyze(fields, jobDescription), nil
	}

	if err := common.RunAnalysisCommand(logger, analyzeConfig, args[0], jdFile, analyzeOperation); err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
