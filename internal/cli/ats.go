package cli

import (
	"fmt"

	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var atsCmd = &cobra.Command{
	Use:   "ats [fields-file] [job-description-file]",
	Short: "Audit a resume for ATS-friendliness",
	Long: `Audit a resume for compatibility with applicant tracking systems.
The score is built from four categories: job-description keyword coverage,
detectable sections, contact details and links, and layout readability.
Categories scoring below their cap produce actionable tips.

The job description file is optional; without one the keyword category
earns flat partial credit and a tip suggests supplying a JD.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if atsConfig.OutputFormat == "" {
			atsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(atsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runATS,
}

var atsConfig common.CommandConfig

func init() {
	atsCmd.Flags().StringVarP(&atsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	atsCmd.Flags().StringVar(&atsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = atsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runATS(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	analyzer := newAnalyzer(cfg)

	var jdFile string
	if len(args) == 2 {
		jdFile = args[1]
	}

	atsOperation := func(fields *types.ExtractedFields, jobDescription string) (types.ATSScore, error) {
		return analyzer.ATSScore(fields, jobDescription), nil
	}

	if err := common.RunAnalysisCommand(logger, atsConfig, args[0], jdFile, atsOperation); err != nil {
		return fmt.Errorf("failed to compute ATS score: %w", err)
	}
	logger.Info("ATS audit completed successfully")
	return nil
}
