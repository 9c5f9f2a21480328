package common

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"resumelens/internal/errors"
	"resumelens/internal/formatters"
)

// CommandConfig carries the output flags shared by every analysis command.
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// ValidateOutputFormat rejects formats outside the configured allow-list.
// An empty list leaves every registered formatter available.
func ValidateOutputFormat(format string, supported []string) error {
	if len(supported) == 0 || slices.Contains(supported, format) {
		return nil
	}
	return fmt.Errorf("output format %q is not enabled (enabled: %v)", format, supported)
}

// WriteResult renders an analysis result through the formatter registry
// and delivers it to the configured destination, stdout when no output
// file is set.
func WriteResult(logger *errors.Logger, result any, cfg CommandConfig) error {
	rendered, err := formatters.GlobalRegistry.Format(result, cfg.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to format result as %s", cfg.OutputFormat), err)
	}

	if cfg.OutputFile == "" {
		fmt.Print(rendered)
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}
	if err := os.WriteFile(cfg.OutputFile, []byte(rendered), 0600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", cfg.OutputFile), err)
	}

	if logger != nil {
		logger.Info("Result written",
			"file", cfg.OutputFile, "format", cfg.OutputFormat)
	}
	return nil
}
