package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Job description files are plain prose; anything else gets a warning
// rather than a rejection, since extension is only a hint.
var jdExtensions = []string{".txt", ".md", ".markdown", ".text"}

// ParseFields decodes an extracted-fields JSON document. Field tolerance
// lives in the types package; this only rejects documents that are not
// JSON at all.
func ParseFields(content string) (*types.ExtractedFields, error) {
	var fields types.ExtractedFields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFields,
			"Extracted fields document is not valid JSON", err)
	}
	return &fields, nil
}

// ReadFieldsDocument loads and parses the extracted-fields document that
// every analysis command takes as its first argument.
func ReadFieldsDocument(logger *errors.Logger, path string) (*types.ExtractedFields, error) {
	content, err := readInputFile(path)
	if err != nil {
		return nil, err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		warn(logger, "Fields document does not have a .json extension", "path", path)
	}
	fields, err := ParseFields(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fields, nil
}

// ReadJobDescription loads the optional job description text. An empty
// path means the command runs without a JD and yields the empty string.
func ReadJobDescription(logger *errors.Logger, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := readInputFile(path)
	if err != nil {
		return "", err
	}
	if ext := strings.ToLower(filepath.Ext(path)); !slices.Contains(jdExtensions, ext) {
		warn(logger, "Job description may not be a text file", "path", path)
	}
	return strings.TrimSpace(content), nil
}

// readInputFile stats before reading so a missing file, a directory, and
// a permission problem each surface as a distinct error.
func readInputFile(path string) (string, error) {
	if path == "" {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Input file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return "", errors.NewIOError(errors.ErrCodeFileNotFound,
			fmt.Sprintf("File not found: %s", path), err)
	case err != nil:
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot access file: %s", path), err)
	case info.IsDir():
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Path is a directory, not a file: %s", path), nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", path), err)
	}
	return string(content), nil
}

func warn(logger *errors.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
}
