package common

import (
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// AnalysisFunc runs one analysis over the parsed fields and optional job
// description text.
type AnalysisFunc[Output any] func(fields *types.ExtractedFields, jobDescription string) (Output, error)

// RunAnalysisCommand encapsulates the common logic for file-based CLI
// commands: read the fields document (and JD file when given), run the
// analysis, and hand the result to the output pipeline.
func RunAnalysisCommand[Output any](
	logger *errors.Logger,
	cmdConfig CommandConfig,
	fieldsFile, jdFile string,
	analyze AnalysisFunc[Output],
) error {
	fields, err := ReadFieldsDocument(logger, fieldsFile)
	if err != nil {
		return err
	}

	jobDescription, err := ReadJobDescription(logger, jdFile)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Running analysis",
			"fields_file", fieldsFile,
			"jd_file", jdFile,
			"output_format", cmdConfig.OutputFormat)
	}

	result, err := analyze(fields, jobDescription)
	if err != nil {
		return err
	}

	return WriteResult(logger, result, cmdConfig)
}
