package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeScore", &ResumeScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeScore", &ResumeScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "ATSScore", &ATSScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSScore", &ATSScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "Report", &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", "Report", &ReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeScore:
		return "ResumeScore"
	case types.ATSScore:
		return "ATSScore"
	case types.MatchResult:
		return "MatchResult"
	case types.Report:
		return "Report"
	default:
		return "any"
	}
}

// ScoreLabel maps a 0-100 score to a human-readable quality band.
func ScoreLabel(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Work"
	}
}

// sortedKeys returns breakdown category names in a stable order so output
// does not shuffle between runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeBreakdownText(output *strings.Builder, breakdown types.Breakdown) {
	for _, category := range sortedKeys(breakdown) {
		output.WriteString(fmt.Sprintf("  %s: %d\n", category, breakdown[category]))
	}
}

func writeBreakdownMarkdown(output *strings.Builder, breakdown types.Breakdown) {
	output.WriteString("| Category | Points |\n")
	output.WriteString("|----------|--------|\n")
	for _, category := range sortedKeys(breakdown) {
		output.WriteString(fmt.Sprintf("| %s | %d |\n", category, breakdown[category]))
	}
}

// ResumeScoreTextFormatter handles text formatting for resume score results
type ResumeScoreTextFormatter struct{}

func (rtf *ResumeScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeScore)
	if !ok {
		return "", fmt.Errorf("expected ResumeScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Total, ScoreLabel(result.Total)))
	output.WriteString("Breakdown:\n")
	writeBreakdownText(&output, result.Breakdown)

	return output.String(), nil
}

func (rtf *ResumeScoreTextFormatter) SupportedType() string {
	return "ResumeScore"
}

// ResumeScoreMarkdownFormatter handles markdown formatting for resume score results
type ResumeScoreMarkdownFormatter struct{}

func (rmf *ResumeScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeScore)
	if !ok {
		return "", fmt.Errorf("expected ResumeScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (%s)\n\n", result.Total, ScoreLabel(result.Total)))
	output.WriteString("## Breakdown\n\n")
	writeBreakdownMarkdown(&output, result.Breakdown)

	return output.String(), nil
}

func (rmf *ResumeScoreMarkdownFormatter) SupportedType() string {
	return "ResumeScore"
}

// ATSScoreTextFormatter handles text formatting for ATS audit results
type ATSScoreTextFormatter struct{}

func (atf *ATSScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSScore)
	if !ok {
		return "", fmt.Errorf("expected ATSScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100 (%s)\n\n", result.Total, ScoreLabel(result.Total)))
	output.WriteString("Breakdown:\n")
	writeBreakdownText(&output, result.Breakdown)

	if len(result.Tips) > 0 {
		output.WriteString("\nTips:\n")
		for _, category := range sortedKeys(result.Tips) {
			output.WriteString(fmt.Sprintf("  %s:\n", category))
			for _, tip := range result.Tips[category] {
				output.WriteString(fmt.Sprintf("    - %s\n", tip))
			}
		}
	}

	return output.String(), nil
}

func (atf *ATSScoreTextFormatter) SupportedType() string {
	return "ATSScore"
}

// ATSScoreMarkdownFormatter handles markdown formatting for ATS audit results
type ATSScoreMarkdownFormatter struct{}

func (amf *ATSScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSScore)
	if !ok {
		return "", fmt.Errorf("expected ATSScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (%s)\n\n", result.Total, ScoreLabel(result.Total)))
	output.WriteString("## Breakdown\n\n")
	writeBreakdownMarkdown(&output, result.Breakdown)

	if len(result.Tips) > 0 {
		output.WriteString("\n## Tips\n\n")
		for _, category := range sortedKeys(result.Tips) {
			output.WriteString(fmt.Sprintf("### %s\n\n", category))
			for _, tip := range result.Tips[category] {
				output.WriteString(fmt.Sprintf("- %s\n", tip))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (amf *ATSScoreMarkdownFormatter) SupportedType() string {
	return "ATSScore"
}

// MatchTextFormatter handles text formatting for skill match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL MATCH ===\n\n")
	output.WriteString(fmt.Sprintf("Coverage: %d%%\n\n", result.Percentage))

	if len(result.Matched) > 0 {
		output.WriteString("Matched:\n")
		for _, skill := range result.Matched {
			output.WriteString(fmt.Sprintf("  - %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.Missing) > 0 {
		output.WriteString("Missing:\n")
		for _, skill := range result.Missing {
			output.WriteString(fmt.Sprintf("  - %s\n", skill))
		}
	} else {
		output.WriteString("No missing keywords.\n")
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for skill match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Skill Match\n\n")
	output.WriteString(fmt.Sprintf("**Coverage:** %d%%\n\n", result.Percentage))

	if len(result.Matched) > 0 {
		output.WriteString("## Matched\n\n")
		for _, skill := range result.Matched {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.Missing) > 0 {
		output.WriteString("## Missing\n\n")
		for _, skill := range result.Missing {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
	} else {
		output.WriteString("## No Missing Keywords\n\nEvery relevant keyword in the job description is covered.\n")
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResult"
}

// ReportTextFormatter handles text formatting for full analysis reports
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Estimated Experience: %.1f years\n\n", result.ExperienceYears))

	output.WriteString(fmt.Sprintf("Resume Score: %d/100 (%s)\n", result.Resume.Total, ScoreLabel(result.Resume.Total)))
	writeBreakdownText(&output, result.Resume.Breakdown)
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("ATS Score: %d/100 (%s)\n", result.ATS.Total, ScoreLabel(result.ATS.Total)))
	writeBreakdownText(&output, result.ATS.Breakdown)
	if len(result.ATS.Tips) > 0 {
		output.WriteString("Tips:\n")
		for _, category := range sortedKeys(result.ATS.Tips) {
			for _, tip := range result.ATS.Tips[category] {
				output.WriteString(fmt.Sprintf("  - [%s] %s\n", category, tip))
			}
		}
	}
	output.WriteString("\n")

	if result.Match != nil {
		output.WriteString(fmt.Sprintf("Skill Match: %d%%\n", result.Match.Percentage))
		if len(result.Match.Matched) > 0 {
			output.WriteString(fmt.Sprintf("  Matched: %s\n", strings.Join(result.Match.Matched, ", ")))
		}
		if len(result.Match.Missing) > 0 {
			output.WriteString(fmt.Sprintf("  Missing: %s\n", strings.Join(result.Match.Missing, ", ")))
		}
		output.WriteString("\n")
	}

	if len(result.Colleges) > 0 {
		output.WriteString("Education:\n")
		for _, college := range result.Colleges {
			output.WriteString(fmt.Sprintf("  - %s\n", college))
		}
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "Report"
}

// ReportMarkdownFormatter handles markdown formatting for full analysis reports
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Estimated Experience:** %.1f years\n\n", result.ExperienceYears))

	output.WriteString("## Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (%s)\n\n", result.Resume.Total, ScoreLabel(result.Resume.Total)))
	writeBreakdownMarkdown(&output, result.Resume.Breakdown)
	output.WriteString("\n")

	output.WriteString("## ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100 (%s)\n\n", result.ATS.Total, ScoreLabel(result.ATS.Total)))
	writeBreakdownMarkdown(&output, result.ATS.Breakdown)
	output.WriteString("\n")
	if len(result.ATS.Tips) > 0 {
		output.WriteString("### Tips\n\n")
		for _, category := range sortedKeys(result.ATS.Tips) {
			for _, tip := range result.ATS.Tips[category] {
				output.WriteString(fmt.Sprintf("- **%s:** %s\n", category, tip))
			}
		}
		output.WriteString("\n")
	}

	if result.Match != nil {
		output.WriteString("## Skill Match\n\n")
		output.WriteString(fmt.Sprintf("**Coverage:** %d%%\n\n", result.Match.Percentage))
		if len(result.Match.Matched) > 0 {
			output.WriteString(fmt.Sprintf("**Matched:** %s\n\n", strings.Join(result.Match.Matched, ", ")))
		}
		if len(result.Match.Missing) > 0 {
			output.WriteString(fmt.Sprintf("**Missing:** %s\n\n", strings.Join(result.Match.Missing, ", ")))
		}
	}

	if len(result.Colleges) > 0 {
		output.WriteString("## Education\n\n")
		for _, college := range result.Colleges {
			output.WriteString(fmt.Sprintf("- %s\n", college))
		}
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "Report"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
