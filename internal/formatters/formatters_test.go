package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumelens/internal/types"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "Excellent"},
		{85, "Excellent"},
		{84, "Good"},
		{70, "Good"},
		{69, "Fair"},
		{50, "Fair"},
		{49, "Needs Work"},
		{0, "Needs Work"},
	}

	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.expected {
			t.Errorf("ScoreLabel(%d) = %q, expected %q", tt.score, got, tt.expected)
		}
	}
}

func TestJSONFormatterFallsBackForAnyType(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["key"] != "value" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	_, err := registry.Format(types.ResumeScore{}, "xml")
	if err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestResumeScoreTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()
	score := types.ResumeScore{
		Total: 90,
		Breakdown: types.Breakdown{
			"skills":  40,
			"contact": 20,
		},
	}

	out, err := registry.Format(score, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(out, "Score: 90/100 (Excellent)") {
		t.Errorf("Missing score line in output:\n%s", out)
	}
	if !strings.Contains(out, "contact: 20") || !strings.Contains(out, "skills: 40") {
		t.Errorf("Missing breakdown entries in output:\n%s", out)
	}

	// Categories are emitted in sorted order
	if strings.Index(out, "contact") > strings.Index(out, "skills") {
		t.Errorf("Breakdown not sorted:\n%s", out)
	}
}

func TestATSScoreMarkdownFormatterIncludesTips(t *testing.T) {
	registry := NewFormatterRegistry()
	score := types.ATSScore{
		Total:     60,
		Breakdown: types.Breakdown{"word count": 10},
		Tips: map[string][]string{
			"word count": {"Aim for 450-650 words."},
		},
	}

	out, err := registry.Format(score, "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(out, "# ATS Score") {
		t.Errorf("Missing heading:\n%s", out)
	}
	if !strings.Contains(out, "| word count | 10 |") {
		t.Errorf("Missing breakdown table row:\n%s", out)
	}
	if !strings.Contains(out, "Aim for 450-650 words.") {
		t.Errorf("Missing tip:\n%s", out)
	}
}

func TestMatchTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()
	result := types.MatchResult{
		Percentage: 50,
		Matched:    []string{"python"},
		Missing:    []string{"kubernetes"},
	}

	out, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(out, "Coverage: 50%") {
		t.Errorf("Missing coverage line:\n%s", out)
	}
	if !strings.Contains(out, "- python") || !strings.Contains(out, "- kubernetes") {
		t.Errorf("Missing matched/missing entries:\n%s", out)
	}
}

func TestMatchTextFormatterFullCoverage(t *testing.T) {
	registry := NewFormatterRegistry()
	result := types.MatchResult{Percentage: 100, Matched: []string{"go"}}

	out, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "No missing keywords.") {
		t.Errorf("Expected the no-missing-keywords line:\n%s", out)
	}
}

func TestReportTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()
	report := types.Report{
		ExperienceYears: 3.5,
		Resume: types.ResumeScore{
			Total:     80,
			Breakdown: types.Breakdown{"skills": 40},
		},
		ATS: types.ATSScore{
			Total:     70,
			Breakdown: types.Breakdown{"contact": 15},
			Tips:      map[string][]string{"contact": {"Add a phone number."}},
		},
		Match: &types.MatchResult{
			Percentage: 100,
			Matched:    []string{"python"},
		},
		Colleges: []string{"State University"},
	}

	out, err := registry.Format(report, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{
		"Estimated Experience: 3.5 years",
		"Resume Score: 80/100 (Good)",
		"ATS Score: 70/100 (Good)",
		"[contact] Add a phone number.",
		"Skill Match: 100%",
		"Matched: python",
		"State University",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q in output:\n%s", want, out)
		}
	}
}

func TestReportMarkdownFormatterOmitsMatchSection(t *testing.T) {
	registry := NewFormatterRegistry()
	report := types.Report{
		Resume: types.ResumeScore{Total: 60, Breakdown: types.Breakdown{}},
		ATS:    types.ATSScore{Total: 60, Breakdown: types.Breakdown{}},
	}

	out, err := registry.Format(report, "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(out, "## Skill Match") {
		t.Errorf("Skill match section should be omitted without a match:\n%s", out)
	}
}

func TestGetSupportedFormats(t *testing.T) {
	registry := NewFormatterRegistry()
	formats := registry.GetSupportedFormats()

	seen := make(map[string]bool)
	for _, f := range formats {
		seen[f] = true
	}
	for _, want := range []string{"json", "text", "markdown"} {
		if !seen[want] {
			t.Errorf("Expected %q in supported formats, got %v", want, formats)
		}
	}
}
