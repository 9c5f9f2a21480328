package analysis

import (
	"testing"
	"time"

	"resumelens/internal/types"
)

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestAnalyzerAnalyze(t *testing.T) {
	a := NewAnalyzer(DefaultMatcherConfig(), WithClock(testClock()))
	fields := fullFields()

	report := a.Analyze(fields, "Looking for Python and SQL experience")

	if report.ExperienceYears <= 0 {
		t.Errorf("ExperienceYears = %v, expected a positive estimate", report.ExperienceYears)
	}
	if report.Resume.Total != 100 {
		t.Errorf("Resume.Total = %d, expected 100", report.Resume.Total)
	}
	if report.ATS.Total <= 0 || report.ATS.Total > 100 {
		t.Errorf("ATS.Total = %d, expected a value in (0, 100]", report.ATS.Total)
	}
	if report.Match == nil {
		t.Fatal("expected a skill match when a JD is supplied")
	}
	if report.Match.Percentage != 100 {
		t.Errorf("Match.Percentage = %d, expected 100", report.Match.Percentage)
	}
	if len(report.Colleges) != 1 || report.Colleges[0] != "State University" {
		t.Errorf("Colleges = %v, expected the extracted college", report.Colleges)
	}
}

func TestAnalyzerOmitsMatchWithoutJD(t *testing.T) {
	a := NewAnalyzer(DefaultMatcherConfig(), WithClock(testClock()))
	report := a.Analyze(fullFields(), "   ")
	if report.Match != nil {
		t.Errorf("expected no skill match without a JD, got %+v", report.Match)
	}
}

func TestAnalyzerMatcherSwap(t *testing.T) {
	a := NewAnalyzer(DefaultMatcherConfig(), WithClock(testClock()))
	fields := &types.ExtractedFields{Skills: types.StringList{"Fortran"}}

	before := a.SkillMatch(fields, "fortran modernization effort")
	if before.Percentage != 0 {
		t.Errorf("Percentage = %d before reload, expected 0", before.Percentage)
	}

	a.SetMatcherConfig(MatcherConfig{CuratedKeywords: []string{"fortran"}})
	after := a.SkillMatch(fields, "fortran modernization effort")
	if after.Percentage != 100 {
		t.Errorf("Percentage = %d after reload, expected 100", after.Percentage)
	}
}

func TestFallbackColleges(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name:     "institution line found",
			text:     "Education\nMassachusetts Institute of Technology\n2015 - 2019",
			expected: []string{"Massachusetts Institute of Technology"},
		},
		{
			name:     "case insensitive dedupe",
			text:     "State University\nSTATE UNIVERSITY\nstate university",
			expected: []string{"State University"},
		},
		{
			name: "at most three guesses",
			text: "Alpha University\nBeta College\nGamma Institute\nDelta University",
			expected: []string{
				"Alpha University",
				"Beta College",
				"Gamma Institute",
			},
		},
		{
			name:     "overlong lines skipped",
			text:     "worked with university partners on a long-running collaboration spanning multiple departments, campuses, faculties and international research groups over several years",
			expected: nil,
		},
		{
			name:     "no institution words",
			text:     "Acme Corp\nGlobex Inc",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackColleges(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("FallbackColleges() = %v, expected %v", got, tt.expected)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("college[%d] = %q, expected %q", i, got[i], want)
				}
			}
		})
	}
}

func TestAnalyzerCollegeFallback(t *testing.T) {
	a := NewAnalyzer(DefaultMatcherConfig(), WithClock(testClock()))
	fields := &types.ExtractedFields{
		Text: types.StringList{"Education\nState University\n2015 - 2019"},
	}
	report := a.Analyze(fields, "")
	if len(report.Colleges) != 1 || report.Colleges[0] != "State University" {
		t.Errorf("Colleges = %v, expected the fallback scan to find State University", report.Colleges)
	}
}
