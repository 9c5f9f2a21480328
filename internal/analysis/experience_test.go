package analysis

import (
	"math"
	"testing"

	"resumelens/internal/types"
)

func TestEstimateExperience(t *testing.T) {
	tests := []struct {
		name     string
		fields   *types.ExtractedFields
		expected float64
	}{
		{
			name:     "nil fields",
			fields:   nil,
			expected: 0,
		},
		{
			name: "extractor total wins when plausible",
			fields: &types.ExtractedFields{
				TotalExperience: types.FlexFloat{Value: 4.5, Valid: true},
				Text:            types.StringList{"Experience\n01/2010 - 01/2012"},
			},
			expected: 4.5,
		},
		{
			name: "extractor total of zero means unknown",
			fields: &types.ExtractedFields{
				TotalExperience: types.FlexFloat{Value: 0, Valid: true},
				Text:            types.StringList{"Experience\n01/2020 - 12/2021 at Acme"},
			},
			expected: 2.0,
		},
		{
			name: "implausible extractor total falls through",
			fields: &types.ExtractedFields{
				TotalExperience: types.FlexFloat{Value: 120, Valid: true},
				Text:            types.StringList{"Experience\n01/2020 - 12/2021 at Acme"},
			},
			expected: 2.0,
		},
		{
			name: "present range counted to today",
			fields: &types.ExtractedFields{
				Text: types.StringList{"Work Experience\nSoftware Engineer 03/2021 - Present"},
			},
			expected: 36.0 / 12.0,
		},
		{
			name: "overlapping jobs merged before counting",
			fields: &types.ExtractedFields{
				Text: types.StringList{"Experience\nJan 2018 - Dec 2019 at Initech\nJun 2019 - Aug 2020 at Globex"},
			},
			expected: 2.7,
		},
		{
			name: "experience field searched alongside text",
			fields: &types.ExtractedFields{
				Experience: types.StringList{"Analyst, 05/2017 - 04/2019"},
			},
			expected: 2.0,
		},
		{
			name: "bare year span fallback",
			fields: &types.ExtractedFields{
				TotalExperience: types.FlexFloat{Value: 0, Valid: true},
				Text:            types.StringList{"2015 2020"},
			},
			expected: 5.0,
		},
		{
			name: "lone past year measured to today",
			fields: &types.ExtractedFields{
				Text: types.StringList{"working since 2019"},
			},
			expected: 5.0,
		},
		{
			name:     "no signal at all",
			fields:   &types.ExtractedFields{Text: types.StringList{"enthusiastic junior developer"}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateExperience(tt.fields, testToday)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EstimateExperience() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEstimateExperienceBounds(t *testing.T) {
	fields := &types.ExtractedFields{
		Text: types.StringList{"Experience\n1901 - 2024 keeper of the lighthouse"},
	}
	got := EstimateExperience(fields, testToday)
	if got < 0 || got > 60 {
		t.Errorf("EstimateExperience() = %v, expected a value in [0, 60]", got)
	}
}

func TestEstimateExperienceMonotonic(t *testing.T) {
	// Adding a disjoint range never lowers the estimate.
	base := &types.ExtractedFields{
		Text: types.StringList{"Experience\n01/2020 - 12/2020"},
	}
	more := &types.ExtractedFields{
		Text: types.StringList{"Experience\n01/2020 - 12/2020\n01/2015 - 12/2016"},
	}
	if EstimateExperience(more, testToday) < EstimateExperience(base, testToday) {
		t.Error("adding a disjoint range lowered the experience estimate")
	}
}

func TestPickSection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: "",
		},
		{
			name:     "no headings returns full text",
			text:     "just a plain paragraph",
			expected: "just a plain paragraph",
		},
		{
			name:     "experience to education",
			text:     "Summary line\nExperience\nAcme 2019 - 2021\nEducation\nState University",
			expected: "Experience\nAcme 2019 - 2021\n",
		},
		{
			name:     "section runs to end of text",
			text:     "Intro\nWork Experience\nGlobex 2018 - 2020",
			expected: "Work Experience\nGlobex 2018 - 2020",
		},
		{
			name:     "experienced does not open a section",
			text:     "Experienced developer\nSkills\nGo",
			expected: "Experienced developer\nSkills\nGo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickSection(tt.text); got != tt.expected {
				t.Errorf("pickSection() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeTokens(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		unwants []string
	}{
		{
			name: "compound technology names survive",
			text: "C++, C#, Node.js and Go",
			want: []string{"c++", "c#", "node.js", "go"},
		},
		{
			name:    "sentence punctuation trimmed",
			text:    "five years of experience.",
			want:    []string{"experience", "years"},
			unwants: []string{"experience."},
		},
		{
			name:    "single letters dropped unless a language",
			text:    "a c r x",
			want:    []string{"c", "r"},
			unwants: []string{"a", "x"},
		},
		{
			name: "case folded",
			text: "PYTHON Python python",
			want: []string{"python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NormalizeTokens(tt.text)
			for _, w := range tt.want {
				if !tokens.Contains(w) {
					t.Errorf("NormalizeTokens(%q) missing token %q", tt.text, w)
				}
			}
			for _, u := range tt.unwants {
				if tokens.Contains(u) {
					t.Errorf("NormalizeTokens(%q) should not contain %q", tt.text, u)
				}
			}
		})
	}
}
