package analysis

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

func atsFields() *types.ExtractedFields {
	text := "Ada Lovelace\n" +
		"https://github.com/ada https://linkedin.com/in/ada\n" +
		"Experience\n" +
		"Acme 01/2016 - 12/2019\n" +
		"• Built data pipelines in Python\n" +
		"• Ran SQL migrations\n" +
		"• Containerized services with Docker\n" +
		"• Led a team of four\n" +
		"• Cut costs by 30%\n" +
		"• Maintained GitHub projects\n" +
		"Education\nState University\n"
	// Pad into the readable length band.
	text += strings.Repeat("Additional detail about responsibilities and tooling. ", 16)
	return &types.ExtractedFields{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		MobileNumber: "5551234567",
		Skills:       types.StringList{"Python", "SQL", "Docker"},
		Degrees:      types.StringList{"BSc"},
		Colleges:     types.StringList{"State University"},
		Text:         types.StringList{text},
	}
}

func TestScoreATSWithJD(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())
	got := m.ScoreATS(atsFields(), "python sql docker", testToday)

	if want := capATSKeywords; got.Breakdown["Keywords (JD match)"] != want {
		t.Errorf("Keywords = %d, expected %d for full coverage", got.Breakdown["Keywords (JD match)"], want)
	}
	if got.Breakdown["Sections"] != capATSSections {
		t.Errorf("Sections = %d, expected %d", got.Breakdown["Sections"], capATSSections)
	}
	if got.Breakdown["Contact & Links"] != capATSContact {
		t.Errorf("Contact & Links = %d, expected %d", got.Breakdown["Contact & Links"], capATSContact)
	}
	if got.Breakdown["Readability"] != capATSReadability {
		t.Errorf("Readability = %d, expected %d", got.Breakdown["Readability"], capATSReadability)
	}
	if got.Total != 100 {
		t.Errorf("Total = %d, expected 100", got.Total)
	}
	if len(got.Tips) != 0 {
		t.Errorf("expected no tips for a full-score resume, got %v", got.Tips)
	}
}

func TestScoreATSEmptyJD(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())
	got := m.ScoreATS(atsFields(), "", testToday)

	if got.Breakdown["Keywords (JD match)"] != 10 {
		t.Errorf("Keywords = %d, expected the flat 10 without a JD", got.Breakdown["Keywords (JD match)"])
	}
	if len(got.Tips["Keywords (JD match)"]) == 0 {
		t.Error("expected a tip asking for the job description")
	}
	// Other categories still computed from the fields.
	if got.Breakdown["Sections"] != capATSSections {
		t.Errorf("Sections = %d, expected %d", got.Breakdown["Sections"], capATSSections)
	}
}

func TestScoreATSEmptyFields(t *testing.T) {
	m := NewMatcher(DefaultMatcherConfig())
	got := m.ScoreATS(&types.ExtractedFields{}, "", testToday)

	if got.Total < 0 || got.Total > 100 {
		t.Errorf("Total = %d, expected a value in [0, 100]", got.Total)
	}
	for _, category := range []string{"Sections", "Contact & Links", "Readability"} {
		if len(got.Tips[category]) == 0 {
			t.Errorf("expected tips for deficient category %q", category)
		}
	}
}

func TestScoreATSCategoryCaps(t *testing.T) {
	caps := types.Breakdown{
		"Keywords (JD match)": capATSKeywords,
		"Sections":            capATSSections,
		"Contact & Links":     capATSContact,
		"Readability":         capATSReadability,
	}
	m := NewMatcher(DefaultMatcherConfig())
	for _, jd := range []string{"", "python sql docker kubernetes terraform"} {
		got := m.ScoreATS(atsFields(), jd, testToday)
		for category, limit := range caps {
			if got.Breakdown[category] > limit {
				t.Errorf("jd=%q: Breakdown[%q] = %d exceeds cap %d", jd, category, got.Breakdown[category], limit)
			}
		}
	}
}

func TestScoreATSPartialLinkCredit(t *testing.T) {
	fields := atsFields()
	fields.Text = types.StringList{strings.Replace(
		fields.FullText(), "https://github.com/ada https://linkedin.com/in/ada", "https://github.com/ada", 1,
	)}
	m := NewMatcher(DefaultMatcherConfig())
	got := m.ScoreATS(fields, "", testToday)

	if got.Breakdown["Contact & Links"] != capATSContact-1 {
		t.Errorf("Contact & Links = %d, expected %d with a single link", got.Breakdown["Contact & Links"], capATSContact-1)
	}
	if len(got.Tips["Contact & Links"]) == 0 {
		t.Error("expected a tip suggesting a second link")
	}
}

func TestScoreATSPipeHeavyLayout(t *testing.T) {
	fields := atsFields()
	fields.Text = types.StringList{fields.FullText() + "\n" + strings.Repeat("| cell ", 30)}
	m := NewMatcher(DefaultMatcherConfig())
	got := m.ScoreATS(fields, "", testToday)

	if got.Breakdown["Readability"] != capATSReadability-4 {
		t.Errorf("Readability = %d, expected %d for a pipe-heavy layout", got.Breakdown["Readability"], capATSReadability-4)
	}
	if len(got.Tips["Readability"]) == 0 {
		t.Error("expected a tip about table layouts")
	}
}
