package analysis

import (
	"math"
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// ATS score category caps. They sum to 100.
const (
	capATSKeywords    = 45
	capATSSections    = 25
	capATSContact     = 15
	capATSReadability = 15
)

var (
	linkPattern    = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+)`)
	portfolioWords = []string{"project", "projects", "portfolio", "github"}
)

// ScoreATS grades the resume the way screening software would: keyword
// coverage against the JD, recognizable sections, parseable contact data,
// and machine-friendly formatting. Each category below its cap contributes
// improvement tips keyed by category name.
func (m *Matcher) ScoreATS(fields *types.ExtractedFields, jdText string, today YearMonth) types.ATSScore {
	text := fields.FullText()
	textLow := strings.ToLower(text)
	skills := types.CleanList(fields.Skills)

	breakdown := types.Breakdown{}
	tips := map[string][]string{}
	addTip := func(category, tip string) {
		tips[category] = append(tips[category], tip)
	}

	// Keywords: JD coverage scaled to the cap, or a flat floor without a JD.
	const kwCat = "Keywords (JD match)"
	if strings.TrimSpace(jdText) != "" {
		pct, _, missing := m.KeywordMatch(jdText, skills)
		breakdown[kwCat] = int(math.Round(float64(pct) / 100 * capATSKeywords))
		if breakdown[kwCat] < capATSKeywords && len(missing) > 0 {
			shown := missing
			if len(shown) > 8 {
				shown = shown[:8]
			}
			addTip(kwCat, "Work these job description keywords into your resume: "+strings.Join(shown, ", "))
		}
	} else {
		breakdown[kwCat] = 10
		addTip(kwCat, "Paste the job description to get a keyword match score")
	}

	// Sections: the structural blocks screeners look for.
	const secCat = "Sections"
	sections := 0
	if len(skills) > 0 {
		sections += 7
	} else {
		addTip(secCat, "Add a dedicated skills section")
	}
	years := EstimateExperience(fields, today)
	hasExperience := years > 0 ||
		len(fields.ExperienceText()) > 0 ||
		len(types.CleanList(fields.CompanyNames)) > 0
	if hasExperience {
		sections += 8
	} else {
		addTip(secCat, "Add a work experience section with dated entries")
	}
	if len(types.CleanList(fields.Degrees)) > 0 || len(types.CleanList(fields.Colleges)) > 0 {
		sections += 5
	} else {
		addTip(secCat, "Add an education section with your degree and school")
	}
	hasPortfolio := false
	for _, w := range portfolioWords {
		if strings.Contains(textLow, w) {
			hasPortfolio = true
			break
		}
	}
	if hasPortfolio {
		sections += 5
	} else {
		addTip(secCat, "Mention projects, a portfolio, or a GitHub profile")
	}
	breakdown[secCat] = sections

	// Contact & Links: parseable identity plus at least two URLs.
	const contactCat = "Contact & Links"
	contact := 0
	if len(types.CleanString(fields.Name)) > 2 {
		contact += 4
	} else {
		addTip(contactCat, "Put your full name at the top of the resume")
	}
	if strings.Contains(types.CleanString(fields.Email), "@") {
		contact += 5
	} else {
		addTip(contactCat, "Include an email address")
	}
	if len(types.CleanString(fields.MobileNumber)) >= 10 {
		contact += 3
	} else {
		addTip(contactCat, "Include a phone number with area code")
	}
	switch links := len(linkPattern.FindAllString(text, -1)); {
	case links >= 2:
		contact += 3
	case links == 1:
		contact += 2
		addTip(contactCat, "Add a second link such as LinkedIn or GitHub")
	default:
		addTip(contactCat, "Add links to your LinkedIn or portfolio")
	}
	breakdown[contactCat] = contact

	// Readability: bullets, sane length, and no table-like pipe layouts.
	const readCat = "Readability"
	readability := 0
	bullets := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			bullets++
		}
	}
	switch {
	case bullets >= 6:
		readability += 6
	case bullets >= 3:
		readability += 4
		addTip(readCat, "Use more bullet points to describe accomplishments")
	default:
		addTip(readCat, "Format experience entries as bullet points")
	}
	if n := len(text); n >= 800 && n <= 8000 {
		readability += 5
	} else {
		addTip(readCat, "Keep the resume between one and two pages of text")
	}
	if strings.Count(text, "|") < 25 {
		readability += 4
	} else {
		addTip(readCat, "Avoid tables and multi-column layouts; ATS parsers read top to bottom")
	}
	breakdown[readCat] = readability

	total := 0
	for _, v := range breakdown {
		total += v
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return types.ATSScore{Total: total, Breakdown: breakdown, Tips: tips}
}
