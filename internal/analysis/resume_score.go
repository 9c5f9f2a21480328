package analysis

import (
	"strings"

	"resumelens/internal/types"
)

// Resume score category caps. They sum to 100.
const (
	capContact    = 10
	capSummary    = 10
	capSkills     = 20
	capExperience = 30
	capEducation  = 15
	capProjects   = 15
)

var (
	summaryKeywords = []string{"objective", "summary", "professional", "experienced", "skilled"}
	projectKeywords = []string{"project", "achievement", "award", "certificate", "publication", "portfolio"}
)

// summaryWindow is how far into the resume a summary cue must appear to
// count; summaries live at the top, not buried in a cover letter.
const summaryWindow = 500

// ScoreResume computes the 0-100 quality score with its per-category
// breakdown. Every category degrades independently, so a resume missing
// its text blob still earns points from the structured fields.
func ScoreResume(fields *types.ExtractedFields, today YearMonth) types.ResumeScore {
	text := fields.FullText()
	textLow := strings.ToLower(text)

	breakdown := types.Breakdown{}

	// Contact Info: name, email, phone scored independently.
	contact := 0
	if len(types.CleanString(fields.Name)) > 2 {
		contact += 3
	}
	if strings.Contains(types.CleanString(fields.Email), "@") {
		contact += 4
	}
	if len(types.CleanString(fields.MobileNumber)) >= 10 {
		contact += 3
	}
	breakdown["Contact Info"] = contact

	// Professional Summary: a cue word near the top of the document, or
	// partial credit for a document long enough to plausibly contain one.
	window := textLow
	if len(window) > summaryWindow {
		window = window[:summaryWindow]
	}
	summary := 0
	for _, kw := range summaryKeywords {
		if strings.Contains(window, kw) {
			summary = capSummary
			break
		}
	}
	if summary == 0 && len(text) > 2000 {
		summary = 5
	}
	breakdown["Professional Summary"] = summary

	// Skills: 2 points per distinct skill, capped.
	skills := 2 * len(types.CleanList(fields.Skills))
	if skills > capSkills {
		skills = capSkills
	}
	breakdown["Skills"] = skills

	// Experience: tiered on estimated years; when the estimate is zero,
	// fall back to counting distinct employers.
	years := EstimateExperience(fields, today)
	experience := 0
	switch {
	case years >= 6:
		experience = 30
	case years >= 3:
		experience = 20
	case years >= 1:
		experience = 10
	}
	if years == 0 {
		switch companies := CompanyCount(fields, today); {
		case companies >= 3:
			experience = 30
		case companies == 2:
			experience = 20
		case companies == 1:
			experience = 10
		}
	}
	breakdown["Experience"] = experience

	// Education: full credit for degree and college together, partial
	// for either alone.
	education := 0
	hasDegree := len(types.CleanList(fields.Degrees)) > 0
	hasCollege := len(types.CleanList(fields.Colleges)) > 0
	switch {
	case hasDegree && hasCollege:
		education = capEducation
	case hasDegree || hasCollege:
		education = 8
	}
	breakdown["Education"] = education

	// Projects: credit scales with how many accomplishment cues appear,
	// with a consolation for long documents.
	found := 0
	for _, kw := range projectKeywords {
		if strings.Contains(textLow, kw) {
			found++
		}
	}
	projects := 0
	switch {
	case found >= 2:
		projects = capProjects
	case found == 1:
		projects = 8
	case len(text) > 3000:
		projects = 5
	}
	breakdown["Projects"] = projects

	total := 0
	for _, v := range breakdown {
		total += v
	}
	if total > 100 {
		total = 100
	}
	return types.ResumeScore{Total: total, Breakdown: breakdown}
}

// CompanyCount returns the number of distinct employers, preferring the
// structured field and falling back to counting extracted date ranges in
// the experience section. Extractors repeat an employer once per role
// held there, so names are deduplicated case-insensitively.
func CompanyCount(fields *types.ExtractedFields, today YearMonth) int {
	seen := make(map[string]bool)
	for _, name := range types.CleanList(fields.CompanyNames) {
		seen[strings.ToLower(name)] = true
	}
	if len(seen) > 0 {
		return len(seen)
	}
	section := pickSection(fields.FullText())
	return len(ExtractDateRanges(section, today))
}
