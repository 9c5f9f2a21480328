package analysis

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"resumelens/internal/types"
)

const maxExperienceYears = 60.0

var bareYearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// EstimateExperience infers total work experience in years from the
// extracted fields, rounded to one decimal and clamped to [0, 60].
//
// Estimation tiers, first success wins:
//  1. An extractor-reported total, when plausible. A reported value of
//     exactly zero means "unknown" rather than "no experience", since
//     extractors default to zero instead of omitting the field; only
//     values in (0, 60] are authoritative.
//  2. Date ranges parsed from the isolated experience section of the
//     combined experience + full text; if the section yields none, the full
//     combined text is retried.
//  3. A bare-year span heuristic over the isolated section, as a weak last
//     resort.
func EstimateExperience(fields *types.ExtractedFields, today YearMonth) float64 {
	if fields == nil {
		return 0
	}

	if fields.TotalExperience.Valid {
		v := fields.TotalExperience.Value
		if v > 0 && v <= maxExperienceYears {
			return roundTenth(v)
		}
	}

	fullText := fields.FullText()
	expText := fields.ExperienceText()
	combined := fullText
	if strings.TrimSpace(expText) != "" {
		combined = strings.TrimSpace(expText + "\n" + fullText)
	}

	section := pickSection(combined)
	ranges := ExtractDateRanges(section, today)
	if len(ranges) == 0 && section != combined {
		ranges = ExtractDateRanges(combined, today)
	}

	if len(ranges) > 0 {
		years := float64(TotalMonths(MergeRanges(ranges))) / 12.0
		return roundTenth(math.Min(years, maxExperienceYears))
	}

	return yearSpanHeuristic(section, today)
}

// yearSpanHeuristic estimates experience from the distinct 4-digit years in
// the text: the span between the earliest and latest when two or more
// appear, or the distance from a lone past year to today.
func yearSpanHeuristic(text string, today YearMonth) float64 {
	years := distinctYears(text)
	switch {
	case len(years) >= 2:
		span := years[len(years)-1] - years[0]
		return math.Min(float64(span), maxExperienceYears)
	case len(years) == 1 && years[0] <= today.Year:
		return math.Min(float64(today.Year-years[0]), maxExperienceYears)
	default:
		return 0
	}
}

// distinctYears collects the unique 4-digit years in [1900, 2099] found in
// the text, in ascending order.
func distinctYears(text string) []int {
	if text == "" {
		return nil
	}
	seen := make(map[int]bool)
	var years []int
	for _, token := range bareYearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(token)
		if err != nil || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
