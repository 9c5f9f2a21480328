package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// YearMonth is the atomic unit of date-range arithmetic: a calendar year and
// a month in 1..12, ordered lexicographically.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before reports whether y is strictly earlier than other.
func (y YearMonth) Before(other YearMonth) bool {
	if y.Year != other.Year {
		return y.Year < other.Year
	}
	return y.Month < other.Month
}

// After reports whether y is strictly later than other.
func (y YearMonth) After(other YearMonth) bool {
	return other.Before(y)
}

// DateRange is one inferred employment period. Start never exceeds End.
type DateRange struct {
	Start YearMonth `json:"start"`
	End   YearMonth `json:"end"`
}

// NewDateRange builds a range, swapping the endpoints when the source text
// listed them in reverse.
func NewDateRange(start, end YearMonth) DateRange {
	if start.After(end) {
		start, end = end, start
	}
	return DateRange{Start: start, End: end}
}

// Months returns the inclusive month span of the range: both endpoints
// count, so January..January is one month.
func (r DateRange) Months() int {
	if r.Start.After(r.End) {
		return 0
	}
	return (r.End.Year-r.Start.Year)*12 + (r.End.Month - r.Start.Month) + 1
}

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var presentWords = map[string]bool{
	"present":  true,
	"current":  true,
	"till":     true,
	"tilldate": true,
	"now":      true,
	"ongoing":  true,
}

// dashFolder folds the unicode dash variants resumes actually contain down
// to a plain ASCII hyphen before any pattern runs.
var dashFolder = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
)

const (
	monthNameExpr = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	numericMonth  = `0?[1-9]|1[0-2]`
	yearExpr      = `(?:19|20)\d{2}`
	presentExpr   = `present|current|till|tilldate|now|ongoing`
)

// datePattern pairs a notation pattern with its interpreter. The patterns
// run in a fixed order with a shared seen-span set: when two notations could
// claim overlapping text the more specific pattern, listed first, wins, and
// a span claimed once is never claimed again.
type datePattern struct {
	re        *regexp.Regexp
	interpret func(groups []string, today YearMonth) (DateRange, bool)
}

var datePatterns = []datePattern{
	// MM/YYYY - Present
	{
		re: regexp.MustCompile(`(?i)\b(` + numericMonth + `)\s*[/-]\s*(` + yearExpr + `)\s*-\s*(?:` + presentExpr + `)\b`),
		interpret: func(g []string, today YearMonth) (DateRange, bool) {
			start, ok := numericYM(g[2], g[1], today)
			if !ok {
				return DateRange{}, false
			}
			return presentRange(start, today)
		},
	},
	// MM/YYYY - MM/YYYY
	{
		re: regexp.MustCompile(`(?i)\b(` + numericMonth + `)\s*[/-]\s*(` + yearExpr + `)\s*-\s*(` + numericMonth + `)\s*[/-]\s*(` + yearExpr + `)\b`),
		interpret: func(g []string, today YearMonth) (DateRange, bool) {
			start, okStart := numericYM(g[2], g[1], today)
			end, okEnd := numericYM(g[4], g[3], today)
			if !okStart || !okEnd {
				return DateRange{}, false
			}
			return boundedRange(start, end, today)
		},
	},
	// Month YYYY - Month/Present [YYYY]
	{
		re: regexp.MustCompile(`(?i)(` + monthNameExpr + `)[,./\s-]*(` + yearExpr + `)\s*(?:-|to|through)\s*(` + monthNameExpr + `|` + presentExpr + `)?[,./\s-]*(` + yearExpr + `)?`),
		interpret: func(g []string, today YearMonth) (DateRange, bool) {
			start, ok := namedYM(g[1], g[2], false, today)
			if !ok {
				return DateRange{}, false
			}
			if presentWords[strings.ToLower(strings.TrimSpace(g[3]))] {
				return presentRange(start, today)
			}
			end, ok := namedYM(g[3], g[4], true, today)
			if !ok {
				return DateRange{}, false
			}
			return boundedRange(start, end, today)
		},
	},
	// YYYY - YYYY/Present
	{
		re: regexp.MustCompile(`(?i)\b(` + yearExpr + `)\s*(?:-|to|through)\s*(` + yearExpr + `|` + presentExpr + `)\b`),
		interpret: func(g []string, today YearMonth) (DateRange, bool) {
			start, ok := namedYM("", g[1], false, today)
			if !ok {
				return DateRange{}, false
			}
			if presentWords[strings.ToLower(strings.TrimSpace(g[2]))] {
				return presentRange(start, today)
			}
			end, ok := namedYM("", g[2], true, today)
			if !ok {
				return DateRange{}, false
			}
			return boundedRange(start, end, today)
		},
	},
}

// numericYM parses a numeric year and month token pair, applying the sanity
// window [1900, today+1] to the year.
func numericYM(yearToken, monthToken string, today YearMonth) (YearMonth, bool) {
	year, err := strconv.Atoi(yearToken)
	if err != nil || year < 1900 || year > today.Year+1 {
		return YearMonth{}, false
	}
	month, err := strconv.Atoi(monthToken)
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: month}, true
}

// namedYM parses a month-name token (possibly empty) with a year token.
// A missing month defaults to January for a start date and December for an
// end date, matching how open notations like "2019 - 2021" are read.
func namedYM(monthToken, yearToken string, isEnd bool, today YearMonth) (YearMonth, bool) {
	if yearToken == "" {
		return YearMonth{}, false
	}
	year, err := strconv.Atoi(yearToken)
	if err != nil || year < 1900 || year > today.Year+1 {
		return YearMonth{}, false
	}

	fallback := 1
	if isEnd {
		fallback = 12
	}
	month := fallback
	if monthToken != "" {
		if m, ok := monthNumbers[strings.ToLower(monthToken)]; ok {
			month = m
		}
	}
	return YearMonth{Year: year, Month: month}, true
}

// boundedRange orders the endpoints and rejects ranges ending in the future;
// a job cannot have finished after "now".
func boundedRange(start, end YearMonth, today YearMonth) (DateRange, bool) {
	r := NewDateRange(start, end)
	if r.End.After(today) {
		return DateRange{}, false
	}
	return r, true
}

// presentRange closes an open-ended range at today. A start in the future
// would swap into a future end, so it is rejected like any other
// future-ending range.
func presentRange(start, today YearMonth) (DateRange, bool) {
	if start.After(today) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: today}, true
}

// ExtractDateRanges finds every recognized date-range notation in the text.
// Each pattern pass scans the whole dash-normalized text; a match whose span
// overlaps one claimed by an earlier (more specific) pass is skipped, so
// "03/2021 - Present" never also yields a "2021 - Present" reading. A span
// is claimed as soon as its notation is recognized, even when the match
// turns out malformed; malformed matches are discarded individually and
// extraction continues.
func ExtractDateRanges(text string, today YearMonth) []DateRange {
	if text == "" {
		return nil
	}

	norm := dashFolder.Replace(text)

	var claimed [][2]int
	overlaps := func(start, end int) bool {
		for _, span := range claimed {
			if start < span[1] && span[0] < end {
				return true
			}
		}
		return false
	}

	var ranges []DateRange
	for _, pattern := range datePatterns {
		for _, loc := range pattern.re.FindAllStringSubmatchIndex(norm, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})

			groups := submatchStrings(norm, loc)
			if r, ok := pattern.interpret(groups, today); ok {
				ranges = append(ranges, r)
			}
		}
	}
	return ranges
}

// submatchStrings expands a SubmatchIndex result into group strings, with
// "" for groups that did not participate in the match.
func submatchStrings(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 && end >= 0 {
			groups[i] = text[start:end]
		}
	}
	return groups
}
