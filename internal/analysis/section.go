package analysis

import (
	"fmt"
	"regexp"
)

// Heading keywords that open an experience section, and the headings that
// typically follow it. Isolating the section keeps graduation years out of
// the employment-date pool.
var (
	sectionStartKeys = []string{
		"experience",
		"work experience",
		"employment",
		"work history",
		"professional experience",
		"career",
		"internship",
		"internships",
		"positions",
		"employment history",
		"professional history",
	}
	sectionEndKeys = []string{
		"education",
		"projects",
		"skills",
		"certifications",
		"awards",
		"achievements",
		"publications",
		"summary",
		"objective",
		"academic",
		"qualifications",
		"training",
		"certificate",
	}

	sectionStartPatterns = compileHeadingPatterns(sectionStartKeys)
	sectionEndPatterns   = compileHeadingPatterns(sectionEndKeys)
)

// compileHeadingPatterns builds one pattern per heading keyword, bounded by
// non-word context so "experienced" never matches "experience".
func compileHeadingPatterns(keys []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keys))
	for _, key := range keys {
		expr := fmt.Sprintf(`(?im)(?:^|\s)(%s)(?:\s|$|:)`, regexp.QuoteMeta(key))
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// earliestHeading returns the offset of the earliest heading match in text,
// or -1 if none of the patterns match.
func earliestHeading(text string, patterns []*regexp.Regexp) int {
	earliest := -1
	for _, pattern := range patterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			start := loc[2] // group 1: the keyword itself, not its leading whitespace
			if earliest < 0 || start < earliest {
				earliest = start
			}
		}
	}
	return earliest
}

// pickSection isolates the experience section of a resume. The section runs
// from the earliest experience heading to the earliest end heading after it,
// or to end-of-text. When no heading is found the full text is returned
// unchanged, so callers always have something to scan.
func pickSection(text string) string {
	if text == "" {
		return ""
	}

	start := earliestHeading(text, sectionStartPatterns)
	if start < 0 {
		return text
	}

	tail := text[start:]
	if end := earliestHeading(tail, sectionEndPatterns); end >= 0 {
		return text[start : start+end]
	}
	return tail
}
