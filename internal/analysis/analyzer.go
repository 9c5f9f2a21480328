package analysis

import (
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"resumelens/internal/types"
)

// Analyzer ties the individual calculators together behind one entry point.
// The matcher can be swapped at runtime (keyword config reload) without
// interrupting in-flight calls; everything else is stateless.
type Analyzer struct {
	matcher atomic.Pointer[Matcher]
	now     func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the wall clock, pinning "today" for date-range math.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer builds an Analyzer using the given matcher configuration.
func NewAnalyzer(cfg MatcherConfig, opts ...Option) *Analyzer {
	a := &Analyzer{now: time.Now}
	a.matcher.Store(NewMatcher(cfg))
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetMatcherConfig atomically replaces the keyword configuration.
func (a *Analyzer) SetMatcherConfig(cfg MatcherConfig) {
	a.matcher.Store(NewMatcher(cfg))
}

// Matcher returns the current matcher snapshot.
func (a *Analyzer) Matcher() *Matcher {
	return a.matcher.Load()
}

func (a *Analyzer) today() YearMonth {
	t := a.now()
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// Experience estimates total professional experience in years.
func (a *Analyzer) Experience(fields *types.ExtractedFields) float64 {
	return EstimateExperience(fields, a.today())
}

// ResumeScore grades overall resume quality.
func (a *Analyzer) ResumeScore(fields *types.ExtractedFields) types.ResumeScore {
	return ScoreResume(fields, a.today())
}

// ATSScore grades ATS-friendliness against an optional job description.
func (a *Analyzer) ATSScore(fields *types.ExtractedFields, jdText string) types.ATSScore {
	return a.Matcher().ScoreATS(fields, jdText, a.today())
}

// SkillMatch computes curated-keyword JD coverage for the resume's skills.
func (a *Analyzer) SkillMatch(fields *types.ExtractedFields, jdText string) types.MatchResult {
	return a.Matcher().SkillMatch(jdText, types.CleanList(fields.Skills))
}

// Analyze runs every calculator over one resume. The skill match is only
// included when a JD was supplied; colleges fall back to scanning the text
// when the extractor produced none.
func (a *Analyzer) Analyze(fields *types.ExtractedFields, jdText string) types.Report {
	report := types.Report{
		ExperienceYears: a.Experience(fields),
		Resume:          a.ResumeScore(fields),
		ATS:             a.ATSScore(fields, jdText),
		Colleges:        types.CleanList(fields.Colleges),
	}
	if len(report.Colleges) == 0 {
		report.Colleges = FallbackColleges(fields.FullText())
	}
	if strings.TrimSpace(jdText) != "" {
		match := a.SkillMatch(fields, jdText)
		report.Match = &match
	}
	return report
}

var collegePattern = regexp.MustCompile(`(?i)\b(university|college|institute|iit|nit|iiit)\b`)

// maxFallbackColleges bounds the guess list; beyond a few hits the scan is
// matching boilerplate, not education history.
const maxFallbackColleges = 3

// FallbackColleges scans resume text for lines that look like institution
// names when the extractor found none. Lines are deduplicated
// case-insensitively and returned in document order.
func FallbackColleges(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 4 || len(line) > 120 || !collegePattern.MatchString(line) {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
		if len(out) == maxFallbackColleges {
			break
		}
	}
	return out
}
