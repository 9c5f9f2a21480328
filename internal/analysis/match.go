package analysis

import (
	"math"
	"sort"
	"strings"

	"resumelens/internal/types"
)

// MatcherConfig is the immutable keyword configuration a Matcher is built
// from. Injecting it (rather than reading package globals) lets operators
// tune the lists per deployment and lets tests substitute small fixtures.
type MatcherConfig struct {
	// GenericSkills are soft-skill or overly common terms dropped from
	// skill matching because they carry no discriminative signal.
	GenericSkills []string
	// CuratedKeywords are the domain terms checked for JD relevance; they
	// form the denominator of the user-facing match percentage.
	CuratedKeywords []string
	// Stopwords are removed from the JD token stream before the
	// open-vocabulary ATS keyword audit.
	Stopwords []string
}

// DefaultMatcherConfig returns the built-in keyword lists.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		GenericSkills: []string{
			"teamwork", "communication", "microsoft", "office", "word",
			"excel", "english", "spanish", "french", "german",
			"presentation", "problem solving", "leadership", "management",
			"research", "planning", "organizing",
		},
		CuratedKeywords: []string{
			"python", "java", "javascript", "sql", "react", "django",
			"aws", "docker", "kubernetes", "git", "api", "rest",
			"machine learning", "data analysis", "agile", "scrum",
			"fastapi", "flask", "next.js", "node.js",
		},
		Stopwords: []string{
			"and", "or", "with", "to", "in", "for", "of", "a", "an", "the",
			"on", "at", "by", "we", "you", "your", "our", "they", "them",
			"this", "that", "as", "is", "are", "years", "year",
			"experience", "knowledge", "skills", "ability", "required",
		},
	}
}

// Matcher computes JD-to-skill coverage. It is immutable after construction
// and safe for concurrent use.
type Matcher struct {
	generic  map[string]bool
	curated  []string
	stopword map[string]bool
}

// NewMatcher builds a Matcher from the given keyword configuration.
func NewMatcher(cfg MatcherConfig) *Matcher {
	m := &Matcher{
		generic:  make(map[string]bool, len(cfg.GenericSkills)),
		curated:  make([]string, 0, len(cfg.CuratedKeywords)),
		stopword: make(map[string]bool, len(cfg.Stopwords)),
	}
	for _, s := range cfg.GenericSkills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			m.generic[s] = true
		}
	}
	for _, k := range cfg.CuratedKeywords {
		if k = strings.TrimSpace(k); k != "" {
			m.curated = append(m.curated, k)
		}
	}
	for _, w := range cfg.Stopwords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m.stopword[w] = true
		}
	}
	return m
}

// flatten lower-cases text and collapses all whitespace to single spaces,
// so multi-word phrases compare by substring regardless of line breaks.
func flatten(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// phraseInJD reports whether a phrase appears in the JD. Single-token
// phrases require exact token membership (substring checks would match
// "git" inside "digital"); multi-token phrases match verbatim in the
// flattened text or when every token is individually present.
func phraseInJD(phrase string, jdFlat string, jdTokens TokenSet) bool {
	tokens := NormalizeTokens(phrase)
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) > 1 && strings.Contains(jdFlat, phrase) {
		return true
	}
	for token := range tokens {
		if !jdTokens.Contains(token) {
			return false
		}
	}
	return true
}

// SkillMatch computes the curated-keyword JD coverage shown to users.
//
// Resume skills on the generic stoplist are dropped first. A remaining
// single-token skill matches when its token is in the JD token set; a
// multi-token skill matches when it appears verbatim in the flattened JD
// or all of its tokens do. The percentage is the share of curated keywords found
// relevant in the JD that some matched skill covers (substring in either
// direction, case-insensitive). No JD, no skills, or no relevant keywords
// yields a zero-percentage result.
func (m *Matcher) SkillMatch(jdText string, skills []string) types.MatchResult {
	result := types.MatchResult{Matched: []string{}, Missing: []string{}}
	if strings.TrimSpace(jdText) == "" || len(skills) == 0 {
		return result
	}

	jdFlat := flatten(jdText)
	jdTokens := NormalizeTokens(jdFlat)

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || m.generic[strings.ToLower(skill)] {
			continue
		}

		if phraseInJD(flatten(skill), jdFlat, jdTokens) {
			result.Matched = append(result.Matched, skill)
		}
	}

	var relevant []string
	for _, keyword := range m.curated {
		if phraseInJD(strings.ToLower(keyword), jdFlat, jdTokens) {
			relevant = append(relevant, keyword)
		}
	}
	if len(relevant) == 0 {
		return types.MatchResult{Matched: []string{}, Missing: []string{}}
	}

	for _, keyword := range relevant {
		keywordLow := strings.ToLower(keyword)
		covered := false
		for _, skill := range result.Matched {
			skillLow := strings.ToLower(skill)
			if strings.Contains(skillLow, keywordLow) || strings.Contains(keywordLow, skillLow) {
				covered = true
				break
			}
		}
		if !covered {
			result.Missing = append(result.Missing, keyword)
		}
	}

	covered := len(relevant) - len(result.Missing)
	result.Percentage = 100 * covered / len(relevant)
	return result
}

// KeywordMatch is the open-vocabulary ATS audit: the JD is tokenized,
// stopwords and very short tokens removed, and the remaining keyword set
// compared against the tokens of every resume skill. It deliberately stays
// separate from SkillMatch: this one measures what an automated screen
// would see, not what a reader would find relevant.
func (m *Matcher) KeywordMatch(jdText string, skills []string) (int, []string, []string) {
	if strings.TrimSpace(jdText) == "" {
		return 0, nil, nil
	}

	jdKeywords := make(map[string]bool)
	for token := range NormalizeTokens(flatten(jdText)) {
		if m.stopword[token] {
			continue
		}
		if len(token) < 3 && token != "c" && token != "r" {
			continue
		}
		jdKeywords[token] = true
	}
	if len(jdKeywords) == 0 {
		return 0, nil, nil
	}

	resumeTokens := make(TokenSet)
	for _, skill := range skills {
		for token := range NormalizeTokens(skill) {
			resumeTokens[token] = struct{}{}
		}
	}

	var matched, missing []string
	for keyword := range jdKeywords {
		if resumeTokens.Contains(keyword) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	score := int(math.Round(100 * float64(len(matched)) / float64(len(jdKeywords))))
	return score, matched, missing
}
