package analysis

import (
	"regexp"
	"strings"
)

// tokenRunPattern matches runs of characters that may form a technology
// token, keeping names like "c++", "node.js" and "c#" intact.
var tokenRunPattern = regexp.MustCompile(`[a-z0-9+#.]+`)

// singleLetterTech are the one-character tokens worth keeping because they
// name real technologies.
var singleLetterTech = map[string]bool{"c": true, "r": true, "j": true}

// TokenSet is an unordered set of normalized tokens.
type TokenSet map[string]struct{}

// Contains reports whether the token is in the set.
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// NormalizeTokens lower-cases the text and extracts maximal alphanumeric
// runs (plus "+", "#", "." so compound technology names survive). Tokens of
// a single character are dropped unless they name a technology. Sentence
// punctuation that glues onto a run is trimmed so "experience." and
// "experience" compare equal, while interior dots as in "node.js" are kept.
func NormalizeTokens(text string) TokenSet {
	tokens := make(TokenSet)
	if text == "" {
		return tokens
	}

	for _, run := range tokenRunPattern.FindAllString(strings.ToLower(text), -1) {
		token := strings.Trim(run, ".")
		if token == "" {
			continue
		}
		if len(token) == 1 && !singleLetterTech[token] {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}
