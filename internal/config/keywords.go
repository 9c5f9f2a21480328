package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"resumelens/internal/analysis"
)

// MatcherConfig holds the keyword lists driving skill matching. Lists left
// empty fall back to the built-in defaults; a keywords file, when
// configured, overrides both.
type MatcherConfig struct {
	GenericSkills   []string                 `mapstructure:"genericSkills"`
	CuratedKeywords []string                 `mapstructure:"curatedKeywords"`
	Stopwords       []string                 `mapstructure:"stopwords"`
	KeywordsFile    string                   `mapstructure:"keywordsFile"`
	AutoReload      KeywordsAutoReloadConfig `mapstructure:"autoReload"`
}

// KeywordsAutoReloadConfig holds configuration for watching the keywords
// file and hot-reloading the matcher when it changes.
type KeywordsAutoReloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`       // Enable file watching
	DebounceDelay time.Duration `mapstructure:"debounceDelay"` // Debounce delay for file change events
}

// ToAnalysis converts the configured keyword lists into the matcher's
// configuration, filling every empty list from the built-in defaults.
func (m MatcherConfig) ToAnalysis() analysis.MatcherConfig {
	defaults := analysis.DefaultMatcherConfig()
	cfg := analysis.MatcherConfig{
		GenericSkills:   m.GenericSkills,
		CuratedKeywords: m.CuratedKeywords,
		Stopwords:       m.Stopwords,
	}
	if len(cfg.GenericSkills) == 0 {
		cfg.GenericSkills = defaults.GenericSkills
	}
	if len(cfg.CuratedKeywords) == 0 {
		cfg.CuratedKeywords = defaults.CuratedKeywords
	}
	if len(cfg.Stopwords) == 0 {
		cfg.Stopwords = defaults.Stopwords
	}
	return cfg
}

// KeywordLists is the on-disk shape of a keywords override file.
type KeywordLists struct {
	GenericSkills   []string `mapstructure:"genericSkills"`
	CuratedKeywords []string `mapstructure:"curatedKeywords"`
	Stopwords       []string `mapstructure:"stopwords"`
}

// LoadKeywordsFile reads a YAML keywords file. Missing keys leave the
// corresponding list empty, which means "use the defaults"; a file that
// defines none of the keys is rejected as probably the wrong file.
func LoadKeywordsFile(path string) (KeywordLists, error) {
	var lists KeywordLists

	absPath, err := filepath.Abs(path)
	if err != nil {
		return lists, fmt.Errorf("failed to resolve keywords file path '%s': %w", path, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return lists, fmt.Errorf("keywords file not found: %s", absPath)
	}

	v := viper.New()
	v.SetConfigFile(absPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return lists, fmt.Errorf("failed to read keywords file '%s': %w", absPath, err)
	}

	if err := v.Unmarshal(&lists); err != nil {
		return lists, fmt.Errorf("failed to parse keywords file '%s': %w", absPath, err)
	}

	if len(lists.GenericSkills) == 0 && len(lists.CuratedKeywords) == 0 && len(lists.Stopwords) == 0 {
		return lists, fmt.Errorf("keywords file '%s' defines no keyword lists (expected genericSkills, curatedKeywords or stopwords)", absPath)
	}

	log.Printf("[CONFIG] Successfully loaded keywords file: %s (generic=%d curated=%d stopwords=%d)",
		absPath, len(lists.GenericSkills), len(lists.CuratedKeywords), len(lists.Stopwords))

	return lists, nil
}

// loadKeywordsFromFile applies a configured keywords file over the inline
// matcher lists.
func (c *Config) loadKeywordsFromFile() error {
	if c.Matcher.KeywordsFile == "" {
		return nil
	}

	lists, err := LoadKeywordsFile(c.Matcher.KeywordsFile)
	if err != nil {
		return err
	}
	c.Matcher.applyLists(lists)
	return nil
}

// applyLists overrides the inline keyword lists with non-empty lists from a
// keywords file.
func (m *MatcherConfig) applyLists(lists KeywordLists) {
	if len(lists.GenericSkills) > 0 {
		m.GenericSkills = lists.GenericSkills
	}
	if len(lists.CuratedKeywords) > 0 {
		m.CuratedKeywords = lists.CuratedKeywords
	}
	if len(lists.Stopwords) > 0 {
		m.Stopwords = lists.Stopwords
	}
}

// ReloadKeywords re-reads the keywords file and returns the refreshed
// matcher configuration. Used by the file watcher for hot reloads.
func (c *Config) ReloadKeywords() (analysis.MatcherConfig, error) {
	if c.Matcher.KeywordsFile == "" {
		return c.Matcher.ToAnalysis(), nil
	}

	lists, err := LoadKeywordsFile(c.Matcher.KeywordsFile)
	if err != nil {
		return analysis.MatcherConfig{}, err
	}
	c.Matcher.applyLists(lists)
	return c.Matcher.ToAnalysis(), nil
}
