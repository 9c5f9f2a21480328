package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadKeywordsFile(t *testing.T) {
	tempDir := t.TempDir()

	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	content := "curatedKeywords:\n  - go\n  - rust\nstopwords:\n  - the\n  - and\n"
	if err := os.WriteFile(keywordsFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test keywords file: %v", err)
	}

	lists, err := LoadKeywordsFile(keywordsFile)
	if err != nil {
		t.Fatalf("Failed to load keywords file: %v", err)
	}

	if len(lists.CuratedKeywords) != 2 || lists.CuratedKeywords[0] != "go" {
		t.Errorf("Expected curated keywords [go rust], got %v", lists.CuratedKeywords)
	}
	if len(lists.Stopwords) != 2 {
		t.Errorf("Expected 2 stopwords, got %v", lists.Stopwords)
	}
	if len(lists.GenericSkills) != 0 {
		t.Errorf("Expected no generic skills, got %v", lists.GenericSkills)
	}
}

func TestLoadKeywordsFileErrors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKeywordsFile(filepath.Join(tempDir, "nope.yaml"))
		if err == nil {
			t.Error("Expected an error for a missing keywords file")
		}
	})

	t.Run("file without keyword lists", func(t *testing.T) {
		emptyFile := filepath.Join(tempDir, "empty.yaml")
		if err := os.WriteFile(emptyFile, []byte("unrelated: true\n"), 0600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		_, err := LoadKeywordsFile(emptyFile)
		if err == nil {
			t.Error("Expected an error for a file defining no keyword lists")
		}
	})
}

func TestMatcherConfigToAnalysis(t *testing.T) {
	t.Run("empty lists fall back to defaults", func(t *testing.T) {
		cfg := MatcherConfig{}.ToAnalysis()
		if len(cfg.GenericSkills) == 0 {
			t.Error("Expected default generic skills")
		}
		if len(cfg.CuratedKeywords) == 0 {
			t.Error("Expected default curated keywords")
		}
		if len(cfg.Stopwords) == 0 {
			t.Error("Expected default stopwords")
		}
	})

	t.Run("configured lists override defaults independently", func(t *testing.T) {
		m := MatcherConfig{CuratedKeywords: []string{"go"}}
		cfg := m.ToAnalysis()
		if len(cfg.CuratedKeywords) != 1 || cfg.CuratedKeywords[0] != "go" {
			t.Errorf("Expected curated keywords [go], got %v", cfg.CuratedKeywords)
		}
		if len(cfg.GenericSkills) == 0 {
			t.Error("Expected generic skills to keep their defaults")
		}
	})
}

func TestLoadKeywordsFromFile(t *testing.T) {
	tempDir := t.TempDir()

	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	content := "genericSkills:\n  - buzzword\n"
	if err := os.WriteFile(keywordsFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test keywords file: %v", err)
	}

	config := &Config{
		Matcher: MatcherConfig{
			KeywordsFile:    keywordsFile,
			CuratedKeywords: []string{"go"},
		},
	}

	if err := config.loadKeywordsFromFile(); err != nil {
		t.Fatalf("Failed to load keywords from file: %v", err)
	}

	if len(config.Matcher.GenericSkills) != 1 || config.Matcher.GenericSkills[0] != "buzzword" {
		t.Errorf("Expected generic skills [buzzword], got %v", config.Matcher.GenericSkills)
	}
	// Lists absent from the file are preserved.
	if len(config.Matcher.CuratedKeywords) != 1 || config.Matcher.CuratedKeywords[0] != "go" {
		t.Errorf("Expected inline curated keywords to survive, got %v", config.Matcher.CuratedKeywords)
	}
}

func TestReloadKeywords(t *testing.T) {
	tempDir := t.TempDir()

	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	if err := os.WriteFile(keywordsFile, []byte("curatedKeywords:\n  - go\n"), 0600); err != nil {
		t.Fatalf("Failed to create test keywords file: %v", err)
	}

	config := &Config{Matcher: MatcherConfig{KeywordsFile: keywordsFile}}

	cfg, err := config.ReloadKeywords()
	if err != nil {
		t.Fatalf("Failed initial reload: %v", err)
	}
	if len(cfg.CuratedKeywords) != 1 || cfg.CuratedKeywords[0] != "go" {
		t.Errorf("Expected curated keywords [go], got %v", cfg.CuratedKeywords)
	}

	// Rewrite the file and reload again.
	if err := os.WriteFile(keywordsFile, []byte("curatedKeywords:\n  - go\n  - rust\n"), 0600); err != nil {
		t.Fatalf("Failed to rewrite keywords file: %v", err)
	}
	cfg, err = config.ReloadKeywords()
	if err != nil {
		t.Fatalf("Failed second reload: %v", err)
	}
	if len(cfg.CuratedKeywords) != 2 {
		t.Errorf("Expected 2 curated keywords after reload, got %v", cfg.CuratedKeywords)
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name: "disabled mode",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode with files",
			tls:  TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"},
		},
		{
			name:        "server mode missing key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem"},
			expectError: true,
		},
		{
			name: "mutual mode with ca",
			tls:  TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem"},
		},
		{
			name:        "mutual mode missing ca",
			tls:         TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem"},
			expectError: true,
		},
		{
			name:        "invalid mode",
			tls:         TLSConfig{Mode: "sideways"},
			expectError: true,
		},
		{
			name:        "invalid min version",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.0"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := c.ValidateTLSConfig()
			if tt.expectError && err == nil {
				t.Error("Expected an error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
