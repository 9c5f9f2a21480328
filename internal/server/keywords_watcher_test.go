package server

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeKeywordsFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write keywords file: %v", err)
	}
}

func TestNewKeywordsWatcherRequiresFile(t *testing.T) {
	_, err := NewKeywordsWatcher("", time.Second, func() {}, nil)
	if err == nil {
		t.Error("Expected an error for an empty keywords file path")
	}
}

func TestNewKeywordsWatcherDefaultDebounce(t *testing.T) {
	kw, err := NewKeywordsWatcher("keywords.yaml", 0, func() {}, nil)
	if err != nil {
		t.Fatalf("NewKeywordsWatcher failed: %v", err)
	}
	if kw.debounceDelay != time.Second {
		t.Errorf("debounceDelay = %v, expected 1s default", kw.debounceDelay)
	}
}

func TestKeywordsWatcherStartStop(t *testing.T) {
	tempDir := t.TempDir()
	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	writeKeywordsFile(t, keywordsFile, "curatedKeywords:\n  - go\n")

	kw, err := NewKeywordsWatcher(keywordsFile, 50*time.Millisecond, func() {}, nil)
	if err != nil {
		t.Fatalf("NewKeywordsWatcher failed: %v", err)
	}

	if err := kw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !kw.IsRunning() {
		t.Error("Expected watcher to be running after Start")
	}
	if kw.WatchedFile() != keywordsFile {
		t.Errorf("WatchedFile = %q, expected %q", kw.WatchedFile(), keywordsFile)
	}

	// Starting twice is an error
	if err := kw.Start(); err == nil {
		t.Error("Expected an error when starting an already running watcher")
	}

	if err := kw.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if kw.IsRunning() {
		t.Error("Expected watcher to be stopped after Stop")
	}

	// Stopping a stopped watcher is a no-op
	if err := kw.Stop(); err != nil {
		t.Errorf("Stop on a stopped watcher returned an error: %v", err)
	}
}

func TestKeywordsWatcherTriggersReloadOnChange(t *testing.T) {
	tempDir := t.TempDir()
	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	writeKeywordsFile(t, keywordsFile, "curatedKeywords:\n  - go\n")

	var reloads atomic.Int32
	kw, err := NewKeywordsWatcher(keywordsFile, 20*time.Millisecond, func() {
		reloads.Add(1)
	}, nil)
	if err != nil {
		t.Fatalf("NewKeywordsWatcher failed: %v", err)
	}

	if err := kw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() {
		if err := kw.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
	}()

	// Filesystem modtime granularity can be coarse; make sure the rewrite
	// lands on a later timestamp than the one recorded at Start.
	writeKeywordsFile(t, keywordsFile, "curatedKeywords:\n  - go\n  - rust\n")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(keywordsFile, future, future); err != nil {
		t.Fatalf("Failed to update file times: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Timed out waiting for reload callback")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestKeywordsWatcherHasFileChanged(t *testing.T) {
	tempDir := t.TempDir()
	keywordsFile := filepath.Join(tempDir, "keywords.yaml")
	writeKeywordsFile(t, keywordsFile, "stopwords:\n  - the\n")

	kw, err := NewKeywordsWatcher(keywordsFile, time.Second, func() {}, nil)
	if err != nil {
		t.Fatalf("NewKeywordsWatcher failed: %v", err)
	}

	// First check records the modtime
	if !kw.hasFileChanged() {
		t.Error("Expected initial check to report a change")
	}
	if kw.hasFileChanged() {
		t.Error("Expected no change without a modification")
	}

	// A newer modtime counts as a change
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(keywordsFile, future, future); err != nil {
		t.Fatalf("Failed to update file times: %v", err)
	}
	if !kw.hasFileChanged() {
		t.Error("Expected a change after the modtime advanced")
	}

	// Deleting the file counts as a change once
	if err := os.Remove(keywordsFile); err != nil {
		t.Fatalf("Failed to remove keywords file: %v", err)
	}
	if !kw.hasFileChanged() {
		t.Error("Expected a change after the file was deleted")
	}
	if kw.hasFileChanged() {
		t.Error("Expected no further change while the file is missing")
	}
}

func TestKeywordsWatcherStartWithMissingFile(t *testing.T) {
	tempDir := t.TempDir()
	keywordsFile := filepath.Join(tempDir, "keywords.yaml")

	kw, err := NewKeywordsWatcher(keywordsFile, 20*time.Millisecond, func() {}, nil)
	if err != nil {
		t.Fatalf("NewKeywordsWatcher failed: %v", err)
	}

	// The file does not exist yet; the watcher falls back to the directory
	if err := kw.Start(); err != nil {
		t.Fatalf("Start failed for a missing file: %v", err)
	}
	defer func() {
		if err := kw.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
	}()

	if !kw.IsRunning() {
		t.Error("Expected watcher to be running while waiting for the file")
	}
}
