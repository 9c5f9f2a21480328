package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumelens/internal/errors"
)

// KeywordsWatcher watches the matcher keywords file for changes and
// triggers a reload so running servers pick up list edits without a
// restart.
type KeywordsWatcher struct {
	mu sync.RWMutex

	// File path to watch
	keywordsFile string

	// File metadata
	lastModTime time.Time

	// Watcher components
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}

	// Callback and logging
	reloadCallback func()
	logger         *errors.Logger

	// State
	running bool
}

// NewKeywordsWatcher creates a new keywords file watcher
func NewKeywordsWatcher(keywordsFile string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*KeywordsWatcher, error) {
	if keywordsFile == "" {
		return nil, fmt.Errorf("keywords file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second // Default 1 second debounce
	}

	return &KeywordsWatcher{
		keywordsFile:   keywordsFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the keywords file for changes
func (kw *KeywordsWatcher) Start() error {
	kw.mu.Lock()
	defer kw.mu.Unlock()

	if kw.running {
		return fmt.Errorf("keywords watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	kw.fsWatcher = watcher

	if stat, err := os.Stat(kw.keywordsFile); err == nil {
		kw.lastModTime = stat.ModTime()
	} else if !os.IsNotExist(err) {
		kw.cleanupWatcher()
		return fmt.Errorf("failed to stat keywords file: %w", err)
	}

	if err := kw.addFileToWatcher(); err != nil {
		kw.cleanupWatcher()
		return err
	}

	kw.running = true
	go kw.watchLoop()

	if kw.logger != nil {
		kw.logger.Info("Keywords file watcher started",
			"file", kw.keywordsFile,
			"debounce_delay", kw.debounceDelay)
	}
	return nil
}

// cleanupWatcher closes the file watcher and logs any errors
func (kw *KeywordsWatcher) cleanupWatcher() {
	if kw.fsWatcher != nil {
		if closeErr := kw.fsWatcher.Close(); closeErr != nil && kw.logger != nil {
			kw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// Stop stops the keywords file watcher
func (kw *KeywordsWatcher) Stop() error {
	kw.mu.Lock()
	defer kw.mu.Unlock()

	if !kw.running {
		return nil
	}

	// Signal stop
	close(kw.stopChan)

	// Stop debounce timer if running
	if kw.debounceTimer != nil {
		kw.debounceTimer.Stop()
	}

	// Close file system watcher
	if kw.fsWatcher != nil {
		if err := kw.fsWatcher.Close(); err != nil {
			if kw.logger != nil {
				kw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	kw.running = false

	if kw.logger != nil {
		kw.logger.Info("Keywords file watcher stopped")
	}

	return nil
}

// addFileToWatcher adds the keywords file and its directory to the watcher
func (kw *KeywordsWatcher) addFileToWatcher() error {
	// Watch the file itself
	if err := kw.fsWatcher.Add(kw.keywordsFile); err != nil {
		// If the file doesn't exist, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(kw.keywordsFile)
			if err := kw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if kw.logger != nil {
				kw.logger.Info("Watching directory for keywords file",
					"file", kw.keywordsFile, "directory", dir)
			}
		} else {
			return fmt.Errorf("failed to watch file %s: %w", kw.keywordsFile, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(kw.keywordsFile)
	if err := kw.fsWatcher.Add(dir); err != nil {
		if kw.logger != nil {
			kw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// hasFileChanged checks if the keywords file has been modified since last check
func (kw *KeywordsWatcher) hasFileChanged() bool {
	stat, err := os.Stat(kw.keywordsFile)
	if err != nil {
		if os.IsNotExist(err) && !kw.lastModTime.IsZero() {
			// File was deleted
			kw.lastModTime = time.Time{}
			return true
		}
		return false
	}

	if kw.lastModTime.IsZero() || stat.ModTime().After(kw.lastModTime) {
		kw.lastModTime = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (kw *KeywordsWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-kw.fsWatcher.Events:
			if !ok {
				return
			}

			if kw.shouldProcessEvent(event) {
				kw.scheduleReload()
			}

		case err, ok := <-kw.fsWatcher.Errors:
			if !ok {
				return
			}
			if kw.logger != nil {
				kw.logger.LogError(err, "File watcher error")
			}

		case <-kw.reloadChan:
			// Debounced reload trigger
			if kw.hasFileChanged() {
				if kw.logger != nil {
					kw.logger.Info("Keywords file changed, triggering reload")
				}
				kw.reloadCallback()
			}

		case <-kw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (kw *KeywordsWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != kw.keywordsFile && filepath.Base(event.Name) != filepath.Base(kw.keywordsFile) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (kw *KeywordsWatcher) scheduleReload() {
	kw.mu.Lock()
	defer kw.mu.Unlock()

	// Reset the debounce timer
	if kw.debounceTimer != nil {
		kw.debounceTimer.Stop()
	}

	kw.debounceTimer = time.AfterFunc(kw.debounceDelay, func() {
		select {
		case kw.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (kw *KeywordsWatcher) IsRunning() bool {
	kw.mu.RLock()
	defer kw.mu.RUnlock()
	return kw.running
}

// WatchedFile returns the path being watched
func (kw *KeywordsWatcher) WatchedFile() string {
	return kw.keywordsFile
}
