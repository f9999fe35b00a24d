package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Watcher polls the user palettes directory and reports edits so a running
// UI can restyle without a restart.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Directory being watched
	dir string

	// Last seen modification time per stylesheet
	modTimes map[string]time.Time

	// Polling interval
	pollInterval time.Duration

	// Callback for changes
	onChangeCallback func()

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher for the palettes in dir.
func NewWatcher(dir string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:       logger,
		dir:          dir,
		modTimes:     make(map[string]time.Time),
		pollInterval: 1 * time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SetPollInterval sets the polling interval for file changes.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetChangeCallback sets the callback to invoke when a palette changes.
// It runs on the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. An empty directory disables the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if w.dir == "" {
		w.mu.Unlock()
		w.logger.Debug("not watching palettes, no directory")
		return nil
	}

	w.running = true
	w.modTimes = w.scan()
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(ctx)

	w.logger.Debug("palette watcher started", "dir", w.dir, "interval", w.pollInterval)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	// Wait for goroutine to finish
	<-w.doneCh
	w.logger.Debug("palette watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	w.mu.RLock()
	interval := w.pollInterval
	w.mu.RUnlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// checkForChanges compares the directory against the last scan. Added,
// edited and removed stylesheets all count as a change.
func (w *Watcher) checkForChanges() {
	current := w.scan()

	w.mu.Lock()
	changed := len(current) != len(w.modTimes)
	for name, mod := range current {
		if prev, ok := w.modTimes[name]; !ok || !prev.Equal(mod) {
			changed = true
			break
		}
	}
	w.modTimes = current
	callback := w.onChangeCallback
	w.mu.Unlock()

	if !changed {
		return
	}
	w.logger.Info("palettes changed, reloading", "dir", w.dir)
	if callback != nil {
		callback()
	}
}

func (w *Watcher) scan() map[string]time.Time {
	out := make(map[string]time.Time)
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to read palettes directory", "dir", w.dir, "error", err)
		}
		return out
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".css" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out[entry.Name()] = info.ModTime()
	}
	return out
}
