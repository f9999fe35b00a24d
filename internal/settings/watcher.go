package settings

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the settings file and reloads the store when another
// process edits it.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	store    *Store
	logger   *slog.Logger
	dispatch func(func())
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewFileWatcher creates a watcher for the store's backing file.
// dispatch runs each reload on the UI loop; nil runs it on the watcher goroutine.
func NewFileWatcher(store *Store, dispatch func(func())) (*FileWatcher, error) {
	if store.Path() == "" {
		return nil, errors.New("settings store has no backing file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &FileWatcher{
		watcher:  watcher,
		store:    store,
		logger:   store.logger,
		dispatch: dispatch,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	// Watch the directory: the store replaces the file by rename
	dir := filepath.Dir(fw.store.Path())
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}

	go fw.watch()
	return nil
}

func (fw *FileWatcher) watch() {
	filename := filepath.Base(fw.store.Path())

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.logger.Debug("settings file changed, reloading", "file", event.Name)
				fw.dispatch(func() {
					if err := fw.store.Reload(); err != nil {
						fw.logger.Warn("failed to reload settings", "error", err)
					}
				})
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("settings watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return nil
	}

	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}
