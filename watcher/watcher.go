// Package watcher keeps the in-memory summary current by watching the
// served tree for source file changes.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PathFilter is used by the watcher to check if a path should be ignored.
type PathFilter interface {
	ShouldIgnoreDir(absolutePath string) bool
	ShouldIgnore(absolutePath string) bool
}

// Watcher provides recursive file system watching with debouncing. Only
// files the relevance predicate accepts produce events; everything else in
// the tree (editor droppings, artifacts, unsupported file types) is dropped
// at the source.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	filter    PathFilter
	relevant  func(path string) bool
	rootDir   string
	logger    *slog.Logger
}

// New creates a recursive file watcher on the given root directory. It
// registers all non-ignored subdirectories for watching. relevant decides
// which files produce events; nil means every non-ignored file does.
func New(rootDir string, filter PathFilter, relevant func(path string) bool, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if relevant == nil {
		relevant = func(string) bool { return true }
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(200 * time.Millisecond),
		filter:    filter,
		relevant:  relevant,
		rootDir:   rootDir,
		logger:    logger,
	}

	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries that can't be read
		}
		if !d.IsDir() {
			return nil
		}
		if path != rootDir && filter.ShouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Events returns the channel that receives debounced change batches.
func (w *Watcher) Events() <-chan []ChangeEvent {
	return w.debouncer.Output()
}

// Start begins listening for file system events. Call this in a goroutine.
// It runs until the watcher is closed.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent converts a single fsnotify event into a debounced change.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// A new directory needs to be watched before anything inside it changes.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !w.filter.ShouldIgnoreDir(path) {
				if err := w.fsWatcher.Add(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if w.filter.ShouldIgnore(path) {
		return
	}
	if !w.relevant(path) {
		return
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(path, op)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
