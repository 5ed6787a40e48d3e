package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/geniustechspace/wheelhouse/internal/logfields"
)

// SourceWatcher monitors package source trees and triggers debounced rebuilds.
type SourceWatcher struct {
	dirs         []string
	rebuild      func(context.Context)
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	triggerChan  chan struct{}
	debounceTime time.Duration
}

// NewSourceWatcher creates a watcher over the given package directories.
// The rebuild callback runs after changes settle for the debounce interval.
func NewSourceWatcher(dirs []string, debounce time.Duration, rebuild func(context.Context)) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	return &SourceWatcher{
		dirs:         dirs,
		rebuild:      rebuild,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		triggerChan:  make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start registers the source trees and begins monitoring.
func (sw *SourceWatcher) Start(ctx context.Context) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	for _, dir := range sw.dirs {
		if err := sw.addTree(dir); err != nil {
			return err
		}
	}

	slog.Info("Watching package sources", logfields.Count(len(sw.dirs)))

	go sw.watchLoop(ctx)
	go sw.rebuildLoop(ctx)

	return nil
}

// Stop stops the watcher and releases its inotify resources.
func (sw *SourceWatcher) Stop() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	close(sw.stopChan)
	return sw.watcher.Close()
}

// addTree watches a directory and all its non-transient subdirectories.
// fsnotify does not recurse, so every subdirectory is registered explicitly.
func (sw *SourceWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && transientDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := sw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// transientDir reports whether a directory holds build output or tooling
// state rather than source, so changes inside it never trigger a rebuild.
func transientDir(name string) bool {
	return name == "build" ||
		name == "dist" ||
		name == "__pycache__" ||
		strings.HasSuffix(name, ".egg-info") ||
		strings.HasPrefix(name, ".")
}

func (sw *SourceWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.stopChan:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if sw.transientPath(event.Name) {
				continue
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				// New directories must be registered or edits inside them
				// are invisible.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := sw.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				slog.Debug("Source change detected", logfields.Path(event.Name))
				sw.trigger()
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Source watcher error", logfields.Error(err))
		}
	}
}

func (sw *SourceWatcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-sw.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-sw.triggerChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(sw.debounceTime, func() {
				sw.rebuild(ctx)
			})
		}
	}
}

func (sw *SourceWatcher) trigger() {
	select {
	case sw.triggerChan <- struct{}{}:
	default:
		// Rebuild already pending
	}
}

// transientPath checks the path components below the watched roots, so a
// hidden ancestor of the workspace itself does not mask every event.
func (sw *SourceWatcher) transientPath(path string) bool {
	for _, dir := range sw.dirs {
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
			if part == "." {
				continue
			}
			if transientDir(part) {
				return true
			}
		}
		return false
	}
	return false
}
