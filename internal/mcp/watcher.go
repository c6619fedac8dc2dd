package mcp

// Implementation Plan:
// 1. Use fsnotify to watch the project root
// 2. Debounce file system events (500ms)
// 3. Trigger cache invalidation on debounce timeout
// 4. Ignore non-Ruby files
// 5. Thread-safe start/stop

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is an interface for components whose cached state must be
// dropped when files change.
type Invalidator interface {
	Invalidate()
}

// FileWatcher watches a directory for Ruby file changes and invalidates the
// outline cache.
type FileWatcher struct {
	invalidator  Invalidator
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	startOnce    sync.Once
	stopOnce     sync.Once
	started      bool
}

// NewFileWatcher creates a new file watcher for the specified directory.
func NewFileWatcher(invalidator Invalidator, watchDir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(watchDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileWatcher{
		invalidator:  invalidator,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for file changes.
func (fw *FileWatcher) Start(ctx context.Context) {
	fw.startOnce.Do(func() {
		fw.started = true
		go fw.watch(ctx)
	})
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
		if fw.started {
			<-fw.doneCh // Wait for goroutine to finish
		}
		fw.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (fw *FileWatcher) watch(ctx context.Context) {
	defer close(fw.doneCh)

	var debounceTimer *time.Timer
	invalidateCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-fw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !isRubyFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Reset debounce timer - properly stop and drain
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(fw.debounceTime, func() {
				select {
				case invalidateCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-invalidateCh:
			log.Printf("Ruby files changed, invalidating outline cache")
			fw.invalidator.Invalidate()
		}
	}
}

func isRubyFile(path string) bool {
	switch filepath.Ext(path) {
	case ".rb", ".rake":
		return true
	}
	base := filepath.Base(path)
	return base == "Rakefile" || base == "Gemfile"
}
