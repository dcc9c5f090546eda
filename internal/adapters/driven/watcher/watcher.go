// Package watcher implements driven.FileWatcher with fsnotify.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
// Copying a large PDF produces a burst of write events.
const DefaultDebounce = 500 * time.Millisecond

var log = logger.Component("watcher")

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher reports created or written files in a single directory.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string, onFile func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Debug("watching %s", dir)

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		wg      sync.WaitGroup
	)
	defer func() {
		mu.Lock()
		for path, t := range pending {
			if t.Stop() {
				wg.Done()
			}
			delete(pending, path)
		}
		mu.Unlock()
		wg.Wait()
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := pending[path]; ok {
			if t.Stop() {
				wg.Done()
			}
		}
		wg.Add(1)
		pending[path] = time.AfterFunc(w.debounce, func() {
			defer wg.Done()
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			if ctx.Err() != nil {
				return
			}
			onFile(path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := handleFsEvent(event); ok {
				schedule(path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent returns the path of a create or write event on a visible
// regular file.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
