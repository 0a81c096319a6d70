package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/nlquery/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever an override file in its
// directory is created, written, renamed or removed.
type PromptWatcher struct {
	store    *PromptStore
	watcher  *fsnotify.Watcher
	onReload func(name string)
}

// NewPromptWatcher prepares the prompt directory and starts watching it.
// Editors commonly replace files on save, so the directory is watched
// rather than the individual files.
func NewPromptWatcher(store *PromptStore) (*PromptWatcher, error) {
	if err := store.InitErr(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(store.Dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &PromptWatcher{store: store, watcher: watcher}, nil
}

// OnReload registers a callback invoked after each reload with the
// prompt name that changed.
func (w *PromptWatcher) OnReload(fn func(name string)) {
	w.onReload = fn
}

// Run processes events until ctx is cancelled or the watcher is closed.
// Register callbacks before calling Run.
func (w *PromptWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, relevant := overrideName(event)
			if !relevant {
				continue
			}
			w.store.Reload()
			logger.Info("Prompt %q changed, reloaded", name)
			if w.onReload != nil {
				w.onReload(name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Prompt watcher: %v", err)
		}
	}
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}

// overrideName extracts the prompt name from an event on <name>.txt.
// Reference copies and chmod-only events are ignored.
func overrideName(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, ".txt") || strings.HasSuffix(base, ".default.txt") {
		return "", false
	}
	return strings.TrimSuffix(base, ".txt"), true
}
