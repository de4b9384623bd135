// Package watcher reloads layout override files while the server runs:
// fsnotify events from the override directory are debounced and handed to
// the server as batched change events.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mkarlsen/moodgraph/pkg/logging"
)

// ChangeEvent is a debounced batch of layout file changes.
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// LayoutWatcher watches a directory of layout override TOML files.
type LayoutWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	events  chan ChangeEvent
}

// NewLayoutWatcher creates a watcher for the given override directory.
func NewLayoutWatcher(dir string) (*LayoutWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &LayoutWatcher{
		watcher: w,
		dir:     dir,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Start begins watching. Stops when ctx is cancelled.
func (lw *LayoutWatcher) Start(ctx context.Context) error {
	if err := lw.watcher.Add(lw.dir); err != nil {
		lw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", lw.dir, err)
	}
	logging.Info("watching layout overrides", "dir", lw.dir)

	go lw.run(ctx)
	return nil
}

// Events returns the channel of raw (undebounced) change events.
func (lw *LayoutWatcher) Events() <-chan ChangeEvent {
	return lw.events
}

func (lw *LayoutWatcher) run(ctx context.Context) {
	defer lw.watcher.Close()
	defer close(lw.events)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if !isLayoutFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug("layout file changed", "path", ev.Name, "op", ev.Op.String())
			select {
			case lw.events <- ChangeEvent{Paths: []string{ev.Name}, Timestamp: time.Now()}:
			default:
				logging.Warn("change event queue full, dropping", "path", ev.Name)
			}

		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

// isLayoutFile reports whether path names a layout override file. Editors
// write through temp files; only settled .toml files count.
func isLayoutFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
		return false
	}
	return filepath.Ext(base) == ".toml"
}

// MoodID derives the mood a layout override file applies to from its file
// name: layouts/flow.toml -> "flow".
func MoodID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
