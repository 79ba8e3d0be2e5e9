package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounce groups the bursts of events editors produce on save.
const debounce = 200 * time.Millisecond

// Watcher reports changes to a manifest file.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched rather
// than the file, because many editors save by replacing the file.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("unable to watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, watcher: w}, nil
}

// Run calls onChange after each change to the manifest, until ctx is done.
// Errors from onChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	// pending fires once the manifest has been quiet for debounce.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debug("manifest changed", "path", w.path, "op", event.Op.String())
				pending = time.After(debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				log.Error("manifest run failed", "path", w.path, "error", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
