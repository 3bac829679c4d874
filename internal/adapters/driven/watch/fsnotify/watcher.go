// Package fsnotify implements driven.InboxWatcher on top of
// github.com/fsnotify/fsnotify.
//
// A file is reported once it has stopped changing for the settle delay,
// so documents still being copied into the inbox are not picked up early.
package fsnotify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.InboxWatcher = (*Watcher)(nil)

// DefaultSettle is how long a file must be quiet before it is reported.
const DefaultSettle = 750 * time.Millisecond

// ErrAlreadyWatching is returned when Watch is called twice.
var ErrAlreadyWatching = errors.New("watcher already running")

// Watcher reports files created or rewritten in one directory.
type Watcher struct {
	settle time.Duration

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	pending  map[string]*time.Timer
	done     chan struct{}
	inflight sync.WaitGroup
}

// New creates a watcher. A settle of zero uses DefaultSettle.
func New(settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		settle:  settle,
		pending: make(map[string]*time.Timer),
	}
}

// Watch starts watching dir. Files present before the call are ignored.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("inbox: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("inbox %s is not a directory", dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil, nil, ErrAlreadyWatching
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watcher = fw
	w.done = make(chan struct{})

	paths := make(chan string)
	errs := make(chan error, 1)
	stopped := make(chan struct{})

	go w.loop(ctx, fw, w.done, stopped, paths, errs)

	logger.Debug("Watching %s (settle %s)", dir, w.settle)
	return paths, errs, nil
}

// loop turns raw events into settled paths.
func (w *Watcher) loop(
	ctx context.Context,
	fw *fsnotify.Watcher,
	done <-chan struct{},
	stopped chan struct{},
	paths chan<- string,
	errs chan<- error,
) {
	defer func() {
		close(stopped)
		w.stopTimers()
		w.inflight.Wait()
		close(paths)
		close(errs)

		w.mu.Lock()
		if w.watcher == fw {
			w.watcher = nil
		}
		w.mu.Unlock()
		_ = fw.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if path, ok := handleFsEvent(event); ok {
				w.schedule(path, stopped, paths)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			default:
				logger.Warn("watcher: %v", err)
			}
		}
	}
}

// schedule restarts the settle timer for path.
func (w *Watcher) schedule(path string, stopped <-chan struct{}, paths chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok && t.Stop() {
		w.inflight.Done()
	}
	w.inflight.Add(1)
	w.pending[path] = time.AfterFunc(w.settle, func() {
		defer w.inflight.Done()

		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if !isRegularFile(path) {
			return
		}
		select {
		case paths <- path:
		case <-stopped:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		if t.Stop() {
			w.inflight.Done()
		}
		delete(w.pending, path)
	}
}

// Close stops the active watch. The channels returned by Watch are
// closed shortly afterwards.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	close(w.done)
	w.watcher = nil
	return nil
}

// handleFsEvent returns the path of an event that may carry a new document.
// Removals, renames away, chmods and hidden files are ignored.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}
	return event.Name, true
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
