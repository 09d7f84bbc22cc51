// Package watch re-runs a callback when files matching the discovery
// patterns change under the project root.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/andyballingall/fmtcheck/internal/config"
	"github.com/andyballingall/fmtcheck/internal/discover"
	"github.com/andyballingall/fmtcheck/internal/fs"
)

// Event describes a relevant change under the project root.
type Event struct {
	Path string // absolute path of the changed file
	Rel  string // slash-separated path relative to the root
}

// eventWatcher is the subset of fsnotify.Watcher the Watcher uses.
type eventWatcher interface {
	Add(name string) error
	Close() error
	Events() chan fsnotify.Event
	Errors() chan error
}

type eventWatcherWrapper struct {
	*fsnotify.Watcher
}

func (w *eventWatcherWrapper) Events() chan fsnotify.Event { return w.Watcher.Events }
func (w *eventWatcherWrapper) Errors() chan error          { return w.Watcher.Errors }

func newFSNotifyWatcher() (eventWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &eventWatcherWrapper{fw}, nil
}

// Watcher monitors the pattern base directories and triggers a callback.
type Watcher struct {
	root     string
	bases    []string
	logger   *slog.Logger
	debounce time.Duration
	Ready    chan struct{}

	group      singleflight.Group
	newWatcher func() (eventWatcher, error)

	mu      sync.Mutex
	pending *Event // latest change not yet handed to a callback
}

// NewWatcher creates a Watcher for the project at root.
func NewWatcher(root string, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:       root,
		bases:      BaseDirs(),
		logger:     logger.With("component", "watcher"),
		debounce:   config.WatchDebounce,
		Ready:      make(chan struct{}),
		newWatcher: newFSNotifyWatcher,
	}
}

// BaseDirs returns the distinct top-level directories of the discovery
// patterns, in pattern order.
func BaseDirs() []string {
	var bases []string
	for _, p := range discover.Patterns() {
		base, _ := doublestar.SplitPattern(p.String())
		top, _, _ := strings.Cut(base, "/")
		if !slices.Contains(bases, top) {
			bases = append(bases, top)
		}
	}
	return bases
}

// Watch starts monitoring and calls callback after each burst of relevant
// changes. Callbacks never overlap: changes arriving while one runs cause
// exactly one more call once it returns. Watch blocks until the context is
// cancelled and any running callback has returned.
func (w *Watcher) Watch(ctx context.Context, callback func(Event)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// The root itself is watched so that base directories created later are picked up.
	if err = watcher.Add(w.root); err != nil {
		return err
	}
	for _, base := range w.bases {
		dir := filepath.Join(w.root, base)
		ok, sErr := fs.IsDir(dir)
		if sErr != nil {
			return sErr
		}
		if !ok {
			w.logger.Debug("base directory absent", "dir", dir)
			continue
		}
		if err = w.addRecursive(watcher, dir); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	var (
		timer    *time.Timer
		inflight sync.WaitGroup
	)
	defer func() {
		if timer != nil && timer.Stop() {
			inflight.Done()
		}
		inflight.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors():
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if ev := w.handleEvent(watcher, event); ev != nil {
				if timer != nil && timer.Stop() {
					inflight.Done()
				}
				pending := *ev
				inflight.Add(1)
				timer = time.AfterFunc(w.debounce, func() {
					defer inflight.Done()
					w.dispatch(pending, callback)
				})
			}
		}
	}
}

// dispatch records ev and makes sure a callback sees it. A caller that joins
// a run which had already taken its last pending change runs again.
func (w *Watcher) dispatch(ev Event, callback func(Event)) {
	w.mu.Lock()
	w.pending = &ev
	w.mu.Unlock()

	for w.hasPending() {
		_, _, _ = w.group.Do("change", func() (any, error) {
			for {
				next := w.takePending()
				if next == nil {
					return nil, nil
				}
				callback(*next)
			}
		})
	}
}

func (w *Watcher) hasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

func (w *Watcher) takePending() *Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.pending
	w.pending = nil
	return next
}

// handleEvent processes a single fsnotify event. New directories inside a
// base directory are added to the watcher. A relevant file change returns an Event.
func (w *Watcher) handleEvent(watcher eventWatcher, event fsnotify.Event) *Event {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	rel, ok := w.relative(event.Name)
	if !ok {
		return nil
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if w.inBase(rel) {
				if err := w.addRecursive(watcher, event.Name); err != nil {
					w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return nil
		}
	}

	if !discover.Match(rel) {
		return nil
	}
	return &Event{Path: event.Name, Rel: rel}
}

// relative returns the slash-separated path of p relative to the root.
func (w *Watcher) relative(p string) (string, bool) {
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) inBase(rel string) bool {
	top, _, _ := strings.Cut(rel, "/")
	return slices.Contains(w.bases, top)
}

// addRecursive adds the given path and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(watcher eventWatcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
