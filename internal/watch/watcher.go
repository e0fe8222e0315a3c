// Package watch rebuilds the frontend whenever its sources change. Events are
// debounced so editor save bursts and branch switches collapse into one
// rebuild, and builds run strictly one at a time.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/uibuilder/internal/config"
	"git.home.luguber.info/inful/uibuilder/internal/logfields"
)

// DefaultDebounce is the quiet period required after the last file event
// before a rebuild starts.
const DefaultDebounce = 2 * time.Second

// BuildFunc runs one frontend build. Errors are logged, not fatal: watch mode
// outlives broken intermediate states.
type BuildFunc func(ctx context.Context) error

// Watcher monitors the frontend source tree and triggers builds.
type Watcher struct {
	paths    config.Paths
	build    BuildFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// triggers has capacity one: a pending rebuild absorbs further events.
	triggers chan struct{}
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet period (tests shorten it).
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a Watcher over the resolved package layout. build is invoked
// once at startup and again after every debounced change burst.
func New(paths config.Paths, build BuildFunc, opts ...Option) (*Watcher, error) {
	if build == nil {
		return nil, fmt.Errorf("watch: build function is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		paths:    paths,
		build:    build,
		watcher:  fsw,
		debounce: DefaultDebounce,
		triggers: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is done. The initial build runs before any events are
// handled so the watcher always starts from a known output state.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addRecursive(w.paths.FrontendDir); err != nil {
		return fmt.Errorf("failed to watch frontend directory %s: %w", w.paths.FrontendDir, err)
	}

	go w.eventLoop(ctx)

	slog.Info("Watching frontend sources",
		logfields.Dir(w.paths.FrontendDir),
		slog.Duration("debounce", w.debounce))

	w.runBuild(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.triggers:
		}

		if !w.quiesce(ctx) {
			return nil
		}
		w.runBuild(ctx)
	}
}

// quiesce waits until no event arrived for the debounce window. Each further
// trigger restarts the window. Returns false when ctx ended while waiting.
func (w *Watcher) quiesce(ctx context.Context) bool {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-w.triggers:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			return true
		}
	}
}

// eventLoop converts file system events into rebuild triggers. Newly created
// directories are added to the watch set, since fsnotify is not recursive.
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						slog.Warn("Failed to watch new directory",
							logfields.Dir(event.Name), logfields.Error(err))
					}
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Frontend source changed", logfields.Path(event.Name))
				w.trigger()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// trigger requests a rebuild without blocking; a pending trigger is enough.
func (w *Watcher) trigger() {
	select {
	case w.triggers <- struct{}{}:
	default:
	}
}

func (w *Watcher) runBuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.build(ctx); err != nil {
		slog.Error("Frontend build failed, still watching", logfields.Error(err))
		return
	}
	slog.Info("Frontend build finished",
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

// addRecursive watches dir and every non-ignored directory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return fs.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports whether path must not trigger rebuilds: the build output,
// dependency trees and hidden files churn during builds and installs, and
// watching them would rebuild forever.
func (w *Watcher) ignored(path string) bool {
	if path == w.paths.OutputDir || strings.HasPrefix(path, w.paths.OutputDir+string(filepath.Separator)) {
		return true
	}
	rel, err := filepath.Rel(w.paths.FrontendDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	for part := range strings.SplitSeq(rel, string(filepath.Separator)) {
		if part == "node_modules" {
			return true
		}
		if len(part) > 1 && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
