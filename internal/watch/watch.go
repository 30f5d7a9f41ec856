package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/oakoss/ui-registry/internal/logging"
)

// Options configures a Watcher.
type Options struct {
	Root     string        // ignore globs are matched relative to Root
	Paths    []string      // directories watched recursively
	Ignore   []string      // doublestar patterns, slash separated
	Exclude  []string      // directories never watched, e.g. the output dir
	Debounce time.Duration // quiet period before a batch is delivered
	Logger   *slog.Logger
}

// ChangeHandler receives the sorted, de-duplicated paths of one batch.
type ChangeHandler func(paths []string) error

// Watcher watches starter sources for changes.
type Watcher struct {
	opts    Options
	fs      *fsnotify.Watcher
	logger  *slog.Logger
	exclude []string
}

// New validates the ignore patterns and opens an fsnotify watcher.
func New(opts Options) (*Watcher, error) {
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid watch ignore pattern %q", p)
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	exclude := make([]string, 0, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving excluded path %s: %w", dir, err)
		}
		exclude = append(exclude, abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		opts:    opts,
		fs:      fsw,
		logger:  opts.Logger.With("component", "watch"),
		exclude: exclude,
	}, nil
}

// Ignored reports whether path is excluded or matches an ignore glob.
func (w *Watcher) Ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	for _, dir := range w.exclude {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}

	rel := abs
	if w.opts.Root != "" {
		if r, err := filepath.Rel(w.opts.Root, abs); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// Let "dir/**" patterns prune the directory itself.
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}

// Run watches until ctx is cancelled, calling onChange once per debounced
// batch. Handler errors are logged and watching continues. The underlying
// fsnotify watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange ChangeHandler) error {
	defer w.fs.Close()

	for _, p := range w.opts.Paths {
		if err := w.addRecursive(p); err != nil {
			return err
		}
	}
	w.logger.Info("watching for changes", "paths", w.opts.Paths, "debounce", w.opts.Debounce)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			pending[event.Name] = struct{}{}
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			if err := onChange(paths); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !w.Ignored(event.Name)
}

// addRecursive registers root and every directory below it that is not
// ignored.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.Ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}
