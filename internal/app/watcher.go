package app

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/pkg/log"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 200 * time.Millisecond

// WatchConfig configures a Watcher.
type WatchConfig struct {
	// Root is the directory tree being dumped.
	Root string
	// Ignore lists directory names that are neither watched nor reacted to.
	Ignore domain.IgnoreSet
	// Exclude holds paths whose changes never trigger a run, such as the
	// output document itself.
	Exclude []string
	// Debounce is the delay after the last relevant event before a run.
	Debounce time.Duration
}

// Watcher regenerates the whole document whenever the tree changes.
// Runs happen one at a time on the goroutine that called Run.
type Watcher struct {
	root     string
	ignore   domain.IgnoreSet
	exclude  map[string]struct{}
	debounce time.Duration
	run      func() error
	logger   log.Logger
	backoff  *backoff
}

// NewWatcher creates a Watcher that calls run for the initial dump and after
// every burst of changes.
func NewWatcher(cfg WatchConfig, run func() error, logger log.Logger) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	ex := make(map[string]struct{}, len(cfg.Exclude))
	for _, p := range cfg.Exclude {
		ex[normalize(p)] = struct{}{}
	}
	return &Watcher{
		root:     root,
		ignore:   cfg.Ignore,
		exclude:  ex,
		debounce: cfg.Debounce,
		run:      run,
		logger:   logger,
		backoff:  newBackoff(DefaultBackoffInitial, DefaultBackoffMax),
	}, nil
}

// Run dumps once, then keeps dumping after changes until ctx is cancelled.
// It returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.logger.Info("watching for changes",
		log.String("root", w.root),
		log.Strings("ignore", w.ignore.Names()),
		log.Duration("debounce", w.debounce),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			if err := w.run(); err != nil {
				delay := w.backoff.Next()
				w.logger.Error("dump failed, retrying", log.Err(err), log.Duration("retry_in", delay))
				timer.Reset(delay)
				continue
			}
			w.backoff.Reset()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.watchIfDir(fw, event.Name)
			}
			w.logger.Debug("change detected", log.String("path", event.Name), log.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

// relevant reports whether an event should schedule a run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	path := normalize(event.Name)
	if _, ok := w.exclude[path]; ok {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts[:len(parts)-1] {
		if w.ignore.Contains(part) {
			return false
		}
	}
	// a created node_modules is reported by its watched parent; a regular
	// file named like an ignored directory is still dumped
	if w.ignore.Contains(parts[len(parts)-1]) {
		info, err := os.Lstat(path)
		return err != nil || !info.IsDir()
	}
	return true
}

func (w *Watcher) watchIfDir(fw *fsnotify.Watcher, path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(fw, path); err != nil {
		w.logger.Warn("cannot watch new directory", log.String("path", path), log.Err(err))
	}
}

// addTree watches dir and every non-ignored directory beneath it.
// fsnotify watches are not recursive.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignore.Contains(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.logger.Warn("cannot watch directory", log.String("path", path), log.Err(err))
		}
		return nil
	})
}
