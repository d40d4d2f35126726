package autosave

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions tune the watch loop.
type WatchOptions struct {
	// Debounce is the quiet period after the last filesystem event
	// before a run triggers. Defaults to 2 seconds.
	Debounce time.Duration

	// MaxInterval forces a run this often even without events, so
	// changes made while the watcher was blind still get saved.
	// Defaults to 5 minutes; negative disables.
	MaxInterval time.Duration
}

// Watch runs the engine whenever the work tree changes, until ctx is
// cancelled. Lock contention and the interval gate downgrade runs to
// debug noise instead of errors.
func (e *Engine) Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = 5 * time.Minute
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := e.watchTree(watcher, e.repoDir); err != nil {
		return err
	}

	debounce := time.NewTimer(opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	var tick <-chan time.Time
	if opts.MaxInterval > 0 {
		ticker := time.NewTicker(opts.MaxInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	e.logger.Info("autosave: watching", "repo", e.repoDir, "debounce", opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if e.ignored(event.Name) {
				continue
			}
			// new directories need their own watch before anything
			// created inside them can be seen
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = e.watchTree(watcher, event.Name)
				}
			}
			debounce.Reset(opts.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			e.logger.Error("autosave: watch error", "error", err)

		case <-debounce.C:
			e.runQuietly(ctx)

		case <-tick:
			e.runQuietly(ctx)
		}
	}
}

// watchTree adds root and every directory under it, skipping .git and
// the state directory. Non-directories are ignored.
func (e *Engine) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if e.ignored(path) {
			return filepath.SkipDir
		}
		_ = watcher.Add(path)
		return nil
	})
}

// ignored filters paths the watcher must not react to: git internals
// and our own state writes would otherwise retrigger runs forever.
func (e *Engine) ignored(path string) bool {
	if path == "" {
		return true
	}
	if strings.HasPrefix(path, e.stateDir) {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+".git"+sep) || strings.HasSuffix(path, sep+".git")
}

func (e *Engine) runQuietly(ctx context.Context) {
	_, err := e.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrLocked), errors.Is(err, ErrSkipped):
		e.logger.Debug("autosave: run skipped", "reason", err)
	default:
		e.logger.Error("autosave: run failed", "error", err)
	}
}
