package check

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events, such as an editor's
// write-then-rename, into one re-check.
const DefaultDebounce = 100 * time.Millisecond

// Watch runs a check, then re-runs it whenever a file matching patterns is
// written or created, until ctx is done. fn receives every report. Watch
// returns nil when ctx is cancelled.
func Watch(ctx context.Context, patterns []string, debounce time.Duration, logger *slog.Logger, fn func(*Report, error)) error {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	for _, dir := range watchDirs(patterns) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		logger.Debug("watching", "dir", dir)
	}

	fn(Run(ctx, patterns, logger))

	// A stopped timer with a drained channel; armed on the first event.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !matchesAny(patterns, event.Name) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)

		case <-timer.C:
			report, err := Run(ctx, patterns, logger)
			if ctx.Err() != nil {
				return nil
			}
			fn(report, err)
		}
	}
}

// watchDirs returns the directories to watch: the static base of each
// pattern and, for recursive patterns, every directory beneath it.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range patterns {
		// The parent directory is watched even for literal paths, so atomic
		// replaces are seen.
		base, rest := doublestar.SplitPattern(filepath.ToSlash(p))
		base = filepath.FromSlash(base)
		fi, err := os.Stat(base)
		if err != nil || !fi.IsDir() {
			continue
		}
		add(base)
		if !strings.Contains(rest, "**") {
			continue
		}
		_ = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

func matchesAny(patterns []string, name string) bool {
	name = filepath.Clean(name)
	for _, p := range patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(p), name); ok {
			return true
		}
	}
	return false
}
