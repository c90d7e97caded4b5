package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/migratehq/depscope/cmd/resolve"
)

const debounceInterval = 300 * time.Millisecond

// watchAndRerun blocks, re-running the analysis on every (debounced) change
// to the analysis inputs, until the context is cancelled.
func watchAndRerun(ctx context.Context, opts resolve.Options, emit func(output string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchPaths(watcher, opts.InputPaths()); err != nil {
		return fmt.Errorf("failed to watch inputs: %w", err)
	}

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounceInterval)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			debounceCh = nil
			output, err := resolve.Run(ctx, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "analysis error: %v\n", err)
				continue
			}
			emit(output)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// addWatchPaths registers files by their parent directory (editors often
// replace rather than write in place) and directories recursively.
func addWatchPaths(watcher *fsnotify.Watcher, paths []string) error {
	added := make(map[string]bool)
	add := func(dir string) error {
		if added[dir] {
			return nil
		}
		added[dir] = true
		return watcher.Add(dir)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := add(filepath.Dir(path)); err != nil {
				return err
			}
			continue
		}
		err = filepath.WalkDir(path, func(sub string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") && sub != path {
				return filepath.SkipDir
			}
			return add(sub)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
