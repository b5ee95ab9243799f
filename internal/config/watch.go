package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/neboloop/nebo-contacts/internal/logging"
)

const reloadDebounce = 100 * time.Millisecond

// Watch calls onChange whenever the file at path is written or recreated,
// until ctx is done. The parent directory is watched so editors that
// replace the file atomically are still seen. The directory must exist.
func Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := watcher.Add(path); err != nil {
			logging.Warnf("[Config] could not watch %s directly: %v", path, err)
		}
	}

	name := filepath.Base(path)
	go func() {
		defer watcher.Close()

		// Debounce: editors may write several times per save
		var debounceTimer *time.Timer
		defer func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(reloadDebounce, func() {
					if ctx.Err() == nil {
						onChange()
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warnf("[Config] watcher error: %v", err)
			}
		}
	}()

	return nil
}
