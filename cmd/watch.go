package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups bursts of write events into a single run.
const debounce = 100 * time.Millisecond

// watchPaths runs once, then again every time a graph file under paths is
// written or created, until ctx is done.
func watchPaths(ctx context.Context, logger *zap.Logger, paths []string, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := addWatch(watcher, path); err != nil {
			return err
		}
	}

	run()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isGraphEvent(event) {
				continue
			}
			logger.Debug("Graph file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		case <-timer:
			timer = nil
			run()
		}
	}
}

func addWatch(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}

func isGraphEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".yaml") || strings.HasSuffix(event.Name, ".yml")
}
