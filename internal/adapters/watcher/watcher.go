// Package watcher implements recursive file watching for watch-mode regeneration.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skippedDirs are never watched.
var skippedDirs = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	"vendor":            true,
	"testdata":          true,
	domain.StateDirName: true,
}

const eventChannelBuffer = 100

// Watcher implements ports.Watcher on fsnotify.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	stopOnce  sync.Once
}

// NewWatcher creates a file system watcher. Nothing is opened until Start.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start watches every directory under root. Events flow until ctx is done
// or Stop is called. A Watcher is started at most once.
func (w *Watcher) Start(ctx context.Context, root string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStart.Error())
	}
	w.fsWatcher = fsWatcher

	for dir := range watchableDirs(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStart.Error()), "dir", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.fsWatcher != nil {
			err = w.fsWatcher.Close()
		}
	})
	return err
}

// Events yields events until the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func watchableDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skippedDirs[info.Name()] {
					for dir := range watchableDirs(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn(fmt.Sprintf("watcher: %v", err))
			}
		}
	}
}

func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}

// Relevant reports whether a change to path can alter generated output:
// non-test Go sources other than generated files, go.mod and the config file.
func Relevant(path, generatedSuffix string) bool {
	base := filepath.Base(path)
	switch {
	case base == "go.mod" || base == domain.ConfigFileName:
		return true
	case !strings.HasSuffix(base, ".go"):
		return false
	case strings.HasSuffix(base, "_test.go"):
		return false
	case generatedSuffix != "" && strings.HasSuffix(base, generatedSuffix):
		return false
	case strings.HasPrefix(base, "."):
		return false
	default:
		return true
	}
}
