package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/cachegen/internal/adapters/watcher" //nolint:depguard // Debounce policy lives with the adapter
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/zerr"
)

// watch generates once, then again after every debounced burst of relevant changes
// until ctx is canceled.
func (a *App) watch(ctx context.Context, cfg domain.Config) error {
	if err := a.watcher.Start(ctx, cfg.Root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherStart.Error()), "root", cfg.Root)
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.regenerate(ctx, cfg)

	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(cfg.Debounce, func(paths []string) {
		select {
		case trigger <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			if watcher.Relevant(event.Path, cfg.FileSuffix) {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.Root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-trigger:
			a.logger.Info(fmt.Sprintf("%d %s changed, regenerating", len(paths), plural(len(paths), "file", "files")))
			a.regenerate(ctx, cfg)
		}
	}
}

// regenerate runs one pass and logs its failure instead of ending the watch.
func (a *App) regenerate(ctx context.Context, cfg domain.Config) {
	_, err := a.generate(ctx, cfg, false)
	switch {
	case err == nil, errors.Is(err, domain.ErrDiagnosticsReported), ctx.Err() != nil:
	default:
		a.logger.Error(err)
	}
}
