// Package app implements the application layer for cachegen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/cachegen/internal/engine/orchestrator"
	"go.trai.ch/cachegen/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	oracle       ports.SymbolOracle
	orchestrator *orchestrator.Orchestrator
	writer       ports.UnitWriter
	store        ports.ManifestStore
	hasher       ports.Hasher
	watcher      ports.Watcher
	logger       ports.Logger
	stdout       io.Writer
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	oracle ports.SymbolOracle,
	orch *orchestrator.Orchestrator,
	writer ports.UnitWriter,
	store ports.ManifestStore,
	hasher ports.Hasher,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		oracle:       oracle,
		orchestrator: orch,
		writer:       writer,
		store:        store,
		hasher:       hasher,
		watcher:      watcher,
		logger:       log,
		stdout:       os.Stdout,
		now:          time.Now,
	}
}

// WithStdout redirects dry-run output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithClock replaces the clock used for manifest timestamps.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	// Dir is where the configuration search starts. Defaults to the working directory.
	Dir string
	// DryRun prints the generated sources instead of writing them.
	DryRun bool
	// Watch regenerates whenever relevant sources change.
	Watch bool
	// Hooks overrides the configured hooks setting when non-nil.
	Hooks *bool
	// Tags overrides the configured build tags when non-empty.
	Tags []string
}

// Summary counts the outcome of one generation run.
type Summary struct {
	Written     int
	Unchanged   int
	Removed     int
	Skipped     int
	Failed      int
	Bytes       int64
	Diagnostics []domain.Diagnostic
}

// String renders the summary line printed after a run.
func (s Summary) String() string {
	return fmt.Sprintf("%d written, %d unchanged, %d removed (%s generated)",
		s.Written, s.Unchanged, s.Removed, humanize.Bytes(uint64(max(s.Bytes, 0))))
}

func (s *Summary) count(status domain.UnitStatus) {
	switch status {
	case domain.UnitStatusWritten:
		s.Written++
	case domain.UnitStatusUnchanged:
		s.Unchanged++
	case domain.UnitStatusRemoved:
		s.Removed++
	case domain.UnitStatusSkipped:
		s.Skipped++
	case domain.UnitStatusFailed:
		s.Failed++
	}
}

// Generate runs the generator over the configured packages.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	cfg, err := a.loadConfig(opts.Dir)
	if err != nil {
		return err
	}
	if opts.Hooks != nil {
		cfg.Hooks = *opts.Hooks
	}
	if len(opts.Tags) > 0 {
		cfg.Tags = opts.Tags
	}

	if opts.Watch {
		return a.watch(ctx, cfg)
	}

	_, err = a.generate(ctx, cfg, opts.DryRun)
	return err
}

func (a *App) loadConfig(dir string) (domain.Config, error) {
	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// generate performs one full pass: analyze, synthesize, write and clean up stale output.
func (a *App) generate(ctx context.Context, cfg domain.Config, dryRun bool) (Summary, error) {
	var summary Summary

	comps, err := a.oracle.Load(ctx, cfg)
	if err != nil {
		return summary, err
	}

	var units []domain.SourceUnit
	for _, comp := range comps {
		res, err := a.orchestrator.Run(ctx, cfg, comp)
		if err != nil {
			return summary, err
		}
		units = append(units, res.Units...)
		summary.Diagnostics = append(summary.Diagnostics, res.Diagnostics...)
	}

	for _, d := range summary.Diagnostics {
		if d.Severity == domain.SeverityError {
			a.logger.Error(zerr.New(d.String()))
			continue
		}
		a.logger.Warn(d.String())
	}

	if dryRun {
		for _, unit := range units {
			_, _ = fmt.Fprintf(a.stdout, "// %s\n%s\n", unit.Path(), unit.Source)
			summary.count(domain.UnitStatusSkipped)
		}
		return summary, diagnosticsError(summary.Diagnostics)
	}

	var errs error
	produced := make(map[string]bool, len(units))
	for _, unit := range units {
		produced[unit.Path()] = true
		status, err := a.writeUnit(cfg.Root, unit)
		summary.count(status)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if status == domain.UnitStatusWritten {
			summary.Bytes += int64(len(unit.Source))
			a.report(cfg.Root, status, unit.Path())
		}
	}

	errs = errors.Join(errs, a.removeStale(cfg.Root, comps, produced, &summary))
	if errs != nil {
		return summary, errs
	}

	a.logger.Info(summary.String())
	return summary, diagnosticsError(summary.Diagnostics)
}

func diagnosticsError(diags []domain.Diagnostic) error {
	if domain.HasErrors(diags) {
		return domain.ErrDiagnosticsReported
	}
	return nil
}

func (a *App) writeUnit(root string, unit domain.SourceUnit) (domain.UnitStatus, error) {
	status, err := a.writer.Write(unit)
	if err != nil {
		return status, err
	}

	digest := a.hasher.Digest(unit.Source)
	prev, err := a.store.Get(root, unit.Path())
	if err != nil {
		return status, err
	}
	if prev != nil && prev.Digest == digest && status == domain.UnitStatusUnchanged {
		return status, nil
	}

	return status, a.store.Put(root, domain.ManifestEntry{
		Path:      unit.Path(),
		Class:     unit.Class,
		Package:   unit.Package,
		Digest:    digest,
		Size:      int64(len(unit.Source)),
		Timestamp: a.now().UTC(),
	})
}

// removeStale deletes recorded files of analyzed packages that this run did not produce.
func (a *App) removeStale(root string, comps []*domain.Compilation, produced map[string]bool, summary *Summary) error {
	entries, err := a.store.List(root)
	if err != nil {
		return err
	}

	analyzed := make(map[string]bool, len(comps))
	for _, comp := range comps {
		analyzed[comp.Dir] = true
	}

	var errs error
	for _, entry := range entries {
		if produced[entry.Path] || !analyzed[filepath.Dir(entry.Path)] {
			continue
		}
		if err := a.remove(root, entry); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		summary.count(domain.UnitStatusRemoved)
		a.report(root, domain.UnitStatusRemoved, entry.Path)
	}
	return errs
}

// report logs one file outcome with its status icon.
func (a *App) report(root string, status domain.UnitStatus, path string) {
	if rel, err := filepath.Rel(root, path); err == nil {
		path = rel
	}
	a.logger.Info(style.StatusIcon(string(status)) + " " + path)
}

func (a *App) remove(root string, entry domain.ManifestEntry) error {
	if err := a.writer.Remove(entry.Path); err != nil {
		return err
	}
	return a.store.Delete(root, entry.Path)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Dir is where the configuration search starts. Defaults to the working directory.
	Dir string
	// Force removes files even when they were modified after generation.
	Force bool
}

// Clean removes every generated file recorded in the manifest.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loadConfig(opts.Dir)
	if err != nil {
		return err
	}

	entries, err := a.store.List(cfg.Root)
	if err != nil {
		return err
	}

	var errs error
	removed := 0
	for _, entry := range entries {
		if !opts.Force && a.modified(entry) {
			a.logger.Warn(fmt.Sprintf("skipping %s: modified since generation (use --force)", entry.Path))
			continue
		}
		if err := a.remove(cfg.Root, entry); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		removed++
	}

	a.logger.Info(fmt.Sprintf("removed %d generated %s", removed, plural(removed, "file", "files")))
	return errs
}

// modified reports whether the file behind entry changed since it was recorded.
// Missing files count as unmodified.
func (a *App) modified(entry domain.ManifestEntry) bool {
	digest, err := a.hasher.FileDigest(entry.Path)
	if err != nil {
		return false
	}
	return digest != entry.Digest
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
