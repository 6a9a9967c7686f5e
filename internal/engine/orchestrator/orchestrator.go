// Package orchestrator runs the per-class generation passes of a package.
package orchestrator

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/cachegen/internal/engine/evaluator"
	"go.trai.ch/cachegen/internal/engine/synth"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ClassStatus represents the status of a class pass.
type ClassStatus string

const (
	// StatusPending indicates the class is waiting to be evaluated.
	StatusPending ClassStatus = "Pending"
	// StatusRunning indicates the class is being evaluated.
	StatusRunning ClassStatus = "Running"
	// StatusCompleted indicates a unit was produced.
	StatusCompleted ClassStatus = "Completed"
	// StatusRejected indicates no unit was produced; diagnostics explain why.
	StatusRejected ClassStatus = "Rejected"
	// StatusFailed indicates synthesis failed.
	StatusFailed ClassStatus = "Failed"
)

// Result is the output of one compilation.
type Result struct {
	Units       []domain.SourceUnit
	Diagnostics []domain.Diagnostic
}

// Orchestrator groups marked methods by class and runs the class passes concurrently.
type Orchestrator struct {
	telemetry   ports.Telemetry
	parallelism int

	mu          sync.RWMutex
	classStatus map[string]ClassStatus
}

// New creates an Orchestrator recording one vertex per class.
func New(telemetry ports.Telemetry) *Orchestrator {
	return &Orchestrator{
		telemetry:   telemetry,
		parallelism: runtime.GOMAXPROCS(0),
		classStatus: make(map[string]ClassStatus),
	}
}

// WithParallelism bounds the number of concurrent class passes.
func (o *Orchestrator) WithParallelism(n int) *Orchestrator {
	if n > 0 {
		o.parallelism = n
	}
	return o
}

func (o *Orchestrator) updateStatus(class string, status ClassStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.classStatus[class] = status
}

type group struct {
	class   *domain.Symbol
	methods []*domain.Symbol
}

// groupByClass keeps the order in which classes are first seen.
func groupByClass(methods []*domain.Symbol) []*group {
	var groups []*group
	index := make(map[*domain.Symbol]*group)
	for _, m := range methods {
		if m.Container == nil {
			continue
		}
		g, ok := index[m.Container]
		if !ok {
			g = &group{class: m.Container}
			index[m.Container] = g
			groups = append(groups, g)
		}
		g.methods = append(g.methods, m)
	}
	return groups
}

// Run evaluates and synthesizes every class of comp.
// The error is non-nil only for synthesis failures or cancellation; rejected methods are
// reported as diagnostics.
func (o *Orchestrator) Run(ctx context.Context, cfg domain.Config, comp *domain.Compilation) (Result, error) {
	eval := evaluator.New(
		evaluator.WithEvictSuffix(cfg.EvictSuffix),
		evaluator.WithHooks(cfg.Hooks),
	)
	syn := synth.New(
		synth.WithEvictSuffix(cfg.EvictSuffix),
		synth.WithFileSuffix(cfg.FileSuffix),
	)

	groups := groupByClass(comp.Methods)
	for _, g := range groups {
		o.updateStatus(classKey(comp, g.class), StatusPending)
	}

	units := make([]*domain.SourceUnit, len(groups))
	diags := make([][]domain.Diagnostic, len(groups))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.parallelism)
	for i, g := range groups {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, d, err := o.runClass(ctx, eval, syn, comp, g)
			units[i], diags[i] = unit, d
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Diagnostics: slices.Clone(comp.Diagnostics)}
	for i := range groups {
		res.Diagnostics = append(res.Diagnostics, diags[i]...)
		if units[i] != nil {
			res.Units = append(res.Units, *units[i])
		}
	}
	slices.SortFunc(res.Units, func(a, b domain.SourceUnit) int {
		return cmp.Or(cmp.Compare(a.Class, b.Class), cmp.Compare(a.FileName, b.FileName))
	})
	domain.SortDiagnostics(res.Diagnostics)
	return res, nil
}

func (o *Orchestrator) runClass(
	ctx context.Context,
	eval *evaluator.Evaluator,
	syn *synth.Synthesizer,
	comp *domain.Compilation,
	g *group,
) (*domain.SourceUnit, []domain.Diagnostic, error) {
	key := classKey(comp, g.class)
	o.updateStatus(key, StatusRunning)

	_, vertex := o.telemetry.Record(ctx, key)

	classUnit, diags := eval.Evaluate(g.class, g.methods, comp.ReferencesCache)
	for _, d := range diags {
		vertex.Log(domain.LogLevelError, d.String())
	}
	if classUnit == nil {
		o.updateStatus(key, StatusRejected)
		vertex.Complete(nil)
		return nil, diags, nil
	}

	unit, err := syn.Build(classUnit, comp.Name, comp.Dir)
	if err != nil {
		o.updateStatus(key, StatusFailed)
		err = zerr.With(err, "package", comp.Package)
		vertex.Complete(err)
		return nil, diags, err
	}

	o.updateStatus(key, StatusCompleted)
	vertex.Complete(nil)
	return &unit, diags, nil
}

func classKey(comp *domain.Compilation, class *domain.Symbol) string {
	return comp.Package + "." + class.Name
}
