// Package evaluator validates the marked methods of a class and derives the facts the
// synthesizer needs.
package evaluator

import (
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/engine/resolver"
	"go.trai.ch/cachegen/internal/engine/spec"
)

// Evaluator turns one class and its marked methods into a ClassUnit.
type Evaluator struct {
	cache       domain.Type
	entry       domain.Type
	evictSuffix string
	hooks       bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEvictSuffix sets the suffix of eviction function names.
func WithEvictSuffix(suffix string) Option {
	return func(e *Evaluator) {
		if suffix != "" {
			e.evictSuffix = suffix
		}
	}
}

// WithHooks enables observation hooks for every method.
func WithHooks(enabled bool) Option {
	return func(e *Evaluator) {
		e.hooks = enabled
	}
}

// WithTypes overrides the cache and entry types looked for.
func WithTypes(cache, entry domain.Type) Option {
	return func(e *Evaluator) {
		e.cache = cache
		e.entry = entry
	}
}

// New creates an Evaluator targeting the memo cache library.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		cache:       domain.CacheType(),
		entry:       domain.EntryType(),
		evictSuffix: domain.DefaultEvictSuffix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type state int

const (
	stateCheckContainer state = iota
	stateResolveAccess
	stateEvaluateMethods
	stateAccepted
	stateRejected
)

type pass struct {
	*Evaluator
	class    *domain.Symbol
	methods  []*domain.Symbol
	resolver *resolver.Resolver
	unit     *domain.ClassUnit
	diags    []domain.Diagnostic
	names    map[string]bool
}

// Evaluate runs the class pass. The unit is nil when the class is rejected or when no
// method was accepted; every reason is reported as a diagnostic.
func (e *Evaluator) Evaluate(
	class *domain.Symbol,
	methods []*domain.Symbol,
	referencesCache bool,
) (*domain.ClassUnit, []domain.Diagnostic) {
	p := &pass{
		Evaluator: e,
		class:     class,
		methods:   methods,
		resolver:  resolver.New(),
		unit:      &domain.ClassUnit{Class: class},
		names:     make(map[string]bool),
	}

	st := stateCheckContainer
	for st != stateAccepted && st != stateRejected {
		switch st {
		case stateCheckContainer:
			st = p.checkContainer()
		case stateResolveAccess:
			st = p.resolveAccess(referencesCache)
		case stateEvaluateMethods:
			st = p.evaluateMethods()
		}
	}

	if st == stateRejected || len(p.unit.Methods) == 0 {
		return nil, p.diags
	}
	return p.unit, p.diags
}

func (p *pass) report(id domain.DiagnosticID, loc domain.Location, format string, args ...any) {
	p.diags = append(p.diags, domain.Errorf(id, loc, format, args...))
}

func (p *pass) checkContainer() state {
	if p.class.Kind != domain.KindClass || !p.class.Extensible {
		for _, m := range p.methods {
			p.report(domain.ContainerNotExtensible, m.Location,
				"%s cannot be cached: %s %s cannot be extended with generated methods",
				m.Name, p.class.Kind, p.class.Name)
		}
		return stateRejected
	}
	return stateResolveAccess
}

func (p *pass) resolveAccess(referencesCache bool) state {
	if m := p.resolver.FindFirstMatch(p.class, spec.CacheSource(p.cache)); m != nil {
		p.unit.Strategy = domain.AccessFromMember
		p.unit.Source = resolver.Classify(m)
		return stateEvaluateMethods
	}
	if referencesCache {
		p.unit.Strategy = domain.AccessFromSelfFactory
		return stateEvaluateMethods
	}
	p.unit.Strategy = domain.AccessNone
	p.report(domain.CacheSourceRequired, p.class.Location,
		"%s has no member providing %s and the package does not import %s",
		p.class.Name, p.cache.Expr, domain.MemoPackage)
	return stateRejected
}

func (p *pass) evaluateMethods() state {
	for _, m := range p.methods {
		if facts, ok := p.evaluateMethod(m); ok {
			p.unit.Methods = append(p.unit.Methods, facts)
		}
	}
	return stateAccepted
}

func (p *pass) evaluateMethod(m *domain.Symbol) (*domain.MethodFacts, bool) {
	marker, _ := m.CacheMarker()

	switch m.Type.Kind {
	case domain.TypeVoid, domain.TypeDeferredBare:
		p.report(domain.VoidOrBareAsyncNotAllowed, m.Location,
			"%s returns no value to cache", m.Name)
		return nil, false
	case domain.TypeTuple:
		p.report(domain.ResultShapeNotSupported, m.Location,
			"%s must return a single value or a value and an error, got %s", m.Name, m.Type.Expr)
		return nil, false
	}

	if !p.claimNames(m, marker) {
		return nil, false
	}

	facts := &domain.MethodFacts{
		Method:     m,
		Marker:     marker,
		Underlying: m.Type.Underlying(),
		Nullable:   m.Type.Nullable(),
		Async:      m.Type.IsDeferred(),
	}
	facts.Marker.Hooks = marker.Hooks || p.hooks

	ok := true
	if marker.Enricher != "" {
		facts.Enricher, ok = p.resolveEnricher(m, marker.Enricher)
	}
	if marker.KeyGenerator != "" {
		var keyOK bool
		facts.KeyGenerator, keyOK = p.resolveKeyGenerator(m, marker.KeyGenerator)
		ok = ok && keyOK
	}
	return facts, ok
}

func (p *pass) claimNames(m *domain.Symbol, marker domain.Marker) bool {
	generated := []string{marker.Name}
	if !marker.NoEvict {
		generated = append(generated, marker.Name+p.evictSuffix)
	}
	for _, name := range generated {
		if p.names[name] || p.ownMember(name) {
			p.report(domain.GeneratedNameConflict, m.Location,
				"%s would generate %s, which %s already declares", m.Name, name, p.class.Name)
			return false
		}
	}
	for _, name := range generated {
		p.names[name] = true
	}
	return true
}

func (p *pass) ownMember(name string) bool {
	for _, member := range p.class.Members {
		if member.Name == name && !member.IsStatic() {
			return true
		}
	}
	return false
}

func (p *pass) resolveEnricher(m *domain.Symbol, name string) (*domain.HelperRef, bool) {
	candidates := p.resolver.Candidates(p.class, name)
	if len(candidates) == 0 {
		p.report(domain.NoEnricherCandidates, m.Location,
			"no member named %s found for the entry enricher of %s", name, m.Name)
		return nil, false
	}
	shape := spec.EnricherShape(p.entry)
	for _, c := range candidates {
		if shape.IsSatisfiedBy(c) {
			return domain.NewHelperRef(c), true
		}
	}
	p.report(domain.EnricherShapeMismatch, m.Location,
		"entry enricher %s of %s must take a single %s parameter", name, m.Name, p.entry.Expr)
	return nil, false
}

func (p *pass) resolveKeyGenerator(m *domain.Symbol, name string) (*domain.HelperRef, bool) {
	candidates := p.resolver.Candidates(p.class, name)
	if len(candidates) == 0 {
		p.report(domain.NoKeyGeneratorCandidates, m.Location,
			"no member named %s found for the key generator of %s", name, m.Name)
		return nil, false
	}
	shape := spec.KeyGeneratorShapeMatch(m)
	for _, c := range candidates {
		if shape.IsSatisfiedBy(c) {
			return domain.NewHelperRef(c), true
		}
	}
	p.report(domain.KeyGeneratorParameterMismatch, m.Location,
		"key generator %s of %s must return a value and take the parameters of %s in the same order",
		name, m.Name, m.Name)
	return nil, false
}
