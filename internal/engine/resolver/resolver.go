// Package resolver flattens a class's own and inherited members and searches them with
// specifications.
package resolver

import (
	"strings"

	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/engine/spec"
)

// Resolver memoizes flattened member tables for the classes of one evaluation pass.
// It is not safe for concurrent use.
type Resolver struct {
	tables map[*domain.Symbol][]*domain.Symbol
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{tables: make(map[*domain.Symbol][]*domain.Symbol)}
}

type memberKey struct {
	kind      domain.SymbolKind
	name      string
	signature string
}

func keyOf(m *domain.Symbol) memberKey {
	sig := m.Type.ID
	if m.IsMethod() {
		sig = strings.Join(m.ParamTypes(), ",")
	}
	return memberKey{kind: m.Kind, name: m.Name, signature: sig}
}

// Members returns own members followed by inherited ones, nearest base first.
// Inherited abstract and private members are dropped, and an inherited virtual member is
// dropped when a member with the same kind, name and signature was already collected.
func (r *Resolver) Members(class *domain.Symbol) []*domain.Symbol {
	if class == nil {
		return nil
	}
	if members, ok := r.tables[class]; ok {
		return members
	}

	seen := make(map[memberKey]struct{})
	members := make([]*domain.Symbol, 0, len(class.Members))

	add := func(m *domain.Symbol, inherited bool) {
		k := keyOf(m)
		if inherited {
			if m.Modifiers.Abstract || m.Accessibility == domain.Private {
				return
			}
			if _, shadowed := seen[k]; shadowed && m.Modifiers.Virtual {
				return
			}
		}
		seen[k] = struct{}{}
		members = append(members, m)
	}

	for _, m := range class.Members {
		add(m, false)
	}

	visited := map[*domain.Symbol]bool{class: true}
	queue := append([]*domain.Symbol(nil), class.Bases...)
	for len(queue) > 0 {
		base := queue[0]
		queue = queue[1:]
		if base == nil || base.Root || visited[base] {
			continue
		}
		visited[base] = true
		for _, m := range base.Members {
			add(m, true)
		}
		queue = append(queue, base.Bases...)
	}

	r.tables[class] = members
	return members
}

// FindFirstMatch returns the first member satisfying s, or nil.
func (r *Resolver) FindFirstMatch(class *domain.Symbol, s spec.SymbolSpec) *domain.Symbol {
	for _, m := range r.Members(class) {
		if s.IsSatisfiedBy(m) {
			return m
		}
	}
	return nil
}

// Candidates returns every member literally named name.
func (r *Resolver) Candidates(class *domain.Symbol, name string) []*domain.Symbol {
	var out []*domain.Symbol
	for _, m := range r.Members(class) {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Classify describes how generated code reaches a cache source member.
func Classify(m *domain.Symbol) domain.AccessSource {
	return domain.AccessSource{
		Name:   m.Name,
		Method: m.IsMethod(),
		Static: m.IsStatic(),
	}
}
