package gotypes

import (
	"go/types"
	"path"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/cachegen/internal/core/domain"
)

// reservedImports are names the generated file always binds to a fixed path.
var reservedImports = map[string]string{
	"memo":    domain.MemoPackage,
	"context": "context",
	"sync":    "sync",
}

// renderer converts go/types types into domain types as seen from one package.
type renderer struct {
	pkg *types.Package
	// names maps an import path to the name it is referenced by.
	names map[string]string
	// taken maps a name to the import path holding it.
	taken map[string]string
	// known are the interfaces whose implementation is recorded on each type.
	known map[string]*types.Interface
}

func newRenderer(pkg *types.Package) *renderer {
	r := &renderer{
		pkg:   pkg,
		names: make(map[string]string),
		taken: make(map[string]string),
		known: make(map[string]*types.Interface),
	}
	for name, p := range reservedImports {
		r.names[p] = name
		r.taken[name] = p
	}
	return r
}

// track records the named interface iface so that implementing types carry its ID.
func (r *renderer) track(iface *types.Named) {
	if it, ok := iface.Underlying().(*types.Interface); ok {
		r.known[types.TypeString(iface, nil)] = it
	}
}

// importName returns the unique name p is referenced by in generated code.
func (r *renderer) importName(p *types.Package) string {
	if name, ok := r.names[p.Path()]; ok {
		return name
	}
	base := p.Name()
	if base == "" || base == "_" {
		base = path.Base(p.Path())
	}
	name := base
	for i := 2; ; i++ {
		if _, clash := r.taken[name]; !clash && name != r.pkg.Name() {
			break
		}
		name = base + strconv.Itoa(i)
	}
	r.names[p.Path()] = name
	r.taken[name] = p.Path()
	return name
}

// render converts a value type.
func (r *renderer) render(t types.Type) domain.Type {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		return domain.OptionalOf(r.render(ptr.Elem())).WithInterfaces(r.interfaces(t)...)
	}

	var imports []domain.Import
	seen := make(map[string]bool)
	qualifier := func(p *types.Package) string {
		if p == nil || p == r.pkg {
			return ""
		}
		name := r.importName(p)
		if !seen[p.Path()] {
			seen[p.Path()] = true
			imports = append(imports, domain.Import{Path: p.Path(), Name: name})
		}
		return name
	}

	expr := types.TypeString(t, qualifier)
	return domain.NamedType(types.TypeString(t, nil), expr, isReference(t), imports...).
		WithInterfaces(r.interfaces(t)...)
}

// result converts a result list to its result shape.
func (r *renderer) result(results *types.Tuple) domain.Type {
	switch n := results.Len(); {
	case n == 0:
		return domain.VoidType()
	case n == 1 && isError(results.At(0).Type()):
		return domain.ErrorType()
	case n == 1:
		return r.render(results.At(0).Type())
	case n == 2 && isError(results.At(1).Type()):
		return domain.DeferredOf(r.render(results.At(0).Type()))
	}

	ids := make([]string, results.Len())
	exprs := make([]string, results.Len())
	var imports []domain.Import
	for i := range results.Len() {
		t := r.render(results.At(i).Type())
		ids[i] = t.ID
		exprs[i] = t.Expr
		imports = append(imports, t.Imports...)
	}
	return domain.Type{
		Kind:    domain.TypeTuple,
		ID:      "(" + strings.Join(ids, ", ") + ")",
		Expr:    "(" + strings.Join(exprs, ", ") + ")",
		Imports: imports,
	}
}

func (r *renderer) interfaces(t types.Type) []string {
	var ids []string
	for id, iface := range r.known {
		if types.Implements(t, iface) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}

func isReference(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Interface, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return true
	default:
		return false
	}
}
