package gotypes

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"go.trai.ch/cachegen/internal/core/domain"
)

// symbols builds the symbol table of one package lazily.
type symbols struct {
	pkg     *types.Package
	fset    *token.FileSet
	root    string
	render  *renderer
	classes map[*types.TypeName]*domain.Symbol
	statics []*domain.Symbol
	pkgSym  *domain.Symbol
}

func newSymbols(pkg *types.Package, fset *token.FileSet, root string, r *renderer) *symbols {
	return &symbols{
		pkg:     pkg,
		fset:    fset,
		root:    root,
		render:  r,
		classes: make(map[*types.TypeName]*domain.Symbol),
	}
}

func (s *symbols) location(pos token.Pos) domain.Location {
	if !pos.IsValid() {
		return domain.Location{}
	}
	loc := domain.LocationOf(s.fset.Position(pos))
	if rel, err := filepath.Rel(s.root, loc.File); err == nil && !strings.HasPrefix(rel, "..") {
		loc.File = rel
	}
	return loc
}

func (s *symbols) accessibility(name string, owner *types.Package) domain.Accessibility {
	switch {
	case token.IsExported(name):
		return domain.Public
	case owner == s.pkg:
		return domain.Internal
	default:
		return domain.Private
	}
}

// class returns the class symbol of named, building it on first use.
func (s *symbols) class(named *types.Named) *domain.Symbol {
	named = named.Origin()
	obj := named.Obj()
	if sym, ok := s.classes[obj]; ok {
		return sym
	}

	owner := obj.Pkg()
	sym := &domain.Symbol{
		Name:          obj.Name(),
		Kind:          domain.KindClass,
		Type:          s.render.render(named),
		Accessibility: s.accessibility(obj.Name(), owner),
		Location:      s.location(obj.Pos()),
	}
	s.classes[obj] = sym

	if owner == nil {
		sym.Root = true
		return sym
	}
	sym.Package = owner.Path()
	sym.Root = isStdlib(owner.Path())
	if sym.Root {
		return sym
	}

	_, isInterface := named.Underlying().(*types.Interface)
	sym.Extensible = owner == s.pkg && named.TypeParams().Len() == 0 && !isInterface
	if owner == s.pkg {
		sym.Type.Expr = obj.Name()
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		s.addFields(sym, u, owner)
	case *types.Interface:
		for i := range u.NumMethods() {
			m := s.function(u.Method(i), owner)
			m.Modifiers.Abstract = true
			s.add(sym, m)
		}
	}

	for i := range named.NumMethods() {
		s.add(sym, s.function(named.Method(i), owner))
	}

	if owner == s.pkg {
		for _, st := range s.packageMembers() {
			m := *st
			s.add(sym, &m)
		}
	}
	return sym
}

func (s *symbols) addFields(sym *domain.Symbol, st *types.Struct, owner *types.Package) {
	for i := range st.NumFields() {
		f := st.Field(i)
		member := &domain.Symbol{
			Name:          f.Name(),
			Kind:          domain.KindField,
			Type:          s.render.render(f.Type()),
			Accessibility: s.accessibility(f.Name(), owner),
			Location:      s.location(f.Pos()),
		}
		if f.Embedded() {
			member.Kind = domain.KindProperty
			if base := embeddedNamed(f.Type()); base != nil {
				sym.Bases = append(sym.Bases, s.class(base))
			}
		}
		s.add(sym, member)
	}
}

func embeddedNamed(t types.Type) *types.Named {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, _ := types.Unalias(t).(*types.Named)
	return named
}

func (s *symbols) add(sym, m *domain.Symbol) {
	if m.Kind != domain.KindMethod || !m.Modifiers.Abstract {
		m.Modifiers.Virtual = true
	}
	m.Container = sym
	sym.Members = append(sym.Members, m)
}

// function builds a method symbol from fn. Receiverless functions are static.
func (s *symbols) function(fn *types.Func, owner *types.Package) *domain.Symbol {
	sig := fn.Signature()
	m := &domain.Symbol{
		Name:          fn.Name(),
		Kind:          domain.KindMethod,
		Type:          s.render.result(sig.Results()),
		Accessibility: s.accessibility(fn.Name(), owner),
		Location:      s.location(fn.Pos()),
		Package:       pathOf(fn.Pkg()),
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		m.Params = append(m.Params, domain.Param{
			Name:     name,
			Type:     s.render.render(v.Type()),
			Variadic: sig.Variadic() && i == params.Len()-1,
		})
	}

	if recv := sig.Recv(); recv != nil {
		_, ptr := types.Unalias(recv.Type()).(*types.Pointer)
		m.Receiver = domain.Receiver{Name: recv.Name(), Pointer: ptr}
	} else {
		m.Modifiers.Static = true
	}
	return m
}

// packageMembers returns the package-level functions and variables, built once.
// Each class receives its own copies.
func (s *symbols) packageMembers() []*domain.Symbol {
	if s.statics != nil {
		return s.statics
	}
	s.statics = []*domain.Symbol{}
	scope := s.pkg.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.Func:
			if obj.Signature().TypeParams().Len() > 0 {
				continue
			}
			s.statics = append(s.statics, s.function(obj, s.pkg))
		case *types.Var:
			s.statics = append(s.statics, &domain.Symbol{
				Name:          obj.Name(),
				Kind:          domain.KindField,
				Type:          s.render.render(obj.Type()),
				Modifiers:     domain.Modifiers{Static: true},
				Accessibility: s.accessibility(obj.Name(), s.pkg),
				Location:      s.location(obj.Pos()),
				Package:       s.pkg.Path(),
			})
		}
	}
	return s.statics
}

// packageContainer is the pseudo-class holding package-level functions.
func (s *symbols) packageContainer() *domain.Symbol {
	if s.pkgSym != nil {
		return s.pkgSym
	}
	s.pkgSym = &domain.Symbol{
		Name:    s.pkg.Name(),
		Kind:    domain.KindPackage,
		Package: s.pkg.Path(),
	}
	for _, st := range s.packageMembers() {
		m := *st
		s.add(s.pkgSym, &m)
	}
	return s.pkgSym
}

// method returns the member of class declared by fn.
func (s *symbols) method(class *domain.Symbol, fn *types.Func) *domain.Symbol {
	for _, m := range class.Members {
		if m.Kind == domain.KindMethod && m.Name == fn.Name() && m.IsStatic() == (fn.Signature().Recv() == nil) {
			return m
		}
	}
	return nil
}

func pathOf(p *types.Package) string {
	if p == nil {
		return ""
	}
	return p.Path()
}

// isStdlib reports whether path belongs to the standard library.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
