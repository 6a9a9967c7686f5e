// Package gotypes implements the symbol oracle on top of go/packages and go/types.
package gotypes

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/cachegen/internal/adapters/fs"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedModule

// Oracle loads packages and answers symbol queries about them.
type Oracle struct {
	walker *fs.Walker
}

// New creates an Oracle that masks the generated files found by walker.
func New(walker *fs.Walker) *Oracle {
	return &Oracle{walker: walker}
}

// Load analyzes the packages matching cfg.Patterns relative to cfg.Root.
//
// Files previously generated with cfg.FileSuffix are replaced by an empty package clause
// so that wrappers from an earlier run never count as declared members.
func (o *Oracle) Load(ctx context.Context, cfg domain.Config) ([]*domain.Compilation, error) {
	patterns := slices.Clone(cfg.Patterns)
	mods := newModules()
	addedMemo := false
	if mods.requiresMemo(findGoMod(cfg.Root)) && !slices.Contains(patterns, domain.MemoPackage) {
		patterns = append(patterns, domain.MemoPackage)
		addedMemo = true
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     cfg.Root,
		Overlay: o.overlay(cfg),
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageLoadFailed.Error()), "root", cfg.Root)
	}

	var memoCache *types.Named
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.PkgPath != domain.MemoPackage || p.Types == nil {
			return
		}
		if obj, ok := p.Types.Scope().Lookup("Cache").(*types.TypeName); ok {
			memoCache, _ = obj.Type().(*types.Named)
		}
	})

	comps := make([]*domain.Compilation, 0, len(pkgs))
	for _, p := range pkgs {
		if addedMemo && p.PkgPath == domain.MemoPackage {
			continue
		}
		if err := checkErrors(p); err != nil {
			return nil, err
		}
		if len(p.GoFiles) == 0 {
			continue
		}

		comp := o.compile(p, cfg, memoCache)
		comp.ReferencesCache = importsMemo(p) || mods.requiresMemo(goModOf(p))
		comps = append(comps, comp)
	}

	if len(comps) == 0 {
		return nil, zerr.With(domain.ErrNoPackagesMatched, "patterns", strings.Join(cfg.Patterns, " "))
	}
	return comps, nil
}

// overlay masks every existing generated file with its bare package clause.
func (o *Oracle) overlay(cfg domain.Config) map[string][]byte {
	out := make(map[string][]byte)
	fset := token.NewFileSet()
	for path := range o.walker.GeneratedFiles(cfg.Root, cfg.FileSuffix) {
		f, err := parser.ParseFile(fset, path, nil, parser.PackageClauseOnly)
		if err != nil {
			continue
		}
		out[path] = []byte(domain.GeneratedHeader + "\n\npackage " + f.Name.Name + "\n")
	}
	return out
}

// checkErrors fails on list and parse errors. Type errors are tolerated: callers of
// wrappers hidden by the overlay do not type-check until generation has run.
func checkErrors(p *packages.Package) error {
	for _, e := range p.Errors {
		switch e.Kind {
		case packages.ListError, packages.UnknownError:
			return zerr.With(zerr.With(zerr.Wrap(e, domain.ErrPackageLoadFailed.Error()), "package", p.PkgPath), "pos", e.Pos)
		case packages.ParseError:
			return zerr.With(zerr.With(zerr.Wrap(e, domain.ErrPackageHasErrors.Error()), "package", p.PkgPath), "pos", e.Pos)
		}
	}
	if p.Types == nil || p.TypesInfo == nil {
		return zerr.With(domain.ErrPackageHasErrors, "package", p.PkgPath)
	}
	return nil
}

func (o *Oracle) compile(p *packages.Package, cfg domain.Config, memoCache *types.Named) *domain.Compilation {
	comp := &domain.Compilation{
		Package: p.PkgPath,
		Name:    p.Name,
		Dir:     filepath.Dir(p.GoFiles[0]),
	}

	r := newRenderer(p.Types)
	if memoCache != nil {
		r.track(memoCache)
	}
	syms := newSymbols(p.Types, p.Fset, cfg.Root, r)

	for i, file := range p.Syntax {
		if i < len(p.CompiledGoFiles) && strings.HasSuffix(p.CompiledGoFiles[i], cfg.FileSuffix) {
			continue
		}
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				o.markFunc(comp, syms, p.TypesInfo, d)
			case *ast.GenDecl:
				o.rejectMisplaced(comp, syms, d)
			}
		}
	}
	domain.SortDiagnostics(comp.Diagnostics)
	return comp
}

func (o *Oracle) markFunc(comp *domain.Compilation, syms *symbols, info *types.Info, d *ast.FuncDecl) {
	dirs := directives(d.Doc)
	if len(dirs) == 0 {
		return
	}
	fn, ok := info.Defs[d.Name].(*types.Func)
	if !ok {
		return
	}

	var container *domain.Symbol
	if recv := fn.Signature().Recv(); recv != nil {
		named := embeddedNamed(recv.Type())
		if named == nil {
			return
		}
		container = syms.class(named)
	} else {
		container = syms.packageContainer()
	}
	method := syms.method(container, fn)
	if method == nil {
		return
	}

	for i, dir := range dirs {
		loc := syms.location(dir.pos)
		if i > 0 {
			comp.Diagnostics = append(comp.Diagnostics, domain.Errorf(domain.InvalidMarker, loc,
				"%s declares more than one cache directive", method.Name))
			continue
		}
		marker, err := ParseDirective(dir.text, loc)
		if err != nil {
			comp.Diagnostics = append(comp.Diagnostics, domain.Errorf(domain.InvalidMarker, loc,
				"invalid cache directive on %s: %v", method.Name, err))
			return
		}
		if missing := unknownParams(marker, method); len(missing) > 0 {
			comp.Diagnostics = append(comp.Diagnostics, domain.Errorf(domain.InvalidMarker, loc,
				"nokey names unknown parameters of %s: %s", method.Name, strings.Join(missing, ", ")))
			return
		}
		method.Markers = append(method.Markers, marker)
	}
	comp.Methods = append(comp.Methods, method)
}

func unknownParams(marker domain.Marker, method *domain.Symbol) []string {
	var missing []string
	for _, name := range marker.ExcludedParams {
		if !slices.ContainsFunc(method.Params, func(p domain.Param) bool { return p.Name == name }) {
			missing = append(missing, name)
		}
	}
	return missing
}

// rejectMisplaced reports cache directives attached to anything but a function.
func (o *Oracle) rejectMisplaced(comp *domain.Compilation, syms *symbols, d *ast.GenDecl) {
	groups := []*ast.CommentGroup{d.Doc}
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			groups = append(groups, s.Doc)
		case *ast.ValueSpec:
			groups = append(groups, s.Doc)
		}
	}
	for _, g := range groups {
		for _, dir := range directives(g) {
			comp.Diagnostics = append(comp.Diagnostics, domain.Errorf(domain.InvalidMarker, syms.location(dir.pos),
				"cache directive must annotate a function or method"))
		}
	}
}

func importsMemo(p *packages.Package) bool {
	found := false
	packages.Visit([]*packages.Package{p}, func(dep *packages.Package) bool {
		if dep.PkgPath == domain.MemoPackage {
			found = true
		}
		return !found
	}, nil)
	return found
}

func goModOf(p *packages.Package) string {
	if p.Module == nil {
		return ""
	}
	return p.Module.GoMod
}

// findGoMod returns the go.mod governing dir, or "" outside a module.
func findGoMod(dir string) string {
	for {
		path := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// modules memoizes whether a go.mod file can reach the cache library.
type modules struct {
	seen map[string]bool
}

func newModules() *modules {
	return &modules{seen: make(map[string]bool)}
}

func (m *modules) requiresMemo(gomod string) bool {
	if gomod == "" {
		return false
	}
	if v, ok := m.seen[gomod]; ok {
		return v
	}
	v := false
	if data, err := os.ReadFile(gomod); err == nil {
		if f, err := modfile.ParseLax(gomod, data, nil); err == nil && f.Module != nil {
			v = providesMemo(f.Module.Mod.Path) || slices.ContainsFunc(f.Require, func(r *modfile.Require) bool {
				return providesMemo(r.Mod.Path)
			})
		}
	}
	m.seen[gomod] = v
	return v
}

func providesMemo(modulePath string) bool {
	return modulePath != "" && strings.HasPrefix(domain.MemoPackage, modulePath+"/")
}
