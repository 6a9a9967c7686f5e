package synth

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.trai.ch/cachegen/internal/core/domain"
)

type fileView struct {
	Header  string
	Package string
	Class   string
	Std     []string
	Others  []string
	Holder  string
	Methods []methodView
}

type methodView struct {
	Impl      string
	Name      string
	EvictName string
	Receiver  string
	Recv      string
	Params    string
	Results   string
	Result    string
	Async     bool
	Assert    bool
	Cache     string
	Ctx       string
	Call      string

	WrapperKey []string
	EvictKey   []string
	Enrich     []string

	Hooks        bool
	CallingIface string
	CalledIface  string
	CallingHook  string
	CalledHook   string
	HookArgs     string
	CalledParams string
}

type builder struct {
	unit        *domain.ClassUnit
	evictSuffix string
	imports     map[string]string
	recv        string
	params      []domain.Param
	names       map[string]string
}

// templateNames are the predeclared identifiers and locals the templates refer to.
var templateNames = []string{
	"any", "nil", "error", "panic", "result",
	"_key_", "_value_", "_result_", "_err_", "_zero_", "_entry_", "_hook_", "_ok_", "_recv_",
}

func (b *builder) addImports(imps []domain.Import) {
	for _, imp := range imps {
		if imp.Path == "" {
			continue
		}
		b.imports[imp.Path] = imp.Name
	}
}

func (b *builder) view(header, pkg string) fileView {
	class := b.unit.Class
	v := fileView{
		Header:  header,
		Package: pkg,
		Class:   class.Name,
	}

	b.addImports([]domain.Import{{Path: domain.MemoPackage, Name: "memo"}})
	if b.unit.Strategy == domain.AccessFromSelfFactory {
		v.Holder = lowerFirst(class.Name) + "CacheInit"
		b.addImports([]domain.Import{{Path: "sync", Name: "sync"}})
	}
	for _, f := range b.unit.Methods {
		for _, p := range f.Method.Params {
			b.addImports(p.Type.Imports)
		}
		b.addImports(f.Method.Type.Imports)
		if f.Async {
			b.addImports([]domain.Import{{Path: "context", Name: "context"}})
		}
	}

	for _, facts := range b.unit.Methods {
		v.Methods = append(v.Methods, b.method(facts, v.Holder))
	}

	for p, name := range b.imports {
		spec := strconv.Quote(p)
		if name != "" && name != path.Base(p) {
			spec = name + " " + spec
		}
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			v.Others = append(v.Others, spec)
		} else {
			v.Std = append(v.Std, spec)
		}
	}
	slices.Sort(v.Std)
	slices.Sort(v.Others)
	return v
}

func (b *builder) method(f *domain.MethodFacts, holder string) methodView {
	m := f.Method
	b.recv = b.receiverName(m)
	b.params, b.names = renameParams(m.Params, b.identifiers(f, holder))

	result := f.Result()
	v := methodView{
		Impl:      m.Name,
		Name:      f.Marker.Name,
		EvictName: f.Marker.Name + b.evictSuffix,
		Receiver:  b.receiverDecl(m),
		Recv:      b.recv,
		Params:    paramList(b.params),
		Results:   m.Type.Expr,
		Result:    result.Expr,
		Async:     f.Async,
		Assert:    f.NeedsAssertion(),
		Cache:     b.cacheExpr(holder),
		Ctx:       contextArg(b.params),
		Call:      fmt.Sprintf("%s.%s(%s)", b.recv, m.Name, argList(b.params)),
		Hooks:     f.Marker.Hooks,
	}
	if f.Marker.NoEvict {
		v.EvictName = ""
	}

	v.WrapperKey = b.key(f, f.Async)
	if v.EvictName != "" {
		v.EvictKey = b.key(f, false)
	}
	if f.Enricher != nil {
		fail := "return nil, _err_"
		v.Enrich = call(InvocationStrategy(f.Async, f.Enricher.Async), "",
			b.helperCall(f.Enricher, "_entry_"), f.Enricher.ResultCount(), fail)
	}

	if v.Hooks {
		prefix := lowerFirst(b.unit.Class.Name)
		suffix := upperFirst(m.Name)
		v.CallingIface = prefix + "OnCalling" + suffix
		v.CalledIface = prefix + "OnCalled" + suffix
		v.CallingHook = "onCalling" + suffix
		v.CalledHook = "onCalled" + suffix
		v.HookArgs = argList(b.params)
		v.CalledParams = v.Params
		if v.CalledParams != "" {
			v.CalledParams += ", "
		}
		v.CalledParams += "result " + result.Expr
	}
	return v
}

// key renders the statements binding _key_ for a caller of the given async-ness.
func (b *builder) key(f *domain.MethodFacts, callerAsync bool) []string {
	if f.KeyGenerator == nil {
		return []string{"_key_ := " + defaultKey(f, b.unit.Class.Name, b.names)}
	}
	expr := b.helperCall(f.KeyGenerator, argList(b.params))
	fail := []string{"var _zero_ " + f.Result().Expr, "return _zero_, _err_"}
	return call(InvocationStrategy(callerAsync, f.KeyGenerator.Async), "_key_", expr, f.KeyGenerator.ResultCount(), fail...)
}

func defaultKey(f *domain.MethodFacts, class string, names map[string]string) string {
	key := fmt.Sprintf("memo.Key{Method: %q, Class: %q", f.Method.Name, class)
	params := f.KeyParams()
	if len(params) == 0 {
		return key + "}"
	}
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = names[p.Name]
	}
	return key + ", Args: []any{" + strings.Join(args, ", ") + "}}"
}

// identifiers returns every name the body of f's wrappers refers to besides its parameters.
func (b *builder) identifiers(f *domain.MethodFacts, holder string) map[string]bool {
	taken := make(map[string]bool)
	for name := range b.importNames() {
		taken[name] = true
	}
	for _, name := range templateNames {
		taken[name] = true
	}
	taken[b.recv] = true
	if holder != "" {
		taken[holder] = true
	}
	if b.unit.Strategy == domain.AccessFromMember && b.unit.Source.Static {
		taken[b.unit.Source.Name] = true
	}
	for _, h := range []*domain.HelperRef{f.KeyGenerator, f.Enricher} {
		if h != nil && h.Static {
			taken[h.Name()] = true
		}
	}
	if f.Marker.Hooks {
		prefix := lowerFirst(b.unit.Class.Name)
		suffix := upperFirst(f.Method.Name)
		taken[prefix+"OnCalling"+suffix] = true
		taken[prefix+"OnCalled"+suffix] = true
	}
	exprs := []string{f.Method.Type.Expr, f.Result().Expr}
	for _, p := range f.Method.Params {
		exprs = append(exprs, p.Type.Expr)
	}
	for _, expr := range exprs {
		for _, id := range typeIdents(expr) {
			taken[id] = true
		}
	}
	return taken
}

// typeIdents splits a type expression into its identifiers.
func typeIdents(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// renameParams appends underscores to parameters whose names collide with taken, keeping
// them distinct from the other parameters. The implementation is called positionally, so
// the wrapper is free to rename. names maps each original name to the one used.
func renameParams(params []domain.Param, taken map[string]bool) ([]domain.Param, map[string]string) {
	used := make(map[string]bool, len(params))
	for _, p := range params {
		used[p.Name] = true
	}

	out := slices.Clone(params)
	names := make(map[string]string, len(params))
	for i, p := range params {
		name := p.Name
		if taken[name] {
			for taken[name] || used[name] {
				name += "_"
			}
			used[name] = true
		}
		out[i].Name = name
		names[p.Name] = name
	}
	return out, names
}

func (b *builder) helperCall(h *domain.HelperRef, args string) string {
	if h.Static {
		return fmt.Sprintf("%s(%s)", h.Name(), args)
	}
	return fmt.Sprintf("%s.%s(%s)", b.recv, h.Name(), args)
}

func (b *builder) cacheExpr(holder string) string {
	if b.unit.Strategy == domain.AccessFromSelfFactory {
		return holder + "()"
	}
	src := b.unit.Source
	expr := src.Name
	if !src.Static {
		expr = b.recv + "." + expr
	}
	if src.Method {
		expr += "()"
	}
	return expr
}

func (b *builder) receiverDecl(m *domain.Symbol) string {
	typ := b.unit.Class.Type.Expr
	if typ == "" {
		typ = b.unit.Class.Name
	}
	if m.Receiver.Pointer {
		typ = "*" + typ
	}
	return b.recv + " " + typ
}

func (b *builder) receiverName(m *domain.Symbol) string {
	name := m.Receiver.Name
	if name == "" || name == "_" {
		name = lowerFirst(b.unit.Class.Name)
		if name == b.unit.Class.Name || name == "" {
			name = "recv"
		}
	}
	if b.importNames()[name] || slices.Contains(templateNames, name) {
		return "_recv_"
	}
	for _, p := range m.Params {
		if p.Name == name {
			return "_recv_"
		}
	}
	return name
}

func (b *builder) importNames() map[string]bool {
	names := make(map[string]bool, len(b.imports))
	for p, name := range b.imports {
		if name == "" {
			name = path.Base(p)
		}
		names[name] = true
	}
	return names
}

func paramList(params []domain.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		typ := p.Type.Expr
		if p.Variadic {
			typ = "..." + strings.TrimPrefix(typ, "[]")
		}
		parts[i] = p.Name + " " + typ
	}
	return strings.Join(parts, ", ")
}

func argList(params []domain.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
		if p.Variadic {
			parts[i] += "..."
		}
	}
	return strings.Join(parts, ", ")
}

func contextArg(params []domain.Param) string {
	for _, p := range params {
		if p.Type.ID == domain.ContextTypeID {
			return p.Name
		}
	}
	return "context.Background()"
}
