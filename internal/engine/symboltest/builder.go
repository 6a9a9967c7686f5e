// Package symboltest builds in-memory symbol tables for engine tests.
package symboltest

import (
	"unicode"
	"unicode/utf8"

	"go.trai.ch/cachegen/internal/core/domain"
)

// Package is the import path of classes built without InPackage.
const Package = "example.com/app"

// Common types.
var (
	Int     = domain.NamedType("int", "int", false)
	String  = domain.NamedType("string", "string", false)
	Bool    = domain.NamedType("bool", "bool", false)
	Strings = domain.NamedType("[]string", "[]string", true)
	Context = domain.NamedType(domain.ContextTypeID, "context.Context", true, domain.Import{Path: "context", Name: "context"})
	Cache   = domain.CacheType()
	Entry   = domain.EntryType()
)

// P builds a parameter.
func P(name string, t domain.Type) domain.Param {
	return domain.Param{Name: name, Type: t}
}

// ClassBuilder assembles a class symbol.
type ClassBuilder struct {
	sym     *domain.Symbol
	foreign bool
	line    int
}

// NewClass starts an extensible class in the default package.
func NewClass(name string) *ClassBuilder {
	return &ClassBuilder{
		sym: &domain.Symbol{
			Name:          name,
			Kind:          domain.KindClass,
			Type:          domain.NamedType(Package+"."+name, name, false),
			Accessibility: accessibility(name, false),
			Package:       Package,
			Extensible:    true,
			Location:      domain.Location{File: "app.go", Line: 1, Column: 6},
		},
		line: 1,
	}
}

// Interface starts an interface whose methods are abstract.
func Interface(name string, methods ...*domain.Symbol) *domain.Symbol {
	b := NewClass(name)
	for _, m := range methods {
		m.Modifiers.Abstract = true
		b.Add(m)
	}
	return b.Build()
}

// InPackage moves the class to another package; its unexported members become private.
func (b *ClassBuilder) InPackage(path string) *ClassBuilder {
	b.sym.Package = path
	b.sym.Type.ID = path + "." + b.sym.Name
	b.foreign = path != Package
	return b
}

// Sealed marks the class as not extensible.
func (b *ClassBuilder) Sealed() *ClassBuilder {
	b.sym.Extensible = false
	return b
}

// AsPackage turns the class into the pseudo-container of package-level functions.
func (b *ClassBuilder) AsPackage() *ClassBuilder {
	b.sym.Kind = domain.KindPackage
	b.sym.Extensible = false
	return b
}

// Root marks the class as a foundational base that is never walked.
func (b *ClassBuilder) Root() *ClassBuilder {
	b.sym.Root = true
	return b
}

// Field adds a field.
func (b *ClassBuilder) Field(name string, t domain.Type) *ClassBuilder {
	return b.Add(&domain.Symbol{Name: name, Kind: domain.KindField, Type: t})
}

// Property adds an embedded field.
func (b *ClassBuilder) Property(name string, t domain.Type) *ClassBuilder {
	return b.Add(&domain.Symbol{Name: name, Kind: domain.KindProperty, Type: t})
}

// Method adds a method.
func (b *ClassBuilder) Method(name string, result domain.Type, params ...domain.Param) *ClassBuilder {
	return b.Add(Func(name, result, params...))
}

// Marked adds a method carrying marker.
func (b *ClassBuilder) Marked(marker domain.Marker, name string, result domain.Type, params ...domain.Param) *ClassBuilder {
	m := Func(name, result, params...)
	b.Add(m)
	Mark(m, marker)
	return b
}

// Static adds a package-level function.
func (b *ClassBuilder) Static(name string, result domain.Type, params ...domain.Param) *ClassBuilder {
	fn := Func(name, result, params...)
	fn.Modifiers.Static = true
	return b.Add(fn)
}

// Add appends a member.
func (b *ClassBuilder) Add(m *domain.Symbol) *ClassBuilder {
	if m.Kind != domain.KindMethod || !m.Modifiers.Abstract {
		m.Modifiers.Virtual = true
	}
	if m.Kind == domain.KindMethod && !m.Modifiers.Static && m.Receiver.Name == "" {
		m.Receiver = domain.Receiver{Name: receiverName(b.sym.Name), Pointer: true}
	}
	b.line++
	if !m.Location.IsValid() {
		m.Location = domain.Location{File: "app.go", Line: b.line, Column: 1}
	}
	b.sym.Members = append(b.sym.Members, m)
	return b
}

// Embed adds a base.
func (b *ClassBuilder) Embed(base *domain.Symbol) *ClassBuilder {
	b.sym.Bases = append(b.sym.Bases, base)
	return b
}

// Build finalizes accessibility and containers.
func (b *ClassBuilder) Build() *domain.Symbol {
	for _, m := range b.sym.Members {
		m.Container = b.sym
		m.Accessibility = accessibility(m.Name, b.foreign)
	}
	return b.sym
}

// Func builds a method symbol without container.
func Func(name string, result domain.Type, params ...domain.Param) *domain.Symbol {
	return &domain.Symbol{
		Name:   name,
		Kind:   domain.KindMethod,
		Type:   result,
		Params: params,
	}
}

// Mark attaches a cache marker to m.
func Mark(m *domain.Symbol, marker domain.Marker) *domain.Symbol {
	marker.Location = m.Location
	m.Markers = append(m.Markers, marker)
	return m
}

func accessibility(name string, foreign bool) domain.Accessibility {
	r, _ := utf8.DecodeRuneInString(name)
	switch {
	case unicode.IsUpper(r):
		return domain.Public
	case foreign:
		return domain.Private
	default:
		return domain.Internal
	}
}

func receiverName(class string) string {
	r, _ := utf8.DecodeRuneInString(class)
	return string(unicode.ToLower(r))
}
