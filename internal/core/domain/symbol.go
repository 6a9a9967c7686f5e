package domain

import "go/token"

// SymbolKind classifies a declared program entity.
type SymbolKind int

const (
	// KindClass is a named type that can carry methods.
	KindClass SymbolKind = iota
	// KindMethod is a callable member.
	KindMethod
	// KindField is a named struct field or package-level variable.
	KindField
	// KindProperty is an embedded field, accessed by its type name.
	KindProperty
	// KindPackage is the pseudo-container of package-level functions.
	KindPackage
)

// String returns the lowercase name of the kind.
func (k SymbolKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindPackage:
		return "package"
	default:
		return "unknown"
	}
}

// Accessibility describes who can reference a member.
type Accessibility int

const (
	// Public members are exported.
	Public Accessibility = iota
	// Internal members are unexported but declared in the package being generated.
	Internal
	// Private members are unexported and declared in another package.
	Private
)

// Modifiers holds the declaration modifiers the engine cares about.
type Modifiers struct {
	Static   bool
	Abstract bool
	Virtual  bool
}

// Param is a single parameter of a callable.
type Param struct {
	Name     string
	Type     Type
	Variadic bool
}

// Receiver describes the receiver of a method declaration.
type Receiver struct {
	Name    string
	Pointer bool
}

// Location is a source position attached to symbols and diagnostics.
type Location struct {
	File   string
	Line   int
	Column int
}

// LocationOf converts a token.Position.
func LocationOf(p token.Position) Location {
	return Location{File: p.Filename, Line: p.Line, Column: p.Column}
}

// IsValid reports whether the location points into a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// Symbol is a read-only handle to a declared entity.
//
// For methods Type holds the result shape; for fields and properties the declared type;
// for classes the named type itself.
type Symbol struct {
	Name          string
	Kind          SymbolKind
	Type          Type
	Params        []Param
	Modifiers     Modifiers
	Accessibility Accessibility
	Receiver      Receiver
	Markers       []Marker
	Location      Location

	// Container is the declaring class, nil for classes.
	Container *Symbol

	// Class-only fields.
	Package    string
	Extensible bool
	Root       bool
	Members    []*Symbol
	Bases      []*Symbol
}

// IsMethod reports whether s is callable.
func (s *Symbol) IsMethod() bool {
	return s != nil && s.Kind == KindMethod
}

// IsStatic reports whether s is a package-level member.
func (s *Symbol) IsStatic() bool {
	return s != nil && s.Modifiers.Static
}

// CacheMarker returns the first cache marker attached to s.
func (s *Symbol) CacheMarker() (Marker, bool) {
	if s == nil || len(s.Markers) == 0 {
		return Marker{}, false
	}
	return s.Markers[0], true
}

// ParamTypes returns the structural identities of the parameter list.
func (s *Symbol) ParamTypes() []string {
	ids := make([]string, len(s.Params))
	for i, p := range s.Params {
		ids[i] = p.Type.ID
	}
	return ids
}

// Member returns the own member named name, if any.
func (s *Symbol) Member(name string) *Symbol {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}
