package domain

import "slices"

// TypeKind is the shape of a type as seen by the engine.
type TypeKind int

const (
	// TypeVoid is the result shape of a function without results.
	TypeVoid TypeKind = iota
	// TypeNamed is any plain type: basic, named, composite.
	TypeNamed
	// TypeDeferred is a (T, error) result pair.
	TypeDeferred
	// TypeDeferredBare is a lone error result.
	TypeDeferredBare
	// TypeOptional is a pointer, the nullable wrapper of its element.
	TypeOptional
	// TypeTuple is any other multi-value result.
	TypeTuple
)

// Import is a package referenced by a rendered type expression.
type Import struct {
	Path string
	Name string
}

// Type is an immutable description of a declared type.
type Type struct {
	Kind TypeKind
	// ID is the structural identity; two types are equal when their IDs are.
	ID string
	// Expr is the Go expression of the type, qualified relative to the generated package.
	Expr string
	// Elem is the wrapped type of deferred and optional types.
	Elem *Type
	// Reference is set for interface, map, slice, chan and func types.
	Reference bool
	// Imports lists the packages Expr refers to.
	Imports []Import
	// Interfaces holds the IDs of the interfaces the type implements.
	Interfaces []string
}

// VoidType is the result of a function without results.
func VoidType() Type {
	return Type{Kind: TypeVoid, ID: "void"}
}

// ErrorType is the result of a function returning only an error.
func ErrorType() Type {
	return Type{Kind: TypeDeferredBare, ID: "error", Expr: "error", Reference: true}
}

// NamedType builds a plain type.
func NamedType(id, expr string, reference bool, imports ...Import) Type {
	return Type{Kind: TypeNamed, ID: id, Expr: expr, Reference: reference, Imports: imports}
}

// OptionalOf wraps elem in a pointer.
func OptionalOf(elem Type) Type {
	e := elem
	return Type{
		Kind:    TypeOptional,
		ID:      "*" + elem.ID,
		Expr:    "*" + elem.Expr,
		Elem:    &e,
		Imports: elem.Imports,
	}
}

// DeferredOf builds the (elem, error) result pair.
func DeferredOf(elem Type) Type {
	e := elem
	return Type{
		Kind:    TypeDeferred,
		ID:      "(" + elem.ID + ", error)",
		Expr:    "(" + elem.Expr + ", error)",
		Elem:    &e,
		Imports: elem.Imports,
	}
}

// WithInterfaces returns a copy of t implementing the given interface IDs.
func (t Type) WithInterfaces(ids ...string) Type {
	t.Interfaces = append(slices.Clone(t.Interfaces), ids...)
	return t
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	return t.ID == o.ID
}

// Implements reports whether the interface id is in the type's interface set.
func (t Type) Implements(id string) bool {
	return slices.Contains(t.Interfaces, id)
}

// IsVoid reports whether the result shape carries nothing to cache.
func (t Type) IsVoid() bool {
	return t.Kind == TypeVoid || t.Kind == TypeDeferredBare
}

// IsDeferred reports the async-with-result shape.
func (t Type) IsDeferred() bool {
	return t.Kind == TypeDeferred
}

// Value returns the value part of a result shape: the element of a deferred pair, t otherwise.
func (t Type) Value() Type {
	if t.Kind == TypeDeferred && t.Elem != nil {
		return *t.Elem
	}
	return t
}

// Underlying strips deferred and optional wrappers recursively.
func (t Type) Underlying() Type {
	cur := t
	for (cur.Kind == TypeDeferred || cur.Kind == TypeOptional) && cur.Elem != nil {
		cur = *cur.Elem
	}
	return cur
}

// Nullable reports whether the value of t may legitimately be absent.
// For a deferred pair the element decides.
func (t Type) Nullable() bool {
	switch t.Kind {
	case TypeOptional:
		return true
	case TypeDeferred:
		if t.Elem == nil {
			return false
		}
		return t.Elem.Nullable()
	default:
		return false
	}
}
