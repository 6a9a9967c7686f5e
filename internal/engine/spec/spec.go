// Package spec provides composable predicates over symbols and types.
package spec

import "go.trai.ch/cachegen/internal/core/domain"

// Specification is a pure predicate.
type Specification[T any] interface {
	IsSatisfiedBy(v T) bool
}

// Func adapts a plain function to a Specification.
type Func[T any] func(v T) bool

// IsSatisfiedBy calls f.
func (f Func[T]) IsSatisfiedBy(v T) bool {
	return f(v)
}

type and[T any] struct {
	specs []Specification[T]
}

func (a and[T]) IsSatisfiedBy(v T) bool {
	for _, s := range a.specs {
		if !s.IsSatisfiedBy(v) {
			return false
		}
	}
	return true
}

// And is satisfied when every spec is, evaluated left to right with short-circuit.
func And[T any](specs ...Specification[T]) Specification[T] {
	return and[T]{specs: specs}
}

type or[T any] struct {
	specs []Specification[T]
}

func (o or[T]) IsSatisfiedBy(v T) bool {
	for _, s := range o.specs {
		if s.IsSatisfiedBy(v) {
			return true
		}
	}
	return false
}

// Or is satisfied when any spec is.
func Or[T any](specs ...Specification[T]) Specification[T] {
	return or[T]{specs: specs}
}

type not[T any] struct {
	spec Specification[T]
}

func (n not[T]) IsSatisfiedBy(v T) bool {
	return !n.spec.IsSatisfiedBy(v)
}

// Not negates spec.
func Not[T any](spec Specification[T]) Specification[T] {
	return not[T]{spec: spec}
}

// SymbolSpec is a predicate over symbols.
type SymbolSpec = Specification[*domain.Symbol]

// TypeSpec is a predicate over types.
type TypeSpec = Specification[domain.Type]
