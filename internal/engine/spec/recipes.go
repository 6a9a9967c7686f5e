package spec

import (
	"slices"

	"go.trai.ch/cachegen/internal/core/domain"
)

// TypeOf matches types equal to expected. When exact is false a type also matches if
// expected is in its interface set.
func TypeOf(expected domain.Type, exact bool) TypeSpec {
	return Func[domain.Type](func(t domain.Type) bool {
		if t.Equal(expected) {
			return true
		}
		return !exact && t.Implements(expected.ID)
	})
}

// HasType applies a type predicate to a symbol's declared type.
func HasType(ts TypeSpec) SymbolSpec {
	return Func[*domain.Symbol](func(s *domain.Symbol) bool {
		return s != nil && ts.IsSatisfiedBy(s.Type)
	})
}

// MethodSpec matches callables, optionally by parameter count and result type.
type MethodSpec struct {
	params   int
	counted  bool
	typeSpec TypeSpec
}

// Method matches any callable.
func Method() MethodSpec {
	return MethodSpec{}
}

// MethodWithParameterCount matches callables with exactly n parameters.
func MethodWithParameterCount(n int) MethodSpec {
	return MethodSpec{params: n, counted: true}
}

// WithTypeSpec narrows the match to callables whose result type satisfies ts.
func (m MethodSpec) WithTypeSpec(ts TypeSpec) MethodSpec {
	m.typeSpec = ts
	return m
}

// IsSatisfiedBy implements Specification.
func (m MethodSpec) IsSatisfiedBy(s *domain.Symbol) bool {
	if !s.IsMethod() {
		return false
	}
	if m.counted && len(s.Params) != m.params {
		return false
	}
	if m.typeSpec != nil && !m.typeSpec.IsSatisfiedBy(s.Type) {
		return false
	}
	return true
}

func memberOfType(kind domain.SymbolKind, ts TypeSpec) SymbolSpec {
	return Func[*domain.Symbol](func(s *domain.Symbol) bool {
		return s != nil && s.Kind == kind && ts.IsSatisfiedBy(s.Type)
	})
}

// FieldOfType matches fields whose type satisfies ts.
func FieldOfType(ts TypeSpec) SymbolSpec {
	return memberOfType(domain.KindField, ts)
}

// PropertyOfType matches embedded fields whose type satisfies ts.
func PropertyOfType(ts TypeSpec) SymbolSpec {
	return memberOfType(domain.KindProperty, ts)
}

// ParameterTypeExactly matches callables whose parameter at index has exactly type t.
func ParameterTypeExactly(index int, t domain.Type) SymbolSpec {
	return Func[*domain.Symbol](func(s *domain.Symbol) bool {
		if !s.IsMethod() || index < 0 || index >= len(s.Params) {
			return false
		}
		return s.Params[index].Type.Equal(t)
	})
}

// Named matches members literally named name.
func Named(name string) SymbolSpec {
	return Func[*domain.Symbol](func(s *domain.Symbol) bool {
		return s != nil && s.Name == name
	})
}

// IsPublic matches exported members.
var IsPublic SymbolSpec = Func[*domain.Symbol](func(s *domain.Symbol) bool {
	return s != nil && s.Accessibility == domain.Public
})

// IsInstance matches members reached through a receiver.
var IsInstance SymbolSpec = Func[*domain.Symbol](func(s *domain.Symbol) bool {
	return s != nil && !s.Modifiers.Static
})

// IsStatic matches package-level members.
var IsStatic = Not(IsInstance)

// KeyGeneratorShapeMatch matches callables that return a value and whose parameter types
// equal reference's by position. Parameter names are not compared.
func KeyGeneratorShapeMatch(reference *domain.Symbol) SymbolSpec {
	want := reference.ParamTypes()
	return Func[*domain.Symbol](func(s *domain.Symbol) bool {
		if !s.IsMethod() || s.Type.IsVoid() {
			return false
		}
		return slices.Equal(s.ParamTypes(), want)
	})
}

// CacheSource matches a zero-argument method returning the cache type, or a field or
// property holding it.
func CacheSource(cache domain.Type) SymbolSpec {
	holds := TypeOf(cache, false)
	return Or(
		SymbolSpec(MethodWithParameterCount(0).WithTypeSpec(holds)),
		FieldOfType(holds),
		PropertyOfType(holds),
	)
}

// EnricherShape matches single-parameter callables taking exactly the entry type.
func EnricherShape(entry domain.Type) SymbolSpec {
	return And(
		SymbolSpec(MethodWithParameterCount(1)),
		ParameterTypeExactly(0, entry),
	)
}
