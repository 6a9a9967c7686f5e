package domain

// CacheAccessStrategy is how generated code obtains a cache instance.
type CacheAccessStrategy int

const (
	// AccessNone means no cache can be obtained.
	AccessNone CacheAccessStrategy = iota
	// AccessFromMember reads an existing field, property or zero-argument method.
	AccessFromMember
	// AccessFromSelfFactory uses a generated, lazily initialized holder.
	AccessFromSelfFactory
)

// String returns a readable name of the strategy.
func (s CacheAccessStrategy) String() string {
	switch s {
	case AccessFromMember:
		return "member"
	case AccessFromSelfFactory:
		return "self-factory"
	default:
		return "none"
	}
}

// AccessSource is the member a FromMember strategy reads.
type AccessSource struct {
	Name   string
	Method bool
	Static bool
}

// HelperRef is a resolved key generator or entry enricher.
type HelperRef struct {
	Symbol *Symbol
	Async  bool
	Static bool
}

// Name returns the helper's member name.
func (h *HelperRef) Name() string {
	return h.Symbol.Name
}

// NewHelperRef classifies a validated helper symbol.
func NewHelperRef(s *Symbol) *HelperRef {
	return &HelperRef{
		Symbol: s,
		Async:  s.Type.Kind == TypeDeferred || s.Type.Kind == TypeDeferredBare,
		Static: s.IsStatic(),
	}
}

// ResultCount returns how many values the helper returns.
func (h *HelperRef) ResultCount() int {
	switch h.Symbol.Type.Kind {
	case TypeVoid:
		return 0
	case TypeDeferred:
		return 2
	default:
		return 1
	}
}

// MethodFacts is everything the synthesizer needs about one accepted method.
type MethodFacts struct {
	Method       *Symbol
	Marker       Marker
	KeyGenerator *HelperRef
	Enricher     *HelperRef
	Underlying   Type
	Nullable     bool
	Async        bool
}

// KeyParams returns the parameters contributing to the default key, in declaration order.
func (f *MethodFacts) KeyParams() []Param {
	params := make([]Param, 0, len(f.Method.Params))
	for _, p := range f.Method.Params {
		if f.Marker.Excludes(p.Name) || p.Type.ID == ContextTypeID {
			continue
		}
		params = append(params, p)
	}
	return params
}

// Result returns the value type the wrapper hands back to callers.
func (f *MethodFacts) Result() Type {
	return f.Method.Type.Value()
}

// NeedsAssertion reports whether the cached value is asserted non-null on return.
func (f *MethodFacts) NeedsAssertion() bool {
	return f.Underlying.Reference && !f.Nullable
}

// ClassUnit aggregates the accepted methods of one class.
type ClassUnit struct {
	Class    *Symbol
	Strategy CacheAccessStrategy
	Source   AccessSource
	Methods  []*MethodFacts
}
