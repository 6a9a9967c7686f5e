package domain

import "slices"

// MarkerDirective is the comment prefix that requests wrapper synthesis.
const MarkerDirective = "//cachegen:cache"

// Marker is the parsed cache directive of a function.
type Marker struct {
	// Name is the generated wrapper name.
	Name string
	// KeyGenerator names a member computing the cache key.
	KeyGenerator string
	// Enricher names a member receiving the cache entry before population.
	Enricher string
	// NoEvict suppresses the eviction function.
	NoEvict bool
	// Hooks requests observation hook call sites.
	Hooks bool
	// ExcludedParams are left out of the default key.
	ExcludedParams []string
	Location       Location
}

// Excludes reports whether the parameter named name is left out of the key.
func (m Marker) Excludes(name string) bool {
	return slices.Contains(m.ExcludedParams, name)
}
