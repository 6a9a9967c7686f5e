package gotypes

import (
	"go/types"

	"go.trai.ch/cachegen/internal/core/domain"
)

// Renderer exposes the type renderer to tests.
type Renderer = renderer

// NewRenderer creates a renderer for pkg.
func NewRenderer(pkg *types.Package) *Renderer {
	return newRenderer(pkg)
}

func (r *renderer) Render(t types.Type) domain.Type {
	return r.render(t)
}

func (r *renderer) Result(results *types.Tuple) domain.Type {
	return r.result(results)
}

func (r *renderer) Track(iface *types.Named) {
	r.track(iface)
}
