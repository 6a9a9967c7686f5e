package ports

import (
	"context"
	"io"

	"go.trai.ch/cachegen/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of units of work.
type Telemetry interface {
	// Record starts a vertex named name and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is one unit of recorded work.
type Vertex interface {
	// Stdout returns a writer for the vertex's output stream.
	Stdout() io.Writer
	// Stderr returns a writer for the vertex's error stream.
	Stderr() io.Writer
	// Log records a message at level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex done; a non-nil err marks it failed.
	Complete(err error)
	// Cached marks the vertex as having produced nothing new.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// Internal hides the vertex from user-facing progress output.
	Internal bool
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithInternal marks a vertex as internal.
func WithInternal() VertexOption {
	return func(c *VertexConfig) {
		c.Internal = true
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
