// Package telemetry implements ports.Telemetry on a progrock recording.
package telemetry

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/cachegen/internal/core/ports"
)

// Recorder implements ports.Telemetry. Every Record call opens a progrock
// vertex whose digest is derived from its name.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder writing to a fresh Collector.
func New() *Recorder {
	return NewRecorder(NewCollector())
}

// NewRecorder creates a Recorder on w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex named name. Internal vertices are still recorded
// but left out of Collector snapshots.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := digest.FromString(name)
	if c, ok := r.w.(*Collector); ok && cfg.Internal {
		c.hide(d.String())
	}

	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Writer returns the progrock writer the recording goes to.
func (r *Recorder) Writer() progrock.Writer {
	return r.w
}

// Close closes the underlying writer.
func (r *Recorder) Close() error {
	return r.w.Close()
}
