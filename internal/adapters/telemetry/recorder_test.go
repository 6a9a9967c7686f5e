package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/adapters/telemetry"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
)

func TestRecorder_RecordsVertices(t *testing.T) {
	collector := telemetry.NewCollector()
	rec := telemetry.NewRecorder(collector)

	ctx, ok := rec.Record(t.Context(), "app.UserService")
	ok.Log(domain.LogLevelInfo, "wrote user_service_cachegen.go")
	ok.Complete(nil)

	fromCtx, found := ports.VertexFromContext(ctx)
	require.True(t, found)
	assert.Same(t, ok, fromCtx)

	_, bad := rec.Record(t.Context(), "app.Sealed")
	bad.Log(domain.LogLevelError, "class is sealed")
	bad.Complete(errors.New("rejected"))

	_, unchanged := rec.Record(t.Context(), "app.Cart")
	unchanged.Cached()
	unchanged.Complete(nil)

	vertices := collector.Vertices()
	require.Len(t, vertices, 3)

	assert.Equal(t, "app.UserService", vertices[0].Name)
	assert.True(t, vertices[0].Completed)
	assert.False(t, vertices[0].Failed())
	assert.Contains(t, vertices[0].Output, "[INFO] wrote user_service_cachegen.go")

	assert.Equal(t, "rejected", vertices[1].Error)
	assert.Contains(t, vertices[1].Output, "[ERROR] class is sealed")

	assert.True(t, vertices[2].Cached)

	assert.Equal(t, []string{"app.Sealed"}, collector.Failures())
}

func TestRecorder_InternalVerticesHidden(t *testing.T) {
	collector := telemetry.NewCollector()
	rec := telemetry.NewRecorder(collector)

	_, v := rec.Record(t.Context(), "load packages", ports.WithInternal())
	v.Complete(nil)
	_, w := rec.Record(t.Context(), "app.UserService")
	w.Complete(nil)

	vertices := collector.Vertices()
	require.Len(t, vertices, 1)
	assert.Equal(t, "app.UserService", vertices[0].Name)
}

func TestRecorder_Close(t *testing.T) {
	collector := telemetry.NewCollector()
	rec := telemetry.NewRecorder(collector)

	require.NoError(t, rec.Close())
	assert.True(t, collector.Closed())
	assert.Same(t, collector, rec.Writer())
}

func TestNew(t *testing.T) {
	rec := telemetry.New()
	require.NotNil(t, rec)

	_, ok := rec.Writer().(*telemetry.Collector)
	assert.True(t, ok)
}
