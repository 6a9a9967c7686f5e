package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/cachegen/internal/core/ports/mocks"
	"go.trai.ch/cachegen/internal/engine/orchestrator"
	st "go.trai.ch/cachegen/internal/engine/symboltest"
	"go.uber.org/mock/gomock"
)

func newTelemetry(t *testing.T) *mocks.MockTelemetry {
	t.Helper()
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()
	return tel
}

func marked(class *domain.Symbol) []*domain.Symbol {
	var out []*domain.Symbol
	for _, m := range class.Members {
		if _, ok := m.CacheMarker(); ok {
			out = append(out, m)
		}
	}
	return out
}

func compilation(classes ...*domain.Symbol) *domain.Compilation {
	comp := &domain.Compilation{Package: st.Package, Name: "app", Dir: "/src/app"}
	for _, c := range classes {
		comp.Methods = append(comp.Methods, marked(c)...)
	}
	return comp
}

func TestRun_SortsUnitsByClassName(t *testing.T) {
	zeta := st.NewClass("Zeta").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()
	alpha := st.NewClass("Alpha").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()

	o := orchestrator.New(newTelemetry(t)).WithParallelism(2)
	res, err := o.Run(context.Background(), domain.DefaultConfig("/src"), compilation(zeta, alpha))

	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Units, 2)
	assert.Equal(t, "Alpha", res.Units[0].Class)
	assert.Equal(t, "alpha_cachegen.go", res.Units[0].FileName)
	assert.Equal(t, "Zeta", res.Units[1].Class)

	statuses := o.GetClassStatusMap()
	assert.Equal(t, orchestrator.StatusCompleted, statuses[st.Package+".Alpha"])
	assert.Equal(t, orchestrator.StatusCompleted, statuses[st.Package+".Zeta"])
}

func TestRun_GroupsMethodsOfOneClass(t *testing.T) {
	class := st.NewClass("Repo").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "A"}, "a", st.Int).
		Marked(domain.Marker{Name: "B"}, "b", st.String).
		Build()

	res, err := orchestrator.New(newTelemetry(t)).Run(context.Background(), domain.DefaultConfig("/src"), compilation(class))

	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	src := string(res.Units[0].Source)
	assert.Contains(t, src, "func (r *Repo) A() int {")
	assert.Contains(t, src, "func (r *Repo) B() string {")
}

func TestRun_RejectedClassProducesDiagnosticsOnly(t *testing.T) {
	ok := st.NewClass("Good").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()
	sealed := st.NewClass("Sealed").Sealed().Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()

	o := orchestrator.New(newTelemetry(t))
	res, err := o.Run(context.Background(), domain.DefaultConfig("/src"), compilation(sealed, ok))

	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	assert.Equal(t, "Good", res.Units[0].Class)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.ContainerNotExtensible, res.Diagnostics[0].ID)
	assert.Equal(t, orchestrator.StatusRejected, o.GetClassStatusMap()[st.Package+".Sealed"])
}

func TestRun_MergesOracleDiagnosticsAndSorts(t *testing.T) {
	class := st.NewClass("C").
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()
	comp := compilation(class)
	comp.Diagnostics = []domain.Diagnostic{
		domain.Errorf(domain.InvalidMarker, domain.Location{File: "z.go", Line: 1, Column: 1}, "bad marker"),
	}

	res, err := orchestrator.New(newTelemetry(t)).Run(context.Background(), domain.DefaultConfig("/src"), comp)

	require.NoError(t, err)
	assert.Empty(t, res.Units)
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, domain.CacheSourceRequired, res.Diagnostics[0].ID)
	assert.Equal(t, domain.InvalidMarker, res.Diagnostics[1].ID)
}

func TestRun_AppliesConfig(t *testing.T) {
	class := st.NewClass("C").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()
	cfg := domain.DefaultConfig("/src")
	cfg.EvictSuffix = "Forget"
	cfg.FileSuffix = "_memo.go"
	cfg.Hooks = true

	res, err := orchestrator.New(newTelemetry(t)).Run(context.Background(), cfg, compilation(class))

	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	assert.Equal(t, "c_memo.go", res.Units[0].FileName)
	src := string(res.Units[0].Source)
	assert.Contains(t, src, "func (c *C) GetForget() {")
	assert.Contains(t, src, "type cOnCallingGet interface {")
}

func TestRun_EmptyCompilation(t *testing.T) {
	res, err := orchestrator.New(newTelemetry(t)).Run(context.Background(), domain.DefaultConfig("/src"), compilation())

	require.NoError(t, err)
	assert.Empty(t, res.Units)
	assert.Empty(t, res.Diagnostics)
}

func TestRun_Cancelled(t *testing.T) {
	class := st.NewClass("C").Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.New(newTelemetry(t)).Run(ctx, domain.DefaultConfig("/src"), compilation(class))

	require.ErrorIs(t, err, context.Canceled)
}
