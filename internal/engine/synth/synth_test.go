package synth_test

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/engine/evaluator"
	"go.trai.ch/cachegen/internal/engine/synth"
	st "go.trai.ch/cachegen/internal/engine/symboltest"
)

func render(t *testing.T, class *domain.Symbol, referencesCache bool, opts ...evaluator.Option) string {
	t.Helper()

	var methods []*domain.Symbol
	for _, m := range class.Members {
		if _, ok := m.CacheMarker(); ok {
			methods = append(methods, m)
		}
	}

	unit, diags := evaluator.New(opts...).Evaluate(class, methods, referencesCache)
	require.Empty(t, diags)
	require.NotNil(t, unit)

	out, err := synth.New().Build(unit, "app", "/src/app")
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), out.FileName, out.Source, parser.AllErrors)
	require.NoError(t, err, string(out.Source))

	return string(out.Source)
}

func TestBuild_FieldSourceSyncWrapper(t *testing.T) {
	class := st.NewClass("C").
		Field("_cache", st.Cache).
		Marked(domain.Marker{Name: "F"}, "f", st.Int, st.P("a", st.Int)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, synth.Header)
	assert.Contains(t, src, "package app")
	assert.Contains(t, src, `"go.trai.ch/cachegen/pkg/memo"`)
	assert.Contains(t, src, "func (c *C) F(a int) int {")
	assert.Contains(t, src, `_key_ := memo.Key{Method: "f", Class: "C", Args: []any{a}}`)
	assert.Contains(t, src, "_value_ := c._cache.GetOrCreate(_key_, func(_entry_ *memo.Entry) any {")
	assert.Contains(t, src, "return c.f(a)")
	assert.Contains(t, src, "_result_, _ := _value_.(int)")
	assert.Contains(t, src, "func (c *C) F_Evict(a int) {")
	assert.Contains(t, src, "c._cache.Remove(_key_)")
	assert.NotContains(t, src, "sync.OnceValue")
	assert.NotContains(t, src, `"context"`)
}

func TestBuild_Golden(t *testing.T) {
	tests := []struct {
		name            string
		class           *domain.Symbol
		referencesCache bool
	}{
		{
			name: "field_sync_wrapper",
			class: st.NewClass("C").
				Field("_cache", st.Cache).
				Marked(domain.Marker{Name: "F"}, "f", st.Int, st.P("a", st.Int)).
				Build(),
		},
		{
			name: "self_factory_async_hooks",
			class: st.NewClass("Sessions").
				Marked(domain.Marker{Name: "Load", Hooks: true}, "load", domain.DeferredOf(st.String),
					st.P("ctx", st.Context), st.P("id", st.Int)).
				Build(),
			referencesCache: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := render(t, tt.class, tt.referencesCache)
			goldie.New(t).Assert(t, tt.name, []byte(src))
		})
	}
}

func TestBuild_FileName(t *testing.T) {
	class := st.NewClass("UserService").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).
		Build()

	unit, _ := evaluator.New().Evaluate(class, []*domain.Symbol{class.Member("get")}, false)
	out, err := synth.New(synth.WithFileSuffix(".gen.go")).Build(unit, "app", "/src/app")

	require.NoError(t, err)
	assert.Equal(t, "user_service.gen.go", out.FileName)
	assert.Equal(t, "/src/app/user_service.gen.go", out.Path())
	assert.Equal(t, "UserService", out.Class)
}

func TestBuild_AsyncNullableHasNoAssertion(t *testing.T) {
	class := st.NewClass("G").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Greeting"}, "g", domain.DeferredOf(domain.OptionalOf(st.String)), st.P("ctx", st.Context)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "func (g *G) Greeting(ctx context.Context) (*string, error) {")
	assert.Contains(t, src, `_key_ := memo.Key{Method: "g", Class: "G"}`)
	assert.Contains(t, src, "_value_, _err_ := g.cache.GetOrCreateContext(ctx, _key_, func(_ context.Context, _entry_ *memo.Entry) (any, error) {")
	assert.Contains(t, src, "return g.g(ctx)")
	assert.Contains(t, src, "var _zero_ *string")
	assert.Contains(t, src, "_result_, _ := _value_.(*string)")
	assert.NotContains(t, src, "return _value_.(*string)")
	assert.Contains(t, src, "func (g *G) Greeting_Evict(ctx context.Context) {")
}

func TestBuild_AsyncWithoutContextUsesBackground(t *testing.T) {
	class := st.NewClass("S").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Count"}, "count", domain.DeferredOf(st.Int)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "GetOrCreateContext(context.Background(), _key_,")
}

func TestBuild_NonNullableReferenceAsserts(t *testing.T) {
	class := st.NewClass("S").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Names"}, "names", st.Strings).
		Marked(domain.Marker{Name: "Tags"}, "tags", domain.DeferredOf(st.Strings)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "return _value_.([]string)\n")
	assert.Contains(t, src, "return _value_.([]string), nil")
	assert.NotContains(t, src, "_result_, _ := _value_.([]string)")
}

func TestBuild_SelfFactory(t *testing.T) {
	class := st.NewClass("Repo").
		Marked(domain.Marker{Name: "Find"}, "find", st.String, st.P("id", st.Int)).
		Build()

	src := render(t, class, true)

	assert.Contains(t, src, `"sync"`)
	assert.Contains(t, src, "var repoCacheInit = sync.OnceValue(func() memo.Cache {")
	assert.Contains(t, src, "return memo.NewDefault()")
	assert.Contains(t, src, "repoCacheInit().GetOrCreate(_key_,")
	assert.Contains(t, src, "repoCacheInit().Remove(_key_)")
}

func TestBuild_MethodAndStaticSources(t *testing.T) {
	method := st.NewClass("A").
		Method("Cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).
		Build()
	static := st.NewClass("B").
		Static("shared", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).
		Build()
	property := st.NewClass("D").
		Property("Cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int).
		Build()

	assert.Contains(t, render(t, method, false), "a.Cache().GetOrCreate(")
	assert.Contains(t, render(t, static, false), "shared().GetOrCreate(")
	assert.Contains(t, render(t, property, false), "d.Cache.GetOrCreate(")
}

func TestBuild_ExcludedParamsStayInSignature(t *testing.T) {
	class := st.NewClass("S").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Load", ExcludedParams: []string{"trace"}}, "load", domain.DeferredOf(st.String),
			st.P("ctx", st.Context), st.P("id", st.Int), st.P("trace", st.String)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "func (s *S) Load(ctx context.Context, id int, trace string) (string, error) {")
	assert.Contains(t, src, `_key_ := memo.Key{Method: "load", Class: "S", Args: []any{id}}`)
	assert.Contains(t, src, "return s.load(ctx, id, trace)")
}

func TestBuild_KeyGeneratorInvocations(t *testing.T) {
	params := []domain.Param{st.P("ctx", st.Context), st.P("id", st.Int)}

	tests := []struct {
		name     string
		result   domain.Type
		keygen   domain.Type
		contains []string
		absent   []string
	}{
		{
			name:   "async caller, async generator",
			result: domain.DeferredOf(st.String),
			keygen: domain.DeferredOf(st.String),
			contains: []string{
				"_key_, _err_ := s.key(ctx, id)",
				"var _zero_ string",
				"return _zero_, _err_",
				"panic(_err_)",
			},
		},
		{
			name:     "async caller, sync generator",
			result:   domain.DeferredOf(st.String),
			keygen:   st.String,
			contains: []string{"_key_ := s.key(ctx, id)"},
			absent:   []string{"panic(", "_key_, _err_"},
		},
		{
			name:     "sync caller, async generator",
			result:   st.String,
			keygen:   domain.DeferredOf(st.String),
			contains: []string{"_key_, _err_ := s.key(ctx, id)", "panic(_err_)"},
			absent:   []string{"return _zero_"},
		},
		{
			name:     "sync caller, sync generator",
			result:   st.String,
			keygen:   st.String,
			contains: []string{"_key_ := s.key(ctx, id)"},
			absent:   []string{"_err_"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := st.NewClass("S").
				Field("cache", st.Cache).
				Method("key", tt.keygen, st.P("c", st.Context), st.P("n", st.Int)).
				Marked(domain.Marker{Name: "Get", KeyGenerator: "key"}, "get", tt.result, params...).
				Build()

			src := render(t, class, false)

			for _, s := range tt.contains {
				assert.Contains(t, src, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, src, s)
			}
			assert.NotContains(t, src, "memo.Key{")
		})
	}
}

func TestBuild_StaticKeyGenerator(t *testing.T) {
	class := st.NewClass("S").
		Field("cache", st.Cache).
		Static("userKey", st.String, st.P("id", st.Int)).
		Marked(domain.Marker{Name: "Get", KeyGenerator: "userKey"}, "get", st.String, st.P("id", st.Int)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "_key_ := userKey(id)")
}

func TestBuild_Enricher(t *testing.T) {
	tests := []struct {
		name     string
		result   domain.Type
		enricher domain.Type
		want     []string
	}{
		{
			name:     "sync caller, sync enricher",
			result:   st.Int,
			enricher: domain.VoidType(),
			want:     []string{"s.ttl(_entry_)\n"},
		},
		{
			name:     "sync caller, async enricher",
			result:   st.Int,
			enricher: domain.ErrorType(),
			want:     []string{"if _err_ := s.ttl(_entry_); _err_ != nil {", "panic(_err_)"},
		},
		{
			name:     "async caller, async enricher",
			result:   domain.DeferredOf(st.Int),
			enricher: domain.ErrorType(),
			want:     []string{"if _err_ := s.ttl(_entry_); _err_ != nil {", "return nil, _err_"},
		},
		{
			name:     "async caller, async enricher with value",
			result:   domain.DeferredOf(st.Int),
			enricher: domain.DeferredOf(st.Bool),
			want:     []string{"if _, _err_ := s.ttl(_entry_); _err_ != nil {"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := st.NewClass("S").
				Field("cache", st.Cache).
				Method("ttl", tt.enricher, st.P("e", st.Entry)).
				Marked(domain.Marker{Name: "Get", Enricher: "ttl"}, "get", tt.result).
				Build()

			src := render(t, class, false)

			for _, s := range tt.want {
				assert.Contains(t, src, s)
			}
		})
	}
}

func TestBuild_Hooks(t *testing.T) {
	class := st.NewClass("C").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "F", Hooks: true}, "f", st.Int, st.P("a", st.Int)).
		Marked(domain.Marker{Name: "G", Hooks: true}, "g", domain.DeferredOf(st.String), st.P("ctx", st.Context)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "type cOnCallingF interface {")
	assert.Contains(t, src, "onCallingF(a int)")
	assert.Contains(t, src, "type cOnCalledF interface {")
	assert.Contains(t, src, "onCalledF(a int, result int)")
	assert.Contains(t, src, "if _hook_, _ok_ := any(c).(cOnCallingF); _ok_ {")
	assert.Contains(t, src, "_hook_.onCallingF(a)")
	assert.Contains(t, src, "_result_ := c.f(a)")
	assert.Contains(t, src, "_hook_.onCalledF(a, _result_)")

	assert.Contains(t, src, "onCalledG(ctx context.Context, result string)")
	assert.Contains(t, src, "_result_, _err_ := c.g(ctx)")
	assert.Contains(t, src, "return _result_, nil")
}

func TestBuild_HooksWithoutParams(t *testing.T) {
	class := st.NewClass("C").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "F"}, "f", st.Int).
		Build()

	src := render(t, class, false, evaluator.WithHooks(true))

	assert.Contains(t, src, "onCallingF()")
	assert.Contains(t, src, "onCalledF(result int)")
	assert.Contains(t, src, "_hook_.onCalledF(_result_)")
}

func TestBuild_NoEvict(t *testing.T) {
	class := st.NewClass("C").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "F", NoEvict: true}, "f", st.Int).
		Build()

	src := render(t, class, false)

	assert.NotContains(t, src, "Evict")
	assert.NotContains(t, src, "Remove(")
}

func TestBuild_ForeignTypesImported(t *testing.T) {
	user := domain.NamedType("example.com/models.User", "models.User", false,
		domain.Import{Path: "example.com/models", Name: "models"})
	yamlNode := domain.NamedType("gopkg.in/yaml.v3.Node", "yaml.Node", false,
		domain.Import{Path: "gopkg.in/yaml.v3", Name: "yaml"})
	class := st.NewClass("C").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "User"}, "user", domain.DeferredOf(domain.OptionalOf(user)), st.P("n", yamlNode)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, `"example.com/models"`)
	assert.Contains(t, src, `yaml "gopkg.in/yaml.v3"`)
	assert.Contains(t, src, "(*models.User, error)")
}

func TestBuild_ValueReceiverAndVariadic(t *testing.T) {
	m := st.Func("sum", st.Int, domain.Param{Name: "xs", Type: domain.NamedType("[]int", "[]int", true), Variadic: true})
	m.Receiver = domain.Receiver{Name: "_"}
	class := st.NewClass("Calc").Field("cache", st.Cache).Add(m).Build()
	st.Mark(m, domain.Marker{Name: "Sum"})

	src := render(t, class, false)

	assert.Contains(t, src, "func (calc Calc) Sum(xs ...int) int {")
	assert.Contains(t, src, "return calc.sum(xs...)")
}

func TestInvocationStrategy(t *testing.T) {
	assert.Equal(t, synth.Direct, synth.InvocationStrategy(false, false))
	assert.Equal(t, synth.BlockingWait, synth.InvocationStrategy(false, true))
	assert.Equal(t, synth.Direct, synth.InvocationStrategy(true, false))
	assert.Equal(t, synth.Await, synth.InvocationStrategy(true, true))
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"C":           "c",
		"UserService": "user_service",
		"HTTPServer":  "http_server",
		"repo2Cache":  "repo2_cache",
		"userID":      "user_id",
	}
	for in, want := range cases {
		assert.Equal(t, want, synth.SnakeCase(in), in)
	}
}

func TestBuild_ParametersShadowingImportsAreRenamed(t *testing.T) {
	class := st.NewClass("Notes").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Title"}, "title", domain.DeferredOf(st.String),
			st.P("context", st.Context), st.P("memo", st.String), st.P("memo_", st.Int)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "func (n *Notes) Title(context_ context.Context, memo__ string, memo_ int) (string, error) {")
	assert.Contains(t, src, `_key_ := memo.Key{Method: "title", Class: "Notes", Args: []any{memo__, memo_}}`)
	assert.Contains(t, src, "n.cache.GetOrCreateContext(context_, _key_,")
	assert.Contains(t, src, "return n.title(context_, memo__, memo_)")
	assert.Contains(t, src, "func (n *Notes) Title_Evict(context_ context.Context, memo__ string, memo_ int) {")
}

func TestBuild_ParametersShadowingTypesAndHelpersAreRenamed(t *testing.T) {
	user := domain.NamedType("example.com/app.User", "User", true)
	class := st.NewClass("S").
		Field("cache", st.Cache).
		Static("userKey", st.String, st.P("id", st.Int)).
		Marked(domain.Marker{Name: "Get", KeyGenerator: "userKey"}, "get", user, st.P("userKey", st.Int)).
		Marked(domain.Marker{Name: "Find"}, "find", user, st.P("User", st.Int)).
		Build()

	src := render(t, class, false)

	assert.Contains(t, src, "func (s *S) Get(userKey_ int) User {")
	assert.Contains(t, src, "_key_ := userKey(userKey_)")
	assert.Contains(t, src, "func (s *S) Find(User_ int) User {")
	assert.Contains(t, src, "return _value_.(User)")
}

func TestBuild_ReceiverShadowingImportIsRenamed(t *testing.T) {
	class := st.NewClass("Memo").
		Field("cache", st.Cache).
		Marked(domain.Marker{Name: "Get"}, "get", st.Int, st.P("id", st.Int)).
		Build()
	class.Members[len(class.Members)-1].Receiver = domain.Receiver{Pointer: true}

	src := render(t, class, false)

	assert.Contains(t, src, "func (_recv_ *Memo) Get(id int) int {")
	assert.Contains(t, src, `_key_ := memo.Key{Method: "get", Class: "Memo", Args: []any{id}}`)
}
