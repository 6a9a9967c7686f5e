package synth

import "text/template"

var unitTpl = template.Must(template.New("unit").Parse(`{{.Header}}

package {{.Package}}

import (
{{- range .Std}}
	{{.}}
{{- end}}
{{- if .Others}}
{{range .Others}}
	{{.}}
{{- end}}
{{- end}}
)
{{- if .Holder}}

// {{.Holder}} builds the cache shared by the generated methods of {{.Class}} on first use.
var {{.Holder}} = sync.OnceValue(func() memo.Cache {
	return memo.NewDefault()
})
{{- end}}
{{- range .Methods}}
{{- if .Hooks}}

// {{.CallingIface}} is implemented by {{$.Class}} to observe calls to {{.Impl}} on a cache miss.
type {{.CallingIface}} interface {
	{{.CallingHook}}({{.Params}})
}

// {{.CalledIface}} is implemented by {{$.Class}} to observe results of {{.Impl}} on a cache miss.
type {{.CalledIface}} interface {
	{{.CalledHook}}({{.CalledParams}})
}
{{- end}}

// {{.Name}} returns the cached result of {{.Impl}}.
func ({{.Receiver}}) {{.Name}}({{.Params}}) {{.Results}} {
{{- range .WrapperKey}}
	{{.}}
{{- end}}
{{- if .Async}}
	_value_, _err_ := {{.Cache}}.GetOrCreateContext({{.Ctx}}, _key_, func(_ context.Context, _entry_ *memo.Entry) (any, error) {
{{- range .Enrich}}
		{{.}}
{{- end}}
{{- if .Hooks}}
		{{- template "calling" .}}
		_result_, _err_ := {{.Call}}
		if _err_ != nil {
			return nil, _err_
		}
		{{- template "called" .}}
		return _result_, nil
{{- else}}
		return {{.Call}}
{{- end}}
	})
	if _err_ != nil {
		var _zero_ {{.Result}}
		return _zero_, _err_
	}
{{- if .Assert}}
	return _value_.({{.Result}}), nil
{{- else}}
	_result_, _ := _value_.({{.Result}})
	return _result_, nil
{{- end}}
{{- else}}
	_value_ := {{.Cache}}.GetOrCreate(_key_, func(_entry_ *memo.Entry) any {
{{- range .Enrich}}
		{{.}}
{{- end}}
{{- if .Hooks}}
		{{- template "calling" .}}
		_result_ := {{.Call}}
		{{- template "called" .}}
		return _result_
{{- else}}
		return {{.Call}}
{{- end}}
	})
{{- if .Assert}}
	return _value_.({{.Result}})
{{- else}}
	_result_, _ := _value_.({{.Result}})
	return _result_
{{- end}}
{{- end}}
}
{{- if .EvictName}}

// {{.EvictName}} removes the cached result of {{.Name}}.
func ({{.Receiver}}) {{.EvictName}}({{.Params}}) {
{{- range .EvictKey}}
	{{.}}
{{- end}}
	{{.Cache}}.Remove(_key_)
}
{{- end}}
{{- end}}
{{define "calling"}}
		if _hook_, _ok_ := any({{.Recv}}).({{.CallingIface}}); _ok_ {
			_hook_.{{.CallingHook}}({{.HookArgs}})
		}
{{- end}}
{{define "called"}}
		if _hook_, _ok_ := any({{.Recv}}).({{.CalledIface}}); _ok_ {
			_hook_.{{.CalledHook}}({{.HookArgs}}{{if .HookArgs}}, {{end}}_result_)
		}
{{- end}}
`))
