package gotypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/adapters/gotypes"
	"go.trai.ch/cachegen/internal/core/domain"
)

func TestParseDirective(t *testing.T) {
	t.Parallel()

	loc := domain.Location{File: "app.go", Line: 3, Column: 1}
	tests := []struct {
		name string
		text string
		want domain.Marker
	}{
		{
			name: "positional name",
			text: "//cachegen:cache GetUser",
			want: domain.Marker{Name: "GetUser", Location: loc},
		},
		{
			name: "name option",
			text: "//cachegen:cache name=GetUser",
			want: domain.Marker{Name: "GetUser", Location: loc},
		},
		{
			name: "all options",
			text: "//cachegen:cache GetUser key=userKey enrich=enrich noevict hooks nokey=trace,span",
			want: domain.Marker{
				Name:           "GetUser",
				KeyGenerator:   "userKey",
				Enricher:       "enrich",
				NoEvict:        true,
				Hooks:          true,
				ExcludedParams: []string{"trace", "span"},
				Location:       loc,
			},
		},
		{
			name: "duplicate nokey names collapse",
			text: "//cachegen:cache Get nokey=a,a",
			want: domain.Marker{Name: "Get", ExcludedParams: []string{"a"}, Location: loc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := gotypes.ParseDirective(tt.text, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirective_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "missing name", text: "//cachegen:cache", wantErr: "missing wrapper name"},
		{name: "flag only", text: "//cachegen:cache hooks", wantErr: "missing wrapper name"},
		{name: "unknown option", text: "//cachegen:cache Get ttl=5", wantErr: `unknown option "ttl=5"`},
		{name: "bad identifier", text: "//cachegen:cache name=1abc", wantErr: `needs an identifier`},
		{name: "repeated option", text: "//cachegen:cache Get hooks hooks", wantErr: `given more than once`},
		{name: "flag with value", text: "//cachegen:cache Get noevict=true", wantErr: `takes no value`},
		{name: "empty nokey", text: "//cachegen:cache Get nokey=", wantErr: `needs a parameter list`},
		{name: "bad nokey name", text: "//cachegen:cache Get nokey=a,,b", wantErr: `invalid parameter name`},
		{name: "unexported name", text: "//cachegen:cache get2", wantErr: `wrapper name "get2" must be exported`},
		{name: "unexported name option", text: "//cachegen:cache name=_Get", wantErr: `must be exported`},
		{name: "not a directive", text: "// plain comment", wantErr: "not a //cachegen:cache directive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := gotypes.ParseDirective(tt.text, domain.Location{})
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
