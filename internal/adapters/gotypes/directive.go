package gotypes

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"go.trai.ch/cachegen/internal/core/domain"
)

// directive is a raw cache comment found in a doc comment group.
type directive struct {
	text string
	pos  token.Pos
}

// directives returns the cache directives of doc in source order.
func directives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}
	var out []directive
	for _, c := range doc.List {
		if !isDirective(c.Text) {
			continue
		}
		out = append(out, directive{text: c.Text, pos: c.Pos()})
	}
	return out
}

func isDirective(text string) bool {
	rest, ok := strings.CutPrefix(text, domain.MarkerDirective)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// ParseDirective parses one cache directive line:
//
//	//cachegen:cache <Name> [key=<fn>] [enrich=<fn>] [noevict] [hooks] [nokey=a,b]
//
// The wrapper name may also be given as name=<Name>.
func ParseDirective(text string, loc domain.Location) (domain.Marker, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(text), domain.MarkerDirective)
	if !ok {
		return domain.Marker{}, fmt.Errorf("not a %s directive", domain.MarkerDirective)
	}

	m := domain.Marker{Location: loc}
	seen := make(map[string]bool)
	for i, field := range strings.Fields(rest) {
		key, value, hasValue := strings.Cut(field, "=")
		if !hasValue && i == 0 && isIdentifier(field) && !isFlag(field) {
			key, value, hasValue = "name", field, true
		}
		if seen[key] {
			return domain.Marker{}, fmt.Errorf("option %q given more than once", key)
		}
		seen[key] = true

		switch key {
		case "name", "key", "enrich":
			if !hasValue || !isIdentifier(value) {
				return domain.Marker{}, fmt.Errorf("option %q needs an identifier, got %q", key, value)
			}
			switch key {
			case "name":
				m.Name = value
			case "key":
				m.KeyGenerator = value
			default:
				m.Enricher = value
			}
		case "noevict", "hooks":
			if hasValue {
				return domain.Marker{}, fmt.Errorf("option %q takes no value", key)
			}
			if key == "noevict" {
				m.NoEvict = true
			} else {
				m.Hooks = true
			}
		case "nokey":
			if !hasValue || value == "" {
				return domain.Marker{}, fmt.Errorf("option %q needs a parameter list", key)
			}
			for p := range strings.SplitSeq(value, ",") {
				if !isIdentifier(p) {
					return domain.Marker{}, fmt.Errorf("invalid parameter name %q in nokey", p)
				}
				if !slices.Contains(m.ExcludedParams, p) {
					m.ExcludedParams = append(m.ExcludedParams, p)
				}
			}
		default:
			return domain.Marker{}, fmt.Errorf("unknown option %q", field)
		}
	}

	if m.Name == "" {
		return domain.Marker{}, errors.New("missing wrapper name")
	}
	if !token.IsExported(m.Name) {
		return domain.Marker{}, fmt.Errorf("wrapper name %q must be exported", m.Name)
	}
	return m, nil
}

func isFlag(s string) bool {
	return s == "noevict" || s == "hooks"
}

func isIdentifier(s string) bool {
	return token.IsIdentifier(s)
}
