// Package synth renders the generated wrapper, eviction and hook declarations of a class.
package synth

import (
	"bytes"
	"go/format"

	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Header marks generated files.
const Header = domain.GeneratedHeader

// Synthesizer builds one source unit per class.
type Synthesizer struct {
	evictSuffix string
	fileSuffix  string
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithEvictSuffix sets the suffix of eviction function names.
func WithEvictSuffix(suffix string) Option {
	return func(s *Synthesizer) {
		if suffix != "" {
			s.evictSuffix = suffix
		}
	}
}

// WithFileSuffix sets the suffix of generated file names.
func WithFileSuffix(suffix string) Option {
	return func(s *Synthesizer) {
		if suffix != "" {
			s.fileSuffix = suffix
		}
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		evictSuffix: domain.DefaultEvictSuffix,
		fileSuffix:  domain.DefaultFileSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileName returns the generated file name of a class.
func (s *Synthesizer) FileName(class string) string {
	return SnakeCase(class) + s.fileSuffix
}

// Build renders the unit of an accepted class living in package pkg.
func (s *Synthesizer) Build(unit *domain.ClassUnit, pkg, dir string) (domain.SourceUnit, error) {
	b := &builder{
		unit:        unit,
		evictSuffix: s.evictSuffix,
		imports:     make(map[string]string),
	}

	var buf bytes.Buffer
	if err := unitTpl.Execute(&buf, b.view(Header, pkg)); err != nil {
		return domain.SourceUnit{}, zerr.With(zerr.Wrap(err, domain.ErrRenderTemplate.Error()), "class", unit.Class.Name)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return domain.SourceUnit{}, zerr.With(zerr.Wrap(err, domain.ErrFormatGenerated.Error()), "class", unit.Class.Name)
	}

	return domain.SourceUnit{
		Class:    unit.Class.Name,
		Package:  pkg,
		Dir:      dir,
		FileName: s.FileName(unit.Class.Name),
		Source:   src,
	}, nil
}
