package resolve

import (
	"fmt"

	"github.com/routedoc/routedoc/internal/annotations"
	"github.com/routedoc/routedoc/internal/source"
)

// fakeScope is a hand-built scope for resolver tests, so scope chains can
// be constructed without parsing source files.
type fakeScope struct {
	name       string
	mappings   []*annotations.Mapping
	deprecated bool
	parent     source.Scope
}

func (s *fakeScope) Name() string { return s.name }

func (s *fakeScope) Mapping(kind annotations.Kind) *annotations.Mapping {
	for _, m := range s.mappings {
		if m.Kind == kind {
			return m
		}
	}
	return nil
}

func (s *fakeScope) Kinds() []annotations.Kind {
	var out []annotations.Kind
	for _, kind := range annotations.Recognized {
		if s.Mapping(kind) != nil {
			out = append(out, kind)
		}
	}
	return out
}

func (s *fakeScope) Enclosing() source.Scope { return s.parent }

func (s *fakeScope) Deprecated() bool { return s.deprecated }

type fakeMember struct {
	fakeScope
	declaring string
	params    []source.FormalParam
	ret       source.TypeRef
	queries   []*annotations.QueryMarker
	bodies    []*annotations.BodyMarker
}

func (m *fakeMember) DeclaringType() string { return m.declaring }

func (m *fakeMember) Params() []source.FormalParam { return m.params }

func (m *fakeMember) ReturnType() source.TypeRef { return m.ret }

func (m *fakeMember) Queries() []*annotations.QueryMarker { return m.queries }

func (m *fakeMember) Bodies() []*annotations.BodyMarker { return m.bodies }

type fakeParam struct {
	name string
	fqn  string
	ref  source.TypeRef
}

func (p *fakeParam) Name() string { return p.name }

func (p *fakeParam) TypeFQN() string { return p.fqn }

func (p *fakeParam) Type() source.TypeRef { return p.ref }

type fakeType struct {
	fqn    string
	opaque bool
	fields []source.Field
	super  source.TypeRef
}

func (t *fakeType) FQN() string { return t.fqn }

func (t *fakeType) Nominal() bool { return !t.opaque }

func (t *fakeType) Fields() []source.Field { return t.fields }

func (t *fakeType) Superclass() source.TypeRef { return t.super }

// fakeReporter records formatted warnings for assertions.
type fakeReporter struct {
	warnings []string
}

func (r *fakeReporter) Warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func mappingOf(kind annotations.Kind) *annotations.Mapping {
	return &annotations.Mapping{Kind: kind}
}

func pathMapping(kind annotations.Kind, path string) *annotations.Mapping {
	return &annotations.Mapping{Kind: kind, Path: path}
}
