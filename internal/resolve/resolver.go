// Package resolve turns annotated members into fully resolved routes:
// attribute lookup with ordered fallback, recursive scope-walking for
// paths, methods and media types, and DTO reflection for body and return
// types.
package resolve

import (
	"fmt"

	"github.com/routedoc/routedoc/internal/annotations"
	"github.com/routedoc/routedoc/internal/models"
	"github.com/routedoc/routedoc/internal/source"
)

// Reporter receives non-fatal warnings raised during resolution.
type Reporter interface {
	Warn(format string, args ...interface{})
}

// Resolver determines which recognized mapping kind applies at a scope and
// reads its attributes.
type Resolver struct {
	kinds []annotations.Kind // recognized kinds in priority order
	diag  Reporter
}

// NewResolver creates a resolver over the recognized mapping kinds.
func NewResolver(diag Reporter) *Resolver {
	return &Resolver{
		kinds: annotations.Recognized,
		diag:  diag,
	}
}

// FindOwn returns the first recognized kind present on the scope itself.
func (r *Resolver) FindOwn(scope source.Scope) (annotations.Kind, bool) {
	for _, kind := range r.kinds {
		if scope.Mapping(kind) != nil {
			return kind, true
		}
	}
	return 0, false
}

// FindEnclosing checks the immediately enclosing scope for a recognized
// kind. When several kinds compete on one scope, the first in priority
// order wins and a warning identifies the ambiguous declaration.
func (r *Resolver) FindEnclosing(scope source.Scope) (annotations.Kind, source.Scope, bool) {
	parent := scope.Enclosing()
	if parent == nil {
		return 0, nil, false
	}

	found := parent.Kinds()
	if len(found) == 0 {
		return 0, nil, false
	}
	if len(found) > 1 && r.diag != nil {
		r.diag.Warn("found multiple mapping annotations on %s, only %s will be considered",
			parent.Name(), found[0])
	}
	return found[0], parent, true
}

// ReadString reads a single-valued attribute of the scope's mapping of the
// given kind, trying the field names in order and returning the first
// non-empty value.
func (r *Resolver) ReadString(kind annotations.Kind, scope source.Scope, fields ...annotations.FieldName) (string, error) {
	m, err := r.mapping(kind, scope)
	if err != nil {
		return "", err
	}
	for _, field := range fields {
		if value := m.StringField(field); value != "" {
			return value, nil
		}
	}
	return "", nil
}

// ReadList reads a list attribute of the scope's mapping of the given
// kind, trying the field names in order and returning the first non-nil
// list. A nil result means the attribute is absent at this scope, which is
// distinct from an explicitly empty list.
func (r *Resolver) ReadList(kind annotations.Kind, scope source.Scope, fields ...annotations.FieldName) ([]string, error) {
	m, err := r.mapping(kind, scope)
	if err != nil {
		return nil, err
	}
	for _, field := range fields {
		if value := m.ListField(field); value != nil {
			return value, nil
		}
	}
	return nil, nil
}

// mapping fetches the scope's annotation of the given kind. Failures here
// are configuration errors: the caller may only pass kinds it previously
// found on the scope.
func (r *Resolver) mapping(kind annotations.Kind, scope source.Scope) (*annotations.Mapping, error) {
	recognized := false
	for _, k := range r.kinds {
		if k == kind {
			recognized = true
			break
		}
	}
	if !recognized {
		return nil, &models.ConfigurationError{
			Op:     "annotation lookup",
			Detail: fmt.Sprintf("kind %q is not in the recognized set", kind),
		}
	}

	m := scope.Mapping(kind)
	if m == nil {
		return nil, &models.ConfigurationError{
			Op:     "annotation lookup",
			Detail: fmt.Sprintf("scope %s carries no %s mapping", scope.Name(), kind),
		}
	}
	return m, nil
}
