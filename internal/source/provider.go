// Package source supplies the annotated-declaration model the route
// builder consumes: which members carry mapping annotations, how scopes
// nest, and what the declared types look like. The core never mutates
// this model.
package source

import "github.com/routedoc/routedoc/internal/annotations"

// Scope is a declaration that can carry mapping annotations: a handler
// method, its receiver type, or the enclosing package.
type Scope interface {
	// Name identifies the scope in diagnostics, e.g. "UserController.List".
	Name() string

	// Mapping returns the scope's annotation of the given kind, or nil.
	// When a kind is declared twice on one scope the first declaration wins.
	Mapping(kind annotations.Kind) *annotations.Mapping

	// Kinds returns the recognized kinds present on this scope, ordered by
	// the recognized-kind priority.
	Kinds() []annotations.Kind

	// Enclosing returns the next scope outward, or nil at the outermost.
	Enclosing() Scope

	// Deprecated reports whether the scope's doc comment carries a
	// "Deprecated:" line.
	Deprecated() bool
}

// Member is a handler method carrying at least one mapping annotation.
type Member interface {
	Scope

	// DeclaringType is the fully qualified name of the receiver type the
	// member's routes are grouped under.
	DeclaringType() string

	// Params returns the member's formal parameters in declaration order.
	Params() []FormalParam

	// ReturnType resolves the member's first non-error result to a type
	// handle, or nil when there is none or it cannot be resolved.
	ReturnType() TypeRef

	// Queries returns the query-parameter markers declared on the member.
	Queries() []*annotations.QueryMarker

	// Bodies returns the request-body markers declared on the member.
	Bodies() []*annotations.BodyMarker
}

// FormalParam is one formal parameter of a member.
type FormalParam interface {
	// Name is the parameter identifier as declared.
	Name() string

	// TypeFQN is the fully qualified name of the declared parameter type.
	TypeFQN() string

	// Type resolves the parameter type to a handle, or nil when the type
	// is not a nominal type known to the provider.
	Type() TypeRef
}

// TypeRef is a resolved type handle used for DTO reflection.
type TypeRef interface {
	// FQN is the fully qualified type name.
	FQN() string

	// Nominal reports whether the type is a user-defined struct whose
	// fields can be described.
	Nominal() bool

	// Fields returns the type's own fields in declaration order, embedded
	// ancestors excluded.
	Fields() []Field

	// Superclass returns the first embedded struct ancestor, or nil when
	// the inheritance chain ends.
	Superclass() TypeRef
}

// Field is one declared field of a nominal type.
type Field struct {
	Name    string
	TypeFQN string
}

// Provider supplies the annotated members visible in one analysis pass.
type Provider interface {
	// AnnotatedMembers returns every member carrying a recognized mapping
	// annotation, in deterministic (directory, file, declaration) order.
	AnnotatedMembers() []Member
}
