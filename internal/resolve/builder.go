package resolve

import (
	"fmt"
	"strings"

	"github.com/routedoc/routedoc/internal/annotations"
	"github.com/routedoc/routedoc/internal/models"
	"github.com/routedoc/routedoc/internal/source"
)

// Builder resolves every annotated member into a complete Route.
type Builder struct {
	resolver  *Resolver
	reflector *Reflector
}

// NewBuilder creates a route builder reporting warnings to diag.
func NewBuilder(diag Reporter) *Builder {
	return &Builder{
		resolver:  NewResolver(diag),
		reflector: NewReflector(),
	}
}

// Build resolves all members into routes grouped by declaring type, in
// first-seen order.
func (b *Builder) Build(members []source.Member) (*models.RouteGroup, error) {
	group := models.NewRouteGroup()

	for _, member := range members {
		kind, ok := b.resolver.FindOwn(member)
		if !ok {
			continue
		}
		route, err := b.buildRoute(kind, member)
		if err != nil {
			return nil, err
		}
		group.Add(member.DeclaringType(), route)
	}

	return group, nil
}

// buildRoute assembles one Route from a member and its scope chain.
func (b *Builder) buildRoute(kind annotations.Kind, member source.Member) (models.Route, error) {
	path, err := b.ResolvePath(kind, member)
	if err != nil {
		return models.Route{}, err
	}
	methods, err := b.ResolveMethods(kind, member)
	if err != nil {
		return models.Route{}, err
	}
	consumes, err := b.ResolveMediaList(kind, member, annotations.FieldConsumes)
	if err != nil {
		return models.Route{}, err
	}
	produces, err := b.ResolveMediaList(kind, member, annotations.FieldProduces)
	if err != nil {
		return models.Route{}, err
	}
	queryParams, err := b.ExtractQueryParams(member)
	if err != nil {
		return models.Route{}, err
	}
	bodyType, err := b.resolveBodyType(member)
	if err != nil {
		return models.Route{}, err
	}

	return models.Route{
		Handler:     member.Name(),
		Path:        path,
		Methods:     methods,
		Consumes:    consumes,
		Produces:    produces,
		Deprecated:  b.ResolveDeprecated(member),
		QueryParams: queryParams,
		BodyType:    bodyType,
		ReturnType:  b.reflector.Describe(member.ReturnType()),
	}, nil
}

// ResolvePath reads the scope's own path, then recursively prepends every
// enclosing scope's path. Recursion ends at the first scope carrying no
// recognized annotation; segments are joined with exactly one separator
// regardless of trailing or leading slashes on either side.
func (b *Builder) ResolvePath(kind annotations.Kind, scope source.Scope) (string, error) {
	own, err := b.resolver.ReadString(kind, scope, annotations.FieldPath, annotations.FieldValue)
	if err != nil {
		return "", err
	}

	parentKind, parent, ok := b.resolver.FindEnclosing(scope)
	if !ok {
		return own, nil
	}
	parentPath, err := b.ResolvePath(parentKind, parent)
	if err != nil {
		return "", err
	}
	return joinPath(parentPath, own), nil
}

// ResolveMethods returns the nearest non-empty method list walking outward
// from the scope. An empty result means any method is accepted.
func (b *Builder) ResolveMethods(kind annotations.Kind, scope source.Scope) ([]string, error) {
	own, err := b.resolver.ReadList(kind, scope, annotations.FieldMethod)
	if err != nil {
		return nil, err
	}
	if len(own) > 0 {
		return own, nil
	}

	parentKind, parent, ok := b.resolver.FindEnclosing(scope)
	if !ok {
		return nil, nil
	}
	return b.ResolveMethods(parentKind, parent)
}

// ResolveMediaList returns the nearest declared media list walking outward
// from the scope. An explicitly empty list at some level still counts as
// declared; a nil result means the attribute is unspecified at every level.
func (b *Builder) ResolveMediaList(kind annotations.Kind, scope source.Scope, field annotations.FieldName) ([]string, error) {
	own, err := b.resolver.ReadList(kind, scope, field)
	if err != nil {
		return nil, err
	}
	if own != nil {
		return own, nil
	}

	parentKind, parent, ok := b.resolver.FindEnclosing(scope)
	if !ok {
		return nil, nil
	}
	return b.ResolveMediaList(parentKind, parent, field)
}

// ResolveDeprecated checks the member and its immediately enclosing scope
// only. Deeper scopes do not propagate deprecation; the asymmetry with
// path and method resolution is deliberate.
func (b *Builder) ResolveDeprecated(member source.Member) bool {
	if member.Deprecated() {
		return true
	}
	if parent := member.Enclosing(); parent != nil {
		return parent.Deprecated()
	}
	return false
}

// ExtractQueryParams collects the member's formal parameters carrying a
// query marker, in declaration order. The parameter name is taken from the
// marker's Name attribute, then its Value attribute, then the declared
// identifier. A marker binding to a nonexistent parameter is a malformed
// route.
func (b *Builder) ExtractQueryParams(member source.Member) ([]models.Param, error) {
	queries := member.Queries()
	if len(queries) == 0 {
		return nil, nil
	}

	params := member.Params()
	byIdent := make(map[string]*annotations.QueryMarker, len(queries))
	for _, q := range queries {
		if findParam(params, q.Param) == nil {
			return nil, &models.MalformedRouteError{
				Member: member.Name(),
				Reason: fmt.Sprintf("query marker names parameter %q which the member does not declare", q.Param),
			}
		}
		if _, dup := byIdent[q.Param]; !dup {
			byIdent[q.Param] = q
		}
	}

	var out []models.Param
	for _, p := range params {
		q, ok := byIdent[p.Name()]
		if !ok {
			continue
		}

		name := q.Name
		if name == "" {
			name = q.Value
		}
		if name == "" {
			name = p.Name()
		}

		var defaultValue *string
		if q.Default != annotations.DefaultNone {
			d := q.Default
			defaultValue = &d
		}

		out = append(out, models.Param{
			Name:    name,
			Default: defaultValue,
			TypeFQN: p.TypeFQN(),
		})
	}
	return out, nil
}

// resolveBodyType describes the single body-marked parameter of the
// member. No marker means no body; more than one marker, or a marker
// binding to a nonexistent parameter, is a malformed route.
func (b *Builder) resolveBodyType(member source.Member) (*models.DTO, error) {
	bodies := member.Bodies()
	if len(bodies) == 0 {
		return nil, nil
	}
	if len(bodies) > 1 {
		return nil, &models.MalformedRouteError{
			Member: member.Name(),
			Reason: fmt.Sprintf("%d body markers declared, at most one is allowed", len(bodies)),
		}
	}

	param := findParam(member.Params(), bodies[0].Param)
	if param == nil {
		return nil, &models.MalformedRouteError{
			Member: member.Name(),
			Reason: fmt.Sprintf("body marker names parameter %q which the member does not declare", bodies[0].Param),
		}
	}
	return b.reflector.Describe(param.Type()), nil
}

// findParam locates a formal parameter by its declared identifier.
func findParam(params []source.FormalParam, ident string) source.FormalParam {
	for _, p := range params {
		if p.Name() == ident {
			return p
		}
	}
	return nil
}

// joinPath concatenates two path segments with exactly one separator.
func joinPath(parent, own string) string {
	return strings.TrimSuffix(parent, "/") + "/" + strings.TrimPrefix(own, "/")
}
