package models

// Route describes one annotated handler method after full scope resolution.
// Routes are built once per run and never mutated afterwards.
type Route struct {
	Handler     string   // handler method name, used in diagnostics and exports
	Path        string   // resolved path, enclosing segments included
	Methods     []string // HTTP methods; empty means any method is accepted
	Consumes    []string // accepted media types; nil means unspecified
	Produces    []string // produced media types; nil means unspecified
	Deprecated  bool
	QueryParams []Param
	BodyType    *DTO
	ReturnType  *DTO
}

// Param is a single request parameter or DTO field.
type Param struct {
	Name    string
	Default *string // nil when no default was declared
	TypeFQN string  // fully qualified type name, may be empty
}

// DTO is the flattened field list of a request or response body type,
// inherited fields included.
type DTO struct {
	TypeFQN string
	Fields  []Param
}

// RouteGroup maps declaring-type names to the routes found on their
// members. Iteration follows insertion order so reports are reproducible.
type RouteGroup struct {
	keys   []string
	routes map[string][]Route
}

// NewRouteGroup creates an empty route group.
func NewRouteGroup() *RouteGroup {
	return &RouteGroup{
		routes: make(map[string][]Route),
	}
}

// Add appends a route under the given declaring type.
func (g *RouteGroup) Add(typeFQN string, route Route) {
	if _, exists := g.routes[typeFQN]; !exists {
		g.keys = append(g.keys, typeFQN)
	}
	g.routes[typeFQN] = append(g.routes[typeFQN], route)
}

// Types returns the declaring-type names in the order they were first seen.
func (g *RouteGroup) Types() []string {
	return g.keys
}

// Routes returns the routes declared on the given type, in declaration order.
func (g *RouteGroup) Routes(typeFQN string) []Route {
	return g.routes[typeFQN]
}

// RouteCount returns the total number of routes across all types.
func (g *RouteGroup) RouteCount() int {
	count := 0
	for _, routes := range g.routes {
		count += len(routes)
	}
	return count
}
