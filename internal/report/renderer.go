// Package report serializes a resolved route group into its output
// formats: the indented text report and a YAML model export.
package report

import (
	"fmt"
	"strings"

	"github.com/routedoc/routedoc/internal/models"
)

// Renderer serializes a route group into the indented text report. Output
// is byte-stable: rendering the same group twice yields identical text.
type Renderer struct{}

// NewRenderer creates a text renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render emits one header line per declaring type, one line per route, and
// indented sub-blocks for query parameters, body fields and return fields.
func (r *Renderer) Render(group *models.RouteGroup) string {
	var sb strings.Builder

	for _, typeFQN := range group.Types() {
		sb.WriteString(typeFQN)
		sb.WriteString(":\n")

		for _, route := range group.Routes(typeFQN) {
			r.writeRouteLine(&sb, route)
			writeParams(&sb, "\t\t", route.QueryParams)
			if route.BodyType != nil {
				writeDTO(&sb, "input", route.BodyType)
			}
			if route.ReturnType != nil {
				writeDTO(&sb, "output", route.ReturnType)
			}
		}
	}

	return sb.String()
}

func (r *Renderer) writeRouteLine(sb *strings.Builder, route models.Route) {
	sb.WriteString("\t- ")
	if route.Deprecated {
		sb.WriteString("[DEPRECATED] ")
	}
	sb.WriteString(renderMethods(route.Methods))
	sb.WriteString(" ")
	sb.WriteString(route.Path)
	if route.Consumes != nil {
		fmt.Fprintf(sb, "(expects: %s)", renderList(route.Consumes))
	}
	if route.Produces != nil {
		fmt.Fprintf(sb, "(returns: %s)", renderList(route.Produces))
	}
	sb.WriteString("\n")
}

// writeDTO emits a header line and the DTO's fields one level deeper.
func writeDTO(sb *strings.Builder, header string, dto *models.DTO) {
	fmt.Fprintf(sb, "\t\t%s: %s\n", header, dto.TypeFQN)
	writeParams(sb, "\t\t\t", dto.Fields)
}

func writeParams(sb *strings.Builder, indent string, params []models.Param) {
	for _, p := range params {
		sb.WriteString(indent)
		sb.WriteString("- ")
		sb.WriteString(p.TypeFQN)
		sb.WriteString(" ")
		sb.WriteString(p.Name)
		if p.Default != nil {
			fmt.Fprintf(sb, " (default: %s)", *p.Default)
		}
		sb.WriteString("\n")
	}
}

// renderMethods joins the method list; an empty list means the route
// accepts any method.
func renderMethods(methods []string) string {
	if len(methods) == 0 {
		return "ANY"
	}
	return strings.Join(methods, ", ")
}

func renderList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
