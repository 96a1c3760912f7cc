package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix marks a comment as a routedoc directive.
const Prefix = "route::"

// Parser parses //route:: comment directives into typed annotation records.
type Parser struct {
	parser *participle.Parser[directiveExpr]
}

// directiveExpr is the participle AST for everything after the route::
// prefix: a directive name, positional arguments, then named attributes.
type directiveExpr struct {
	Kind       string          `parser:"@Value"`
	Positional []string        `parser:"@Value*"`
	Attrs      []attributeExpr `parser:"@@*"`
}

// attributeExpr is a single -Name or -Name=value attribute.
type attributeExpr struct {
	Name     string  `parser:"Dash @Value"`
	HasValue bool    `parser:"( @Equals"`
	Value    *string `parser:"  ( @Value | @String )?"`
	Close    bool    `parser:")?"`
}

// directiveLexer tokenizes directive bodies. Values containing spaces,
// '=' or a leading '-' must be quoted.
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Value", Pattern: `[^\s=-][^\s=]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// NewParser builds the directive parser.
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[directiveExpr](
			participle.Lexer(directiveLexer),
			participle.Elide("Whitespace"),
		),
	}
}

// ParseComment parses one comment line. It returns (nil, nil) for comments
// that are not route:: directives, a Mapping, QueryMarker or BodyMarker for
// valid directives, and a SyntaxError otherwise.
func (p *Parser) ParseComment(comment string, loc SourceLocation) (Directive, error) {
	text := strings.TrimSpace(comment)
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, Prefix) {
		return nil, nil
	}
	body := strings.TrimSpace(strings.TrimPrefix(text, Prefix))
	if body == "" {
		return nil, newSyntaxError("empty directive", loc)
	}

	expr, err := p.parser.ParseString(loc.File, body)
	if err != nil {
		return nil, newSyntaxError(fmt.Sprintf("cannot parse directive: %v", err), loc)
	}

	switch expr.Kind {
	case "query":
		return p.buildQueryMarker(expr, loc)
	case "body":
		return p.buildBodyMarker(expr, loc)
	}

	kind, ok := ParseKind(expr.Kind)
	if !ok {
		return nil, newSyntaxError(fmt.Sprintf("unknown directive %q", expr.Kind), loc)
	}
	return p.buildMapping(kind, expr, comment, loc)
}

// buildMapping assembles a mapping annotation from the parsed expression.
func (p *Parser) buildMapping(kind Kind, expr *directiveExpr, comment string, loc SourceLocation) (*Mapping, error) {
	m := &Mapping{
		Kind: kind,
		Loc:  loc,
		Raw:  strings.TrimSpace(comment),
	}

	// Only the first positional path value is used; extra declarations are
	// dropped rather than producing additional route combinations.
	if len(expr.Positional) > 0 {
		m.Path = expr.Positional[0]
	}

	for _, attr := range expr.Attrs {
		value := attributeValue(attr)
		switch attr.Name {
		case "Path":
			if m.Path == "" {
				m.Path = value
			}
		case "Value":
			m.Value = value
		case "Method":
			if kind != KindRequest {
				return nil, newSyntaxError(
					fmt.Sprintf("unknown attribute -Method on %s mapping, methods are implied by the directive", kind), loc)
			}
			m.Methods = upperAll(splitList(value))
		case "Consumes":
			m.Consumes = splitList(value)
		case "Produces":
			m.Produces = splitList(value)
		default:
			return nil, newSyntaxError(fmt.Sprintf("unknown attribute -%s on %s mapping", attr.Name, kind), loc)
		}
	}

	return m, nil
}

// buildQueryMarker assembles a query-parameter marker.
func (p *Parser) buildQueryMarker(expr *directiveExpr, loc SourceLocation) (*QueryMarker, error) {
	if len(expr.Positional) == 0 {
		return nil, newSyntaxError("missing parameter identifier on query marker", loc)
	}
	q := &QueryMarker{
		Param:   expr.Positional[0],
		Default: DefaultNone,
		Loc:     loc,
	}
	for _, attr := range expr.Attrs {
		value := attributeValue(attr)
		switch attr.Name {
		case "Name":
			q.Name = value
		case "Value":
			q.Value = value
		case "Default":
			q.Default = value
		default:
			return nil, newSyntaxError(fmt.Sprintf("unknown attribute -%s on query marker", attr.Name), loc)
		}
	}
	return q, nil
}

// buildBodyMarker assembles a request-body marker.
func (p *Parser) buildBodyMarker(expr *directiveExpr, loc SourceLocation) (*BodyMarker, error) {
	if len(expr.Positional) == 0 {
		return nil, newSyntaxError("missing parameter identifier on body marker", loc)
	}
	if len(expr.Attrs) > 0 {
		return nil, newSyntaxError(fmt.Sprintf("unknown attribute -%s on body marker", expr.Attrs[0].Name), loc)
	}
	return &BodyMarker{
		Param: expr.Positional[0],
		Loc:   loc,
	}, nil
}

// attributeValue extracts the unquoted attribute value. An attribute
// written without '=' carries the empty string.
func attributeValue(attr attributeExpr) string {
	if !attr.HasValue || attr.Value == nil {
		return ""
	}
	return unquote(*attr.Value)
}

// unquote strips surrounding double quotes and unescapes embedded ones.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	return s
}

// splitList splits a comma-separated attribute value. An empty value
// yields an empty, non-nil list so "declared empty" stays distinguishable
// from "absent".
func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func upperAll(items []string) []string {
	for i, item := range items {
		items[i] = strings.ToUpper(item)
	}
	return items
}
