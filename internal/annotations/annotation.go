package annotations

// SourceLocation pinpoints a directive in source code.
type SourceLocation struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
}

// Directive is any parsed route:: annotation.
type Directive interface {
	Location() SourceLocation
}

// Mapping is one recognized mapping annotation with its typed attributes.
type Mapping struct {
	Kind     Kind
	Path     string   // positional path or -Path attribute
	Value    string   // -Value attribute, read after Path
	Methods  []string // explicit -Method list; only meaningful on request mappings
	Consumes []string // nil when the attribute is absent, empty when declared empty
	Produces []string // nil when the attribute is absent, empty when declared empty
	Loc      SourceLocation
	Raw      string // original comment text
}

// Location returns where the mapping was declared.
func (m *Mapping) Location() SourceLocation { return m.Loc }

// StringField returns the value of a single-valued attribute by field name.
func (m *Mapping) StringField(field FieldName) string {
	switch field {
	case FieldPath:
		return m.Path
	case FieldValue:
		return m.Value
	default:
		return ""
	}
}

// ListField returns the value of a list attribute by field name. A nil
// result means the attribute is absent on this mapping, which the resolver
// treats differently from an explicitly empty list.
func (m *Mapping) ListField(field FieldName) []string {
	switch field {
	case FieldMethod:
		if len(m.Methods) > 0 {
			return m.Methods
		}
		return m.Kind.ImpliedMethods()
	case FieldConsumes:
		return m.Consumes
	case FieldProduces:
		return m.Produces
	default:
		return nil
	}
}

// DefaultNone is the sentinel a query marker carries when no -Default
// attribute was written. It keeps an explicitly empty default ("") apart
// from the attribute being absent.
const DefaultNone = "\x00routedoc.default-none\x00"

// QueryMarker flags one formal parameter of a member as a query parameter.
type QueryMarker struct {
	Param   string // formal parameter identifier the marker binds to
	Name    string // -Name attribute, tried first when naming the parameter
	Value   string // -Value attribute, tried second
	Default string // -Default attribute, DefaultNone when absent
	Loc     SourceLocation
}

// Location returns where the marker was declared.
func (q *QueryMarker) Location() SourceLocation { return q.Loc }

// BodyMarker flags one formal parameter of a member as the request body.
type BodyMarker struct {
	Param string // formal parameter identifier the marker binds to
	Loc   SourceLocation
}

// Location returns where the marker was declared.
func (b *BodyMarker) Location() SourceLocation { return b.Loc }
