package annotations

// Kind identifies one of the recognized mapping annotation kinds. The set
// is closed: every kind the tool understands is enumerated here.
type Kind int

const (
	KindRequest Kind = iota
	KindGet
	KindPost
	KindPut
	KindDelete
	KindPatch
)

// Recognized lists every mapping kind in priority order. When a scope
// carries more than one mapping annotation, the first kind in this slice
// wins; the order is a documented contract, not an iteration accident.
var Recognized = []Kind{KindRequest, KindGet, KindPost, KindPut, KindDelete, KindPatch}

// String returns the directive name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindGet:
		return "get"
	case KindPost:
		return "post"
	case KindPut:
		return "put"
	case KindDelete:
		return "delete"
	case KindPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// ParseKind converts a directive name to a mapping Kind. It reports false
// for directives outside the recognized mapping set, such as markers.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "request":
		return KindRequest, true
	case "get":
		return KindGet, true
	case "post":
		return KindPost, true
	case "put":
		return KindPut, true
	case "delete":
		return KindDelete, true
	case "patch":
		return KindPatch, true
	default:
		return 0, false
	}
}

// ImpliedMethods returns the HTTP methods a shorthand kind stands for.
// KindRequest implies none; its methods come from the -Method attribute.
func (k Kind) ImpliedMethods() []string {
	switch k {
	case KindGet:
		return []string{"GET"}
	case KindPost:
		return []string{"POST"}
	case KindPut:
		return []string{"PUT"}
	case KindDelete:
		return []string{"DELETE"}
	case KindPatch:
		return []string{"PATCH"}
	default:
		return nil
	}
}

// FieldName names an attribute of a mapping annotation. The resolver reads
// attributes through these names so fallback order stays explicit.
type FieldName string

const (
	FieldPath     FieldName = "path"
	FieldValue    FieldName = "value"
	FieldMethod   FieldName = "method"
	FieldConsumes FieldName = "consumes"
	FieldProduces FieldName = "produces"
)
