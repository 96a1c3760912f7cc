package resolve

import (
	"github.com/routedoc/routedoc/internal/models"
	"github.com/routedoc/routedoc/internal/source"
)

// Reflector flattens nominal types into DTO descriptions.
type Reflector struct{}

// NewReflector creates a DTO reflector.
func NewReflector() *Reflector {
	return &Reflector{}
}

// Describe returns the flattened field list of a nominal type: its own
// fields in declaration order, then each ancestor's own fields appended,
// walking the embedded-struct chain until a non-nominal terminal. Fields
// shadowed by a subtype are not de-duplicated; serialization-ignore
// markers are not honored either. Non-nominal or unresolvable types
// yield nil.
func (r *Reflector) Describe(t source.TypeRef) *models.DTO {
	if t == nil || !t.Nominal() {
		return nil
	}

	dto := &models.DTO{TypeFQN: t.FQN()}
	for current := t; current != nil && current.Nominal(); current = current.Superclass() {
		for _, field := range current.Fields() {
			dto.Fields = append(dto.Fields, models.Param{
				Name:    field.Name,
				TypeFQN: field.TypeFQN,
			})
		}
	}
	return dto
}
