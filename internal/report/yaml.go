package report

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/routedoc/routedoc/internal/models"
)

// Export shapes for the YAML format. Controllers keep the group's
// insertion order, so the document is as reproducible as the text report.

type yamlReport struct {
	Controllers []yamlController `yaml:"controllers"`
}

type yamlController struct {
	Type   string      `yaml:"type"`
	Routes []yamlRoute `yaml:"routes"`
}

type yamlRoute struct {
	Handler    string      `yaml:"handler"`
	Path       string      `yaml:"path"`
	Methods    []string    `yaml:"methods,omitempty"`
	Consumes   []string    `yaml:"consumes,omitempty"`
	Produces   []string    `yaml:"produces,omitempty"`
	Deprecated bool        `yaml:"deprecated,omitempty"`
	Query      []yamlParam `yaml:"query,omitempty"`
	Input      *yamlDTO    `yaml:"input,omitempty"`
	Output     *yamlDTO    `yaml:"output,omitempty"`
}

type yamlParam struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type,omitempty"`
	Default *string `yaml:"default,omitempty"`
}

type yamlDTO struct {
	Type   string      `yaml:"type"`
	Fields []yamlParam `yaml:"fields,omitempty"`
}

// RenderYAML serializes the route group as a YAML document for machine
// consumers.
func RenderYAML(group *models.RouteGroup) (string, error) {
	doc := yamlReport{}

	for _, typeFQN := range group.Types() {
		controller := yamlController{Type: typeFQN}
		for _, route := range group.Routes(typeFQN) {
			controller.Routes = append(controller.Routes, yamlRoute{
				Handler:    route.Handler,
				Path:       route.Path,
				Methods:    route.Methods,
				Consumes:   route.Consumes,
				Produces:   route.Produces,
				Deprecated: route.Deprecated,
				Query:      yamlParams(route.QueryParams),
				Input:      yamlDTOOf(route.BodyType),
				Output:     yamlDTOOf(route.ReturnType),
			})
		}
		doc.Controllers = append(doc.Controllers, controller)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal route report: %w", err)
	}
	return string(out), nil
}

func yamlParams(params []models.Param) []yamlParam {
	var out []yamlParam
	for _, p := range params {
		out = append(out, yamlParam{
			Name:    p.Name,
			Type:    p.TypeFQN,
			Default: p.Default,
		})
	}
	return out
}

func yamlDTOOf(dto *models.DTO) *yamlDTO {
	if dto == nil {
		return nil
	}
	return &yamlDTO{
		Type:   dto.TypeFQN,
		Fields: yamlParams(dto.Fields),
	}
}
