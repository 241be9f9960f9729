// Package schema renders JSON Schemas for tiledash files.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// LayoutSchemaID identifies the layout schema document.
const LayoutSchemaID = "https://github.com/bnema/tiledash/layout.schema.json"

// Generator reflects the layout configuration types.
type Generator struct{}

// NewGenerator creates a schema generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// LayoutSchema returns the schema of layout files as indented JSON.
func (g *Generator) LayoutSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Every key is optional; the type tag alone selects the node kind.
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&layout.Config{})
	s.ID = LayoutSchemaID
	s.Title = "tiledash layout"
	s.Description = "A dashboard list, dashboard or any layout node, discriminated by type"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout schema: %w", err)
	}
	return data, nil
}
