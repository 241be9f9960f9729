package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/infrastructure/schema"
)

func TestGenerator_LayoutSchema(t *testing.T) {
	data, err := schema.NewGenerator().LayoutSchema()
	require.NoError(t, err)

	var doc struct {
		ID    string `json:"$id"`
		Title string `json:"title"`
		Defs  map[string]struct {
			Required   []string `json:"required"`
			Properties map[string]struct {
				Enum []string `json:"enum"`
			} `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, schema.LayoutSchemaID, doc.ID)
	assert.Equal(t, "tiledash layout", doc.Title)

	cfg, ok := doc.Defs["Config"]
	require.True(t, ok, "Config definition missing")
	assert.Empty(t, cfg.Required)
	assert.ElementsMatch(t,
		[]string{"window", "hsplit", "vsplit", "stack", "grid", "dashboard", "dashboardList"},
		cfg.Properties["type"].Enum)
	for _, key := range []string{"component", "left", "topHeight", "windows", "cellSize", "maximizedIndex"} {
		assert.Contains(t, cfg.Properties, key)
	}
	assert.Contains(t, doc.Defs, "Pane")
	assert.Contains(t, doc.Defs, "WindowSettings")
}
