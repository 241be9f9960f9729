package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchemaFile(t *testing.T) {
	path, err := GenerateSchemaFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "config.schema.json", filepath.Base(path))

	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc struct {
		ID   string `json:"$id"`
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, ConfigSchemaID, doc.ID)
	assert.Contains(t, doc.Defs["Config"].Properties, "autosave")
	assert.Contains(t, doc.Defs["GridConfig"].Properties, "default_col_span")
}
