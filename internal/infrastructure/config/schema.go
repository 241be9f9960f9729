package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// ConfigSchemaID identifies the configuration schema.
const ConfigSchemaID = "https://github.com/bnema/tiledash/config.schema.json"

// GenerateSchema returns the JSON schema of the configuration file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})
	schema.ID = ConfigSchemaID
	schema.Title = "tiledash configuration"
	schema.Description = "Configuration schema for tiledash, a tiling dashboard layout engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes config.schema.json next to the config file.
func GenerateSchemaFile(configFile string) (string, error) {
	data, err := GenerateSchema()
	if err != nil {
		return "", err
	}
	schemaFile := filepath.Join(filepath.Dir(configFile), "config.schema.json")
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
