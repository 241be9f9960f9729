// Package codec reads and writes layout configurations as JSON, TOML or
// YAML files.
package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bnema/tiledash/internal/application/port"
	"github.com/bnema/tiledash/internal/domain/layout"
)

// All returns one codec per supported format.
func All() []port.LayoutCodec {
	return []port.LayoutCodec{JSON{}, TOML{}, YAML{}}
}

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// JSON is the native persisted format.
type JSON struct{}

func (JSON) Format() string { return "json" }

func (JSON) Encode(w io.Writer, cfg layout.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func (JSON) Decode(r io.Reader) (layout.Config, error) {
	var cfg layout.Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return layout.Config{}, fmt.Errorf("parse json: %w", err)
	}
	return cfg, nil
}

// TOML writes layouts as nested tables.
type TOML struct{}

func (TOML) Format() string { return "toml" }

func (TOML) Encode(w io.Writer, cfg layout.Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	return enc.Encode(cfg)
}

func (TOML) Decode(r io.Reader) (layout.Config, error) {
	var cfg layout.Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return layout.Config{}, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return layout.Config{}, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// YAML writes layouts as block mappings.
type YAML struct{}

func (YAML) Format() string { return "yaml" }

func (YAML) Encode(w io.Writer, cfg layout.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (YAML) Decode(r io.Reader) (layout.Config, error) {
	var cfg layout.Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return layout.Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
