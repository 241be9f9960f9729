package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero delay", mutate: func(c *Config) { c.Autosave.DelayMs = 0 }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "delay too long", mutate: func(c *Config) { c.Autosave.DelayMs = 120_000 }, wantErr: "autosave.delay_ms"},
		{name: "negative splitter", mutate: func(c *Config) { c.Layout.SplitterSize = -1 }, wantErr: "layout.splitter_size"},
		{name: "zero span", mutate: func(c *Config) { c.Grid.DefaultRowSpan = 0 }, wantErr: "grid.default_col_span"},
		{name: "app name with slash", mutate: func(c *Config) { c.Apps["a/b"] = "/x.js" }, wantErr: "invalid app name"},
		{name: "app without script", mutate: func(c *Config) { c.Apps["clock"] = "" }, wantErr: "apps.clock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalizeConfig_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()
	cfg.Database.Path = "~/dash.sqlite"

	normalizeConfig(cfg, "/etc/tiledash")

	assert.Equal(t, "/home/tester/dash.sqlite", cfg.Database.Path)
}
