// Package config loads the tiledash configuration with viper.
package config

import "github.com/bnema/tiledash/internal/domain/layout"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for tiledash.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Autosave AutosaveConfig `mapstructure:"autosave" yaml:"autosave" toml:"autosave" json:"autosave"`
	// Layout holds sizes, in terminal cells, for splits and stacks.
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout" toml:"layout" json:"layout"`
	Grid   GridConfig   `mapstructure:"grid" yaml:"grid" toml:"grid" json:"grid"`
	// Dashboards controls the dashboard list of a workspace.
	Dashboards DashboardsConfig `mapstructure:"dashboards" yaml:"dashboards" toml:"dashboards" json:"dashboards"`
	// Workspace is the name opened when no --workspace flag is given.
	Workspace string `mapstructure:"workspace" yaml:"workspace" toml:"workspace" json:"workspace"`
	// Apps maps an app name, opened as /apps/<name>, to a script file.
	Apps map[string]string `mapstructure:"apps" yaml:"apps" toml:"apps" json:"apps,omitempty"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/tiledash/tiledash.sqlite.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path,omitempty"`
}

// LogFormat selects the zerolog writer.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=off"`
	Format LogFormat `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// File receives the log while the terminal view owns the screen.
	File       string `mapstructure:"file" yaml:"file" toml:"file" json:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups"`
}

// AutosaveConfig controls debounced persistence of loaded workspaces.
type AutosaveConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	DelayMs int  `mapstructure:"delay_ms" yaml:"delay_ms" toml:"delay_ms" json:"delay_ms"`
}

// LayoutConfig holds split and stack sizes.
type LayoutConfig struct {
	SplitterSize int `mapstructure:"splitter_size" yaml:"splitter_size" toml:"splitter_size" json:"splitter_size"`
	MinItemSize  int `mapstructure:"min_item_size" yaml:"min_item_size" toml:"min_item_size" json:"min_item_size"`
	TabHeight    int `mapstructure:"tab_height" yaml:"tab_height" toml:"tab_height" json:"tab_height"`
}

// GridConfig holds the defaults of new grids.
type GridConfig struct {
	CellSize       int `mapstructure:"cell_size" yaml:"cell_size" toml:"cell_size" json:"cell_size"`
	CellMargin     int `mapstructure:"cell_margin" yaml:"cell_margin" toml:"cell_margin" json:"cell_margin"`
	DefaultColSpan int `mapstructure:"default_col_span" yaml:"default_col_span" toml:"default_col_span" json:"default_col_span"`
	DefaultRowSpan int `mapstructure:"default_row_span" yaml:"default_row_span" toml:"default_row_span" json:"default_row_span"`
}

// DashboardsConfig controls default dashboard creation.
type DashboardsConfig struct {
	CreateDefault bool   `mapstructure:"create_default" yaml:"create_default" toml:"create_default" json:"create_default"`
	DefaultTitle  string `mapstructure:"default_title" yaml:"default_title" toml:"default_title" json:"default_title"`
}

// LayoutDefaults converts the layout and grid sections for the component factory.
func (c *Config) LayoutDefaults() layout.Defaults {
	return layout.Defaults{
		SplitterSize:   c.Layout.SplitterSize,
		MinItemSize:    c.Layout.MinItemSize,
		TabHeight:      c.Layout.TabHeight,
		CellSize:       c.Grid.CellSize,
		CellMargin:     c.Grid.CellMargin,
		DefaultColSpan: c.Grid.DefaultColSpan,
		DefaultRowSpan: c.Grid.DefaultRowSpan,
	}
}
