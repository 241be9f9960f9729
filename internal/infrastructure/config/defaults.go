package config

import (
	"path/filepath"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// Default configuration constants
const (
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3

	defaultAutosaveDelayMs = 1000

	// Terminal cells
	defaultSplitterSize = 1
	defaultMinItemSize  = 8
	defaultTabHeight    = 1
	defaultCellSize     = 4
	defaultCellMargin   = 0

	defaultWorkspace = "default"
)

func getDefaultLogFile() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return filepath.Join(logDir, appName+".log")
}

// DefaultConfig returns the default configuration values for tiledash.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     LogFormatConsole,
			File:       getDefaultLogFile(),
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			DelayMs: defaultAutosaveDelayMs,
		},
		Layout: LayoutConfig{
			SplitterSize: defaultSplitterSize,
			MinItemSize:  defaultMinItemSize,
			TabHeight:    defaultTabHeight,
		},
		Grid: GridConfig{
			CellSize:       defaultCellSize,
			CellMargin:     defaultCellMargin,
			DefaultColSpan: layout.DefaultWindowColSpan,
			DefaultRowSpan: layout.DefaultWindowRowSpan,
		},
		Dashboards: DashboardsConfig{
			CreateDefault: true,
			DefaultTitle:  layout.DefaultDashboardTitle,
		},
		Workspace: defaultWorkspace,
		Apps:      map[string]string{},
	}
}
