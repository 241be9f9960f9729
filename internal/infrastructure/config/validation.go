package config

import (
	"fmt"
	"strings"

	"github.com/bnema/tiledash/internal/logging"
)

const maxAutosaveDelayMs = 60_000

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateAutosave(config)...)
	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateGrid(config)...)
	validationErrors = append(validationErrors, validateApps(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if _, ok := logging.ParseLevel(config.Logging.Level); !ok {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error, off", config.Logging.Level))
	}
	switch config.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateAutosave(config *Config) []string {
	if config.Autosave.DelayMs < 0 || config.Autosave.DelayMs > maxAutosaveDelayMs {
		return []string{fmt.Sprintf("autosave.delay_ms must be between 0 and %d", maxAutosaveDelayMs)}
	}
	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	if config.Layout.SplitterSize < 0 {
		validationErrors = append(validationErrors, "layout.splitter_size must be non-negative")
	}
	if config.Layout.MinItemSize < 0 {
		validationErrors = append(validationErrors, "layout.min_item_size must be non-negative")
	}
	if config.Layout.TabHeight < 0 {
		validationErrors = append(validationErrors, "layout.tab_height must be non-negative")
	}
	return validationErrors
}

func validateGrid(config *Config) []string {
	var validationErrors []string
	if config.Grid.CellSize < 1 {
		validationErrors = append(validationErrors, "grid.cell_size must be at least 1")
	}
	if config.Grid.CellMargin < 0 {
		validationErrors = append(validationErrors, "grid.cell_margin must be non-negative")
	}
	if config.Grid.DefaultColSpan < 1 || config.Grid.DefaultRowSpan < 1 {
		validationErrors = append(validationErrors, "grid.default_col_span and grid.default_row_span must be at least 1")
	}
	return validationErrors
}

func validateApps(config *Config) []string {
	var validationErrors []string
	for name, script := range config.Apps {
		if name == "" || strings.ContainsAny(name, "/ ") {
			validationErrors = append(validationErrors, fmt.Sprintf("apps: invalid app name %q", name))
		}
		if script == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("apps.%s: script path is required", name))
		}
	}
	return validationErrors
}
