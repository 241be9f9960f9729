package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/tiledash/internal/logging"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configFile     string
	xdg            bool
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a manager for $XDG_CONFIG_HOME/tiledash/config.toml.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	m, err := NewManagerAt(configFile)
	if err != nil {
		return nil, err
	}
	m.xdg = true
	return m, nil
}

// NewManagerAt creates a manager reading the TOML file at configFile.
func NewManagerAt(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// TILEDASH_DATABASE_PATH, TILEDASH_AUTOSAVE_DELAY_MS, ...
	v.SetEnvPrefix("TILEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with the logging package.
	if err := v.BindEnv("logging.level", "TILEDASH_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEDASH_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TILEDASH_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEDASH_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables,
// writing a default file first when none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.xdg {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configFile,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, normalizes and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configFile,
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config, filepath.Dir(m.configFile))

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config, baseDir string) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}

	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	default:
		config.Logging.Format = LogFormatConsole
	}

	config.Workspace = strings.TrimSpace(config.Workspace)
	if config.Workspace == "" {
		config.Workspace = defaultWorkspace
	}
	config.Dashboards.DefaultTitle = strings.TrimSpace(config.Dashboards.DefaultTitle)

	config.Database.Path = expandPath(config.Database.Path, baseDir)
	config.Logging.File = expandPath(config.Logging.File, baseDir)

	apps := make(map[string]string, len(config.Apps))
	for name, script := range config.Apps {
		apps[strings.ToLower(strings.TrimSpace(name))] = expandPath(strings.TrimSpace(script), baseDir)
	}
	config.Apps = apps
}

// expandPath resolves ~ and paths relative to baseDir.
func expandPath(p, baseDir string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) && baseDir != "" {
		p = filepath.Join(baseDir, p)
	}
	return filepath.Clean(p)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Apps = make(map[string]string, len(m.config.Apps))
	for k, v := range m.config.Apps {
		configCopy.Apps[k] = v
	}
	return &configCopy
}

// Save writes cfg to disk and updates viper.
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range settings(cfg) {
		m.viper.Set(key, value)
	}
	return m.writeLocked()
}

// Set changes a single key, coercing value to an int or bool when it parses
// as one, and writes the file. The file is left untouched when the
// resulting configuration is invalid.
func (m *Manager) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !m.IsKnownKey(key) {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.viper.Get(key)
	m.viper.Set(key, coerce(value))
	if _, err := m.decode(); err != nil {
		m.viper.Set(key, previous)
		return err
	}
	return m.writeLocked()
}

// IsKnownKey reports whether key names a setting or an app entry.
func (m *Manager) IsKnownKey(key string) bool {
	if strings.HasPrefix(key, "apps.") && len(key) > len("apps.") {
		return true
	}
	_, ok := settings(DefaultConfig())[key]
	return ok
}

func coerce(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// writeLocked persists viper's state. Must be called with m.mu held.
func (m *Manager) writeLocked() error {
	if err := m.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	// A running watcher reloads on the write event.
	if m.watching {
		m.skipNextReload = true
		config, err := m.decode()
		if err != nil {
			return err
		}
		m.config = config
		return nil
	}
	return m.reload()
}

// settings flattens cfg into viper keys.
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"database.path":             cfg.Database.Path,
		"logging.level":             cfg.Logging.Level,
		"logging.format":            string(cfg.Logging.Format),
		"logging.file":              cfg.Logging.File,
		"logging.max_size_mb":       cfg.Logging.MaxSizeMB,
		"logging.max_backups":       cfg.Logging.MaxBackups,
		"autosave.enabled":          cfg.Autosave.Enabled,
		"autosave.delay_ms":         cfg.Autosave.DelayMs,
		"layout.splitter_size":      cfg.Layout.SplitterSize,
		"layout.min_item_size":      cfg.Layout.MinItemSize,
		"layout.tab_height":         cfg.Layout.TabHeight,
		"grid.cell_size":            cfg.Grid.CellSize,
		"grid.cell_margin":          cfg.Grid.CellMargin,
		"grid.default_col_span":     cfg.Grid.DefaultColSpan,
		"grid.default_row_span":     cfg.Grid.DefaultRowSpan,
		"dashboards.create_default": cfg.Dashboards.CreateDefault,
		"dashboards.default_title":  cfg.Dashboards.DefaultTitle,
		"workspace":                 cfg.Workspace,
		"apps":                      cfg.Apps,
	}
}

// GetConfigFile returns the path to the configuration file.
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// createDefaultConfig writes the defaults as an ordered TOML file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), m.configFile); err != nil {
		return err
	}
	log := logging.NewFromEnv()
	log.Info().Str("path", m.configFile).Msg("created default configuration file")
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Database.Path is resolved in decode.
	m.setLoggingDefaults(defaults)
	m.setAutosaveDefaults(defaults)
	m.setLayoutDefaults(defaults)
	m.setGridDefaults(defaults)
	m.setDashboardsDefaults(defaults)
	m.viper.SetDefault("workspace", defaults.Workspace)
	m.viper.SetDefault("apps", defaults.Apps)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

func (m *Manager) setAutosaveDefaults(defaults *Config) {
	m.viper.SetDefault("autosave.enabled", defaults.Autosave.Enabled)
	m.viper.SetDefault("autosave.delay_ms", defaults.Autosave.DelayMs)
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.splitter_size", defaults.Layout.SplitterSize)
	m.viper.SetDefault("layout.min_item_size", defaults.Layout.MinItemSize)
	m.viper.SetDefault("layout.tab_height", defaults.Layout.TabHeight)
}

func (m *Manager) setGridDefaults(defaults *Config) {
	m.viper.SetDefault("grid.cell_size", defaults.Grid.CellSize)
	m.viper.SetDefault("grid.cell_margin", defaults.Grid.CellMargin)
	m.viper.SetDefault("grid.default_col_span", defaults.Grid.DefaultColSpan)
	m.viper.SetDefault("grid.default_row_span", defaults.Grid.DefaultRowSpan)
}

func (m *Manager) setDashboardsDefaults(defaults *Config) {
	m.viper.SetDefault("dashboards.create_default", defaults.Dashboards.CreateDefault)
	m.viper.SetDefault("dashboards.default_title", defaults.Dashboards.DefaultTitle)
}
