package xdg

import (
	"path/filepath"

	"github.com/bnema/tiledash/internal/application/port"
	"github.com/bnema/tiledash/internal/infrastructure/config"
)

// Adapter implements port.XDGPaths using config.GetXDGDirs().
type Adapter struct{}

// New creates a new XDG paths adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) ConfigDir() (string, error) {
	return config.GetConfigDir()
}

func (a *Adapter) DataDir() (string, error) {
	return config.GetDataDir()
}

func (a *Adapter) StateDir() (string, error) {
	return config.GetStateDir()
}

func (a *Adapter) CacheDir() (string, error) {
	dirs, err := config.GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.CacheHome, nil
}

func (a *Adapter) LogDir() (string, error) {
	return config.GetLogDir()
}

func (a *Adapter) AppsDir() (string, error) {
	dataDir, err := a.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "apps"), nil
}

var _ port.XDGPaths = (*Adapter)(nil)
