package usecase

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bnema/tiledash/internal/application/port"
	"github.com/bnema/tiledash/internal/domain/layout"
)

const maxWorkspaceNameLength = 128

var (
	// ErrWorkspaceNameRequired is returned for an empty workspace name.
	ErrWorkspaceNameRequired = errors.New("workspace name required")
	// ErrWorkspaceNameTooLong is returned for names above maxWorkspaceNameLength runes.
	ErrWorkspaceNameTooLong = errors.New("workspace name too long")
	// ErrWorkspaceExists is returned when a write would replace a stored workspace.
	ErrWorkspaceExists = errors.New("workspace already exists")
	// ErrUnsupportedRoot is returned for configs that are neither a dashboard
	// list nor a dashboard.
	ErrUnsupportedRoot = errors.New("workspace root must be a dashboardList or a dashboard")
	// ErrUnknownFormat is returned when no codec handles the requested format.
	ErrUnknownFormat = errors.New("unknown format")
)

// NormalizeWorkspaceName trims name and checks it can be stored.
func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrWorkspaceNameRequired
	}
	if utf8.RuneCountInString(name) > maxWorkspaceNameLength {
		return "", ErrWorkspaceNameTooLong
	}
	return name, nil
}

// workspaceConfig returns cfg as a dashboard list. A single dashboard is
// wrapped into a one-element list.
func workspaceConfig(cfg layout.Config) (layout.Config, error) {
	switch cfg.Type {
	case layout.TypeDashboardList:
		return cfg, nil
	case layout.TypeDashboard:
		active := 0
		return layout.Config{
			Type:        layout.TypeDashboardList,
			ActiveIndex: &active,
			Dashboards:  []layout.Config{cfg},
		}, nil
	default:
		return layout.Config{}, fmt.Errorf("%w: got %q", ErrUnsupportedRoot, cfg.Type)
	}
}

// codecIndex maps format names, plus common aliases, to codecs.
type codecIndex map[string]port.LayoutCodec

func newCodecIndex(codecs []port.LayoutCodec) codecIndex {
	idx := make(codecIndex, len(codecs))
	for _, c := range codecs {
		idx[strings.ToLower(c.Format())] = c
	}
	return idx
}

func (idx codecIndex) lookup(format string) (port.LayoutCodec, error) {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if format == "yml" {
		format = "yaml"
	}
	if c, ok := idx[format]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
