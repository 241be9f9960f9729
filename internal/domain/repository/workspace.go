package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// ErrNotFound is returned when no workspace is stored under a name.
var ErrNotFound = errors.New("workspace not found")

// WorkspaceSummary describes a stored workspace without its layout.
type WorkspaceSummary struct {
	Name       string
	Dashboards int
	Windows    int
	Size       int64
	UpdatedAt  time.Time
}

// WorkspaceRepository persists named dashboard list configurations.
type WorkspaceRepository interface {
	// Get returns the stored configuration, or ErrNotFound.
	Get(ctx context.Context, name string) (*layout.Config, error)

	// Save inserts or replaces the configuration stored under name.
	Save(ctx context.Context, name string, cfg layout.Config) error

	// Delete removes a workspace. Deleting a missing workspace is not an error.
	Delete(ctx context.Context, name string) error

	// List returns every stored workspace, most recently updated first.
	List(ctx context.Context) ([]WorkspaceSummary, error)
}
