package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

const (
	getWorkspaceQuery = `SELECT config_json FROM workspaces WHERE name = ?`

	upsertWorkspaceQuery = `
INSERT INTO workspaces (name, config_json, dashboards, windows, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    config_json = excluded.config_json,
    dashboards  = excluded.dashboards,
    windows     = excluded.windows,
    updated_at  = excluded.updated_at`

	deleteWorkspaceQuery = `DELETE FROM workspaces WHERE name = ?`

	listWorkspacesQuery = `
SELECT name, dashboards, windows, length(config_json), updated_at
FROM workspaces
ORDER BY updated_at DESC, name ASC`
)

type workspaceRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewWorkspaceRepository creates a new workspace repository.
func NewWorkspaceRepository(db *sql.DB) repository.WorkspaceRepository {
	return &workspaceRepo{db: db, now: time.Now}
}

// Get returns the configuration stored under name.
func (r *workspaceRepo) Get(ctx context.Context, name string) (*layout.Config, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, getWorkspaceQuery, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace %q: %w", name, err)
	}

	var cfg layout.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("workspace", name).
			Msg("failed to unmarshal workspace layout")
		return nil, fmt.Errorf("decode workspace %q: %w", name, err)
	}
	return &cfg, nil
}

// Save inserts or replaces a workspace. created_at survives updates.
func (r *workspaceRepo) Save(ctx context.Context, name string, cfg layout.Config) error {
	log := logging.FromContext(ctx)

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode workspace %q: %w", name, err)
	}
	dashboards := len(cfg.Dashboards)
	if cfg.Type == layout.TypeDashboard {
		dashboards = 1
	}
	windows := cfg.CountWindows()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin workspace transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("workspace rollback reported non-terminal error")
		}
	}()

	now := r.now().UnixMilli()
	if _, err := tx.ExecContext(ctx, upsertWorkspaceQuery,
		name, string(raw), dashboards, windows, now, now,
	); err != nil {
		return fmt.Errorf("save workspace %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit workspace transaction: %w", err)
	}

	log.Debug().
		Str("workspace", name).
		Int("dashboard_count", dashboards).
		Int("window_count", windows).
		Int("bytes", len(raw)).
		Msg("workspace saved")
	return nil
}

// Delete removes a workspace if present.
func (r *workspaceRepo) Delete(ctx context.Context, name string) error {
	logging.FromContext(ctx).Debug().Str("workspace", name).Msg("deleting workspace")
	if _, err := r.db.ExecContext(ctx, deleteWorkspaceQuery, name); err != nil {
		return fmt.Errorf("delete workspace %q: %w", name, err)
	}
	return nil
}

// List returns summaries of all workspaces, most recently updated first.
func (r *workspaceRepo) List(ctx context.Context) ([]repository.WorkspaceSummary, error) {
	rows, err := r.db.QueryContext(ctx, listWorkspacesQuery)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var out []repository.WorkspaceSummary
	for rows.Next() {
		var (
			s         repository.WorkspaceSummary
			updatedAt int64
		)
		if err := rows.Scan(&s.Name, &s.Dashboards, &s.Windows, &s.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return out, nil
}
