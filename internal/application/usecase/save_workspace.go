package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

// SaveWorkspaceUseCase stores a layout under a workspace name.
type SaveWorkspaceUseCase struct {
	repo repository.WorkspaceRepository
}

// NewSaveWorkspaceUseCase creates a new SaveWorkspaceUseCase.
func NewSaveWorkspaceUseCase(repo repository.WorkspaceRepository) *SaveWorkspaceUseCase {
	return &SaveWorkspaceUseCase{repo: repo}
}

// SaveWorkspaceInput contains the parameters for saving a workspace.
type SaveWorkspaceInput struct {
	Name string
	// Config is a dashboard list, or a single dashboard that becomes the
	// only member of the stored list.
	Config layout.Config
}

// Execute validates and stores the configuration.
func (uc *SaveWorkspaceUseCase) Execute(ctx context.Context, input SaveWorkspaceInput) error {
	log := logging.FromContext(ctx)

	name, err := NormalizeWorkspaceName(input.Name)
	if err != nil {
		return err
	}
	cfg, err := workspaceConfig(input.Config)
	if err != nil {
		return err
	}

	log.Debug().
		Str("workspace", name).
		Int("dashboard_count", len(cfg.Dashboards)).
		Int("window_count", cfg.CountWindows()).
		Msg("saving workspace")

	if err := uc.repo.Save(ctx, name, cfg); err != nil {
		return fmt.Errorf("save workspace %q: %w", name, err)
	}
	return nil
}
