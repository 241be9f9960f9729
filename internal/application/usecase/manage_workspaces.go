package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

// ManageWorkspacesUseCase lists, renames and deletes stored workspaces.
type ManageWorkspacesUseCase struct {
	repo repository.WorkspaceRepository
}

// NewManageWorkspacesUseCase creates a new ManageWorkspacesUseCase.
func NewManageWorkspacesUseCase(repo repository.WorkspaceRepository) *ManageWorkspacesUseCase {
	return &ManageWorkspacesUseCase{repo: repo}
}

// List returns every stored workspace.
func (uc *ManageWorkspacesUseCase) List(ctx context.Context) ([]repository.WorkspaceSummary, error) {
	workspaces, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	logging.FromContext(ctx).Debug().Int("count", len(workspaces)).Msg("listed workspaces")
	return workspaces, nil
}

// Delete removes a workspace. The workspace must exist.
func (uc *ManageWorkspacesUseCase) Delete(ctx context.Context, name string) error {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return err
	}
	if _, err := uc.repo.Get(ctx, name); err != nil {
		return fmt.Errorf("delete workspace %q: %w", name, err)
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete workspace %q: %w", name, err)
	}
	logging.FromContext(ctx).Info().Str("workspace", name).Msg("workspace deleted")
	return nil
}

// Rename moves a workspace to a new name. The target must not exist.
func (uc *ManageWorkspacesUseCase) Rename(ctx context.Context, from, to string) error {
	log := logging.FromContext(ctx)

	from, err := NormalizeWorkspaceName(from)
	if err != nil {
		return err
	}
	to, err = NormalizeWorkspaceName(to)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	cfg, err := uc.repo.Get(ctx, from)
	if err != nil {
		return fmt.Errorf("rename workspace %q: %w", from, err)
	}
	switch _, err := uc.repo.Get(ctx, to); {
	case err == nil:
		return fmt.Errorf("rename workspace to %q: %w", to, ErrWorkspaceExists)
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("rename workspace to %q: %w", to, err)
	}

	if err := uc.repo.Save(ctx, to, *cfg); err != nil {
		return fmt.Errorf("rename workspace to %q: %w", to, err)
	}
	if err := uc.repo.Delete(ctx, from); err != nil {
		return fmt.Errorf("rename workspace %q: remove old entry: %w", from, err)
	}

	log.Info().Str("from", from).Str("to", to).Msg("workspace renamed")
	return nil
}
