package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

// LoadWorkspaceUseCase restores a workspace into a live dashboard list
// wired for auto-save.
type LoadWorkspaceUseCase struct {
	repo      repository.WorkspaceRepository
	scheduler layout.SaveScheduler
	group     singleflight.Group
}

// NewLoadWorkspaceUseCase creates a new LoadWorkspaceUseCase. A nil
// scheduler disables auto-save; explicit saves still work.
func NewLoadWorkspaceUseCase(repo repository.WorkspaceRepository, scheduler layout.SaveScheduler) *LoadWorkspaceUseCase {
	return &LoadWorkspaceUseCase{repo: repo, scheduler: scheduler}
}

// LoadWorkspaceInput contains the parameters for loading a workspace.
type LoadWorkspaceInput struct {
	Name    string
	Router  layout.Router
	AddApp  layout.AddAppFunc
	Factory layout.ComponentFactory

	// CreateDefault adds a default dashboard whenever the list is empty.
	CreateDefault bool
	DefaultTitle  string
}

// LoadWorkspaceOutput contains the restored list.
type LoadWorkspaceOutput struct {
	List *layout.DashboardList
	// Created is set when nothing was stored under the name yet. The new
	// workspace has been saved.
	Created bool
}

// Execute builds a dashboard list bound to the repository and loads it.
func (uc *LoadWorkspaceUseCase) Execute(ctx context.Context, input LoadWorkspaceInput) (*LoadWorkspaceOutput, error) {
	name, err := NormalizeWorkspaceName(input.Name)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithWorkspace(ctx, name)
	log := logging.FromContext(ctx)

	list := layout.NewDashboardList()
	if input.Factory != nil {
		list.SetComponentFactory(input.Factory)
	}
	list.SetRouter(input.Router)
	list.SetAddApp(input.AddApp)
	list.SetCreateDefault(input.CreateDefault)
	if input.DefaultTitle != "" {
		list.SetDefaultTitle(input.DefaultTitle)
	}
	if uc.scheduler != nil {
		list.SetSaveScheduler(uc.scheduler)
	}

	created := false
	list.SetLoader(func(ctx context.Context) (*layout.Config, error) {
		cfg, err := uc.Fetch(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			created = true
			return &layout.Config{Type: layout.TypeDashboardList}, nil
		}
		return cfg, err
	})
	list.SetSaver(func(ctx context.Context, cfg layout.Config) error {
		return uc.repo.Save(ctx, name, cfg)
	})

	if err := list.Load(ctx); err != nil {
		return nil, fmt.Errorf("load workspace %q: %w", name, err)
	}

	if created {
		if err := list.Save(ctx); err != nil {
			return nil, fmt.Errorf("save new workspace %q: %w", name, err)
		}
	}

	log.Info().
		Bool("created", created).
		Int("dashboard_count", list.DashboardCount()).
		Bool("auto_save", list.AutoSaveArmed()).
		Msg("workspace loaded")

	return &LoadWorkspaceOutput{List: list, Created: created}, nil
}

// Fetch returns a copy of the stored configuration. Concurrent fetches of
// the same name share one repository read.
func (uc *LoadWorkspaceUseCase) Fetch(ctx context.Context, name string) (*layout.Config, error) {
	v, err, shared := uc.group.Do(name, func() (any, error) {
		return uc.repo.Get(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.FromContext(ctx).Debug().Str("workspace", name).Msg("workspace read shared with concurrent load")
	}
	cfg, _ := v.(*layout.Config)
	if cfg == nil {
		return nil, repository.ErrNotFound
	}
	return cfg.Clone(), nil
}
