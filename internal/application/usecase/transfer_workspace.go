package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/tiledash/internal/application/port"
	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

// ExportWorkspaceUseCase writes a stored workspace in a file format.
type ExportWorkspaceUseCase struct {
	repo   repository.WorkspaceRepository
	codecs codecIndex
}

// NewExportWorkspaceUseCase creates a new ExportWorkspaceUseCase.
func NewExportWorkspaceUseCase(repo repository.WorkspaceRepository, codecs ...port.LayoutCodec) *ExportWorkspaceUseCase {
	return &ExportWorkspaceUseCase{repo: repo, codecs: newCodecIndex(codecs)}
}

// ExportWorkspaceInput contains the parameters for an export.
type ExportWorkspaceInput struct {
	Name   string
	Format string
	Output io.Writer
}

// Execute encodes the stored workspace into input.Output.
func (uc *ExportWorkspaceUseCase) Execute(ctx context.Context, input ExportWorkspaceInput) error {
	name, err := NormalizeWorkspaceName(input.Name)
	if err != nil {
		return err
	}
	codec, err := uc.codecs.lookup(input.Format)
	if err != nil {
		return err
	}
	cfg, err := uc.repo.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("export workspace %q: %w", name, err)
	}
	if err := codec.Encode(input.Output, *cfg); err != nil {
		return fmt.Errorf("encode workspace %q as %s: %w", name, codec.Format(), err)
	}
	logging.FromContext(ctx).Debug().
		Str("workspace", name).
		Str("format", codec.Format()).
		Int("window_count", cfg.CountWindows()).
		Msg("workspace exported")
	return nil
}

// ImportWorkspaceUseCase reads a layout file and stores it as a workspace.
type ImportWorkspaceUseCase struct {
	repo   repository.WorkspaceRepository
	codecs codecIndex
}

// NewImportWorkspaceUseCase creates a new ImportWorkspaceUseCase.
func NewImportWorkspaceUseCase(repo repository.WorkspaceRepository, codecs ...port.LayoutCodec) *ImportWorkspaceUseCase {
	return &ImportWorkspaceUseCase{repo: repo, codecs: newCodecIndex(codecs)}
}

// ImportWorkspaceInput contains the parameters for an import.
type ImportWorkspaceInput struct {
	Name      string
	Format    string
	Input     io.Reader
	Overwrite bool
}

// ImportWorkspaceOutput summarizes the stored workspace.
type ImportWorkspaceOutput struct {
	Dashboards   int
	Windows      int
	UnknownTypes int
}

// Execute decodes, rebuilds and stores the layout. Rebuilding normalizes
// the configuration: unknown component types come back as stacks.
func (uc *ImportWorkspaceUseCase) Execute(ctx context.Context, input ImportWorkspaceInput) (*ImportWorkspaceOutput, error) {
	log := logging.FromContext(ctx)

	name, err := NormalizeWorkspaceName(input.Name)
	if err != nil {
		return nil, err
	}
	codec, err := uc.codecs.lookup(input.Format)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decode(input.Input)
	if err != nil {
		return nil, fmt.Errorf("decode %s layout: %w", codec.Format(), err)
	}
	cfg, err := workspaceConfig(decoded)
	if err != nil {
		return nil, err
	}

	if !input.Overwrite {
		switch _, err := uc.repo.Get(ctx, name); {
		case err == nil:
			return nil, fmt.Errorf("import workspace %q: %w", name, ErrWorkspaceExists)
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("import workspace %q: %w", name, err)
		}
	}

	unknown := countUnknownTypes(cfg)
	root, err := layout.Build(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("import workspace %q: %w", name, err)
	}
	normalized := root.Config()
	if unknown > 0 {
		log.Warn().Int("count", unknown).Msg("unknown component types imported as stacks")
	}

	if err := uc.repo.Save(ctx, name, normalized); err != nil {
		return nil, fmt.Errorf("import workspace %q: %w", name, err)
	}

	out := &ImportWorkspaceOutput{
		Dashboards:   len(normalized.Dashboards),
		Windows:      normalized.CountWindows(),
		UnknownTypes: unknown,
	}
	log.Info().
		Str("workspace", name).
		Str("format", codec.Format()).
		Int("dashboard_count", out.Dashboards).
		Int("window_count", out.Windows).
		Msg("workspace imported")
	return out, nil
}

func countUnknownTypes(cfg layout.Config) int {
	n := 0
	if !cfg.Type.Known() {
		n++
	}
	children := append([]layout.Config{}, cfg.Dashboards...)
	children = append(children, cfg.Windows...)
	if cfg.Component != nil {
		children = append(children, *cfg.Component)
	}
	for _, p := range []*layout.Pane{cfg.Left, cfg.Right, cfg.Top, cfg.Bottom} {
		if p != nil && p.Component != nil {
			children = append(children, *p.Component)
		}
	}
	for _, c := range children {
		n += countUnknownTypes(c)
	}
	return n
}
