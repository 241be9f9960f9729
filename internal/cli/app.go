// Package cli wires the tiledash dependencies for the cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tiledash/internal/application/port"
	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/build"
	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/infrastructure/apphost"
	"github.com/bnema/tiledash/internal/infrastructure/autosave"
	"github.com/bnema/tiledash/internal/infrastructure/codec"
	"github.com/bnema/tiledash/internal/infrastructure/config"
	"github.com/bnema/tiledash/internal/infrastructure/lock"
	"github.com/bnema/tiledash/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tiledash/internal/infrastructure/schema"
	"github.com/bnema/tiledash/internal/infrastructure/xdg"
	"github.com/bnema/tiledash/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Options selects how the App is built.
type Options struct {
	// ConfigFile overrides the XDG config file.
	ConfigFile string
	// Workspace overrides the configured workspace name.
	Workspace string
	// LogToFile sends logs to the rotated log file instead of stderr.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info
	Paths         port.XDGPaths
	// Workspace is the name every workspace command acts on.
	Workspace string

	db         *sqlite.LazyDB
	Workspaces repository.WorkspaceRepository
	// Autosave is nil when autosave is disabled.
	Autosave *autosave.Service

	// Use cases
	LoadWorkspaceUC    *usecase.LoadWorkspaceUseCase
	SaveWorkspaceUC    *usecase.SaveWorkspaceUseCase
	ManageWorkspacesUC *usecase.ManageWorkspacesUseCase
	ExportWorkspaceUC  *usecase.ExportWorkspaceUseCase
	ImportWorkspaceUC  *usecase.ImportWorkspaceUseCase
	LayoutSchemaUC     *usecase.GetLayoutSchemaUseCase
	ManageLayoutUC     *usecase.ManageLayoutUseCase

	// Context with logger
	ctx       context.Context
	logCloser io.Closer
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if opts.ConfigFile != "" {
		mgr, err = config.NewManagerAt(opts.ConfigFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCloser, err := newLogger(cfg, opts.LogToFile)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().
		Str("config_file", mgr.GetConfigFile()).
		Str("db_path", cfg.Database.Path).
		Msg("configuration loaded")

	workspace := cfg.Workspace
	if opts.Workspace != "" {
		workspace = opts.Workspace
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)
	repo := sqlite.NewLazyWorkspaceRepository(db)

	var (
		saver     *autosave.Service
		scheduler layout.SaveScheduler
	)
	if cfg.Autosave.Enabled {
		saver = autosave.NewService(cfg.Autosave.DelayMs)
		saver.Start(logging.WithComponent(ctx, "autosave"))
		scheduler = saver
	}

	codecs := codec.All()
	return &App{
		Config:             cfg,
		ConfigManager:      mgr,
		Theme:              styles.NewTheme(),
		Paths:              xdg.New(),
		Workspace:          workspace,
		db:                 db,
		Workspaces:         repo,
		Autosave:           saver,
		LoadWorkspaceUC:    usecase.NewLoadWorkspaceUseCase(repo, scheduler),
		SaveWorkspaceUC:    usecase.NewSaveWorkspaceUseCase(repo),
		ManageWorkspacesUC: usecase.NewManageWorkspacesUseCase(repo),
		ExportWorkspaceUC:  usecase.NewExportWorkspaceUseCase(repo, codecs...),
		ImportWorkspaceUC:  usecase.NewImportWorkspaceUseCase(repo, codecs...),
		LayoutSchemaUC:     usecase.NewGetLayoutSchemaUseCase(schema.NewGenerator()),
		ManageLayoutUC:     usecase.NewManageLayoutUseCase(),
		ctx:                ctx,
		logCloser:          logCloser,
	}, nil
}

// newLogger builds the zerolog logger. With toFile the output goes to the
// rotated log file so it does not tear the terminal view.
func newLogger(cfg *config.Config, toFile bool) (zerolog.Logger, io.Closer, error) {
	if !toFile || cfg.Logging.File == "" {
		return logging.NewFromConfigValues(cfg.Logging.Level, string(cfg.Logging.Format)), nil, nil
	}

	rotator, err := logging.NewFileRotator(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	lc := logging.DefaultConfig()
	if lvl, ok := logging.ParseLevel(cfg.Logging.Level); ok {
		lc.Level = lvl
	}
	lc.Format = string(cfg.Logging.Format)
	lc.TimeFormat = "15:04:05"
	lc.Output = rotator
	return logging.New(logging.ApplyEnv(lc)), rotator, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// LoadWorkspace restores the selected workspace. router may be nil for
// commands that never connect windows.
func (a *App) LoadWorkspace(ctx context.Context, router layout.Router) (*usecase.LoadWorkspaceOutput, error) {
	return a.LoadWorkspaceUC.Execute(ctx, usecase.LoadWorkspaceInput{
		Name:          a.Workspace,
		Router:        router,
		AddApp:        a.Catalog().AddApp(),
		Factory:       a.Config.LayoutDefaults().Factory(),
		CreateDefault: a.Config.Dashboards.CreateDefault,
		DefaultTitle:  a.Config.Dashboards.DefaultTitle,
	})
}

// Catalog returns the apps offered for new panes.
func (a *App) Catalog() *apphost.Catalog {
	return apphost.NewCatalog(a.Config.Apps)
}

// NewRouter creates the app router. notify runs whenever a host changes
// what it shows.
func (a *App) NewRouter(notify func()) *apphost.Router {
	opts := []apphost.Option{
		apphost.WithLogger(logging.FromContext(a.ctx).With().Str("component", "apphost").Logger()),
		apphost.WithNotifier(notify),
	}
	if dir, err := a.Paths.AppsDir(); err == nil {
		opts = append(opts, apphost.WithAppsDir(dir))
	}
	return apphost.NewRouter(a.Config.Apps, opts...)
}

// AcquireLock takes the single-editor lock of the database.
func (a *App) AcquireLock() (*lock.Lock, error) {
	path := config.GetLockFile(a.Config.Database.Path)
	l, err := lock.Acquire(path)
	if errors.Is(err, lock.ErrLocked) {
		return nil, fmt.Errorf("another tiledash view is editing %s: %w", a.Config.Database.Path, err)
	}
	return l, err
}

// Close flushes pending saves and releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.Autosave != nil {
		ctx, cancel := context.WithTimeout(a.ctx, shutdownTimeout)
		errs = append(errs, a.Autosave.Stop(ctx))
		cancel()
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
