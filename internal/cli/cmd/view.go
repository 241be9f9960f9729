package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli/model"
	"github.com/bnema/tiledash/internal/infrastructure/config"
	"github.com/bnema/tiledash/internal/logging"
)

const flushTimeout = 5 * time.Second

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive dashboard view",
	Long: `Open the selected workspace in the terminal. Windows are tiled by their
dashboard layout and apps are started as they become visible.

Changes are saved automatically after a short quiet period when autosave
is enabled, and with ctrl+s at any time. Only one view can edit a
database at a time.`,
	Annotations: map[string]string{annotationLogToFile: "true"},
	RunE:        runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	l, err := app.AcquireLock()
	if err != nil {
		return err
	}
	defer func() { _ = l.Release() }()

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	// Hosts may report changes from inside Update, so sends never block it.
	var program atomic.Pointer[tea.Program]
	notify := func() {
		if p := program.Load(); p != nil {
			go p.Send(model.HostChangedMsg{})
		}
	}
	router := app.NewRouter(notify)

	out, err := app.LoadWorkspace(ctx, router.AsLayoutRouter())
	if err != nil {
		return err
	}
	list := out.List
	log.Info().
		Str("workspace", app.Workspace).
		Int("dashboards", list.DashboardCount()).
		Bool("created", out.Created).
		Msg("workspace opened")

	vm := model.NewViewModel(ctx, app.Theme, model.ViewModelConfig{
		List:         list,
		Layout:       app.ManageLayoutUC,
		Workspace:    app.Workspace,
		DefaultTitle: app.Config.Dashboards.DefaultTitle,
	})
	p := tea.NewProgram(vm, tea.WithAltScreen(), tea.WithContext(ctx))
	program.Store(p)

	if err := app.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	} else {
		app.ConfigManager.OnConfigChange(func(cfg *config.Config) {
			p.Send(model.ConfigReloadedMsg{Config: cfg})
		})
	}

	_, runErr := p.Run()
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("run view: %w", runErr)
	}

	// Pending saves land before the lock is released.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if app.Autosave != nil {
		return app.Autosave.Flush(saveCtx)
	}
	if err := list.Save(saveCtx); err != nil {
		return fmt.Errorf("save workspace %q: %w", app.Workspace, err)
	}
	return nil
}
