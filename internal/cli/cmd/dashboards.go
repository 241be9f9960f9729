package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/layout"
)

var dashboardsCmd = &cobra.Command{
	Use:     "dashboards",
	Aliases: []string{"db"},
	Short:   "Manage the dashboards of a workspace",
	Long: `List, add, rename, activate and remove the dashboards of the selected
workspace. A dashboard is referenced by its 1-based position or its title.

Run without a subcommand to list them.`,
	RunE: runDashboardsList,
}

var dashboardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dashboards",
	RunE:  runDashboardsList,
}

var dashboardsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Append a dashboard and make it active",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDashboardsAdd,
}

var dashboardsRenameCmd = &cobra.Command{
	Use:   "rename <dashboard> <title>",
	Short: "Change the title of a dashboard",
	Args:  cobra.ExactArgs(2),
	RunE:  runDashboardsRename,
}

var dashboardsActivateCmd = &cobra.Command{
	Use:   "activate <dashboard>",
	Short: "Make a dashboard active",
	Args:  cobra.ExactArgs(1),
	RunE:  runDashboardsActivate,
}

var dashboardsRemoveCmd = &cobra.Command{
	Use:     "remove <dashboard>",
	Aliases: []string{"rm"},
	Short:   "Remove a dashboard",
	Long: `Remove a dashboard and close its windows. Removing the last dashboard
creates the default one when dashboards.create_default is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runDashboardsRemove,
}

func init() {
	rootCmd.AddCommand(dashboardsCmd)
	dashboardsCmd.AddCommand(
		dashboardsListCmd,
		dashboardsAddCmd,
		dashboardsRenameCmd,
		dashboardsActivateCmd,
		dashboardsRemoveCmd,
	)
}

func runDashboardsList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out, err := app.LoadWorkspace(app.Ctx(), nil)
	if err != nil {
		return err
	}
	fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDashboards(app.Workspace, out.List.Config()))
	return nil
}

func runDashboardsAdd(_ *cobra.Command, args []string) error {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	return editDashboards(func(list *layout.DashboardList) (string, error) {
		if title == "" {
			title = GetApp().Config.Dashboards.DefaultTitle
		}
		d, err := list.NewDashboard(title)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Dashboard %q added at position %d.", d.Title(), list.IndexOf(d)+1), nil
	})
}

func runDashboardsRename(_ *cobra.Command, args []string) error {
	return editDashboards(func(list *layout.DashboardList) (string, error) {
		d, err := findDashboard(list, args[0])
		if err != nil {
			return "", err
		}
		old := d.Title()
		d.SetTitle(args[1])
		return fmt.Sprintf("Dashboard %q renamed to %q.", old, d.Title()), nil
	})
}

func runDashboardsActivate(_ *cobra.Command, args []string) error {
	return editDashboards(func(list *layout.DashboardList) (string, error) {
		d, err := findDashboard(list, args[0])
		if err != nil {
			return "", err
		}
		list.Activate(d)
		return fmt.Sprintf("Dashboard %q is active.", d.Title()), nil
	})
}

func runDashboardsRemove(_ *cobra.Command, args []string) error {
	return editDashboards(func(list *layout.DashboardList) (string, error) {
		d, err := findDashboard(list, args[0])
		if err != nil {
			return "", err
		}
		list.Remove(d)
		return fmt.Sprintf("Dashboard %q removed, %d left.", d.Title(), list.DashboardCount()), nil
	})
}

// editDashboards loads the workspace, applies edit and saves the result.
func editDashboards(edit func(list *layout.DashboardList) (string, error)) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	return editWorkspace(app, func(list *layout.DashboardList) error {
		msg, err := edit(list)
		if err != nil {
			return err
		}
		fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDone("%s", msg))
		return nil
	})
}

// Size of the viewport used when editing without a terminal. Grids
// place their windows against it.
const (
	headlessWidth  = 160
	headlessHeight = 48
)

func editWorkspace(app *cli.App, edit func(list *layout.DashboardList) error) error {
	ctx := app.Ctx()
	out, err := app.LoadWorkspace(ctx, nil)
	if err != nil {
		return err
	}
	out.List.SetViewport(0, 0, headlessWidth, headlessHeight)
	if err := edit(out.List); err != nil {
		return err
	}
	if err := out.List.Save(ctx); err != nil {
		return fmt.Errorf("save workspace %q: %w", app.Workspace, err)
	}
	return nil
}

// findDashboard resolves a 1-based position or a case-insensitive title.
func findDashboard(list *layout.DashboardList, ref string) (*layout.Dashboard, error) {
	dashboards := list.Dashboards()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(dashboards) {
			return nil, fmt.Errorf("dashboard %d out of range (1-%d)", n, len(dashboards))
		}
		return dashboards[n-1], nil
	}
	for _, d := range dashboards {
		if strings.EqualFold(d.Title(), ref) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no dashboard titled %q", ref)
}
