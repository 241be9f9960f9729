package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/layout"
)

var layoutDashboard string

var layoutCmd = &cobra.Command{
	Use:   "layout [preset]",
	Short: "Show or apply a layout preset",
	Long: `Without an argument, print the preset each dashboard matches.

With a preset, rebuild a dashboard with the same windows:
  tabs        one stack holding every window
  columns-N   N stacks side by side
  rows-N      N stacks on top of each other
  grid        one grid, windows placed in reading order

Examples:
  tiledash layout                     # detect presets
  tiledash layout columns-2           # two columns on the active dashboard
  tiledash layout grid --dashboard 2  # grid on the second dashboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().StringVarP(&layoutDashboard, "dashboard", "d", "", "dashboard position or title (default active)")
}

func runLayout(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewWorkspacesRenderer(app.Theme)

	if len(args) == 0 {
		out, err := app.LoadWorkspace(app.Ctx(), nil)
		if err != nil {
			return err
		}
		active := out.List.ActiveDashboard()
		for i, d := range out.List.Dashboards() {
			marker := " "
			if d == active {
				marker = "●"
			}
			fmt.Printf("%s %d %-20s %s\n", marker, i+1, d.Title(), app.ManageLayoutUC.Detect(d))
		}
		return nil
	}

	preset, err := usecase.ParsePreset(args[0])
	if err != nil {
		return err
	}
	return editWorkspace(app, func(list *layout.DashboardList) error {
		d := list.ActiveDashboard()
		if layoutDashboard != "" {
			if d, err = findDashboard(list, layoutDashboard); err != nil {
				return err
			}
		}
		if d == nil {
			return fmt.Errorf("workspace %q has no dashboard", app.Workspace)
		}
		if err := app.ManageLayoutUC.Apply(app.Ctx(), d, preset); err != nil {
			return err
		}
		fmt.Println(renderer.RenderDone("Dashboard %q now uses %s (%d windows).", d.Title(), preset, len(d.Windows())))
		return nil
	})
}
