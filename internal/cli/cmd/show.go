package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/infrastructure/codec"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the layout tree of a workspace",
	Long: `Print the dashboards, splits, stacks, grids and windows stored for the
selected workspace. The active dashboard and active windows are marked.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the stored configuration as JSON")
}

func runShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	cfg, err := app.LoadWorkspaceUC.Fetch(app.Ctx(), app.Workspace)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderWarning("Workspace %s has not been saved yet.", app.Workspace))
		return nil
	}
	if err != nil {
		return err
	}

	if showJSON {
		return codec.JSON{}.Encode(os.Stdout, *cfg)
	}
	fmt.Println(styles.NewLayoutRenderer(app.Theme).RenderTree(app.Workspace, *cfg))
	return nil
}
