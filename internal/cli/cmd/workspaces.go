package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/repository"
)

var (
	workspacesJSON bool
	copyForce      bool
)

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "Manage stored workspaces",
	Long: `List, rename, copy and delete the workspaces stored in the database.

Run without a subcommand to list them.`,
	RunE: runWorkspacesList,
}

var workspacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workspaces",
	RunE:  runWorkspacesList,
}

var workspacesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspacesDelete,
}

var workspacesRenameCmd = &cobra.Command{
	Use:   "rename <from> <to>",
	Short: "Rename a workspace",
	Args:  cobra.ExactArgs(2),
	RunE:  runWorkspacesRename,
}

var workspacesCopyCmd = &cobra.Command{
	Use:   "copy <from> <to>",
	Short: "Copy a workspace under a new name",
	Args:  cobra.ExactArgs(2),
	RunE:  runWorkspacesCopy,
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
	workspacesCmd.AddCommand(workspacesListCmd, workspacesDeleteCmd, workspacesRenameCmd, workspacesCopyCmd)
	for _, c := range []*cobra.Command{workspacesCmd, workspacesListCmd} {
		c.Flags().BoolVar(&workspacesJSON, "json", false, "output as JSON")
	}
	workspacesCopyCmd.Flags().BoolVarP(&copyForce, "force", "f", false, "replace the target workspace")
}

func runWorkspacesList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	items, err := app.ManageWorkspacesUC.List(app.Ctx())
	if err != nil {
		return err
	}
	if workspacesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderList(items, app.Workspace))
	return nil
}

func runWorkspacesDelete(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if err := app.ManageWorkspacesUC.Delete(app.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDone("Workspace %s deleted.", args[0]))
	return nil
}

func runWorkspacesRename(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if err := app.ManageWorkspacesUC.Rename(app.Ctx(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDone("Workspace %s renamed to %s.", args[0], args[1]))
	return nil
}

func runWorkspacesCopy(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	from, err := usecase.NormalizeWorkspaceName(args[0])
	if err != nil {
		return err
	}
	to, err := usecase.NormalizeWorkspaceName(args[1])
	if err != nil {
		return err
	}

	cfg, err := app.LoadWorkspaceUC.Fetch(ctx, from)
	if err != nil {
		return fmt.Errorf("copy workspace %q: %w", from, err)
	}
	if !copyForce {
		switch _, err := app.LoadWorkspaceUC.Fetch(ctx, to); {
		case err == nil:
			return fmt.Errorf("copy workspace to %q: %w (use --force)", to, usecase.ErrWorkspaceExists)
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
	}
	if err := app.SaveWorkspaceUC.Execute(ctx, usecase.SaveWorkspaceInput{Name: to, Config: *cfg}); err != nil {
		return err
	}
	fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDone("Workspace %s copied to %s.", from, to))
	return nil
}
