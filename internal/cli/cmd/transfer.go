package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/infrastructure/codec"
)

var (
	transferFormat    string
	exportOutput      string
	importOverwrite   bool
	importAsWorkspace string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a workspace to a JSON, TOML or YAML file",
	Long: `Write the stored workspace to stdout or a file.

The format follows the file extension unless --format is given.

Examples:
  tiledash export > work.json
  tiledash export -w ops -o ops.yaml
  tiledash export --format toml`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Store a layout file as a workspace",
	Long: `Read a dashboard list or a single dashboard and store it as the selected
workspace. Unknown component types are imported as stacks.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().StringVarP(&transferFormat, "format", "f", "", "json, toml or yaml (default from extension)")
	}
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace an existing workspace")
	importCmd.Flags().StringVar(&importAsWorkspace, "as", "", "store under this name instead of --workspace")
}

func runExport(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	format := transferFormat
	var out io.Writer = os.Stdout
	if exportOutput != "" {
		if format == "" {
			format = codec.FormatFromPath(exportOutput)
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		out = f
	}
	if format == "" {
		format = "json"
	}

	if err := app.ExportWorkspaceUC.Execute(app.Ctx(), usecase.ExportWorkspaceInput{
		Name:   app.Workspace,
		Format: format,
		Output: out,
	}); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Println(styles.NewWorkspacesRenderer(app.Theme).RenderDone("Workspace %s exported to %s.", app.Workspace, exportOutput))
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	path := args[0]
	format := transferFormat
	var in io.Reader = os.Stdin
	if path != "-" {
		if format == "" {
			format = codec.FormatFromPath(path)
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		in = f
	}
	if format == "" {
		format = "json"
	}

	name := app.Workspace
	if importAsWorkspace != "" {
		name = importAsWorkspace
	}
	res, err := app.ImportWorkspaceUC.Execute(app.Ctx(), usecase.ImportWorkspaceInput{
		Name:      name,
		Format:    format,
		Input:     in,
		Overwrite: importOverwrite,
	})
	if err != nil {
		return err
	}

	renderer := styles.NewWorkspacesRenderer(app.Theme)
	fmt.Println(renderer.RenderDone("Imported %d dashboards and %d windows into %s.", res.Dashboards, res.Windows, name))
	if res.UnknownTypes > 0 {
		fmt.Println(renderer.RenderWarning("%d unknown component types were imported as stacks.", res.UnknownTypes))
	}
	return nil
}
