package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli/styles"
)

const schemaFilePerm = 0o644

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of layout files",
	Long: `Print the JSON Schema describing exported layouts and the stored
workspace documents.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write to a file instead of stdout")
}

func runSchema(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	data, err := app.LayoutSchemaUC.Execute(app.Ctx())
	if err != nil {
		return err
	}
	if schemaOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(schemaOutput, data, schemaFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", schemaOutput, err)
	}
	fmt.Println(styles.NewConfigRenderer(app.Theme).RenderWritten("Layout schema written to", schemaOutput))
	return nil
}
