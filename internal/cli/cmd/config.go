package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/infrastructure/config"
)

var configSchemaStdout bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change the tiledash configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, environment overrides and
normalization, in the config file format.`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and write the config file",
	Long: `Change one setting. Keys use dots, e.g. autosave.delay_ms or
apps.clock. The new configuration is validated before it is written.

Examples:
  tiledash config set autosave.delay_ms 500
  tiledash config set grid.cell_size 6
  tiledash config set apps.clock ~/scripts/clock.js`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the files and directories tiledash uses",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write config.schema.json next to the config file",
	Long: `Generate the JSON Schema of the configuration file. Editors with TOML
schema support use it for completion and validation.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&configSchemaStdout, "stdout", false, "print the schema instead of writing it")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	data, err := config.EncodeOrdered(app.Config)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigSet(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := app.ConfigManager.Set(key, value); err != nil {
		return err
	}
	fmt.Println(styles.NewConfigRenderer(app.Theme).RenderSet(key, value, app.ConfigManager.GetConfigFile()))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	paths := map[string]string{
		"config":   app.ConfigManager.GetConfigFile(),
		"database": app.Config.Database.Path,
		"lock":     config.GetLockFile(app.Config.Database.Path),
		"log":      app.Config.Logging.File,
	}
	for name, dir := range map[string]func() (string, error){
		"data":  app.Paths.DataDir,
		"state": app.Paths.StateDir,
		"cache": app.Paths.CacheDir,
		"apps":  app.Paths.AppsDir,
	} {
		if p, err := dir(); err == nil {
			paths[name] = p
		}
	}
	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderPaths(paths))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if configSchemaStdout {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	path, err := config.GenerateSchemaFile(app.ConfigManager.GetConfigFile())
	if err != nil {
		return err
	}
	fmt.Println(styles.NewConfigRenderer(app.Theme).RenderWritten("Config schema written to", path))
	return nil
}
