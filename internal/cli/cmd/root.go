// Package cmd provides Cobra CLI commands for tiledash.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiledash/internal/cli"
	"github.com/bnema/tiledash/internal/domain/build"
)

// annotationLogToFile marks commands that own the terminal and must not
// log to stderr.
const annotationLogToFile = "tiledash/log-to-file"

var (
	app           *cli.App
	buildInfo     build.Info
	configFile    string
	workspaceName string
	rootCmd       = &cobra.Command{
		Use:   "tiledash",
		Short: "A tiling dashboard manager for the terminal",
		Long: `tiledash - dashboards of tiled windows, stacked, split or placed on a grid.

Each workspace holds a list of dashboards. A dashboard arranges its windows
in a tree of splits, stacks and grids, and every change is saved to the
workspace database after a short quiet period.

Use 'tiledash view' to open the interactive view, or the subcommands to
inspect, export, import and rearrange workspaces from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigFile: configFile,
				Workspace:  workspaceName,
				LogToFile:  cmd.Annotations[annotationLogToFile] == "true",
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tiledash/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceName, "workspace", "w", "", "workspace name (default from config)")
}

// Execute runs the root command. The app is closed even when the command
// fails so pending saves are flushed.
func Execute() {
	err := rootCmd.Execute()
	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			fmt.Fprintln(os.Stderr, closeErr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
