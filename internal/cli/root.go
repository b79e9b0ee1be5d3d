// Package cli implements the commonweal command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commonweal/commonweal/internal/config"
)

// newRootCmd builds the root command and its subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "commonweal",
		Short: "Event-driven application core for the commonweal platform",
		Long: "commonweal hosts the typed event bus and reactive state container\n" +
			"behind the neighborhood mutual-aid platform: auth sessions, communities,\n" +
			"shared resources, and thanks, all driven by request/success/failure events.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a YAML config file")
	root.PersistentFlags().String("log.level", "", "minimum log level (trace, debug, info, warn, error)")
	root.PersistentFlags().String("log.format", "", "log format (console, json)")
	root.PersistentFlags().String("seed.path", "", "path to a seed JSON document")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig resolves the merged configuration for a command invocation.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path, cmd.Flags())
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
