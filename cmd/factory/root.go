package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "factory",
		Short: "Car factory record-keeping service",
		Long: `factory serves the REST API over products, workshops, personnel,
laboratories and their tools.

Examples:
  factory serve --config config/example.yaml
  factory migrate up
  factory migrate status
`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (optional)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	return root
}
