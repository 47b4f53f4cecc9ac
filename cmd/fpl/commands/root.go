package commands

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X ...commands.version=...".
var version = "dev"

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "fpl",
		Short:        "Federal Poverty Level guideline calculator",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(calcCmd(&logLevel), reportCmd(&logLevel), tableCmd(), serveCmd(&logLevel))
	return root
}
