package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/chartseed/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "chartseed",
		Short:   "Chart of accounts and financial statement reference data",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "project directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCheckCommand(&dir))
	rootCmd.AddCommand(newSeedCommand(&dir))
	rootCmd.AddCommand(newComputeCommand(&dir))

	return rootCmd
}
