package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "juntos",
		Short:   "Shared expenses for couples",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("repo", ".", "project directory")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level (debug, info, warn, error, disabled)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLinkCommand())
	rootCmd.AddCommand(newExpenseCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newLogCommand())

	return rootCmd
}
