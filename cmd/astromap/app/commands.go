package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/astromap/cmd/astromap/cmd/merge"
	"github.com/agentstation/astromap/cmd/astromap/cmd/pages"
	"github.com/agentstation/astromap/cmd/astromap/cmd/policy"
	"github.com/agentstation/astromap/cmd/astromap/cmd/scrape"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(scrape.NewCommand(a))
	rootCmd.AddCommand(pages.NewCommand(a))

	// Policy commands
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(policy.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("astromap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
