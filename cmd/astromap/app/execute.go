package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/astromap/pkg/logging"
)

// Execute runs the astromap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "astromap",
		Short:   "Astroneer wiki scraper",
		Version: a.version,
		Long: `Astromap scrapes the Astroneer wiki into a single JSON dataset of
items and recipes.

Each wiki page is fetched once and cached in the input directory. Page
parsers turn pages into partial records that are combined by a merge
policy tree and written to <output-dir>/data.json.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "policy",
		Title: "Policy Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.astromap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.PolicyFile, "policy", a.config.PolicyFile, "merge policy file (yaml, json or json5)")

	rootCmd.SetVersionTemplate("astromap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")
	policyFile := mustGetString(cmd, "policy")

	// An explicit --config replaces whatever was loaded at startup
	if cmd.Flags().Changed("config") {
		config, err := LoadConfigFile(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if cmd.Flags().Changed("policy") {
		a.config.PolicyFile = policyFile
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
