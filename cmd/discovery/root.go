package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/podlanding/podcast-discovery/internal/config"
)

// newRootCommand builds the CLI. The returned context owns the catalog store
// and must be closed once the command has run.
func newRootCommand() (*cobra.Command, *commandContext) {
	var catalogFlag string
	var logLevelFlag string
	var noCacheFlag bool

	ctx := newCommandContext(&catalogFlag, &noCacheFlag)

	rootCmd := &cobra.Command{
		Use:           "discovery",
		Short:         "Browse and search the podcast catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevelFlag != "" {
				level := config.ParseLevel(logLevelFlag)
				zerolog.SetGlobalLevel(level)
				config.SetLogger(config.GetLogger().Level(level))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog-url", "", "Catalog endpoint (overrides catalog_url)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Skip the response cache")

	rootCmd.AddCommand(newShowsCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newGenresCommand())
	rootCmd.AddCommand(newBrowseCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd, ctx
}

// execute runs cmd and releases the store's resources whether or not the
// command failed.
func execute(cmd *cobra.Command, ctx *commandContext) error {
	defer ctx.close()
	return cmd.Execute()
}
