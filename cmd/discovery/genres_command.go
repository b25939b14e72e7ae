package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podlanding/podcast-discovery/internal/genres"
	"github.com/podlanding/podcast-discovery/internal/render"
)

func newGenresCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the genre table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := genres.All()
			if jsonOutput {
				return writeJSON(cmd, all)
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.GenreTable(all))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
