package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podlanding/podcast-discovery/internal/api"
	"github.com/podlanding/podcast-discovery/internal/discovery"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/render"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	var search string
	var filter string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List shows matching a search and category filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(filter)
			if err != nil {
				return err
			}

			s := ctx.ensureStore()
			loadErr := s.Load(cmd.Context())

			view := discovery.NewState().
				SetSearch(search).
				SetCategory(category).
				Apply(s.Snapshot())

			if jsonOutput {
				if err := writeJSON(cmd, api.NewShowsResponse(view)); err != nil {
					return err
				}
				return loadErr
			}
			if loadErr != nil {
				return loadErr
			}

			out := cmd.OutOrStdout()
			if msg := view.EmptyMessage(); msg != "" {
				fmt.Fprintln(out, msg)
				return nil
			}
			fmt.Fprintln(out, render.ShowTable(view.Visible(), ctx.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match against title and description (case-insensitive)")
	cmd.Flags().StringVarP(&filter, "filter", "f", string(models.CategoryAll), "Category: all, popular or recent")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
