package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podlanding/podcast-discovery/internal/api"
	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/render"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := ctx.ensureStore()
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}

			show, ok := s.ShowByID(args[0])
			if !ok {
				return apperrors.NewShowNotFoundError(args[0])
			}

			if jsonOutput {
				return writeJSON(cmd, api.NewShowDetail(show, ctx.now()))
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.Detail(show, ctx.now(), render.ShouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
