package main

import (
	"github.com/spf13/cobra"

	"github.com/podlanding/podcast-discovery/internal/tui"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), ctx.ensureStore())
		},
	}
}
