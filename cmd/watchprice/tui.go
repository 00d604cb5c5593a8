package main

import (
	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive ledger",
		Long:  `Open the terminal UI: a sortable record table with an add/edit form.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := openReconciler(ctx)
			if err != nil {
				return err
			}

			return tui.Run(ctx, r)
		},
	}
}
