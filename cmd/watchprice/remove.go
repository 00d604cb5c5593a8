package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/cli"
)

func removeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "remove <brand> <date>",
		Short: "Delete a record",
		Long: `Delete the record identified by its brand and "Date Added" value.
Deletion requires --confirm.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openReconciler(ctx)
			if err != nil {
				return err
			}

			createdAt, err := parseRecordDate(args[1])
			if err != nil {
				return err
			}
			if err := r.SelectByKey(ctx, args[0], createdAt); err != nil {
				return err
			}

			res, err := r.Remove(ctx, confirm)
			if err != nil {
				return err
			}

			if res.NeedsConfirmation {
				fmt.Println(cli.WarningStyle.Render(res.Message))
				fmt.Println(cli.SubtleStyle.Render("Re-run with --confirm to delete it."))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(res.Message))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "actually delete the record")

	return cmd
}
