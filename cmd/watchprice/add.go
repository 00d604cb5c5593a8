package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/cli"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
)

func addCmd() *cobra.Command {
	var (
		categoryLabel string
		serviceType   string
		confirm       bool
	)

	cmd := &cobra.Command{
		Use:   "add <brand> <price>",
		Short: "Record a new watch service",
		Long: `Record a new service transaction. The simple variant derives the
category from the price; the extended variant requires --category and
--service-type.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openReconciler(ctx)
			if err != nil {
				return err
			}

			res, err := r.Add(ctx, engine.Request{
				Brand:       args[0],
				Price:       args[1],
				Category:    categoryLabel,
				ServiceType: serviceType,
				Confirm:     confirm,
			})
			if err != nil {
				return err
			}

			if res.NeedsConfirmation {
				fmt.Println(cli.WarningStyle.Render(res.Message))
				fmt.Println(cli.SubtleStyle.Render("Re-run with --confirm to add it anyway."))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(res.Message))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryLabel, "category", "", "category label (extended variant)")
	cmd.Flags().StringVar(&serviceType, "service-type", "", "service type (extended variant)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "proceed past a duplicate warning")

	return cmd
}
