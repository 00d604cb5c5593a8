package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/cli"
	"github.com/pavanTkumar/watch-price-app/internal/common"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
)

func updateCmd() *cobra.Command {
	var (
		newBrand      string
		newPrice      string
		categoryLabel string
		serviceType   string
		confirm       bool
	)

	cmd := &cobra.Command{
		Use:   "update <brand> <date>",
		Short: "Update an existing record",
		Long: `Update the record identified by its brand and "Date Added" value,
e.g.:

  watchprice update Seiko "2024-03-01 10:30" --price 70

Fields not given keep their stored value. The date stamp itself never
changes.`,
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

			selected, err := r.Selected(ctx)
			if err != nil {
				return err
			}
			if selected == nil {
				return common.ErrNoSelection
			}

			// Unspecified fields carry the stored values.
			req := engine.Request{
				Brand:       selected.Brand,
				Price:       selected.Price.String(),
				Category:    selected.Category,
				ServiceType: selected.ServiceType.String(),
				Confirm:     confirm,
			}
			if newBrand != "" {
				req.Brand = newBrand
			}
			if newPrice != "" {
				req.Price = newPrice
			}
			if categoryLabel != "" {
				req.Category = categoryLabel
			}
			if serviceType != "" {
				req.ServiceType = serviceType
			}

			res, err := r.Update(ctx, req)
			if err != nil {
				return err
			}

			if res.NeedsConfirmation {
				fmt.Println(cli.WarningStyle.Render(res.Message))
				fmt.Println(cli.SubtleStyle.Render("Re-run with --confirm to update it anyway."))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(res.Message))
			return nil
		},
	}

	cmd.Flags().StringVar(&newBrand, "brand", "", "new brand")
	cmd.Flags().StringVar(&newPrice, "price", "", "new price")
	cmd.Flags().StringVar(&categoryLabel, "category", "", "new category label")
	cmd.Flags().StringVar(&serviceType, "service-type", "", "new service type")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "proceed past a duplicate warning")

	return cmd
}
