package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/cli"
	"github.com/pavanTkumar/watch-price-app/internal/engine"
	"github.com/pavanTkumar/watch-price-app/internal/model"
)

func listCmd() *cobra.Command {
	var (
		sortField string
		desc      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all recorded services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := openReconciler(ctx)
			if err != nil {
				return err
			}

			records, err := r.Records(ctx)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render("No records yet. Use 'watchprice add' to create one."))
				return nil
			}

			sortRecordList(records, sortField, desc)

			extended := r.Variant() == engine.VariantExtended

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			if extended {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.HeaderStyle.Render("Brand"),
					cli.HeaderStyle.Render("Price"),
					cli.HeaderStyle.Render("Category"),
					cli.HeaderStyle.Render("Service Type"),
					cli.HeaderStyle.Render("Date Added"))
			} else {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.HeaderStyle.Render("Brand"),
					cli.HeaderStyle.Render("Price"),
					cli.HeaderStyle.Render("Category"),
					cli.HeaderStyle.Render("Date Added"))
			}

			for _, rec := range records {
				if extended {
					fmt.Fprintf(w, "%s\t$%s\t%s\t%s\t%s\n",
						rec.Brand, rec.Price.StringFixed(2), rec.Category, rec.ServiceType, rec.DateAdded())
				} else {
					fmt.Fprintf(w, "%s\t$%s\t%s\t%s\n",
						rec.Brand, rec.Price.StringFixed(2), rec.Category, rec.DateAdded())
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sortField, "sort", "date", "sort column (brand, price, category, date)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")

	return cmd
}

func sortRecordList(records []model.ServiceRecord, field string, desc bool) {
	less := func(a, b model.ServiceRecord) bool {
		switch field {
		case "brand":
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		case "price":
			return a.Price.LessThan(b.Price)
		case "category":
			return a.Category < b.Category
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
