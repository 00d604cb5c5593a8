package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pavanTkumar/watch-price-app/internal/cli"
	"github.com/pavanTkumar/watch-price-app/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories [service-type]",
		Short: "List category labels per service type",
		Long: `Show the category labels available for each service type: the built-in
sets plus any label already used in the ledger. Custom labels are
created simply by recording a service with them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openReconciler(ctx)
			if err != nil {
				return err
			}

			serviceTypes := model.BuiltinServiceTypes()
			if len(args) == 1 {
				serviceTypes = []model.ServiceType{model.ParseServiceType(args[0])}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.HeaderStyle.Render("Service Type"),
				cli.HeaderStyle.Render("Categories"))

			for _, st := range serviceTypes {
				labels := r.Categories().Labels(st)
				fmt.Fprintf(w, "%s\t%s\n", st, strings.Join(labels, ", "))
			}

			return nil
		},
	}
}
