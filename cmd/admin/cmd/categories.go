package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bienestar-app/bienestar/internal/progress"
)

func CategoriesCmd() *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect the gratitude category table",
	}

	categoriesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories in matching order; the fallback comes last",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := progress.DefaultCatalog()
			fallback := catalog.DefaultCategory()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDER\tCATEGORY\tNOTE")
			for i, name := range catalog.Categories() {
				note := ""
				if name == fallback {
					note = "fallback when no keyword matches"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, name, note)
			}
			return w.Flush()
		},
	})

	return categoriesCmd
}
