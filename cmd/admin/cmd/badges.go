package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bienestar-app/bienestar/internal/progress"
)

func BadgesCmd() *cobra.Command {
	badgesCmd := &cobra.Command{
		Use:   "badges",
		Short: "Inspect the badge catalog",
	}

	badgesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every badge in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tCRITERIA\tNAME")
			for _, b := range progress.DefaultCatalog().Badges() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s %s\n", b.ID, b.Category, b.Criteria, b.Emoji, b.Name)
			}
			return w.Flush()
		},
	})

	return badgesCmd
}
