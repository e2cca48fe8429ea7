package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ProgressCmd() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Maintain gratitude progress records",
	}

	var userID string
	rebuildCmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute a user's progress from all entries and award missing badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeApp, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp()

			p, err := a.ProgressService.Rebuild(userID)
			if err != nil {
				return fmt.Errorf("failed to rebuild progress: %w", err)
			}

			unlocked, err := a.BadgeService.CheckForNewBadges(userID, p)
			if err != nil {
				return fmt.Errorf("failed to check badges: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user %s: %d entries, streak %d (longest %d), %d categories\n",
				userID, p.TotalEntries, p.CurrentStreak, p.LongestStreak, len(p.CategoriesUsed))
			for _, b := range unlocked {
				fmt.Fprintf(out, "  unlocked %s %s\n", b.Emoji, b.Name)
			}
			return nil
		},
	}
	rebuildCmd.Flags().StringVar(&userID, "user", "", "User ID to rebuild")
	_ = rebuildCmd.MarkFlagRequired("user")

	progressCmd.AddCommand(rebuildCmd)
	return progressCmd
}
