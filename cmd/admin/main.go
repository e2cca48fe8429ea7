package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bienestar-app/bienestar/cmd/admin/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Operator tools for the Bienestar API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.ProgressCmd())
	rootCmd.AddCommand(cmd.BadgesCmd())
	rootCmd.AddCommand(cmd.CategoriesCmd())
	rootCmd.AddCommand(cmd.UsersCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
