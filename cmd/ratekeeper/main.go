package main

import (
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/ratekeeper/ratekeeper/internal/interfaces/cli/migrate"
	"github.com/ratekeeper/ratekeeper/internal/interfaces/cli/seed"
	"github.com/ratekeeper/ratekeeper/internal/interfaces/cli/server"
)

// @title RateKeeper API
// @version 1.0
// @description Rate limited notification gateway with plan, client and rule management.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{
		Use:   "ratekeeper",
		Short: "RateKeeper - distributed rate limiting for notification APIs",
		Long:  `RateKeeper fronts notification endpoints with subscription-aware rate limiting, with built-in server, migration and seeding commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
