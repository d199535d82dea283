package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratekeeper/ratekeeper/internal/infrastructure/config"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/database"
	"github.com/ratekeeper/ratekeeper/internal/infrastructure/persistence/seeds"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database",
		Long:  `Ensure the default subscription plan exists and apply a seed manifest of plans, clients and rate limit rules.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "./configs/seed.yaml", "Path to the seed manifest")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log.Infow("seeding database", "environment", env, "file", file)

	if err := seeds.EnsureDefaultPlan(database.Get()); err != nil {
		log.Errorw("failed to ensure default plan", "error", err)
		return fmt.Errorf("failed to ensure default plan: %w", err)
	}

	if err := seeds.ApplyFile(database.Get(), file, log); err != nil {
		log.Errorw("failed to apply seed file", "error", err)
		return fmt.Errorf("failed to apply seed file: %w", err)
	}

	log.Infow("database seeded successfully")
	fmt.Println("Database seeded successfully")

	return nil
}
