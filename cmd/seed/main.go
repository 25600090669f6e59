package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/service"
	"github.com/storefront/shop-api/internal/infrastructure/db/relational"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "shop-seed"})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("seed failed")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("seed complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := relational.Connect(ctx, relational.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = relational.Close(db) }()

	if err := relational.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	seeder := service.NewSeedService(
		relational.NewUserRepository(db),
		relational.NewCategoryRepository(db),
		relational.NewProductRepository(db),
		log,
	)
	return seeder.Seed(ctx)
}
