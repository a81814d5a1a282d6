package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/rentalhub-backend/internal/seed"
	"github.com/angelmondragon/rentalhub-backend/pkg/config"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	autoMigrate := flag.Bool("automigrate", false, "build the schema from the models before seeding (sqlite only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	cfg.Service.Kind = "seed"

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"driver": cfg.DB.Driver,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if *autoMigrate && cfg.DB.IsSQLite() {
		if err := migrate.AutoMigrateModels(ctx, dbClient); err != nil {
			logg.Error(ctx, "failed to build sqlite schema", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	seeder, err := seed.NewSeeder(dbClient, seed.DefaultCatalog())
	if err != nil {
		logg.Error(ctx, "invalid seed catalog", err)
		os.Exit(1)
	}
	report, err := seeder.Run(ctx)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"regions":          report.Regions,
		"rental_periods":   report.RentalPeriods,
		"attributes":       report.Attributes,
		"attribute_values": report.AttributeValues,
		"products":         report.Products,
		"pricing":          report.Pricing,
	}), "seed complete")
}
