package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/rentalhub-backend/api/routes"
	"github.com/angelmondragon/rentalhub-backend/internal/attributes"
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/products"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/internal/rentals"
	"github.com/angelmondragon/rentalhub-backend/pkg/config"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/instance"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
	"github.com/angelmondragon/rentalhub-backend/pkg/migrate"
	"github.com/angelmondragon/rentalhub-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"env": cfg.App.Env, "instance": instance.GetID()},
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	regionRepo := regions.NewRepository(dbClient.DB())
	periodRepo := rentalperiods.NewRepository(dbClient.DB())
	pricingRepo := pricing.NewRepository(dbClient.DB())

	regionService, err := regions.NewService(regionRepo, dbClient)
	if err != nil {
		return err
	}
	periodService, err := rentalperiods.NewService(periodRepo, dbClient)
	if err != nil {
		return err
	}
	attributeService, err := attributes.NewService(attributes.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return err
	}
	pricingService, err := pricing.NewService(pricingRepo, dbClient)
	if err != nil {
		return err
	}
	productService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient, regionRepo, periodRepo, pricingRepo)
	if err != nil {
		return err
	}
	rentalService, err := rentals.NewService(
		rentals.NewRepository(dbClient.DB()),
		pricingRepo,
		dbClient,
		loc,
		metrics.NewBookingMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		return err
	}

	handler := routes.NewRouter(cfg, logg, routes.Dependencies{
		DB:            dbClient,
		Redis:         redisClient,
		HTTPMetrics:   metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Gatherer:      prometheus.DefaultGatherer,
		Regions:       regionService,
		RentalPeriods: periodService,
		Attributes:    attributeService,
		Pricing:       pricingService,
		Products:      productService,
		Rentals:       rentalService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"addr":     addr,
		"timezone": loc.String(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
