package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyfly/api"
	"github.com/Domenick1991/skyfly/config"
	"github.com/Domenick1991/skyfly/internal/bootstrap"
	"github.com/Domenick1991/skyfly/internal/catalog"
	"github.com/Domenick1991/skyfly/internal/logging"
	"github.com/Domenick1991/skyfly/internal/metrics"
	"github.com/Domenick1991/skyfly/internal/repository"
	"github.com/Domenick1991/skyfly/internal/service/flights"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (defaults to $CONFIG_PATH, then config.yaml)")
	pflag.Parse()

	cfg, err := config.LoadOrDefault(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("api server stopped")
	}
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg.App.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flightCatalog := catalog.Default()
	if len(cfg.Flights) > 0 {
		var err error
		if flightCatalog, err = catalog.New(cfg.Flights); err != nil {
			return fmt.Errorf("invalid flight catalog: %w", err)
		}
	}

	store, closeStore, err := repository.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s bookings store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	router := api.NewRouter(
		cfg.HTTP,
		flights.NewFlightService(flightCatalog),
		store,
		summary.NewDashboard(store, cfg.Admin.Password, logger),
		logger,
	)

	return bootstrap.Run(ctx, cfg.HTTP, router, logger)
}
