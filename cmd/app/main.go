package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skyfly/config"
	"github.com/Domenick1991/skyfly/internal/bootstrap"
	"github.com/Domenick1991/skyfly/internal/catalog"
	"github.com/Domenick1991/skyfly/internal/cli"
	"github.com/Domenick1991/skyfly/internal/kafka"
	"github.com/Domenick1991/skyfly/internal/logging"
	"github.com/Domenick1991/skyfly/internal/metrics"
	"github.com/Domenick1991/skyfly/internal/receipt"
	"github.com/Domenick1991/skyfly/internal/repository"
	"github.com/Domenick1991/skyfly/internal/service/booking"
	"github.com/Domenick1991/skyfly/internal/service/flights"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"
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
		logger.Error().Err(err).Msg("skyfly stopped")
	}
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Metrics.Address != "" {
		go func() {
			if err := bootstrap.Run(ctx, config.HTTPConfig{Address: cfg.Metrics.Address}, metrics.Handler(), logger); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

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

	seed := cfg.Booking.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := rand.New(rand.NewPCG(seed, seed>>1|1))

	opts := []booking.BookingServiceOption{booking.WithLogger(logger)}
	if cfg.Booking.IDScheme == config.IDSchemeUUID {
		opts = append(opts, booking.WithIDGenerator(booking.UUIDGenerator{}))
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	bookingService := booking.NewBookingService(store, flightCatalog, rnd, opts...)
	bookingService.Load(ctx)

	dashboard := summary.NewDashboard(store, cfg.Admin.Password, logger)

	shellOpts := []cli.Option{cli.WithLogger(logger)}
	if cfg.Receipts.Enabled {
		dir, err := cfg.ReceiptsDir()
		if err != nil {
			return err
		}
		shellOpts = append(shellOpts, cli.WithReceipts(receipt.NewExcelExporter(dir, logger)))
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		shellOpts = append(shellOpts, cli.WithPasswordReader(func() (string, error) {
			password, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			return string(password), err
		}))
	}

	shell := cli.New(bufio.NewReader(os.Stdin), os.Stdout, flights.NewFlightService(flightCatalog), bookingService, dashboard, shellOpts...)

	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx) }()

	// The shell blocks on stdin, so an interrupt is handled here instead.
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		logger.Info().Msg("interrupted")
		return nil
	}
}
