package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyfly/config"
	"github.com/Domenick1991/skyfly/internal/kafka"
	"github.com/Domenick1991/skyfly/internal/logging"
	"github.com/Domenick1991/skyfly/internal/notify"
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
		logger.Error().Err(err).Msg("worker stopped")
	}
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zerolog.Logger) error {
	if !cfg.Kafka.Enabled() {
		return errors.New("kafka.brokers is empty, nothing to consume")
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, logger)
	defer consumer.Close()

	notifier := notify.NewNotifier(os.Stdout, logger)

	logger.Info().Str("topic", topic).Str("group", cfg.Kafka.GroupID).Msg("worker started")
	if err := consumer.Consume(ctx, notifier.Send); err != nil {
		return fmt.Errorf("consume %s: %w", topic, err)
	}
	logger.Info().Msg("worker stopped")
	return nil
}
