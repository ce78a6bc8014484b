package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/skyfly/config"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Run serves handler on cfg.Address and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, logger *zerolog.Logger) error {
	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("listen http %s: %w", cfg.Address, err)
	}
	return Serve(ctx, lis, handler, logger)
}

func Serve(ctx context.Context, lis net.Listener, handler http.Handler, logger *zerolog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()
	logger.Info().Str("address", lis.Addr().String()).Msg("http server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info().Msg("http server stopped")
		return nil
	}
}
