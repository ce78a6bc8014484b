package summary

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/rs/zerolog"
)

var ErrAccessDenied = errors.New("access denied")

type BookingSource interface {
	Load(ctx context.Context) ([]domain.Booking, error)
}

type AdminUseCase interface {
	Summary(ctx context.Context, password string) (*Summary, error)
}

// Dashboard serves the admin summary behind a single shared secret. It reads
// the collection straight from the store.
type Dashboard struct {
	source BookingSource
	secret []byte
	logger *zerolog.Logger
}

func NewDashboard(source BookingSource, secret string, logger *zerolog.Logger) *Dashboard {
	return &Dashboard{source: source, secret: []byte(secret), logger: logger}
}

func (d *Dashboard) Authorize(password string) bool {
	// An unset secret locks the dashboard.
	if len(d.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), d.secret) == 1
}

func (d *Dashboard) Summary(ctx context.Context, password string) (*Summary, error) {
	if !d.Authorize(password) {
		d.logger.Warn().Msg("admin dashboard access denied")
		return nil, ErrAccessDenied
	}

	bookings, err := d.source.Load(ctx)
	if err != nil {
		d.logger.Warn().Err(err).Msg("bookings store unusable, summarizing an empty collection")
		bookings = nil
	}
	return Compute(bookings)
}

var _ AdminUseCase = (*Dashboard)(nil)
