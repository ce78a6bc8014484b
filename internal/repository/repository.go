package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/skyfly/internal/domain"
)

// BookingStore persists the whole booking collection. Save overwrites
// everything previously stored.
//
// Load returns a non-nil empty collection when nothing is stored yet. On any
// error it still returns an empty collection; content that cannot be decoded
// yields an error wrapping domain.ErrPersistenceCorrupt.
type BookingStore interface {
	Load(ctx context.Context) ([]domain.Booking, error)
	Save(ctx context.Context, bookings []domain.Booking) error
}

func encodeBookings(bookings []domain.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	data, err := json.MarshalIndent(bookings, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode bookings: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeBookings(data []byte) ([]domain.Booking, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Booking{}, fmt.Errorf("%w: empty document", domain.ErrPersistenceCorrupt)
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return []domain.Booking{}, fmt.Errorf("%w: %v", domain.ErrPersistenceCorrupt, err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}
