package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPersistenceCorrupt = errors.New("persisted bookings are corrupt")
)
