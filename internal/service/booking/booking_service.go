package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/kafka"
	"github.com/Domenick1991/skyfly/internal/metrics"
	"github.com/Domenick1991/skyfly/internal/repository"
	"github.com/rs/zerolog"
)

type BookingUseCase interface {
	Load(ctx context.Context)
	BookTicket(ctx context.Context, passengerName, flightNumber string) (*domain.Booking, error)
	FindCancellable(ctx context.Context, passengerName, flightNumber string) (*Cancellation, error)
	CommitCancellation(ctx context.Context, c *Cancellation) error
	CancelBooking(ctx context.Context, passengerName, flightNumber string) (*domain.Booking, error)
	ListBookings(ctx context.Context) []domain.Booking
}

type FlightLookup interface {
	Lookup(number string) (domain.Flight, bool)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Cancellation is a located booking awaiting confirmation.
type Cancellation struct {
	Booking domain.Booking
	index   int
}

// BookingService owns the in-memory booking collection for the process.
// Every successful mutation rewrites the whole store.
type BookingService struct {
	store              repository.BookingStore
	flights            FlightLookup
	rnd                *rand.Rand
	ids                IDGenerator
	now                func() time.Time
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zerolog.Logger

	bookings []domain.Booking
}

type BookingServiceOption func(*BookingService)

func WithIDGenerator(ids IDGenerator) BookingServiceOption {
	return func(s *BookingService) {
		s.ids = ids
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *zerolog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(
	store repository.BookingStore,
	flights FlightLookup,
	rnd *rand.Rand,
	opts ...BookingServiceOption,
) *BookingService {
	nop := zerolog.Nop()
	service := &BookingService{
		store:    store,
		flights:  flights,
		rnd:      rnd,
		now:      time.Now,
		logger:   &nop,
		bookings: []domain.Booking{},
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.ids == nil {
		service.ids = NewRandomIDGenerator(rnd)
	}
	return service
}

// Load replaces the in-memory collection with the stored one. A store that
// is missing, unreadable or corrupt yields an empty collection.
func (s *BookingService) Load(ctx context.Context) {
	bookings, err := s.store.Load(ctx)
	if err != nil {
		metrics.IncStoreRecovery()
		event := s.logger.Warn().Err(err)
		if errors.Is(err, domain.ErrPersistenceCorrupt) {
			event = event.Bool("corrupt", true)
		}
		event.Msg("bookings store unusable, starting with an empty collection")
		bookings = []domain.Booking{}
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	s.bookings = bookings
}

func (s *BookingService) BookTicket(ctx context.Context, passengerName, flightNumber string) (*domain.Booking, error) {
	name := strings.TrimSpace(passengerName)
	if name == "" {
		metrics.IncBookingFailure("invalid_input")
		return nil, fmt.Errorf("%w: passenger name is required", domain.ErrInvalidInput)
	}

	number := normalizeFlightNumber(flightNumber)
	flight, ok := s.flights.Lookup(number)
	if !ok {
		metrics.IncBookingFailure("flight_not_found")
		return nil, fmt.Errorf("%w: %q", domain.ErrFlightNotFound, number)
	}

	booking := domain.NewBooking(
		s.ids.NewBookingID(),
		name,
		randomSeat(s.rnd),
		s.now().Format(domain.BookingTimeLayout),
		flight,
	)

	next := append(slices.Clone(s.bookings), booking)
	if err := s.store.Save(ctx, next); err != nil {
		metrics.IncBookingFailure("store")
		return nil, fmt.Errorf("save bookings: %w", err)
	}
	s.bookings = next

	metrics.IncBookingCreated()
	s.logger.Info().Str("booking_id", booking.BookingID).Str("flight_no", booking.FlightNo).Str("seat", booking.Seat).Msg("booking created")
	s.publish(ctx, kafka.EventBookingCreated, booking)

	return &booking, nil
}

// FindCancellable locates the first booking, in insertion order, whose
// passenger name matches case-insensitively and whose flight number matches
// after upper-casing. Nothing is removed until CommitCancellation.
func (s *BookingService) FindCancellable(ctx context.Context, passengerName, flightNumber string) (*Cancellation, error) {
	name := strings.TrimSpace(passengerName)
	number := normalizeFlightNumber(flightNumber)

	for i, b := range s.bookings {
		if strings.EqualFold(b.Name, name) && b.FlightNo == number {
			return &Cancellation{Booking: b, index: i}, nil
		}
	}
	return nil, fmt.Errorf("%w: no booking for %q on %q", domain.ErrBookingNotFound, name, number)
}

// CommitCancellation removes the booking located by FindCancellable. It fails
// with ErrBookingNotFound if that booking is no longer at its position.
func (s *BookingService) CommitCancellation(ctx context.Context, c *Cancellation) error {
	if c == nil || c.index < 0 || c.index >= len(s.bookings) || s.bookings[c.index] != c.Booking {
		return fmt.Errorf("%w: booking changed since it was located", domain.ErrBookingNotFound)
	}

	next := slices.Delete(slices.Clone(s.bookings), c.index, c.index+1)
	if err := s.store.Save(ctx, next); err != nil {
		metrics.IncBookingFailure("store")
		return fmt.Errorf("save bookings: %w", err)
	}
	s.bookings = next

	metrics.IncBookingCancelled()
	s.logger.Info().Str("booking_id", c.Booking.BookingID).Str("flight_no", c.Booking.FlightNo).Msg("booking cancelled")
	s.publish(ctx, kafka.EventBookingCancelled, c.Booking)
	return nil
}

// CancelBooking finds and removes a booking without a confirmation step.
func (s *BookingService) CancelBooking(ctx context.Context, passengerName, flightNumber string) (*domain.Booking, error) {
	c, err := s.FindCancellable(ctx, passengerName, flightNumber)
	if err != nil {
		return nil, err
	}
	if err := s.CommitCancellation(ctx, c); err != nil {
		return nil, err
	}
	return &c.Booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context) []domain.Booking {
	return slices.Clone(s.bookings)
}

func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  b.BookingID,
		Passenger:  b.Name,
		FlightNo:   b.FlightNo,
		From:       b.From,
		To:         b.To,
		Date:       b.Date,
		Seat:       b.Seat,
		Price:      b.Price,
		OccurredAt: s.now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.BookingID, event); err != nil {
		s.logger.Warn().Err(err).Str("booking_id", b.BookingID).Str("event", eventType).Msg("failed to publish booking event")
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, b.BookingID, event); err != nil {
			s.logger.Warn().Err(err).Str("booking_id", b.BookingID).Str("event", eventType).Msg("failed to publish notification")
		}
	}
}

func normalizeFlightNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

var _ BookingUseCase = (*BookingService)(nil)
