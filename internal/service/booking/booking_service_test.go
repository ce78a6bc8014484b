package booking

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/skyfly/internal/catalog"
	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/kafka"
	"github.com/Domenick1991/skyfly/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var seatPattern = regexp.MustCompile(`^([1-9]|[12][0-9]|30)[A-F]$`)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Load(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) Save(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func fixedClock() time.Time {
	return time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
}

func newTestService(store repository.BookingStore, opts ...BookingServiceOption) *BookingService {
	opts = append([]BookingServiceOption{WithClock(fixedClock)}, opts...)
	return NewBookingService(store, catalog.Default(), rand.New(rand.NewPCG(1, 2)), opts...)
}

func newFileService(t *testing.T, opts ...BookingServiceOption) (*BookingService, *repository.FileBookingRepository) {
	t.Helper()
	store := repository.NewFileBookingRepository(filepath.Join(t.TempDir(), "bookings.txt"))
	return newTestService(store, opts...), store
}

func TestBookingService_BookTicket_SnapshotsEveryFlight(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	for _, f := range catalog.Default().All() {
		b, err := service.BookTicket(ctx, "Asha", f.Number)
		require.NoError(t, err)

		assert.Equal(t, f.Number, b.FlightNo)
		assert.Equal(t, f.From, b.From)
		assert.Equal(t, f.To, b.To)
		assert.Equal(t, f.Price, b.Price)
		assert.Equal(t, f.Date, b.Date)
		assert.Regexp(t, seatPattern, b.Seat)
		assert.Regexp(t, `^SKY[1-9][0-9]{3}$`, b.BookingID)
		assert.Equal(t, "2025-10-01 09:30:00", b.BookingTime)
	}
	assert.Len(t, service.ListBookings(ctx), 5)
}

func TestBookingService_BookTicket_NormalizesInput(t *testing.T) {
	service, _ := newFileService(t)

	b, err := service.BookTicket(context.Background(), "  Asha  ", " ai101 ")
	require.NoError(t, err)
	assert.Equal(t, "Asha", b.Name)
	assert.Equal(t, "AI101", b.FlightNo)
}

func TestBookingService_BookTicket_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name        string
		passenger   string
		flight      string
		expectedErr error
	}{
		{name: "empty name", passenger: "", flight: "AI101", expectedErr: domain.ErrInvalidInput},
		{name: "blank name", passenger: " \t ", flight: "AI101", expectedErr: domain.ErrInvalidInput},
		{name: "unknown flight", passenger: "Asha", flight: "XX999", expectedErr: domain.ErrFlightNotFound},
		{name: "empty flight", passenger: "Asha", flight: "", expectedErr: domain.ErrFlightNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockBookingStore{}
			service := newTestService(store)

			booking, err := service.BookTicket(context.Background(), tc.passenger, tc.flight)

			assert.Nil(t, booking)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, service.ListBookings(context.Background()))
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_BookTicket_SaveFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	store := &MockBookingStore{}
	service := newTestService(store)

	existing := domain.Booking{BookingID: "SKY1000", Name: "Ravi", FlightNo: "AI404"}
	store.On("Load", ctx).Return([]domain.Booking{existing}, nil).Once()
	service.Load(ctx)

	store.On("Save", ctx, mock.AnythingOfType("[]domain.Booking")).Return(errors.New("disk full")).Once()

	booking, err := service.BookTicket(ctx, "Asha", "AI101")

	assert.Nil(t, booking)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, []domain.Booking{existing}, service.ListBookings(ctx))
	store.AssertExpectations(t)
}

func TestBookingService_BookTicket_PersistsWholeCollection(t *testing.T) {
	ctx := context.Background()
	service, store := newFileService(t)

	first, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	second, err := service.BookTicket(ctx, "Ravi", "AI404")
	require.NoError(t, err)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{*first, *second}, stored)
}

func TestBookingService_BookTicket_DeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	a, _ := newFileService(t)
	b, _ := newFileService(t)

	ba, err := a.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	bb, err := b.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)

	assert.Equal(t, ba, bb)
}

func TestBookingService_BookTicket_UUIDGenerator(t *testing.T) {
	service, _ := newFileService(t, WithIDGenerator(UUIDGenerator{}))

	b, err := service.BookTicket(context.Background(), "Asha", "AI101")
	require.NoError(t, err)
	assert.Regexp(t, `^SKY-[0-9a-f-]{36}$`, b.BookingID)
}

func TestBookingService_BookTicket_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	producer := &MockProducer{}
	service, _ := newFileService(t, WithProducer(producer, "booking_topic"), WithNotificationsTopic("notifications"))

	producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCreated && e.FlightNo == "AI101" && e.Passenger == "Asha"
	})).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.BookTicket(ctx, "Asha", "AI101")

	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_BookTicket_PublishFailureKeepsBooking(t *testing.T) {
	ctx := context.Background()
	producer := &MockProducer{}
	service, _ := newFileService(t, WithProducer(producer, "booking_topic"), WithNotificationsTopic("notifications"))

	producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	b, err := service.BookTicket(ctx, "Asha", "AI101")

	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.Len(t, service.ListBookings(ctx), 1)
	producer.AssertExpectations(t)
	producer.AssertNotCalled(t, "Publish", ctx, "notifications", mock.Anything, mock.Anything)
}

func TestBookingService_Load(t *testing.T) {
	ctx := context.Background()
	stored := []domain.Booking{{BookingID: "SKY1000", Name: "Ravi", FlightNo: "AI404"}}

	testCases := []struct {
		name     string
		bookings []domain.Booking
		err      error
		expected []domain.Booking
	}{
		{name: "stored collection", bookings: stored, expected: stored},
		{name: "corrupt store", bookings: []domain.Booking{}, err: domain.ErrPersistenceCorrupt, expected: []domain.Booking{}},
		{name: "unreachable store", bookings: nil, err: errors.New("connection refused"), expected: []domain.Booking{}},
		{name: "nil collection", bookings: nil, expected: []domain.Booking{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockBookingStore{}
			service := newTestService(store)
			store.On("Load", ctx).Return(tc.bookings, tc.err).Once()

			service.Load(ctx)

			assert.Equal(t, tc.expected, service.ListBookings(ctx))
			store.AssertExpectations(t)
		})
	}
}

func TestBookingService_ListBookings_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	assert.NotNil(t, service.ListBookings(ctx))
	assert.Empty(t, service.ListBookings(ctx))

	_, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)

	list := service.ListBookings(ctx)
	list[0].Name = "Changed"
	assert.Equal(t, "Asha", service.ListBookings(ctx)[0].Name)
}

func TestBookingService_CancelBooking_FirstMatchOnly(t *testing.T) {
	ctx := context.Background()
	service, store := newFileService(t)

	first, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	other, err := service.BookTicket(ctx, "Ravi", "AI101")
	require.NoError(t, err)
	second, err := service.BookTicket(ctx, "asha", "AI101")
	require.NoError(t, err)

	cancelled, err := service.CancelBooking(ctx, "ASHA", "ai101")
	require.NoError(t, err)
	assert.Equal(t, *first, *cancelled)

	expected := []domain.Booking{*other, *second}
	assert.Equal(t, expected, service.ListBookings(ctx))

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, stored)
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	_, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	before := service.ListBookings(ctx)

	testCases := []struct{ passenger, flight string }{
		{"Asha", "AI202"},
		{"Ravi", "AI101"},
		{"", ""},
	}
	for _, tc := range testCases {
		_, err := service.CancelBooking(ctx, tc.passenger, tc.flight)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	}
	assert.Equal(t, before, service.ListBookings(ctx))
}

func TestBookingService_TwoPhaseCancellation(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	b, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)

	c, err := service.FindCancellable(ctx, "asha", "AI101")
	require.NoError(t, err)
	assert.Equal(t, *b, c.Booking)
	assert.Len(t, service.ListBookings(ctx), 1, "finding must not remove")

	require.NoError(t, service.CommitCancellation(ctx, c))
	assert.Empty(t, service.ListBookings(ctx))

	err = service.CommitCancellation(ctx, c)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_CommitCancellation_Stale(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	_, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	_, err = service.BookTicket(ctx, "Ravi", "AI202")
	require.NoError(t, err)

	c, err := service.FindCancellable(ctx, "Ravi", "AI202")
	require.NoError(t, err)

	_, err = service.CancelBooking(ctx, "Asha", "AI101")
	require.NoError(t, err)

	err = service.CommitCancellation(ctx, c)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Len(t, service.ListBookings(ctx), 1)

	assert.ErrorIs(t, service.CommitCancellation(ctx, nil), domain.ErrBookingNotFound)
}

func TestBookingService_CommitCancellation_SaveFailure(t *testing.T) {
	ctx := context.Background()
	store := &MockBookingStore{}
	service := newTestService(store)

	existing := domain.Booking{BookingID: "SKY1000", Name: "Asha", FlightNo: "AI101"}
	store.On("Load", ctx).Return([]domain.Booking{existing}, nil).Once()
	service.Load(ctx)

	c, err := service.FindCancellable(ctx, "Asha", "AI101")
	require.NoError(t, err)

	store.On("Save", ctx, []domain.Booking{}).Return(errors.New("read-only filesystem")).Once()

	err = service.CommitCancellation(ctx, c)
	assert.ErrorContains(t, err, "read-only filesystem")
	assert.Equal(t, []domain.Booking{existing}, service.ListBookings(ctx))
	store.AssertExpectations(t)
}

func TestBookingService_Scenario_BookListCancel(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	b, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", b.From)
	assert.Equal(t, "Mumbai", b.To)
	assert.Equal(t, int64(5500), b.Price)
	assert.Regexp(t, seatPattern, b.Seat)

	assert.Equal(t, []domain.Booking{*b}, service.ListBookings(ctx))

	_, err = service.CancelBooking(ctx, "Asha", "AI101")
	require.NoError(t, err)
	assert.Empty(t, service.ListBookings(ctx))
}

func TestBookingService_ReloadSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	service, store := newFileService(t)

	b, err := service.BookTicket(ctx, "Asha", "AI101")
	require.NoError(t, err)

	restarted := newTestService(store)
	restarted.Load(ctx)
	assert.Equal(t, []domain.Booking{*b}, restarted.ListBookings(ctx))
}

func TestRandomSeat_Range(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 2000; i++ {
		assert.Regexp(t, seatPattern, randomSeat(rnd))
	}
}

func TestRandomIDGenerator_Range(t *testing.T) {
	g := NewRandomIDGenerator(rand.New(rand.NewPCG(3, 4)))
	for i := 0; i < 2000; i++ {
		assert.Regexp(t, `^SKY[1-9][0-9]{3}$`, g.NewBookingID())
	}
}
