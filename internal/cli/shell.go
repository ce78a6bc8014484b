package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/receipt"
	"github.com/Domenick1991/skyfly/internal/service/booking"
	"github.com/Domenick1991/skyfly/internal/service/flights"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shell is the interactive menu. It reads one line per prompt and stops on
// the exit choice or end of input.
type Shell struct {
	in       *bufio.Reader
	r        *renderer
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	admin    summary.AdminUseCase
	receipts receipt.Exporter
	logger   *zerolog.Logger

	readPassword func() (string, error)
}

type Option func(*Shell)

// WithReceipts enables fare receipt export after each booking.
func WithReceipts(exporter receipt.Exporter) Option {
	return func(s *Shell) {
		s.receipts = exporter
	}
}

// WithPasswordReader replaces the line reader used for the admin password,
// typically with one that disables terminal echo.
func WithPasswordReader(read func() (string, error)) Option {
	return func(s *Shell) {
		s.readPassword = read
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

func New(
	in io.Reader,
	out io.Writer,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	admin summary.AdminUseCase,
	opts ...Option,
) *Shell {
	nop := zerolog.Nop()
	s := &Shell{
		in:       bufio.NewReader(in),
		r:        newRenderer(out),
		flights:  flightSvc,
		bookings: bookingSvc,
		admin:    admin,
		logger:   &nop,
	}
	s.readPassword = s.readLine
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shell) Run(ctx context.Context) error {
	err := s.loop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.menu()
		choice, err := s.prompt("Enter your choice (1–7): ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.showFlights(ctx)
		case "2":
			err = s.searchFlights(ctx)
		case "3":
			err = s.bookTicket(ctx)
		case "4":
			err = s.viewBookings(ctx)
		case "5":
			err = s.cancelBooking(ctx)
		case "6":
			err = s.adminDashboard(ctx)
		case "7":
			s.r.println()
			s.r.println("Thank you for choosing SkyFly Airlines. Have a safe journey!")
			s.r.rule("=")
			return nil
		default:
			s.r.println()
			s.r.Failure("Invalid input. Please choose between 1–7.")
		}
		if err != nil {
			return err
		}

		if _, err := s.prompt("\nPress Enter to return to the main menu..."); err != nil {
			return err
		}
	}
}

func (s *Shell) menu() {
	s.r.Banner()
	s.r.println("1. View Available Flights")
	s.r.println("2. Search Flights by City")
	s.r.println("3. Book a Ticket")
	s.r.println("4. View My Bookings")
	s.r.println("5. Cancel a Booking")
	s.r.println("6. Admin Dashboard (Summary + Analytics)")
	s.r.println("7. Exit")
	s.r.rule("=")
}

func (s *Shell) showFlights(ctx context.Context) error {
	s.r.Section("AVAILABLE FLIGHTS")
	list, err := s.flights.List(ctx)
	if err != nil {
		return err
	}
	s.r.Flights(list)
	return nil
}

func (s *Shell) searchFlights(ctx context.Context) error {
	s.r.Section("SEARCH FLIGHTS BY CITY")
	city, err := s.prompt("Enter the city name: ")
	if err != nil {
		return err
	}
	city = strings.TrimSpace(city)

	found, err := s.flights.SearchByCity(ctx, city)
	if err != nil {
		return err
	}
	s.r.println()
	if len(found) == 0 {
		s.r.printf("No flights found related to %s.\n", cases.Title(language.Und).String(city))
	} else {
		s.r.Flights(found)
	}
	return nil
}

func (s *Shell) bookTicket(ctx context.Context) error {
	s.r.Section("BOOK A TICKET")
	name, err := s.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		s.r.Failure("Name cannot be empty.")
		return nil
	}

	if err := s.showFlights(ctx); err != nil {
		return err
	}
	number, err := s.prompt("Enter flight number to book: ")
	if err != nil {
		return err
	}

	b, err := s.bookings.BookTicket(ctx, name, number)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		s.r.Failure("Name cannot be empty.")
		return nil
	case errors.Is(err, domain.ErrFlightNotFound):
		s.r.println()
		s.r.Failure("Invalid flight number.")
		return nil
	case err != nil:
		s.r.println()
		s.r.Failure(fmt.Sprintf("Booking failed: %v", err))
		return nil
	}

	s.r.println()
	s.r.Success("Booking Successful!")
	s.r.Ticket(*b)
	s.exportReceipt(ctx, *b)
	return nil
}

// exportReceipt reports its own outcome; a failed export leaves the booking
// in place.
func (s *Shell) exportReceipt(ctx context.Context, b domain.Booking) {
	if s.receipts == nil {
		return
	}
	path, err := s.receipts.Export(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.BookingID).Msg("fare receipt export failed")
		s.r.println()
		s.r.Failure(fmt.Sprintf("Fare receipt could not be saved: %v", err))
		return
	}
	s.r.println()
	s.r.printf("Fare Receipt saved to: %s\n", path)
}

func (s *Shell) viewBookings(ctx context.Context) error {
	s.r.Section("MY BOOKINGS")
	list := s.bookings.ListBookings(ctx)
	if len(list) == 0 {
		s.r.println("No bookings found.")
		s.r.rule("-")
		return nil
	}
	s.r.Bookings(list)
	return nil
}

func (s *Shell) cancelBooking(ctx context.Context) error {
	s.r.Section("CANCEL BOOKING")
	name, err := s.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	number, err := s.prompt("Enter flight number to cancel: ")
	if err != nil {
		return err
	}

	c, err := s.bookings.FindCancellable(ctx, name, number)
	if errors.Is(err, domain.ErrBookingNotFound) {
		s.r.println()
		s.r.Failure("No such booking found.")
		return nil
	}
	if err != nil {
		return err
	}

	id := c.Booking.BookingID
	if id == "" {
		id = "N/A"
	}
	answer, err := s.prompt(fmt.Sprintf("Confirm cancellation for booking %s? (y/n): ", id))
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		s.r.println("Cancellation aborted.")
		return nil
	}

	if err := s.bookings.CommitCancellation(ctx, c); err != nil {
		s.r.println()
		s.r.Failure(fmt.Sprintf("Cancellation failed: %v", err))
		return nil
	}
	s.r.println()
	s.r.Success("Booking cancelled successfully.")
	return nil
}

func (s *Shell) adminDashboard(ctx context.Context) error {
	s.r.Section("ADMIN DASHBOARD (SUMMARY + ANALYTICS)")
	s.r.printf("Enter admin password: ")
	password, err := s.readPassword()
	if err != nil {
		return err
	}

	report, err := s.admin.Summary(ctx, password)
	switch {
	case errors.Is(err, summary.ErrAccessDenied):
		s.r.Failure("Wrong password.")
		return nil
	case errors.Is(err, summary.ErrNoData):
		s.r.println("No bookings available for analysis.")
		return nil
	case err != nil:
		return err
	}

	s.r.Summary(report)
	s.r.println()
	s.r.Success("Dashboard analysis completed successfully.")
	s.r.rule("-")
	return nil
}

func (s *Shell) prompt(text string) (string, error) {
	s.r.printf("%s", text)
	return s.readLine()
}

func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
