package repository

import "github.com/Domenick1991/skyfly/internal/domain"

// Both SQL stores share one table layout. position preserves insertion order.
const createBookingsTable = `CREATE TABLE IF NOT EXISTS bookings (
	position     INTEGER PRIMARY KEY,
	booking_id   TEXT    NOT NULL,
	name         TEXT    NOT NULL,
	flight_no    TEXT    NOT NULL,
	origin       TEXT    NOT NULL,
	destination  TEXT    NOT NULL,
	price        BIGINT  NOT NULL,
	date         TEXT    NOT NULL,
	seat         TEXT    NOT NULL,
	booking_time TEXT    NOT NULL
)`

const selectBookings = `SELECT booking_id, name, flight_no, origin, destination, price, date, seat, booking_time FROM bookings ORDER BY position`

var bookingColumns = []string{"position", "booking_id", "name", "flight_no", "origin", "destination", "price", "date", "seat", "booking_time"}

func bookingRow(position int, b domain.Booking) []any {
	return []any{position, b.BookingID, b.Name, b.FlightNo, b.From, b.To, b.Price, b.Date, b.Seat, b.BookingTime}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.BookingID, &b.Name, &b.FlightNo, &b.From, &b.To, &b.Price, &b.Date, &b.Seat, &b.BookingTime)
	return b, err
}
