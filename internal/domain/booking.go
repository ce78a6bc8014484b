package domain

const BookingTimeLayout = "2006-01-02 15:04:05"

// Booking is one passenger's reservation. From, To, Price and Date are copied
// from the flight at booking time and never resynchronized.
type Booking struct {
	BookingID   string `json:"booking_id"`
	Name        string `json:"name"`
	FlightNo    string `json:"flight_no"`
	From        string `json:"from"`
	To          string `json:"to"`
	Price       int64  `json:"price"`
	Date        string `json:"date"`
	Seat        string `json:"seat"`
	BookingTime string `json:"booking_time"`
}

// NewBooking snapshots the flight fields into a booking.
func NewBooking(id, name, seat, bookedAt string, f Flight) Booking {
	return Booking{
		BookingID:   id,
		Name:        name,
		FlightNo:    f.Number,
		From:        f.From,
		To:          f.To,
		Price:       f.Price,
		Date:        f.Date,
		Seat:        seat,
		BookingTime: bookedAt,
	}
}
