package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/Domenick1991/skyfly/internal/kafka"
	"github.com/rs/zerolog"
)

// Notifier renders passenger messages for booking events and writes them to
// an outbox, one message per line.
type Notifier struct {
	outbox io.Writer
	logger *zerolog.Logger
}

func NewNotifier(outbox io.Writer, logger *zerolog.Logger) *Notifier {
	return &Notifier{outbox: outbox, logger: logger}
}

func (n *Notifier) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, ok := Render(event)
	if !ok {
		n.logger.Debug().Str("event", event.Type).Str("booking_id", event.BookingID).Msg("no notification for event type")
		return nil
	}
	if _, err := fmt.Fprintln(n.outbox, msg); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	n.logger.Info().Str("event", event.Type).Str("booking_id", event.BookingID).Msg("notification sent")
	return nil
}

func Render(event kafka.BookingEvent) (string, bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Dear %s, booking %s on flight %s (%s → %s, departs %s) is confirmed. Seat %s, fare ₹%d.",
			event.Passenger, event.BookingID, event.FlightNo, event.From, event.To, event.Date, event.Seat, event.Price), true
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Dear %s, booking %s on flight %s (%s → %s) has been cancelled.",
			event.Passenger, event.BookingID, event.FlightNo, event.From, event.To), true
	}
	return "", false
}
