package booking

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	bookingIDPrefix = "SKY"
	seatRows        = 30
	seatLetters     = "ABCDEF"
)

type IDGenerator interface {
	NewBookingID() string
}

// RandomIDGenerator issues SKY plus four digits. Uniqueness is only
// probabilistic: two bookings can collide and nothing detects it. Use
// UUIDGenerator for anything beyond a single small store.
type RandomIDGenerator struct {
	rnd *rand.Rand
}

func NewRandomIDGenerator(rnd *rand.Rand) *RandomIDGenerator {
	return &RandomIDGenerator{rnd: rnd}
}

func (g *RandomIDGenerator) NewBookingID() string {
	return fmt.Sprintf("%s%d", bookingIDPrefix, 1000+g.rnd.IntN(9000))
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewBookingID() string {
	return bookingIDPrefix + "-" + uuid.NewString()
}

// randomSeat picks a row in 1..30 and a letter in A..F. Seats are not checked
// against other bookings on the same flight.
func randomSeat(rnd *rand.Rand) string {
	return fmt.Sprintf("%d%c", 1+rnd.IntN(seatRows), seatLetters[rnd.IntN(len(seatLetters))])
}
