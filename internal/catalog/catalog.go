package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/skyfly/internal/domain"
)

// Catalog is the read-only flight table loaded at startup.
type Catalog struct {
	flights  []domain.Flight
	byNumber map[string]int
}

func New(flights []domain.Flight) (*Catalog, error) {
	if len(flights) == 0 {
		return nil, errors.New("catalog needs at least one flight")
	}

	c := &Catalog{
		flights:  make([]domain.Flight, 0, len(flights)),
		byNumber: make(map[string]int, len(flights)),
	}
	for i, f := range flights {
		f.Number = normalizeNumber(f.Number)
		if f.Number == "" {
			return nil, fmt.Errorf("flight #%d: number is required", i+1)
		}
		if strings.TrimSpace(f.From) == "" || strings.TrimSpace(f.To) == "" {
			return nil, fmt.Errorf("flight %s: origin and destination are required", f.Number)
		}
		if f.Price <= 0 {
			return nil, fmt.Errorf("flight %s: price must be positive", f.Number)
		}
		if _, dup := c.byNumber[f.Number]; dup {
			return nil, fmt.Errorf("flight %s: duplicate flight number", f.Number)
		}
		c.byNumber[f.Number] = len(c.flights)
		c.flights = append(c.flights, f)
	}
	return c, nil
}

// Default returns the built-in SkyFly schedule.
func Default() *Catalog {
	c, err := New(DefaultFlights())
	if err != nil {
		panic(err)
	}
	return c
}

func DefaultFlights() []domain.Flight {
	return []domain.Flight{
		{Number: "AI101", From: "Delhi", To: "Mumbai", Price: 5500, Date: "2025-11-05 08:30"},
		{Number: "AI202", From: "Delhi", To: "Chennai", Price: 7200, Date: "2025-11-05 12:00"},
		{Number: "AI303", From: "Bangalore", To: "Kolkata", Price: 6400, Date: "2025-11-06 09:15"},
		{Number: "AI404", From: "Pune", To: "Delhi", Price: 5800, Date: "2025-11-07 14:45"},
		{Number: "AI505", From: "Kolkata", To: "Mumbai", Price: 8700, Date: "2025-11-08 10:30"},
	}
}

func (c *Catalog) Lookup(number string) (domain.Flight, bool) {
	i, ok := c.byNumber[normalizeNumber(number)]
	if !ok {
		return domain.Flight{}, false
	}
	return c.flights[i], true
}

func (c *Catalog) All() []domain.Flight {
	out := make([]domain.Flight, len(c.flights))
	copy(out, c.flights)
	return out
}

// SearchByCity returns flights departing from or arriving at city.
func (c *Catalog) SearchByCity(city string) []domain.Flight {
	city = strings.TrimSpace(city)
	out := make([]domain.Flight, 0)
	if city == "" {
		return out
	}
	for _, f := range c.flights {
		if strings.EqualFold(f.From, city) || strings.EqualFold(f.To, city) {
			out = append(out, f)
		}
	}
	return out
}

func normalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
