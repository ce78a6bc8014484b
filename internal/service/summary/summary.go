package summary

import (
	"errors"

	"github.com/Domenick1991/skyfly/internal/domain"
)

const sampleSize = 5

var ErrNoData = errors.New("no bookings available for analysis")

type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OriginRevenue struct {
	City    string `json:"city"`
	Revenue int64  `json:"revenue"`
}

type Summary struct {
	TotalBookings     int              `json:"total_bookings"`
	TotalRevenue      int64            `json:"total_revenue"`
	AverageFare       float64          `json:"average_fare"`
	HighestFare       int64            `json:"highest_fare"`
	LowestFare        int64            `json:"lowest_fare"`
	PopularRoute      Route            `json:"popular_route"`
	PopularRouteCount int              `json:"popular_route_count"`
	RevenueByOrigin   []OriginRevenue  `json:"revenue_by_origin"`
	Sample            []domain.Booking `json:"sample"`
}

// Compute aggregates a non-empty collection. Ties for the most popular route
// go to the route seen first in insertion order, and origins are reported in
// first-seen order.
func Compute(bookings []domain.Booking) (*Summary, error) {
	if len(bookings) == 0 {
		return nil, ErrNoData
	}

	s := &Summary{
		TotalBookings: len(bookings),
		HighestFare:   bookings[0].Price,
		LowestFare:    bookings[0].Price,
	}

	routeCounts := make(map[Route]int)
	var routeOrder []Route
	originIndex := make(map[string]int)

	for _, b := range bookings {
		s.TotalRevenue += b.Price
		s.HighestFare = max(s.HighestFare, b.Price)
		s.LowestFare = min(s.LowestFare, b.Price)

		r := Route{From: b.From, To: b.To}
		if _, seen := routeCounts[r]; !seen {
			routeOrder = append(routeOrder, r)
		}
		routeCounts[r]++

		i, seen := originIndex[b.From]
		if !seen {
			i = len(s.RevenueByOrigin)
			originIndex[b.From] = i
			s.RevenueByOrigin = append(s.RevenueByOrigin, OriginRevenue{City: b.From})
		}
		s.RevenueByOrigin[i].Revenue += b.Price
	}

	s.AverageFare = float64(s.TotalRevenue) / float64(s.TotalBookings)

	for _, r := range routeOrder {
		if routeCounts[r] > s.PopularRouteCount {
			s.PopularRoute = r
			s.PopularRouteCount = routeCounts[r]
		}
	}

	n := min(sampleSize, len(bookings))
	s.Sample = make([]domain.Booking, n)
	copy(s.Sample, bookings[:n])

	return s, nil
}
