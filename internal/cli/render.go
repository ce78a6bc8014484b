package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const screenWidth = 70

type renderer struct {
	out     io.Writer
	banner  lipgloss.Style
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
}

func newRenderer(out io.Writer) *renderer {
	r := lipgloss.NewRenderer(out)
	return &renderer{
		out:     out,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(screenWidth).Align(lipgloss.Center),
		title:   r.NewStyle().Bold(true).Width(screenWidth).Align(lipgloss.Center),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("203")),
		label:   r.NewStyle().Width(22),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

func (r *renderer) println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *renderer) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

func (r *renderer) rule(ch string) {
	r.println(strings.Repeat(ch, screenWidth))
}

func (r *renderer) Banner() {
	r.println()
	r.rule("=")
	r.println(r.banner.Render("SKYFLY AIRLINES – SIMPLE BOOKING SYSTEM"))
	r.rule("=")
}

func (r *renderer) Section(title string) {
	r.println()
	r.rule("-")
	r.println(r.title.Render(title))
	r.rule("-")
}

func (r *renderer) Success(msg string) {
	r.println(r.success.Render(msg))
}

func (r *renderer) Failure(msg string) {
	r.println(r.failure.Render(msg))
}

func (r *renderer) Field(label string, value any) {
	r.printf("%s: %v\n", r.label.Render(label), value)
}

func (r *renderer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
	r.println(t.String())
}

func (r *renderer) Flights(flights []domain.Flight) {
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{f.Number, f.From, f.To, f.Date, fmt.Sprintf("%d", f.Price)})
	}
	r.Table([]string{"Flight No.", "From", "To", "Departure", "Price (₹)"}, rows)
}

func (r *renderer) Bookings(bookings []domain.Booking) {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		id := b.BookingID
		if id == "" {
			id = "N/A"
		}
		rows = append(rows, []string{id, b.Name, b.FlightNo, b.From + "→" + b.To, b.Seat, fmt.Sprintf("%d", b.Price)})
	}
	r.Table([]string{"Booking ID", "Name", "Flight", "Route", "Seat", "Fare (₹)"}, rows)
}

func (r *renderer) Ticket(b domain.Booking) {
	r.Section("E-TICKET")
	r.Field("Booking ID", b.BookingID)
	r.Field("Passenger Name", b.Name)
	r.Field("Flight Number", b.FlightNo)
	r.Field("Route", b.From+" → "+b.To)
	r.Field("Departure", b.Date)
	r.Field("Seat Number", b.Seat)
	r.Field("Fare Amount", fmt.Sprintf("₹%d", b.Price))
	r.Field("Booking Time", b.BookingTime)
	r.rule("-")
}

func (r *renderer) Summary(s *summary.Summary) {
	r.println()
	r.println("--- OVERALL SUMMARY ---")
	r.Field("Total Bookings", s.TotalBookings)
	r.Field("Total Revenue", fmt.Sprintf("₹%d", s.TotalRevenue))
	r.Field("Average Fare", fmt.Sprintf("₹%.2f", s.AverageFare))
	r.Field("Highest Fare", fmt.Sprintf("₹%d", s.HighestFare))
	r.Field("Lowest Fare", fmt.Sprintf("₹%d", s.LowestFare))
	r.Field("Most Popular Route", s.PopularRoute.From+" → "+s.PopularRoute.To)

	r.println()
	r.println("--- REVENUE BY CITY ---")
	for _, o := range s.RevenueByOrigin {
		r.printf("  %-12s ₹%d\n", o.City, o.Revenue)
	}

	r.println()
	r.println("--- SAMPLE BOOKINGS ---")
	r.Bookings(s.Sample)
}
