package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingsCreated)
	IncBookingCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingsCreated))

	before = testutil.ToFloat64(bookingFailures.WithLabelValues("flight_not_found"))
	IncBookingFailure("flight_not_found")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingFailures.WithLabelValues("flight_not_found")))

	assert.NotPanics(t, func() {
		IncBookingCancelled()
		IncStoreRecovery()
		IncHTTP("/flights")
	})
}

func TestHandler_ExposesBookingCounters(t *testing.T) {
	Register()
	IncBookingCreated()
	IncBookingCancelled()
	IncBookingFailure("store")
	IncStoreRecovery()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "skyfly_bookings_created_total")
	assert.Contains(t, body, "skyfly_bookings_cancelled_total")
	assert.Contains(t, body, `skyfly_booking_failures_total{reason="store"}`)
	assert.Contains(t, body, "skyfly_store_recoveries_total")

	rec = httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
