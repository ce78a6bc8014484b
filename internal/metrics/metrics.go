package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skyfly"

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings created and persisted.",
	})

	bookingsCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Bookings removed by cancellation.",
	})

	bookingFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "Failed booking operations by reason.",
		},
		[]string{"reason"},
	)

	storeRecoveries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_recoveries_total",
		Help:      "Store loads that fell back to an empty collection.",
	})

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsCancelled, bookingFailures, storeRecoveries, httpRequests)
	})
}

// Handler serves the default registry on /metrics, for processes that have
// no router of their own.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncBookingCancelled() {
	bookingsCancelled.Inc()
}

func IncBookingFailure(reason string) {
	bookingFailures.WithLabelValues(reason).Inc()
}

func IncStoreRecovery() {
	storeRecoveries.Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
