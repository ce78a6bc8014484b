package api

import (
	"net/http"

	"github.com/Domenick1991/skyfly/config"
	"github.com/Domenick1991/skyfly/internal/metrics"
	"github.com/Domenick1991/skyfly/internal/service/flights"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func NewRouter(
	cfg config.HTTPConfig,
	flightSvc flights.FlightUseCase,
	source summary.BookingSource,
	dashboard summary.AdminUseCase,
	logger *zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), rateLimit(cfg.RateLimit))

	NewFlightHandler(flightSvc).Register(router.Group("/flights"))
	NewBookingHandler(source, logger).Register(router.Group("/bookings"))
	NewAdminHandler(dashboard).Register(router.Group("/admin"))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// rateLimit applies one token bucket to every request.
func rateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.IncHTTP(endpoint)
		logger.Debug().
			Str("method", c.Request.Method).
			Str("endpoint", endpoint).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
