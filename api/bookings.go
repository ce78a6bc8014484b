package api

import (
	"net/http"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BookingHandler exposes the stored collection read-only. The interactive
// shell stays the only writer.
type BookingHandler struct {
	source summary.BookingSource
	logger *zerolog.Logger
}

func NewBookingHandler(source summary.BookingSource, logger *zerolog.Logger) *BookingHandler {
	return &BookingHandler{source: source, logger: logger}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.source.Load(c.Request.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("bookings store unusable, serving an empty list")
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}
