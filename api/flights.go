package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/Domenick1991/skyfly/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:number", h.get)
}

// list serves the whole catalog, or only flights touching ?city= when given.
func (h *FlightHandler) list(c *gin.Context) {
	var (
		list []domain.Flight
		err  error
	)
	if city, ok := c.GetQuery("city"); ok {
		list, err = h.service.SearchByCity(c.Request.Context(), city)
	} else {
		list, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrFlightNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}
