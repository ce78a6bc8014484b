package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skyfly/internal/service/summary"
	"github.com/gin-gonic/gin"
)

const AdminPasswordHeader = "X-Admin-Password"

type AdminHandler struct {
	dashboard summary.AdminUseCase
}

func NewAdminHandler(dashboard summary.AdminUseCase) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/summary", h.summary)
}

func (h *AdminHandler) summary(c *gin.Context) {
	s, err := h.dashboard.Summary(c.Request.Context(), c.GetHeader(AdminPasswordHeader))
	switch {
	case errors.Is(err, summary.ErrAccessDenied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, summary.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "no data"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, s)
	}
}
