package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/clinic-api/internal/handler"
	"github.com/careops/clinic-api/internal/service/stats"
)

type Handler struct {
	service *stats.Service
}

func NewHandler(service *stats.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/dashboard", h.DashboardStats)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	dashboard, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
