package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/clinic-api/internal/handler"
	"github.com/careops/clinic-api/internal/service/user"
)

// Handler exposes the read-only doctor directory. Doctors are created
// through registration, not here.
type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}
