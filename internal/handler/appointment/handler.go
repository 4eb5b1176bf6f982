package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/clinic-api/internal/handler"
	"github.com/careops/clinic-api/internal/middleware"
	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/service/appointment"
	"github.com/careops/clinic-api/internal/service/authz"
	apperrors "github.com/careops/clinic-api/pkg/errors"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// ListAppointments returns the ledger scoped to the requester's role.
func (h *Handler) ListAppointments(c *gin.Context) {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		handler.Error(c, apperrors.NewAuth("not authorized"))
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), claims)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	created, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperrors.NewNotFound("appointment"))
		return
	}

	claims, err := middleware.CurrentUser(c)
	if err != nil {
		handler.Error(c, apperrors.NewAuth("not authorized"))
		return
	}

	a, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if !authz.Scoped(claims, a) {
		handler.Error(c, apperrors.NewNotFound("appointment"))
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperrors.NewNotFound("appointment"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperrors.NewNotFound("appointment"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.MessageResponse{Message: "appointment removed"})
}
