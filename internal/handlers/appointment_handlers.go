package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(as services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: as}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if !bindJSON(c, &req, "CreateAppointment") {
		return
	}
	appt, err := h.appointmentService.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create appointment")
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	page, pageSize := pageParams(c)
	appts, total, err := h.appointmentService.GetAppointments(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch appointments")
		return
	}
	respondList(c, appts, total, page, pageSize)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appt, err := h.appointmentService.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateAppointmentRequest
	if !bindJSON(c, &req, "UpdateAppointment") {
		return
	}
	appt, err := h.appointmentService.UpdateAppointment(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
