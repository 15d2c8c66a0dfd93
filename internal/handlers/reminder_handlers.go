package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	reminderService services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(rs services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: rs}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req services.CreateReminderRequest
	if !bindJSON(c, &req, "CreateReminder") {
		return
	}
	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) GetReminders(c *gin.Context) {
	page, pageSize := pageParams(c)
	reminders, total, err := h.reminderService.GetReminders(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch reminders")
		return
	}
	respondList(c, reminders, total, page, pageSize)
}

func (h *ReminderHandler) GetReminderByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reminder, err := h.reminderService.GetReminderByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateReminderRequest
	if !bindJSON(c, &req, "UpdateReminder") {
		return
	}
	reminder, err := h.reminderService.SetSent(c.Request.Context(), id, *req.Sent)
	if err != nil {
		respondServiceError(c, err, "update reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) GetPendingForPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}
	reminders, err := h.reminderService.GetPendingForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err, "fetch pending reminders")
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// MarkSent flags the reminder as sent. Recurring reminders also return their next occurrence.
func (h *ReminderHandler) MarkSent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.reminderService.MarkSent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "mark reminder as sent")
		return
	}
	c.JSON(http.StatusOK, result)
}
