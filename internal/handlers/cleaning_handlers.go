package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CleaningHandler struct {
	cleaningService services.CleaningService
}

// NewCleaningHandler creates a new CleaningHandler.
func NewCleaningHandler(cs services.CleaningService) *CleaningHandler {
	return &CleaningHandler{cleaningService: cs}
}

func (h *CleaningHandler) CreateLog(c *gin.Context) {
	var req services.CreateCleaningLogRequest
	if !bindJSON(c, &req, "CreateCleaningLog") {
		return
	}
	log, err := h.cleaningService.CreateLog(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create cleaning log")
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *CleaningHandler) GetLogs(c *gin.Context) {
	page, pageSize := pageParams(c)
	logs, total, err := h.cleaningService.GetLogs(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch cleaning logs")
		return
	}
	respondList(c, logs, total, page, pageSize)
}

func (h *CleaningHandler) GetLogByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	log, err := h.cleaningService.GetLogByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch cleaning log")
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *CleaningHandler) UpdateLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCleaningLogRequest
	if !bindJSON(c, &req, "UpdateCleaningLog") {
		return
	}
	log, err := h.cleaningService.UpdateLogStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "update cleaning log")
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *CleaningHandler) GetCleanerHistory(c *gin.Context) {
	cleanerID, ok := parseIDParam(c, "cleaner_id")
	if !ok {
		return
	}
	logs, err := h.cleaningService.GetCleanerHistory(c.Request.Context(), cleanerID)
	if err != nil {
		respondServiceError(c, err, "fetch cleaner history")
		return
	}
	c.JSON(http.StatusOK, logs)
}
