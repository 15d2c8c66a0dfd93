package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the admin dashboard.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.DashboardSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
