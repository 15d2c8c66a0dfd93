package handlers

import (
	"net/http"
	"strconv"

	"hospital_backend/internal/models"
	"hospital_backend/internal/services"
	"hospital_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves payroll payment requests.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) CreatePaymentRequest(c *gin.Context) {
	var req services.SubmitPaymentRequest
	if !bindJSON(c, &req, "CreatePaymentRequest") {
		return
	}
	created, err := h.paymentService.Submit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create payment request")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPaymentRequests supports employee_id, status and month filters.
func (h *PaymentHandler) GetPaymentRequests(c *gin.Context) {
	page, pageSize := pageParams(c)
	filters := models.PaymentRequestFilters{Page: page, PageSize: pageSize}

	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee_id filter.", v))
			return
		}
		filters.EmployeeID = &id
	}
	if v := c.Query("status"); v != "" {
		filters.Status = &v
	}
	if v := c.Query("month"); v != "" {
		if !utils.IsValidMonth(v) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid month filter, please use YYYY-MM.", v))
			return
		}
		filters.Month = &v
	}

	items, total, err := h.paymentService.List(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "fetch payment requests")
		return
	}
	respondList(c, items, total, page, pageSize)
}

func (h *PaymentHandler) GetPaymentRequestByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch payment request")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdatePaymentStatusRequest
	if !bindJSON(c, &req, "UpdatePaymentStatus") {
		return
	}
	updated, err := h.paymentService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "update payment request status")
		return
	}
	c.JSON(http.StatusOK, updated)
}
