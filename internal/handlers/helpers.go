package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hospital_backend/internal/services"
	"hospital_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 100
	maxPageSize     = 500
)

// parseIDParam reads a positive integer path parameter, responding 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid "+strings.ReplaceAll(name, "_", " ")+" format.", c.Param(name)))
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page <= 0 {
		page = defaultPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func respondList(c *gin.Context, data interface{}, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}, handler string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug(handler+": failed to bind JSON", map[string]interface{}{"error": err.Error()})
		utils.RespondValidationFailed(c, err.Error())
		return false
	}
	return true
}

// respondServiceError maps a service error onto the API error envelope. action is used in the
// generic 500 message, e.g. "fetch patient".
func respondServiceError(c *gin.Context, err error, action string) {
	var policyErr *services.PolicyViolationError
	switch {
	case errors.As(err, &policyErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodePolicyViolation,
			"Password does not meet requirements.", strings.Join(policyErr.Reasons, "; ")))

	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrPatientOrDoctorNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrLabRecordNotFound),
		errors.Is(err, services.ErrMedicalRecordNotFound),
		errors.Is(err, services.ErrPharmacyItemNotFound),
		errors.Is(err, services.ErrInventoryItemNotFound),
		errors.Is(err, services.ErrCleaningLogNotFound),
		errors.Is(err, services.ErrReminderNotFound),
		errors.Is(err, services.ErrReminderTargetNotFound),
		errors.Is(err, services.ErrPaymentRequestNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, capitalize(err.Error()), ""))

	case errors.Is(err, services.ErrAlreadyClockedIn),
		errors.Is(err, services.ErrNoActiveSession),
		errors.Is(err, services.ErrClockBusy),
		errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrEmployeeExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, capitalize(err.Error()), ""))

	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidTransition, "Status transition not allowed.", err.Error()))

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, capitalize(err.Error()), ""))

	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, capitalize(err.Error()), ""))

	case errors.Is(err, services.ErrPasswordExpired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodePasswordExpired, capitalize(err.Error()), ""))

	case errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrHireDateFormat),
		errors.Is(err, services.ErrInvalidRecurrence):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, capitalize(err.Error()), err.Error()))

	default:
		utils.LogError(err, "unhandled service error", map[string]interface{}{
			"path":       c.FullPath(),
			"request_id": c.GetString(utils.RequestIDKey),
		})
		utils.RespondInternal(c, "Failed to "+action+".")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
