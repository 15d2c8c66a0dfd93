package handlers

import (
	"net/http"
	"time"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves employee records and attendance.
type EmployeeHandler struct {
	employeeService   services.EmployeeService
	attendanceService services.AttendanceService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService, as services.AttendanceService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es, attendanceService: as}
}

type clockRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required,gt=0"`
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if !bindJSON(c, &req, "CreateEmployee") {
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create employee")
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	page, pageSize := pageParams(c)
	employees, total, err := h.employeeService.GetEmployees(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch employees")
		return
	}
	respondList(c, employees, total, page, pageSize)
}

func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateEmployeeRequest
	if !bindJSON(c, &req, "UpdateEmployee") {
		return
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// ClockIn opens today's attendance session.
func (h *EmployeeHandler) ClockIn(c *gin.Context) {
	var req clockRequest
	if !bindJSON(c, &req, "ClockIn") {
		return
	}
	record, err := h.attendanceService.ClockIn(c.Request.Context(), req.EmployeeID)
	if err != nil {
		respondServiceError(c, err, "clock in")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ClockOut closes the open session and returns the computed hours.
func (h *EmployeeHandler) ClockOut(c *gin.Context) {
	var req clockRequest
	if !bindJSON(c, &req, "ClockOut") {
		return
	}
	record, err := h.attendanceService.ClockOut(c.Request.Context(), req.EmployeeID)
	if err != nil {
		respondServiceError(c, err, "clock out")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *EmployeeHandler) GetClockRecords(c *gin.Context) {
	id, ok := parseIDParam(c, "employee_id")
	if !ok {
		return
	}
	records, err := h.attendanceService.ListClockRecords(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch clock records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetHoursSummary handles GET /employees/:id/hours-summary?month=YYYY-MM. The month defaults
// to the current UTC month.
func (h *EmployeeHandler) GetHoursSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.attendanceService.MonthlySummary(c.Request.Context(), id,
		c.DefaultQuery("month", time.Now().UTC().Format("2006-01")))
	if err != nil {
		respondServiceError(c, err, "compute hours summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
