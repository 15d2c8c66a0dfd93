package models

import "time"

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// Employee links an account to payroll data.
type Employee struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Phone     string    `json:"phone" db:"phone"`
	Salary    float64   `json:"salary" db:"salary"`
	Status    string    `json:"status" db:"status"`
	HireDate  time.Time `json:"hire_date" db:"hire_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	User      *User     `json:"user,omitempty"`
}

// ClockRecord is one attendance session. A nil ClockOutTime means the session is open.
type ClockRecord struct {
	ID            int64      `json:"id" db:"id"`
	EmployeeID    int64      `json:"employee_id" db:"employee_id"`
	ClockInTime   time.Time  `json:"clock_in_time" db:"clock_in_time"`
	ClockOutTime  *time.Time `json:"clock_out_time" db:"clock_out_time"`
	WorkDate      time.Time  `json:"work_date" db:"work_date"`
	WorkedHours   float64    `json:"worked_hours" db:"worked_hours"`
	OvertimeHours float64    `json:"overtime_hours" db:"overtime_hours"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// IsOpen reports whether the session has not been clocked out yet.
func (r *ClockRecord) IsOpen() bool {
	return r.ClockOutTime == nil
}

// HoursSummary aggregates closed sessions for one employee and month.
type HoursSummary struct {
	EmployeeID    int64   `json:"employee_id"`
	Month         string  `json:"month"`
	Sessions      int     `json:"sessions"`
	WorkedHours   float64 `json:"worked_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
	PaymentStatusPaid     = "paid"
)

// PaymentRequest is a payroll request for one employee and month.
type PaymentRequest struct {
	ID          int64     `json:"id" db:"id"`
	EmployeeID  int64     `json:"employee_id" db:"employee_id"`
	BaseSalary  float64   `json:"base_salary" db:"base_salary"`
	OvertimePay float64   `json:"overtime_pay" db:"overtime_pay"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	Month       string    `json:"month" db:"month"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PaymentRequestFilters narrows payment request listings.
type PaymentRequestFilters struct {
	EmployeeID *int64
	Status     *string
	Month      *string
	Page       int
	PageSize   int
}

const (
	CleaningStatusPending    = "pending"
	CleaningStatusInProgress = "in_progress"
	CleaningStatusCompleted  = "completed"
)

// CleaningLog records a cleaning pass over a hospital area.
type CleaningLog struct {
	ID              int64     `json:"id" db:"id"`
	CleanerID       *int64    `json:"cleaner_id" db:"cleaner_id"`
	AreaType        string    `json:"area_type" db:"area_type"`
	AreaName        string    `json:"area_name" db:"area_name"`
	CleaningDate    time.Time `json:"cleaning_date" db:"cleaning_date"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Status          string    `json:"status" db:"status"`
	Notes           *string   `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
