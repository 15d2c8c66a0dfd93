package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital_backend/internal/cache"
	"hospital_backend/internal/config"
	"hospital_backend/internal/metrics"
	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/pkg/utils"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNoActiveSession  = errors.New("no active clock-in session found")
	ErrClockBusy        = errors.New("another clock operation for this employee is in progress")
	ErrInvalidMonth     = errors.New("invalid month, please use YYYY-MM")
)

const monthLayout = "2006-01"

// AttendanceService enforces one open clock session per employee per day.
type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID int64) (*models.ClockRecord, error)
	ClockOut(ctx context.Context, employeeID int64) (*models.ClockRecord, error)
	ListClockRecords(ctx context.Context, employeeID int64) ([]models.ClockRecord, error)
	MonthlySummary(ctx context.Context, employeeID int64, month string) (*models.HoursSummary, error)
}

type attendanceService struct {
	employeeRepo repositories.EmployeeRepository
	db           repositories.SQLExecutor
	tx           repositories.Transactor
	locker       cache.ClockLocker
	boundary     config.DayBoundary
	now          func() time.Time
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(employeeRepo repositories.EmployeeRepository, db repositories.SQLExecutor,
	tx repositories.Transactor, locker cache.ClockLocker, boundary config.DayBoundary) AttendanceService {
	return &attendanceService{
		employeeRepo: employeeRepo,
		db:           db,
		tx:           tx,
		locker:       locker,
		boundary:     boundary,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// openSessionDay returns the day filter for the open-session lookup, or nil when any open
// session counts.
func (s *attendanceService) openSessionDay(now time.Time) *time.Time {
	if s.boundary == config.DayBoundaryOpenSession {
		return nil
	}
	return &now
}

// serialize holds the per-employee clock lock for the duration of fn.
func (s *attendanceService) serialize(ctx context.Context, employeeID int64, fn func() error) error {
	unlock, err := s.locker.Lock(ctx, employeeID)
	if err != nil {
		if errors.Is(err, cache.ErrLockBusy) {
			return ErrClockBusy
		}
		return fmt.Errorf("failed to acquire clock lock: %w", err)
	}
	defer unlock()
	return fn()
}

func (s *attendanceService) requireEmployee(ctx context.Context, ex repositories.SQLExecutor, employeeID int64) error {
	if _, err := s.employeeRepo.GetEmployeeByID(ctx, ex, employeeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to look up employee: %w", err)
	}
	return nil
}

func (s *attendanceService) ClockIn(ctx context.Context, employeeID int64) (*models.ClockRecord, error) {
	var created *models.ClockRecord
	err := s.serialize(ctx, employeeID, func() error {
		return s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
			if err := s.requireEmployee(ctx, tx, employeeID); err != nil {
				return err
			}

			now := s.now()
			open, err := s.employeeRepo.FindOpenClockRecord(ctx, tx, employeeID, s.openSessionDay(now))
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to check open session: %w", err)
			}
			if open != nil {
				return ErrAlreadyClockedIn
			}

			created, err = s.employeeRepo.CreateClockRecord(ctx, tx, &models.ClockRecord{
				EmployeeID:  employeeID,
				ClockInTime: now,
			})
			if err != nil {
				if errors.Is(err, repositories.ErrDuplicateKey) {
					return ErrAlreadyClockedIn
				}
				return fmt.Errorf("failed to create clock record: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		metrics.ClockEvents.WithLabelValues("clock_in", outcomeLabel(err)).Inc()
		return nil, err
	}

	metrics.ClockEvents.WithLabelValues("clock_in", "ok").Inc()
	utils.LogInfo("employee clocked in", map[string]interface{}{"employee_id": employeeID, "record_id": created.ID})
	return created, nil
}

func (s *attendanceService) ClockOut(ctx context.Context, employeeID int64) (*models.ClockRecord, error) {
	var closed *models.ClockRecord
	err := s.serialize(ctx, employeeID, func() error {
		return s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
			if err := s.requireEmployee(ctx, tx, employeeID); err != nil {
				return err
			}

			now := s.now()
			open, err := s.employeeRepo.FindOpenClockRecord(ctx, tx, employeeID, s.openSessionDay(now))
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrNoActiveSession
				}
				return fmt.Errorf("failed to find open session: %w", err)
			}

			out := now
			if out.Before(open.ClockInTime) {
				out = open.ClockInTime
			}
			open.ClockOutTime = &out
			open.WorkedHours, open.OvertimeHours = ComputeHours(open.ClockInTime, out)

			closed, err = s.employeeRepo.CloseClockRecord(ctx, tx, open)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrNoActiveSession
				}
				return fmt.Errorf("failed to close clock record: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		metrics.ClockEvents.WithLabelValues("clock_out", outcomeLabel(err)).Inc()
		return nil, err
	}

	metrics.ClockEvents.WithLabelValues("clock_out", "ok").Inc()
	utils.LogInfo("employee clocked out", map[string]interface{}{
		"employee_id":    employeeID,
		"record_id":      closed.ID,
		"worked_hours":   closed.WorkedHours,
		"overtime_hours": closed.OvertimeHours,
	})
	return closed, nil
}

// ListClockRecords returns the employee's sessions oldest first. An unknown employee simply
// has none.
func (s *attendanceService) ListClockRecords(ctx context.Context, employeeID int64) ([]models.ClockRecord, error) {
	records, err := s.employeeRepo.GetClockRecords(ctx, s.db, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records: %w", err)
	}
	return records, nil
}

// MonthlySummary totals the closed sessions whose clock-in falls in month (UTC).
func (s *attendanceService) MonthlySummary(ctx context.Context, employeeID int64, month string) (*models.HoursSummary, error) {
	from, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	if err := s.requireEmployee(ctx, s.db, employeeID); err != nil {
		return nil, err
	}

	records, err := s.employeeRepo.GetClockRecordsBetween(ctx, s.db, employeeID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to load clock records: %w", err)
	}

	summary := &models.HoursSummary{EmployeeID: employeeID, Month: month}
	for _, rec := range records {
		if rec.IsOpen() {
			continue
		}
		summary.Sessions++
		summary.WorkedHours += rec.WorkedHours
		summary.OvertimeHours += rec.OvertimeHours
	}
	summary.WorkedHours = utils.Round2(summary.WorkedHours)
	summary.OvertimeHours = utils.Round2(summary.OvertimeHours)
	return summary, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrEmployeeNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyClockedIn), errors.Is(err, ErrNoActiveSession), errors.Is(err, ErrClockBusy):
		return "conflict"
	default:
		return "error"
	}
}
