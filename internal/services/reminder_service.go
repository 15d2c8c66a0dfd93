package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/pkg/utils"

	"github.com/teambition/rrule-go"
)

var (
	ErrReminderNotFound       = errors.New("reminder not found")
	ErrReminderTargetNotFound = errors.New("referenced patient or appointment not found")
	ErrInvalidRecurrence      = errors.New("invalid recurrence rule")
)

type CreateReminderRequest struct {
	PatientID      *int64    `json:"patient_id" binding:"omitempty,gt=0"`
	AppointmentID  *int64    `json:"appointment_id" binding:"omitempty,gt=0"`
	ReminderType   string    `json:"reminder_type" binding:"required,oneof=appointment medication followup"`
	Message        string    `json:"message" binding:"required"`
	ScheduledTime  time.Time `json:"scheduled_time" binding:"required"`
	RecurrenceRule *string   `json:"recurrence_rule" binding:"omitempty,rrule"`
}

type UpdateReminderRequest struct {
	Sent *bool `json:"sent" binding:"required"`
}

// MarkSentResult is the reminder that was marked sent plus, for recurring reminders, the
// next pending occurrence.
type MarkSentResult struct {
	Reminder *models.Reminder `json:"reminder"`
	Next     *models.Reminder `json:"next,omitempty"`
}

type ReminderService interface {
	CreateReminder(ctx context.Context, req CreateReminderRequest) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, id int64) (*models.Reminder, error)
	GetReminders(ctx context.Context, page, pageSize int) ([]models.Reminder, int, error)
	GetPendingForPatient(ctx context.Context, patientID int64) ([]models.Reminder, error)
	SetSent(ctx context.Context, id int64, sent bool) (*models.Reminder, error)
	MarkSent(ctx context.Context, id int64) (*MarkSentResult, error)
}

type reminderService struct {
	repo repositories.ReminderRepository
	db   repositories.SQLExecutor
	tx   repositories.Transactor
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(repo repositories.ReminderRepository, db repositories.SQLExecutor, tx repositories.Transactor) ReminderService {
	return &reminderService{repo: repo, db: db, tx: tx}
}

// NextOccurrence returns the first occurrence of rule strictly after scheduled, counting the
// series from scheduled. nextRule is the rule the next occurrence must carry: a COUNT limit is
// reduced by one so the series ends after COUNT reminders in total. ok is false when the series
// has ended.
func NextOccurrence(rule string, scheduled time.Time) (next time.Time, nextRule string, ok bool, err error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return time.Time{}, "", false, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	opt.Dtstart = scheduled

	rr, err := rrule.NewRRule(*opt)
	if err != nil {
		return time.Time{}, "", false, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	next = rr.After(scheduled, false)
	if next.IsZero() {
		return time.Time{}, "", false, nil
	}

	nextRule = rule
	if opt.Count > 0 {
		nextRule = withCount(rule, opt.Count-1)
	}
	return next, nextRule, true, nil
}

// withCount rewrites the COUNT part of rule, leaving every other part as written.
func withCount(rule string, count int) string {
	parts := strings.Split(rule, ";")
	for i, part := range parts {
		key, _, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		prefix := ""
		if upper := strings.ToUpper(key); strings.HasPrefix(upper, "RRULE:") {
			prefix = key[:len("RRULE:")]
			key = key[len("RRULE:"):]
		}
		if strings.EqualFold(strings.TrimSpace(key), "COUNT") {
			parts[i] = prefix + "COUNT=" + strconv.Itoa(count)
		}
	}
	return strings.Join(parts, ";")
}

func (s *reminderService) CreateReminder(ctx context.Context, req CreateReminderRequest) (*models.Reminder, error) {
	if req.RecurrenceRule != nil {
		if _, _, _, err := NextOccurrence(*req.RecurrenceRule, req.ScheduledTime); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.CreateReminder(ctx, s.db, &models.Reminder{
		PatientID:      req.PatientID,
		AppointmentID:  req.AppointmentID,
		ReminderType:   req.ReminderType,
		Message:        req.Message,
		ScheduledTime:  req.ScheduledTime,
		RecurrenceRule: req.RecurrenceRule,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, ErrReminderTargetNotFound
		}
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return created, nil
}

func (s *reminderService) GetReminderByID(ctx context.Context, id int64) (*models.Reminder, error) {
	reminder, err := s.repo.GetReminderByID(ctx, s.db, id, false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (s *reminderService) GetReminders(ctx context.Context, page, pageSize int) ([]models.Reminder, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	reminders, total, err := s.repo.GetReminders(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, total, nil
}

func (s *reminderService) GetPendingForPatient(ctx context.Context, patientID int64) ([]models.Reminder, error) {
	reminders, err := s.repo.GetPendingByPatient(ctx, s.db, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}
	return reminders, nil
}

func (s *reminderService) SetSent(ctx context.Context, id int64, sent bool) (*models.Reminder, error) {
	reminder, err := s.repo.SetSent(ctx, s.db, id, sent)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return reminder, nil
}

// MarkSent flags the reminder as sent and, when it recurs, schedules the following
// occurrence in the same transaction. Marking an already-sent reminder does not schedule again.
func (s *reminderService) MarkSent(ctx context.Context, id int64) (*MarkSentResult, error) {
	result := &MarkSentResult{}
	err := s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
		current, err := s.repo.GetReminderByID(ctx, tx, id, true)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrReminderNotFound
			}
			return fmt.Errorf("failed to load reminder: %w", err)
		}
		alreadySent := current.Sent

		result.Reminder, err = s.repo.SetSent(ctx, tx, id, true)
		if err != nil {
			return fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		if alreadySent || current.RecurrenceRule == nil || *current.RecurrenceRule == "" {
			return nil
		}

		next, nextRule, ok, err := NextOccurrence(*current.RecurrenceRule, current.ScheduledTime)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		result.Next, err = s.repo.CreateReminder(ctx, tx, &models.Reminder{
			PatientID:      current.PatientID,
			AppointmentID:  current.AppointmentID,
			ReminderType:   current.ReminderType,
			Message:        current.Message,
			ScheduledTime:  next,
			RecurrenceRule: &nextRule,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule next reminder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Next != nil {
		utils.LogDebug("scheduled next reminder occurrence", map[string]interface{}{
			"reminder_id": id,
			"next_id":     result.Next.ID,
			"next_at":     result.Next.ScheduledTime,
		})
	}
	return result, nil
}
