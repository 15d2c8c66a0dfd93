package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

// ReminderRepository defines reminder persistence operations.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, executor SQLExecutor, reminder *models.Reminder) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, executor SQLExecutor, id int64, forUpdate bool) (*models.Reminder, error)
	GetReminders(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Reminder, int, error)
	GetPendingByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.Reminder, error)
	SetSent(ctx context.Context, executor SQLExecutor, id int64, sent bool) (*models.Reminder, error)
}

type reminderRepository struct{}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository() ReminderRepository {
	return &reminderRepository{}
}

const reminderColumns = `id, patient_id, appointment_id, reminder_type, message, scheduled_time, recurrence_rule, sent, created_at`

func scanReminder(row scanner) (*models.Reminder, error) {
	var m models.Reminder
	err := row.Scan(&m.ID, &m.PatientID, &m.AppointmentID, &m.ReminderType, &m.Message,
		&m.ScheduledTime, &m.RecurrenceRule, &m.Sent, &m.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning reminder")
	}
	return &m, nil
}

func (r *reminderRepository) CreateReminder(ctx context.Context, executor SQLExecutor, reminder *models.Reminder) (*models.Reminder, error) {
	query := `INSERT INTO reminders (patient_id, appointment_id, reminder_type, message, scheduled_time, recurrence_rule, sent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + reminderColumns
	return scanReminder(executor.QueryRowContext(ctx, query,
		reminder.PatientID, reminder.AppointmentID, reminder.ReminderType, reminder.Message,
		reminder.ScheduledTime, reminder.RecurrenceRule, reminder.Sent, time.Now().UTC()))
}

func (r *reminderRepository) GetReminderByID(ctx context.Context, executor SQLExecutor, id int64, forUpdate bool) (*models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanReminder(executor.QueryRowContext(ctx, query, id))
}

func (r *reminderRepository) GetReminders(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Reminder, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM reminders`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+reminderColumns+` FROM reminders ORDER BY scheduled_time, id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying reminders")
	}
	reminders, err := collectRows(rows, scanReminder, "iterating reminders")
	return reminders, total, err
}

func (r *reminderRepository) GetPendingByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE patient_id = $1 AND sent = FALSE ORDER BY scheduled_time, id`
	rows, err := executor.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, wrapDBError(err, "querying pending reminders")
	}
	return collectRows(rows, scanReminder, "iterating pending reminders")
}

func (r *reminderRepository) SetSent(ctx context.Context, executor SQLExecutor, id int64, sent bool) (*models.Reminder, error) {
	query := `UPDATE reminders SET sent = $1 WHERE id = $2 RETURNING ` + reminderColumns
	return scanReminder(executor.QueryRowContext(ctx, query, sent, id))
}
