package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, executor SQLExecutor, appt *models.Appointment) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Appointment, error)
	GetAppointments(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Appointment, int, error)
	UpdateAppointment(ctx context.Context, executor SQLExecutor, appt *models.Appointment) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, executor SQLExecutor, id int64) error
}

type appointmentRepository struct{}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository() AppointmentRepository {
	return &appointmentRepository{}
}

const appointmentColumns = `id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, notes, reminder_sent, created_at`

func scanAppointment(row scanner) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.AppointmentDate, &a.AppointmentTime,
		&a.Status, &a.Reason, &a.Notes, &a.ReminderSent, &a.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning appointment")
	}
	return &a, nil
}

func (r *appointmentRepository) CreateAppointment(ctx context.Context, executor SQLExecutor, appt *models.Appointment) (*models.Appointment, error) {
	query := `INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, status, reason, notes, reminder_sent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING ` + appointmentColumns
	return scanAppointment(executor.QueryRowContext(ctx, query,
		appt.PatientID, appt.DoctorID, appt.AppointmentDate, appt.AppointmentTime, appt.Status,
		appt.Reason, appt.Notes, appt.ReminderSent, time.Now().UTC(),
	))
}

func (r *appointmentRepository) GetAppointmentByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Appointment, error) {
	return scanAppointment(executor.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepository) GetAppointments(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Appointment, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM appointments`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+appointmentColumns+` FROM appointments ORDER BY appointment_date, id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying appointments")
	}
	appts, err := collectRows(rows, scanAppointment, "iterating appointments")
	return appts, total, err
}

func (r *appointmentRepository) UpdateAppointment(ctx context.Context, executor SQLExecutor, appt *models.Appointment) (*models.Appointment, error) {
	query := `UPDATE appointments SET status = $1, notes = $2, reminder_sent = $3 WHERE id = $4 RETURNING ` + appointmentColumns
	return scanAppointment(executor.QueryRowContext(ctx, query, appt.Status, appt.Notes, appt.ReminderSent, appt.ID))
}

func (r *appointmentRepository) DeleteAppointment(ctx context.Context, executor SQLExecutor, id int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return wrapDBError(err, "deleting appointment")
	}
	return requireAffected(res, "deleting appointment")
}
