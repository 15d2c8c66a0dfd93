package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

// PatientRepository defines patient persistence operations.
type PatientRepository interface {
	CreatePatient(ctx context.Context, executor SQLExecutor, patient *models.Patient) (*models.Patient, error)
	GetPatientByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Patient, error)
	GetPatients(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Patient, int, error)
	UpdatePatient(ctx context.Context, executor SQLExecutor, patient *models.Patient) (*models.Patient, error)
	DeletePatient(ctx context.Context, executor SQLExecutor, id int64) error
}

type patientRepository struct{}

// NewPatientRepository creates a new instance of PatientRepository.
func NewPatientRepository() PatientRepository {
	return &patientRepository{}
}

const patientColumns = `id, name, email, phone, age, gender, medical_history, created_at, updated_at`

func scanPatient(row scanner) (*models.Patient, error) {
	var p models.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Age, &p.Gender, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning patient")
	}
	return &p, nil
}

func (r *patientRepository) CreatePatient(ctx context.Context, executor SQLExecutor, patient *models.Patient) (*models.Patient, error) {
	query := `INSERT INTO patients (name, email, phone, age, gender, medical_history, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING ` + patientColumns
	return scanPatient(executor.QueryRowContext(ctx, query,
		patient.Name, patient.Email, patient.Phone, patient.Age, patient.Gender, patient.MedicalHistory, time.Now().UTC(),
	))
}

func (r *patientRepository) GetPatientByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Patient, error) {
	return scanPatient(executor.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepository) GetPatients(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Patient, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM patients`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+patientColumns+` FROM patients ORDER BY id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying patients")
	}
	patients, err := collectRows(rows, scanPatient, "iterating patients")
	return patients, total, err
}

// UpdatePatient writes every column of the already merged patient.
func (r *patientRepository) UpdatePatient(ctx context.Context, executor SQLExecutor, patient *models.Patient) (*models.Patient, error) {
	query := `UPDATE patients
	          SET name = $1, email = $2, phone = $3, age = $4, gender = $5, medical_history = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING ` + patientColumns
	return scanPatient(executor.QueryRowContext(ctx, query,
		patient.Name, patient.Email, patient.Phone, patient.Age, patient.Gender, patient.MedicalHistory,
		time.Now().UTC(), patient.ID,
	))
}

func (r *patientRepository) DeletePatient(ctx context.Context, executor SQLExecutor, id int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return wrapDBError(err, "deleting patient")
	}
	return requireAffected(res, "deleting patient")
}
