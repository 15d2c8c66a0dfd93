package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

// LabRepository defines lab record persistence operations.
type LabRepository interface {
	CreateLabRecord(ctx context.Context, executor SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error)
	GetLabRecordByID(ctx context.Context, executor SQLExecutor, id int64) (*models.LabRecord, error)
	GetLabRecords(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.LabRecord, int, error)
	GetLabRecordsByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.LabRecord, error)
	UpdateLabRecord(ctx context.Context, executor SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error)
}

// MedicalRecordRepository defines medical record persistence operations.
type MedicalRecordRepository interface {
	CreateMedicalRecord(ctx context.Context, executor SQLExecutor, rec *models.MedicalRecord) (*models.MedicalRecord, error)
	GetMedicalRecordByID(ctx context.Context, executor SQLExecutor, id int64) (*models.MedicalRecord, error)
	GetMedicalRecordsByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.MedicalRecord, error)
}

type labRepository struct{}

type medicalRecordRepository struct{}

// NewLabRepository creates a new instance of LabRepository.
func NewLabRepository() LabRepository {
	return &labRepository{}
}

// NewMedicalRecordRepository creates a new instance of MedicalRecordRepository.
func NewMedicalRecordRepository() MedicalRecordRepository {
	return &medicalRecordRepository{}
}

// --- Lab Records ---

const labColumns = `id, patient_id, test_name, test_type, result, status, created_at`

func scanLabRecord(row scanner) (*models.LabRecord, error) {
	var l models.LabRecord
	if err := row.Scan(&l.ID, &l.PatientID, &l.TestName, &l.TestType, &l.Result, &l.Status, &l.CreatedAt); err != nil {
		return nil, wrapDBError(err, "scanning lab record")
	}
	return &l, nil
}

func (r *labRepository) CreateLabRecord(ctx context.Context, executor SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error) {
	query := `INSERT INTO lab_records (patient_id, test_name, test_type, result, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + labColumns
	return scanLabRecord(executor.QueryRowContext(ctx, query,
		rec.PatientID, rec.TestName, rec.TestType, rec.Result, rec.Status, time.Now().UTC()))
}

func (r *labRepository) GetLabRecordByID(ctx context.Context, executor SQLExecutor, id int64) (*models.LabRecord, error) {
	return scanLabRecord(executor.QueryRowContext(ctx, `SELECT `+labColumns+` FROM lab_records WHERE id = $1`, id))
}

func (r *labRepository) GetLabRecords(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.LabRecord, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM lab_records`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+labColumns+` FROM lab_records ORDER BY id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying lab records")
	}
	recs, err := collectRows(rows, scanLabRecord, "iterating lab records")
	return recs, total, err
}

func (r *labRepository) GetLabRecordsByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.LabRecord, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+labColumns+` FROM lab_records WHERE patient_id = $1 ORDER BY id`, patientID)
	if err != nil {
		return nil, wrapDBError(err, "querying patient lab records")
	}
	return collectRows(rows, scanLabRecord, "iterating patient lab records")
}

func (r *labRepository) UpdateLabRecord(ctx context.Context, executor SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error) {
	query := `UPDATE lab_records SET result = $1, status = $2 WHERE id = $3 RETURNING ` + labColumns
	return scanLabRecord(executor.QueryRowContext(ctx, query, rec.Result, rec.Status, rec.ID))
}

// --- Medical Records ---

const medicalColumns = `id, patient_id, doctor_id, diagnosis, treatment, prescription, notes, created_at`

func scanMedicalRecord(row scanner) (*models.MedicalRecord, error) {
	var m models.MedicalRecord
	if err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.Diagnosis, &m.Treatment, &m.Prescription, &m.Notes, &m.CreatedAt); err != nil {
		return nil, wrapDBError(err, "scanning medical record")
	}
	return &m, nil
}

func (r *medicalRecordRepository) CreateMedicalRecord(ctx context.Context, executor SQLExecutor, rec *models.MedicalRecord) (*models.MedicalRecord, error) {
	query := `INSERT INTO medical_records (patient_id, doctor_id, diagnosis, treatment, prescription, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + medicalColumns
	return scanMedicalRecord(executor.QueryRowContext(ctx, query,
		rec.PatientID, rec.DoctorID, rec.Diagnosis, rec.Treatment, rec.Prescription, rec.Notes, time.Now().UTC()))
}

func (r *medicalRecordRepository) GetMedicalRecordByID(ctx context.Context, executor SQLExecutor, id int64) (*models.MedicalRecord, error) {
	return scanMedicalRecord(executor.QueryRowContext(ctx, `SELECT `+medicalColumns+` FROM medical_records WHERE id = $1`, id))
}

func (r *medicalRecordRepository) GetMedicalRecordsByPatient(ctx context.Context, executor SQLExecutor, patientID int64) ([]models.MedicalRecord, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+medicalColumns+` FROM medical_records WHERE patient_id = $1 ORDER BY created_at DESC, id DESC`, patientID)
	if err != nil {
		return nil, wrapDBError(err, "querying medical records")
	}
	return collectRows(rows, scanMedicalRecord, "iterating medical records")
}
