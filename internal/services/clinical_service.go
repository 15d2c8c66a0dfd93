package services

import (
	"context"
	"errors"
	"fmt"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

var (
	ErrLabRecordNotFound     = errors.New("lab record not found")
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
)

// --- Lab DTOs ---

type CreateLabRecordRequest struct {
	PatientID int64   `json:"patient_id" binding:"required,gt=0"`
	TestName  string  `json:"test_name" binding:"required"`
	TestType  string  `json:"test_type" binding:"required"`
	Result    *string `json:"result"`
}

type UpdateLabRecordRequest struct {
	Result *string `json:"result"`
	Status *string `json:"status" binding:"omitempty,oneof=pending completed"`
}

func (r UpdateLabRecordRequest) Apply(rec *models.LabRecord) {
	if r.Result != nil {
		rec.Result = r.Result
	}
	if r.Status != nil {
		rec.Status = *r.Status
	}
}

// --- Medical record DTOs ---

type CreateMedicalRecordRequest struct {
	PatientID    int64   `json:"patient_id" binding:"required,gt=0"`
	DoctorID     *int64  `json:"doctor_id" binding:"omitempty,gt=0"`
	Diagnosis    string  `json:"diagnosis" binding:"required"`
	Treatment    *string `json:"treatment"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}

// ClinicalService covers lab results and diagnosis records, both hanging off a patient.
type ClinicalService interface {
	CreateLabRecord(ctx context.Context, req CreateLabRecordRequest) (*models.LabRecord, error)
	GetLabRecordByID(ctx context.Context, id int64) (*models.LabRecord, error)
	GetLabRecords(ctx context.Context, page, pageSize int) ([]models.LabRecord, int, error)
	GetPatientLabRecords(ctx context.Context, patientID int64) ([]models.LabRecord, error)
	UpdateLabRecord(ctx context.Context, id int64, req UpdateLabRecordRequest) (*models.LabRecord, error)

	CreateMedicalRecord(ctx context.Context, req CreateMedicalRecordRequest) (*models.MedicalRecord, error)
	GetMedicalRecordByID(ctx context.Context, id int64) (*models.MedicalRecord, error)
	GetPatientMedicalRecords(ctx context.Context, patientID int64) ([]models.MedicalRecord, error)
}

type clinicalService struct {
	labRepo     repositories.LabRepository
	medicalRepo repositories.MedicalRecordRepository
	patientRepo repositories.PatientRepository
	userRepo    repositories.UserRepository
	db          repositories.SQLExecutor
}

// NewClinicalService creates a new instance of ClinicalService.
func NewClinicalService(labRepo repositories.LabRepository, medicalRepo repositories.MedicalRecordRepository,
	patientRepo repositories.PatientRepository, userRepo repositories.UserRepository, db repositories.SQLExecutor) ClinicalService {
	return &clinicalService{
		labRepo:     labRepo,
		medicalRepo: medicalRepo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		db:          db,
	}
}

func (s *clinicalService) requirePatient(ctx context.Context, patientID int64) error {
	if _, err := s.patientRepo.GetPatientByID(ctx, s.db, patientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to look up patient: %w", err)
	}
	return nil
}

func (s *clinicalService) CreateLabRecord(ctx context.Context, req CreateLabRecordRequest) (*models.LabRecord, error) {
	if err := s.requirePatient(ctx, req.PatientID); err != nil {
		return nil, err
	}
	created, err := s.labRepo.CreateLabRecord(ctx, s.db, &models.LabRecord{
		PatientID: req.PatientID,
		TestName:  req.TestName,
		TestType:  req.TestType,
		Result:    req.Result,
		Status:    models.LabStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lab record: %w", err)
	}
	return created, nil
}

func (s *clinicalService) GetLabRecordByID(ctx context.Context, id int64) (*models.LabRecord, error) {
	rec, err := s.labRepo.GetLabRecordByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLabRecordNotFound
		}
		return nil, fmt.Errorf("failed to get lab record: %w", err)
	}
	return rec, nil
}

func (s *clinicalService) GetLabRecords(ctx context.Context, page, pageSize int) ([]models.LabRecord, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	recs, total, err := s.labRepo.GetLabRecords(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lab records: %w", err)
	}
	return recs, total, nil
}

func (s *clinicalService) GetPatientLabRecords(ctx context.Context, patientID int64) ([]models.LabRecord, error) {
	recs, err := s.labRepo.GetLabRecordsByPatient(ctx, s.db, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient lab records: %w", err)
	}
	return recs, nil
}

func (s *clinicalService) UpdateLabRecord(ctx context.Context, id int64, req UpdateLabRecordRequest) (*models.LabRecord, error) {
	rec, err := s.GetLabRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(rec)

	updated, err := s.labRepo.UpdateLabRecord(ctx, s.db, rec)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLabRecordNotFound
		}
		return nil, fmt.Errorf("failed to update lab record: %w", err)
	}
	return updated, nil
}

func (s *clinicalService) CreateMedicalRecord(ctx context.Context, req CreateMedicalRecordRequest) (*models.MedicalRecord, error) {
	if err := s.requirePatient(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if req.DoctorID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, s.db, *req.DoctorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrDoctorNotFound
			}
			return nil, fmt.Errorf("failed to look up doctor: %w", err)
		}
	}

	created, err := s.medicalRepo.CreateMedicalRecord(ctx, s.db, &models.MedicalRecord{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}
	return created, nil
}

func (s *clinicalService) GetMedicalRecordByID(ctx context.Context, id int64) (*models.MedicalRecord, error) {
	rec, err := s.medicalRepo.GetMedicalRecordByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMedicalRecordNotFound
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return rec, nil
}

func (s *clinicalService) GetPatientMedicalRecords(ctx context.Context, patientID int64) ([]models.MedicalRecord, error) {
	recs, err := s.medicalRepo.GetMedicalRecordsByPatient(ctx, s.db, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient medical records: %w", err)
	}
	return recs, nil
}
