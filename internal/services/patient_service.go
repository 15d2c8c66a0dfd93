package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/pkg/utils"

	"github.com/skip2/go-qrcode"
)

var ErrPatientNotFound = errors.New("patient not found")

const wristbandSize = 256

// --- Patient DTOs ---

type CreatePatientRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required"`
	Age            int     `json:"age" binding:"gte=0,lte=150"`
	Gender         string  `json:"gender" binding:"required"`
	MedicalHistory *string `json:"medical_history"`
}

// UpdatePatientRequest is a partial update; nil fields are left unchanged.
type UpdatePatientRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	Age            *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender         *string `json:"gender"`
	MedicalHistory *string `json:"medical_history"`
}

// Apply merges the supplied fields onto patient.
func (r UpdatePatientRequest) Apply(patient *models.Patient) {
	if r.Name != nil {
		patient.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		patient.Email = strings.TrimSpace(*r.Email)
	}
	if r.Phone != nil {
		patient.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Age != nil {
		patient.Age = *r.Age
	}
	if r.Gender != nil {
		patient.Gender = *r.Gender
	}
	// A blank history clears the stored one.
	if r.MedicalHistory != nil {
		patient.MedicalHistory = utils.NullableString(r.MedicalHistory)
	}
}

type PatientService interface {
	RegisterPatient(ctx context.Context, req CreatePatientRequest) (*models.Patient, error)
	GetPatientByID(ctx context.Context, id int64) (*models.Patient, error)
	GetPatients(ctx context.Context, page, pageSize int) ([]models.Patient, int, error)
	UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*models.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	WristbandQR(ctx context.Context, id int64) ([]byte, error)
}

type patientService struct {
	patientRepo repositories.PatientRepository
	db          repositories.SQLExecutor
}

// NewPatientService creates a new instance of PatientService.
func NewPatientService(patientRepo repositories.PatientRepository, db repositories.SQLExecutor) PatientService {
	return &patientService{patientRepo: patientRepo, db: db}
}

func (s *patientService) RegisterPatient(ctx context.Context, req CreatePatientRequest) (*models.Patient, error) {
	created, err := s.patientRepo.CreatePatient(ctx, s.db, &models.Patient{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Age:            req.Age,
		Gender:         req.Gender,
		MedicalHistory: utils.NullableString(req.MedicalHistory),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}
	return created, nil
}

func (s *patientService) GetPatientByID(ctx context.Context, id int64) (*models.Patient, error) {
	patient, err := s.patientRepo.GetPatientByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *patientService) GetPatients(ctx context.Context, page, pageSize int) ([]models.Patient, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	patients, total, err := s.patientRepo.GetPatients(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (s *patientService) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*models.Patient, error) {
	patient, err := s.GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(patient)

	updated, err := s.patientRepo.UpdatePatient(ctx, s.db, patient)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return updated, nil
}

func (s *patientService) DeletePatient(ctx context.Context, id int64) error {
	if err := s.patientRepo.DeletePatient(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

// WristbandPayload is the text encoded in a patient's wristband QR code.
func WristbandPayload(p *models.Patient) string {
	return fmt.Sprintf("HOSPITAL-PATIENT:%d|%s", p.ID, p.Name)
}

// WristbandQR renders the patient's wristband code as a PNG.
func (s *patientService) WristbandQR(ctx context.Context, id int64) ([]byte, error) {
	patient, err := s.GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(WristbandPayload(patient), qrcode.Medium, wristbandSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wristband: %w", err)
	}
	return png, nil
}
