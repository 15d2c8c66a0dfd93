package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrPatientOrDoctorNotFound = errors.New("patient or doctor not found")
)

type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id" binding:"required,gt=0"`
	DoctorID        int64     `json:"doctor_id" binding:"required,gt=0"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	AppointmentTime string    `json:"appointment_time" binding:"required"`
	Reason          string    `json:"reason" binding:"required"`
	Notes           *string   `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes  *string `json:"notes"`
}

func (r UpdateAppointmentRequest) Apply(appt *models.Appointment) {
	if r.Status != nil {
		appt.Status = *r.Status
	}
	if r.Notes != nil {
		appt.Notes = r.Notes
	}
}

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error)
	GetAppointments(ctx context.Context, page, pageSize int) ([]models.Appointment, int, error)
	UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	userRepo        repositories.UserRepository
	db              repositories.SQLExecutor
}

// NewAppointmentService creates a new instance of AppointmentService.
func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, patientRepo repositories.PatientRepository,
	userRepo repositories.UserRepository, db repositories.SQLExecutor) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		db:              db,
	}
}

func (s *appointmentService) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	_, perr := s.patientRepo.GetPatientByID(ctx, s.db, req.PatientID)
	_, derr := s.userRepo.FindUserByID(ctx, s.db, req.DoctorID)
	for _, err := range []error{perr, derr} {
		if err == nil {
			continue
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientOrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to verify appointment participants: %w", err)
	}

	created, err := s.appointmentRepo.CreateAppointment(ctx, s.db, &models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          models.AppointmentStatusPending,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return created, nil
}

func (s *appointmentService) GetAppointmentByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.appointmentRepo.GetAppointmentByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) GetAppointments(ctx context.Context, page, pageSize int) ([]models.Appointment, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	appts, total, err := s.appointmentRepo.GetAppointments(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, total, nil
}

func (s *appointmentService) UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(appt)

	updated, err := s.appointmentRepo.UpdateAppointment(ctx, s.db, appt)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return updated, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.DeleteAppointment(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
