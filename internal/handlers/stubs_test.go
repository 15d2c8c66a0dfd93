package handlers

import (
	"context"
	"errors"

	"hospital_backend/internal/models"
	"hospital_backend/internal/services"
)

var errStubUnused = errors.New("stub method not configured")

type stubAuthService struct {
	login          func(req services.LoginRequest) (*services.AuthResponse, error)
	changePassword func(userID int64, req services.ChangePasswordRequest) (*models.User, error)
	reset          func(email string, by int64) (string, error)
}

func (s *stubAuthService) Register(context.Context, services.RegisterUserRequest) (*services.RegisterResponse, error) {
	return nil, errStubUnused
}

func (s *stubAuthService) Login(_ context.Context, req services.LoginRequest) (*services.AuthResponse, error) {
	return s.login(req)
}

func (s *stubAuthService) ChangePassword(_ context.Context, userID int64, req services.ChangePasswordRequest) (*models.User, error) {
	return s.changePassword(userID, req)
}

func (s *stubAuthService) ResetToUniversal(_ context.Context, email string, by int64) (string, error) {
	return s.reset(email, by)
}

func (s *stubAuthService) GetUserProfile(context.Context, int64) (*models.User, error) {
	return nil, errStubUnused
}

func (s *stubAuthService) SeedAdmin(context.Context, string, string) (*models.User, error) {
	return nil, errStubUnused
}

type stubAttendanceService struct {
	clockIn func(employeeID int64) (*models.ClockRecord, error)
	summary func(employeeID int64, month string) (*models.HoursSummary, error)
}

func (s *stubAttendanceService) ClockIn(_ context.Context, employeeID int64) (*models.ClockRecord, error) {
	return s.clockIn(employeeID)
}

func (s *stubAttendanceService) ClockOut(context.Context, int64) (*models.ClockRecord, error) {
	return nil, services.ErrNoActiveSession
}

func (s *stubAttendanceService) ListClockRecords(context.Context, int64) ([]models.ClockRecord, error) {
	return nil, errStubUnused
}

func (s *stubAttendanceService) MonthlySummary(_ context.Context, employeeID int64, month string) (*models.HoursSummary, error) {
	return s.summary(employeeID, month)
}

type stubPatientService struct {
	patients  []models.Patient
	wristband func(id int64) ([]byte, error)
	lastPage  [2]int
}

func (s *stubPatientService) RegisterPatient(context.Context, services.CreatePatientRequest) (*models.Patient, error) {
	return nil, errStubUnused
}

func (s *stubPatientService) GetPatientByID(context.Context, int64) (*models.Patient, error) {
	return nil, services.ErrPatientNotFound
}

func (s *stubPatientService) GetPatients(_ context.Context, page, pageSize int) ([]models.Patient, int, error) {
	s.lastPage = [2]int{page, pageSize}
	return s.patients, len(s.patients), nil
}

func (s *stubPatientService) UpdatePatient(context.Context, int64, services.UpdatePatientRequest) (*models.Patient, error) {
	return nil, errStubUnused
}

func (s *stubPatientService) DeletePatient(context.Context, int64) error {
	return errStubUnused
}

func (s *stubPatientService) WristbandQR(_ context.Context, id int64) ([]byte, error) {
	return s.wristband(id)
}

type stubPaymentService struct {
	setStatus   func(id int64, status string) (*models.PaymentRequest, error)
	lastFilters models.PaymentRequestFilters
}

func (s *stubPaymentService) Submit(context.Context, services.SubmitPaymentRequest) (*models.PaymentRequest, error) {
	return nil, errStubUnused
}

func (s *stubPaymentService) SetStatus(_ context.Context, id int64, status string) (*models.PaymentRequest, error) {
	return s.setStatus(id, status)
}

func (s *stubPaymentService) Get(context.Context, int64) (*models.PaymentRequest, error) {
	return nil, services.ErrPaymentRequestNotFound
}

func (s *stubPaymentService) List(_ context.Context, filters models.PaymentRequestFilters) ([]models.PaymentRequest, int, error) {
	s.lastFilters = filters
	return []models.PaymentRequest{}, 0, nil
}
