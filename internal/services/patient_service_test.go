package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"hospital_backend/internal/models"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestUpdatePatientRequestApply(t *testing.T) {
	history := "asthma"
	patient := models.Patient{ID: 1, Name: "Ann", Email: "ann@example.com", Phone: "555", Age: 30, Gender: "female", MedicalHistory: &history}

	UpdatePatientRequest{}.Apply(&patient)
	if patient.Name != "Ann" || patient.Age != 30 || patient.MedicalHistory != &history {
		t.Fatalf("empty update must not change anything: %+v", patient)
	}

	UpdatePatientRequest{Phone: strPtr(" 777 "), Age: intPtr(31)}.Apply(&patient)
	if patient.Phone != "777" || patient.Age != 31 || patient.Email != "ann@example.com" {
		t.Fatalf("unexpected merge: %+v", patient)
	}
}

func TestPatientMedicalHistoryBlankIsNull(t *testing.T) {
	svc := NewPatientService(newFakePatientRepo(), nil)
	ctx := context.Background()

	created, err := svc.RegisterPatient(ctx, CreatePatientRequest{Name: "Bo", Age: 40, MedicalHistory: strPtr("  ")})
	if err != nil || created.MedicalHistory != nil {
		t.Fatalf("expected NULL history, got %+v, %v", created, err)
	}

	updated, err := svc.UpdatePatient(ctx, created.ID, UpdatePatientRequest{MedicalHistory: strPtr(" diabetes ")})
	if err != nil || updated.MedicalHistory == nil || *updated.MedicalHistory != "diabetes" {
		t.Fatalf("expected trimmed history, got %+v, %v", updated, err)
	}

	cleared, err := svc.UpdatePatient(ctx, created.ID, UpdatePatientRequest{MedicalHistory: strPtr("")})
	if err != nil || cleared.MedicalHistory != nil {
		t.Fatalf("expected blank update to clear history, got %+v, %v", cleared, err)
	}
}

func TestPatientUpdateAndWristband(t *testing.T) {
	repo := newFakePatientRepo(models.Patient{ID: 1, Name: "Ann", Age: 30})
	svc := NewPatientService(repo, nil)
	ctx := context.Background()

	updated, err := svc.UpdatePatient(ctx, 1, UpdatePatientRequest{Name: strPtr("Ann Lee")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ann Lee" || updated.Age != 30 {
		t.Fatalf("unexpected patient: %+v", updated)
	}

	png, err := svc.WristbandQR(ctx, 1)
	if err != nil {
		t.Fatalf("wristband: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected PNG output")
	}
	if got := WristbandPayload(updated); got != "HOSPITAL-PATIENT:1|Ann Lee" {
		t.Fatalf("unexpected payload %q", got)
	}

	if _, err := svc.WristbandQR(ctx, 2); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if err := svc.DeletePatient(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeletePatient(ctx, 1); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound on second delete, got %v", err)
	}
}

func TestCreateAppointmentRequiresPatientAndDoctor(t *testing.T) {
	users := newFakeUserRepo()
	doctor, _ := users.CreateUser(context.Background(), nil, &models.User{Email: "doc@example.com", Role: models.RoleDoctor})
	patients := newFakePatientRepo(models.Patient{ID: 1, Name: "Ann"})
	svc := NewAppointmentService(nil, patients, users, nil)

	cases := map[string]CreateAppointmentRequest{
		"missing patient": {PatientID: 9, DoctorID: doctor.ID},
		"missing doctor":  {PatientID: 1, DoctorID: 99},
	}
	for name, req := range cases {
		req.AppointmentDate = time.Now()
		if _, err := svc.CreateAppointment(context.Background(), req); !errors.Is(err, ErrPatientOrDoctorNotFound) {
			t.Fatalf("%s: expected ErrPatientOrDoctorNotFound, got %v", name, err)
		}
	}
}

func TestUpdateEmployeeRequestApply(t *testing.T) {
	employee := models.Employee{Phone: "1", Salary: 100, Status: models.EmployeeStatusActive}
	inactive := models.EmployeeStatusInactive
	salary := 250.5

	UpdateEmployeeRequest{Salary: &salary, Status: &inactive}.Apply(&employee)
	if employee.Phone != "1" || employee.Salary != 250.5 || employee.Status != inactive {
		t.Fatalf("unexpected merge: %+v", employee)
	}
}

func TestCreateEmployee(t *testing.T) {
	users := newFakeUserRepo()
	user, _ := users.CreateUser(context.Background(), nil, &models.User{Email: "n@example.com", Name: "Nora", Role: models.RoleNurse})
	svc := NewEmployeeService(newFakeEmployeeRepo(), users, nil)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{UserID: user.ID, Phone: "555", Salary: 1000, HireDate: strPtr("2024-02-01")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.EmployeeStatusActive || created.User == nil || created.HireDate.Month() != time.February {
		t.Fatalf("unexpected employee: %+v", created)
	}

	if _, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{UserID: user.ID, Phone: "555"}); !errors.Is(err, ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}
	if _, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{UserID: 77, Phone: "555"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{UserID: user.ID, Phone: "555", HireDate: strPtr("01/02/2024")}); !errors.Is(err, ErrHireDateFormat) {
		t.Fatalf("expected ErrHireDateFormat, got %v", err)
	}
}
