package services

import (
	"context"
	"errors"
	"testing"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

type fakeLabRepo struct {
	repositories.LabRepository
	records map[int64]*models.LabRecord
	nextID  int64
}

func (r *fakeLabRepo) CreateLabRecord(_ context.Context, _ repositories.SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error) {
	r.nextID++
	cp := *rec
	cp.ID = r.nextID
	r.records[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeLabRepo) GetLabRecordByID(_ context.Context, _ repositories.SQLExecutor, id int64) (*models.LabRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeLabRepo) UpdateLabRecord(_ context.Context, _ repositories.SQLExecutor, rec *models.LabRecord) (*models.LabRecord, error) {
	cp := *rec
	r.records[rec.ID] = &cp
	return &cp, nil
}

type fakeMedicalRepo struct {
	repositories.MedicalRecordRepository
	created int
}

func (r *fakeMedicalRepo) CreateMedicalRecord(_ context.Context, _ repositories.SQLExecutor, rec *models.MedicalRecord) (*models.MedicalRecord, error) {
	r.created++
	cp := *rec
	cp.ID = int64(r.created)
	return &cp, nil
}

func newClinicalFixture(t *testing.T) (ClinicalService, *fakeLabRepo, *fakeMedicalRepo, int64) {
	t.Helper()
	users := newFakeUserRepo()
	doctor, err := users.CreateUser(context.Background(), nil, &models.User{Email: "doc@example.com", Name: "Dana", Role: models.RoleDoctor})
	if err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	labs := &fakeLabRepo{records: map[int64]*models.LabRecord{}}
	medical := &fakeMedicalRepo{}
	svc := NewClinicalService(labs, medical, newFakePatientRepo(models.Patient{ID: 1, Name: "Ann"}), users, nil)
	return svc, labs, medical, doctor.ID
}

func TestLabRecordLifecycle(t *testing.T) {
	svc, _, _, _ := newClinicalFixture(t)
	ctx := context.Background()

	rec, err := svc.CreateLabRecord(ctx, CreateLabRecordRequest{PatientID: 1, TestName: "CBC", TestType: "blood"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Status != models.LabStatusPending {
		t.Fatalf("expected pending, got %s", rec.Status)
	}

	result := "normal"
	status := models.LabStatusCompleted
	updated, err := svc.UpdateLabRecord(ctx, rec.ID, UpdateLabRecordRequest{Result: &result, Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Result == nil || *updated.Result != "normal" || updated.Status != models.LabStatusCompleted || updated.TestName != "CBC" {
		t.Fatalf("unexpected record: %+v", updated)
	}

	if _, err := svc.CreateLabRecord(ctx, CreateLabRecordRequest{PatientID: 2, TestName: "CBC", TestType: "blood"}); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if _, err := svc.GetLabRecordByID(ctx, 404); !errors.Is(err, ErrLabRecordNotFound) {
		t.Fatalf("expected ErrLabRecordNotFound, got %v", err)
	}
}

func TestMedicalRecordChecksReferences(t *testing.T) {
	svc, _, medical, doctorID := newClinicalFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateMedicalRecord(ctx, CreateMedicalRecordRequest{PatientID: 1, DoctorID: &doctorID, Diagnosis: "flu"}); err != nil {
		t.Fatalf("create with doctor: %v", err)
	}
	if _, err := svc.CreateMedicalRecord(ctx, CreateMedicalRecordRequest{PatientID: 1, Diagnosis: "cold"}); err != nil {
		t.Fatalf("create without doctor: %v", err)
	}

	missing := doctorID + 100
	if _, err := svc.CreateMedicalRecord(ctx, CreateMedicalRecordRequest{PatientID: 1, DoctorID: &missing, Diagnosis: "flu"}); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
	if _, err := svc.CreateMedicalRecord(ctx, CreateMedicalRecordRequest{PatientID: 9, Diagnosis: "flu"}); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if medical.created != 2 {
		t.Fatalf("expected 2 stored records, got %d", medical.created)
	}
}
