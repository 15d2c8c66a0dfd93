package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"hospital_backend/internal/database"
	"hospital_backend/internal/models"

	"github.com/google/uuid"
)

// openTestDB connects to TEST_DATABASE_URL; tests are skipped when it is unset.
func openTestDB(t *testing.T) Transactor {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.InitDB(dsn, true)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTransactor(db)
}

// errRollback is returned from WithTx callbacks so nothing a test writes is kept.
var errRollback = errors.New("rollback")

func TestClockRecordsAgainstPostgres(t *testing.T) {
	tx := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository()
	employees := NewEmployeeRepository()

	err := tx.WithTx(ctx, func(exec SQLExecutor) error {
		now := time.Now().UTC().Truncate(time.Second)
		user, err := users.CreateUser(ctx, exec, &models.User{
			Email:             uuid.NewString() + "@example.com",
			Name:              "Clock Tester",
			Role:              models.RoleNurse,
			PasswordHash:      "x",
			PasswordChangedAt: now,
			PasswordExpiresAt: now.Add(30 * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		emp, err := employees.CreateEmployee(ctx, exec, &models.Employee{UserID: user.ID, Status: models.EmployeeStatusActive})
		if err != nil {
			t.Fatalf("create employee: %v", err)
		}

		open, err := employees.CreateClockRecord(ctx, exec, &models.ClockRecord{EmployeeID: emp.ID, ClockInTime: now})
		if err != nil {
			t.Fatalf("clock in: %v", err)
		}

		found, err := employees.FindOpenClockRecord(ctx, exec, emp.ID, &now)
		if err != nil || found.ID != open.ID {
			t.Fatalf("find open: %v %+v", err, found)
		}
		if _, err := employees.FindOpenClockRecord(ctx, exec, emp.ID, nil); err != nil {
			t.Fatalf("find open without day filter: %v", err)
		}

		out := now.Add(9 * time.Hour)
		open.ClockOutTime = &out
		open.WorkedHours = 9
		open.OvertimeHours = 1
		closed, err := employees.CloseClockRecord(ctx, exec, open)
		if err != nil {
			t.Fatalf("clock out: %v", err)
		}
		if closed.ClockOutTime == nil || closed.WorkedHours != 9 {
			t.Fatalf("unexpected closed record: %+v", closed)
		}
		if _, err := employees.FindOpenClockRecord(ctx, exec, emp.ID, &now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after clock out, got %v", err)
		}

		records, err := employees.GetClockRecordsBetween(ctx, exec, emp.ID, now.Add(-time.Minute), now.Add(time.Minute))
		if err != nil || len(records) != 1 {
			t.Fatalf("records between: %v (%d)", err, len(records))
		}
		all, err := employees.GetClockRecords(ctx, exec, emp.ID)
		if err != nil || len(all) != 1 || all[0].ID != open.ID {
			t.Fatalf("records: %v %+v", err, all)
		}
		listed, total, err := employees.GetEmployees(ctx, exec, 1, 1000)
		if err != nil || total < 1 || len(listed) == 0 || listed[0].User == nil {
			t.Fatalf("employees: %v total=%d %+v", err, total, listed)
		}
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("unexpected tx result: %v", err)
	}
}

func TestSecondOpenSessionViolatesUniqueIndex(t *testing.T) {
	tx := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository()
	employees := NewEmployeeRepository()

	err := tx.WithTx(ctx, func(exec SQLExecutor) error {
		now := time.Now().UTC()
		user, err := users.CreateUser(ctx, exec, &models.User{
			Email: uuid.NewString() + "@example.com", Name: "Dup", Role: models.RoleNurse, PasswordHash: "x",
			PasswordChangedAt: now, PasswordExpiresAt: now,
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		emp, err := employees.CreateEmployee(ctx, exec, &models.Employee{UserID: user.ID, Status: models.EmployeeStatusActive})
		if err != nil {
			t.Fatalf("create employee: %v", err)
		}
		if _, err := employees.CreateClockRecord(ctx, exec, &models.ClockRecord{EmployeeID: emp.ID, ClockInTime: now}); err != nil {
			t.Fatalf("first clock in: %v", err)
		}
		_, err = employees.CreateClockRecord(ctx, exec, &models.ClockRecord{EmployeeID: emp.ID, ClockInTime: now})
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("unexpected tx result: %v", err)
	}
}
