package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

// fakeTx runs fn without a real transaction.
type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, _ repositories.SQLExecutor, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, repositories.ErrDuplicateKey
		}
	}
	r.nextID++
	cp := *user
	cp.ID = r.nextID
	cp.CreatedAt = cp.PasswordChangedAt
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, _ repositories.SQLExecutor, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, _ repositories.SQLExecutor, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, _ repositories.SQLExecutor, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = user.PasswordHash
	u.FirstLogin = user.FirstLogin
	u.PasswordChangedAt = user.PasswordChangedAt
	u.PasswordExpiresAt = user.PasswordExpiresAt
	return nil
}

// fakeEmployeeRepo keeps employees and clock records in memory. With uniqueOpen set it rejects
// a second open record for the same employee and day, like the partial unique index. afterFind,
// when set, runs after every open-session lookup.
type fakeEmployeeRepo struct {
	mu         sync.Mutex
	employees  map[int64]*models.Employee
	records    []*models.ClockRecord
	nextID     int64
	uniqueOpen bool
	afterFind  func()
}

func newFakeEmployeeRepo(ids ...int64) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: map[int64]*models.Employee{}}
	for _, id := range ids {
		r.employees[id] = &models.Employee{ID: id, UserID: id, Status: models.EmployeeStatusActive}
	}
	return r
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (r *fakeEmployeeRepo) CreateEmployee(ctx context.Context, _ repositories.SQLExecutor, e *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.UserID == e.UserID {
			return nil, repositories.ErrDuplicateKey
		}
	}
	cp := *e
	cp.ID = int64(len(r.employees) + 1)
	r.employees[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeEmployeeRepo) GetEmployeeByID(ctx context.Context, _ repositories.SQLExecutor, id int64) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) GetEmployees(ctx context.Context, _ repositories.SQLExecutor, page, pageSize int) ([]models.Employee, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Employee{}
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (r *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, _ repositories.SQLExecutor, e *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[e.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	r.employees[e.ID] = &cp
	return e, nil
}

func (r *fakeEmployeeRepo) CreateClockRecord(ctx context.Context, _ repositories.SQLExecutor, rec *models.ClockRecord) (*models.ClockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.uniqueOpen {
		for _, existing := range r.records {
			if existing.EmployeeID == rec.EmployeeID && existing.IsOpen() && sameUTCDay(existing.WorkDate, rec.ClockInTime) {
				return nil, repositories.ErrDuplicateKey
			}
		}
	}
	r.nextID++
	cp := *rec
	cp.ID = r.nextID
	cp.WorkDate = rec.ClockInTime.UTC().Truncate(24 * time.Hour)
	r.records = append(r.records, &cp)
	out := cp
	return &out, nil
}

func (r *fakeEmployeeRepo) FindOpenClockRecord(ctx context.Context, _ repositories.SQLExecutor, employeeID int64, workDate *time.Time) (*models.ClockRecord, error) {
	r.mu.Lock()
	var found *models.ClockRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.EmployeeID != employeeID || !rec.IsOpen() {
			continue
		}
		if workDate != nil && !sameUTCDay(rec.WorkDate, *workDate) {
			continue
		}
		cp := *rec
		found = &cp
		break
	}
	hook := r.afterFind
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

func (r *fakeEmployeeRepo) CloseClockRecord(ctx context.Context, _ repositories.SQLExecutor, rec *models.ClockRecord) (*models.ClockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.ID == rec.ID && existing.IsOpen() {
			existing.ClockOutTime = rec.ClockOutTime
			existing.WorkedHours = rec.WorkedHours
			existing.OvertimeHours = rec.OvertimeHours
			cp := *existing
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEmployeeRepo) GetClockRecords(ctx context.Context, _ repositories.SQLExecutor, employeeID int64) ([]models.ClockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ClockRecord{}
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) GetClockRecordsBetween(ctx context.Context, _ repositories.SQLExecutor, employeeID int64, from, to time.Time) ([]models.ClockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ClockRecord{}
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.ClockInTime.Before(from) && rec.ClockInTime.Before(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) openCount(employeeID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.IsOpen() {
			n++
		}
	}
	return n
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	requests map[int64]*models.PaymentRequest
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{requests: map[int64]*models.PaymentRequest{}}
}

func (r *fakePaymentRepo) CreatePaymentRequest(ctx context.Context, _ repositories.SQLExecutor, req *models.PaymentRequest) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *req
	cp.ID = r.nextID
	r.requests[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakePaymentRepo) GetPaymentRequestByID(ctx context.Context, _ repositories.SQLExecutor, id int64, forUpdate bool) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakePaymentRepo) UpdatePaymentRequestStatus(ctx context.Context, _ repositories.SQLExecutor, id int64, status string) (*models.PaymentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	req.Status = status
	cp := *req
	return &cp, nil
}

func (r *fakePaymentRepo) GetPaymentRequests(ctx context.Context, _ repositories.SQLExecutor, f models.PaymentRequestFilters) ([]models.PaymentRequest, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PaymentRequest{}
	for id := int64(1); id <= r.nextID; id++ {
		req, ok := r.requests[id]
		if !ok {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		if f.EmployeeID != nil && req.EmployeeID != *f.EmployeeID {
			continue
		}
		out = append(out, *req)
	}
	return out, len(out), nil
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders []*models.Reminder
}

func (r *fakeReminderRepo) CreateReminder(ctx context.Context, _ repositories.SQLExecutor, m *models.Reminder) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	cp.ID = int64(len(r.reminders) + 1)
	r.reminders = append(r.reminders, &cp)
	out := cp
	return &out, nil
}

func (r *fakeReminderRepo) GetReminderByID(ctx context.Context, _ repositories.SQLExecutor, id int64, forUpdate bool) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || int(id) > len(r.reminders) {
		return nil, repositories.ErrNotFound
	}
	cp := *r.reminders[id-1]
	return &cp, nil
}

func (r *fakeReminderRepo) GetReminders(ctx context.Context, _ repositories.SQLExecutor, page, pageSize int) ([]models.Reminder, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Reminder{}
	for _, m := range r.reminders {
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (r *fakeReminderRepo) GetPendingByPatient(ctx context.Context, _ repositories.SQLExecutor, patientID int64) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Reminder{}
	for _, m := range r.reminders {
		if !m.Sent && m.PatientID != nil && *m.PatientID == patientID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) SetSent(ctx context.Context, _ repositories.SQLExecutor, id int64, sent bool) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || int(id) > len(r.reminders) {
		return nil, repositories.ErrNotFound
	}
	r.reminders[id-1].Sent = sent
	cp := *r.reminders[id-1]
	return &cp, nil
}

type fakePatientRepo struct {
	patients map[int64]*models.Patient
}

func newFakePatientRepo(ps ...models.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: map[int64]*models.Patient{}}
	for i := range ps {
		p := ps[i]
		r.patients[p.ID] = &p
	}
	return r
}

func (r *fakePatientRepo) CreatePatient(ctx context.Context, _ repositories.SQLExecutor, p *models.Patient) (*models.Patient, error) {
	cp := *p
	cp.ID = int64(len(r.patients) + 1)
	r.patients[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakePatientRepo) GetPatientByID(ctx context.Context, _ repositories.SQLExecutor, id int64) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) GetPatients(ctx context.Context, _ repositories.SQLExecutor, page, pageSize int) ([]models.Patient, int, error) {
	out := []models.Patient{}
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakePatientRepo) UpdatePatient(ctx context.Context, _ repositories.SQLExecutor, p *models.Patient) (*models.Patient, error) {
	if _, ok := r.patients[p.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	r.patients[p.ID] = &cp
	return p, nil
}

func (r *fakePatientRepo) DeletePatient(ctx context.Context, _ repositories.SQLExecutor, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

// fixedClock returns a controllable now function.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
