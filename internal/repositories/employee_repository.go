package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

const workDateLayout = "2006-01-02"

// EmployeeRepository defines employee and attendance persistence operations.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Employee, error)
	GetEmployees(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Employee, int, error)
	UpdateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error)

	// Clock record methods
	CreateClockRecord(ctx context.Context, executor SQLExecutor, record *models.ClockRecord) (*models.ClockRecord, error)
	// FindOpenClockRecord locks the newest open session. A nil workDate matches any day.
	FindOpenClockRecord(ctx context.Context, executor SQLExecutor, employeeID int64, workDate *time.Time) (*models.ClockRecord, error)
	CloseClockRecord(ctx context.Context, executor SQLExecutor, record *models.ClockRecord) (*models.ClockRecord, error)
	GetClockRecords(ctx context.Context, executor SQLExecutor, employeeID int64) ([]models.ClockRecord, error)
	GetClockRecordsBetween(ctx context.Context, executor SQLExecutor, employeeID int64, from, to time.Time) ([]models.ClockRecord, error)
}

type employeeRepository struct{}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository() EmployeeRepository {
	return &employeeRepository{}
}

// --- Employee Methods ---

func (r *employeeRepository) CreateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `INSERT INTO employees (user_id, phone, salary, status, hire_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	now := time.Now().UTC()
	if employee.HireDate.IsZero() {
		employee.HireDate = now
	}
	err := executor.QueryRowContext(ctx, query,
		employee.UserID, employee.Phone, employee.Salary, employee.Status, employee.HireDate, now,
	).Scan(&employee.ID, &employee.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, "creating employee")
	}
	return employee, nil
}

const employeeSelect = `SELECT e.id, e.user_id, e.phone, e.salary, e.status, e.hire_date, e.created_at,
	       u.id, u.email, u.name, u.role
	  FROM employees e
	  JOIN users u ON u.id = e.user_id`

func scanEmployee(row scanner) (*models.Employee, error) {
	var e models.Employee
	var u models.User
	err := row.Scan(&e.ID, &e.UserID, &e.Phone, &e.Salary, &e.Status, &e.HireDate, &e.CreatedAt,
		&u.ID, &u.Email, &u.Name, &u.Role)
	if err != nil {
		return nil, wrapDBError(err, "scanning employee")
	}
	e.User = &u
	return &e, nil
}

func (r *employeeRepository) GetEmployeeByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Employee, error) {
	return scanEmployee(executor.QueryRowContext(ctx, employeeSelect+` WHERE e.id = $1`, id))
}

func (r *employeeRepository) GetEmployees(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.Employee, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM employees`)
	if err != nil {
		return nil, 0, err
	}

	query, args := paginate(employeeSelect+` ORDER BY e.id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying employees")
	}
	employees, err := collectRows(rows, scanEmployee, "iterating employees")
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `UPDATE employees SET phone = $1, salary = $2, status = $3 WHERE id = $4`
	res, err := executor.ExecContext(ctx, query, employee.Phone, employee.Salary, employee.Status, employee.ID)
	if err != nil {
		return nil, wrapDBError(err, "updating employee")
	}
	if err := requireAffected(res, "updating employee"); err != nil {
		return nil, err
	}
	return employee, nil
}

// --- Clock Record Methods ---

const clockRecordColumns = `id, employee_id, clock_in_time, clock_out_time, work_date, worked_hours, overtime_hours, created_at`

func scanClockRecord(row scanner) (*models.ClockRecord, error) {
	var rec models.ClockRecord
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.ClockInTime, &rec.ClockOutTime, &rec.WorkDate,
		&rec.WorkedHours, &rec.OvertimeHours, &rec.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning clock record")
	}
	return &rec, nil
}

// CreateClockRecord inserts an open session. The clock_records_one_open_per_day index turns a
// concurrent duplicate into ErrDuplicateKey.
func (r *employeeRepository) CreateClockRecord(ctx context.Context, executor SQLExecutor, record *models.ClockRecord) (*models.ClockRecord, error) {
	query := `INSERT INTO clock_records (employee_id, clock_in_time, work_date, worked_hours, overtime_hours, created_at)
	          VALUES ($1, $2, $3::date, 0, 0, $2)
	          RETURNING ` + clockRecordColumns
	return scanClockRecord(executor.QueryRowContext(ctx, query,
		record.EmployeeID, record.ClockInTime, record.ClockInTime.UTC().Format(workDateLayout),
	))
}

func (r *employeeRepository) FindOpenClockRecord(ctx context.Context, executor SQLExecutor, employeeID int64, workDate *time.Time) (*models.ClockRecord, error) {
	var day interface{}
	if workDate != nil {
		day = workDate.UTC().Format(workDateLayout)
	}
	query := `SELECT ` + clockRecordColumns + `
	          FROM clock_records
	          WHERE employee_id = $1 AND clock_out_time IS NULL
	            AND ($2::date IS NULL OR work_date = $2::date)
	          ORDER BY clock_in_time DESC
	          LIMIT 1
	          FOR UPDATE`
	return scanClockRecord(executor.QueryRowContext(ctx, query, employeeID, day))
}

func (r *employeeRepository) CloseClockRecord(ctx context.Context, executor SQLExecutor, record *models.ClockRecord) (*models.ClockRecord, error) {
	query := `UPDATE clock_records
	          SET clock_out_time = $1, worked_hours = $2, overtime_hours = $3
	          WHERE id = $4 AND clock_out_time IS NULL
	          RETURNING ` + clockRecordColumns
	return scanClockRecord(executor.QueryRowContext(ctx, query,
		record.ClockOutTime, record.WorkedHours, record.OvertimeHours, record.ID,
	))
}

func (r *employeeRepository) GetClockRecords(ctx context.Context, executor SQLExecutor, employeeID int64) ([]models.ClockRecord, error) {
	query := `SELECT ` + clockRecordColumns + ` FROM clock_records WHERE employee_id = $1 ORDER BY id`
	return r.queryClockRecords(ctx, executor, query, employeeID)
}

// GetClockRecordsBetween returns sessions whose clock-in is in [from, to).
func (r *employeeRepository) GetClockRecordsBetween(ctx context.Context, executor SQLExecutor, employeeID int64, from, to time.Time) ([]models.ClockRecord, error) {
	query := `SELECT ` + clockRecordColumns + `
	          FROM clock_records
	          WHERE employee_id = $1 AND clock_in_time >= $2 AND clock_in_time < $3
	          ORDER BY id`
	return r.queryClockRecords(ctx, executor, query, employeeID, from, to)
}

func (r *employeeRepository) queryClockRecords(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.ClockRecord, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "querying clock records")
	}
	return collectRows(rows, scanClockRecord, "iterating clock records")
}
