package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

var (
	ErrEmployeeExists = errors.New("user is already linked to an employee")
	ErrHireDateFormat = errors.New("invalid hire date format, please use YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// --- Employee DTOs ---

type CreateEmployeeRequest struct {
	UserID   int64   `json:"user_id" binding:"required,gt=0"`
	Phone    string  `json:"phone" binding:"required"`
	Salary   float64 `json:"salary" binding:"gte=0"`
	HireDate *string `json:"hire_date"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Phone  *string  `json:"phone"`
	Salary *float64 `json:"salary" binding:"omitempty,gte=0"`
	Status *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Apply merges the supplied fields onto employee.
func (r UpdateEmployeeRequest) Apply(employee *models.Employee) {
	if r.Phone != nil {
		employee.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Salary != nil {
		employee.Salary = *r.Salary
	}
	if r.Status != nil {
		employee.Status = *r.Status
	}
}

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	GetEmployees(ctx context.Context, page, pageSize int) ([]models.Employee, int, error)
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (*models.Employee, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	userRepo     repositories.UserRepository
	db           repositories.SQLExecutor
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, userRepo repositories.UserRepository,
	db repositories.SQLExecutor) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, userRepo: userRepo, db: db}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	user, err := s.userRepo.FindUserByID(ctx, s.db, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user ID %d", ErrUserNotFound, req.UserID)
		}
		return nil, fmt.Errorf("failed to validate user for employee: %w", err)
	}

	employee := &models.Employee{
		UserID: req.UserID,
		Phone:  strings.TrimSpace(req.Phone),
		Salary: req.Salary,
		Status: models.EmployeeStatusActive,
	}
	if req.HireDate != nil && strings.TrimSpace(*req.HireDate) != "" {
		hired, err := time.Parse(dateLayout, strings.TrimSpace(*req.HireDate))
		if err != nil {
			return nil, ErrHireDateFormat
		}
		employee.HireDate = hired
	}

	created, err := s.employeeRepo.CreateEmployee(ctx, s.db, employee)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: user ID %d", ErrEmployeeExists, req.UserID)
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	created.User = user
	return created, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(ctx context.Context, page, pageSize int) ([]models.Employee, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	employees, total, err := s.employeeRepo.GetEmployees(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(employee)

	updated, err := s.employeeRepo.UpdateEmployee(ctx, s.db, employee)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}
