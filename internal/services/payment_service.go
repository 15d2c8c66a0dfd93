package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital_backend/internal/metrics"
	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/pkg/utils"
)

var ErrPaymentRequestNotFound = errors.New("payment request not found")

// paymentTransitions lists the legal moves of the payment lifecycle.
var paymentTransitions = map[string][]string{
	models.PaymentStatusPending:  {models.PaymentStatusApproved, models.PaymentStatusRejected},
	models.PaymentStatusApproved: {models.PaymentStatusPaid},
}

// CanTransition reports whether from -> to is a legal payment status change.
func CanTransition(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SubmitPaymentRequest creates a pending request. TotalAmount is taken as given; callers are
// expected to send base_salary + overtime_pay.
type SubmitPaymentRequest struct {
	EmployeeID  int64   `json:"employee_id" binding:"required,gt=0"`
	BaseSalary  float64 `json:"base_salary" binding:"gte=0"`
	OvertimePay float64 `json:"overtime_pay" binding:"gte=0"`
	TotalAmount float64 `json:"total_amount" binding:"gte=0"`
	Month       string  `json:"month" binding:"required,month"`
	Notes       *string `json:"notes"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected paid"`
}

type PaymentService interface {
	Submit(ctx context.Context, req SubmitPaymentRequest) (*models.PaymentRequest, error)
	SetStatus(ctx context.Context, id int64, status string) (*models.PaymentRequest, error)
	Get(ctx context.Context, id int64) (*models.PaymentRequest, error)
	List(ctx context.Context, filters models.PaymentRequestFilters) ([]models.PaymentRequest, int, error)
}

type paymentService struct {
	paymentRepo  repositories.PaymentRepository
	employeeRepo repositories.EmployeeRepository
	db           repositories.SQLExecutor
	tx           repositories.Transactor
	strict       bool
}

// NewPaymentService creates a new instance of PaymentService. With strict set, illegal status
// changes fail with ErrInvalidTransition; otherwise they are applied and logged.
func NewPaymentService(paymentRepo repositories.PaymentRepository, employeeRepo repositories.EmployeeRepository,
	db repositories.SQLExecutor, tx repositories.Transactor, strict bool) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		db:           db,
		tx:           tx,
		strict:       strict,
	}
}

func (s *paymentService) Submit(ctx context.Context, req SubmitPaymentRequest) (*models.PaymentRequest, error) {
	if _, err := s.employeeRepo.GetEmployeeByID(ctx, s.db, req.EmployeeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	created, err := s.paymentRepo.CreatePaymentRequest(ctx, s.db, &models.PaymentRequest{
		EmployeeID:  req.EmployeeID,
		BaseSalary:  req.BaseSalary,
		OvertimePay: req.OvertimePay,
		TotalAmount: req.TotalAmount,
		Status:      models.PaymentStatusPending,
		Month:       strings.TrimSpace(req.Month),
		Notes:       utils.NullableString(req.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	return created, nil
}

func (s *paymentService) SetStatus(ctx context.Context, id int64, status string) (*models.PaymentRequest, error) {
	var updated *models.PaymentRequest
	var from string
	err := s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
		current, err := s.paymentRepo.GetPaymentRequestByID(ctx, tx, id, true)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrPaymentRequestNotFound
			}
			return fmt.Errorf("failed to load payment request: %w", err)
		}
		from = current.Status

		if !CanTransition(from, status) {
			if s.strict {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
			}
			utils.LogWarn("applying unchecked payment status change", map[string]interface{}{
				"payment_request_id": id,
				"from":               from,
				"to":                 status,
			})
		}

		updated, err = s.paymentRepo.UpdatePaymentRequestStatus(ctx, tx, id, status)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrPaymentRequestNotFound
			}
			return fmt.Errorf("failed to update payment request status: %w", err)
		}
		return nil
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrInvalidTransition) {
			outcome = "rejected"
		}
		metrics.PaymentTransitions.WithLabelValues(status, outcome).Inc()
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(status, "ok").Inc()
	utils.LogInfo("payment request status changed", map[string]interface{}{"payment_request_id": id, "from": from, "to": status})
	return updated, nil
}

func (s *paymentService) Get(ctx context.Context, id int64) (*models.PaymentRequest, error) {
	req, err := s.paymentRepo.GetPaymentRequestByID(ctx, s.db, id, false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentRequestNotFound
		}
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	return req, nil
}

func (s *paymentService) List(ctx context.Context, filters models.PaymentRequestFilters) ([]models.PaymentRequest, int, error) {
	filters.Page, filters.PageSize = pageDefaults(filters.Page, filters.PageSize)
	items, total, err := s.paymentRepo.GetPaymentRequests(ctx, s.db, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return items, total, nil
}
