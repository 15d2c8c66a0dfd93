package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital_backend/internal/models"
)

// PaymentRepository defines payroll request persistence operations.
type PaymentRepository interface {
	CreatePaymentRequest(ctx context.Context, executor SQLExecutor, req *models.PaymentRequest) (*models.PaymentRequest, error)
	GetPaymentRequestByID(ctx context.Context, executor SQLExecutor, id int64, forUpdate bool) (*models.PaymentRequest, error)
	UpdatePaymentRequestStatus(ctx context.Context, executor SQLExecutor, id int64, status string) (*models.PaymentRequest, error)
	GetPaymentRequests(ctx context.Context, executor SQLExecutor, filters models.PaymentRequestFilters) ([]models.PaymentRequest, int, error)
}

type paymentRepository struct{}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{}
}

const paymentColumns = `id, employee_id, base_salary, overtime_pay, total_amount, status, month, notes, created_at, updated_at`

func scanPaymentRequest(row scanner) (*models.PaymentRequest, error) {
	var p models.PaymentRequest
	err := row.Scan(&p.ID, &p.EmployeeID, &p.BaseSalary, &p.OvertimePay, &p.TotalAmount,
		&p.Status, &p.Month, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning payment request")
	}
	return &p, nil
}

func (r *paymentRepository) CreatePaymentRequest(ctx context.Context, executor SQLExecutor, req *models.PaymentRequest) (*models.PaymentRequest, error) {
	query := `INSERT INTO payment_requests (employee_id, base_salary, overtime_pay, total_amount, status, month, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING ` + paymentColumns
	return scanPaymentRequest(executor.QueryRowContext(ctx, query,
		req.EmployeeID, req.BaseSalary, req.OvertimePay, req.TotalAmount, req.Status, req.Month, req.Notes, time.Now().UTC(),
	))
}

func (r *paymentRepository) GetPaymentRequestByID(ctx context.Context, executor SQLExecutor, id int64, forUpdate bool) (*models.PaymentRequest, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanPaymentRequest(executor.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) UpdatePaymentRequestStatus(ctx context.Context, executor SQLExecutor, id int64, status string) (*models.PaymentRequest, error) {
	query := `UPDATE payment_requests SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + paymentColumns
	return scanPaymentRequest(executor.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
}

func (r *paymentRepository) GetPaymentRequests(ctx context.Context, executor SQLExecutor, filters models.PaymentRequestFilters) ([]models.PaymentRequest, int, error) {
	var conditions []string
	var args []interface{}

	if filters.EmployeeID != nil {
		args = append(args, *filters.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filters.Status != nil && *filters.Status != "" {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Month != nil && *filters.Month != "" {
		args = append(args, *filters.Month)
		conditions = append(conditions, fmt.Sprintf("month = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapDBError(err, "counting payment requests")
	}

	query, pageArgs := paginate(`SELECT `+paymentColumns+` FROM payment_requests`+where+` ORDER BY id DESC`,
		append([]interface{}{}, args...), filters.Page, filters.PageSize)
	rows, err := executor.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying payment requests")
	}
	defer rows.Close()

	requests := []models.PaymentRequest{}
	for rows.Next() {
		p, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapDBError(err, "iterating payment requests")
	}
	return requests, total, nil
}
