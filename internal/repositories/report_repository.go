package repositories

import (
	"context"

	"hospital_backend/internal/models"
)

// ReportRepository aggregates counters across tables.
type ReportRepository interface {
	GetDashboardSummary(ctx context.Context, executor SQLExecutor, pharmacyThreshold int) (*models.DashboardSummary, error)
}

type reportRepository struct{}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) GetDashboardSummary(ctx context.Context, executor SQLExecutor, pharmacyThreshold int) (*models.DashboardSummary, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM patients),
	            (SELECT COUNT(*) FROM appointments WHERE status = 'pending'),
	            (SELECT COUNT(*) FROM clock_records WHERE clock_out_time IS NULL),
	            (SELECT COUNT(*) FROM payment_requests WHERE status = 'pending'),
	            (SELECT COUNT(*) FROM pharmacy WHERE quantity < $1),
	            (SELECT COUNT(*) FROM inventory WHERE quantity < reorder_level)`

	var s models.DashboardSummary
	err := executor.QueryRowContext(ctx, query, pharmacyThreshold).Scan(
		&s.Patients, &s.PendingAppointments, &s.OpenClockSessions,
		&s.PendingPaymentRequests, &s.LowStockPharmacyItems, &s.LowStockInventoryItems,
	)
	if err != nil {
		return nil, wrapDBError(err, "building dashboard summary")
	}
	return &s, nil
}
