package services

import (
	"context"
	"fmt"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

type ReportService interface {
	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
}

type reportService struct {
	repo              repositories.ReportRepository
	db                repositories.SQLExecutor
	pharmacyThreshold int
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repositories.ReportRepository, db repositories.SQLExecutor, pharmacyThreshold int) ReportService {
	return &reportService{repo: repo, db: db, pharmacyThreshold: pharmacyThreshold}
}

func (s *reportService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	summary, err := s.repo.GetDashboardSummary(ctx, s.db, s.pharmacyThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	return summary, nil
}
