package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

var ErrCleaningLogNotFound = errors.New("cleaning log not found")

type CreateCleaningLogRequest struct {
	CleanerID       *int64  `json:"cleaner_id" binding:"omitempty,gt=0"`
	AreaType        string  `json:"area_type" binding:"required,oneof=washroom ward common_area"`
	AreaName        string  `json:"area_name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"gte=0"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Notes           *string `json:"notes"`
}

type UpdateCleaningLogRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

type CleaningService interface {
	CreateLog(ctx context.Context, req CreateCleaningLogRequest) (*models.CleaningLog, error)
	GetLogByID(ctx context.Context, id int64) (*models.CleaningLog, error)
	GetLogs(ctx context.Context, page, pageSize int) ([]models.CleaningLog, int, error)
	UpdateLogStatus(ctx context.Context, id int64, status string) (*models.CleaningLog, error)
	GetCleanerHistory(ctx context.Context, cleanerID int64) ([]models.CleaningLog, error)
}

type cleaningService struct {
	repo repositories.CleaningRepository
	db   repositories.SQLExecutor
	now  func() time.Time
}

// NewCleaningService creates a new instance of CleaningService.
func NewCleaningService(repo repositories.CleaningRepository, db repositories.SQLExecutor) CleaningService {
	return &cleaningService{repo: repo, db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateLog stamps the log with the current time; status defaults to completed.
func (s *cleaningService) CreateLog(ctx context.Context, req CreateCleaningLogRequest) (*models.CleaningLog, error) {
	status := models.CleaningStatusCompleted
	if req.Status != nil {
		status = *req.Status
	}

	created, err := s.repo.CreateLog(ctx, s.db, &models.CleaningLog{
		CleanerID:       req.CleanerID,
		AreaType:        req.AreaType,
		AreaName:        req.AreaName,
		CleaningDate:    s.now(),
		DurationMinutes: req.DurationMinutes,
		Status:          status,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to create cleaning log: %w", err)
	}
	return created, nil
}

func (s *cleaningService) GetLogByID(ctx context.Context, id int64) (*models.CleaningLog, error) {
	log, err := s.repo.GetLogByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCleaningLogNotFound
		}
		return nil, fmt.Errorf("failed to get cleaning log: %w", err)
	}
	return log, nil
}

func (s *cleaningService) GetLogs(ctx context.Context, page, pageSize int) ([]models.CleaningLog, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	logs, total, err := s.repo.GetLogs(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cleaning logs: %w", err)
	}
	return logs, total, nil
}

func (s *cleaningService) UpdateLogStatus(ctx context.Context, id int64, status string) (*models.CleaningLog, error) {
	log, err := s.repo.UpdateLogStatus(ctx, s.db, id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCleaningLogNotFound
		}
		return nil, fmt.Errorf("failed to update cleaning log: %w", err)
	}
	return log, nil
}

func (s *cleaningService) GetCleanerHistory(ctx context.Context, cleanerID int64) ([]models.CleaningLog, error) {
	logs, err := s.repo.GetLogsByCleaner(ctx, s.db, cleanerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleaner history: %w", err)
	}
	return logs, nil
}
