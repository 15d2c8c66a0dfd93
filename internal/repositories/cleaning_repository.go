package repositories

import (
	"context"

	"hospital_backend/internal/models"
)

// CleaningRepository defines cleaning log persistence operations.
type CleaningRepository interface {
	CreateLog(ctx context.Context, executor SQLExecutor, log *models.CleaningLog) (*models.CleaningLog, error)
	GetLogByID(ctx context.Context, executor SQLExecutor, id int64) (*models.CleaningLog, error)
	GetLogs(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.CleaningLog, int, error)
	UpdateLogStatus(ctx context.Context, executor SQLExecutor, id int64, status string) (*models.CleaningLog, error)
	GetLogsByCleaner(ctx context.Context, executor SQLExecutor, cleanerID int64) ([]models.CleaningLog, error)
}

type cleaningRepository struct{}

// NewCleaningRepository creates a new instance of CleaningRepository.
func NewCleaningRepository() CleaningRepository {
	return &cleaningRepository{}
}

const cleaningColumns = `id, cleaner_id, area_type, area_name, cleaning_date, duration_minutes, status, notes, created_at`

func scanCleaningLog(row scanner) (*models.CleaningLog, error) {
	var l models.CleaningLog
	err := row.Scan(&l.ID, &l.CleanerID, &l.AreaType, &l.AreaName, &l.CleaningDate,
		&l.DurationMinutes, &l.Status, &l.Notes, &l.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning cleaning log")
	}
	return &l, nil
}

// CreateLog inserts the log; an unknown cleaner surfaces as ErrForeignKey.
func (r *cleaningRepository) CreateLog(ctx context.Context, executor SQLExecutor, log *models.CleaningLog) (*models.CleaningLog, error) {
	query := `INSERT INTO cleaning_logs (cleaner_id, area_type, area_name, cleaning_date, duration_minutes, status, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $4)
	          RETURNING ` + cleaningColumns
	return scanCleaningLog(executor.QueryRowContext(ctx, query,
		log.CleanerID, log.AreaType, log.AreaName, log.CleaningDate, log.DurationMinutes, log.Status, log.Notes))
}

func (r *cleaningRepository) GetLogByID(ctx context.Context, executor SQLExecutor, id int64) (*models.CleaningLog, error) {
	return scanCleaningLog(executor.QueryRowContext(ctx, `SELECT `+cleaningColumns+` FROM cleaning_logs WHERE id = $1`, id))
}

func (r *cleaningRepository) GetLogs(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.CleaningLog, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM cleaning_logs`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+cleaningColumns+` FROM cleaning_logs ORDER BY cleaning_date DESC, id DESC`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying cleaning logs")
	}
	logs, err := collectRows(rows, scanCleaningLog, "iterating cleaning logs")
	return logs, total, err
}

func (r *cleaningRepository) UpdateLogStatus(ctx context.Context, executor SQLExecutor, id int64, status string) (*models.CleaningLog, error) {
	query := `UPDATE cleaning_logs SET status = $1 WHERE id = $2 RETURNING ` + cleaningColumns
	return scanCleaningLog(executor.QueryRowContext(ctx, query, status, id))
}

func (r *cleaningRepository) GetLogsByCleaner(ctx context.Context, executor SQLExecutor, cleanerID int64) ([]models.CleaningLog, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+cleaningColumns+` FROM cleaning_logs WHERE cleaner_id = $1 ORDER BY cleaning_date DESC, id DESC`, cleanerID)
	if err != nil {
		return nil, wrapDBError(err, "querying cleaner history")
	}
	return collectRows(rows, scanCleaningLog, "iterating cleaner history")
}
