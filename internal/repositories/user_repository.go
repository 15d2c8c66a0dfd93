package repositories

import (
	"context"

	"hospital_backend/internal/models"
)

// UserRepository defines the account persistence operations.
type UserRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, executor SQLExecutor, email string) (*models.User, error)
	FindUserByID(ctx context.Context, executor SQLExecutor, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, executor SQLExecutor, user *models.User) error
}

type userRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() UserRepository {
	return &userRepository{}
}

const userColumns = `id, email, name, role, password_hash, first_login, password_changed_at,
	password_expires_at, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.FirstLogin,
		&u.PasswordChangedAt, &u.PasswordExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrapDBError(err, "scanning user")
	}
	return &u, nil
}

// CreateUser inserts the account; a taken email surfaces as ErrDuplicateKey.
func (r *userRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (email, name, role, password_hash, first_login, password_changed_at,
	              password_expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $6)
	          RETURNING ` + userColumns
	return scanUser(executor.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Role, user.PasswordHash, user.FirstLogin,
		user.PasswordChangedAt, user.PasswordExpiresAt,
	))
}

func (r *userRepository) FindUserByEmail(ctx context.Context, executor SQLExecutor, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(executor.QueryRowContext(ctx, query, email))
}

func (r *userRepository) FindUserByID(ctx context.Context, executor SQLExecutor, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(executor.QueryRowContext(ctx, query, id))
}

// UpdatePassword persists the credential fields of user.
func (r *userRepository) UpdatePassword(ctx context.Context, executor SQLExecutor, user *models.User) error {
	query := `UPDATE users
	          SET password_hash = $1, first_login = $2, password_changed_at = $3,
	              password_expires_at = $4, updated_at = $3
	          WHERE id = $5`
	res, err := executor.ExecContext(ctx, query, user.PasswordHash, user.FirstLogin,
		user.PasswordChangedAt, user.PasswordExpiresAt, user.ID)
	if err != nil {
		return wrapDBError(err, "updating password")
	}
	return requireAffected(res, "updating password")
}
