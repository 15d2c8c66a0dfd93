package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital_backend/internal/metrics"
	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
	"hospital_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrPasswordExpired    = errors.New("password has expired, please reset your password")
	ErrPasswordMismatch   = errors.New("new password and confirmation do not match")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest creates an account with the universal password.
type RegisterUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required,hospitalrole"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

// RegisterResponse hands the initial password back to the administrator.
type RegisterResponse struct {
	User              *models.User `json:"user"`
	UniversalPassword string       `json:"universal_password"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) (*models.User, error)
	ResetToUniversal(ctx context.Context, targetEmail string, requestedByID int64) (string, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
	SeedAdmin(ctx context.Context, email, name string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	db       repositories.SQLExecutor
	tx       repositories.Transactor
	tokens   *utils.TokenManager
	policy   PasswordPolicy
	now      func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, db repositories.SQLExecutor, tx repositories.Transactor,
	tokens *utils.TokenManager, policy PasswordPolicy) AuthService {
	return &authService{
		userRepo: userRepo,
		db:       db,
		tx:       tx,
		tokens:   tokens,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// setPassword applies a password change to user in memory.
func (s *authService) setPassword(user *models.User, hashed string, firstLogin bool) {
	now := s.now()
	user.PasswordHash = hashed
	user.FirstLogin = firstLogin
	user.PasswordChangedAt = now
	user.PasswordExpiresAt = s.policy.ExpiresFrom(now)
	user.UpdatedAt = now
}

func (s *authService) withExpiry(user *models.User) *models.User {
	days := s.policy.DaysUntilExpiry(user.PasswordExpiresAt, s.now())
	user.DaysUntilExpiry = &days
	return user
}

func (s *authService) Register(ctx context.Context, req RegisterUserRequest) (*RegisterResponse, error) {
	hashed, err := s.hash(s.policy.UniversalPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email: strings.TrimSpace(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Role:  req.Role,
	}
	s.setPassword(user, hashed, true)

	created, err := s.userRepo.CreateUser(ctx, s.db, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	utils.LogInfo("user registered", map[string]interface{}{"user_id": created.ID, "role": created.Role})
	return &RegisterResponse{User: s.withExpiry(created), UniversalPassword: s.policy.UniversalPassword}, nil
}

// Login checks credentials first and expiry second, so a wrong password never reveals expiry.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, s.db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.Logins.WithLabelValues("invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.Logins.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	if s.policy.IsExpired(user.PasswordExpiresAt, s.now()) {
		metrics.Logins.WithLabelValues("password_expired").Inc()
		return nil, ErrPasswordExpired
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		utils.LogError(err, "token generation failed", map[string]interface{}{"user_id": user.ID})
		return nil, ErrTokenGeneration
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        s.withExpiry(user),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) (*models.User, error) {
	var updated *models.User
	err := s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
		user, err := s.userRepo.FindUserByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return ErrInvalidCredentials
		}
		if req.NewPassword != req.ConfirmPassword {
			return ErrPasswordMismatch
		}
		if ok, reasons := s.policy.Validate(req.NewPassword, user.Name); !ok {
			return &PolicyViolationError{Reasons: reasons}
		}

		hashed, err := s.hash(req.NewPassword)
		if err != nil {
			return err
		}
		s.setPassword(user, hashed, false)
		if err := s.userRepo.UpdatePassword(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to store password: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("password changed", map[string]interface{}{"user_id": userID})
	return s.withExpiry(updated), nil
}

// ResetToUniversal puts the target account back on the universal password. It is an
// administrative convenience, so anyone who knows the universal password can log in until
// the holder changes it.
func (s *authService) ResetToUniversal(ctx context.Context, targetEmail string, requestedByID int64) (string, error) {
	err := s.tx.WithTx(ctx, func(tx repositories.SQLExecutor) error {
		requester, err := s.userRepo.FindUserByID(ctx, tx, requestedByID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrForbidden
			}
			return fmt.Errorf("failed to look up requester: %w", err)
		}
		if requester.Role != models.RoleAdmin {
			return ErrForbidden
		}

		target, err := s.userRepo.FindUserByEmail(ctx, tx, strings.TrimSpace(targetEmail))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}

		hashed, err := s.hash(s.policy.UniversalPassword)
		if err != nil {
			return err
		}
		s.setPassword(target, hashed, true)
		if err := s.userRepo.UpdatePassword(ctx, tx, target); err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	utils.LogInfo("password reset to universal", map[string]interface{}{"email": targetEmail, "requested_by": requestedByID})
	return s.policy.UniversalPassword, nil
}

func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return s.withExpiry(user), nil
}

// SeedAdmin creates the bootstrap administrator when no account uses email yet.
func (s *authService) SeedAdmin(ctx context.Context, email, name string) (*models.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, s.db, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check seed admin: %w", err)
	}

	resp, err := s.Register(ctx, RegisterUserRequest{Email: email, Name: name, Role: models.RoleAdmin})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}
