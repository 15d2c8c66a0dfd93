package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/pkg/utils"
)

const testUniversal = "Pass@123"

func newTestAuthService(t *testing.T) (*authService, *fakeUserRepo, *fixedClock) {
	t.Helper()
	users := newFakeUserRepo()
	clock := &fixedClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewAuthService(users, nil, &fakeTx{}, utils.NewTokenManager("test-secret", 30*time.Minute),
		NewPasswordPolicy(testUniversal, 30*24*time.Hour)).(*authService)
	svc.now = clock.Now
	return svc, users, clock
}

func register(t *testing.T, svc *authService, email, name, role string) *models.User {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterUserRequest{Email: email, Name: name, Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return resp.User
}

func TestRegisterUsesUniversalPassword(t *testing.T) {
	svc, _, clock := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterUserRequest{Email: "nurse@example.com", Name: "Nora", Role: models.RoleNurse})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UniversalPassword != testUniversal {
		t.Fatalf("expected universal password to be returned, got %q", resp.UniversalPassword)
	}
	if !resp.User.FirstLogin {
		t.Fatalf("expected first_login to be true")
	}
	if !resp.User.PasswordExpiresAt.Equal(clock.Now().Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected expiry 30 days after registration, got %v", resp.User.PasswordExpiresAt)
	}

	_, err = svc.Register(context.Background(), RegisterUserRequest{Email: "NURSE@example.com", Name: "Other", Role: models.RoleNurse})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	user := register(t, svc, "doc@example.com", "Dana", models.RoleDoctor)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "doc@example.com", Password: testUniversal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
	if !resp.User.FirstLogin {
		t.Fatalf("expected first_login to be reported")
	}

	claims, err := svc.tokens.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.Subject != "doc@example.com" || claims.UserID != user.ID || claims.Role != models.RoleDoctor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	register(t, svc, "doc@example.com", "Dana", models.RoleDoctor)

	cases := map[string]LoginRequest{
		"unknown email":  {Email: "nobody@example.com", Password: testUniversal},
		"wrong password": {Email: "doc@example.com", Password: "Wrong@123"},
	}
	for name, req := range cases {
		if _, err := svc.Login(context.Background(), req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestLoginExpiredPassword(t *testing.T) {
	svc, users, clock := newTestAuthService(t)
	user := register(t, svc, "lab@example.com", "Lee", models.RoleLab)

	users.users[user.ID].PasswordExpiresAt = clock.Now().Add(-time.Second)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "lab@example.com", Password: testUniversal})
	if !errors.Is(err, ErrPasswordExpired) {
		t.Fatalf("expected ErrPasswordExpired, got %v", err)
	}

	// Credentials are checked before expiry.
	_, err = svc.Login(context.Background(), LoginRequest{Email: "lab@example.com", Password: "Wrong@123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password on expired account, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, clock := newTestAuthService(t)
	user := register(t, svc, "fin@example.com", "Frank", models.RoleFinance)
	ctx := context.Background()

	_, err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: "Nope@1234", NewPassword: "Secret!9", ConfirmPassword: "Secret!9"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: testUniversal, NewPassword: "Secret!9", ConfirmPassword: "Secret!8"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	_, err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: testUniversal, NewPassword: "frank", ConfirmPassword: "frank"})
	var policyErr *PolicyViolationError
	if !errors.As(err, &policyErr) || !errors.Is(err, ErrPolicyViolation) {
		t.Fatalf("expected PolicyViolationError, got %v", err)
	}
	if len(policyErr.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", policyErr.Reasons)
	}

	if _, err := svc.ChangePassword(ctx, 999, ChangePasswordRequest{OldPassword: testUniversal, NewPassword: "Secret!9", ConfirmPassword: "Secret!9"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	clock.Set(clock.Now().Add(10 * 24 * time.Hour))
	updated, err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{OldPassword: testUniversal, NewPassword: "Secret!9", ConfirmPassword: "Secret!9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstLogin {
		t.Fatalf("expected first_login to be cleared")
	}
	if !updated.PasswordChangedAt.Equal(clock.Now()) || !updated.PasswordExpiresAt.Equal(clock.Now().Add(30*24*time.Hour)) {
		t.Fatalf("expected expiry reset from change time, got changed=%v expires=%v", updated.PasswordChangedAt, updated.PasswordExpiresAt)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "fin@example.com", Password: "Secret!9"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "fin@example.com", Password: testUniversal}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
}

func TestResetToUniversalRoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	admin := register(t, svc, "admin@example.com", "Ada", models.RoleAdmin)
	nurse := register(t, svc, "nurse@example.com", "Nora", models.RoleNurse)

	if _, err := svc.ChangePassword(ctx, nurse.ID, ChangePasswordRequest{OldPassword: testUniversal, NewPassword: "Secret!9", ConfirmPassword: "Secret!9"}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.ResetToUniversal(ctx, "nurse@example.com", nurse.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if _, err := svc.ResetToUniversal(ctx, "ghost@example.com", admin.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	password, err := svc.ResetToUniversal(ctx, "nurse@example.com", admin.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if password != testUniversal {
		t.Fatalf("expected universal password, got %q", password)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "nurse@example.com", Password: testUniversal})
	if err != nil {
		t.Fatalf("login after reset: %v", err)
	}
	if !resp.User.FirstLogin {
		t.Fatalf("expected first_login after reset")
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.SeedAdmin(ctx, "root@example.com", "Root")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := svc.SeedAdmin(ctx, "root@example.com", "Root")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if first.ID != second.ID || len(users.users) != 1 {
		t.Fatalf("expected a single admin, got %d users", len(users.users))
	}
	if first.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", first.Role)
	}
}

func TestGetUserProfileReportsDaysUntilExpiry(t *testing.T) {
	svc, _, clock := newTestAuthService(t)
	user := register(t, svc, "rec@example.com", "Rita", models.RoleReceptionist)

	clock.Set(clock.Now().Add(5*24*time.Hour + time.Hour))
	profile, err := svc.GetUserProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.DaysUntilExpiry == nil || *profile.DaysUntilExpiry != 25 {
		t.Fatalf("expected 25 days until expiry, got %v", profile.DaysUntilExpiry)
	}
	if _, err := svc.GetUserProfile(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
