package services

import (
	"math"
	"strings"
	"time"
	"unicode"
)

const passwordSpecialChars = "!@#$%^&*_+-"

// Policy violation messages, reported in this order.
const (
	reasonTooShort  = "Password must be at least 8 characters long"
	reasonNoUpper   = "Password must contain at least one uppercase letter"
	reasonNoLower   = "Password must contain at least one lowercase letter"
	reasonNoSpecial = "Password must contain at least one special character"
	reasonHasName   = "Password cannot contain your name"
)

const minPasswordLength = 8

// PasswordPolicy holds the rotating-password rules. It is built from configuration.
type PasswordPolicy struct {
	UniversalPassword string
	TTL               time.Duration
}

// NewPasswordPolicy returns a policy using the given default password and lifetime.
func NewPasswordPolicy(universalPassword string, ttl time.Duration) PasswordPolicy {
	return PasswordPolicy{UniversalPassword: universalPassword, TTL: ttl}
}

// Validate checks every rule and returns all violations, not just the first.
func (p PasswordPolicy) Validate(password, name string) (bool, []string) {
	var reasons []string

	if len([]rune(password)) < minPasswordLength {
		reasons = append(reasons, reasonTooShort)
	}

	var hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			hasSpecial = true
		}
	}
	if !hasUpper {
		reasons = append(reasons, reasonNoUpper)
	}
	if !hasLower {
		reasons = append(reasons, reasonNoLower)
	}
	if !hasSpecial {
		reasons = append(reasons, reasonNoSpecial)
	}

	if name = strings.TrimSpace(name); name != "" &&
		strings.Contains(strings.ToLower(password), strings.ToLower(name)) {
		reasons = append(reasons, reasonHasName)
	}

	return len(reasons) == 0, reasons
}

// IsExpired reports whether now is strictly after expiresAt.
func (p PasswordPolicy) IsExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// ExpiresFrom returns the expiry of a password set at now.
func (p PasswordPolicy) ExpiresFrom(now time.Time) time.Time {
	return now.Add(p.TTL)
}

// DaysUntilExpiry rounds the remaining lifetime up to whole days. It is negative once expired.
func (p PasswordPolicy) DaysUntilExpiry(expiresAt, now time.Time) int {
	return int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
}
