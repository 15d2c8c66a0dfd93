package services

import (
	"errors"
	"strings"
)

// Shared service errors. Handlers map these onto HTTP statuses.
var (
	ErrForbidden         = errors.New("operation requires administrator privileges")
	ErrPolicyViolation   = errors.New("password does not satisfy the password policy")
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

// PolicyViolationError carries every rule a rejected password broke.
type PolicyViolationError struct {
	Reasons []string
}

func (e *PolicyViolationError) Error() string {
	return ErrPolicyViolation.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrPolicyViolation
}

// pageDefaults normalizes list paging parameters.
func pageDefaults(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return page, pageSize
}
