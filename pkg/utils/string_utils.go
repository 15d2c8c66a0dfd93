package utils

import "strings"

// NewNullString returns nil for a blank string so optional text columns are stored as NULL.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NullableString applies NewNullString to an optional request field.
func NullableString(p *string) *string {
	if p == nil {
		return nil
	}
	return NewNullString(*p)
}
