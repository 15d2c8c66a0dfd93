package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidMonth reports whether s is a YYYY-MM month label.
func IsValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// IsValidRRule reports whether s parses as an RFC 5545 recurrence rule.
func IsValidRRule(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := rrule.StrToROption(s)
	return err == nil
}

// RegisterValidators installs the custom binding rules on gin's validator engine:
// "month" (YYYY-MM), "rrule" and "hospitalrole" (one of roles, case-sensitive).
func RegisterValidators(roles []string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}

	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	if err := v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		return IsValidMonth(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("rrule", func(fl validator.FieldLevel) bool {
		return IsValidRRule(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("hospitalrole", func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
}
