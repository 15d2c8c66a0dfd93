package models

import "time"

// Account roles.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
	RoleAttendant    = "attendant"
	RoleFinance      = "finance"
	RoleLab          = "lab"
	RoleCleaner      = "cleaner"
)

// Roles lists every role an account may hold.
var Roles = []string{
	RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist,
	RoleAttendant, RoleFinance, RoleLab, RoleCleaner,
}

// User is a login account. Employees reference it, but an account may exist without an employee row.
type User struct {
	ID                int64     `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	Name              string    `json:"name" db:"name"`
	Role              string    `json:"role" db:"role"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	FirstLogin        bool      `json:"first_login" db:"first_login"`
	PasswordChangedAt time.Time `json:"password_changed_at" db:"password_changed_at"`
	PasswordExpiresAt time.Time `json:"password_expires_at" db:"password_expires_at"`
	DaysUntilExpiry   *int      `json:"days_until_expiry,omitempty" db:"-"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
