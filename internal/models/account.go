package models

import (
	"time"
)

// Account is the database representation of an identity.
type Account struct {
	AccountID          string     `db:"account_id"`
	EmployeeID         string     `db:"employee_id"`
	Email              string     `db:"email"`
	FullName           string     `db:"full_name"`
	Phone              string     `db:"phone"`
	Role               string     `db:"role"`
	Status             string     `db:"status"`
	PasswordHash       string     `db:"password_hash"`
	MustChangePassword bool       `db:"must_change_password"`
	SuspendedAt        *time.Time `db:"suspended_at"`
	AuditFields
}

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
