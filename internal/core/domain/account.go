package domain

import "time"

// Role is the workforce tier an account belongs to.
type Role string

const (
	RoleDirector          Role = "DIRECTOR"
	RoleManager           Role = "MANAGER"
	RoleGeneralSupervisor Role = "GENERAL_SUPERVISOR"
	RoleSupervisor        Role = "SUPERVISOR"
	RoleOperator          Role = "OPERATOR"
	RoleSecretary         Role = "SECRETARY"
)

// IsValid reports whether the role is one of the known workforce tiers.
func (r Role) IsValid() bool {
	switch r {
	case RoleDirector, RoleManager, RoleGeneralSupervisor, RoleSupervisor, RoleOperator, RoleSecretary:
		return true
	}
	return false
}

// IsSupervisory reports whether the role may manage operator postings.
func (r Role) IsSupervisory() bool {
	switch r {
	case RoleDirector, RoleManager, RoleGeneralSupervisor, RoleSupervisor:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an account.
// Accounts are never deleted, only suspended.
type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// Account represents an identity within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID          string        `json:"accountID"` // Primary Key (UUID)
	EmployeeID         string        `json:"employeeID"`
	Email              string        `json:"email"`
	FullName           string        `json:"fullName"`
	Phone              string        `json:"phone"`
	Role               Role          `json:"role"`
	Status             AccountStatus `json:"status"`
	PasswordHash       string        `json:"-"`
	MustChangePassword bool          `json:"mustChangePassword"`
	SuspendedAt        *time.Time    `json:"suspendedAt,omitempty"`
	AuditFields
}

// IsActive reports whether the account may authenticate and act.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
