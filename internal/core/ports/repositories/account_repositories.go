package repositories

import (
	"context"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByEmail retrieves an account by email, used for login.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)

	// EmployeeIDExists reports whether an employee ID is already taken.
	EmployeeIDExists(ctx context.Context, employeeID string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdatePassword replaces the password hash and clears the forced-change flag.
	UpdatePassword(ctx context.Context, accountID string, passwordHash string, updatedBy string, now time.Time) error
}

// AccountLifecycleManager defines operations for managing account lifecycle.
// Accounts are never deleted, only suspended.
type AccountLifecycleManager interface {
	// SuspendAccount marks an ACTIVE account as SUSPENDED.
	SuspendAccount(ctx context.Context, accountID string, suspendedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLifecycleManager
}
