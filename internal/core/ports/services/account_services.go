package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountAuthSvc defines operations for account authentication.
type AccountAuthSvc interface {
	// AuthenticateAccount authenticates an ACTIVE account with email and password.
	AuthenticateAccount(ctx context.Context, email string, password string) (*domain.Account, error)

	// ChangePassword replaces the account's password after verifying the
	// current one, clearing the forced-change flag set at credential issuance.
	ChangePassword(ctx context.Context, accountID string, currentPassword string, newPassword string) error
}

// AccountLifecycleSvc defines operations for managing account lifecycle.
type AccountLifecycleSvc interface {
	// SuspendAccount marks an ACTIVE account SUSPENDED. Director only.
	SuspendAccount(ctx context.Context, actorAccountID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountAuthSvc
	AccountLifecycleSvc
}
