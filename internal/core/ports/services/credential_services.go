package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// CredentialIssuerSvc mints login credentials for an approved registration.
type CredentialIssuerSvc interface {
	// Issue derives a unique human-readable employee ID (collision-checked
	// against the identity store, bounded retries) and a cryptographically
	// random temporary password. It returns the one-time plaintext
	// credentials together with the bcrypt hash to persist; the plaintext is
	// never logged or stored. An unresolvable employee ID collision is
	// apperrors.ErrConflict.
	Issue(ctx context.Context, account domain.Account) (domain.Credentials, string, error)
}
