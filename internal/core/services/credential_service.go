package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/utils"
)

const (
	// employeeIDMaxRetries bounds the collision-resolution loop.
	employeeIDMaxRetries = 5

	// tempPasswordBytes is the entropy of the temporary password. 12 random
	// bytes is 96 bits, above the 80-bit floor the workflow requires.
	tempPasswordBytes = 12
)

// credentialService implements the CredentialIssuerSvc interface.
type credentialService struct {
	accountRepo portsrepo.AccountReader
	idPrefix    string
}

// NewCredentialService creates a new credential issuer. The prefix shapes
// employee IDs, e.g. "GRD" yields "GRD-2604713".
func NewCredentialService(accountRepo portsrepo.AccountReader, idPrefix string) portssvc.CredentialIssuerSvc {
	return &credentialService{accountRepo: accountRepo, idPrefix: idPrefix}
}

// Ensure credentialService implements the CredentialIssuerSvc interface
var _ portssvc.CredentialIssuerSvc = (*credentialService)(nil)

// Issue mints the one-time credentials for an approved registration. The
// plaintext temporary password is returned exactly once and never logged;
// callers persist only the bcrypt hash returned alongside it.
func (s *credentialService) Issue(ctx context.Context, account domain.Account) (domain.Credentials, string, error) {
	employeeID, err := s.uniqueEmployeeID(ctx)
	if err != nil {
		return domain.Credentials{}, "", err
	}

	tempPassword, err := utils.GenerateSecureRandomString(tempPasswordBytes)
	if err != nil {
		return domain.Credentials{}, "", fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return domain.Credentials{}, "", fmt.Errorf("failed to hash temporary password: %w", err)
	}

	creds := domain.Credentials{
		EmployeeID:        employeeID,
		Email:             account.Email,
		TemporaryPassword: tempPassword,
	}
	return creds, hash, nil
}

func (s *credentialService) uniqueEmployeeID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < employeeIDMaxRetries; attempt++ {
		candidate, err := utils.FormatEmployeeID(s.idPrefix, time.Now())
		if err != nil {
			return "", err
		}
		taken, err := s.accountRepo.EmployeeIDExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check employee ID uniqueness: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not derive a unique employee ID after %d attempts: %w", employeeIDMaxRetries, apperrors.ErrConflict)
}
