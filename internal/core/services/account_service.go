package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/utils"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) AuthenticateAccount(ctx context.Context, email string, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password, so login does not reveal
			// which accounts exist.
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up account for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	if !account.IsActive() {
		return nil, fmt.Errorf("account is not active: %w", apperrors.ErrForbidden)
	}

	return account, nil
}

func (s *accountService) ChangePassword(ctx context.Context, accountID string, currentPassword string, newPassword string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account for password change: %w", err)
	}

	if !utils.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return fmt.Errorf("current password does not match: %w", apperrors.ErrForbidden)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, hash, accountID, time.Now()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *accountService) SuspendAccount(ctx context.Context, actorAccountID string, accountID string) error {
	actor, err := s.accountRepo.FindAccountByID(ctx, actorAccountID)
	if err != nil {
		return fmt.Errorf("failed to find acting account: %w", err)
	}
	if actor.Role != domain.RoleDirector {
		return fmt.Errorf("only a director may suspend accounts: %w", apperrors.ErrForbidden)
	}

	if err := s.accountRepo.SuspendAccount(ctx, accountID, actorAccountID, time.Now()); err != nil {
		return fmt.Errorf("failed to suspend account %s: %w", accountID, err)
	}
	return nil
}
