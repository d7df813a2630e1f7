package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	"github.com/SecuForce/guard_workforce_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		EmployeeID:         d.EmployeeID,
		Email:              d.Email,
		FullName:           d.FullName,
		Phone:              d.Phone,
		Role:               string(d.Role),
		Status:             string(d.Status),
		PasswordHash:       d.PasswordHash,
		MustChangePassword: d.MustChangePassword,
		SuspendedAt:        d.SuspendedAt,
		AuditFields:        toModelAudit(d.AuditFields),
	}
}

// Helper to convert models.Account to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		EmployeeID:         m.EmployeeID,
		Email:              m.Email,
		FullName:           m.FullName,
		Phone:              m.Phone,
		Role:               domain.Role(m.Role),
		Status:             domain.AccountStatus(m.Status),
		PasswordHash:       m.PasswordHash,
		MustChangePassword: m.MustChangePassword,
		SuspendedAt:        m.SuspendedAt,
		AuditFields:        toDomainAudit(m.AuditFields),
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

const accountColumns = `account_id, employee_id, email, full_name, phone, role, status,
		password_hash, must_change_password, suspended_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.EmployeeID,
		&m.Email,
		&m.FullName,
		&m.Phone,
		&m.Role,
		&m.Status,
		&m.PasswordHash,
		&m.MustChangePassword,
		&m.SuspendedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
        INSERT INTO accounts (` + accountColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.EmployeeID, m.Email, m.FullName, m.Phone, m.Role, m.Status,
		m.PasswordHash, m.MustChangePassword, m.SuspendedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("account with this email or employee ID already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	account := toDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	account := toDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE employee_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee ID existence: %w", err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) UpdatePassword(ctx context.Context, accountID string, passwordHash string, updatedBy string, now time.Time) error {
	query := `
        UPDATE accounts
        SET password_hash = $1, must_change_password = FALSE, last_updated_at = $2, last_updated_by = $3
        WHERE account_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, passwordHash, now, updatedBy, accountID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) SuspendAccount(ctx context.Context, accountID string, suspendedBy string, now time.Time) error {
	query := `
        UPDATE accounts
        SET status = 'SUSPENDED', suspended_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE account_id = $3 AND status = 'ACTIVE';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, now, suspendedBy, accountID)
	if err != nil {
		return fmt.Errorf("failed to suspend account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it is not ACTIVE.
		if _, findErr := r.FindAccountByID(ctx, accountID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("account %s is not active: %w", accountID, apperrors.ErrInvalidState)
	}
	return nil
}
