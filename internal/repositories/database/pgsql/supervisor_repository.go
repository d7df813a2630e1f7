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

type PgxSupervisorRepository struct {
	BaseRepository
}

func newPgxSupervisorRepository(db *pgxpool.Pool) portsrepo.SupervisorRepositoryFacade {
	return &PgxSupervisorRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSupervisorRepository implements portsrepo.SupervisorRepositoryFacade
var _ portsrepo.SupervisorRepositoryFacade = (*PgxSupervisorRepository)(nil)

// Helper to convert models.SupervisorRecord to domain.SupervisorRecord
func toDomainSupervisorRecord(m models.SupervisorRecord) domain.SupervisorRecord {
	return domain.SupervisorRecord{
		SupervisorRecordID:  m.SupervisorRecordID,
		AccountID:           m.AccountID,
		SupervisorType:      domain.SupervisorType(m.SupervisorType),
		ApprovalStatus:      domain.ApprovalStatus(m.ApprovalStatus),
		RegisteredBy:        m.RegisteredBy,
		GeneralSupervisorID: m.GeneralSupervisorID,
		LocationID:          m.LocationID,
		RegionAssigned:      m.RegionAssigned,
		RejectionReason:     m.RejectionReason,
		DecidedBy:           m.DecidedBy,
		AuditFields:         toDomainAudit(m.AuditFields),
	}
}

const supervisorColumns = `supervisor_record_id, account_id, supervisor_type, approval_status,
		registered_by, general_supervisor_id, location_id, region_assigned,
		rejection_reason, decided_by,
		created_at, created_by, last_updated_at, last_updated_by`

func scanSupervisorRecord(row pgx.Row) (*models.SupervisorRecord, error) {
	var m models.SupervisorRecord
	err := row.Scan(
		&m.SupervisorRecordID,
		&m.AccountID,
		&m.SupervisorType,
		&m.ApprovalStatus,
		&m.RegisteredBy,
		&m.GeneralSupervisorID,
		&m.LocationID,
		&m.RegionAssigned,
		&m.RejectionReason,
		&m.DecidedBy,
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

// CreateRegistration inserts the PENDING account and its supervisor record in
// one transaction, so a half-created registration can never be observed.
func (r *PgxSupervisorRepository) CreateRegistration(ctx context.Context, record domain.SupervisorRecord, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.RollbackOnError(ctx, tx)

	ma := toModelAccount(account)
	accountQuery := `
        INSERT INTO accounts (` + accountColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, accountQuery,
		ma.AccountID, ma.EmployeeID, ma.Email, ma.FullName, ma.Phone, ma.Role, ma.Status,
		ma.PasswordHash, ma.MustChangePassword, ma.SuspendedAt,
		ma.CreatedAt, ma.CreatedBy, ma.LastUpdatedAt, ma.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("an account with this email already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert registration account: %w", err)
	}

	recordQuery := `
        INSERT INTO supervisor_records (` + supervisorColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, recordQuery,
		record.SupervisorRecordID, record.AccountID, string(record.SupervisorType), string(record.ApprovalStatus),
		record.RegisteredBy, record.GeneralSupervisorID, record.LocationID, record.RegionAssigned,
		record.RejectionReason, record.DecidedBy,
		record.CreatedAt, record.CreatedBy, record.LastUpdatedAt, record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert supervisor record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *PgxSupervisorRepository) FindSupervisorRecordByID(ctx context.Context, recordID string) (*domain.SupervisorRecord, error) {
	query := `SELECT ` + supervisorColumns + ` FROM supervisor_records WHERE supervisor_record_id = $1;`
	m, err := scanSupervisorRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supervisor record %s: %w", recordID, err)
	}
	record := toDomainSupervisorRecord(*m)
	return &record, nil
}

func (r *PgxSupervisorRepository) FindPendingRecords(ctx context.Context, supervisorType domain.SupervisorType, limit int, offset int) ([]domain.SupervisorRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + supervisorColumns + `
        FROM supervisor_records
        WHERE approval_status = 'PENDING' AND supervisor_type = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, string(supervisorType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending records: %w", err)
	}
	defer rows.Close()

	return collectSupervisorRecords(rows)
}

func (r *PgxSupervisorRepository) FindApprovedRecords(ctx context.Context, supervisorType domain.SupervisorType, locationID *string) ([]domain.SupervisorRecord, error) {
	query := `
        SELECT ` + supervisorColumns + `
        FROM supervisor_records
        WHERE approval_status = 'APPROVED' AND supervisor_type = $1
          AND ($2::text IS NULL OR location_id = $2)
        ORDER BY created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, string(supervisorType), locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved records: %w", err)
	}
	defer rows.Close()

	return collectSupervisorRecords(rows)
}

func collectSupervisorRecords(rows pgx.Rows) ([]domain.SupervisorRecord, error) {
	records := []domain.SupervisorRecord{}
	for rows.Next() {
		m, err := scanSupervisorRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supervisor record row: %w", err)
		}
		records = append(records, toDomainSupervisorRecord(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating supervisor record rows: %w", rows.Err())
	}
	return records, nil
}

func (r *PgxSupervisorRepository) CountByStatusAndType(ctx context.Context) ([]domain.ApprovalStatusCount, error) {
	query := `
        SELECT supervisor_type, approval_status, COUNT(*)
        FROM supervisor_records
        GROUP BY supervisor_type, approval_status
        ORDER BY supervisor_type, approval_status;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count supervisor records: %w", err)
	}
	defer rows.Close()

	counts := []domain.ApprovalStatusCount{}
	for rows.Next() {
		var c domain.ApprovalStatusCount
		if err := rows.Scan(&c.SupervisorType, &c.ApprovalStatus, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", rows.Err())
	}
	return counts, nil
}

// ApproveRecord performs the exactly-once PENDING -> APPROVED transition. The
// WHERE clause on approval_status is the compare-and-swap: a concurrent
// decider that already moved the record makes this update touch zero rows,
// the transaction rolls back, and the caller gets ErrInvalidState.
func (r *PgxSupervisorRepository) ApproveRecord(ctx context.Context, recordID string, decidedBy string, employeeID string, passwordHash string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.RollbackOnError(ctx, tx)

	recordQuery := `
        UPDATE supervisor_records
        SET approval_status = 'APPROVED', decided_by = $1, last_updated_at = $2, last_updated_by = $1
        WHERE supervisor_record_id = $3 AND approval_status = 'PENDING'
        RETURNING account_id;
    `
	var accountID string
	err = tx.QueryRow(ctx, recordQuery, decidedBy, now, recordID).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.decisionConflict(ctx, recordID)
		}
		return fmt.Errorf("failed to approve supervisor record: %w", err)
	}

	accountQuery := `
        UPDATE accounts
        SET status = 'ACTIVE', employee_id = $1, password_hash = $2, must_change_password = TRUE,
            last_updated_at = $3, last_updated_by = $4
        WHERE account_id = $5;
    `
	cmdTag, err := tx.Exec(ctx, accountQuery, employeeID, passwordHash, now, decidedBy, accountID)
	if err != nil {
		return fmt.Errorf("failed to activate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("registered account %s missing: %w", accountID, apperrors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}
	return nil
}

// RejectRecord performs the exactly-once PENDING -> REJECTED transition under
// the same compare-and-swap as ApproveRecord. The account stays PENDING.
func (r *PgxSupervisorRepository) RejectRecord(ctx context.Context, recordID string, decidedBy string, reason string, now time.Time) error {
	query := `
        UPDATE supervisor_records
        SET approval_status = 'REJECTED', rejection_reason = $1, decided_by = $2,
            last_updated_at = $3, last_updated_by = $2
        WHERE supervisor_record_id = $4 AND approval_status = 'PENDING';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, reason, decidedBy, now, recordID)
	if err != nil {
		return fmt.Errorf("failed to reject supervisor record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.decisionConflict(ctx, recordID)
	}
	return nil
}

// decisionConflict distinguishes a missing record from one already decided.
func (r *PgxSupervisorRepository) decisionConflict(ctx context.Context, recordID string) error {
	record, err := r.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return err
	}
	return fmt.Errorf("supervisor record %s is already %s: %w", recordID, record.ApprovalStatus, apperrors.ErrInvalidState)
}

func (r *PgxSupervisorRepository) UpdateLocation(ctx context.Context, recordID string, locationID *string, updatedBy string, now time.Time) error {
	query := `
        UPDATE supervisor_records
        SET location_id = $1, last_updated_at = $2, last_updated_by = $3
        WHERE supervisor_record_id = $4 AND approval_status = 'APPROVED';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, locationID, now, updatedBy, recordID)
	if err != nil {
		return fmt.Errorf("failed to update supervisor location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("approved supervisor record %s not found: %w", recordID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSupervisorRepository) UpdateGeneralSupervisor(ctx context.Context, recordID string, generalSupervisorID *string, updatedBy string, now time.Time) error {
	query := `
        UPDATE supervisor_records
        SET general_supervisor_id = $1, last_updated_at = $2, last_updated_by = $3
        WHERE supervisor_record_id = $4 AND approval_status = 'APPROVED';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, generalSupervisorID, now, updatedBy, recordID)
	if err != nil {
		return fmt.Errorf("failed to update reporting edge: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("approved supervisor record %s not found: %w", recordID, apperrors.ErrNotFound)
	}
	return nil
}
