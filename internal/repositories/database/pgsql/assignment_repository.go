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

// activeOperatorConstraint is the partial unique index enforcing the
// at-most-one-ACTIVE-assignment-per-operator invariant at the database level.
const activeOperatorConstraint = "uq_assignments_operator_active"

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(db *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

func toModelAssignment(d domain.Assignment) models.Assignment {
	return models.Assignment{
		AssignmentID:   d.AssignmentID,
		OperatorID:     d.OperatorID,
		BeatID:         d.BeatID,
		SupervisorID:   d.SupervisorID,
		LocationID:     d.LocationID,
		ShiftType:      string(d.ShiftType),
		AssignmentType: string(d.AssignmentType),
		Status:         string(d.Status),
		StartDate:      d.StartDate,
		EndedAt:        d.EndedAt,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

func toDomainAssignment(m models.Assignment) domain.Assignment {
	return domain.Assignment{
		AssignmentID:   m.AssignmentID,
		OperatorID:     m.OperatorID,
		BeatID:         m.BeatID,
		SupervisorID:   m.SupervisorID,
		LocationID:     m.LocationID,
		ShiftType:      domain.ShiftType(m.ShiftType),
		AssignmentType: domain.AssignmentType(m.AssignmentType),
		Status:         domain.AssignmentStatus(m.Status),
		StartDate:      m.StartDate,
		EndedAt:        m.EndedAt,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

const assignmentColumns = `assignment_id, operator_id, beat_id, supervisor_id, location_id,
		shift_type, assignment_type, status, start_date, ended_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var m models.Assignment
	err := row.Scan(
		&m.AssignmentID,
		&m.OperatorID,
		&m.BeatID,
		&m.SupervisorID,
		&m.LocationID,
		&m.ShiftType,
		&m.AssignmentType,
		&m.Status,
		&m.StartDate,
		&m.EndedAt,
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

func (r *PgxAssignmentRepository) CreateAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := toModelAssignment(assignment)
	query := `
        INSERT INTO assignments (` + assignmentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.AssignmentID, m.OperatorID, m.BeatID, m.SupervisorID, m.LocationID,
		m.ShiftType, m.AssignmentType, m.Status, m.StartDate, m.EndedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, activeOperatorConstraint) {
			return fmt.Errorf("operator %s already holds an active assignment: %w", m.OperatorID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1;`
	m, err := scanAssignment(r.Pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	assignment := toDomainAssignment(*m)
	return &assignment, nil
}

func (r *PgxAssignmentRepository) FindActiveByOperator(ctx context.Context, operatorID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE operator_id = $1 AND status = 'ACTIVE';`
	m, err := scanAssignment(r.Pool.QueryRow(ctx, query, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active assignment for operator %s: %w", operatorID, err)
	}
	assignment := toDomainAssignment(*m)
	return &assignment, nil
}

func (r *PgxAssignmentRepository) FindAssignmentsByOperator(ctx context.Context, operatorID string) ([]domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE operator_id = $1
        ORDER BY created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments by operator: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func (r *PgxAssignmentRepository) FindAssignmentsByBeat(ctx context.Context, beatID string) ([]domain.Assignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM assignments
        WHERE beat_id = $1
        ORDER BY (status = 'ACTIVE') DESC, created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, beatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments by beat: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	assignments := []domain.Assignment{}
	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, toDomainAssignment(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", rows.Err())
	}
	return assignments, nil
}

func (r *PgxAssignmentRepository) CountActiveByBeat(ctx context.Context, beatID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM assignments WHERE beat_id = $1 AND status = 'ACTIVE';`
	if err := r.Pool.QueryRow(ctx, query, beatID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count, nil
}

// TransferAndCreate moves the operator to the new assignment in one
// transaction. The current ACTIVE row is locked FOR UPDATE so two concurrent
// transfers for the same operator serialize; the partial unique index backs
// this up should the insert ever race the update.
func (r *PgxAssignmentRepository) TransferAndCreate(ctx context.Context, operatorID string, next domain.Assignment, now time.Time) (*domain.Assignment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.RollbackOnError(ctx, tx)

	lockQuery := `SELECT ` + assignmentColumns + ` FROM assignments WHERE operator_id = $1 AND status = 'ACTIVE' FOR UPDATE;`
	m, err := scanAssignment(tx.QueryRow(ctx, lockQuery, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock active assignment for operator %s: %w", operatorID, err)
	}

	transferQuery := `
        UPDATE assignments
        SET status = 'TRANSFERRED', ended_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE assignment_id = $3 AND status = 'ACTIVE';
    `
	cmdTag, err := tx.Exec(ctx, transferQuery, now, next.CreatedBy, m.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark assignment transferred: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("assignment %s no longer active: %w", m.AssignmentID, apperrors.ErrConflict)
	}

	nm := toModelAssignment(next)
	insertQuery := `
        INSERT INTO assignments (` + assignmentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, insertQuery,
		nm.AssignmentID, nm.OperatorID, nm.BeatID, nm.SupervisorID, nm.LocationID,
		nm.ShiftType, nm.AssignmentType, nm.Status, nm.StartDate, nm.EndedAt,
		nm.CreatedAt, nm.CreatedBy, nm.LastUpdatedAt, nm.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, activeOperatorConstraint) {
			return nil, fmt.Errorf("operator %s gained a concurrent assignment: %w", operatorID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert replacement assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	prev := toDomainAssignment(*m)
	prev.Status = domain.AssignmentTransferred
	prev.EndedAt = &now
	return &prev, nil
}

// EndAssignment is conditional on the row still being ACTIVE. A terminal row
// yields (false, nil) so the service can treat retried unassigns as no-ops.
func (r *PgxAssignmentRepository) EndAssignment(ctx context.Context, assignmentID string, endedBy string, now time.Time) (bool, error) {
	query := `
        UPDATE assignments
        SET status = 'ENDED', ended_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE assignment_id = $3 AND status = 'ACTIVE';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, now, endedBy, assignmentID)
	if err != nil {
		return false, fmt.Errorf("failed to end assignment: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return true, nil
	}

	// Zero rows: the assignment is either unknown or already terminal.
	if _, err := r.FindAssignmentByID(ctx, assignmentID); err != nil {
		return false, err
	}
	return false, nil
}
