package repositories

import (
	"context"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// AssignmentReader defines read operations for assignments.
type AssignmentReader interface {
	// FindAssignmentByID retrieves a specific assignment.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)

	// FindActiveByOperator retrieves the operator's single ACTIVE assignment,
	// or apperrors.ErrNotFound when the operator is unassigned.
	FindActiveByOperator(ctx context.Context, operatorID string) (*domain.Assignment, error)

	// FindAssignmentsByOperator retrieves the operator's assignment history, newest first.
	FindAssignmentsByOperator(ctx context.Context, operatorID string) ([]domain.Assignment, error)

	// FindAssignmentsByBeat retrieves assignments on a beat, ACTIVE first.
	FindAssignmentsByBeat(ctx context.Context, beatID string) ([]domain.Assignment, error)

	// CountActiveByBeat counts ACTIVE assignments on a beat, for capacity checks.
	CountActiveByBeat(ctx context.Context, beatID string) (int, error)
}

// AssignmentWriter defines write operations for assignments.
type AssignmentWriter interface {
	// CreateAssignment persists a new ACTIVE assignment. The partial unique
	// index on (operator_id) WHERE status='ACTIVE' makes a concurrent double
	// assign fail with apperrors.ErrConflict.
	CreateAssignment(ctx context.Context, assignment domain.Assignment) error

	// TransferAndCreate marks the operator's current ACTIVE assignment
	// TRANSFERRED and inserts the new ACTIVE assignment in one transaction,
	// so the operator is never observable with zero or two ACTIVE
	// assignments. Returns the transferred assignment, or
	// apperrors.ErrNotFound when the operator holds none.
	TransferAndCreate(ctx context.Context, operatorID string, next domain.Assignment, now time.Time) (*domain.Assignment, error)

	// EndAssignment marks an ACTIVE assignment ENDED. Returns (false, nil)
	// when the assignment exists but is already terminal, so callers can
	// treat duplicate unassign requests as idempotent successes.
	EndAssignment(ctx context.Context, assignmentID string, endedBy string, now time.Time) (bool, error)
}

// AssignmentRepositoryFacade combines all assignment repository interfaces.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
