package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
)

// AssignmentWriterSvc defines the posting operations of the assignment engine.
type AssignmentWriterSvc interface {
	// Assign places an operator on a beat under a supervisor. If the operator
	// already holds an ACTIVE assignment the call is treated as a change, not
	// a create. The assignment's location is always derived from the beat.
	Assign(ctx context.Context, actorAccountID string, req dto.CreateAssignmentRequest) (*domain.Assignment, error)

	// ChangeAssignment atomically transfers the operator's current ACTIVE
	// assignment and creates the new one; no observer ever sees zero or two
	// ACTIVE assignments for the operator.
	ChangeAssignment(ctx context.Context, actorAccountID string, operatorID string, req dto.ChangeAssignmentRequest) (*domain.Assignment, error)

	// Unassign marks an assignment ENDED. Unassigning an already-ended
	// assignment is an idempotent success, because retried UI actions are
	// expected to duplicate the request.
	Unassign(ctx context.Context, actorAccountID string, assignmentID string) error
}

// AssignmentReaderSvc defines the read surface of the assignment engine.
type AssignmentReaderSvc interface {
	// GetAssignmentsByOperator retrieves the operator's assignment history.
	GetAssignmentsByOperator(ctx context.Context, operatorID string) ([]domain.Assignment, error)

	// GetAssignmentsByBeat retrieves assignments on a beat.
	GetAssignmentsByBeat(ctx context.Context, beatID string) ([]domain.Assignment, error)
}

// AssignmentSvcFacade combines all assignment service interfaces.
type AssignmentSvcFacade interface {
	AssignmentWriterSvc
	AssignmentReaderSvc
}
