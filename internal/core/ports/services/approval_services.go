package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
)

// Decision is the terminal outcome requested for a PENDING registration.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ApprovalSubmitterSvc defines the registration submission operation.
type ApprovalSubmitterSvc interface {
	// SubmitRegistration validates the submitter's authority and creates a
	// PENDING account plus supervisor record. A MANAGER may only register
	// GENERAL_SUPERVISORs; a GENERAL_SUPERVISOR may only register SUPERVISORs.
	SubmitRegistration(ctx context.Context, submitterAccountID string, req dto.SubmitRegistrationRequest) (*domain.SupervisorRecord, error)
}

// ApprovalDeciderSvc defines the decision operation of the workflow.
type ApprovalDeciderSvc interface {
	// Decide transitions a PENDING record to APPROVED or REJECTED, exactly
	// once. On APPROVE, credentials are issued and the account activated in
	// the same transaction; on REJECT a non-blank reason is required and the
	// account stays PENDING. The relevant event is dispatched to the
	// submitter after the transition commits.
	Decide(ctx context.Context, approverAccountID string, recordID string, decision Decision, reason string) (*domain.SupervisorRecord, error)
}

// ApprovalReaderSvc defines the read surface of the workflow.
type ApprovalReaderSvc interface {
	// GetRegistration retrieves a supervisor record by ID.
	GetRegistration(ctx context.Context, recordID string) (*domain.SupervisorRecord, error)

	// ListPending lists PENDING registrations decidable by the given approver role.
	ListPending(ctx context.Context, approverRole domain.Role, limit int, offset int) ([]domain.SupervisorRecord, error)

	// GetApprovalStats recomputes the counts by status and type from record state.
	GetApprovalStats(ctx context.Context) ([]domain.ApprovalStatusCount, error)
}

// ApprovalSvcFacade combines all approval-workflow service interfaces.
type ApprovalSvcFacade interface {
	ApprovalSubmitterSvc
	ApprovalDeciderSvc
	ApprovalReaderSvc
}
