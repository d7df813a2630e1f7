package repositories

import (
	"context"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// SupervisorReader defines read operations for supervisor records.
type SupervisorReader interface {
	// FindSupervisorRecordByID retrieves a specific record by its ID.
	FindSupervisorRecordByID(ctx context.Context, recordID string) (*domain.SupervisorRecord, error)

	// FindPendingRecords retrieves PENDING records of the given type, newest first.
	FindPendingRecords(ctx context.Context, supervisorType domain.SupervisorType, limit int, offset int) ([]domain.SupervisorRecord, error)

	// FindApprovedRecords retrieves APPROVED records of the given type,
	// optionally filtered by location. A nil filter returns all.
	FindApprovedRecords(ctx context.Context, supervisorType domain.SupervisorType, locationID *string) ([]domain.SupervisorRecord, error)

	// CountByStatusAndType recomputes the approval dashboard breakdown from record state.
	CountByStatusAndType(ctx context.Context) ([]domain.ApprovalStatusCount, error)
}

// SupervisorWriter defines write operations for supervisor records.
type SupervisorWriter interface {
	// CreateRegistration persists the PENDING account and its supervisor
	// record atomically.
	CreateRegistration(ctx context.Context, record domain.SupervisorRecord, account domain.Account) error

	// ApproveRecord transitions a PENDING record to APPROVED and activates its
	// account with the issued employee ID and password hash, all in one
	// transaction. The status check is a conditional update: if the record is
	// no longer PENDING the transition fails with apperrors.ErrInvalidState
	// and nothing is committed.
	ApproveRecord(ctx context.Context, recordID string, decidedBy string, employeeID string, passwordHash string, now time.Time) error

	// RejectRecord transitions a PENDING record to REJECTED with the given
	// reason, under the same conditional-update guarantee as ApproveRecord.
	// The account stays PENDING.
	RejectRecord(ctx context.Context, recordID string, decidedBy string, reason string, now time.Time) error

	// UpdateLocation changes the location of an APPROVED record. A nil
	// locationID unassigns the supervisor from all locations.
	UpdateLocation(ctx context.Context, recordID string, locationID *string, updatedBy string, now time.Time) error

	// UpdateGeneralSupervisor changes the reporting edge of an APPROVED
	// SUPERVISOR record.
	UpdateGeneralSupervisor(ctx context.Context, recordID string, generalSupervisorID *string, updatedBy string, now time.Time) error
}

// SupervisorRepositoryFacade combines all supervisor-record repository interfaces.
type SupervisorRepositoryFacade interface {
	SupervisorReader
	SupervisorWriter
}
