package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
)

// HierarchyReaderSvc defines the referential lookups used across the engine.
type HierarchyReaderSvc interface {
	// GetApprovedGeneralSupervisors lists APPROVED general supervisors.
	GetApprovedGeneralSupervisors(ctx context.Context) ([]domain.SupervisorRecord, error)

	// GetApprovedSupervisors lists APPROVED supervisors, optionally filtered
	// by location.
	GetApprovedSupervisors(ctx context.Context, locationID *string) ([]domain.SupervisorRecord, error)

	// GetBeatsByLocation lists the beats owned by a location.
	GetBeatsByLocation(ctx context.Context, locationID string) ([]domain.Beat, error)

	// ListLocations lists the location catalog.
	ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error)
}

// HierarchyConsistencySvc defines the consistency assertions shared by the
// approval and assignment engines.
type HierarchyConsistencySvc interface {
	// AssertLocationConsistency verifies that the supervisor is APPROVED and
	// either bound to the given location or location-agnostic. A mismatch is
	// apperrors.ErrValidation.
	AssertLocationConsistency(ctx context.Context, supervisorID string, locationID string) error
}

// HierarchyAdminSvc defines administrative catalog and reassignment operations.
type HierarchyAdminSvc interface {
	// CreateLocation adds a physical site to the catalog. Manager or above.
	CreateLocation(ctx context.Context, actorAccountID string, req dto.CreateLocationRequest) (*domain.Location, error)

	// CreateBeat adds a security post under a location. Manager or above.
	CreateBeat(ctx context.Context, actorAccountID string, locationID string, req dto.CreateBeatRequest) (*domain.Beat, error)

	// ReassignSupervisorLocation changes an APPROVED supervisor's location.
	// Nil unassigns from all locations. Existing assignments referencing the
	// supervisor are not retroactively invalidated; the change is
	// forward-looking only.
	ReassignSupervisorLocation(ctx context.Context, actorAccountID string, recordID string, locationID *string) (*domain.SupervisorRecord, error)

	// ReassignGeneralSupervisor changes the reporting edge of an APPROVED
	// supervisor, asserting the edge stays acyclic.
	ReassignGeneralSupervisor(ctx context.Context, actorAccountID string, recordID string, generalSupervisorID *string) (*domain.SupervisorRecord, error)
}

// HierarchySvcFacade combines all hierarchy registry service interfaces.
type HierarchySvcFacade interface {
	HierarchyReaderSvc
	HierarchyConsistencySvc
	HierarchyAdminSvc
}
