package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/google/uuid"
)

// reportingWalkDepthLimit bounds the ancestor walk used to assert the
// reporting graph stays acyclic. The hierarchy currently has two supervisory
// tiers, so any walk longer than this indicates a cycle.
const reportingWalkDepthLimit = 8

// hierarchyService implements the HierarchySvcFacade interface.
type hierarchyService struct {
	accountRepo    portsrepo.AccountReader
	supervisorRepo portsrepo.SupervisorRepositoryFacade
	locationRepo   portsrepo.LocationRepositoryFacade
	beatRepo       portsrepo.BeatRepositoryFacade
}

// NewHierarchyService creates a new hierarchy registry service.
func NewHierarchyService(
	accountRepo portsrepo.AccountReader,
	supervisorRepo portsrepo.SupervisorRepositoryFacade,
	locationRepo portsrepo.LocationRepositoryFacade,
	beatRepo portsrepo.BeatRepositoryFacade,
) portssvc.HierarchySvcFacade {
	return &hierarchyService{
		accountRepo:    accountRepo,
		supervisorRepo: supervisorRepo,
		locationRepo:   locationRepo,
		beatRepo:       beatRepo,
	}
}

// Ensure hierarchyService implements the HierarchySvcFacade interface
var _ portssvc.HierarchySvcFacade = (*hierarchyService)(nil)

func (s *hierarchyService) GetApprovedGeneralSupervisors(ctx context.Context) ([]domain.SupervisorRecord, error) {
	records, err := s.supervisorRepo.FindApprovedRecords(ctx, domain.GeneralSupervisor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved general supervisors: %w", err)
	}
	return records, nil
}

func (s *hierarchyService) GetApprovedSupervisors(ctx context.Context, locationID *string) ([]domain.SupervisorRecord, error) {
	records, err := s.supervisorRepo.FindApprovedRecords(ctx, domain.Supervisor, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved supervisors: %w", err)
	}
	return records, nil
}

func (s *hierarchyService) GetBeatsByLocation(ctx context.Context, locationID string) ([]domain.Beat, error) {
	if _, err := s.locationRepo.FindLocationByID(ctx, locationID); err != nil {
		return nil, fmt.Errorf("failed to find location %s: %w", locationID, err)
	}
	beats, err := s.beatRepo.FindBeatsByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list beats for location %s: %w", locationID, err)
	}
	return beats, nil
}

func (s *hierarchyService) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	locations, err := s.locationRepo.ListLocations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// AssertLocationConsistency verifies that the supervisor may oversee posts at
// the given location: the record must be APPROVED and either bound to that
// location or bound to none (location-agnostic supervisors are assignable
// anywhere).
func (s *hierarchyService) AssertLocationConsistency(ctx context.Context, supervisorID string, locationID string) error {
	record, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, supervisorID)
	if err != nil {
		return fmt.Errorf("failed to find supervisor %s: %w", supervisorID, err)
	}
	if record.ApprovalStatus != domain.ApprovalApproved {
		return fmt.Errorf("supervisor %s is not approved: %w", supervisorID, apperrors.ErrValidation)
	}
	if record.LocationID != nil && *record.LocationID != locationID {
		return fmt.Errorf("supervisor %s belongs to location %s, not %s: %w",
			supervisorID, *record.LocationID, locationID, apperrors.ErrValidation)
	}
	return nil
}

func (s *hierarchyService) CreateLocation(ctx context.Context, actorAccountID string, req dto.CreateLocationRequest) (*domain.Location, error) {
	if err := s.requireManagerial(ctx, actorAccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	location := domain.Location{
		LocationID: uuid.NewString(),
		Name:       req.Name,
		Address:    req.Address,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorAccountID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorAccountID,
		},
	}
	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}
	return &location, nil
}

func (s *hierarchyService) CreateBeat(ctx context.Context, actorAccountID string, locationID string, req dto.CreateBeatRequest) (*domain.Beat, error) {
	if err := s.requireManagerial(ctx, actorAccountID); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find owning location %s: %w", locationID, err)
	}
	if !location.IsActive {
		return nil, fmt.Errorf("location %s is inactive: %w", locationID, apperrors.ErrValidation)
	}

	now := time.Now()
	beat := domain.Beat{
		BeatID:            uuid.NewString(),
		BeatCode:          req.BeatCode,
		LocationID:        locationID,
		NumberOfOperators: req.NumberOfOperators,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorAccountID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorAccountID,
		},
	}
	if err := s.beatRepo.SaveBeat(ctx, beat); err != nil {
		return nil, fmt.Errorf("failed to save beat: %w", err)
	}
	return &beat, nil
}

// ReassignSupervisorLocation changes an APPROVED supervisor's location.
// Existing assignments referencing the supervisor keep their location; the
// change only affects future assignments.
func (s *hierarchyService) ReassignSupervisorLocation(ctx context.Context, actorAccountID string, recordID string, locationID *string) (*domain.SupervisorRecord, error) {
	if err := s.requireManagerial(ctx, actorAccountID); err != nil {
		return nil, err
	}

	record, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supervisor record %s: %w", recordID, err)
	}
	if record.ApprovalStatus != domain.ApprovalApproved {
		return nil, fmt.Errorf("only approved supervisors can be reassigned: %w", apperrors.ErrInvalidState)
	}

	if locationID != nil {
		if _, err := s.locationRepo.FindLocationByID(ctx, *locationID); err != nil {
			return nil, fmt.Errorf("failed to find target location %s: %w", *locationID, err)
		}
	}

	if err := s.supervisorRepo.UpdateLocation(ctx, recordID, locationID, actorAccountID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update supervisor location: %w", err)
	}

	updated, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload supervisor record %s: %w", recordID, err)
	}
	return updated, nil
}

// ReassignGeneralSupervisor changes the reporting edge of an APPROVED
// SUPERVISOR record, rejecting edges that would make the reporting graph
// cyclic.
func (s *hierarchyService) ReassignGeneralSupervisor(ctx context.Context, actorAccountID string, recordID string, generalSupervisorID *string) (*domain.SupervisorRecord, error) {
	if err := s.requireManagerial(ctx, actorAccountID); err != nil {
		return nil, err
	}

	record, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supervisor record %s: %w", recordID, err)
	}
	if record.SupervisorType != domain.Supervisor {
		return nil, fmt.Errorf("only supervisors report to a general supervisor: %w", apperrors.ErrValidation)
	}
	if record.ApprovalStatus != domain.ApprovalApproved {
		return nil, fmt.Errorf("only approved supervisors can be reassigned: %w", apperrors.ErrInvalidState)
	}

	if generalSupervisorID != nil {
		target, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, *generalSupervisorID)
		if err != nil {
			return nil, fmt.Errorf("failed to find general supervisor %s: %w", *generalSupervisorID, err)
		}
		if target.SupervisorType != domain.GeneralSupervisor {
			return nil, fmt.Errorf("record %s is not a general supervisor: %w", *generalSupervisorID, apperrors.ErrValidation)
		}
		if target.ApprovalStatus != domain.ApprovalApproved {
			return nil, fmt.Errorf("general supervisor %s is not approved: %w", *generalSupervisorID, apperrors.ErrValidation)
		}
		if err := s.assertAcyclicEdge(ctx, recordID, target); err != nil {
			return nil, err
		}
	}

	if err := s.supervisorRepo.UpdateGeneralSupervisor(ctx, recordID, generalSupervisorID, actorAccountID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update reporting edge: %w", err)
	}

	updated, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload supervisor record %s: %w", recordID, err)
	}
	return updated, nil
}

// assertAcyclicEdge walks the ancestor chain from the proposed parent. With
// two supervisory tiers a cycle cannot currently form, but the walk keeps the
// invariant checkable if tiers are ever extended.
func (s *hierarchyService) assertAcyclicEdge(ctx context.Context, recordID string, parent *domain.SupervisorRecord) error {
	current := parent
	for depth := 0; depth < reportingWalkDepthLimit; depth++ {
		if current.SupervisorRecordID == recordID {
			return fmt.Errorf("reporting edge would create a cycle through %s: %w", recordID, apperrors.ErrValidation)
		}
		if current.GeneralSupervisorID == nil {
			return nil
		}
		next, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, *current.GeneralSupervisorID)
		if err != nil {
			return fmt.Errorf("failed to walk reporting chain: %w", err)
		}
		current = next
	}
	return fmt.Errorf("reporting chain exceeds depth %d: %w", reportingWalkDepthLimit, apperrors.ErrValidation)
}

func (s *hierarchyService) requireManagerial(ctx context.Context, actorAccountID string) error {
	actor, err := s.accountRepo.FindAccountByID(ctx, actorAccountID)
	if err != nil {
		return fmt.Errorf("failed to find acting account: %w", err)
	}
	if actor.Role != domain.RoleDirector && actor.Role != domain.RoleManager {
		return fmt.Errorf("operation requires a manager or director: %w", apperrors.ErrForbidden)
	}
	return nil
}
