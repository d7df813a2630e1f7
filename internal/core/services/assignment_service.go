package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/google/uuid"
)

// assignmentService implements the AssignmentSvcFacade interface.
type assignmentService struct {
	accountRepo     portsrepo.AccountReader
	beatRepo        portsrepo.BeatReader
	assignmentRepo  portsrepo.AssignmentRepositoryFacade
	hierarchySvc    portssvc.HierarchyConsistencySvc
	notifier        portssvc.NotificationDispatcher
	enforceCapacity bool
}

// AssignmentServiceOption is a functional option for configuring the assignment service.
type AssignmentServiceOption func(*assignmentService)

// WithCapacityEnforcement makes assign/change fail with ErrConflict when the
// target beat already has numberOfOperators ACTIVE assignments. Off by
// default: the capacity figure is informational pending product
// clarification.
func WithCapacityEnforcement(enabled bool) AssignmentServiceOption {
	return func(s *assignmentService) {
		s.enforceCapacity = enabled
	}
}

// NewAssignmentService creates a new assignment engine service.
func NewAssignmentService(
	accountRepo portsrepo.AccountReader,
	beatRepo portsrepo.BeatReader,
	assignmentRepo portsrepo.AssignmentRepositoryFacade,
	hierarchySvc portssvc.HierarchyConsistencySvc,
	notifier portssvc.NotificationDispatcher,
	options ...AssignmentServiceOption,
) portssvc.AssignmentSvcFacade {
	svc := &assignmentService{
		accountRepo:    accountRepo,
		beatRepo:       beatRepo,
		assignmentRepo: assignmentRepo,
		hierarchySvc:   hierarchySvc,
		notifier:       notifier,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure assignmentService implements the AssignmentSvcFacade interface
var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) Assign(ctx context.Context, actorAccountID string, req dto.CreateAssignmentRequest) (*domain.Assignment, error) {
	if err := s.requireSupervisory(ctx, actorAccountID); err != nil {
		return nil, err
	}

	beat, err := s.validatePlacement(ctx, req.OperatorID, req.BeatID, req.SupervisorID, req.ShiftType, req.AssignmentType)
	if err != nil {
		return nil, err
	}

	// An operator already holding an ACTIVE assignment makes this a change,
	// not a create.
	_, err = s.assignmentRepo.FindActiveByOperator(ctx, req.OperatorID)
	if err == nil {
		return s.ChangeAssignment(ctx, actorAccountID, req.OperatorID, dto.ChangeAssignmentRequest{
			BeatID:         req.BeatID,
			SupervisorID:   req.SupervisorID,
			ShiftType:      req.ShiftType,
			AssignmentType: req.AssignmentType,
			StartDate:      req.StartDate,
		})
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check current assignment: %w", err)
	}

	if err := s.checkCapacity(ctx, beat); err != nil {
		return nil, err
	}

	assignment := s.buildAssignment(actorAccountID, req.OperatorID, beat, req.SupervisorID, req.ShiftType, req.AssignmentType, req.StartDate)
	if err := s.assignmentRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.dispatch(ctx, domain.Event{
		Type:         domain.EventAssignmentCreated,
		RecipientID:  req.OperatorID,
		OccurredAt:   time.Now(),
		AssignmentID: assignment.AssignmentID,
	})

	return &assignment, nil
}

func (s *assignmentService) ChangeAssignment(ctx context.Context, actorAccountID string, operatorID string, req dto.ChangeAssignmentRequest) (*domain.Assignment, error) {
	if err := s.requireSupervisory(ctx, actorAccountID); err != nil {
		return nil, err
	}

	beat, err := s.validatePlacement(ctx, operatorID, req.BeatID, req.SupervisorID, req.ShiftType, req.AssignmentType)
	if err != nil {
		return nil, err
	}

	if err := s.checkCapacity(ctx, beat); err != nil {
		return nil, err
	}

	next := s.buildAssignment(actorAccountID, operatorID, beat, req.SupervisorID, req.ShiftType, req.AssignmentType, req.StartDate)

	// Transfer and create commit in one transaction; the operator never holds
	// zero or two ACTIVE assignments at any observable point.
	prev, err := s.assignmentRepo.TransferAndCreate(ctx, operatorID, next, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("operator %s has no active assignment to change: %w", operatorID, err)
		}
		return nil, fmt.Errorf("failed to transfer assignment: %w", err)
	}

	s.dispatch(ctx, domain.Event{
		Type:         domain.EventAssignmentTransferred,
		RecipientID:  operatorID,
		OccurredAt:   time.Now(),
		AssignmentID: prev.AssignmentID,
	})
	s.dispatch(ctx, domain.Event{
		Type:         domain.EventAssignmentCreated,
		RecipientID:  operatorID,
		OccurredAt:   time.Now(),
		AssignmentID: next.AssignmentID,
	})

	return &next, nil
}

func (s *assignmentService) Unassign(ctx context.Context, actorAccountID string, assignmentID string) error {
	if err := s.requireSupervisory(ctx, actorAccountID); err != nil {
		return err
	}

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}

	ended, err := s.assignmentRepo.EndAssignment(ctx, assignmentID, actorAccountID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to end assignment %s: %w", assignmentID, err)
	}
	if !ended {
		// Already terminal: retried unassign requests are expected from the
		// UI, so this is a no-op success rather than an error.
		return nil
	}

	s.dispatch(ctx, domain.Event{
		Type:         domain.EventAssignmentEnded,
		RecipientID:  assignment.OperatorID,
		OccurredAt:   time.Now(),
		AssignmentID: assignmentID,
	})
	return nil
}

func (s *assignmentService) GetAssignmentsByOperator(ctx context.Context, operatorID string) ([]domain.Assignment, error) {
	assignments, err := s.assignmentRepo.FindAssignmentsByOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for operator %s: %w", operatorID, err)
	}
	return assignments, nil
}

func (s *assignmentService) GetAssignmentsByBeat(ctx context.Context, beatID string) ([]domain.Assignment, error) {
	assignments, err := s.assignmentRepo.FindAssignmentsByBeat(ctx, beatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for beat %s: %w", beatID, err)
	}
	return assignments, nil
}

// validatePlacement runs the shared checks for assign and change: the
// operator exists and is an OPERATOR, the beat exists and is active, the
// enums are known, and the supervisor is consistent with the beat's location.
// The returned beat supplies the assignment's derived location.
func (s *assignmentService) validatePlacement(ctx context.Context, operatorID, beatID, supervisorID, shiftType, assignmentType string) (*domain.Beat, error) {
	if !domain.ShiftType(shiftType).IsValid() {
		return nil, fmt.Errorf("unknown shift type %q: %w", shiftType, apperrors.ErrValidation)
	}
	if !domain.AssignmentType(assignmentType).IsValid() {
		return nil, fmt.Errorf("unknown assignment type %q: %w", assignmentType, apperrors.ErrValidation)
	}

	operator, err := s.accountRepo.FindAccountByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find operator %s: %w", operatorID, err)
	}
	if operator.Role != domain.RoleOperator {
		return nil, fmt.Errorf("account %s is not an operator: %w", operatorID, apperrors.ErrValidation)
	}

	beat, err := s.beatRepo.FindBeatByID(ctx, beatID)
	if err != nil {
		return nil, fmt.Errorf("failed to find beat %s: %w", beatID, err)
	}
	if !beat.IsActive {
		return nil, fmt.Errorf("beat %s is inactive: %w", beatID, apperrors.ErrValidation)
	}

	if err := s.hierarchySvc.AssertLocationConsistency(ctx, supervisorID, beat.LocationID); err != nil {
		return nil, err
	}
	return beat, nil
}

func (s *assignmentService) checkCapacity(ctx context.Context, beat *domain.Beat) error {
	if !s.enforceCapacity {
		return nil
	}
	active, err := s.assignmentRepo.CountActiveByBeat(ctx, beat.BeatID)
	if err != nil {
		return fmt.Errorf("failed to count active assignments on beat %s: %w", beat.BeatID, err)
	}
	if active >= beat.NumberOfOperators {
		return fmt.Errorf("beat %s is at capacity (%d operators): %w", beat.BeatID, beat.NumberOfOperators, apperrors.ErrConflict)
	}
	return nil
}

func (s *assignmentService) buildAssignment(actorAccountID, operatorID string, beat *domain.Beat, supervisorID, shiftType, assignmentType string, startDate time.Time) domain.Assignment {
	now := time.Now()
	return domain.Assignment{
		AssignmentID:   uuid.NewString(),
		OperatorID:     operatorID,
		BeatID:         beat.BeatID,
		SupervisorID:   supervisorID,
		LocationID:     beat.LocationID, // always the beat's location
		ShiftType:      domain.ShiftType(shiftType),
		AssignmentType: domain.AssignmentType(assignmentType),
		Status:         domain.AssignmentActive,
		StartDate:      startDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorAccountID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorAccountID,
		},
	}
}

func (s *assignmentService) requireSupervisory(ctx context.Context, actorAccountID string) error {
	actor, err := s.accountRepo.FindAccountByID(ctx, actorAccountID)
	if err != nil {
		return fmt.Errorf("failed to find acting account: %w", err)
	}
	if !actor.Role.IsSupervisory() {
		return fmt.Errorf("role %s may not manage assignments: %w", actor.Role, apperrors.ErrForbidden)
	}
	return nil
}

func (s *assignmentService) dispatch(ctx context.Context, event domain.Event) {
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.Dispatch(notifyCtx, event); err != nil {
		slog.WarnContext(ctx, "Failed to dispatch domain event",
			slog.String("event_type", string(event.Type)),
			slog.String("recipient_id", event.RecipientID),
			slog.String("error", err.Error()))
	}
}
