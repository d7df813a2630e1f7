package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/google/uuid"
)

// notifyTimeout bounds the synchronous hand-off to the notification
// dispatcher. Delivery failures never roll back the state transition.
const notifyTimeout = 5 * time.Second

// approvalService implements the ApprovalSvcFacade interface: the state
// machine driving a registration from submission to a terminal decision.
type approvalService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	supervisorRepo portsrepo.SupervisorRepositoryFacade
	locationRepo   portsrepo.LocationReader
	credentialSvc  portssvc.CredentialIssuerSvc
	notifier       portssvc.NotificationDispatcher
}

// NewApprovalService creates a new approval workflow service.
func NewApprovalService(
	accountRepo portsrepo.AccountRepositoryFacade,
	supervisorRepo portsrepo.SupervisorRepositoryFacade,
	locationRepo portsrepo.LocationReader,
	credentialSvc portssvc.CredentialIssuerSvc,
	notifier portssvc.NotificationDispatcher,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		accountRepo:    accountRepo,
		supervisorRepo: supervisorRepo,
		locationRepo:   locationRepo,
		credentialSvc:  credentialSvc,
		notifier:       notifier,
	}
}

// Ensure approvalService implements the ApprovalSvcFacade interface
var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) SubmitRegistration(ctx context.Context, submitterAccountID string, req dto.SubmitRegistrationRequest) (*domain.SupervisorRecord, error) {
	submitter, err := s.accountRepo.FindAccountByID(ctx, submitterAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submitting account: %w", err)
	}

	supervisorType := domain.SupervisorType(req.SupervisorType)
	requiredSubmitter, known := domain.RequiredSubmitterRole(supervisorType)
	if !known {
		return nil, fmt.Errorf("unknown supervisor type %q: %w", req.SupervisorType, apperrors.ErrValidation)
	}
	if submitter.Role != requiredSubmitter {
		return nil, fmt.Errorf("role %s may not register a %s: %w", submitter.Role, supervisorType, apperrors.ErrForbidden)
	}

	if err := s.validateRegistrationReferences(ctx, supervisorType, req); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      roleForSupervisorType(supervisorType),
		Status:    domain.AccountPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterAccountID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterAccountID,
		},
	}
	record := domain.SupervisorRecord{
		SupervisorRecordID:  uuid.NewString(),
		AccountID:           account.AccountID,
		SupervisorType:      supervisorType,
		ApprovalStatus:      domain.ApprovalPending,
		RegisteredBy:        submitterAccountID,
		GeneralSupervisorID: req.GeneralSupervisorID,
		LocationID:          req.LocationID,
		RegionAssigned:      req.RegionAssigned,
		AuditFields:         account.AuditFields,
	}

	if err := s.supervisorRepo.CreateRegistration(ctx, record, account); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	// No notification yet; the submitter is informed when the record is decided.
	return &record, nil
}

// validateRegistrationReferences checks the optional hierarchy references on
// a submission: a SUPERVISOR's general supervisor must be an APPROVED
// GENERAL_SUPERVISOR record, and its location must exist.
func (s *approvalService) validateRegistrationReferences(ctx context.Context, supervisorType domain.SupervisorType, req dto.SubmitRegistrationRequest) error {
	if supervisorType != domain.Supervisor {
		if req.GeneralSupervisorID != nil || req.LocationID != nil {
			return fmt.Errorf("general supervisor and location apply only to SUPERVISOR registrations: %w", apperrors.ErrValidation)
		}
		return nil
	}

	if req.GeneralSupervisorID != nil {
		parent, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, *req.GeneralSupervisorID)
		if err != nil {
			return fmt.Errorf("failed to find general supervisor %s: %w", *req.GeneralSupervisorID, err)
		}
		if parent.SupervisorType != domain.GeneralSupervisor || parent.ApprovalStatus != domain.ApprovalApproved {
			return fmt.Errorf("record %s is not an approved general supervisor: %w", *req.GeneralSupervisorID, apperrors.ErrValidation)
		}
	}
	if req.LocationID != nil {
		if _, err := s.locationRepo.FindLocationByID(ctx, *req.LocationID); err != nil {
			return fmt.Errorf("failed to find location %s: %w", *req.LocationID, err)
		}
	}
	return nil
}

func (s *approvalService) Decide(ctx context.Context, approverAccountID string, recordID string, decision portssvc.Decision, reason string) (*domain.SupervisorRecord, error) {
	approver, err := s.accountRepo.FindAccountByID(ctx, approverAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find approving account: %w", err)
	}

	record, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supervisor record %s: %w", recordID, err)
	}

	requiredApprover, _ := domain.RequiredApproverRole(record.SupervisorType)
	if approver.Role != requiredApprover {
		return nil, fmt.Errorf("role %s may not decide a %s registration: %w", approver.Role, record.SupervisorType, apperrors.ErrForbidden)
	}

	// Fast pre-check; the repository's conditional update is the real
	// exactly-once guard against a concurrent decider.
	if record.ApprovalStatus != domain.ApprovalPending {
		return nil, fmt.Errorf("record %s is already %s: %w", recordID, record.ApprovalStatus, apperrors.ErrInvalidState)
	}

	switch decision {
	case portssvc.DecisionApprove:
		return s.approve(ctx, approverAccountID, record)
	case portssvc.DecisionReject:
		return s.reject(ctx, approverAccountID, record, reason)
	default:
		return nil, fmt.Errorf("unknown decision %q: %w", decision, apperrors.ErrValidation)
	}
}

func (s *approvalService) approve(ctx context.Context, approverAccountID string, record *domain.SupervisorRecord) (*domain.SupervisorRecord, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, record.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find registered account %s: %w", record.AccountID, err)
	}

	// Credentials are minted before the transition so that an issuance
	// failure prevents the approval from committing. The plaintext lives only
	// in this scope and the outbound event.
	creds, passwordHash, err := s.credentialSvc.Issue(ctx, *account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credentials: %w", err)
	}

	// Conditional on the record still being PENDING; a concurrent decider
	// that lost this race gets ErrInvalidState and its credentials are
	// discarded without side effects.
	if err := s.supervisorRepo.ApproveRecord(ctx, record.SupervisorRecordID, approverAccountID, creds.EmployeeID, passwordHash, time.Now()); err != nil {
		return nil, err
	}

	s.dispatch(ctx, domain.Event{
		Type:               domain.EventSupervisorApproved,
		RecipientID:        record.RegisteredBy,
		OccurredAt:         time.Now(),
		SupervisorRecordID: record.SupervisorRecordID,
		Credentials:        &creds,
	})

	updated, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, record.SupervisorRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload supervisor record: %w", err)
	}
	return updated, nil
}

func (s *approvalService) reject(ctx context.Context, approverAccountID string, record *domain.SupervisorRecord, reason string) (*domain.SupervisorRecord, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("a rejection reason is required: %w", apperrors.ErrValidation)
	}

	if err := s.supervisorRepo.RejectRecord(ctx, record.SupervisorRecordID, approverAccountID, reason, time.Now()); err != nil {
		return nil, err
	}

	s.dispatch(ctx, domain.Event{
		Type:               domain.EventSupervisorRejected,
		RecipientID:        record.RegisteredBy,
		OccurredAt:         time.Now(),
		SupervisorRecordID: record.SupervisorRecordID,
		Reason:             reason,
	})

	updated, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, record.SupervisorRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload supervisor record: %w", err)
	}
	return updated, nil
}

func (s *approvalService) GetRegistration(ctx context.Context, recordID string) (*domain.SupervisorRecord, error) {
	record, err := s.supervisorRepo.FindSupervisorRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supervisor record %s: %w", recordID, err)
	}
	return record, nil
}

func (s *approvalService) ListPending(ctx context.Context, approverRole domain.Role, limit int, offset int) ([]domain.SupervisorRecord, error) {
	decidableType, ok := domain.DecidableTypeForRole(approverRole)
	if !ok {
		return nil, fmt.Errorf("role %s decides no registrations: %w", approverRole, apperrors.ErrForbidden)
	}
	records, err := s.supervisorRepo.FindPendingRecords(ctx, decidableType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending registrations: %w", err)
	}
	return records, nil
}

func (s *approvalService) GetApprovalStats(ctx context.Context) ([]domain.ApprovalStatusCount, error) {
	counts, err := s.supervisorRepo.CountByStatusAndType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute approval stats: %w", err)
	}
	return counts, nil
}

// dispatch hands an event to the notifier with a bounded timeout. Failures
// are logged and left to the dispatcher's own retry; the committed state
// transition stands either way.
func (s *approvalService) dispatch(ctx context.Context, event domain.Event) {
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.Dispatch(notifyCtx, event); err != nil {
		slog.WarnContext(ctx, "Failed to dispatch domain event",
			slog.String("event_type", string(event.Type)),
			slog.String("recipient_id", event.RecipientID),
			slog.String("error", err.Error()))
	}
}

// roleForSupervisorType maps the registered supervisor type to the account role it creates.
func roleForSupervisorType(t domain.SupervisorType) domain.Role {
	if t == domain.GeneralSupervisor {
		return domain.RoleGeneralSupervisor
	}
	return domain.RoleSupervisor
}
