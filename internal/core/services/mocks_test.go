package services_test

import (
	"context"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	args := m.Called(ctx, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, accountID string, passwordHash string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, passwordHash, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SuspendAccount(ctx context.Context, accountID string, suspendedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, suspendedBy, now)
	return args.Error(0)
}

// --- Mock SupervisorRepository ---
type MockSupervisorRepository struct {
	mock.Mock
}

func (m *MockSupervisorRepository) FindSupervisorRecordByID(ctx context.Context, recordID string) (*domain.SupervisorRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupervisorRecord), args.Error(1)
}

func (m *MockSupervisorRepository) FindPendingRecords(ctx context.Context, supervisorType domain.SupervisorType, limit int, offset int) ([]domain.SupervisorRecord, error) {
	args := m.Called(ctx, supervisorType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupervisorRecord), args.Error(1)
}

func (m *MockSupervisorRepository) FindApprovedRecords(ctx context.Context, supervisorType domain.SupervisorType, locationID *string) ([]domain.SupervisorRecord, error) {
	args := m.Called(ctx, supervisorType, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupervisorRecord), args.Error(1)
}

func (m *MockSupervisorRepository) CountByStatusAndType(ctx context.Context) ([]domain.ApprovalStatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStatusCount), args.Error(1)
}

func (m *MockSupervisorRepository) CreateRegistration(ctx context.Context, record domain.SupervisorRecord, account domain.Account) error {
	args := m.Called(ctx, record, account)
	return args.Error(0)
}

func (m *MockSupervisorRepository) ApproveRecord(ctx context.Context, recordID string, decidedBy string, employeeID string, passwordHash string, now time.Time) error {
	args := m.Called(ctx, recordID, decidedBy, employeeID, passwordHash, now)
	return args.Error(0)
}

func (m *MockSupervisorRepository) RejectRecord(ctx context.Context, recordID string, decidedBy string, reason string, now time.Time) error {
	args := m.Called(ctx, recordID, decidedBy, reason, now)
	return args.Error(0)
}

func (m *MockSupervisorRepository) UpdateLocation(ctx context.Context, recordID string, locationID *string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, recordID, locationID, updatedBy, now)
	return args.Error(0)
}

func (m *MockSupervisorRepository) UpdateGeneralSupervisor(ctx context.Context, recordID string, generalSupervisorID *string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, recordID, generalSupervisorID, updatedBy, now)
	return args.Error(0)
}

// --- Mock LocationRepository ---
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

// --- Mock BeatRepository ---
type MockBeatRepository struct {
	mock.Mock
}

func (m *MockBeatRepository) SaveBeat(ctx context.Context, beat domain.Beat) error {
	args := m.Called(ctx, beat)
	return args.Error(0)
}

func (m *MockBeatRepository) FindBeatByID(ctx context.Context, beatID string) (*domain.Beat, error) {
	args := m.Called(ctx, beatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beat), args.Error(1)
}

func (m *MockBeatRepository) FindBeatsByLocation(ctx context.Context, locationID string) ([]domain.Beat, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beat), args.Error(1)
}

// --- Mock AssignmentRepository ---
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveByOperator(ctx context.Context, operatorID string) (*domain.Assignment, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignmentsByOperator(ctx context.Context, operatorID string) ([]domain.Assignment, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignmentsByBeat(ctx context.Context, beatID string) ([]domain.Assignment, error) {
	args := m.Called(ctx, beatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountActiveByBeat(ctx context.Context, beatID string) (int, error) {
	args := m.Called(ctx, beatID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) CreateAssignment(ctx context.Context, assignment domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) TransferAndCreate(ctx context.Context, operatorID string, next domain.Assignment, now time.Time) (*domain.Assignment, error) {
	args := m.Called(ctx, operatorID, next, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) EndAssignment(ctx context.Context, assignmentID string, endedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, assignmentID, endedBy, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock NotificationDispatcher ---
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock CredentialIssuer ---
type MockCredentialIssuer struct {
	mock.Mock
}

func (m *MockCredentialIssuer) Issue(ctx context.Context, account domain.Account) (domain.Credentials, string, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(domain.Credentials), args.String(1), args.Error(2)
}

// --- Mock HierarchyConsistency ---
type MockHierarchyConsistency struct {
	mock.Mock
}

func (m *MockHierarchyConsistency) AssertLocationConsistency(ctx context.Context, supervisorID string, locationID string) error {
	args := m.Called(ctx, supervisorID, locationID)
	return args.Error(0)
}
