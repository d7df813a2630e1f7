package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/core/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AssignmentServiceTestSuite struct {
	suite.Suite
	mockAccountRepo    *MockAccountRepository
	mockBeatRepo       *MockBeatRepository
	mockAssignmentRepo *MockAssignmentRepository
	mockHierarchy      *MockHierarchyConsistency
	mockNotifier       *MockNotificationDispatcher

	supervisor *domain.Account
	operator   *domain.Account
	beat       *domain.Beat
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBeatRepo = new(MockBeatRepository)
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockHierarchy = new(MockHierarchyConsistency)
	suite.mockNotifier = new(MockNotificationDispatcher)

	suite.supervisor = &domain.Account{AccountID: uuid.NewString(), Role: domain.RoleSupervisor, Status: domain.AccountActive}
	suite.operator = &domain.Account{AccountID: uuid.NewString(), Role: domain.RoleOperator, Status: domain.AccountActive}
	suite.beat = &domain.Beat{
		BeatID:            uuid.NewString(),
		BeatCode:          "B-01",
		LocationID:        uuid.NewString(),
		NumberOfOperators: 2,
		IsActive:          true,
	}
}

func (suite *AssignmentServiceTestSuite) newService(options ...services.AssignmentServiceOption) portssvc.AssignmentSvcFacade {
	return services.NewAssignmentService(
		suite.mockAccountRepo,
		suite.mockBeatRepo,
		suite.mockAssignmentRepo,
		suite.mockHierarchy,
		suite.mockNotifier,
		options...,
	)
}

func (suite *AssignmentServiceTestSuite) createRequest(supervisorRecordID string) dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		OperatorID:     suite.operator.AccountID,
		BeatID:         suite.beat.BeatID,
		SupervisorID:   supervisorRecordID,
		ShiftType:      "DAY",
		AssignmentType: "PERMANENT",
		StartDate:      time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
	}
}

// --- Assign ---

func (suite *AssignmentServiceTestSuite) TestAssign_UnassignedOperatorGetsActiveAssignment() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(nil).Once()
	suite.mockAssignmentRepo.On("FindActiveByOperator", ctx, suite.operator.AccountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAssignmentRepo.On("CreateAssignment", ctx, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.OperatorID == suite.operator.AccountID &&
			a.BeatID == suite.beat.BeatID &&
			a.LocationID == suite.beat.LocationID && // derived from the beat
			a.Status == domain.AssignmentActive &&
			a.CreatedBy == suite.supervisor.AccountID
	})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventAssignmentCreated && e.RecipientID == suite.operator.AccountID
	})).Return(nil).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(assignment)
	suite.Equal(domain.AssignmentActive, assignment.Status)
	suite.Equal(suite.beat.LocationID, assignment.LocationID)
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssign_AlreadyAssignedOperatorBecomesTransfer() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)

	current := &domain.Assignment{
		AssignmentID: uuid.NewString(),
		OperatorID:   suite.operator.AccountID,
		Status:       domain.AssignmentActive,
	}
	transferred := *current
	transferred.Status = domain.AssignmentTransferred

	// Assign path validation, then the delegated ChangeAssignment revalidates.
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Twice()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Twice()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Twice()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(nil).Twice()
	suite.mockAssignmentRepo.On("FindActiveByOperator", ctx, suite.operator.AccountID).Return(current, nil).Once()
	suite.mockAssignmentRepo.On("TransferAndCreate", ctx, suite.operator.AccountID, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.BeatID == suite.beat.BeatID && a.Status == domain.AssignmentActive
	}), mock.AnythingOfType("time.Time")).Return(&transferred, nil).Once()
	suite.mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventAssignmentTransferred && e.AssignmentID == current.AssignmentID
	})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventAssignmentCreated
	})).Return(nil).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(assignment)
	suite.NotEqual(current.AssignmentID, assignment.AssignmentID)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssign_NonOperatorTargetRejected() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)
	req.OperatorID = suite.supervisor.AccountID

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil)

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssignmentServiceTestSuite) TestAssign_OperatorRoleForbiddenToAssign() {
	ctx := context.Background()
	service := suite.newService()
	req := suite.createRequest(uuid.NewString())

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()

	assignment, err := service.Assign(ctx, suite.operator.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AssignmentServiceTestSuite) TestAssign_InactiveBeatRejected() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)
	suite.beat.IsActive = false

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockHierarchy.AssertNotCalled(suite.T(), "AssertLocationConsistency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssign_LocationMismatchRejected() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(apperrors.ErrValidation).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssign_CapacityEnforcedWhenConfigured() {
	ctx := context.Background()
	service := suite.newService(services.WithCapacityEnforcement(true))
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(nil).Once()
	suite.mockAssignmentRepo.On("FindActiveByOperator", ctx, suite.operator.AccountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAssignmentRepo.On("CountActiveByBeat", ctx, suite.beat.BeatID).Return(2, nil).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "CreateAssignment", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssign_CapacityIgnoredByDefault() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := suite.createRequest(supervisorRecordID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(nil).Once()
	suite.mockAssignmentRepo.On("FindActiveByOperator", ctx, suite.operator.AccountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAssignmentRepo.On("CreateAssignment", ctx, mock.AnythingOfType("domain.Assignment")).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", mock.Anything, mock.AnythingOfType("domain.Event")).Return(nil).Once()

	assignment, err := service.Assign(ctx, suite.supervisor.AccountID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(assignment)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "CountActiveByBeat", mock.Anything, mock.Anything)
}

// --- ChangeAssignment ---

func (suite *AssignmentServiceTestSuite) TestChangeAssignment_NoActiveAssignmentIsNotFound() {
	ctx := context.Background()
	service := suite.newService()
	supervisorRecordID := uuid.NewString()
	req := dto.ChangeAssignmentRequest{
		BeatID:         suite.beat.BeatID,
		SupervisorID:   supervisorRecordID,
		ShiftType:      "NIGHT",
		AssignmentType: "TEMPORARY",
		StartDate:      time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()
	suite.mockBeatRepo.On("FindBeatByID", ctx, suite.beat.BeatID).Return(suite.beat, nil).Once()
	suite.mockHierarchy.On("AssertLocationConsistency", ctx, supervisorRecordID, suite.beat.LocationID).Return(nil).Once()
	suite.mockAssignmentRepo.On("TransferAndCreate", ctx, suite.operator.AccountID, mock.AnythingOfType("domain.Assignment"), mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	assignment, err := service.ChangeAssignment(ctx, suite.supervisor.AccountID, suite.operator.AccountID, req)

	suite.Require().Error(err)
	suite.Nil(assignment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

// --- Unassign ---

func (suite *AssignmentServiceTestSuite) TestUnassign_EndsActiveAssignment() {
	ctx := context.Background()
	service := suite.newService()
	assignment := &domain.Assignment{
		AssignmentID: uuid.NewString(),
		OperatorID:   suite.operator.AccountID,
		Status:       domain.AssignmentActive,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignmentRepo.On("EndAssignment", ctx, assignment.AssignmentID, suite.supervisor.AccountID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockNotifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventAssignmentEnded && e.RecipientID == suite.operator.AccountID
	})).Return(nil).Once()

	err := service.Unassign(ctx, suite.supervisor.AccountID, assignment.AssignmentID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestUnassign_AlreadyEndedIsIdempotentNoOp() {
	ctx := context.Background()
	service := suite.newService()
	assignment := &domain.Assignment{
		AssignmentID: uuid.NewString(),
		OperatorID:   suite.operator.AccountID,
		Status:       domain.AssignmentEnded,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignment.AssignmentID).Return(assignment, nil).Once()
	suite.mockAssignmentRepo.On("EndAssignment", ctx, assignment.AssignmentID, suite.supervisor.AccountID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()

	err := service.Unassign(ctx, suite.supervisor.AccountID, assignment.AssignmentID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestUnassign_UnknownAssignmentIsNotFound() {
	ctx := context.Background()
	service := suite.newService()
	assignmentID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.supervisor.AccountID).Return(suite.supervisor, nil).Once()
	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(nil, apperrors.ErrNotFound).Once()

	err := service.Unassign(ctx, suite.supervisor.AccountID, assignmentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Reads ---

func (suite *AssignmentServiceTestSuite) TestGetAssignmentsByOperator() {
	ctx := context.Background()
	service := suite.newService()
	expected := []domain.Assignment{{AssignmentID: uuid.NewString(), OperatorID: suite.operator.AccountID}}

	suite.mockAssignmentRepo.On("FindAssignmentsByOperator", ctx, suite.operator.AccountID).Return(expected, nil).Once()

	assignments, err := service.GetAssignmentsByOperator(ctx, suite.operator.AccountID)

	suite.Require().NoError(err)
	suite.Equal(expected, assignments)
}

// --- Run Suite ---
func TestAssignmentService(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
