package services_test

import (
	"context"
	"testing"

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
type HierarchyServiceTestSuite struct {
	suite.Suite
	mockAccountRepo    *MockAccountRepository
	mockSupervisorRepo *MockSupervisorRepository
	mockLocationRepo   *MockLocationRepository
	mockBeatRepo       *MockBeatRepository
	service            portssvc.HierarchySvcFacade

	manager  *domain.Account
	operator *domain.Account
}

func (suite *HierarchyServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSupervisorRepo = new(MockSupervisorRepository)
	suite.mockLocationRepo = new(MockLocationRepository)
	suite.mockBeatRepo = new(MockBeatRepository)
	suite.service = services.NewHierarchyService(
		suite.mockAccountRepo,
		suite.mockSupervisorRepo,
		suite.mockLocationRepo,
		suite.mockBeatRepo,
	)

	suite.manager = &domain.Account{AccountID: uuid.NewString(), Role: domain.RoleManager, Status: domain.AccountActive}
	suite.operator = &domain.Account{AccountID: uuid.NewString(), Role: domain.RoleOperator, Status: domain.AccountActive}
}

func (suite *HierarchyServiceTestSuite) approvedRecord(supervisorType domain.SupervisorType, locationID *string) *domain.SupervisorRecord {
	return &domain.SupervisorRecord{
		SupervisorRecordID: uuid.NewString(),
		AccountID:          uuid.NewString(),
		SupervisorType:     supervisorType,
		ApprovalStatus:     domain.ApprovalApproved,
		LocationID:         locationID,
	}
}

// --- AssertLocationConsistency ---

func (suite *HierarchyServiceTestSuite) TestAssertLocationConsistency_LocationAgnosticSupervisorAllowed() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)

	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	err := suite.service.AssertLocationConsistency(ctx, record.SupervisorRecordID, uuid.NewString())

	suite.Require().NoError(err)
}

func (suite *HierarchyServiceTestSuite) TestAssertLocationConsistency_MatchingLocationAllowed() {
	ctx := context.Background()
	locationID := uuid.NewString()
	record := suite.approvedRecord(domain.Supervisor, &locationID)

	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	err := suite.service.AssertLocationConsistency(ctx, record.SupervisorRecordID, locationID)

	suite.Require().NoError(err)
}

func (suite *HierarchyServiceTestSuite) TestAssertLocationConsistency_MismatchedLocationRejected() {
	ctx := context.Background()
	locationID := uuid.NewString()
	record := suite.approvedRecord(domain.Supervisor, &locationID)

	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	err := suite.service.AssertLocationConsistency(ctx, record.SupervisorRecordID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *HierarchyServiceTestSuite) TestAssertLocationConsistency_UnapprovedSupervisorRejected() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	record.ApprovalStatus = domain.ApprovalPending

	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	err := suite.service.AssertLocationConsistency(ctx, record.SupervisorRecordID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- CreateLocation / CreateBeat ---

func (suite *HierarchyServiceTestSuite) TestCreateLocation_Success() {
	ctx := context.Background()
	req := dto.CreateLocationRequest{Name: "North District", Address: "12 Harbour Rd"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockLocationRepo.On("SaveLocation", ctx, mock.MatchedBy(func(l domain.Location) bool {
		return l.Name == req.Name && l.Address == req.Address && l.IsActive && l.CreatedBy == suite.manager.AccountID
	})).Return(nil).Once()

	location, err := suite.service.CreateLocation(ctx, suite.manager.AccountID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(location)
	suite.NotEmpty(location.LocationID)
	suite.mockLocationRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestCreateLocation_NonManagerialActorForbidden() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.operator.AccountID).Return(suite.operator, nil).Once()

	location, err := suite.service.CreateLocation(ctx, suite.operator.AccountID, dto.CreateLocationRequest{Name: "X", Address: "Y"})

	suite.Require().Error(err)
	suite.Nil(location)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLocationRepo.AssertNotCalled(suite.T(), "SaveLocation", mock.Anything, mock.Anything)
}

func (suite *HierarchyServiceTestSuite) TestCreateBeat_Success() {
	ctx := context.Background()
	location := &domain.Location{LocationID: uuid.NewString(), Name: "North District", IsActive: true}
	req := dto.CreateBeatRequest{BeatCode: "ND-07", NumberOfOperators: 3}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, location.LocationID).Return(location, nil).Once()
	suite.mockBeatRepo.On("SaveBeat", ctx, mock.MatchedBy(func(b domain.Beat) bool {
		return b.BeatCode == "ND-07" && b.LocationID == location.LocationID && b.NumberOfOperators == 3 && b.IsActive
	})).Return(nil).Once()

	beat, err := suite.service.CreateBeat(ctx, suite.manager.AccountID, location.LocationID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(beat)
	suite.mockBeatRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestCreateBeat_InactiveLocationRejected() {
	ctx := context.Background()
	location := &domain.Location{LocationID: uuid.NewString(), Name: "Closed Site", IsActive: false}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, location.LocationID).Return(location, nil).Once()

	beat, err := suite.service.CreateBeat(ctx, suite.manager.AccountID, location.LocationID, dto.CreateBeatRequest{BeatCode: "C-01", NumberOfOperators: 1})

	suite.Require().Error(err)
	suite.Nil(beat)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBeatRepo.AssertNotCalled(suite.T(), "SaveBeat", mock.Anything, mock.Anything)
}

// --- ReassignSupervisorLocation ---

func (suite *HierarchyServiceTestSuite) TestReassignSupervisorLocation_Success() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	newLocationID := uuid.NewString()
	updated := *record
	updated.LocationID = &newLocationID

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, newLocationID).Return(&domain.Location{LocationID: newLocationID, IsActive: true}, nil).Once()
	suite.mockSupervisorRepo.On("UpdateLocation", ctx, record.SupervisorRecordID, &newLocationID, suite.manager.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(&updated, nil).Once()

	result, err := suite.service.ReassignSupervisorLocation(ctx, suite.manager.AccountID, record.SupervisorRecordID, &newLocationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(&newLocationID, result.LocationID)
	suite.mockSupervisorRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestReassignSupervisorLocation_NilLocationUnbinds() {
	ctx := context.Background()
	locationID := uuid.NewString()
	record := suite.approvedRecord(domain.Supervisor, &locationID)
	updated := *record
	updated.LocationID = nil

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()
	suite.mockSupervisorRepo.On("UpdateLocation", ctx, record.SupervisorRecordID, (*string)(nil), suite.manager.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(&updated, nil).Once()

	result, err := suite.service.ReassignSupervisorLocation(ctx, suite.manager.AccountID, record.SupervisorRecordID, nil)

	suite.Require().NoError(err)
	suite.Nil(result.LocationID)
	suite.mockLocationRepo.AssertNotCalled(suite.T(), "FindLocationByID", mock.Anything, mock.Anything)
}

func (suite *HierarchyServiceTestSuite) TestReassignSupervisorLocation_PendingRecordIsInvalidState() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	record.ApprovalStatus = domain.ApprovalPending
	newLocationID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	result, err := suite.service.ReassignSupervisorLocation(ctx, suite.manager.AccountID, record.SupervisorRecordID, &newLocationID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockSupervisorRepo.AssertNotCalled(suite.T(), "UpdateLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ReassignGeneralSupervisor ---

func (suite *HierarchyServiceTestSuite) TestReassignGeneralSupervisor_Success() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	target := suite.approvedRecord(domain.GeneralSupervisor, nil)
	updated := *record
	updated.GeneralSupervisorID = &target.SupervisorRecordID

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, target.SupervisorRecordID).Return(target, nil).Once()
	suite.mockSupervisorRepo.On("UpdateGeneralSupervisor", ctx, record.SupervisorRecordID, &target.SupervisorRecordID, suite.manager.AccountID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(&updated, nil).Once()

	result, err := suite.service.ReassignGeneralSupervisor(ctx, suite.manager.AccountID, record.SupervisorRecordID, &target.SupervisorRecordID)

	suite.Require().NoError(err)
	suite.Equal(&target.SupervisorRecordID, result.GeneralSupervisorID)
	suite.mockSupervisorRepo.AssertExpectations(suite.T())
}

func (suite *HierarchyServiceTestSuite) TestReassignGeneralSupervisor_TargetNotGeneralSupervisorRejected() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	target := suite.approvedRecord(domain.Supervisor, nil)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, target.SupervisorRecordID).Return(target, nil).Once()

	result, err := suite.service.ReassignGeneralSupervisor(ctx, suite.manager.AccountID, record.SupervisorRecordID, &target.SupervisorRecordID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSupervisorRepo.AssertNotCalled(suite.T(), "UpdateGeneralSupervisor", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HierarchyServiceTestSuite) TestReassignGeneralSupervisor_GeneralSupervisorRecordRejected() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.GeneralSupervisor, nil)
	targetID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()

	result, err := suite.service.ReassignGeneralSupervisor(ctx, suite.manager.AccountID, record.SupervisorRecordID, &targetID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *HierarchyServiceTestSuite) TestReassignGeneralSupervisor_SelfEdgeIsCycle() {
	ctx := context.Background()
	record := suite.approvedRecord(domain.Supervisor, nil)
	// A record posing as its own general supervisor: the walk must refuse the
	// edge rather than loop.
	self := *record
	self.SupervisorType = domain.GeneralSupervisor

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.manager.AccountID).Return(suite.manager, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, record.SupervisorRecordID).Return(record, nil).Once()
	suite.mockSupervisorRepo.On("FindSupervisorRecordByID", ctx, self.SupervisorRecordID).Return(&self, nil).Maybe()

	result, err := suite.service.ReassignGeneralSupervisor(ctx, suite.manager.AccountID, record.SupervisorRecordID, &record.SupervisorRecordID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSupervisorRepo.AssertNotCalled(suite.T(), "UpdateGeneralSupervisor", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *HierarchyServiceTestSuite) TestGetApprovedSupervisors_FiltersByLocation() {
	ctx := context.Background()
	locationID := uuid.NewString()
	expected := []domain.SupervisorRecord{*suite.approvedRecord(domain.Supervisor, &locationID)}

	suite.mockSupervisorRepo.On("FindApprovedRecords", ctx, domain.Supervisor, &locationID).Return(expected, nil).Once()

	records, err := suite.service.GetApprovedSupervisors(ctx, &locationID)

	suite.Require().NoError(err)
	suite.Equal(expected, records)
}

func (suite *HierarchyServiceTestSuite) TestGetBeatsByLocation_UnknownLocationIsNotFound() {
	ctx := context.Background()
	locationID := uuid.NewString()

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(nil, apperrors.ErrNotFound).Once()

	beats, err := suite.service.GetBeatsByLocation(ctx, locationID)

	suite.Require().Error(err)
	suite.Nil(beats)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBeatRepo.AssertNotCalled(suite.T(), "FindBeatsByLocation", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestHierarchyService(t *testing.T) {
	suite.Run(t, new(HierarchyServiceTestSuite))
}
