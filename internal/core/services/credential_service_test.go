package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/core/services"
	"github.com/SecuForce/guard_workforce_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CredentialServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.CredentialIssuerSvc
	account         domain.Account
}

func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewCredentialService(suite.mockAccountRepo, "GRD")
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		Email:     "new.supervisor@example.com",
		Role:      domain.RoleSupervisor,
	}
}

func (suite *CredentialServiceTestSuite) TestIssue_Success() {
	ctx := context.Background()

	suite.mockAccountRepo.On("EmployeeIDExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	creds, hash, err := suite.service.Issue(ctx, suite.account)

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(creds.EmployeeID, "GRD-"), "employee ID should carry the configured prefix: %s", creds.EmployeeID)
	suite.Len(creds.EmployeeID, len("GRD-")+7)
	suite.Equal(suite.account.Email, creds.Email)
	suite.NotEmpty(creds.TemporaryPassword)
	suite.NotEqual(creds.TemporaryPassword, hash)
	suite.True(utils.CheckPasswordHash(creds.TemporaryPassword, hash))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestIssue_RetriesOnEmployeeIDCollision() {
	ctx := context.Background()

	suite.mockAccountRepo.On("EmployeeIDExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockAccountRepo.On("EmployeeIDExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	creds, hash, err := suite.service.Issue(ctx, suite.account)

	suite.Require().NoError(err)
	suite.NotEmpty(creds.EmployeeID)
	suite.NotEmpty(hash)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "EmployeeIDExists", 2)
}

func (suite *CredentialServiceTestSuite) TestIssue_GivesUpAfterExhaustedRetries() {
	ctx := context.Background()

	suite.mockAccountRepo.On("EmployeeIDExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Times(5)

	creds, hash, err := suite.service.Issue(ctx, suite.account)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(creds.EmployeeID)
	suite.Empty(hash)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestIssue_UniquenessCheckFailureSurfaces() {
	ctx := context.Background()

	suite.mockAccountRepo.On("EmployeeIDExists", ctx, mock.AnythingOfType("string")).Return(false, assert.AnError).Once()

	_, _, err := suite.service.Issue(ctx, suite.account)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "uniqueness")
}

// --- Run Suite ---
func TestCredentialService(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}
