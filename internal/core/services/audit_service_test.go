package services_test

import (
	"context"
	"testing"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditRepository
	service       portssvc.AuditReaderSvc

	userID string
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo)

	suite.userID = uuid.NewString()
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (suite *AuditServiceTestSuite) TestListUserHistorySuccess() {
	ctx := context.Background()

	entries := []domain.AuditEntry{{AuditID: uuid.NewString(), UserID: suite.userID, ChangeAmount: 5}}
	token := "next-page"
	suite.mockAuditRepo.On("ListEntriesByUser", ctx, suite.userID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	got, next, err := suite.service.ListUserHistory(ctx, suite.userID, 0, nil)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.Require().NotNil(next)
	suite.Equal(token, *next)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestListUserHistoryClampsLimit() {
	ctx := context.Background()

	suite.mockAuditRepo.On("ListEntriesByUser", ctx, suite.userID, 100, (*string)(nil)).Return([]domain.AuditEntry{}, (*string)(nil), nil).Once()

	_, _, err := suite.service.ListUserHistory(ctx, suite.userID, 500, nil)

	suite.Require().NoError(err)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestListUserHistoryRequiresUserID() {
	ctx := context.Background()

	_, _, err := suite.service.ListUserHistory(ctx, "", 20, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListEntriesByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestListAuditWithFilter() {
	ctx := context.Background()

	filter := portsrepo.AuditListFilter{UserID: suite.userID, ActionType: domain.ActionRedemption}
	entries := []domain.AuditEntry{{AuditID: uuid.NewString(), UserID: suite.userID, ActionType: domain.ActionRedemption}}
	suite.mockAuditRepo.On("ListEntries", ctx, filter, 50, (*string)(nil)).Return(entries, (*string)(nil), nil).Once()

	got, _, err := suite.service.ListAudit(ctx, filter, 50, nil)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestListAuditRejectsUnknownActionType() {
	ctx := context.Background()

	filter := portsrepo.AuditListFilter{ActionType: "chargeback"}

	_, _, err := suite.service.ListAudit(ctx, filter, 20, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
