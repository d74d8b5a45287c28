package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

// Ensure MockDocumentRepository implements portsrepo.DocumentReader
var _ portsrepo.DocumentReader = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// --- Test Suite ---
type RedemptionServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo   *MockDocumentRepository
	mockRedemptionRepo *MockRedemptionRepository
	mockLedger         *MockLedgerService
	service            portssvc.RedemptionSvcFacade

	userID string
}

func (suite *RedemptionServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockRedemptionRepo = new(MockRedemptionRepository)
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewRedemptionService(suite.mockDocumentRepo, suite.mockRedemptionRepo, suite.mockLedger)

	suite.userID = uuid.NewString()
}

func TestRedemptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RedemptionServiceTestSuite))
}

func (suite *RedemptionServiceTestSuite) TestRedeemDocumentSuccess() {
	ctx := context.Background()
	documentID := uuid.NewString()

	document := &domain.Document{
		DocumentID:  documentID,
		Title:       "Annual Market Report",
		PricePoints: 7,
		CreatedAt:   time.Now().UTC(),
	}
	expected := &domain.RedemptionGrant{
		UserID:          suite.userID,
		DocumentID:      documentID,
		PointsPaid:      7,
		PreviousBalance: 10,
		NewBalance:      3,
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(document, nil).Once()
	suite.mockLedger.On("Redeem", ctx, suite.userID, documentID, int64(7)).Return(expected, nil).Once()

	grant, err := suite.service.RedeemDocument(ctx, suite.userID, documentID)

	suite.Require().NoError(err)
	suite.Equal(expected, grant)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *RedemptionServiceTestSuite) TestRedeemDocumentUnknownDocument() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RedeemDocument(ctx, suite.userID, documentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RedemptionServiceTestSuite) TestRedeemDocumentPropagatesInsufficientPoints() {
	ctx := context.Background()
	documentID := uuid.NewString()

	document := &domain.Document{DocumentID: documentID, PricePoints: 8}
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(document, nil).Once()
	suite.mockLedger.On("Redeem", ctx, suite.userID, documentID, int64(8)).Return(nil, apperrors.ErrInsufficientPoints).Once()

	_, err := suite.service.RedeemDocument(ctx, suite.userID, documentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientPoints)
}

func (suite *RedemptionServiceTestSuite) TestRedeemDocumentRequiresIDs() {
	ctx := context.Background()

	_, err := suite.service.RedeemDocument(ctx, "", uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RedeemDocument(ctx, suite.userID, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindDocumentByID", mock.Anything, mock.Anything)
}

func (suite *RedemptionServiceTestSuite) TestFindGrantSuccess() {
	ctx := context.Background()
	documentID := uuid.NewString()

	expected := &domain.RedemptionGrant{UserID: suite.userID, DocumentID: documentID, PointsPaid: 7}
	suite.mockRedemptionRepo.On("FindGrant", ctx, suite.userID, documentID).Return(expected, nil).Once()

	grant, err := suite.service.FindGrant(ctx, suite.userID, documentID)

	suite.Require().NoError(err)
	suite.Equal(expected, grant)
}

func (suite *RedemptionServiceTestSuite) TestFindGrantNotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockRedemptionRepo.On("FindGrant", ctx, suite.userID, documentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.FindGrant(ctx, suite.userID, documentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RedemptionServiceTestSuite) TestListUserGrantsDefaultsLimit() {
	ctx := context.Background()

	grants := []domain.RedemptionGrant{{UserID: suite.userID, DocumentID: uuid.NewString()}}
	suite.mockRedemptionRepo.On("ListGrantsByUser", ctx, suite.userID, 20, (*string)(nil)).Return(grants, (*string)(nil), nil).Once()

	got, next, err := suite.service.ListUserGrants(ctx, suite.userID, 0, nil)

	suite.Require().NoError(err)
	suite.Nil(next)
	suite.Equal(grants, got)
	suite.mockRedemptionRepo.AssertExpectations(suite.T())
}
