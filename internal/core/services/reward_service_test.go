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

// --- Mock UploadRepository ---
type MockUploadRepository struct {
	mock.Mock
}

// Ensure MockUploadRepository implements portsrepo.UploadReader
var _ portsrepo.UploadReader = (*MockUploadRepository)(nil)

func (m *MockUploadRepository) FindUploadByID(ctx context.Context, uploadID string) (*domain.Upload, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

// Ensure MockLedgerService implements portssvc.LedgerSvcFacade
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) AdjustManual(ctx context.Context, userID string, amount int64, reason, actorID string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, userID, amount, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

func (m *MockLedgerService) RewardUpload(ctx context.Context, userID string, amount int64, uploadID string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, userID, amount, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

func (m *MockLedgerService) Redeem(ctx context.Context, userID, documentID string, price int64) (*domain.RedemptionGrant, error) {
	args := m.Called(ctx, userID, documentID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedemptionGrant), args.Error(1)
}

// --- Test Suite ---
type RewardServiceTestSuite struct {
	suite.Suite
	mockUploadRepo *MockUploadRepository
	mockLedger     *MockLedgerService
	service        portssvc.RewardSvcFacade
}

func (suite *RewardServiceTestSuite) SetupTest() {
	suite.mockUploadRepo = new(MockUploadRepository)
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewRewardService(suite.mockUploadRepo, suite.mockLedger)
}

func TestRewardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RewardServiceTestSuite))
}

func (suite *RewardServiceTestSuite) TestRewardApprovedUploadSuccess() {
	ctx := context.Background()
	uploadID := uuid.NewString()
	userID := uuid.NewString()

	upload := &domain.Upload{
		UploadID:     uploadID,
		UserID:       userID,
		Status:       domain.UploadApproved,
		RewardPoints: 5,
		CreatedAt:    time.Now().UTC(),
	}
	expected := &domain.AuditEntry{
		AuditID:      uuid.NewString(),
		UserID:       userID,
		NewBalance:   5,
		ChangeAmount: 5,
		ActionType:   domain.ActionUploadReward,
	}

	suite.mockUploadRepo.On("FindUploadByID", ctx, uploadID).Return(upload, nil).Once()
	suite.mockLedger.On("RewardUpload", ctx, userID, int64(5), uploadID).Return(expected, nil).Once()

	entry, err := suite.service.RewardApprovedUpload(ctx, uploadID)

	suite.Require().NoError(err)
	suite.Equal(expected, entry)
	suite.mockUploadRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *RewardServiceTestSuite) TestRewardApprovedUploadNotFound() {
	ctx := context.Background()
	uploadID := uuid.NewString()

	suite.mockUploadRepo.On("FindUploadByID", ctx, uploadID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RewardApprovedUpload(ctx, uploadID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "RewardUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RewardServiceTestSuite) TestRewardApprovedUploadRejectsPending() {
	ctx := context.Background()
	uploadID := uuid.NewString()

	upload := &domain.Upload{
		UploadID:     uploadID,
		UserID:       uuid.NewString(),
		Status:       domain.UploadPending,
		RewardPoints: 5,
	}
	suite.mockUploadRepo.On("FindUploadByID", ctx, uploadID).Return(upload, nil).Once()

	_, err := suite.service.RewardApprovedUpload(ctx, uploadID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "RewardUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RewardServiceTestSuite) TestRewardApprovedUploadPropagatesDuplicate() {
	ctx := context.Background()
	uploadID := uuid.NewString()
	userID := uuid.NewString()

	upload := &domain.Upload{
		UploadID:     uploadID,
		UserID:       userID,
		Status:       domain.UploadApproved,
		RewardPoints: 5,
	}
	suite.mockUploadRepo.On("FindUploadByID", ctx, uploadID).Return(upload, nil).Once()
	suite.mockLedger.On("RewardUpload", ctx, userID, int64(5), uploadID).Return(nil, apperrors.ErrAlreadyRewarded).Once()

	_, err := suite.service.RewardApprovedUpload(ctx, uploadID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyRewarded)
}

func (suite *RewardServiceTestSuite) TestRewardApprovedUploadRequiresID() {
	ctx := context.Background()

	_, err := suite.service.RewardApprovedUpload(ctx, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUploadRepo.AssertNotCalled(suite.T(), "FindUploadByID", mock.Anything, mock.Anything)
}
