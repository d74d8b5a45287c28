package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/dto"
	"github.com/docpoints/docpoints_backend/internal/handlers"
	"github.com/docpoints/docpoints_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RedemptionService ---
type MockRedemptionService struct {
	mock.Mock
}

func (m *MockRedemptionService) RedeemDocument(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedemptionGrant), args.Error(1)
}

func (m *MockRedemptionService) FindGrant(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedemptionGrant), args.Error(1)
}

func (m *MockRedemptionService) ListUserGrants(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.RedemptionGrant, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.RedemptionGrant), args.Get(1).(*string), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.RedemptionSvcFacade = (*MockRedemptionService)(nil)

// --- Test Suite ---
type RedemptionHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockRedemptionService *MockRedemptionService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *RedemptionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "docpoints-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

// noopLimiter stands in for the rate-limit middleware on the redeem route.
func noopLimiter(c *gin.Context) {
	c.Next()
}

func (suite *RedemptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRedemptionService = new(MockRedemptionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterRedemptionRoutes(v1, suite.mockRedemptionService, noopLimiter)
}

func TestRedemptionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RedemptionHandlerTestSuite))
}

func (suite *RedemptionHandlerTestSuite) performRedeem(userID, documentID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/redeem", documentID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_Success() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	expectedGrant := &domain.RedemptionGrant{
		UserID:          userID,
		DocumentID:      documentID,
		PointsPaid:      7,
		PreviousBalance: 10,
		NewBalance:      3,
		CreatedAt:       time.Now().UTC(),
	}
	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(expectedGrant, nil).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RedemptionGrantResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.Require().NoError(err)
	suite.Equal(documentID, resp.DocumentID)
	suite.Equal(int64(7), resp.PointsPaid)
	suite.Equal(int64(3), resp.NewBalance)
	suite.mockRedemptionService.AssertExpectations(suite.T())
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_InsufficientPoints() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(nil, apperrors.ErrInsufficientPoints).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusPaymentRequired, w.Code)
	suite.mockRedemptionService.AssertExpectations(suite.T())
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_AlreadyRedeemed() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(nil, apperrors.ErrAlreadyRedeemed).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_UnknownDocument() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_ContentionExhausted() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(nil, apperrors.ErrConcurrencyExhausted).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_RollbackFailureIsInternal() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("RedeemDocument", mock.Anything, userID, documentID).Return(nil, apperrors.ErrRollbackFailed).Once()

	w := suite.performRedeem(userID, documentID)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *RedemptionHandlerTestSuite) TestRedeemDocument_Unauthorized() {
	documentID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%s/redeem", documentID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRedemptionService.AssertNotCalled(suite.T(), "RedeemDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RedemptionHandlerTestSuite) TestGetRedemption_NotRedeemed() {
	userID := uuid.NewString()
	documentID := uuid.NewString()

	suite.mockRedemptionService.On("FindGrant", mock.Anything, userID, documentID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/documents/%s/redemption", documentID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RedemptionHandlerTestSuite) TestListGrants_Success() {
	userID := uuid.NewString()

	grants := []domain.RedemptionGrant{
		{UserID: userID, DocumentID: uuid.NewString(), PointsPaid: 7, NewBalance: 3},
	}
	suite.mockRedemptionService.On("ListUserGrants", mock.Anything, userID, 0, (*string)(nil)).Return(grants, (*string)(nil), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/points/grants", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListGrantsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Grants, 1)
	suite.Equal(int64(7), resp.Grants[0].PointsPaid)
}
