package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/dto"
	"github.com/docpoints/docpoints_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// redemptionHandler handles HTTP requests for document redemptions.
type redemptionHandler struct {
	redemptionService portssvc.RedemptionSvcFacade
}

// newRedemptionHandler creates a new redemptionHandler.
func newRedemptionHandler(rs portssvc.RedemptionSvcFacade) *redemptionHandler {
	return &redemptionHandler{
		redemptionService: rs,
	}
}

// RegisterRedemptionRoutes registers routes related to redemptions. The
// redeem route additionally runs the provided rate-limit middleware.
func RegisterRedemptionRoutes(rg *gin.RouterGroup, redemptionService portssvc.RedemptionSvcFacade, redeemLimiter gin.HandlerFunc) {
	h := newRedemptionHandler(redemptionService)

	documents := rg.Group("/documents")
	{
		documents.POST("/:documentID/redeem", redeemLimiter, h.redeemDocument)
		documents.GET("/:documentID/redemption", h.getRedemption)
	}

	rg.GET("/points/grants", h.listGrants)
}

// redeemDocument godoc
// @Summary Redeem a document
// @Description Spends points to grant the logged-in user permanent download access to a document
// @Tags redemptions
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.RedemptionGrantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 402 {object} map[string]string "Not enough points"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Already redeemed or busy"
// @Failure 500 {object} map[string]string "Failed to redeem document"
// @Security BearerAuth
// @Router /documents/{documentID}/redeem [post]
func (h *redemptionHandler) redeemDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	documentID := c.Param("documentID")
	logger = logger.With(slog.String("document_id", documentID))

	grant, err := h.redemptionService.RedeemDocument(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case errors.Is(err, apperrors.ErrAlreadyRedeemed):
			c.JSON(http.StatusConflict, gin.H{"error": "You have already redeemed this document"})
		case errors.Is(err, apperrors.ErrInsufficientPoints):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Not enough points to redeem this document"})
		case errors.Is(err, apperrors.ErrConcurrencyExhausted):
			logger.Warn("Redemption contention exhausted retries")
			c.JSON(http.StatusConflict, gin.H{"error": "Your balance is busy, please try again"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Includes ErrRollbackFailed: operator attention, not caller detail.
			logger.Error("Failed to redeem document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem document"})
		}
		return
	}

	logger.Info("Document redeemed", slog.Int64("points_paid", grant.PointsPaid))
	grantResponse := dto.ToRedemptionGrantResponse(grant)
	c.JSON(http.StatusOK, grantResponse)
}

// getRedemption godoc
// @Summary Get redemption status for a document
// @Description Returns the logged-in user's grant for the document if one exists
// @Tags redemptions
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.RedemptionGrantResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No grant for this document"
// @Failure 500 {object} map[string]string "Failed to read redemption"
// @Security BearerAuth
// @Router /documents/{documentID}/redemption [get]
func (h *redemptionHandler) getRedemption(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	documentID := c.Param("documentID")

	grant, err := h.redemptionService.FindGrant(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not redeemed"})
			return
		}
		logger.Error("Failed to read redemption", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read redemption"})
		return
	}

	grantResponse := dto.ToRedemptionGrantResponse(grant)
	c.JSON(http.StatusOK, grantResponse)
}

// listGrants godoc
// @Summary List own redemption grants
// @Description Returns the logged-in user's redemption grants, newest first
// @Tags redemptions
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param next_token query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListGrantsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list grants"
// @Security BearerAuth
// @Router /points/grants [get]
func (h *redemptionHandler) listGrants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, nextToken := parsePageParams(c)

	grants, newNextToken, err := h.redemptionService.ListUserGrants(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list grants", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list grants"})
		return
	}

	c.JSON(http.StatusOK, dto.ListGrantsResponse{
		Grants:    dto.ToRedemptionGrantResponses(grants),
		NextToken: newNextToken,
	})
}
