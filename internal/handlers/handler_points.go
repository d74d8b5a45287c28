package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/dto"
	"github.com/docpoints/docpoints_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pointsHandler handles HTTP requests for the caller's own point data.
type pointsHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	auditService  portssvc.AuditReaderSvc
}

// newPointsHandler creates a new pointsHandler.
func newPointsHandler(ls portssvc.LedgerSvcFacade, as portssvc.AuditReaderSvc) *pointsHandler {
	return &pointsHandler{
		ledgerService: ls,
		auditService:  as,
	}
}

// registerPointsRoutes registers routes related to the caller's points.
func registerPointsRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, auditService portssvc.AuditReaderSvc) {
	h := newPointsHandler(ledgerService, auditService)

	points := rg.Group("/points")
	{
		points.GET("/balance", h.getBalance)
		points.GET("/history", h.getHistory)
	}
}

// getBalance godoc
// @Summary Get current point balance
// @Description Returns the logged-in user's current point balance
// @Tags points
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read balance"
// @Security BearerAuth
// @Router /points/balance [get]
func (h *pointsHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	points, err := h.ledgerService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to read balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Points: points})
}

// getHistory godoc
// @Summary List own point history
// @Description Returns the logged-in user's audit entries, newest first
// @Tags points
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param next_token query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListAuditResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /points/history [get]
func (h *pointsHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, nextToken := parsePageParams(c)

	entries, newNextToken, err := h.auditService.ListUserHistory(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list point history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAuditResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: newNextToken,
	})
}

// parsePageParams reads the shared limit/next_token query parameters.
func parsePageParams(c *gin.Context) (int, *string) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	var nextToken *string
	if token := c.Query("next_token"); token != "" {
		nextToken = &token
	}

	return limit, nextToken
}
