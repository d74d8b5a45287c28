package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/dto"
	"github.com/docpoints/docpoints_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles admin-only HTTP requests: manual adjustments, reward
// triggers, and the global audit view.
type adminHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	rewardService portssvc.RewardSvcFacade
	auditService  portssvc.AuditReaderSvc
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(ls portssvc.LedgerSvcFacade, rs portssvc.RewardSvcFacade, as portssvc.AuditReaderSvc) *adminHandler {
	return &adminHandler{
		ledgerService: ls,
		rewardService: rs,
		auditService:  as,
	}
}

// registerAdminRoutes registers admin-only routes behind the admin gate.
func registerAdminRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, rewardService portssvc.RewardSvcFacade, auditService portssvc.AuditReaderSvc) {
	h := newAdminHandler(ledgerService, rewardService, auditService)

	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.POST("/points/adjustments", h.adjustPoints)
		admin.POST("/uploads/:uploadID/reward", h.rewardUpload)
		admin.GET("/audit", h.listAudit)
	}
}

// adjustPoints godoc
// @Summary Manually adjust a user's points
// @Description Applies a signed point adjustment to any user; the reason is recorded in the audit log
// @Tags admin
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustPointsRequest true "Adjustment details"
// @Success 200 {object} dto.AuditEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin privileges required"
// @Failure 409 {object} map[string]string "Balance busy"
// @Failure 422 {object} map[string]string "Adjustment would drive balance negative"
// @Failure 500 {object} map[string]string "Failed to adjust points"
// @Security BearerAuth
// @Router /admin/points/adjustments [post]
func (h *adminHandler) adjustPoints(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustPoints", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_user_id", req.UserID), slog.Int64("amount", req.Amount))
	logger.Info("Received manual point adjustment request")

	entry, err := h.ledgerService.AdjustManual(c.Request.Context(), req.UserID, req.Amount, req.Reason, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Adjustment would drive the balance negative"})
		case errors.Is(err, apperrors.ErrConcurrencyExhausted):
			logger.Warn("Adjustment contention exhausted retries")
			c.JSON(http.StatusConflict, gin.H{"error": "The balance is busy, please try again"})
		default:
			logger.Error("Failed to adjust points", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust points"})
		}
		return
	}

	entryResponse := dto.ToAuditEntryResponse(entry)
	c.JSON(http.StatusOK, entryResponse)
}

// rewardUpload godoc
// @Summary Credit the reward for an approved upload
// @Description Invoked by the upload-approval workflow once a reviewer approves an upload; credits its reward amount to the contributor at most once
// @Tags admin
// @Produce json
// @Param uploadID path string true "Upload ID"
// @Success 200 {object} dto.AuditEntryResponse
// @Failure 400 {object} map[string]string "Upload not approved"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin privileges required"
// @Failure 404 {object} map[string]string "Upload not found"
// @Failure 409 {object} map[string]string "Upload already rewarded"
// @Failure 500 {object} map[string]string "Failed to reward upload"
// @Security BearerAuth
// @Router /admin/uploads/{uploadID}/reward [post]
func (h *adminHandler) rewardUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	uploadID := c.Param("uploadID")
	logger = logger.With(slog.String("upload_id", uploadID))

	entry, err := h.rewardService.RewardApprovedUpload(c.Request.Context(), uploadID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		case errors.Is(err, apperrors.ErrAlreadyRewarded):
			c.JSON(http.StatusConflict, gin.H{"error": "Upload has already been rewarded"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConcurrencyExhausted):
			logger.Warn("Reward contention exhausted retries")
			c.JSON(http.StatusConflict, gin.H{"error": "The balance is busy, please try again"})
		default:
			logger.Error("Failed to reward upload", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reward upload"})
		}
		return
	}

	logger.Info("Upload rewarded", slog.Int64("amount", entry.ChangeAmount), slog.String("user_id", entry.UserID))
	entryResponse := dto.ToAuditEntryResponse(entry)
	c.JSON(http.StatusOK, entryResponse)
}

// listAudit godoc
// @Summary List audit entries across all users
// @Description Returns audit entries for all users, newest first, optionally filtered by user and action type
// @Tags admin
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param next_token query string false "Pagination token from a previous page"
// @Param user_id query string false "Filter by user ID"
// @Param action_type query string false "Filter by action type (manual, upload_reward, redemption)"
// @Success 200 {object} dto.ListAuditResponse
// @Failure 400 {object} map[string]string "Invalid filter or pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin privileges required"
// @Failure 500 {object} map[string]string "Failed to list audit entries"
// @Security BearerAuth
// @Router /admin/audit [get]
func (h *adminHandler) listAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, nextToken := parsePageParams(c)
	filter := portsrepo.AuditListFilter{
		UserID:     c.Query("user_id"),
		ActionType: domain.AuditActionType(c.Query("action_type")),
	}

	entries, newNextToken, err := h.auditService.ListAudit(c.Request.Context(), filter, limit, nextToken)
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
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAuditResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: newNextToken,
	})
}
