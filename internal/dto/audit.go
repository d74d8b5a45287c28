package dto

import (
	"time"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// AuditEntryResponse defines the data returned for one audit entry.
type AuditEntryResponse struct {
	AuditID         string                 `json:"auditID"`
	UserID          string                 `json:"userID"`
	PreviousBalance int64                  `json:"previousBalance"`
	NewBalance      int64                  `json:"newBalance"`
	ChangeAmount    int64                  `json:"changeAmount"`
	ActionType      domain.AuditActionType `json:"actionType"`
	Reason          string                 `json:"reason,omitempty"`
	ActorID         string                 `json:"actorID"`
	RelatedEntityID string                 `json:"relatedEntityID,omitempty"`
	RolledBack      bool                   `json:"rolledBack,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ListAuditResponse wraps a page of audit entries with its pagination token.
type ListAuditResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}
