package domain

import "time"

// AuditActionType classifies the origin of a balance change.
type AuditActionType string

const (
	ActionManual       AuditActionType = "manual"
	ActionUploadReward AuditActionType = "upload_reward"
	ActionRedemption   AuditActionType = "redemption"
)

// SystemActorID is recorded as the actor for automated balance changes.
const SystemActorID = "system"

// AuditEntry is the immutable record of one committed balance change.
// Entries are append-only: they are written exactly once, inside the same
// logical transaction as the balance change they describe, and never updated
// or deleted. NewBalance - PreviousBalance always equals ChangeAmount.
type AuditEntry struct {
	AuditID         string          `json:"auditID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`
	PreviousBalance int64           `json:"previousBalance"`
	NewBalance      int64           `json:"newBalance"`
	ChangeAmount    int64           `json:"changeAmount"` // Signed
	ActionType      AuditActionType `json:"actionType"`
	Reason          string          `json:"reason"`  // Required for manual adjustments
	ActorID         string          `json:"actorID"` // Admin user ID, or SystemActorID
	RelatedEntityID string          `json:"relatedEntityID,omitempty"` // Document or upload ID
	RolledBack      bool            `json:"rolledBack"` // Marks zero-net compensation entries
	CreatedAt       time.Time       `json:"createdAt"`
}
