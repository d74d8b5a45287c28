package domain

import "time"

// RedemptionGrant is the durable proof that a user has paid for a document.
// At most one grant ever exists per (UserID, DocumentID) pair, and a grant is
// never deleted: download access is permanent once paid for.
type RedemptionGrant struct {
	UserID          string    `json:"userID"`     // Composite PK with DocumentID
	DocumentID      string    `json:"documentID"`
	PointsPaid      int64     `json:"pointsPaid"`
	PreviousBalance int64     `json:"previousBalance"`
	NewBalance      int64     `json:"newBalance"`
	CreatedAt       time.Time `json:"createdAt"`
}
