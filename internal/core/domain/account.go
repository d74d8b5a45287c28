package domain

import "time"

// PointAccount represents a user's point balance within the core domain.
// An account is created implicitly, with a zero balance, the first time a
// balance-affecting event touches the user; it is never deleted.
type PointAccount struct {
	UserID        string    `json:"userID"`  // Primary Key, collaborator-issued user identifier
	Points        int64     `json:"points"`  // Current balance, never negative
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
