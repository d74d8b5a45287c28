package dto

import "time"

// BalanceResponse defines the data returned for a balance lookup.
type BalanceResponse struct {
	UserID string `json:"userID"`
	Points int64  `json:"points"`
}

// AdjustPointsRequest defines the data needed for an admin point adjustment.
// Amount is signed; the reason is mandatory and lands in the audit log.
type AdjustPointsRequest struct {
	UserID string `json:"userID" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required,notblank,max=500"`
}

// RedemptionGrantResponse defines the data returned for a redemption grant.
type RedemptionGrantResponse struct {
	UserID          string    `json:"userID"`
	DocumentID      string    `json:"documentID"`
	PointsPaid      int64     `json:"pointsPaid"`
	PreviousBalance int64     `json:"previousBalance"`
	NewBalance      int64     `json:"newBalance"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListGrantsResponse wraps a page of grants with its pagination token.
type ListGrantsResponse struct {
	Grants    []RedemptionGrantResponse `json:"grants"`
	NextToken *string                   `json:"nextToken,omitempty"`
}
