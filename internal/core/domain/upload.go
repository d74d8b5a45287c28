package domain

import "time"

// UploadStatus is the review state assigned by the external approval workflow.
type UploadStatus string

const (
	UploadPending  UploadStatus = "pending"
	UploadApproved UploadStatus = "approved"
	UploadRejected UploadStatus = "rejected"
)

// Upload is the read model of a contributed data file, owned by the external
// upload service. The reward amount is treated as an opaque non-negative
// integer decided by the reviewer side.
type Upload struct {
	UploadID     string       `json:"uploadID"` // Primary Key
	UserID       string       `json:"userID"`   // Contributor
	Status       UploadStatus `json:"status"`
	RewardPoints int64        `json:"rewardPoints"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// IsApproved reports whether the upload passed review.
func (u Upload) IsApproved() bool {
	return u.Status == UploadApproved
}
