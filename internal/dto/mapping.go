package dto

import "github.com/docpoints/docpoints_backend/internal/core/domain"

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse DTO
func ToAuditEntryResponse(entry *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AuditID:         entry.AuditID,
		UserID:          entry.UserID,
		PreviousBalance: entry.PreviousBalance,
		NewBalance:      entry.NewBalance,
		ChangeAmount:    entry.ChangeAmount,
		ActionType:      entry.ActionType,
		Reason:          entry.Reason,
		ActorID:         entry.ActorID,
		RelatedEntityID: entry.RelatedEntityID,
		RolledBack:      entry.RolledBack,
		CreatedAt:       entry.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry to []AuditEntryResponse.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToAuditEntryResponse(&entry)
	}
	return responses
}

// ToRedemptionGrantResponse converts a domain.RedemptionGrant to its DTO
func ToRedemptionGrantResponse(grant *domain.RedemptionGrant) RedemptionGrantResponse {
	return RedemptionGrantResponse{
		UserID:          grant.UserID,
		DocumentID:      grant.DocumentID,
		PointsPaid:      grant.PointsPaid,
		PreviousBalance: grant.PreviousBalance,
		NewBalance:      grant.NewBalance,
		CreatedAt:       grant.CreatedAt,
	}
}

// ToRedemptionGrantResponses converts a slice of grants to DTOs.
func ToRedemptionGrantResponses(grants []domain.RedemptionGrant) []RedemptionGrantResponse {
	responses := make([]RedemptionGrantResponse, len(grants))
	for i, grant := range grants {
		responses[i] = ToRedemptionGrantResponse(&grant)
	}
	return responses
}
