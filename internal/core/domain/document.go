package domain

import "time"

// Document is the read model of a catalog entry owned by the external
// document catalog service. Only the fields the ledger needs are mapped.
type Document struct {
	DocumentID  string    `json:"documentID"` // Primary Key
	Title       string    `json:"title"`
	PricePoints int64     `json:"pricePoints"` // Redemption price, non-negative
	CreatedAt   time.Time `json:"createdAt"`
}
