package models

import (
	"time"
)

// ItemStatus tracks the lifecycle of a linked institution connection.
// Revocation is terminal: a revoked item is never loaded for sync again.
type ItemStatus string

const (
	ItemStatusConnected ItemStatus = "connected"
	ItemStatusRevoking  ItemStatus = "revoking"
	ItemStatusRevoked   ItemStatus = "revoked"
)

// Item represents a connection with a financial institution via the aggregator.
// One Item can have multiple Accounts (e.g., checking + brokerage from same bank).
// AccessCredential is stored encrypted and is only read by the sync orchestrator
// and the revocation manager.
type Item struct {
	ID               string     `json:"id"`
	UserID           int64      `json:"userId"`
	ExternalItemID   string     `json:"externalItemId"` // Aggregator's item id, unique per user
	AccessCredential string     `json:"-"`
	InstitutionName  string     `json:"institutionName"`
	InstitutionID    string     `json:"institutionId"`
	Status           ItemStatus `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type CreateItemParams struct {
	UserID           int64
	ExternalItemID   string
	AccessCredential string
	InstitutionName  string
	InstitutionID    string
}
