package models

import (
	"time"
)

// Account is the local mirror of an aggregator-reported account.
// ExternalAccountID is the upsert key and is globally unique across the store.
// Rows are mutated only by the sync orchestrator's merge step.
type Account struct {
	ID                string    `json:"id"`
	UserID            int64     `json:"userId"`
	ItemID            string    `json:"itemId"`
	ExternalAccountID string    `json:"externalAccountId"`
	Name              string    `json:"name"`
	AccountType       string    `json:"accountType"` // depository, investment, credit, loan
	Subtype           string    `json:"subtype,omitempty"`
	CurrentBalance    float64   `json:"currentBalance"`
	AvailableBalance  *float64  `json:"availableBalance,omitempty"`
	LastSyncedAt      time.Time `json:"lastSyncedAt"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type UpsertAccountParams struct {
	UserID            int64
	ItemID            string
	ExternalAccountID string
	Name              string
	AccountType       string
	Subtype           string
	CurrentBalance    float64
	AvailableBalance  *float64
}

// BalanceSample is one append-only point in an account's balance time series.
// Samples are never updated or merged; one row is written per successful sync.
type BalanceSample struct {
	ID        int64     `json:"id"`
	AccountID string    `json:"accountId"`
	Balance   float64   `json:"balance"`
	SampledAt time.Time `json:"sampledAt"`
}
