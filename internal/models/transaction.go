package models

import (
	"time"
)

// Transaction is a merge-upserted ledger row keyed by the aggregator's stable
// transaction id. Outflows are stored negative; the aggregator's positive-outflow
// convention is flipped before the row reaches the store.
type Transaction struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"userId"`
	AccountID             string    `json:"accountId"`
	ExternalTransactionID string    `json:"externalTransactionId"`
	Date                  time.Time `json:"date"`
	Amount                float64   `json:"amount"` // negative = outflow
	MerchantName          string    `json:"merchantName"`
	CategoryPrimary       string    `json:"categoryPrimary"`
	CategoryDetailed      string    `json:"categoryDetailed"`
	Pending               bool      `json:"pending"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type UpsertTransactionParams struct {
	UserID                int64
	AccountID             string
	ExternalTransactionID string
	Date                  time.Time
	Amount                float64
	MerchantName          string
	CategoryPrimary       string
	CategoryDetailed      string
	Pending               bool
}
