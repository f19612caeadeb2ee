// Package sync provides domain services for mirroring aggregator data locally.
package sync

import "time"

// ItemError records a per-item failure during a sync run. One item failing
// never aborts the run; callers receive every failure alongside the work that
// did complete.
type ItemError struct {
	ItemID string `json:"itemId"`
	Error  string `json:"error"`
}

// AccountSyncResult contains the results of an account sync operation
type AccountSyncResult struct {
	UserID      int64       `json:"userId"`
	ItemsFound  int         `json:"itemsFound"`
	TotalSynced int         `json:"syncedCount"`
	ItemErrors  []ItemError `json:"errors"`
}

// TransactionSyncResult contains the results of a transaction sync operation
type TransactionSyncResult struct {
	UserID      int64       `json:"userId"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	TotalSynced int         `json:"transactionCount"`
	Skipped     int         `json:"skipped"`
	ItemErrors  []ItemError `json:"errors"`
}
