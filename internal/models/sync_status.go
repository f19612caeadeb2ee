package models

import (
	"time"
)

// SyncStatus records the outcome of the latest transaction sync for one
// (user, item) pair. It is overwritten on every run, never appended.
type SyncStatus struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	ItemID           string    `json:"itemId"`
	LastSyncedAt     time.Time `json:"lastSyncedAt"`
	SyncStartDate    time.Time `json:"syncStartDate"`
	SyncEndDate      time.Time `json:"syncEndDate"`
	TransactionCount int       `json:"transactionCount"`
}

type UpsertSyncStatusParams struct {
	UserID           int64
	ItemID           string
	SyncStartDate    time.Time
	SyncEndDate      time.Time
	TransactionCount int
}

// DeviceToken is an FCM registration token used to push degraded-sync and
// revocation notices to the user's devices.
type DeviceToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"token"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
