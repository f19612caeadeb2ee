package models

import (
	"context"
	"time"
)

// ItemRepository defines data access for Items
type ItemRepository interface {
	Create(ctx context.Context, params CreateItemParams) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	ListConnectedByUserID(ctx context.Context, userID int64) ([]*Item, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Item, error)
	ListUserIDsWithConnectedItems(ctx context.Context) ([]int64, error)
	SetStatus(ctx context.Context, id string, status ItemStatus) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository defines data access for the account mirror
type AccountRepository interface {
	Upsert(ctx context.Context, params UpsertAccountParams) (*Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)
	ListByItemID(ctx context.Context, itemID string) ([]*Account, error)
	DeleteByItemID(ctx context.Context, itemID string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// BalanceHistoryRepository defines data access for the append-only balance log
type BalanceHistoryRepository interface {
	Append(ctx context.Context, accountID string, balance float64) (*BalanceSample, error)
}

// TransactionRepository defines data access for the transaction ledger
type TransactionRepository interface {
	Upsert(ctx context.Context, params UpsertTransactionParams) (*Transaction, error)
	GetByExternalID(ctx context.Context, externalTransactionID string) (*Transaction, error)
	ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*Transaction, error)
	DeleteByItemID(ctx context.Context, itemID string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// SyncStatusRepository defines data access for per-item sync status rows
type SyncStatusRepository interface {
	Upsert(ctx context.Context, params UpsertSyncStatusParams) (*SyncStatus, error)
	DeleteByItemID(ctx context.Context, itemID string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// DeviceTokenRepository defines data access for FCM device tokens
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, userID int64, token string) (*DeviceToken, error)
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]string, error)
	Deactivate(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
