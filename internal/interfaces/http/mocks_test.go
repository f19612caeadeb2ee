package http

import (
	"context"
	"time"

	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/models"
)

// MockClient implements aggregator.ClientInterface
type MockClient struct {
	ListAccountsFunc     func(ctx context.Context, accessToken string) ([]aggregator.Account, error)
	ListTransactionsFunc func(ctx context.Context, accessToken string, start, end time.Time) ([]aggregator.Transaction, error)
	RevokeAccessFunc     func(ctx context.Context, accessToken string) error
}

func (m *MockClient) ListAccounts(ctx context.Context, accessToken string) ([]aggregator.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx, accessToken)
	}
	return nil, nil
}

func (m *MockClient) ListTransactions(ctx context.Context, accessToken string, start, end time.Time) ([]aggregator.Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, accessToken, start, end)
	}
	return nil, nil
}

func (m *MockClient) RevokeAccess(ctx context.Context, accessToken string) error {
	if m.RevokeAccessFunc != nil {
		return m.RevokeAccessFunc(ctx, accessToken)
	}
	return nil
}

// MockItemRepo implements models.ItemRepository
type MockItemRepo struct {
	CreateFunc       func(ctx context.Context, params models.CreateItemParams) (*models.Item, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.Item, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*models.Item, error)
}

func (m *MockItemRepo) Create(ctx context.Context, params models.CreateItemParams) (*models.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *MockItemRepo) ListConnectedByUserID(ctx context.Context, userID int64) ([]*models.Item, error) {
	return nil, nil
}
func (m *MockItemRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Item, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}
func (m *MockItemRepo) ListUserIDsWithConnectedItems(ctx context.Context) ([]int64, error) {
	return nil, nil
}
func (m *MockItemRepo) SetStatus(ctx context.Context, id string, status models.ItemStatus) error {
	return nil
}
func (m *MockItemRepo) Delete(ctx context.Context, id string) error { return nil }

// MockAccountRepo implements models.AccountRepository
type MockAccountRepo struct{}

func (m *MockAccountRepo) Upsert(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error) {
	return &models.Account{}, nil
}
func (m *MockAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	return nil, nil
}
func (m *MockAccountRepo) ListByItemID(ctx context.Context, itemID string) ([]*models.Account, error) {
	return nil, nil
}
func (m *MockAccountRepo) DeleteByItemID(ctx context.Context, itemID string) error { return nil }
func (m *MockAccountRepo) DeleteByUserID(ctx context.Context, userID int64) error { return nil }

// MockBalanceRepo implements models.BalanceHistoryRepository
type MockBalanceRepo struct{}

func (m *MockBalanceRepo) Append(ctx context.Context, accountID string, balance float64) (*models.BalanceSample, error) {
	return &models.BalanceSample{}, nil
}

// MockTransactionRepo implements models.TransactionRepository
type MockTransactionRepo struct {
	ListInRangeFunc func(ctx context.Context, userID int64, start, end time.Time) ([]*models.Transaction, error)
}

func (m *MockTransactionRepo) Upsert(ctx context.Context, params models.UpsertTransactionParams) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}
func (m *MockTransactionRepo) GetByExternalID(ctx context.Context, externalTransactionID string) (*models.Transaction, error) {
	return nil, nil
}
func (m *MockTransactionRepo) ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.Transaction, error) {
	if m.ListInRangeFunc != nil {
		return m.ListInRangeFunc(ctx, userID, start, end)
	}
	return nil, nil
}
func (m *MockTransactionRepo) DeleteByItemID(ctx context.Context, itemID string) error { return nil }
func (m *MockTransactionRepo) DeleteByUserID(ctx context.Context, userID int64) error { return nil }

// MockSyncStatusRepo implements models.SyncStatusRepository
type MockSyncStatusRepo struct{}

func (m *MockSyncStatusRepo) Upsert(ctx context.Context, params models.UpsertSyncStatusParams) (*models.SyncStatus, error) {
	return &models.SyncStatus{}, nil
}
func (m *MockSyncStatusRepo) DeleteByItemID(ctx context.Context, itemID string) error { return nil }
func (m *MockSyncStatusRepo) DeleteByUserID(ctx context.Context, userID int64) error { return nil }

// MockDeviceTokenRepo implements models.DeviceTokenRepository
type MockDeviceTokenRepo struct {
	UpsertFunc func(ctx context.Context, userID int64, token string) (*models.DeviceToken, error)
}

func (m *MockDeviceTokenRepo) Upsert(ctx context.Context, userID int64, token string) (*models.DeviceToken, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, token)
	}
	return &models.DeviceToken{}, nil
}
func (m *MockDeviceTokenRepo) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]string, error) {
	return nil, nil
}
func (m *MockDeviceTokenRepo) Deactivate(ctx context.Context, token string) error { return nil }
func (m *MockDeviceTokenRepo) DeleteByUserID(ctx context.Context, userID int64) error { return nil }
