package sync

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
	CreateFunc                        func(ctx context.Context, params models.CreateItemParams) (*models.Item, error)
	GetByIDFunc                       func(ctx context.Context, id string) (*models.Item, error)
	ListConnectedByUserIDFunc         func(ctx context.Context, userID int64) ([]*models.Item, error)
	ListByUserIDFunc                  func(ctx context.Context, userID int64) ([]*models.Item, error)
	ListUserIDsWithConnectedItemsFunc func(ctx context.Context) ([]int64, error)
	SetStatusFunc                     func(ctx context.Context, id string, status models.ItemStatus) error
	DeleteFunc                        func(ctx context.Context, id string) error
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
	if m.ListConnectedByUserIDFunc != nil {
		return m.ListConnectedByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockItemRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Item, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockItemRepo) ListUserIDsWithConnectedItems(ctx context.Context) ([]int64, error) {
	if m.ListUserIDsWithConnectedItemsFunc != nil {
		return m.ListUserIDsWithConnectedItemsFunc(ctx)
	}
	return nil, nil
}

func (m *MockItemRepo) SetStatus(ctx context.Context, id string, status models.ItemStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockItemRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAccountRepo implements models.AccountRepository
type MockAccountRepo struct {
	UpsertFunc         func(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error)
	ListByUserIDFunc   func(ctx context.Context, userID int64) ([]*models.Account, error)
	ListByItemIDFunc   func(ctx context.Context, itemID string) ([]*models.Account, error)
	DeleteByItemIDFunc func(ctx context.Context, itemID string) error
	DeleteByUserIDFunc func(ctx context.Context, userID int64) error
}

func (m *MockAccountRepo) Upsert(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &models.Account{}, nil
}

func (m *MockAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountRepo) ListByItemID(ctx context.Context, itemID string) ([]*models.Account, error) {
	if m.ListByItemIDFunc != nil {
		return m.ListByItemIDFunc(ctx, itemID)
	}
	return nil, nil
}

func (m *MockAccountRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	if m.DeleteByItemIDFunc != nil {
		return m.DeleteByItemIDFunc(ctx, itemID)
	}
	return nil
}

func (m *MockAccountRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// MockBalanceRepo implements models.BalanceHistoryRepository
type MockBalanceRepo struct {
	AppendFunc func(ctx context.Context, accountID string, balance float64) (*models.BalanceSample, error)
}

func (m *MockBalanceRepo) Append(ctx context.Context, accountID string, balance float64) (*models.BalanceSample, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, accountID, balance)
	}
	return &models.BalanceSample{}, nil
}

// MockTransactionRepo implements models.TransactionRepository
type MockTransactionRepo struct {
	UpsertFunc          func(ctx context.Context, params models.UpsertTransactionParams) (*models.Transaction, error)
	GetByExternalIDFunc func(ctx context.Context, externalTransactionID string) (*models.Transaction, error)
	ListInRangeFunc     func(ctx context.Context, userID int64, start, end time.Time) ([]*models.Transaction, error)
	DeleteByItemIDFunc  func(ctx context.Context, itemID string) error
	DeleteByUserIDFunc  func(ctx context.Context, userID int64) error
}

func (m *MockTransactionRepo) Upsert(ctx context.Context, params models.UpsertTransactionParams) (*models.Transaction, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &models.Transaction{}, nil
}

func (m *MockTransactionRepo) GetByExternalID(ctx context.Context, externalTransactionID string) (*models.Transaction, error) {
	if m.GetByExternalIDFunc != nil {
		return m.GetByExternalIDFunc(ctx, externalTransactionID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.Transaction, error) {
	if m.ListInRangeFunc != nil {
		return m.ListInRangeFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockTransactionRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	if m.DeleteByItemIDFunc != nil {
		return m.DeleteByItemIDFunc(ctx, itemID)
	}
	return nil
}

func (m *MockTransactionRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// MockSyncStatusRepo implements models.SyncStatusRepository
type MockSyncStatusRepo struct {
	UpsertFunc         func(ctx context.Context, params models.UpsertSyncStatusParams) (*models.SyncStatus, error)
	DeleteByItemIDFunc func(ctx context.Context, itemID string) error
	DeleteByUserIDFunc func(ctx context.Context, userID int64) error
}

func (m *MockSyncStatusRepo) Upsert(ctx context.Context, params models.UpsertSyncStatusParams) (*models.SyncStatus, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, params)
	}
	return &models.SyncStatus{}, nil
}

func (m *MockSyncStatusRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	if m.DeleteByItemIDFunc != nil {
		return m.DeleteByItemIDFunc(ctx, itemID)
	}
	return nil
}

func (m *MockSyncStatusRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}
