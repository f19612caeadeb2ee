package sync

import (
	"context"
	"errors"
	"testing"

	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/models"
)

func connectedItem(id string, userID int64) *models.Item {
	return &models.Item{
		ID:               id,
		UserID:           userID,
		ExternalItemID:   "ext-" + id,
		AccessCredential: "token-" + id,
		Status:           models.ItemStatusConnected,
	}
}

func TestSyncAccounts_NoItems(t *testing.T) {
	itemRepo := &MockItemRepo{
		ListConnectedByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Item, error) {
			return nil, nil
		},
	}

	svc := NewAccountSyncService(&MockClient{}, itemRepo, &MockAccountRepo{}, &MockBalanceRepo{})

	result, err := svc.SyncAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalSynced != 0 {
		t.Errorf("expected 0 synced, got %d", result.TotalSynced)
	}
	if len(result.ItemErrors) != 0 {
		t.Errorf("expected no item errors, got %v", result.ItemErrors)
	}
}

func TestSyncAccounts_MirrorsAndRecordsBalance(t *testing.T) {
	available := 900.0

	itemRepo := &MockItemRepo{
		ListConnectedByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Item, error) {
			return []*models.Item{connectedItem("item-1", 1)}, nil
		},
	}
	client := &MockClient{
		ListAccountsFunc: func(ctx context.Context, accessToken string) ([]aggregator.Account, error) {
			if accessToken != "token-item-1" {
				t.Errorf("expected item credential, got %q", accessToken)
			}
			return []aggregator.Account{
				{
					AccountID: "ext-acc-1",
					Name:      "Checking",
					Type:      "depository",
					Subtype:   "checking",
					Balances:  aggregator.Balances{Current: 1000.50, Available: &available},
				},
			}, nil
		},
	}

	var upserted models.UpsertAccountParams
	accountRepo := &MockAccountRepo{
		UpsertFunc: func(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error) {
			upserted = params
			return &models.Account{ID: "local-acc-1", CurrentBalance: params.CurrentBalance}, nil
		},
	}

	var sampleAccountID string
	var sampleBalance float64
	balanceRepo := &MockBalanceRepo{
		AppendFunc: func(ctx context.Context, accountID string, balance float64) (*models.BalanceSample, error) {
			sampleAccountID = accountID
			sampleBalance = balance
			return &models.BalanceSample{}, nil
		},
	}

	svc := NewAccountSyncService(client, itemRepo, accountRepo, balanceRepo)

	result, err := svc.SyncAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.TotalSynced != 1 {
		t.Errorf("expected 1 synced, got %d", result.TotalSynced)
	}
	if upserted.ExternalAccountID != "ext-acc-1" {
		t.Errorf("expected upsert keyed by external account id, got %q", upserted.ExternalAccountID)
	}
	if upserted.ItemID != "item-1" || upserted.UserID != 1 {
		t.Errorf("unexpected ownership on upsert: %+v", upserted)
	}
	if sampleAccountID != "local-acc-1" {
		t.Errorf("expected balance sample for local account id, got %q", sampleAccountID)
	}
	if sampleBalance != 1000.50 {
		t.Errorf("expected post-merge balance 1000.50, got %v", sampleBalance)
	}
}

func TestSyncAccounts_ItemFailureIsolated(t *testing.T) {
	itemRepo := &MockItemRepo{
		ListConnectedByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Item, error) {
			return []*models.Item{connectedItem("item-bad", 1), connectedItem("item-good", 1)}, nil
		},
	}
	client := &MockClient{
		ListAccountsFunc: func(ctx context.Context, accessToken string) ([]aggregator.Account, error) {
			if accessToken == "token-item-bad" {
				return nil, errors.New("institution is down")
			}
			return []aggregator.Account{
				{AccountID: "ext-acc-2", Name: "Savings", Type: "depository"},
			}, nil
		},
	}
	accountRepo := &MockAccountRepo{
		UpsertFunc: func(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error) {
			return &models.Account{ID: "local-acc-2"}, nil
		},
	}

	svc := NewAccountSyncService(client, itemRepo, accountRepo, &MockBalanceRepo{})

	result, err := svc.SyncAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected batch to succeed despite item failure, got %v", err)
	}
	if result.TotalSynced != 1 {
		t.Errorf("expected the healthy item to sync, got %d", result.TotalSynced)
	}
	if len(result.ItemErrors) != 1 {
		t.Fatalf("expected 1 item error, got %d", len(result.ItemErrors))
	}
	if result.ItemErrors[0].ItemID != "item-bad" {
		t.Errorf("expected error attributed to item-bad, got %q", result.ItemErrors[0].ItemID)
	}
}

func TestSyncAccounts_ListItemsFailureIsFatal(t *testing.T) {
	itemRepo := &MockItemRepo{
		ListConnectedByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Item, error) {
			return nil, errors.New("db down")
		},
	}

	svc := NewAccountSyncService(&MockClient{}, itemRepo, &MockAccountRepo{}, &MockBalanceRepo{})

	if _, err := svc.SyncAccounts(context.Background(), 1); err == nil {
		t.Fatal("expected error when item listing fails")
	}
}
