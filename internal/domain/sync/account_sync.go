package sync

import (
	"context"
	"fmt"
	"log"

	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/models"
)

// AccountSyncService mirrors aggregator-reported accounts and balances
type AccountSyncService struct {
	client      aggregator.ClientInterface
	itemRepo    models.ItemRepository
	accountRepo models.AccountRepository
	balanceRepo models.BalanceHistoryRepository
}

// NewAccountSyncService creates a new account sync service
func NewAccountSyncService(
	client aggregator.ClientInterface,
	itemRepo models.ItemRepository,
	accountRepo models.AccountRepository,
	balanceRepo models.BalanceHistoryRepository,
) *AccountSyncService {
	return &AccountSyncService{
		client:      client,
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
	}
}

// SyncAccounts refreshes every account under the user's connected items. Items
// are processed independently; one item's failure is recorded and the rest
// proceed. A user with no connected items is a successful no-op.
func (s *AccountSyncService) SyncAccounts(ctx context.Context, userID int64) (*AccountSyncResult, error) {
	items, err := s.itemRepo.ListConnectedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	result := &AccountSyncResult{
		UserID:     userID,
		ItemsFound: len(items),
		ItemErrors: []ItemError{},
	}

	log.Printf("User %d: Syncing accounts for %d items", userID, len(items))

	for _, item := range items {
		if err := s.syncItem(ctx, item, result); err != nil {
			result.ItemErrors = append(result.ItemErrors, ItemError{ItemID: item.ID, Error: err.Error()})
			log.Printf("User %d: item %s account sync failed: %v", userID, item.ID, err)
		}
	}

	log.Printf("User %d: Account sync complete - Synced: %d, Errors: %d",
		userID, result.TotalSynced, len(result.ItemErrors))

	return result, nil
}

func (s *AccountSyncService) syncItem(ctx context.Context, item *models.Item, result *AccountSyncResult) error {
	accounts, err := s.client.ListAccounts(ctx, item.AccessCredential)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, apiAccount := range accounts {
		if err := s.mergeAccount(ctx, item, apiAccount); err != nil {
			return fmt.Errorf("failed to sync account %s: %w", apiAccount.AccountID, err)
		}
		result.TotalSynced++
	}

	return nil
}

// mergeAccount upserts the mirror row and appends one balance sample with the
// post-merge value
func (s *AccountSyncService) mergeAccount(ctx context.Context, item *models.Item, apiAccount aggregator.Account) error {
	account, err := s.accountRepo.Upsert(ctx, models.UpsertAccountParams{
		UserID:            item.UserID,
		ItemID:            item.ID,
		ExternalAccountID: apiAccount.AccountID,
		Name:              apiAccount.Name,
		AccountType:       apiAccount.Type,
		Subtype:           apiAccount.Subtype,
		CurrentBalance:    apiAccount.Balances.Current,
		AvailableBalance:  apiAccount.Balances.Available,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	if _, err := s.balanceRepo.Append(ctx, account.ID, account.CurrentBalance); err != nil {
		return fmt.Errorf("failed to record balance sample: %w", err)
	}

	return nil
}
