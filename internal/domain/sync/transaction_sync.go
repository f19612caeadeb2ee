package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/models"
)

// defaultWindowDays is the trailing range scanned when the caller gives no
// explicit dates. Re-scanning the full window every run also picks up
// transactions that were skipped before their account existed locally.
const defaultWindowDays = 90

// TransactionSyncService merge-upserts the transaction ledger from the aggregator
type TransactionSyncService struct {
	client          aggregator.ClientInterface
	itemRepo        models.ItemRepository
	accountRepo     models.AccountRepository
	transactionRepo models.TransactionRepository
	statusRepo      models.SyncStatusRepository
}

// NewTransactionSyncService creates a new transaction sync service
func NewTransactionSyncService(
	client aggregator.ClientInterface,
	itemRepo models.ItemRepository,
	accountRepo models.AccountRepository,
	transactionRepo models.TransactionRepository,
	statusRepo models.SyncStatusRepository,
) *TransactionSyncService {
	return &TransactionSyncService{
		client:          client,
		itemRepo:        itemRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		statusRepo:      statusRepo,
	}
}

// SyncTransactions fetches and merges transactions for every connected item in
// [start, end]. A zero range defaults to the trailing 90 days. Per-item
// isolation: a failed item is recorded in ItemErrors and the rest proceed.
func (s *TransactionSyncService) SyncTransactions(ctx context.Context, userID int64, start, end time.Time) (*TransactionSyncResult, error) {
	if start.IsZero() && end.IsZero() {
		end = time.Now()
		start = end.AddDate(0, 0, -defaultWindowDays)
	}

	items, err := s.itemRepo.ListConnectedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	result := &TransactionSyncResult{
		UserID:     userID,
		StartDate:  start,
		EndDate:    end,
		ItemErrors: []ItemError{},
	}

	// Accounts from every item are indexed up front; the aggregator reports
	// transactions by external account id only.
	accountIndex, err := s.buildAccountIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Printf("User %d: Syncing transactions for %d items (%s to %s)",
		userID, len(items), start.Format("2006-01-02"), end.Format("2006-01-02"))

	for _, item := range items {
		merged, err := s.syncItem(ctx, item, start, end, accountIndex, result)
		if err != nil {
			result.ItemErrors = append(result.ItemErrors, ItemError{ItemID: item.ID, Error: err.Error()})
			log.Printf("User %d: item %s transaction sync failed: %v", userID, item.ID, err)
			continue
		}

		if _, err := s.statusRepo.Upsert(ctx, models.UpsertSyncStatusParams{
			UserID:           userID,
			ItemID:           item.ID,
			SyncStartDate:    start,
			SyncEndDate:      end,
			TransactionCount: merged,
		}); err != nil {
			log.Printf("User %d: failed to record sync status for item %s: %v", userID, item.ID, err)
		}
	}

	log.Printf("User %d: Transaction sync complete - Merged: %d, Skipped: %d, Errors: %d",
		userID, result.TotalSynced, result.Skipped, len(result.ItemErrors))

	return result, nil
}

func (s *TransactionSyncService) buildAccountIndex(ctx context.Context, userID int64) (map[string]*models.Account, error) {
	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	index := make(map[string]*models.Account, len(accounts))
	for _, account := range accounts {
		index[account.ExternalAccountID] = account
	}
	return index, nil
}

func (s *TransactionSyncService) syncItem(
	ctx context.Context,
	item *models.Item,
	start, end time.Time,
	accountIndex map[string]*models.Account,
	result *TransactionSyncResult,
) (int, error) {
	txns, err := s.client.ListTransactions(ctx, item.AccessCredential, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	merged := 0
	for i := range txns {
		apiTx := &txns[i]

		account, found := accountIndex[apiTx.AccountID]
		if !found {
			// No local mirror for this account yet. The next run's window
			// re-scan picks the transaction up.
			result.Skipped++
			continue
		}

		if err := s.mergeTransaction(ctx, account, apiTx); err != nil {
			return merged, fmt.Errorf("failed to merge transaction %s: %w", apiTx.TransactionID, err)
		}
		merged++
	}

	result.TotalSynced += merged
	return merged, nil
}

func (s *TransactionSyncService) mergeTransaction(ctx context.Context, account *models.Account, apiTx *aggregator.Transaction) error {
	date, err := apiTx.GetDate()
	if err != nil {
		return err
	}

	primary, detailed := splitCategory(apiTx.Category)

	// The aggregator reports outflows positive; the ledger stores them negative.
	_, err = s.transactionRepo.Upsert(ctx, models.UpsertTransactionParams{
		UserID:                account.UserID,
		AccountID:             account.ID,
		ExternalTransactionID: apiTx.TransactionID,
		Date:                  date,
		Amount:                -apiTx.Amount,
		MerchantName:          apiTx.Merchant(),
		CategoryPrimary:       primary,
		CategoryDetailed:      detailed,
		Pending:               apiTx.Pending,
	})
	return err
}
