package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"nestegg/internal/domain/notify"
	"nestegg/internal/models"
)

// UserSyncResult bundles the account and transaction outcomes of one scheduled
// run for one user
type UserSyncResult struct {
	UserID       int64
	Accounts     *AccountSyncResult
	Transactions *TransactionSyncResult
}

// Failed reports whether any item failed in either phase
func (r *UserSyncResult) Failed() int {
	failed := 0
	if r.Accounts != nil {
		failed += len(r.Accounts.ItemErrors)
	}
	if r.Transactions != nil {
		failed += len(r.Transactions.ItemErrors)
	}
	return failed
}

// Orchestrator drives full per-user sync runs: accounts first so the account
// index is fresh, then transactions.
type Orchestrator struct {
	accounts     *AccountSyncService
	transactions *TransactionSyncService
	itemRepo     models.ItemRepository
	notifier     *notify.Service
}

// NewOrchestrator creates a new sync orchestrator. notifier may be nil.
func NewOrchestrator(
	accounts *AccountSyncService,
	transactions *TransactionSyncService,
	itemRepo models.ItemRepository,
	notifier *notify.Service,
) *Orchestrator {
	return &Orchestrator{
		accounts:     accounts,
		transactions: transactions,
		itemRepo:     itemRepo,
		notifier:     notifier,
	}
}

// SyncUser runs a full sync for one user and pushes a notice when items failed
func (o *Orchestrator) SyncUser(ctx context.Context, userID int64) (*UserSyncResult, error) {
	result := &UserSyncResult{UserID: userID}

	accountResult, err := o.accounts.SyncAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account sync failed: %w", err)
	}
	result.Accounts = accountResult

	txResult, err := o.transactions.SyncTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("transaction sync failed: %w", err)
	}
	result.Transactions = txResult

	if failed := result.Failed(); failed > 0 && o.notifier != nil {
		o.notifier.SyncDegraded(ctx, userID, failed)
	}

	return result, nil
}

// SyncAllUsers runs a full sync for every user with at least one connected
// item. One user's fatal error does not stop the others.
func (o *Orchestrator) SyncAllUsers(ctx context.Context) ([]*UserSyncResult, error) {
	userIDs, err := o.itemRepo.ListUserIDsWithConnectedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with items: %w", err)
	}

	var results []*UserSyncResult
	for _, userID := range userIDs {
		result, err := o.SyncUser(ctx, userID)
		if err != nil {
			log.Printf("User %d: scheduled sync failed: %v", userID, err)
			results = append(results, &UserSyncResult{UserID: userID})
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
