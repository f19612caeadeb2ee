// Package revoke tears down institution links and user data.
package revoke

import (
	"context"
	"fmt"
	"log"

	"nestegg/internal/domain/notify"
	"nestegg/internal/domain/vault"
	"nestegg/internal/infrastructure/aggregator"
	"nestegg/internal/models"
)

// Service removes institution links. External revocation is attempted first,
// but the local cascade always runs: the user asked for the data to be gone,
// and a flaky aggregator must not block that.
type Service struct {
	client          aggregator.ClientInterface
	itemRepo        models.ItemRepository
	accountRepo     models.AccountRepository
	transactionRepo models.TransactionRepository
	statusRepo      models.SyncStatusRepository
	tokenRepo       models.DeviceTokenRepository
	notifier        *notify.Service
}

// NewService creates a new revocation service. notifier may be nil.
func NewService(
	client aggregator.ClientInterface,
	itemRepo models.ItemRepository,
	accountRepo models.AccountRepository,
	transactionRepo models.TransactionRepository,
	statusRepo models.SyncStatusRepository,
	tokenRepo models.DeviceTokenRepository,
	notifier *notify.Service,
) *Service {
	return &Service{
		client:          client,
		itemRepo:        itemRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		statusRepo:      statusRepo,
		tokenRepo:       tokenRepo,
		notifier:        notifier,
	}
}

// DisconnectResult reports the outcome of an item disconnect. Revoked is false
// when the aggregator did not confirm credential revocation; local deletion has
// still happened.
type DisconnectResult struct {
	Revoked bool
}

// DisconnectItem removes one institution link. Ownership is checked first; a
// missing item and someone else's item both return vault.ErrItemNotFound.
func (s *Service) DisconnectItem(ctx context.Context, userID int64, itemID string) (*DisconnectResult, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, vault.ErrItemNotFound
	}

	if err := s.itemRepo.SetStatus(ctx, item.ID, models.ItemStatusRevoking); err != nil {
		return nil, fmt.Errorf("failed to mark item revoking: %w", err)
	}

	revoked := s.revokeCredential(ctx, item)

	if err := s.deleteItemData(ctx, item.ID); err != nil {
		return nil, err
	}

	log.Printf("User %d: disconnected item %s (revoked=%v)", userID, item.ID, revoked)
	return &DisconnectResult{Revoked: revoked}, nil
}

// DeleteAllUserData revokes every item's credential independently and removes
// all rows belonging to the user. Returns how many revocations the aggregator
// confirmed.
func (s *Service) DeleteAllUserData(ctx context.Context, userID int64) (int, error) {
	items, err := s.itemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}

	revokedCount := 0
	for _, item := range items {
		if s.revokeCredential(ctx, item) {
			revokedCount++
		}
	}

	// Innermost rows first so nothing dangles if a later step fails.
	if err := s.transactionRepo.DeleteByUserID(ctx, userID); err != nil {
		return revokedCount, fmt.Errorf("failed to delete transactions: %w", err)
	}
	if err := s.accountRepo.DeleteByUserID(ctx, userID); err != nil {
		return revokedCount, fmt.Errorf("failed to delete accounts: %w", err)
	}
	if err := s.statusRepo.DeleteByUserID(ctx, userID); err != nil {
		return revokedCount, fmt.Errorf("failed to delete sync status: %w", err)
	}
	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return revokedCount, fmt.Errorf("failed to delete device tokens: %w", err)
	}
	for _, item := range items {
		if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
			return revokedCount, fmt.Errorf("failed to delete item %s: %w", item.ID, err)
		}
	}

	log.Printf("User %d: deleted all data (%d items, %d revoked)", userID, len(items), revokedCount)
	return revokedCount, nil
}

// revokeCredential attempts external revocation and reports whether the
// aggregator confirmed it. A failure is degraded, never fatal.
func (s *Service) revokeCredential(ctx context.Context, item *models.Item) bool {
	if item.AccessCredential == "" {
		return false
	}

	if err := s.client.RevokeAccess(ctx, item.AccessCredential); err != nil {
		log.Printf("User %d: failed to revoke credential for item %s: %v", item.UserID, item.ID, err)
		if s.notifier != nil {
			s.notifier.RevocationFailed(ctx, item.UserID, item.InstitutionName)
		}
		return false
	}
	return true
}

// deleteItemData cascades local deletion for one item. Balance history rows go
// with their accounts via FK cascade.
func (s *Service) deleteItemData(ctx context.Context, itemID string) error {
	if err := s.transactionRepo.DeleteByItemID(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if err := s.accountRepo.DeleteByItemID(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	if err := s.statusRepo.DeleteByItemID(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete sync status: %w", err)
	}
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
