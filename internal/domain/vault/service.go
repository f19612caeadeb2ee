// Package vault owns linked-institution credentials. Credentials are encrypted
// at rest by the repository and only handed out to the sync orchestrator and
// the revocation manager.
package vault

import (
	"context"
	"errors"

	"nestegg/internal/models"
)

// Service contains the business logic for item registration and credential access
type Service struct {
	itemRepo models.ItemRepository
}

// NewService creates a new vault service
func NewService(itemRepo models.ItemRepository) *Service {
	return &Service{itemRepo: itemRepo}
}

// RegisterItem links a new institution connection obtained from the aggregator
// link flow. Returns ErrDuplicateItem if the user already linked this item.
func (s *Service) RegisterItem(ctx context.Context, params models.CreateItemParams) (*models.Item, error) {
	if params.ExternalItemID == "" {
		return nil, errors.New("external item id is required")
	}
	if params.AccessCredential == "" {
		return nil, errors.New("access credential is required")
	}

	return s.itemRepo.Create(ctx, params)
}

// Credential returns the decrypted access credential for an item the user
// owns. A missing row and a row owned by someone else are both ErrItemNotFound.
func (s *Service) Credential(ctx context.Context, userID int64, itemID string) (string, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	if item == nil || item.UserID != userID {
		return "", ErrItemNotFound
	}

	return item.AccessCredential, nil
}

// ListItems returns all of the user's items. Callers serializing the result
// must rely on the model's json tags, which never expose the credential.
func (s *Service) ListItems(ctx context.Context, userID int64) ([]*models.Item, error) {
	return s.itemRepo.ListByUserID(ctx, userID)
}
