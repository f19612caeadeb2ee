// Package notify pushes degraded-outcome notices to the user's devices.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nestegg/internal/models"
)

// ErrInvalidToken is returned when an empty device token is registered.
var ErrInvalidToken = errors.New("device token is required")

// Messenger delivers push notifications. Implemented by the FCM client.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// Service sends best-effort push notices. A failed delivery is logged, never
// propagated; notifications must not change the outcome of the operation that
// triggered them.
type Service struct {
	tokenRepo models.DeviceTokenRepository
	messenger Messenger
}

// NewService creates a notify service. messenger may be nil, in which case
// sends are no-ops.
func NewService(tokenRepo models.DeviceTokenRepository, messenger Messenger) *Service {
	return &Service{tokenRepo: tokenRepo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user. A token
// already registered to another user is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, userID int64, token string) (*models.DeviceToken, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.tokenRepo.Upsert(ctx, userID, token)
}

// SyncDegraded notifies the user that a scheduled sync finished with item
// failures
func (s *Service) SyncDegraded(ctx context.Context, userID int64, failedItems int) {
	body := fmt.Sprintf("%d of your linked institutions could not be refreshed.", failedItems)
	if failedItems == 1 {
		body = "One of your linked institutions could not be refreshed."
	}
	s.send(ctx, userID, "Account refresh incomplete", body, map[string]string{"route": "accounts"})
}

// RevocationFailed notifies the user that an institution was unlinked locally
// but the aggregator did not confirm credential revocation
func (s *Service) RevocationFailed(ctx context.Context, userID int64, institutionName string) {
	if institutionName == "" {
		institutionName = "your institution"
	}
	body := fmt.Sprintf("We removed %s from your profile, but the connection could not be revoked upstream.", institutionName)
	s.send(ctx, userID, "Institution unlinked", body, map[string]string{"route": "accounts"})
}

func (s *Service) send(ctx context.Context, userID int64, title, body string, data map[string]string) {
	if s.messenger == nil {
		return
	}

	tokens, err := s.tokenRepo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		log.Printf("User %d: failed to load device tokens: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	if err := s.messenger.SendMulticast(ctx, tokens, title, body, data); err != nil {
		log.Printf("User %d: failed to send notification: %v", userID, err)
	}
}
