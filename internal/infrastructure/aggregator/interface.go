package aggregator

import (
	"context"
	"time"
)

// ClientInterface defines the aggregator operations consumed by the sync and
// revocation services. Allows mocking in tests.
type ClientInterface interface {
	ListAccounts(ctx context.Context, accessToken string) ([]Account, error)
	ListTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]Transaction, error)
	RevokeAccess(ctx context.Context, accessToken string) error
}
