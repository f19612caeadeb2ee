package postgres

import (
	"context"
	"fmt"

	"nestegg/internal/models"
)

// BalanceHistoryRepository stores the append-only balance time series.
// There is no update path: every successful account sync appends one row.
type BalanceHistoryRepository struct {
	db *DB
}

func NewBalanceHistoryRepository(db *DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{db: db}
}

// Append records one balance sample for an account
func (r *BalanceHistoryRepository) Append(ctx context.Context, accountID string, balance float64) (*models.BalanceSample, error) {
	query := `
		INSERT INTO balance_history (account_id, balance)
		VALUES ($1, $2)
		RETURNING id, account_id, balance, sampled_at
	`

	var sample models.BalanceSample
	err := r.db.QueryRowContext(ctx, query, accountID, balance).Scan(
		&sample.ID, &sample.AccountID, &sample.Balance, &sample.SampledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append balance sample: %w", err)
	}

	return &sample, nil
}
