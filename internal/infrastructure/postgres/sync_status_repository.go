package postgres

import (
	"context"
	"fmt"

	"nestegg/internal/models"
)

// SyncStatusRepository stores the latest transaction-sync outcome per
// (user, item) pair
type SyncStatusRepository struct {
	db *DB
}

func NewSyncStatusRepository(db *DB) *SyncStatusRepository {
	return &SyncStatusRepository{db: db}
}

// Upsert overwrites the status row for (user_id, item_id). Only the most
// recent run is kept.
func (r *SyncStatusRepository) Upsert(ctx context.Context, params models.UpsertSyncStatusParams) (*models.SyncStatus, error) {
	query := `
		INSERT INTO sync_status (user_id, item_id, last_synced_at, sync_start_date, sync_end_date, transaction_count)
		VALUES ($1, $2, CURRENT_TIMESTAMP, $3, $4, $5)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			last_synced_at = CURRENT_TIMESTAMP,
			sync_start_date = EXCLUDED.sync_start_date,
			sync_end_date = EXCLUDED.sync_end_date,
			transaction_count = EXCLUDED.transaction_count
		RETURNING id, user_id, item_id, last_synced_at, sync_start_date, sync_end_date, transaction_count
	`

	var status models.SyncStatus
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.ItemID,
		params.SyncStartDate, params.SyncEndDate, params.TransactionCount,
	).Scan(
		&status.ID, &status.UserID, &status.ItemID,
		&status.LastSyncedAt, &status.SyncStartDate, &status.SyncEndDate,
		&status.TransactionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert sync status: %w", err)
	}

	return &status, nil
}

// DeleteByItemID removes the status row for an item
func (r *SyncStatusRepository) DeleteByItemID(ctx context.Context, itemID string) error {
	query := `DELETE FROM sync_status WHERE item_id = $1`

	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("failed to delete sync status for item: %w", err)
	}
	return nil
}

// DeleteByUserID removes every status row belonging to a user
func (r *SyncStatusRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM sync_status WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete sync status for user: %w", err)
	}
	return nil
}
