package postgres

import (
	"context"
	"fmt"

	"nestegg/internal/models"
)

// DeviceTokenRepository stores FCM registration tokens
type DeviceTokenRepository struct {
	db *DB
}

func NewDeviceTokenRepository(db *DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a token for a user, reactivating it if it was deactivated
func (r *DeviceTokenRepository) Upsert(ctx context.Context, userID int64, token string) (*models.DeviceToken, error) {
	query := `
		INSERT INTO device_tokens (user_id, token, active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			active = TRUE,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, token, active, created_at, updated_at
	`

	var dt models.DeviceToken
	err := r.db.QueryRowContext(ctx, query, userID, token).Scan(
		&dt.ID, &dt.UserID, &dt.Token, &dt.Active, &dt.CreatedAt, &dt.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &dt, nil
}

// GetActiveTokensByUserID retrieves the active tokens for a user
func (r *DeviceTokenRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT token FROM device_tokens WHERE user_id = $1 AND active = TRUE`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device tokens: %w", err)
	}

	return tokens, nil
}

// Deactivate marks a token inactive. Called when FCM reports the token as
// unregistered.
func (r *DeviceTokenRepository) Deactivate(ctx context.Context, token string) error {
	query := `UPDATE device_tokens SET active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}

// DeleteByUserID removes every token belonging to a user
func (r *DeviceTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM device_tokens WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete device tokens for user: %w", err)
	}
	return nil
}
