package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"nestegg/internal/domain/vault"
	"nestegg/internal/infrastructure/crypto"
	"nestegg/internal/models"
)

// ItemRepository stores linked institution connections. Access credentials are
// encrypted before they reach the database and decrypted on the way out.
type ItemRepository struct {
	db        *DB
	encryptor *crypto.Encryptor
}

func NewItemRepository(db *DB, encryptor *crypto.Encryptor) *ItemRepository {
	return &ItemRepository{db: db, encryptor: encryptor}
}

const itemColumns = `id, user_id, external_item_id, access_credential, institution_name, institution_id, status, created_at, updated_at`

func (r *ItemRepository) scanItem(scanner interface{ Scan(...any) error }) (*models.Item, error) {
	var item models.Item
	var institutionName, institutionID sql.NullString

	err := scanner.Scan(
		&item.ID, &item.UserID, &item.ExternalItemID, &item.AccessCredential,
		&institutionName, &institutionID, &item.Status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if institutionName.Valid {
		item.InstitutionName = institutionName.String
	}
	if institutionID.Valid {
		item.InstitutionID = institutionID.String
	}

	decrypted, err := r.encryptor.Decrypt(item.AccessCredential)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access credential: %w", err)
	}
	item.AccessCredential = decrypted

	return &item, nil
}

// Create inserts a new item. Returns vault.ErrDuplicateItem when the
// (user, external item id) pair already exists.
func (r *ItemRepository) Create(ctx context.Context, params models.CreateItemParams) (*models.Item, error) {
	encrypted, err := r.encryptor.Encrypt(params.AccessCredential)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access credential: %w", err)
	}

	query := `
		INSERT INTO items (id, user_id, external_item_id, access_credential, institution_name, institution_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	item, err := r.scanItem(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.UserID, params.ExternalItemID, encrypted,
		nullString(params.InstitutionName), nullString(params.InstitutionID),
		models.ItemStatusConnected,
	))

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return nil, vault.ErrDuplicateItem
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an item by ID. Returns (nil, nil) when not found.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := r.scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListConnectedByUserID retrieves the user's items that are eligible for sync.
// Revoking and revoked items are excluded: a revoked credential must never be
// used for a subsequent sync attempt.
func (r *ItemRepository) ListConnectedByUserID(ctx context.Context, userID int64) ([]*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at
	`
	return r.listItems(ctx, query, userID, models.ItemStatusConnected)
}

// ListByUserID retrieves all items for a user regardless of status
func (r *ItemRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE user_id = $1
		ORDER BY created_at
	`
	return r.listItems(ctx, query, userID)
}

func (r *ItemRepository) listItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// ListUserIDsWithConnectedItems returns the users eligible for a scheduled sync run
func (r *ItemRepository) ListUserIDsWithConnectedItems(ctx context.Context) ([]int64, error) {
	query := `SELECT DISTINCT user_id FROM items WHERE status = $1 ORDER BY user_id`

	rows, err := r.db.QueryContext(ctx, query, models.ItemStatusConnected)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with items: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}

	return userIDs, nil
}

// SetStatus updates an item's lifecycle status
func (r *ItemRepository) SetStatus(ctx context.Context, id string, status models.ItemStatus) error {
	query := `UPDATE items SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return vault.ErrItemNotFound
	}

	return nil
}

// Delete removes an item by ID
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return vault.ErrItemNotFound
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
