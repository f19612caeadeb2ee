package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nestegg/internal/models"
)

// AccountRepository stores the local mirror of aggregator accounts
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, item_id, external_account_id, name, account_type, subtype, current_balance, available_balance, last_synced_at, created_at, updated_at`

// Upsert inserts or refreshes the mirror row for one external account. The
// conflict target is external_account_id, so re-running a sync is idempotent.
func (r *AccountRepository) Upsert(ctx context.Context, params models.UpsertAccountParams) (*models.Account, error) {
	query := `
		INSERT INTO accounts (id, user_id, item_id, external_account_id, name, account_type, subtype, current_balance, available_balance, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (external_account_id) DO UPDATE SET
			name = EXCLUDED.name,
			account_type = EXCLUDED.account_type,
			subtype = EXCLUDED.subtype,
			current_balance = EXCLUDED.current_balance,
			available_balance = EXCLUDED.available_balance,
			last_synced_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.UserID, params.ItemID, params.ExternalAccountID,
		params.Name, params.AccountType, nullString(params.Subtype),
		params.CurrentBalance, params.AvailableBalance,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}

	return account, nil
}

// ListByUserID retrieves all mirrored accounts for a user
func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at
	`
	return r.listAccounts(ctx, query, userID)
}

// ListByItemID retrieves all accounts under one institution connection
func (r *AccountRepository) ListByItemID(ctx context.Context, itemID string) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE item_id = $1
		ORDER BY created_at
	`
	return r.listAccounts(ctx, query, itemID)
}

func (r *AccountRepository) listAccounts(ctx context.Context, query string, args ...any) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// DeleteByItemID removes all accounts under an item. Balance history rows
// cascade at the database level.
func (r *AccountRepository) DeleteByItemID(ctx context.Context, itemID string) error {
	query := `DELETE FROM accounts WHERE item_id = $1`

	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("failed to delete accounts for item: %w", err)
	}
	return nil
}

// DeleteByUserID removes every account belonging to a user
func (r *AccountRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM accounts WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete accounts for user: %w", err)
	}
	return nil
}

func scanAccount(scanner interface{ Scan(...any) error }) (*models.Account, error) {
	var account models.Account
	var subtype sql.NullString

	err := scanner.Scan(
		&account.ID, &account.UserID, &account.ItemID, &account.ExternalAccountID,
		&account.Name, &account.AccountType, &subtype,
		&account.CurrentBalance, &account.AvailableBalance,
		&account.LastSyncedAt, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if subtype.Valid {
		account.Subtype = subtype.String
	}

	return &account, nil
}
