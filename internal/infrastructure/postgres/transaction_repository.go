package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nestegg/internal/models"
)

// TransactionRepository stores the merge-upserted transaction ledger
type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, account_id, external_transaction_id, date, amount, merchant_name, category_primary, category_detailed, pending, created_at, updated_at`

// Upsert inserts or refreshes a ledger row keyed by external_transaction_id.
// A pending row settling under the same id overwrites in place; the row id and
// created_at are preserved.
func (r *TransactionRepository) Upsert(ctx context.Context, params models.UpsertTransactionParams) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, account_id, external_transaction_id, date, amount, merchant_name, category_primary, category_detailed, pending)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_transaction_id) DO UPDATE SET
			date = EXCLUDED.date,
			amount = EXCLUDED.amount,
			merchant_name = EXCLUDED.merchant_name,
			category_primary = EXCLUDED.category_primary,
			category_detailed = EXCLUDED.category_detailed,
			pending = EXCLUDED.pending,
			updated_at = CURRENT_TIMESTAMP
		RETURNING ` + transactionColumns

	txn, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.AccountID, params.ExternalTransactionID,
		params.Date, params.Amount, params.MerchantName,
		params.CategoryPrimary, params.CategoryDetailed, params.Pending,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert transaction: %w", err)
	}

	return txn, nil
}

// GetByExternalID retrieves a transaction by its aggregator id. Returns
// (nil, nil) when not found.
func (r *TransactionRepository) GetByExternalID(ctx context.Context, externalTransactionID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE external_transaction_id = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, externalTransactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

// ListInRange retrieves a user's transactions with date in [start, end],
// newest first
func (r *TransactionRepository) ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// DeleteByItemID removes all transactions whose account belongs to the item
func (r *TransactionRepository) DeleteByItemID(ctx context.Context, itemID string) error {
	query := `
		DELETE FROM transactions
		WHERE account_id IN (SELECT id FROM accounts WHERE item_id = $1)
	`

	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("failed to delete transactions for item: %w", err)
	}
	return nil
}

// DeleteByUserID removes every transaction belonging to a user
func (r *TransactionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM transactions WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete transactions for user: %w", err)
	}
	return nil
}

func scanTransaction(scanner interface{ Scan(...any) error }) (*models.Transaction, error) {
	var txn models.Transaction

	err := scanner.Scan(
		&txn.ID, &txn.UserID, &txn.AccountID, &txn.ExternalTransactionID,
		&txn.Date, &txn.Amount, &txn.MerchantName,
		&txn.CategoryPrimary, &txn.CategoryDetailed, &txn.Pending,
		&txn.CreatedAt, &txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &txn, nil
}
