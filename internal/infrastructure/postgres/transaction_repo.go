// Package postgres implements the persistence ports on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// TransactionRepository persists the payment-transaction ledger. Saving is an
// upsert on the transaction row plus an upsert per entry, so resolving an
// entry in place updates the stored row instead of duplicating it.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates the repository over a connection pool.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Save writes the transaction and all its entries in one database
// transaction.
func (r *TransactionRepository) Save(ctx context.Context, t *model.PaymentTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO payment_transactions (id, order_code, request_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		t.ID, t.OrderCode, t.RequestID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving transaction %s: %w", t.ID, err)
	}

	for _, e := range t.Entries() {
		_, err = tx.Exec(ctx, `
			INSERT INTO payment_transaction_entries
				(id, transaction_id, entry_type, request_id, status, status_detail, amount, currency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				status_detail = EXCLUDED.status_detail,
				updated_at = EXCLUDED.updated_at`,
			e.ID, t.ID, e.Type.String(), e.RequestID,
			e.Status().String(), e.StatusDetail().String(),
			e.Amount, e.Currency, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("saving entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// FindByOrderCode loads the transaction for an order, nil when none exists.
func (r *TransactionRepository) FindByOrderCode(ctx context.Context, orderCode string) (*model.PaymentTransaction, error) {
	return r.findOne(ctx, `
		SELECT id, order_code, request_id, created_at
		FROM payment_transactions WHERE order_code = $1`, orderCode)
}

// FindByGatewayPaymentID loads the transaction opened with the given gateway
// payment id, nil when none exists.
func (r *TransactionRepository) FindByGatewayPaymentID(ctx context.Context, paymentID string) (*model.PaymentTransaction, error) {
	return r.findOne(ctx, `
		SELECT id, order_code, request_id, created_at
		FROM payment_transactions WHERE request_id = $1`, paymentID)
}

func (r *TransactionRepository) findOne(ctx context.Context, query, arg string) (*model.PaymentTransaction, error) {
	var (
		id        uuid.UUID
		orderCode string
		requestID string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&id, &orderCode, &requestID, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading transaction: %w", err)
	}

	t := &model.PaymentTransaction{
		ID:        id,
		OrderCode: orderCode,
		RequestID: requestID,
		CreatedAt: createdAt,
	}
	if err := r.loadEntries(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) loadEntries(ctx context.Context, t *model.PaymentTransaction) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_type, request_id, status, status_detail, amount, currency, created_at, updated_at
		FROM payment_transaction_entries
		WHERE transaction_id = $1
		ORDER BY created_at`, t.ID)
	if err != nil {
		return fmt.Errorf("loading entries for transaction %s: %w", t.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   uuid.UUID
			entryType            string
			requestID            string
			status               string
			detail               string
			amount               decimal.Decimal
			currency             string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &entryType, &requestID, &status, &detail, &amount, &currency, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("scanning entry: %w", err)
		}

		et, err := valueobject.NewEntryType(entryType)
		if err != nil {
			return err
		}
		st, err := valueobject.NewEntryStatus(status)
		if err != nil {
			return err
		}
		sd, err := valueobject.NewStatusDetail(detail)
		if err != nil {
			return err
		}

		t.AddEntry(model.ReconstructEntry(id, et, requestID, st, sd, amount, currency, createdAt, updatedAt))
	}
	return rows.Err()
}
