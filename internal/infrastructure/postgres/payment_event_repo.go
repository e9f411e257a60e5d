package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// PaymentEventRepository retains normalized webhook events for audit. Events
// are write-once; duplicate ids are ignored so a redelivered webhook does not
// fail the reconciliation.
type PaymentEventRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentEventRepository creates the repository over a connection pool.
func NewPaymentEventRepository(pool *pgxpool.Pool) *PaymentEventRepository {
	return &PaymentEventRepository{pool: pool}
}

// Save stores the event.
func (r *PaymentEventRepository) Save(ctx context.Context, event *model.PaymentEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payment_events
			(id, event_type, gateway_payment_id, action_id, order_code, site_id, risk, amount, currency_code, raw_payload, occurred_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING`,
		event.ID, event.Type.String(), event.GatewayPaymentID, event.ActionID,
		event.OrderCode, event.SiteID, event.Risk, event.Amount,
		event.CurrencyCode, event.RawPayload, event.OccurredAt, event.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("saving payment event %s: %w", event.ID, err)
	}
	return nil
}

// ListByGatewayPaymentID returns all retained events for a gateway payment,
// oldest first.
func (r *PaymentEventRepository) ListByGatewayPaymentID(ctx context.Context, paymentID string) ([]*model.PaymentEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type, gateway_payment_id, action_id, order_code, site_id, risk, amount, currency_code, raw_payload, occurred_at, received_at
		FROM payment_events
		WHERE gateway_payment_id = $1
		ORDER BY occurred_at`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("listing payment events for %s: %w", paymentID, err)
	}
	defer rows.Close()

	var out []*model.PaymentEvent
	for rows.Next() {
		var (
			id                     uuid.UUID
			eventType              string
			gatewayPaymentID       string
			actionID               string
			orderCode, siteID      string
			risk                   bool
			amount                 int64
			currencyCode           string
			rawPayload             json.RawMessage
			occurredAt, receivedAt time.Time
		)
		if err := rows.Scan(&id, &eventType, &gatewayPaymentID, &actionID, &orderCode, &siteID,
			&risk, &amount, &currencyCode, &rawPayload, &occurredAt, &receivedAt); err != nil {
			return nil, fmt.Errorf("scanning payment event: %w", err)
		}

		t, err := valueobject.NewWebhookEventType(eventType)
		if err != nil {
			return nil, err
		}

		out = append(out, &model.PaymentEvent{
			ID:               id,
			Type:             t,
			GatewayPaymentID: gatewayPaymentID,
			ActionID:         actionID,
			OrderCode:        orderCode,
			SiteID:           siteID,
			Risk:             risk,
			Amount:           amount,
			CurrencyCode:     currencyCode,
			RawPayload:       rawPayload,
			OccurredAt:       occurredAt,
			ReceivedAt:       receivedAt,
		})
	}
	return out, rows.Err()
}
