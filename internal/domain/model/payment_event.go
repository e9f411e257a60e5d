package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/cartwise/payments/internal/domain/valueobject"
)

// PaymentEvent is a normalized inbound gateway webhook notification. It is
// created once per delivery, never mutated, and retained for audit.
type PaymentEvent struct {
	ID               uuid.UUID
	Type             valueobject.WebhookEventType
	GatewayPaymentID string
	ActionID         string
	OrderCode        string // the gateway request reference, i.e. our order code
	SiteID           string
	Risk             bool // gateway flagged the payment for risk review
	Amount           int64
	CurrencyCode     string
	RawPayload       json.RawMessage
	OccurredAt       time.Time
	ReceivedAt       time.Time
}

// NewPaymentEvent builds a normalized event from decoded webhook fields.
func NewPaymentEvent(
	eventType valueobject.WebhookEventType,
	gatewayPaymentID, actionID, orderCode, siteID string,
	risk bool,
	amount int64,
	currencyCode string,
	raw json.RawMessage,
	occurredAt time.Time,
) *PaymentEvent {
	return &PaymentEvent{
		ID:               uuid.New(),
		Type:             eventType,
		GatewayPaymentID: gatewayPaymentID,
		ActionID:         actionID,
		OrderCode:        orderCode,
		SiteID:           siteID,
		Risk:             risk,
		Amount:           amount,
		CurrencyCode:     currencyCode,
		RawPayload:       raw,
		OccurredAt:       occurredAt,
		ReceivedAt:       time.Now().UTC(),
	}
}
