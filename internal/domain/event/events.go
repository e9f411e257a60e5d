package event

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/cartwise/payments/pkg/events"
)

const AggregateTypePaymentTransaction = "PaymentTransaction"

// EntryAccepted is emitted when a transaction entry resolves to ACCEPTED.
type EntryAccepted struct {
	events.BaseEvent
	TransactionID    uuid.UUID `json:"transaction_id"`
	OrderCode        string    `json:"order_code"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	EntryType        string    `json:"entry_type"`
}

func NewEntryAccepted(transactionID uuid.UUID, orderCode, gatewayPaymentID, entryType string) EntryAccepted {
	payload, _ := json.Marshal(struct {
		TransactionID    uuid.UUID `json:"transaction_id"`
		OrderCode        string    `json:"order_code"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
		EntryType        string    `json:"entry_type"`
	}{transactionID, orderCode, gatewayPaymentID, entryType})

	return EntryAccepted{
		BaseEvent:        events.NewBaseEvent("payment.entry.accepted", transactionID, AggregateTypePaymentTransaction, payload),
		TransactionID:    transactionID,
		OrderCode:        orderCode,
		GatewayPaymentID: gatewayPaymentID,
		EntryType:        entryType,
	}
}

// EntryRejected is emitted when a transaction entry resolves to REJECTED.
type EntryRejected struct {
	events.BaseEvent
	TransactionID    uuid.UUID `json:"transaction_id"`
	OrderCode        string    `json:"order_code"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	EntryType        string    `json:"entry_type"`
}

func NewEntryRejected(transactionID uuid.UUID, orderCode, gatewayPaymentID, entryType string) EntryRejected {
	payload, _ := json.Marshal(struct {
		TransactionID    uuid.UUID `json:"transaction_id"`
		OrderCode        string    `json:"order_code"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
		EntryType        string    `json:"entry_type"`
	}{transactionID, orderCode, gatewayPaymentID, entryType})

	return EntryRejected{
		BaseEvent:        events.NewBaseEvent("payment.entry.rejected", transactionID, AggregateTypePaymentTransaction, payload),
		TransactionID:    transactionID,
		OrderCode:        orderCode,
		GatewayPaymentID: gatewayPaymentID,
		EntryType:        entryType,
	}
}

// EntryUnderReview is emitted when a risk-flagged event lands an entry in REVIEW.
type EntryUnderReview struct {
	events.BaseEvent
	TransactionID    uuid.UUID `json:"transaction_id"`
	OrderCode        string    `json:"order_code"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	EntryType        string    `json:"entry_type"`
}

func NewEntryUnderReview(transactionID uuid.UUID, orderCode, gatewayPaymentID, entryType string) EntryUnderReview {
	payload, _ := json.Marshal(struct {
		TransactionID    uuid.UUID `json:"transaction_id"`
		OrderCode        string    `json:"order_code"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
		EntryType        string    `json:"entry_type"`
	}{transactionID, orderCode, gatewayPaymentID, entryType})

	return EntryUnderReview{
		BaseEvent:        events.NewBaseEvent("payment.entry.review", transactionID, AggregateTypePaymentTransaction, payload),
		TransactionID:    transactionID,
		OrderCode:        orderCode,
		GatewayPaymentID: gatewayPaymentID,
		EntryType:        entryType,
	}
}

// PaymentReturned is emitted when funds come back to the customer and the
// order moves to the returned status.
type PaymentReturned struct {
	events.BaseEvent
	TransactionID    uuid.UUID `json:"transaction_id"`
	OrderCode        string    `json:"order_code"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
}

func NewPaymentReturned(transactionID uuid.UUID, orderCode, gatewayPaymentID string) PaymentReturned {
	payload, _ := json.Marshal(struct {
		TransactionID    uuid.UUID `json:"transaction_id"`
		OrderCode        string    `json:"order_code"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
	}{transactionID, orderCode, gatewayPaymentID})

	return PaymentReturned{
		BaseEvent:        events.NewBaseEvent("payment.returned", transactionID, AggregateTypePaymentTransaction, payload),
		TransactionID:    transactionID,
		OrderCode:        orderCode,
		GatewayPaymentID: gatewayPaymentID,
	}
}
