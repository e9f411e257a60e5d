package valueobject

import (
	"fmt"
	"strings"
)

// WebhookEventType classifies a normalized gateway webhook notification.
type WebhookEventType struct {
	value string
}

var (
	EventPaymentApproved = WebhookEventType{"payment_approved"}
	EventPaymentPending  = WebhookEventType{"payment_pending"}
	EventPaymentDeclined = WebhookEventType{"payment_declined"}
	EventPaymentCaptured = WebhookEventType{"payment_captured"}
	EventPaymentVoided   = WebhookEventType{"payment_voided"}
	EventPaymentRefunded = WebhookEventType{"payment_refunded"}
	EventPaymentReturned = WebhookEventType{"payment_returned"}
)

var validEventTypes = map[string]WebhookEventType{
	"payment_approved": EventPaymentApproved,
	"payment_pending":  EventPaymentPending,
	"payment_declined": EventPaymentDeclined,
	"payment_captured": EventPaymentCaptured,
	"payment_voided":   EventPaymentVoided,
	"payment_refunded": EventPaymentRefunded,
	"payment_returned": EventPaymentReturned,
}

// NewWebhookEventType validates and creates a WebhookEventType from the raw
// gateway event name.
func NewWebhookEventType(s string) (WebhookEventType, error) {
	if t, ok := validEventTypes[strings.ToLower(s)]; ok {
		return t, nil
	}
	return WebhookEventType{}, fmt.Errorf("invalid webhook event type: %q", s)
}

// String returns the string representation of the event type.
func (t WebhookEventType) String() string { return t.value }

// IsZero returns true if the event type is uninitialized.
func (t WebhookEventType) IsZero() bool { return t.value == "" }

// OrderStatus is the subset of order lifecycle states this service advances
// as a side effect of reconciling transaction entries.
type OrderStatus struct {
	value string
}

var (
	OrderStatusCreated          = OrderStatus{"CREATED"}
	OrderStatusPaymentCaptured  = OrderStatus{"PAYMENT_CAPTURED"}
	OrderStatusPaymentReturned  = OrderStatus{"PAYMENT_RETURNED"}
	OrderStatusProcessingError  = OrderStatus{"PROCESSING_ERROR"}
	OrderStatusPaymentAmbiguous = OrderStatus{"PAYMENT_AMBIGUOUS"}
)

var validOrderStatuses = map[string]OrderStatus{
	"CREATED":           OrderStatusCreated,
	"PAYMENT_CAPTURED":  OrderStatusPaymentCaptured,
	"PAYMENT_RETURNED":  OrderStatusPaymentReturned,
	"PROCESSING_ERROR":  OrderStatusProcessingError,
	"PAYMENT_AMBIGUOUS": OrderStatusPaymentAmbiguous,
}

// NewOrderStatus validates and creates an OrderStatus from a string.
func NewOrderStatus(s string) (OrderStatus, error) {
	if st, ok := validOrderStatuses[s]; ok {
		return st, nil
	}
	return OrderStatus{}, fmt.Errorf("invalid order status: %q", s)
}

// String returns the string representation of the order status.
func (s OrderStatus) String() string { return s.value }

// IsZero returns true if the order status is uninitialized.
func (s OrderStatus) IsZero() bool { return s.value == "" }
