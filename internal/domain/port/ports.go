package port

import (
	"context"

	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
	pkgevents "github.com/cartwise/payments/pkg/events"
)

// GatewayClient is the narrow view of the payment gateway the orchestration
// core depends on. The concrete transport lives outside this module; calls
// block until the gateway answers or ctx expires.
type GatewayClient interface {
	Authorize(ctx context.Context, req *gateway.PaymentRequest) (*gateway.PaymentResponse, error)
	Capture(ctx context.Context, req *gateway.CaptureRequest) (*gateway.CaptureResponse, error)
	Void(ctx context.Context, req *gateway.VoidRequest) (*gateway.VoidResponse, error)
	Refund(ctx context.Context, req *gateway.RefundRequest) (*gateway.RefundResponse, error)
	GetPaymentDetails(ctx context.Context, paymentID string) (*gateway.GetPaymentResponse, error)
	CreateInstrument(ctx context.Context, req *gateway.CreateInstrumentRequest) (*gateway.CreateInstrumentResponse, error)
}

// SiteConfig exposes the per-site merchant configuration request building and
// reconciliation consult. Backed by the commerce platform's site settings.
type SiteConfig interface {
	SuccessURL(siteID string) string
	FailureURL(siteID string) string
	ProcessingChannelID(siteID string) string
	// BillingDescriptor returns the dynamic statement descriptor; enabled is
	// false when the merchant has not configured one.
	BillingDescriptor(siteID string) (name, city string, enabled bool)
	IsAutoCapture(siteID string) bool
	IsThreeDSEnabled(siteID string) bool
	IsAttemptN3D(siteID string) bool
	IsReviewTransactionsAtRisk(siteID string) bool
}

// APMConfig describes the deployment configuration of one alternative payment
// method.
type APMConfig struct {
	Method     valueobject.PaymentType
	Enabled    bool
	Countries  []string // allowed delivery countries, empty = all
	Currencies []string // allowed currencies, empty = all
}

// APMConfigStore looks up alternative-payment-method configuration records.
type APMConfigStore interface {
	// Configuration returns the APM record for the method, if one exists.
	Configuration(method valueobject.PaymentType) (APMConfig, bool)
}

// TransactionRepository persists the payment-transaction ledger.
type TransactionRepository interface {
	Save(ctx context.Context, tx *model.PaymentTransaction) error
	FindByOrderCode(ctx context.Context, orderCode string) (*model.PaymentTransaction, error)
	FindByGatewayPaymentID(ctx context.Context, paymentID string) (*model.PaymentTransaction, error)
}

// PaymentEventRepository retains normalized webhook events for audit.
type PaymentEventRepository interface {
	Save(ctx context.Context, event *model.PaymentEvent) error
	ListByGatewayPaymentID(ctx context.Context, paymentID string) ([]*model.PaymentEvent, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...pkgevents.DomainEvent) error
}
