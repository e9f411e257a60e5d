package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/pkg/kafka"
)

// webhookEnvelope is the raw gateway webhook delivery as forwarded onto the
// intake topic.
type webhookEnvelope struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	CreatedOn time.Time   `json:"created_on"`
	Data      webhookData `json:"data"`
}

type webhookData struct {
	ID        string            `json:"id"`
	ActionID  string            `json:"action_id"`
	Reference string            `json:"reference"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Risk      *webhookRisk      `json:"risk"`
	Metadata  map[string]string `json:"metadata"`
}

type webhookRisk struct {
	Flagged bool `json:"flagged"`
}

// WebhookConsumer reads gateway webhook deliveries from Kafka, normalizes
// them into payment events and routes them through the reconciler. Handler
// errors are returned to the consumer loop, which skips the commit so the
// delivery is retried.
type WebhookConsumer struct {
	consumer   *kafka.Consumer
	reconciler *usecase.TransactionReconciler
	txRepo     port.TransactionRepository
	logger     *slog.Logger
}

// NewWebhookConsumer wires the intake topic to the reconciler.
func NewWebhookConsumer(
	cfg kafka.Config,
	topic string,
	reconciler *usecase.TransactionReconciler,
	txRepo port.TransactionRepository,
	logger *slog.Logger,
) *WebhookConsumer {
	c := &WebhookConsumer{
		reconciler: reconciler,
		txRepo:     txRepo,
		logger:     logger,
	}
	c.consumer = kafka.NewConsumer(cfg, topic, c.handle, logger)
	return c
}

// Start runs the consume loop until ctx is cancelled.
func (c *WebhookConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close stops the underlying Kafka reader.
func (c *WebhookConsumer) Close() error {
	return c.consumer.Close()
}

func (c *WebhookConsumer) handle(ctx context.Context, msg kafka.Message) error {
	var envelope webhookEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		// A malformed delivery will never parse; log and commit it away.
		c.logger.Error("dropping unparseable webhook delivery", "error", err)
		return nil
	}

	eventType, err := valueobject.NewWebhookEventType(envelope.Type)
	if err != nil {
		c.logger.Warn("dropping webhook with unknown event type", "type", envelope.Type)
		return nil
	}

	event := model.NewPaymentEvent(
		eventType,
		envelope.Data.ID,
		envelope.Data.ActionID,
		envelope.Data.Reference,
		envelope.Data.Metadata[strategy.MetadataKeySite],
		envelope.Data.Risk != nil && envelope.Data.Risk.Flagged,
		envelope.Data.Amount,
		envelope.Data.Currency,
		json.RawMessage(msg.Value),
		envelope.CreatedOn,
	)

	tx, err := c.transactionFor(ctx, event)
	if err != nil {
		return err
	}
	return c.route(ctx, event, tx)
}

// transactionFor loads the ledger for the payment, opening one when the
// webhook is the first thing we hear about it.
func (c *WebhookConsumer) transactionFor(ctx context.Context, event *model.PaymentEvent) (*model.PaymentTransaction, error) {
	tx, err := c.txRepo.FindByGatewayPaymentID(ctx, event.GatewayPaymentID)
	if err != nil {
		return nil, fmt.Errorf("loading transaction for payment %s: %w", event.GatewayPaymentID, err)
	}
	if tx == nil {
		tx = model.NewPaymentTransaction(event.OrderCode, event.GatewayPaymentID)
	}
	return tx, nil
}

func (c *WebhookConsumer) route(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction) error {
	switch event.Type {
	case valueobject.EventPaymentApproved, valueobject.EventPaymentPending:
		return c.reconciler.AcceptPayment(ctx, event, tx, valueobject.EntryAuthorization)
	case valueobject.EventPaymentDeclined:
		return c.reconciler.RejectPayment(ctx, event, tx, valueobject.EntryAuthorization)
	case valueobject.EventPaymentCaptured:
		return c.reconciler.AcceptPayment(ctx, event, tx, valueobject.EntryCapture)
	case valueobject.EventPaymentVoided:
		return c.reconciler.AcceptPayment(ctx, event, tx, valueobject.EntryVoid)
	case valueobject.EventPaymentRefunded:
		return c.reconciler.AcceptPayment(ctx, event, tx, valueobject.EntryRefund)
	case valueobject.EventPaymentReturned:
		return c.reconciler.ReturnPayment(ctx, event, tx, valueobject.EntryReturn)
	default:
		c.logger.Warn("no route for webhook event type", "type", event.Type.String())
		return nil
	}
}
