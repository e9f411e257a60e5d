package messaging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/pkg/kafka"
)

type memoryTxRepo struct {
	byPaymentID map[string]*model.PaymentTransaction
	saved       []*model.PaymentTransaction
}

func newMemoryTxRepo() *memoryTxRepo {
	return &memoryTxRepo{byPaymentID: make(map[string]*model.PaymentTransaction)}
}

func (m *memoryTxRepo) Save(_ context.Context, tx *model.PaymentTransaction) error {
	m.byPaymentID[tx.RequestID] = tx
	m.saved = append(m.saved, tx)
	return nil
}

func (m *memoryTxRepo) FindByOrderCode(context.Context, string) (*model.PaymentTransaction, error) {
	return nil, nil
}

func (m *memoryTxRepo) FindByGatewayPaymentID(_ context.Context, paymentID string) (*model.PaymentTransaction, error) {
	return m.byPaymentID[paymentID], nil
}

type allowAllSite struct{}

func (allowAllSite) SuccessURL(string) string                        { return "" }
func (allowAllSite) FailureURL(string) string                        { return "" }
func (allowAllSite) ProcessingChannelID(string) string               { return "" }
func (allowAllSite) BillingDescriptor(string) (string, string, bool) { return "", "", false }
func (allowAllSite) IsAutoCapture(string) bool                       { return true }
func (allowAllSite) IsThreeDSEnabled(string) bool                    { return false }
func (allowAllSite) IsAttemptN3D(string) bool                        { return false }
func (allowAllSite) IsReviewTransactionsAtRisk(string) bool          { return true }

func newTestConsumer(repo *memoryTxRepo) *WebhookConsumer {
	reconciler := usecase.NewTransactionReconciler(allowAllSite{}, repo, nil, nil, "payments.events", slog.Default())
	return &WebhookConsumer{
		reconciler: reconciler,
		txRepo:     repo,
		logger:     slog.Default(),
	}
}

func TestHandleCapturedWebhook(t *testing.T) {
	repo := newMemoryTxRepo()
	c := newTestConsumer(repo)

	payload := []byte(`{
		"id": "evt_1",
		"type": "payment_captured",
		"created_on": "2026-02-10T12:00:00Z",
		"data": {
			"id": "pay_1",
			"action_id": "act_1",
			"reference": "order-1",
			"amount": 5695,
			"currency": "GBP",
			"metadata": {"udf1": "site-uk"}
		}
	}`)

	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: payload}))

	require.Len(t, repo.saved, 1)
	tx := repo.saved[0]
	assert.Equal(t, "order-1", tx.OrderCode)
	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.EntryCapture, tx.Entries()[0].Type)
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
}

func TestHandleRiskFlaggedWebhookCreatesReviewEntry(t *testing.T) {
	repo := newMemoryTxRepo()
	c := newTestConsumer(repo)

	payload := []byte(`{
		"id": "evt_2",
		"type": "payment_approved",
		"created_on": "2026-02-10T12:00:00Z",
		"data": {
			"id": "pay_2",
			"reference": "order-2",
			"amount": 1000,
			"currency": "EUR",
			"risk": {"flagged": true},
			"metadata": {"udf1": "site-uk"}
		}
	}`)

	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: payload}))

	require.Len(t, repo.saved, 1)
	entries := repo.saved[0].Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, valueobject.StatusReview, entries[0].Status())
	assert.Equal(t, valueobject.DetailReviewNeeded, entries[0].StatusDetail())
}

func TestHandleDuplicateDeliveryIsIdempotent(t *testing.T) {
	repo := newMemoryTxRepo()
	c := newTestConsumer(repo)

	payload := []byte(`{
		"id": "evt_3",
		"type": "payment_captured",
		"created_on": "2026-02-10T12:00:00Z",
		"data": {
			"id": "pay_3",
			"reference": "order-3",
			"amount": 1000,
			"currency": "EUR",
			"metadata": {"udf1": "site-uk"}
		}
	}`)

	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: payload}))
	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: payload}))

	tx := repo.byPaymentID["pay_3"]
	require.NotNil(t, tx)
	assert.Len(t, tx.Entries(), 1, "redelivery must not add a second entry")
}

func TestHandleMalformedPayloadIsDropped(t *testing.T) {
	repo := newMemoryTxRepo()
	c := newTestConsumer(repo)

	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: []byte("{not json")}))
	require.NoError(t, c.handle(context.Background(), kafka.Message{Value: []byte(`{"type":"unknown_event"}`)}))
	assert.Empty(t, repo.saved)
}
