package usecase_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

func newReconciler(site *mockSiteConfig, txRepo *mockTransactionRepo, eventRepo *mockEventRepo, pub *mockPublisher) *usecase.TransactionReconciler {
	if site == nil {
		site = &mockSiteConfig{}
	}
	var (
		txPort    port.TransactionRepository
		eventPort port.PaymentEventRepository
		pubPort   port.EventPublisher
	)
	if txRepo != nil {
		txPort = txRepo
	}
	if eventRepo != nil {
		eventPort = eventRepo
	}
	if pub != nil {
		pubPort = pub
	}
	return usecase.NewTransactionReconciler(site, txPort, eventPort, pubPort, "payments.events", slog.Default())
}

func approvedEvent(paymentID string, risk bool) *model.PaymentEvent {
	return model.NewPaymentEvent(
		valueobject.EventPaymentApproved, paymentID, "act_1", "order-1", "site-uk",
		risk, 5695, "GBP", nil, time.Now().UTC(),
	)
}

func pendingEvent(paymentID string) *model.PaymentEvent {
	return model.NewPaymentEvent(
		valueobject.EventPaymentPending, paymentID, "act_0", "order-1", "site-uk",
		false, 5695, "GBP", nil, time.Now().UTC(),
	)
}

func orderWithTransaction(paymentID string) (*model.Order, *model.PaymentTransaction) {
	order := model.NewOrder("order-1", "site-uk", "GBP", decimal.RequireFromString("56.95"), &model.CardPaymentInfo{Token: "tok", AutoCapture: true})
	tx := model.NewPaymentTransaction("order-1", paymentID)
	order.AddTransaction(tx)
	return order, tx
}

func TestAcceptPaymentResolvesPendingEntry(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	_, tx := orderWithTransaction("pay_1")
	tx.AddEntry(model.NewEntry(valueobject.EntryAuthorization, "pay_1",
		valueobject.StatusPending, valueobject.DetailSuccessful, requireDecimal(t, "56.95"), "GBP"))

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_1", false), tx, valueobject.EntryAuthorization)
	require.NoError(t, err)

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
}

func TestAcceptPaymentIdempotent(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	_, tx := orderWithTransaction("pay_1")
	tx.AddEntry(model.NewEntry(valueobject.EntryAuthorization, "pay_1",
		valueobject.StatusPending, valueobject.DetailSuccessful, requireDecimal(t, "56.95"), "GBP"))

	event := approvedEvent("pay_1", false)
	require.NoError(t, r.AcceptPayment(context.Background(), event, tx, valueobject.EntryAuthorization))
	require.NoError(t, r.AcceptPayment(context.Background(), event, tx, valueobject.EntryAuthorization))

	require.Len(t, tx.Entries(), 1, "duplicate delivery must not add a second entry")
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
}

func TestAcceptPaymentPendingEventCreatesPendingEntry(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	order, tx := orderWithTransaction("pay_2")

	err := r.AcceptPayment(context.Background(), pendingEvent("pay_2"), tx, valueobject.EntryAuthorization)
	require.NoError(t, err)

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusPending, tx.Entries()[0].Status())
	assert.Equal(t, valueobject.OrderStatusCreated, order.Status, "pending entries do not advance the order")
}

func TestAcceptPaymentPendingRedeliveryKeepsEntryOpen(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	_, tx := orderWithTransaction("pay_2")

	require.NoError(t, r.AcceptPayment(context.Background(), pendingEvent("pay_2"), tx, valueobject.EntryAuthorization))
	require.NoError(t, r.AcceptPayment(context.Background(), pendingEvent("pay_2"), tx, valueobject.EntryAuthorization))

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusPending, tx.Entries()[0].Status(),
		"a redelivered pending notification must not resolve the entry")

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_2", false), tx, valueobject.EntryAuthorization)
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
}

func TestAcceptPaymentRiskReview(t *testing.T) {
	site := &mockSiteConfig{reviewRiskTrans: true}
	r := newReconciler(site, nil, nil, nil)
	order, tx := orderWithTransaction("pay_3")

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_3", true), tx, valueobject.EntryCapture)
	require.NoError(t, err)

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusReview, tx.Entries()[0].Status())
	assert.Equal(t, valueobject.DetailReviewNeeded, tx.Entries()[0].StatusDetail())
	assert.Equal(t, valueobject.OrderStatusCreated, order.Status, "review entries do not advance the order")
}

func TestAcceptPaymentRiskIgnored(t *testing.T) {
	site := &mockSiteConfig{reviewRiskTrans: false}
	r := newReconciler(site, nil, nil, nil)
	order, tx := orderWithTransaction("pay_4")

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_4", true), tx, valueobject.EntryCapture)
	require.NoError(t, err)

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
	assert.Equal(t, valueobject.OrderStatusPaymentCaptured, order.Status)
}

func TestAcceptPaymentAdvancesOrderOnNewAcceptedCapture(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	order, tx := orderWithTransaction("pay_5")

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_5", false), tx, valueobject.EntryCapture)
	require.NoError(t, err)
	assert.Equal(t, valueobject.OrderStatusPaymentCaptured, order.Status)
}

func TestRejectPaymentCreatesRejectedEntry(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	_, tx := orderWithTransaction("pay_6")

	err := r.RejectPayment(context.Background(), approvedEvent("pay_6", false), tx, valueobject.EntryAuthorization)
	require.NoError(t, err)

	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusRejected, tx.Entries()[0].Status())
	assert.Equal(t, valueobject.DetailProcessorDecline, tx.Entries()[0].StatusDetail())
}

func TestReturnPaymentAdvancesOrder(t *testing.T) {
	pub := &mockPublisher{}
	r := newReconciler(nil, nil, nil, pub)
	order, tx := orderWithTransaction("pay_7")

	err := r.ReturnPayment(context.Background(), approvedEvent("pay_7", false), tx, valueobject.EntryReturn)
	require.NoError(t, err)

	assert.Equal(t, valueobject.OrderStatusPaymentReturned, order.Status)
	require.Len(t, tx.Entries(), 1)
	assert.Equal(t, valueobject.StatusAccepted, tx.Entries()[0].Status())
	assert.NotEmpty(t, pub.published)
}

func TestReconcilerValidation(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	_, tx := orderWithTransaction("pay_8")
	event := approvedEvent("pay_8", false)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "nil event", call: func() error {
			return r.AcceptPayment(context.Background(), nil, tx, valueobject.EntryAuthorization)
		}},
		{name: "nil transaction", call: func() error {
			return r.AcceptPayment(context.Background(), event, nil, valueobject.EntryAuthorization)
		}},
		{name: "zero entry type", call: func() error {
			return r.AcceptPayment(context.Background(), event, tx, valueobject.EntryType{})
		}},
		{name: "reject nil event", call: func() error {
			return r.RejectPayment(context.Background(), nil, tx, valueobject.EntryAuthorization)
		}},
		{name: "return nil transaction", call: func() error {
			return r.ReturnPayment(context.Background(), event, nil, valueobject.EntryReturn)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errs.IsInvalidArgument(err))
		})
	}
	assert.Empty(t, tx.Entries(), "validation failures must not mutate the ledger")
}

func TestReconcilerPersistsEventAndTransaction(t *testing.T) {
	txRepo := &mockTransactionRepo{}
	eventRepo := &mockEventRepo{}
	r := newReconciler(nil, txRepo, eventRepo, nil)
	_, tx := orderWithTransaction("pay_9")

	err := r.AcceptPayment(context.Background(), approvedEvent("pay_9", false), tx, valueobject.EntryAuthorization)
	require.NoError(t, err)

	assert.Len(t, eventRepo.saved, 1)
	assert.Len(t, txRepo.saved, 1)
}

func TestQueryPredicates(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	order, tx := orderWithTransaction("pay_10")

	assert.False(t, r.IsAuthorizationApproved(order))
	assert.True(t, r.IsAuthorizationPending(order), "no entry yet counts as pending")
	assert.False(t, r.CaptureExists(order))
	assert.True(t, r.IsCapturePending(order))
	assert.False(t, r.IsVoidPresent(order))

	tx.AddEntry(model.NewEntry(valueobject.EntryAuthorization, "pay_10",
		valueobject.StatusPending, valueobject.DetailSuccessful, requireDecimal(t, "56.95"), "GBP"))
	assert.True(t, r.IsAuthorizationPending(order))

	require.NoError(t, tx.Entries()[0].Resolve(valueobject.StatusAccepted, valueobject.DetailSuccessful))
	assert.True(t, r.IsAuthorizationApproved(order))
	assert.False(t, r.IsAuthorizationPending(order))

	tx.AddEntry(model.NewEntry(valueobject.EntryCapture, "pay_10",
		valueobject.StatusAccepted, valueobject.DetailSuccessful, requireDecimal(t, "56.95"), "GBP"))
	assert.True(t, r.IsCaptureApproved(order))
	assert.True(t, r.CaptureExists(order))
	assert.False(t, r.IsCapturePending(order))
}

func TestReviewCountsAsApprovedAuthorization(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)
	order, tx := orderWithTransaction("pay_11")
	tx.AddEntry(model.NewEntry(valueobject.EntryAuthorization, "pay_11",
		valueobject.StatusReview, valueobject.DetailReviewNeeded, requireDecimal(t, "56.95"), "GBP"))

	assert.True(t, r.IsAuthorizationApproved(order))
}

func TestIsAutoCaptureAndIsDeferred(t *testing.T) {
	r := newReconciler(nil, nil, nil, nil)

	cardOrder := model.NewOrder("o1", "s", "GBP", requireDecimal(t, "10"), &model.CardPaymentInfo{AutoCapture: false})
	assert.False(t, r.IsAutoCapture(cardOrder))

	apmOrder := model.NewOrder("o2", "s", "GBP", requireDecimal(t, "10"), &model.APMPaymentInfo{Method: "paypal", Deferred: true})
	assert.True(t, r.IsAutoCapture(apmOrder), "non-card payment infos always auto-capture")

	deferred, err := r.IsDeferred(apmOrder)
	require.NoError(t, err)
	assert.True(t, deferred)

	deferred, err = r.IsDeferred(cardOrder)
	require.NoError(t, err)
	assert.False(t, deferred)

	_, err = r.IsDeferred(nil)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))

	noInfo := model.NewOrder("o3", "s", "GBP", requireDecimal(t, "10"), nil)
	_, err = r.IsDeferred(noInfo)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
}
