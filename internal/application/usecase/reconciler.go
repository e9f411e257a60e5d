package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/domain/errs"
	domainevent "github.com/cartwise/payments/internal/domain/event"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/valueobject"
	pkgevents "github.com/cartwise/payments/pkg/events"
	"github.com/cartwise/payments/pkg/money"
)

var reconciledEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "payments",
	Subsystem: "reconciler",
	Name:      "entries_total",
	Help:      "Transaction entries reconciled from webhook events, by entry type and resulting status.",
}, []string{"entry_type", "status"})

// TransactionReconciler applies inbound gateway events to the transaction
// ledger. Entries move PENDING to exactly one of ACCEPTED, REJECTED or
// REVIEW and never change again; a duplicate delivery for an already
// resolved entry is a no-op. Deliveries for the same order are serialized
// with a per-order lock.
type TransactionReconciler struct {
	site      port.SiteConfig
	txRepo    port.TransactionRepository
	eventRepo port.PaymentEventRepository
	publisher port.EventPublisher
	topic     string
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTransactionReconciler creates the reconciler. txRepo, eventRepo and
// publisher may be nil; persistence and event publication are then skipped.
func NewTransactionReconciler(
	site port.SiteConfig,
	txRepo port.TransactionRepository,
	eventRepo port.PaymentEventRepository,
	publisher port.EventPublisher,
	topic string,
	logger *slog.Logger,
) *TransactionReconciler {
	return &TransactionReconciler{
		site:      site,
		txRepo:    txRepo,
		eventRepo: eventRepo,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// orderLock returns the mutex serializing deliveries for one order code.
func (r *TransactionReconciler) orderLock(orderCode string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[orderCode]
	if !ok {
		l = &sync.Mutex{}
		r.locks[orderCode] = l
	}
	return l
}

func (r *TransactionReconciler) validate(event *model.PaymentEvent, tx *model.PaymentTransaction, entryType valueobject.EntryType) error {
	if event == nil {
		return errs.InvalidArgument("payment event cannot be null")
	}
	if tx == nil {
		return errs.InvalidArgument("payment transaction cannot be null")
	}
	if entryType.IsZero() {
		return errs.InvalidArgument("transaction entry type cannot be null")
	}
	return nil
}

// AcceptPayment records a positive gateway notification. An existing PENDING
// entry for the same gateway id and entry type is resolved to ACCEPTED in
// place, unless the event is itself a pending notification, which leaves the
// entry open. Otherwise a new entry is created, whose status depends on the
// event: payment_pending events open a PENDING entry, risk-flagged events
// land in REVIEW unless the site ignores risk, everything else is ACCEPTED
// outright.
func (r *TransactionReconciler) AcceptPayment(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction, entryType valueobject.EntryType) error {
	if err := r.validate(event, tx, entryType); err != nil {
		return err
	}

	lock := r.orderLock(tx.OrderCode)
	lock.Lock()
	defer lock.Unlock()

	if resolved := tx.ResolvedEntry(event.GatewayPaymentID, entryType); resolved != nil {
		r.logger.Info("duplicate webhook for resolved entry, skipping",
			"order", tx.OrderCode, "payment_id", event.GatewayPaymentID,
			"entry_type", entryType.String(), "status", resolved.Status().String())
		return r.retain(ctx, event)
	}

	if pending := tx.PendingEntry(event.GatewayPaymentID, entryType); pending != nil {
		// A redelivered pending notification never signaled approval, so it
		// must not resolve the entry it opened on first delivery.
		if event.Type == valueobject.EventPaymentPending {
			r.logger.Info("duplicate pending webhook, entry already open",
				"order", tx.OrderCode, "payment_id", event.GatewayPaymentID,
				"entry_type", entryType.String())
			return r.retain(ctx, event)
		}
		if err := pending.Resolve(valueobject.StatusAccepted, valueobject.DetailSuccessful); err != nil {
			return err
		}
		reconciledEntries.WithLabelValues(entryType.String(), valueobject.StatusAccepted.String()).Inc()
		return r.finish(ctx, event, tx, entryType, valueobject.StatusAccepted)
	}

	status, detail := r.classifyAccept(event)
	tx.AddEntry(model.NewEntry(entryType, event.GatewayPaymentID, status, detail, r.eventAmount(event), event.CurrencyCode))
	reconciledEntries.WithLabelValues(entryType.String(), status.String()).Inc()

	if status == valueobject.StatusAccepted && isCaptureLike(entryType) && tx.Order != nil {
		tx.Order.Status = valueobject.OrderStatusPaymentCaptured
	}
	return r.finish(ctx, event, tx, entryType, status)
}

func (r *TransactionReconciler) classifyAccept(event *model.PaymentEvent) (valueobject.EntryStatus, valueobject.StatusDetail) {
	switch {
	case event.Type == valueobject.EventPaymentPending:
		return valueobject.StatusPending, valueobject.DetailSuccessful
	case event.Risk && r.site.IsReviewTransactionsAtRisk(event.SiteID):
		return valueobject.StatusReview, valueobject.DetailReviewNeeded
	default:
		return valueobject.StatusAccepted, valueobject.DetailSuccessful
	}
}

// RejectPayment records a negative gateway notification as a new REJECTED
// entry with a processor-decline detail.
func (r *TransactionReconciler) RejectPayment(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction, entryType valueobject.EntryType) error {
	if err := r.validate(event, tx, entryType); err != nil {
		return err
	}

	lock := r.orderLock(tx.OrderCode)
	lock.Lock()
	defer lock.Unlock()

	if resolved := tx.ResolvedEntry(event.GatewayPaymentID, entryType); resolved != nil {
		r.logger.Info("duplicate webhook for resolved entry, skipping",
			"order", tx.OrderCode, "payment_id", event.GatewayPaymentID, "entry_type", entryType.String())
		return r.retain(ctx, event)
	}

	if pending := tx.PendingEntry(event.GatewayPaymentID, entryType); pending != nil {
		if err := pending.Resolve(valueobject.StatusRejected, valueobject.DetailProcessorDecline); err != nil {
			return err
		}
	} else {
		tx.AddEntry(model.NewEntry(entryType, event.GatewayPaymentID,
			valueobject.StatusRejected, valueobject.DetailProcessorDecline,
			r.eventAmount(event), event.CurrencyCode))
	}
	reconciledEntries.WithLabelValues(entryType.String(), valueobject.StatusRejected.String()).Inc()
	return r.finish(ctx, event, tx, entryType, valueobject.StatusRejected)
}

// ReturnPayment records funds flowing back to the customer: the order is
// moved to the returned status and an ACCEPTED RETURN entry is appended.
func (r *TransactionReconciler) ReturnPayment(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction, entryType valueobject.EntryType) error {
	if err := r.validate(event, tx, entryType); err != nil {
		return err
	}

	lock := r.orderLock(tx.OrderCode)
	lock.Lock()
	defer lock.Unlock()

	if resolved := tx.ResolvedEntry(event.GatewayPaymentID, entryType); resolved != nil {
		r.logger.Info("duplicate webhook for resolved entry, skipping",
			"order", tx.OrderCode, "payment_id", event.GatewayPaymentID, "entry_type", entryType.String())
		return r.retain(ctx, event)
	}

	if tx.Order != nil {
		tx.Order.Status = valueobject.OrderStatusPaymentReturned
	}
	tx.AddEntry(model.NewEntry(entryType, event.GatewayPaymentID,
		valueobject.StatusAccepted, valueobject.DetailSuccessful,
		r.eventAmount(event), event.CurrencyCode))
	reconciledEntries.WithLabelValues(entryType.String(), valueobject.StatusAccepted.String()).Inc()

	if r.publisher != nil {
		ev := domainevent.NewPaymentReturned(tx.ID, tx.OrderCode, event.GatewayPaymentID)
		if err := r.publisher.Publish(ctx, r.topic, ev); err != nil {
			r.logger.Error("publishing payment returned event failed", "order", tx.OrderCode, "error", err)
		}
	}
	return r.persist(ctx, event, tx)
}

// finish retains the event, persists the transaction and publishes the
// matching domain event for the resulting status.
func (r *TransactionReconciler) finish(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction, entryType valueobject.EntryType, status valueobject.EntryStatus) error {
	if r.publisher != nil {
		var ev pkgevents.DomainEvent
		switch status {
		case valueobject.StatusAccepted:
			ev = domainevent.NewEntryAccepted(tx.ID, tx.OrderCode, event.GatewayPaymentID, entryType.String())
		case valueobject.StatusRejected:
			ev = domainevent.NewEntryRejected(tx.ID, tx.OrderCode, event.GatewayPaymentID, entryType.String())
		case valueobject.StatusReview:
			ev = domainevent.NewEntryUnderReview(tx.ID, tx.OrderCode, event.GatewayPaymentID, entryType.String())
		}
		if ev != nil {
			if err := r.publisher.Publish(ctx, r.topic, ev); err != nil {
				r.logger.Error("publishing reconciliation event failed", "order", tx.OrderCode, "error", err)
			}
		}
	}
	return r.persist(ctx, event, tx)
}

func (r *TransactionReconciler) persist(ctx context.Context, event *model.PaymentEvent, tx *model.PaymentTransaction) error {
	if err := r.retain(ctx, event); err != nil {
		return err
	}
	if r.txRepo == nil {
		return nil
	}
	return r.txRepo.Save(ctx, tx)
}

// retain stores the normalized event for audit.
func (r *TransactionReconciler) retain(ctx context.Context, event *model.PaymentEvent) error {
	if r.eventRepo == nil {
		return nil
	}
	return r.eventRepo.Save(ctx, event)
}

func (r *TransactionReconciler) eventAmount(event *model.PaymentEvent) decimal.Decimal {
	m, err := money.FromMinorUnits(event.CurrencyCode, event.Amount)
	if err != nil {
		r.logger.Warn("event carries unknown currency, storing raw amount",
			"currency", event.CurrencyCode, "amount", event.Amount)
		return decimal.NewFromInt(event.Amount)
	}
	return m.Amount()
}

func isCaptureLike(entryType valueobject.EntryType) bool {
	return entryType == valueobject.EntryAuthorization || entryType == valueobject.EntryCapture
}

// IsAuthorizationApproved reports whether any authorization entry across the
// order's transactions is ACCEPTED or REVIEW.
func (r *TransactionReconciler) IsAuthorizationApproved(order *model.Order) bool {
	return orderHasEntryWithStatus(order, valueobject.EntryAuthorization,
		valueobject.StatusAccepted, valueobject.StatusReview)
}

// IsAuthorizationPending reports whether the authorization has not resolved
// yet: no authorization entry exists, or one is still PENDING.
func (r *TransactionReconciler) IsAuthorizationPending(order *model.Order) bool {
	return orderEntryPending(order, valueobject.EntryAuthorization)
}

// IsCaptureApproved reports whether any capture entry is ACCEPTED.
func (r *TransactionReconciler) IsCaptureApproved(order *model.Order) bool {
	return orderHasEntryWithStatus(order, valueobject.EntryCapture, valueobject.StatusAccepted)
}

// IsCapturePending reports whether the capture has not resolved yet.
func (r *TransactionReconciler) IsCapturePending(order *model.Order) bool {
	return orderEntryPending(order, valueobject.EntryCapture)
}

// IsVoidPresent reports whether any void entry exists.
func (r *TransactionReconciler) IsVoidPresent(order *model.Order) bool {
	return orderHasEntryOfType(order, valueobject.EntryVoid)
}

// IsVoidPending reports whether the void has not resolved yet.
func (r *TransactionReconciler) IsVoidPending(order *model.Order) bool {
	return orderEntryPending(order, valueobject.EntryVoid)
}

// CaptureExists reports whether any capture entry exists.
func (r *TransactionReconciler) CaptureExists(order *model.Order) bool {
	return orderHasEntryOfType(order, valueobject.EntryCapture)
}

// IsAutoCapture reports the effective capture mode for the order: card-family
// payment infos carry their own flag, every other variant captures
// automatically.
func (r *TransactionReconciler) IsAutoCapture(order *model.Order) bool {
	info := order.PaymentInfo()
	if info == nil {
		return false
	}
	if card, ok := info.(*model.CardPaymentInfo); ok {
		return card.AutoCapture
	}
	return true
}

// IsDeferred reports whether the order pays through an alternative method
// with deferred settlement.
func (r *TransactionReconciler) IsDeferred(order *model.Order) (bool, error) {
	if order == nil {
		return false, errs.InvalidArgument("order cannot be null")
	}
	info := order.PaymentInfo()
	if info == nil {
		return false, errs.InvalidArgument("payment info for order %s cannot be null", order.Code)
	}
	switch v := info.(type) {
	case *model.APMPaymentInfo:
		return v.Deferred, nil
	case *model.KlarnaPaymentInfo:
		return v.Deferred, nil
	case *model.SEPAPaymentInfo:
		return v.Deferred, nil
	default:
		return false, nil
	}
}

func orderHasEntryWithStatus(order *model.Order, entryType valueobject.EntryType, statuses ...valueobject.EntryStatus) bool {
	if order == nil {
		return false
	}
	for _, tx := range order.Transactions() {
		if tx.HasEntryWithStatus(entryType, statuses...) {
			return true
		}
	}
	return false
}

func orderHasEntryOfType(order *model.Order, entryType valueobject.EntryType) bool {
	if order == nil {
		return false
	}
	for _, tx := range order.Transactions() {
		if tx.HasEntryOfType(entryType) {
			return true
		}
	}
	return false
}

// orderEntryPending implements the shared "pending" notion: no entry of the
// type exists yet, or one exists with PENDING status.
func orderEntryPending(order *model.Order, entryType valueobject.EntryType) bool {
	if order == nil {
		return false
	}
	exists := false
	for _, tx := range order.Transactions() {
		if tx.HasEntryOfType(entryType) {
			exists = true
		}
		if tx.HasEntryWithStatus(entryType, valueobject.StatusPending) {
			return true
		}
	}
	return !exists
}
