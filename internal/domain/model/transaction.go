package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/domain/valueobject"
)

// PaymentTransaction is the append-only ledger of gateway lifecycle events
// for one order. Entries are keyed by (gateway request id, entry type) for
// idempotent webhook reconciliation.
type PaymentTransaction struct {
	ID        uuid.UUID
	OrderCode string
	// RequestID is the gateway payment id the transaction was opened with.
	RequestID string
	CreatedAt time.Time

	Order   *Order
	entries []*PaymentTransactionEntry
}

// NewPaymentTransaction opens a transaction ledger for an order.
func NewPaymentTransaction(orderCode, requestID string) *PaymentTransaction {
	return &PaymentTransaction{
		ID:        uuid.New(),
		OrderCode: orderCode,
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}
}

// Entries returns the ordered entry list.
func (t *PaymentTransaction) Entries() []*PaymentTransactionEntry {
	return t.entries
}

// AddEntry appends an entry to the ledger.
func (t *PaymentTransaction) AddEntry(e *PaymentTransactionEntry) {
	t.entries = append(t.entries, e)
}

// PendingEntry returns the PENDING entry matching the gateway request id and
// entry type, or nil when none exists. At most one such entry can be pending
// at a time.
func (t *PaymentTransaction) PendingEntry(requestID string, entryType valueobject.EntryType) *PaymentTransactionEntry {
	for _, e := range t.entries {
		if e.RequestID == requestID && e.Type == entryType && e.Status() == valueobject.StatusPending {
			return e
		}
	}
	return nil
}

// ResolvedEntry returns a non-pending entry matching the gateway request id
// and entry type, or nil. Used to detect duplicate webhook deliveries.
func (t *PaymentTransaction) ResolvedEntry(requestID string, entryType valueobject.EntryType) *PaymentTransactionEntry {
	for _, e := range t.entries {
		if e.RequestID == requestID && e.Type == entryType && e.Status().IsTerminal() {
			return e
		}
	}
	return nil
}

// HasEntryWithStatus reports whether any entry of the given type carries one
// of the given statuses.
func (t *PaymentTransaction) HasEntryWithStatus(entryType valueobject.EntryType, statuses ...valueobject.EntryStatus) bool {
	for _, e := range t.entries {
		if e.Type != entryType {
			continue
		}
		for _, s := range statuses {
			if e.Status() == s {
				return true
			}
		}
	}
	return false
}

// HasEntryOfType reports whether any entry of the given type exists.
func (t *PaymentTransaction) HasEntryOfType(entryType valueobject.EntryType) bool {
	for _, e := range t.entries {
		if e.Type == entryType {
			return true
		}
	}
	return false
}

// PaymentTransactionEntry records one lifecycle event. Status is monotonic:
// PENDING resolves to exactly one terminal status and never changes again.
type PaymentTransactionEntry struct {
	ID        uuid.UUID
	Type      valueobject.EntryType
	RequestID string
	Amount    decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time

	status valueobject.EntryStatus
	detail valueobject.StatusDetail
}

// NewEntry creates a transaction entry with an initial status and detail.
func NewEntry(
	entryType valueobject.EntryType,
	requestID string,
	status valueobject.EntryStatus,
	detail valueobject.StatusDetail,
	amount decimal.Decimal,
	currency string,
) *PaymentTransactionEntry {
	now := time.Now().UTC()
	return &PaymentTransactionEntry{
		ID:        uuid.New(),
		Type:      entryType,
		RequestID: requestID,
		Amount:    amount,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
		status:    status,
		detail:    detail,
	}
}

// ReconstructEntry recreates an entry from persistence without transition checks.
func ReconstructEntry(
	id uuid.UUID,
	entryType valueobject.EntryType,
	requestID string,
	status valueobject.EntryStatus,
	detail valueobject.StatusDetail,
	amount decimal.Decimal,
	currency string,
	createdAt, updatedAt time.Time,
) *PaymentTransactionEntry {
	return &PaymentTransactionEntry{
		ID:        id,
		Type:      entryType,
		RequestID: requestID,
		Amount:    amount,
		Currency:  currency,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		status:    status,
		detail:    detail,
	}
}

// Status returns the current entry status.
func (e *PaymentTransactionEntry) Status() valueobject.EntryStatus { return e.status }

// StatusDetail returns the current status detail.
func (e *PaymentTransactionEntry) StatusDetail() valueobject.StatusDetail { return e.detail }

// Resolve transitions a PENDING entry to a terminal status. Resolving an
// already-terminal entry is an error; the reconciler treats that case as a
// duplicate delivery and never calls Resolve for it.
func (e *PaymentTransactionEntry) Resolve(status valueobject.EntryStatus, detail valueobject.StatusDetail) error {
	if !status.IsTerminal() {
		return fmt.Errorf("cannot resolve entry %s to non-terminal status %s", e.ID, status)
	}
	if e.status != valueobject.StatusPending {
		return fmt.Errorf("entry %s already resolved to %s", e.ID, e.status)
	}
	e.status = status
	e.detail = detail
	e.UpdatedAt = time.Now().UTC()
	return nil
}
