package gateway

import (
	"fmt"
	"time"
)

// Response codes and statuses fixed by the gateway contract.
const (
	// ApprovedCode is the gateway's "authorization approved" response code.
	ApprovedCode = "10000"

	StatusPending  = "Pending"
	StatusDeclined = "Declined"
	StatusCaptured = "Captured"

	// LinkRedirect is the standard redirect link key on pending responses.
	LinkRedirect = "redirect"
	// LinkMultibancoTicket is the link key Multibanco pending responses use
	// instead of the standard redirect key.
	LinkMultibancoTicket = "multibanco:static-reference-page"
)

// Link is one HATEOAS link on a gateway response.
type Link struct {
	Href string `json:"href"`
}

// ResponseSource echoes the funding source on responses; refund-destination
// derivation reads the bank-account fields from it.
type ResponseSource struct {
	Type              string `json:"type"`
	ID                string `json:"id,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	BankCode          string `json:"bank_code,omitempty"`
	Scheme            string `json:"scheme,omitempty"`
	Last4             string `json:"last4,omitempty"`
	Bin               string `json:"bin,omitempty"`
}

// ResponseCustomer echoes the customer on responses.
type ResponseCustomer struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// PaymentResponse is the gateway's answer to an authorization request.
type PaymentResponse struct {
	ID           string            `json:"id"`
	ActionID     string            `json:"action_id,omitempty"`
	Approved     bool              `json:"approved"`
	Status       string            `json:"status"`
	ResponseCode string            `json:"response_code"`
	Reference    string            `json:"reference,omitempty"`
	Source       *ResponseSource   `json:"source,omitempty"`
	Customer     *ResponseCustomer `json:"customer,omitempty"`
	Links        map[string]Link   `json:"_links,omitempty"`
	ProcessedOn  time.Time         `json:"processed_on,omitempty"`
}

// RedirectLink returns the href of the named link and whether it was present.
func (r *PaymentResponse) RedirectLink(key string) (string, bool) {
	if r == nil || r.Links == nil {
		return "", false
	}
	l, ok := r.Links[key]
	if !ok || l.Href == "" {
		return "", false
	}
	return l.Href, true
}

// GetPaymentResponse is the gateway's payment-details view, used by follow-on
// operations that only hold a payment reference.
type GetPaymentResponse struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
	Source    *ResponseSource `json:"source,omitempty"`
}

// CaptureResponse acknowledges a capture request.
type CaptureResponse struct {
	ActionID  string `json:"action_id"`
	Reference string `json:"reference,omitempty"`
}

// VoidResponse acknowledges a void request.
type VoidResponse struct {
	ActionID  string `json:"action_id"`
	Reference string `json:"reference,omitempty"`
}

// RefundResponse acknowledges a refund request.
type RefundResponse struct {
	ActionID  string `json:"action_id"`
	Reference string `json:"reference,omitempty"`
}

// CreateInstrumentResponse reports a registered instrument.
type CreateInstrumentResponse struct {
	ID          string `json:"id"`
	Fingerprint string `json:"fingerprint,omitempty"`
	CustomerID  string `json:"customer_id,omitempty"`
}

// HTTPError is a non-2xx gateway answer. The authorize flow classifies 5xx as
// integration failures and everything else as an invalid-request outcome.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gateway returned HTTP %d: %s", e.StatusCode, e.Body)
}

// IsServerError reports whether the error represents a gateway-side 5xx.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500
}
