// Package dto defines the commands and results crossing the application
// boundary. Amounts enter as decimals and are converted to gateway minor
// units inside the use cases.
package dto

import "github.com/shopspring/decimal"

// CaptureCommand asks for a capture of a previously authorized payment.
type CaptureCommand struct {
	GatewayPaymentID string
	Amount           decimal.Decimal
	CurrencyCode     string
	Reference        string
	SiteID           string
}

// VoidCommand cancels an uncaptured authorization.
type VoidCommand struct {
	GatewayPaymentID string
	Amount           decimal.Decimal
	CurrencyCode     string
	Reference        string
	SiteID           string
}

// RefundCommand returns captured funds to the customer.
type RefundCommand struct {
	GatewayPaymentID string
	Amount           decimal.Decimal
	CurrencyCode     string
	Reference        string
	SiteID           string
}

// FollowOnRefundCommand refunds a payment identified only by its gateway
// reference, typically raised from back office tooling. The original payment
// is fetched to derive a refund destination when the source type needs one.
type FollowOnRefundCommand struct {
	GatewayPaymentID string
	Amount           decimal.Decimal
	CurrencyCode     string
	Reference        string
	SiteID           string
}

// AuthorizeResult is the normalized outcome of an authorization attempt
// handed to the checkout flow.
type AuthorizeResult struct {
	Success          bool
	Redirect         bool
	RedirectURL      string
	DataRequired     bool
	GatewayPaymentID string
	// Declined marks a definitive gateway decline as opposed to a
	// communication or integration failure.
	Declined bool
}
