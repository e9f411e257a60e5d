package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/application/dto"
	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/gateway"
	"github.com/cartwise/payments/pkg/money"
)

// RequestFactory builds gateway requests for the four payment operations.
// Authorization requests are delegated to the per-type strategies; capture,
// void and refund are type-agnostic.
type RequestFactory struct {
	deps     strategy.Deps
	registry *strategy.Registry
}

// NewRequestFactory creates the factory over a populated strategy registry.
func NewRequestFactory(deps strategy.Deps, registry *strategy.Registry) *RequestFactory {
	return &RequestFactory{deps: deps, registry: registry}
}

// CreateAuthorizationRequest resolves the cart's payment type and builds the
// authorization request through the matching strategy.
func (f *RequestFactory) CreateAuthorizationRequest(ctx context.Context, cart *model.Cart) (*gateway.PaymentRequest, error) {
	if cart == nil {
		return nil, errs.InvalidArgument("cart model cannot be null")
	}
	if cart.PaymentInfo() == nil {
		return nil, errs.InvalidArgument("payment info for cart %s cannot be null", cart.Code)
	}

	ptype, err := f.deps.Resolver.ResolveType(cart.PaymentInfo())
	if err != nil {
		return nil, err
	}
	s, err := f.registry.FindStrategy(ptype)
	if err != nil {
		return nil, err
	}
	return strategy.BuildAuthorizationRequest(ctx, f.deps, s, cart)
}

// CreateCaptureRequest builds a capture request for an authorized payment.
func (f *RequestFactory) CreateCaptureRequest(cmd dto.CaptureCommand) (*gateway.CaptureRequest, error) {
	amount, err := f.minorUnits(cmd.CurrencyCode, cmd.Amount, cmd.Reference, cmd.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	return &gateway.CaptureRequest{
		PaymentID: cmd.GatewayPaymentID,
		Amount:    amount,
		Reference: cmd.Reference,
		Metadata:  f.metadata(cmd.SiteID),
	}, nil
}

// CreateVoidRequest builds a void request for an uncaptured authorization.
func (f *RequestFactory) CreateVoidRequest(cmd dto.VoidCommand) (*gateway.VoidRequest, error) {
	amount, err := f.minorUnits(cmd.CurrencyCode, cmd.Amount, cmd.Reference, cmd.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	return &gateway.VoidRequest{
		PaymentID: cmd.GatewayPaymentID,
		Amount:    amount,
		Reference: cmd.Reference,
		Metadata:  f.metadata(cmd.SiteID),
	}, nil
}

// CreateRefundRequest builds a refund request for a captured payment.
func (f *RequestFactory) CreateRefundRequest(cmd dto.RefundCommand) (*gateway.RefundRequest, error) {
	amount, err := f.minorUnits(cmd.CurrencyCode, cmd.Amount, cmd.Reference, cmd.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	return &gateway.RefundRequest{
		PaymentID: cmd.GatewayPaymentID,
		Amount:    amount,
		Reference: cmd.Reference,
		Metadata:  f.metadata(cmd.SiteID),
	}, nil
}

// CreateFollowOnRefundRequest builds a refund for a payment known only by its
// gateway reference. The original payment details are fetched first; ACH and
// SEPA sources need a refund destination derived from the echoed bank-account
// fields.
func (f *RequestFactory) CreateFollowOnRefundRequest(ctx context.Context, cmd dto.FollowOnRefundCommand) (*gateway.RefundRequest, error) {
	req, err := f.CreateRefundRequest(dto.RefundCommand{
		GatewayPaymentID: cmd.GatewayPaymentID,
		Amount:           cmd.Amount,
		CurrencyCode:     cmd.CurrencyCode,
		Reference:        cmd.Reference,
		SiteID:           cmd.SiteID,
	})
	if err != nil {
		return nil, err
	}

	details, err := f.deps.Gateway.GetPaymentDetails(ctx, cmd.GatewayPaymentID)
	if err != nil {
		return nil, errs.GatewayIntegration("get payment details", err)
	}
	if details == nil || details.Source == nil {
		return req, nil
	}

	switch details.Source.Type {
	case gateway.SourceACH, gateway.SourceSEPA:
		first, last := splitHolderName(details.Source.AccountHolderName)
		req.Destination = &gateway.RefundDestination{
			AccountType:   details.Source.AccountType,
			AccountNumber: details.Source.AccountNumber,
			BankCode:      details.Source.BankCode,
			FirstName:     first,
			LastName:      last,
		}
	}
	return req, nil
}

func (f *RequestFactory) minorUnits(currencyCode string, amount decimal.Decimal, reference, paymentID string) (int64, error) {
	if paymentID == "" {
		return 0, &errs.MissingFieldError{Field: "payment reference"}
	}
	if reference == "" {
		return 0, &errs.MissingFieldError{Field: "reference"}
	}
	if currencyCode == "" {
		return 0, &errs.MissingFieldError{Field: "currency"}
	}
	if amount.IsZero() || amount.IsNegative() {
		return 0, &errs.MissingFieldError{Field: "amount"}
	}
	return money.MinorUnits(currencyCode, amount)
}

func (f *RequestFactory) metadata(siteID string) map[string]string {
	return map[string]string{
		strategy.MetadataKeySite:  siteID,
		strategy.MetadataKeyBuild: f.deps.BuildTag,
	}
}

// splitHolderName splits a combined account holder name into first and last
// name. The remainder after the first token is the last name; a single token
// is used for both so the destination is never half-empty.
func splitHolderName(name string) (first, last string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], tokens[0]
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
