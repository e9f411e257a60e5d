package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// ApplePayStrategy builds requests from retokenized Apple Pay tokens. Wallet
// tokens already carry device authentication, so no 3DS block is sent.
type ApplePayStrategy struct {
	baseStrategy
}

func NewApplePayStrategy(deps Deps) *ApplePayStrategy {
	return &ApplePayStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeApplePay}}
}

func (s *ApplePayStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.ApplePayPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not apple pay", cart.Code)
	}
	if info.Token == "" {
		return nil, errs.InvalidArgument("apple pay token for cart %s cannot be empty", cart.Code)
	}

	return &gateway.Source{
		Type:           gateway.SourceToken,
		Token:          info.Token,
		BillingAddress: wireAddress(info.BillingAddress()),
	}, nil
}

// GooglePayStrategy builds requests from retokenized Google Pay tokens.
type GooglePayStrategy struct {
	baseStrategy
}

func NewGooglePayStrategy(deps Deps) *GooglePayStrategy {
	return &GooglePayStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeGooglePay}}
}

func (s *GooglePayStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.GooglePayPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not google pay", cart.Code)
	}
	if info.Token == "" {
		return nil, errs.InvalidArgument("google pay token for cart %s cannot be empty", cart.Code)
	}

	return &gateway.Source{
		Type:           gateway.SourceToken,
		Token:          info.Token,
		BillingAddress: wireAddress(info.BillingAddress()),
	}, nil
}
