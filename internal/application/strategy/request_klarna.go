package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// KlarnaStrategy authorizes against a Klarna payment context created during
// checkout. Klarna funds are always captured in a separate follow-up call, so
// the capture flag is forced off no matter what the site configures.
type KlarnaStrategy struct {
	baseStrategy
}

func NewKlarnaStrategy(deps Deps) *KlarnaStrategy {
	return &KlarnaStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeKlarna}}
}

func (s *KlarnaStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.KlarnaPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not klarna", cart.Code)
	}
	if info.PaymentContextID == "" {
		return nil, errs.InvalidArgument("klarna payment context for cart %s cannot be empty", cart.Code)
	}
	if _, err := billingCountry(cart, info.BillingAddress(), "klarna"); err != nil {
		return nil, err
	}
	return &gateway.Source{Type: gateway.SourceKlarna}, nil
}

func (s *KlarnaStrategy) Capture(*model.Cart) *bool { return boolPtr(false) }

// Customize moves the payment context id onto the request body.
func (s *KlarnaStrategy) Customize(req *gateway.PaymentRequest, cart *model.Cart) error {
	info := cart.PaymentInfo().(*model.KlarnaPaymentInfo)
	req.PaymentContextID = info.PaymentContextID
	return nil
}
