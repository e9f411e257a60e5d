package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
	"github.com/cartwise/payments/pkg/money"
)

// FawryStrategy builds the Fawry cash-reference request. Fawry must be
// configured for the deployment, needs the customer's mobile number and
// email, and wants at least one product line, which is synthesized from the
// cart total.
type FawryStrategy struct {
	baseStrategy
}

func NewFawryStrategy(deps Deps) *FawryStrategy {
	return &FawryStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeFawry}}
}

func (s *FawryStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	if _, ok := s.deps.APMs.Configuration(valueobject.TypeFawry); !ok {
		return nil, errs.InvalidArgument("fawry is not configured for this deployment")
	}

	info, ok := cart.PaymentInfo().(*model.FawryPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not fawry", cart.Code)
	}
	if info.MobileNumber == "" {
		return nil, &errs.MissingFieldError{Field: "mobile number"}
	}
	if info.Email == "" {
		return nil, &errs.MissingFieldError{Field: "email"}
	}

	total, err := money.MinorUnits(cart.CurrencyCode, cart.TotalPrice)
	if err != nil {
		return nil, errs.InvalidArgument("cart %s has invalid currency %q", cart.Code, cart.CurrencyCode)
	}

	return &gateway.Source{
		Type:         gateway.SourceFawry,
		MobileNumber: info.MobileNumber,
		Email:        info.Email,
		Products: []gateway.Product{{
			Description: "Order " + cart.Code,
			Quantity:    1,
			Price:       total,
		}},
	}, nil
}
