package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// UnsupportedStrategy is registered for payment types the platform recognizes
// but the gateway integration cannot process yet. Requesting one is an
// explicit failure rather than a missing-strategy lookup error.
type UnsupportedStrategy struct {
	baseStrategy
}

func NewUnsupportedStrategy(deps Deps, t valueobject.PaymentType) *UnsupportedStrategy {
	return &UnsupportedStrategy{baseStrategy{deps: deps, ptype: t}}
}

func (s *UnsupportedStrategy) BuildSource(context.Context, *model.Cart) (*gateway.Source, error) {
	return nil, errs.UnsupportedOperation("authorization for payment type %s is not supported", s.ptype)
}
