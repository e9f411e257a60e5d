package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// SEPAStrategy registers a gateway instrument from the IBAN and mandate data
// before authorizing, then authorizes against the instrument id. The
// instrument registration happens inside source building, so a failed
// registration aborts the whole request.
type SEPAStrategy struct {
	baseStrategy
}

func NewSEPAStrategy(deps Deps) *SEPAStrategy {
	return &SEPAStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeSEPA}}
}

func (s *SEPAStrategy) BuildSource(ctx context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.SEPAPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not sepa", cart.Code)
	}
	if info.IBAN == "" {
		return nil, errs.InvalidArgument("sepa iban for cart %s cannot be empty", cart.Code)
	}

	if info.InstrumentID() == "" {
		if err := s.registerInstrument(ctx, cart, info); err != nil {
			return nil, err
		}
	}

	return &gateway.Source{
		Type: gateway.SourceID,
		ID:   info.InstrumentID(),
	}, nil
}

func (s *SEPAStrategy) registerInstrument(ctx context.Context, cart *model.Cart, info *model.SEPAPaymentInfo) error {
	req := &gateway.CreateInstrumentRequest{
		Type: gateway.SourceSEPA,
		InstrumentData: &gateway.InstrumentData{
			AccountNumber: info.IBAN,
			Currency:      cart.CurrencyCode,
			PaymentType:   gateway.PaymentTypeRegular,
			MandateID:     info.MandateReference,
		},
		AccountHolder: &gateway.AccountHolder{
			FirstName:      info.FirstName,
			LastName:       info.LastName,
			BillingAddress: wireAddress(info.BillingAddress()),
		},
	}

	resp, err := s.deps.Gateway.CreateInstrument(ctx, req)
	if err != nil {
		s.deps.Logger.Error("sepa instrument registration failed",
			"cart", cart.Code, "error", err)
		return errs.InvalidArgument("could not register sepa instrument for cart %s", cart.Code)
	}
	if resp == nil || resp.ID == "" {
		return errs.InvalidArgument("gateway returned no instrument for cart %s", cart.Code)
	}

	info.SetInstrument(resp.ID, resp.CustomerID)
	return nil
}

// Customize attaches the gateway customer id assigned during instrument
// registration, when one was returned.
func (s *SEPAStrategy) Customize(req *gateway.PaymentRequest, cart *model.Cart) error {
	info := cart.PaymentInfo().(*model.SEPAPaymentInfo)
	if info.CustomerID() == "" {
		return nil
	}
	if req.Customer == nil {
		req.Customer = &gateway.Customer{}
	}
	req.Customer.ID = info.CustomerID()
	return nil
}
