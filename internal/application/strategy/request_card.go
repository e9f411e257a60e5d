package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// CardStrategy builds authorization requests for regular tokenized cards.
type CardStrategy struct {
	baseStrategy
}

func NewCardStrategy(deps Deps) *CardStrategy {
	return &CardStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeCard}}
}

func (s *CardStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	card, ok := cart.PaymentInfo().(*model.CardPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not a card", cart.Code)
	}
	if card.Token == "" {
		return nil, errs.InvalidArgument("card token for cart %s cannot be empty", cart.Code)
	}

	return &gateway.Source{
		Type:           gateway.SourceToken,
		Token:          card.Token,
		BillingAddress: wireAddress(card.BillingAddress()),
	}, nil
}

// ThreeDS follows the merchant's site-level 3DS configuration.
func (s *CardStrategy) ThreeDS(cart *model.Cart) *ThreeDSDecision {
	if !s.deps.Site.IsThreeDSEnabled(cart.SiteID) {
		return nil
	}
	return &ThreeDSDecision{
		Enabled:    true,
		AttemptN3D: s.deps.Site.IsAttemptN3D(cart.SiteID),
	}
}

// MadaStrategy builds requests for mada-scheme cards. Mada mandates 3-D
// Secure and forbids sending an explicit capture flag, regardless of merchant
// configuration.
type MadaStrategy struct {
	baseStrategy
}

func NewMadaStrategy(deps Deps) *MadaStrategy {
	return &MadaStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeMada}}
}

func (s *MadaStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	card, ok := cart.PaymentInfo().(*model.CardPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not a card", cart.Code)
	}
	if card.Token == "" {
		return nil, errs.InvalidArgument("card token for cart %s cannot be empty", cart.Code)
	}

	return &gateway.Source{
		Type:           gateway.SourceToken,
		Token:          card.Token,
		BillingAddress: wireAddress(card.BillingAddress()),
	}, nil
}

func (s *MadaStrategy) Capture(*model.Cart) *bool { return nil }

func (s *MadaStrategy) ThreeDS(*model.Cart) *ThreeDSDecision {
	return &ThreeDSDecision{Enabled: true}
}

// Customize stamps the mada scheme marker into the request metadata.
func (s *MadaStrategy) Customize(req *gateway.PaymentRequest, _ *model.Cart) error {
	req.Metadata[MetadataKeyScheme] = SchemeMada
	return nil
}
