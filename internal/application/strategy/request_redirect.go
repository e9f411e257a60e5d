package strategy

import (
	"context"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// knetLanguage is the redirect-page language requested for Knet.
const knetLanguage = "en"

// benefitPayIntegrationType selects the hosted redirect integration.
const benefitPayIntegrationType = "web"

// redirectStrategy covers the redirect-style alternative payment methods
// whose source needs at most the country, account holder and email of the
// payer. Per-method differences are captured in the sourceFields hook.
type redirectStrategy struct {
	baseStrategy
	sourceType   string
	sourceFields func(src *gateway.Source, cart *model.Cart, info *model.APMPaymentInfo) error
}

func (s *redirectStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.APMPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not an alternative payment method", cart.Code)
	}

	src := &gateway.Source{Type: s.sourceType}
	if s.sourceFields != nil {
		if err := s.sourceFields(src, cart, info); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// NewPayPalStrategy builds the PayPal redirect strategy. PayPal needs no
// source fields beyond the type.
func NewPayPalStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypePayPal},
		sourceType:   gateway.SourcePayPal,
	}
}

// NewP24Strategy builds the Przelewy24 strategy. P24 requires the payer's
// email, name and billing country.
func NewP24Strategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeP24},
		sourceType:   gateway.SourceP24,
		sourceFields: func(src *gateway.Source, cart *model.Cart, info *model.APMPaymentInfo) error {
			country, err := billingCountry(cart, info.BillingAddress(), info.Method)
			if err != nil {
				return err
			}
			if cart.Customer == nil || cart.Customer.Email == "" {
				return errs.InvalidArgument("p24 payment for cart %s requires a customer email", cart.Code)
			}
			holder, err := accountHolderName(cart, info)
			if err != nil {
				return err
			}
			src.PaymentCountry = country
			src.AccountHolderName = holder
			src.Email = cart.Customer.Email
			return nil
		},
	}
}

// NewBancontactStrategy builds the Bancontact strategy, which requires the
// account holder name and billing country.
func NewBancontactStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeBancontact},
		sourceType:   gateway.SourceBancontact,
		sourceFields: func(src *gateway.Source, cart *model.Cart, info *model.APMPaymentInfo) error {
			country, err := billingCountry(cart, info.BillingAddress(), info.Method)
			if err != nil {
				return err
			}
			holder, err := accountHolderName(cart, info)
			if err != nil {
				return err
			}
			src.PaymentCountry = country
			src.AccountHolderName = holder
			return nil
		},
	}
}

// NewMultibancoStrategy builds the Multibanco strategy. The response carries
// a static reference the customer pays at an ATM, so the response side uses a
// dedicated link key.
func NewMultibancoStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeMultibanco},
		sourceType:   gateway.SourceMultibanco,
		sourceFields: func(src *gateway.Source, cart *model.Cart, info *model.APMPaymentInfo) error {
			country, err := billingCountry(cart, info.BillingAddress(), info.Method)
			if err != nil {
				return err
			}
			holder, err := accountHolderName(cart, info)
			if err != nil {
				return err
			}
			src.PaymentCountry = country
			src.AccountHolderName = holder
			return nil
		},
	}
}

// NewAlipayStrategy builds the Alipay+ strategy.
func NewAlipayStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeAlipay},
		sourceType:   gateway.SourceAlipay,
	}
}

// NewQPayStrategy builds the QPay strategy.
func NewQPayStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeQPay},
		sourceType:   gateway.SourceQPay,
	}
}

// NewKnetStrategy builds the Knet strategy with the fixed redirect language.
func NewKnetStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeKnet},
		sourceType:   gateway.SourceKnet,
		sourceFields: func(src *gateway.Source, _ *model.Cart, _ *model.APMPaymentInfo) error {
			src.Language = knetLanguage
			return nil
		},
	}
}

// NewBenefitPayStrategy builds the BenefitPay strategy.
func NewBenefitPayStrategy(deps Deps) RequestStrategy {
	return &redirectStrategy{
		baseStrategy: baseStrategy{deps: deps, ptype: valueobject.TypeBenefitPay},
		sourceType:   gateway.SourceBenefitPay,
		sourceFields: func(src *gateway.Source, _ *model.Cart, _ *model.APMPaymentInfo) error {
			src.IntegrationType = benefitPayIntegrationType
			return nil
		},
	}
}

// billingCountry resolves the country the payment method validates against,
// preferring the billing address and falling back to the delivery address.
func billingCountry(cart *model.Cart, billing *model.Address, method string) (string, error) {
	if billing != nil && billing.CountryCode != "" {
		return billing.CountryCode, nil
	}
	if cart.DeliveryAddress != nil && cart.DeliveryAddress.CountryCode != "" {
		return cart.DeliveryAddress.CountryCode, nil
	}
	return "", errs.InvalidArgument("cart %s has no billing country for %s payment", cart.Code, method)
}

// accountHolderName resolves the payer name, preferring the billing address
// and falling back to the checkout customer.
func accountHolderName(cart *model.Cart, info *model.APMPaymentInfo) (string, error) {
	if addr := info.BillingAddress(); addr != nil {
		if name := addr.FullName(); name != "" {
			return name, nil
		}
	}
	if cart.Customer != nil && cart.Customer.Name != "" {
		return cart.Customer.Name, nil
	}
	return "", errs.InvalidArgument("cart %s has no account holder name for %s payment", cart.Code, info.Method)
}
