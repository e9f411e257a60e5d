package service

import (
	"fmt"
	"strings"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// madaBINPrefixes is the 6-digit BIN table identifying cards issued under the
// Saudi mada scheme. Mada cards ride the card rails but carry their own
// capture and 3DS rules.
var madaBINPrefixes = map[string]struct{}{
	"440647": {}, "440795": {}, "446404": {}, "457865": {}, "968208": {},
	"588845": {}, "493428": {}, "539931": {}, "558848": {}, "557606": {},
	"968210": {}, "636120": {}, "417633": {}, "468540": {}, "468541": {},
	"468542": {}, "468543": {}, "968201": {}, "446393": {}, "409201": {},
	"458456": {}, "484783": {}, "462220": {}, "455708": {}, "588848": {},
	"455036": {}, "968203": {}, "486094": {}, "486095": {}, "486096": {},
	"504300": {}, "440533": {}, "489318": {}, "489319": {}, "445564": {},
	"968211": {}, "410621": {}, "455038": {}, "427214": {}, "588850": {},
}

// TypeResolver maps stored payment-info records and inbound method names to
// the closed PaymentType enumeration.
type TypeResolver struct {
	restrictedBINs map[string]struct{}
}

// NewTypeResolver creates a resolver with the built-in mada BIN table.
func NewTypeResolver() *TypeResolver {
	return &TypeResolver{restrictedBINs: madaBINPrefixes}
}

// ResolveType maps a PaymentInfo variant to its payment type. The switch is
// exhaustive over the variant set; an unknown variant is a configuration bug
// reported as UnsupportedPaymentInfoError.
func (r *TypeResolver) ResolveType(info model.PaymentInfo) (valueobject.PaymentType, error) {
	switch v := info.(type) {
	case *model.CardPaymentInfo:
		if r.IsRestrictedCardScheme(v.BIN) {
			return valueobject.TypeMada, nil
		}
		return valueobject.TypeCard, nil
	case *model.ApplePayPaymentInfo:
		return valueobject.TypeApplePay, nil
	case *model.GooglePayPaymentInfo:
		return valueobject.TypeGooglePay, nil
	case *model.KlarnaPaymentInfo:
		return valueobject.TypeKlarna, nil
	case *model.SEPAPaymentInfo:
		return valueobject.TypeSEPA, nil
	case *model.ACHPaymentInfo:
		return valueobject.TypeACH, nil
	case *model.FawryPaymentInfo:
		return valueobject.TypeFawry, nil
	case *model.APMPaymentInfo:
		t, err := r.ResolveFromMethodName(v.Method)
		if err != nil {
			return valueobject.PaymentType{}, &errs.UnsupportedPaymentInfoError{
				Variant: fmt.Sprintf("APMPaymentInfo(%s)", v.Method),
			}
		}
		return t, nil
	case nil:
		return valueobject.PaymentType{}, &errs.UnsupportedPaymentInfoError{Variant: "nil"}
	default:
		return valueobject.PaymentType{}, &errs.UnsupportedPaymentInfoError{Variant: fmt.Sprintf("%T", info)}
	}
}

// ResolveFromMethodName maps an inbound method name (API payloads, stored APM
// method strings) to a payment type, case-insensitively.
func (r *TypeResolver) ResolveFromMethodName(name string) (valueobject.PaymentType, error) {
	t, err := valueobject.NewPaymentType(strings.TrimSpace(name))
	if err != nil {
		return valueobject.PaymentType{}, &errs.InvalidPaymentMethodError{Name: name}
	}
	return t, nil
}

// IsRestrictedCardScheme reports whether the card BIN belongs to the mada
// scheme.
func (r *TypeResolver) IsRestrictedCardScheme(bin string) bool {
	bin = strings.TrimSpace(bin)
	if len(bin) < 6 {
		return false
	}
	_, ok := r.restrictedBINs[bin[:6]]
	return ok
}
