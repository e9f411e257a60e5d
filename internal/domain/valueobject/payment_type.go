package valueobject

import (
	"fmt"
	"strings"
)

// PaymentType identifies one of the payment methods supported by the gateway
// integration. The set is closed: adding a method means adding a value here,
// a PaymentInfo variant, and a request strategy.
type PaymentType struct {
	value string
}

var (
	TypeCard       = PaymentType{"CARD"}
	TypeMada       = PaymentType{"MADA"}
	TypeApplePay   = PaymentType{"APPLEPAY"}
	TypeGooglePay  = PaymentType{"GOOGLEPAY"}
	TypePayPal     = PaymentType{"PAYPAL"}
	TypeKlarna     = PaymentType{"KLARNA"}
	TypeSEPA       = PaymentType{"SEPA"}
	TypeACH        = PaymentType{"ACH"}
	TypeMultibanco = PaymentType{"MULTIBANCO"}
	TypeP24        = PaymentType{"P24"}
	TypeFawry      = PaymentType{"FAWRY"}
	TypeQPay       = PaymentType{"QPAY"}
	TypeKnet       = PaymentType{"KNET"}
	TypeBancontact = PaymentType{"BANCONTACT"}
	TypeAlipay     = PaymentType{"ALIPAY"}
	TypeBenefitPay = PaymentType{"BENEFITPAY"}
	TypeOxxo       = PaymentType{"OXXO"}
	TypePoli       = PaymentType{"POLI"}
)

var validTypes = map[string]PaymentType{
	"CARD":       TypeCard,
	"MADA":       TypeMada,
	"APPLEPAY":   TypeApplePay,
	"GOOGLEPAY":  TypeGooglePay,
	"PAYPAL":     TypePayPal,
	"KLARNA":     TypeKlarna,
	"SEPA":       TypeSEPA,
	"ACH":        TypeACH,
	"MULTIBANCO": TypeMultibanco,
	"P24":        TypeP24,
	"FAWRY":      TypeFawry,
	"QPAY":       TypeQPay,
	"KNET":       TypeKnet,
	"BANCONTACT": TypeBancontact,
	"ALIPAY":     TypeAlipay,
	"BENEFITPAY": TypeBenefitPay,
	"OXXO":       TypeOxxo,
	"POLI":       TypePoli,
}

// NewPaymentType validates and creates a PaymentType from a string,
// case-insensitively.
func NewPaymentType(s string) (PaymentType, error) {
	if t, ok := validTypes[strings.ToUpper(s)]; ok {
		return t, nil
	}
	return PaymentType{}, fmt.Errorf("invalid payment type: %q", s)
}

// All returns every supported payment type.
func All() []PaymentType {
	out := make([]PaymentType, 0, len(validTypes))
	for _, t := range validTypes {
		out = append(out, t)
	}
	return out
}

// String returns the string representation of the payment type.
func (t PaymentType) String() string {
	return t.value
}

// IsZero returns true if the payment type is uninitialized.
func (t PaymentType) IsZero() bool {
	return t.value == ""
}

// IsCardScheme returns true for methods processed through the card rails
// (regular cards and Mada cards).
func (t PaymentType) IsCardScheme() bool {
	return t == TypeCard || t == TypeMada
}
