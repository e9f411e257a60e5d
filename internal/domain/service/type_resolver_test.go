package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/service"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

func TestResolveTypeVariants(t *testing.T) {
	r := service.NewTypeResolver()

	tests := []struct {
		name string
		info model.PaymentInfo
		want valueobject.PaymentType
	}{
		{name: "visa card", info: &model.CardPaymentInfo{Token: "tok_1", BIN: "424242"}, want: valueobject.TypeCard},
		{name: "mada card by BIN", info: &model.CardPaymentInfo{Token: "tok_2", BIN: "440647"}, want: valueobject.TypeMada},
		{name: "apple pay", info: &model.ApplePayPaymentInfo{Token: "tok_ap"}, want: valueobject.TypeApplePay},
		{name: "google pay", info: &model.GooglePayPaymentInfo{Token: "tok_gp"}, want: valueobject.TypeGooglePay},
		{name: "klarna", info: &model.KlarnaPaymentInfo{PaymentContextID: "pct_1"}, want: valueobject.TypeKlarna},
		{name: "sepa", info: &model.SEPAPaymentInfo{IBAN: "DE89370400440532013000"}, want: valueobject.TypeSEPA},
		{name: "ach", info: &model.ACHPaymentInfo{AccountNumber: "12345678"}, want: valueobject.TypeACH},
		{name: "fawry", info: &model.FawryPaymentInfo{MobileNumber: "01012345678"}, want: valueobject.TypeFawry},
		{name: "generic apm paypal", info: &model.APMPaymentInfo{Method: "paypal"}, want: valueobject.TypePayPal},
		{name: "generic apm multibanco", info: &model.APMPaymentInfo{Method: "Multibanco"}, want: valueobject.TypeMultibanco},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveType(tt.info)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTypeUnsupported(t *testing.T) {
	r := service.NewTypeResolver()

	_, err := r.ResolveType(nil)
	assert.True(t, errs.IsUnsupportedPaymentInfo(err))

	_, err = r.ResolveType(&model.APMPaymentInfo{Method: "carrier_billing"})
	assert.True(t, errs.IsUnsupportedPaymentInfo(err))
}

func TestResolveFromMethodName(t *testing.T) {
	r := service.NewTypeResolver()

	got, err := r.ResolveFromMethodName("kLaRnA")
	require.NoError(t, err)
	assert.Equal(t, valueobject.TypeKlarna, got)

	got, err = r.ResolveFromMethodName(" benefitpay ")
	require.NoError(t, err)
	assert.Equal(t, valueobject.TypeBenefitPay, got)

	_, err = r.ResolveFromMethodName("wire_transfer")
	assert.True(t, errs.IsInvalidPaymentMethod(err))
}

func TestIsRestrictedCardScheme(t *testing.T) {
	r := service.NewTypeResolver()

	assert.True(t, r.IsRestrictedCardScheme("440647"))
	assert.True(t, r.IsRestrictedCardScheme("4406471111111111"))
	assert.False(t, r.IsRestrictedCardScheme("424242"))
	assert.False(t, r.IsRestrictedCardScheme("44064"))
	assert.False(t, r.IsRestrictedCardScheme(""))
}

type staticAPMStore map[valueobject.PaymentType]port.APMConfig

func (s staticAPMStore) Configuration(method valueobject.PaymentType) (port.APMConfig, bool) {
	cfg, ok := s[method]
	return cfg, ok
}

func TestAPMAvailability(t *testing.T) {
	store := staticAPMStore{
		valueobject.TypeP24: {
			Method:     valueobject.TypeP24,
			Enabled:    true,
			Countries:  []string{"PL"},
			Currencies: []string{"PLN", "EUR"},
		},
		valueobject.TypeAlipay: {
			Method:  valueobject.TypeAlipay,
			Enabled: true,
		},
		valueobject.TypeOxxo: {
			Method:  valueobject.TypeOxxo,
			Enabled: false,
		},
	}
	avail := service.NewAPMAvailability(store)

	assert.True(t, avail.IsAvailable(valueobject.TypeP24, "PL", "PLN"))
	assert.False(t, avail.IsAvailable(valueobject.TypeP24, "DE", "PLN"))
	assert.False(t, avail.IsAvailable(valueobject.TypeP24, "PL", "GBP"))
	// Empty allow-lists mean unrestricted.
	assert.True(t, avail.IsAvailable(valueobject.TypeAlipay, "CN", "CNY"))
	// Disabled or unconfigured methods are never offered.
	assert.False(t, avail.IsAvailable(valueobject.TypeOxxo, "MX", "MXN"))
	assert.False(t, avail.IsAvailable(valueobject.TypeKnet, "KW", "KWD"))

	got := avail.Available(
		[]valueobject.PaymentType{valueobject.TypeP24, valueobject.TypeAlipay, valueobject.TypeOxxo},
		"PL", "EUR",
	)
	assert.Equal(t, []valueobject.PaymentType{valueobject.TypeP24, valueobject.TypeAlipay}, got)
}
