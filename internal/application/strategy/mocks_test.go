package strategy_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/service"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

type mockSiteConfig struct {
	successURL      string
	failureURL      string
	channelID       string
	descriptorName  string
	descriptorCity  string
	descriptorOn    bool
	autoCapture     bool
	threeDSEnabled  bool
	attemptN3D      bool
	reviewRiskTrans bool
}

func (m *mockSiteConfig) SuccessURL(string) string          { return m.successURL }
func (m *mockSiteConfig) FailureURL(string) string          { return m.failureURL }
func (m *mockSiteConfig) ProcessingChannelID(string) string { return m.channelID }
func (m *mockSiteConfig) BillingDescriptor(string) (string, string, bool) {
	return m.descriptorName, m.descriptorCity, m.descriptorOn
}
func (m *mockSiteConfig) IsAutoCapture(string) bool              { return m.autoCapture }
func (m *mockSiteConfig) IsThreeDSEnabled(string) bool           { return m.threeDSEnabled }
func (m *mockSiteConfig) IsAttemptN3D(string) bool               { return m.attemptN3D }
func (m *mockSiteConfig) IsReviewTransactionsAtRisk(string) bool { return m.reviewRiskTrans }

type mockGatewayClient struct {
	AuthorizeFn        func(ctx context.Context, req *gateway.PaymentRequest) (*gateway.PaymentResponse, error)
	CaptureFn          func(ctx context.Context, req *gateway.CaptureRequest) (*gateway.CaptureResponse, error)
	VoidFn             func(ctx context.Context, req *gateway.VoidRequest) (*gateway.VoidResponse, error)
	RefundFn           func(ctx context.Context, req *gateway.RefundRequest) (*gateway.RefundResponse, error)
	GetPaymentFn       func(ctx context.Context, paymentID string) (*gateway.GetPaymentResponse, error)
	CreateInstrumentFn func(ctx context.Context, req *gateway.CreateInstrumentRequest) (*gateway.CreateInstrumentResponse, error)
}

func (m *mockGatewayClient) Authorize(ctx context.Context, req *gateway.PaymentRequest) (*gateway.PaymentResponse, error) {
	return m.AuthorizeFn(ctx, req)
}
func (m *mockGatewayClient) Capture(ctx context.Context, req *gateway.CaptureRequest) (*gateway.CaptureResponse, error) {
	return m.CaptureFn(ctx, req)
}
func (m *mockGatewayClient) Void(ctx context.Context, req *gateway.VoidRequest) (*gateway.VoidResponse, error) {
	return m.VoidFn(ctx, req)
}
func (m *mockGatewayClient) Refund(ctx context.Context, req *gateway.RefundRequest) (*gateway.RefundResponse, error) {
	return m.RefundFn(ctx, req)
}
func (m *mockGatewayClient) GetPaymentDetails(ctx context.Context, paymentID string) (*gateway.GetPaymentResponse, error) {
	return m.GetPaymentFn(ctx, paymentID)
}
func (m *mockGatewayClient) CreateInstrument(ctx context.Context, req *gateway.CreateInstrumentRequest) (*gateway.CreateInstrumentResponse, error) {
	return m.CreateInstrumentFn(ctx, req)
}

type staticAPMStore map[valueobject.PaymentType]port.APMConfig

func (s staticAPMStore) Configuration(method valueobject.PaymentType) (port.APMConfig, bool) {
	cfg, ok := s[method]
	return cfg, ok
}

func testDeps(site *mockSiteConfig, gw *mockGatewayClient, apms staticAPMStore) strategy.Deps {
	if site == nil {
		site = &mockSiteConfig{successURL: "https://shop.example/success", failureURL: "https://shop.example/failure", autoCapture: true}
	}
	if apms == nil {
		apms = staticAPMStore{}
	}
	return strategy.Deps{
		Resolver: service.NewTypeResolver(),
		Site:     site,
		Gateway:  gw,
		APMs:     apms,
		Logger:   slog.Default(),
		BuildTag: "payments-test",
	}
}

func testCart(info model.PaymentInfo) *model.Cart {
	cart := &model.Cart{
		Code:         "cart-1001",
		SiteID:       "site-uk",
		CurrencyCode: "GBP",
		TotalPrice:   decimal.RequireFromString("56.95"),
		Customer:     &model.Customer{Email: "jane@example.com", Name: "Jane Smith"},
		DeliveryAddress: &model.Address{
			FirstName:   "Jane",
			LastName:    "Smith",
			Line1:       "1 High Street",
			City:        "London",
			PostalCode:  "SW1A 1AA",
			CountryCode: "GB",
			Phone:       "+447700900000",
		},
	}
	cart.SetPaymentInfo(info)
	return cart
}

func requireDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}
