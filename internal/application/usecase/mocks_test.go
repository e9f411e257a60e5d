package usecase_test

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
	pkgevents "github.com/cartwise/payments/pkg/events"
)

type mockSiteConfig struct {
	autoCapture     bool
	threeDSEnabled  bool
	attemptN3D      bool
	reviewRiskTrans bool
}

func (m *mockSiteConfig) SuccessURL(string) string          { return "https://shop.example/success" }
func (m *mockSiteConfig) FailureURL(string) string          { return "https://shop.example/failure" }
func (m *mockSiteConfig) ProcessingChannelID(string) string { return "" }
func (m *mockSiteConfig) BillingDescriptor(string) (string, string, bool) {
	return "", "", false
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

type mockTransactionRepo struct {
	SaveFn            func(ctx context.Context, tx *model.PaymentTransaction) error
	FindByOrderFn     func(ctx context.Context, orderCode string) (*model.PaymentTransaction, error)
	FindByPaymentIDFn func(ctx context.Context, paymentID string) (*model.PaymentTransaction, error)
	saved             []*model.PaymentTransaction
}

func (m *mockTransactionRepo) Save(ctx context.Context, tx *model.PaymentTransaction) error {
	m.saved = append(m.saved, tx)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, tx)
	}
	return nil
}

func (m *mockTransactionRepo) FindByOrderCode(ctx context.Context, orderCode string) (*model.PaymentTransaction, error) {
	return m.FindByOrderFn(ctx, orderCode)
}

func (m *mockTransactionRepo) FindByGatewayPaymentID(ctx context.Context, paymentID string) (*model.PaymentTransaction, error) {
	return m.FindByPaymentIDFn(ctx, paymentID)
}

type mockEventRepo struct {
	saved []*model.PaymentEvent
}

func (m *mockEventRepo) Save(_ context.Context, event *model.PaymentEvent) error {
	m.saved = append(m.saved, event)
	return nil
}

func (m *mockEventRepo) ListByGatewayPaymentID(context.Context, string) ([]*model.PaymentEvent, error) {
	return m.saved, nil
}

type mockPublisher struct {
	published []pkgevents.DomainEvent
}

func (m *mockPublisher) Publish(_ context.Context, _ string, events ...pkgevents.DomainEvent) error {
	m.published = append(m.published, events...)
	return nil
}

type staticAPMStore map[valueobject.PaymentType]port.APMConfig

func (s staticAPMStore) Configuration(method valueobject.PaymentType) (port.APMConfig, bool) {
	cfg, ok := s[method]
	return cfg, ok
}

func testDeps(site port.SiteConfig, gw port.GatewayClient) strategy.Deps {
	if site == nil {
		site = &mockSiteConfig{autoCapture: true}
	}
	return strategy.Deps{
		Resolver: service.NewTypeResolver(),
		Site:     site,
		Gateway:  gw,
		APMs:     staticAPMStore{},
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
