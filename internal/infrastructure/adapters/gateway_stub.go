package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/cartwise/payments/internal/gateway"
)

// StubGatewayClient simulates the payment gateway for local development and
// smoke tests. Every authorization is approved unless the reference carries a
// "decline" marker, and ids are generated sequentially.
type StubGatewayClient struct {
	logger *slog.Logger
	seq    atomic.Int64
}

// NewStubGatewayClient creates the simulated client.
func NewStubGatewayClient(logger *slog.Logger) *StubGatewayClient {
	return &StubGatewayClient{logger: logger}
}

func (c *StubGatewayClient) nextID(prefix string) string {
	return fmt.Sprintf("%s_stub_%d", prefix, c.seq.Add(1))
}

func (c *StubGatewayClient) Authorize(_ context.Context, req *gateway.PaymentRequest) (*gateway.PaymentResponse, error) {
	id := c.nextID("pay")
	c.logger.Info("stub authorize", "reference", req.Reference, "amount", req.Amount, "payment_id", id)

	if req.Reference == "decline" {
		return &gateway.PaymentResponse{
			ID:           id,
			Approved:     false,
			Status:       gateway.StatusDeclined,
			ResponseCode: "20005",
			Reference:    req.Reference,
		}, nil
	}

	return &gateway.PaymentResponse{
		ID:           id,
		Approved:     true,
		Status:       "Authorized",
		ResponseCode: gateway.ApprovedCode,
		Reference:    req.Reference,
		Source:       &gateway.ResponseSource{Type: req.Source.Type, ID: c.nextID("src")},
	}, nil
}

func (c *StubGatewayClient) Capture(_ context.Context, req *gateway.CaptureRequest) (*gateway.CaptureResponse, error) {
	c.logger.Info("stub capture", "payment_id", req.PaymentID, "amount", req.Amount)
	return &gateway.CaptureResponse{ActionID: c.nextID("act"), Reference: req.Reference}, nil
}

func (c *StubGatewayClient) Void(_ context.Context, req *gateway.VoidRequest) (*gateway.VoidResponse, error) {
	c.logger.Info("stub void", "payment_id", req.PaymentID)
	return &gateway.VoidResponse{ActionID: c.nextID("act"), Reference: req.Reference}, nil
}

func (c *StubGatewayClient) Refund(_ context.Context, req *gateway.RefundRequest) (*gateway.RefundResponse, error) {
	c.logger.Info("stub refund", "payment_id", req.PaymentID, "amount", req.Amount)
	return &gateway.RefundResponse{ActionID: c.nextID("act"), Reference: req.Reference}, nil
}

func (c *StubGatewayClient) GetPaymentDetails(_ context.Context, paymentID string) (*gateway.GetPaymentResponse, error) {
	return &gateway.GetPaymentResponse{
		ID:     paymentID,
		Status: gateway.StatusCaptured,
		Source: &gateway.ResponseSource{Type: "card", Scheme: "visa"},
	}, nil
}

func (c *StubGatewayClient) CreateInstrument(_ context.Context, req *gateway.CreateInstrumentRequest) (*gateway.CreateInstrumentResponse, error) {
	c.logger.Info("stub create instrument", "type", req.Type)
	return &gateway.CreateInstrumentResponse{
		ID:         c.nextID("src"),
		CustomerID: c.nextID("cus"),
	}, nil
}
