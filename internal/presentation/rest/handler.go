// Package rest exposes the payment operations over HTTP for the checkout
// backend.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/application/dto"
	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/gateway"
)

// PaymentHandler serves authorize, capture, void and refund requests.
type PaymentHandler struct {
	authorize *usecase.AuthorizePaymentUseCase
	factory   *usecase.RequestFactory
	gateway   port.GatewayClient
	logger    *slog.Logger
}

// NewPaymentHandler creates the handler.
func NewPaymentHandler(
	authorize *usecase.AuthorizePaymentUseCase,
	factory *usecase.RequestFactory,
	gatewayClient port.GatewayClient,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		authorize: authorize,
		factory:   factory,
		gateway:   gatewayClient,
		logger:    logger,
	}
}

// RegisterRoutes attaches the payment routes to the mux.
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /payments/authorize", h.handleAuthorize)
	mux.HandleFunc("POST /payments/capture", h.handleCapture)
	mux.HandleFunc("POST /payments/void", h.handleVoid)
	mux.HandleFunc("POST /payments/refund", h.handleRefund)
}

// authorizeRequest is the wire form of an authorization call. PaymentInfo is
// a tagged union discriminated by "type".
type authorizeRequest struct {
	CartCode     string             `json:"cart_code"`
	SiteID       string             `json:"site_id"`
	CurrencyCode string             `json:"currency_code"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	DeliveryCost decimal.Decimal    `json:"delivery_cost"`
	Customer     *customerPayload   `json:"customer"`
	Delivery     *addressPayload    `json:"delivery_address"`
	PaymentInfo  paymentInfoPayload `json:"payment_info"`
}

type customerPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type addressPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

type paymentInfoPayload struct {
	Type string `json:"type"`

	// Card and wallet fields.
	Token       string `json:"token,omitempty"`
	BIN         string `json:"bin,omitempty"`
	CardScheme  string `json:"card_scheme,omitempty"`
	SaveCard    bool   `json:"save_card,omitempty"`
	AutoCapture bool   `json:"auto_capture,omitempty"`

	// Klarna.
	PaymentContextID string `json:"payment_context_id,omitempty"`

	// SEPA.
	IBAN             string `json:"iban,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	MandateReference string `json:"mandate_reference,omitempty"`

	// ACH.
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	BankCode          string `json:"bank_code,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`

	// Fawry.
	MobileNumber string `json:"mobile_number,omitempty"`
	Email        string `json:"email,omitempty"`

	// Generic alternative methods.
	Method   string `json:"method,omitempty"`
	Deferred bool   `json:"deferred,omitempty"`

	Billing *addressPayload `json:"billing_address,omitempty"`
}

func (h *PaymentHandler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	info, err := req.PaymentInfo.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart := &model.Cart{
		Code:            req.CartCode,
		SiteID:          req.SiteID,
		CurrencyCode:    req.CurrencyCode,
		TotalPrice:      req.TotalPrice,
		DeliveryCost:    req.DeliveryCost,
		Customer:        req.Customer.toModel(),
		DeliveryAddress: req.Delivery.toModel(),
	}
	cart.SetPaymentInfo(info)

	result, err := h.authorize.Execute(r.Context(), cart)
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type captureRequest struct {
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currency_code"`
	Reference        string          `json:"reference"`
	SiteID           string          `json:"site_id"`
}

func (h *PaymentHandler) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	gwReq, err := h.factory.CreateCaptureRequest(dto.CaptureCommand{
		GatewayPaymentID: req.GatewayPaymentID,
		Amount:           req.Amount,
		CurrencyCode:     req.CurrencyCode,
		Reference:        req.Reference,
		SiteID:           req.SiteID,
	})
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}

	resp, err := h.gateway.Capture(r.Context(), gwReq)
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

type voidRequest struct {
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currency_code"`
	Reference        string          `json:"reference"`
	SiteID           string          `json:"site_id"`
}

func (h *PaymentHandler) handleVoid(w http.ResponseWriter, r *http.Request) {
	var req voidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	gwReq, err := h.factory.CreateVoidRequest(dto.VoidCommand{
		GatewayPaymentID: req.GatewayPaymentID,
		Amount:           req.Amount,
		CurrencyCode:     req.CurrencyCode,
		Reference:        req.Reference,
		SiteID:           req.SiteID,
	})
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}

	resp, err := h.gateway.Void(r.Context(), gwReq)
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

type refundRequest struct {
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currency_code"`
	Reference        string          `json:"reference"`
	SiteID           string          `json:"site_id"`
	// FollowOn requests derive a refund destination from the original
	// payment's source.
	FollowOn bool `json:"follow_on"`
}

func (h *PaymentHandler) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var (
		gwReq *gateway.RefundRequest
		err   error
	)
	if req.FollowOn {
		gwReq, err = h.factory.CreateFollowOnRefundRequest(r.Context(), dto.FollowOnRefundCommand{
			GatewayPaymentID: req.GatewayPaymentID,
			Amount:           req.Amount,
			CurrencyCode:     req.CurrencyCode,
			Reference:        req.Reference,
			SiteID:           req.SiteID,
		})
	} else {
		gwReq, err = h.factory.CreateRefundRequest(dto.RefundCommand{
			GatewayPaymentID: req.GatewayPaymentID,
			Amount:           req.Amount,
			CurrencyCode:     req.CurrencyCode,
			Reference:        req.Reference,
			SiteID:           req.SiteID,
		})
	}
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}

	resp, err := h.gateway.Refund(r.Context(), gwReq)
	if err != nil {
		h.writeError(w, r.Context(), err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

func (h *PaymentHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response failed", "error", err)
	}
}

// writeError maps the error taxonomy to HTTP statuses. Validation problems
// are the caller's fault, gateway communication problems are retryable, and
// everything else is a server error.
func (h *PaymentHandler) writeError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errs.IsInvalidArgument(err), errs.IsMissingField(err),
		errs.IsInvalidPaymentMethod(err), errs.IsUnsupportedPaymentInfo(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errs.IsUnsupportedOperation(err), errs.IsStrategyNotFound(err):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	case errs.IsGatewayCommunication(err):
		http.Error(w, "payment gateway unavailable", http.StatusServiceUnavailable)
	case errs.IsMissingRedirectLink(err), errs.IsGatewayIntegration(err):
		h.logger.ErrorContext(ctx, "gateway integration failure", "error", err)
		http.Error(w, "payment processing failed", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(ctx, "unhandled payment error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (c *customerPayload) toModel() *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{Email: c.Email, Name: c.Name}
}

func (a *addressPayload) toModel() *model.Address {
	if a == nil {
		return nil
	}
	return &model.Address{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Phone:       a.Phone,
	}
}

func (p paymentInfoPayload) toModel() (model.PaymentInfo, error) {
	billing := p.Billing.toModel()
	common := model.InfoCommon{Code: p.Type, Billing: billing}

	switch p.Type {
	case "card":
		return &model.CardPaymentInfo{
			InfoCommon:  common,
			Token:       p.Token,
			BIN:         p.BIN,
			CardScheme:  p.CardScheme,
			SaveCard:    p.SaveCard,
			AutoCapture: p.AutoCapture,
		}, nil
	case "applepay":
		return &model.ApplePayPaymentInfo{InfoCommon: common, Token: p.Token}, nil
	case "googlepay":
		return &model.GooglePayPaymentInfo{InfoCommon: common, Token: p.Token}, nil
	case "klarna":
		return &model.KlarnaPaymentInfo{InfoCommon: common, PaymentContextID: p.PaymentContextID, Deferred: p.Deferred}, nil
	case "sepa":
		return &model.SEPAPaymentInfo{
			InfoCommon:       common,
			IBAN:             p.IBAN,
			FirstName:        p.FirstName,
			LastName:         p.LastName,
			MandateReference: p.MandateReference,
			Deferred:         p.Deferred,
		}, nil
	case "ach":
		return &model.ACHPaymentInfo{
			InfoCommon:        common,
			AccountHolderName: p.AccountHolderName,
			AccountType:       p.AccountType,
			AccountNumber:     p.AccountNumber,
			BankCode:          p.BankCode,
			CompanyName:       p.CompanyName,
		}, nil
	case "fawry":
		return &model.FawryPaymentInfo{InfoCommon: common, MobileNumber: p.MobileNumber, Email: p.Email}, nil
	case "apm":
		return &model.APMPaymentInfo{InfoCommon: common, Method: p.Method, Deferred: p.Deferred}, nil
	default:
		return nil, &errs.InvalidPaymentMethodError{Name: p.Type}
	}
}
