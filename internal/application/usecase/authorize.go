package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cartwise/payments/internal/application/dto"
	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/gateway"
)

var authorizeOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "payments",
	Subsystem: "authorize",
	Name:      "outcomes_total",
	Help:      "Authorization attempts by classified outcome.",
}, []string{"outcome", "payment_type"})

const (
	outcomeApproved      = "approved"
	outcomePending       = "pending"
	outcomeDeclined      = "declined"
	outcomeInvalid       = "invalid_request"
	outcomeError         = "error"
	outcomeCommunication = "communication_failure"
)

// AuthorizePaymentUseCase runs the full authorization round trip: build the
// request, call the gateway with a bounded wait, classify the response and
// hand back a normalized outcome. The cart's payment info is only written
// after a definitive gateway response.
type AuthorizePaymentUseCase struct {
	factory   *RequestFactory
	responses *strategy.ResponseRegistry
	deps      strategy.Deps
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAuthorizePaymentUseCase creates the use case. timeout bounds every
// gateway call.
func NewAuthorizePaymentUseCase(
	factory *RequestFactory,
	responses *strategy.ResponseRegistry,
	deps strategy.Deps,
	timeout time.Duration,
	logger *slog.Logger,
) *AuthorizePaymentUseCase {
	return &AuthorizePaymentUseCase{
		factory:   factory,
		responses: responses,
		deps:      deps,
		timeout:   timeout,
		logger:    logger,
	}
}

// Execute authorizes the cart's payment. A declined authorization is a
// normal result, not an error; errors are reserved for validation failures
// and gateway integration or communication problems.
func (uc *AuthorizePaymentUseCase) Execute(ctx context.Context, cart *model.Cart) (*dto.AuthorizeResult, error) {
	req, err := uc.factory.CreateAuthorizationRequest(ctx, cart)
	if err != nil {
		return nil, err
	}

	ptype, err := uc.deps.Resolver.ResolveType(cart.PaymentInfo())
	if err != nil {
		return nil, err
	}
	label := ptype.String()

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	resp, err := uc.deps.Gateway.Authorize(callCtx, req)
	if err != nil {
		return uc.classifyError(cart, label, err)
	}
	if resp == nil {
		authorizeOutcomes.WithLabelValues(outcomeError, label).Inc()
		uc.logger.Error("gateway returned no authorization response", "cart", cart.Code)
		return &dto.AuthorizeResult{}, nil
	}

	switch {
	case resp.Approved && resp.ResponseCode == gateway.ApprovedCode:
		authorizeOutcomes.WithLabelValues(outcomeApproved, label).Inc()
		return uc.approved(cart, resp), nil

	case resp.Status == gateway.StatusPending:
		authorizeOutcomes.WithLabelValues(outcomePending, label).Inc()
		outcome, err := uc.responses.HandlerFor(ptype).HandlePending(resp, cart)
		if err != nil {
			return nil, err
		}
		return &dto.AuthorizeResult{
			Success:          outcome.Success,
			Redirect:         outcome.Redirect,
			RedirectURL:      outcome.RedirectURL,
			DataRequired:     outcome.DataRequired,
			GatewayPaymentID: cart.PaymentInfo().GatewayPaymentID(),
		}, nil

	case !resp.Approved:
		authorizeOutcomes.WithLabelValues(outcomeDeclined, label).Inc()
		// Keep the gateway id so the decline can be reconciled later.
		cart.PaymentInfo().SetGatewayPaymentID(resp.ID)
		uc.logger.Info("authorization declined",
			"cart", cart.Code, "payment_id", resp.ID, "response_code", resp.ResponseCode)
		return &dto.AuthorizeResult{Declined: true, GatewayPaymentID: resp.ID}, nil

	default:
		authorizeOutcomes.WithLabelValues(outcomeError, label).Inc()
		uc.logger.Error("unclassifiable authorization response",
			"cart", cart.Code, "payment_id", resp.ID, "status", resp.Status)
		return &dto.AuthorizeResult{}, nil
	}
}

func (uc *AuthorizePaymentUseCase) approved(cart *model.Cart, resp *gateway.PaymentResponse) *dto.AuthorizeResult {
	info := cart.PaymentInfo()
	info.SetGatewayPaymentID(resp.ID)

	if card, ok := info.(*model.CardPaymentInfo); ok && card.SaveCard && resp.Source != nil {
		card.SetSubscriptionID(resp.Source.ID)
	}

	return &dto.AuthorizeResult{
		Success:          true,
		GatewayPaymentID: resp.ID,
	}
}

func (uc *AuthorizePaymentUseCase) classifyError(cart *model.Cart, label string, err error) (*dto.AuthorizeResult, error) {
	var httpErr *gateway.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.IsServerError() {
			authorizeOutcomes.WithLabelValues(outcomeError, label).Inc()
			return nil, errs.GatewayIntegration("authorize", err)
		}
		// Non-5xx answers are definitive declines of the request itself.
		authorizeOutcomes.WithLabelValues(outcomeInvalid, label).Inc()
		uc.logger.Warn("gateway rejected authorization request",
			"cart", cart.Code, "status_code", httpErr.StatusCode)
		return &dto.AuthorizeResult{Declined: true}, nil
	}

	// Timeouts, cancellation and transport failures are all transient from
	// the caller's point of view.
	authorizeOutcomes.WithLabelValues(outcomeCommunication, label).Inc()
	return nil, errs.GatewayCommunication("authorize", err)
}
