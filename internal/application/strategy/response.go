package strategy

import (
	"log/slog"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// AuthorizeOutcome is the checkout-facing result of handling a pending
// authorization response. Exactly one of Success or Redirect paths applies:
// a redirect outcome carries the URL the customer must visit next.
type AuthorizeOutcome struct {
	Success      bool
	Redirect     bool
	RedirectURL  string
	DataRequired bool
}

// ResponseStrategy handles a pending gateway response for one payment type.
// The handler records the gateway payment id on the cart's payment info and
// decides how the customer proceeds.
type ResponseStrategy interface {
	HandlePending(resp *gateway.PaymentResponse, cart *model.Cart) (*AuthorizeOutcome, error)
}

// ResponseRegistry maps payment types to pending-response handlers. Types
// without a specific handler fall back to the default redirect handler.
// Populated at construction, read-only afterwards.
type ResponseRegistry struct {
	handlers map[valueobject.PaymentType]ResponseStrategy
	fallback ResponseStrategy
}

// NewResponseRegistry builds the registry with the given fallback handler.
func NewResponseRegistry(fallback ResponseStrategy) *ResponseRegistry {
	return &ResponseRegistry{
		handlers: make(map[valueobject.PaymentType]ResponseStrategy),
		fallback: fallback,
	}
}

// NewDefaultResponseRegistry wires the pending-response handlers: Multibanco
// resolves a static reference page instead of a redirect, Fawry pending
// responses are not handled by this integration, and every other type uses
// the standard redirect handler.
func NewDefaultResponseRegistry(logger *slog.Logger) *ResponseRegistry {
	r := NewResponseRegistry(NewDefaultResponseStrategy(logger))
	r.Register(valueobject.TypeMultibanco, NewMultibancoResponseStrategy(logger))
	r.Register(valueobject.TypeFawry, NewFawryResponseStrategy())
	return r
}

// Register installs a handler for the payment type, replacing any existing
// registration.
func (r *ResponseRegistry) Register(t valueobject.PaymentType, s ResponseStrategy) {
	r.handlers[t] = s
}

// HandlerFor returns the handler for the payment type, falling back to the
// default handler when no specific one is registered.
func (r *ResponseRegistry) HandlerFor(t valueobject.PaymentType) ResponseStrategy {
	if s, ok := r.handlers[t]; ok {
		return s
	}
	return r.fallback
}

// DefaultResponseStrategy handles the common pending case: the gateway must
// supply a redirect link, the customer is sent there, and the gateway payment
// id is pinned on the payment info for later reconciliation.
type DefaultResponseStrategy struct {
	logger  *slog.Logger
	linkKey string
}

func NewDefaultResponseStrategy(logger *slog.Logger) *DefaultResponseStrategy {
	return &DefaultResponseStrategy{logger: logger, linkKey: gateway.LinkRedirect}
}

func (s *DefaultResponseStrategy) HandlePending(resp *gateway.PaymentResponse, cart *model.Cart) (*AuthorizeOutcome, error) {
	href, ok := resp.RedirectLink(s.linkKey)
	if !ok {
		s.logger.Error("pending response missing link",
			"payment_id", resp.ID, "link", s.linkKey, "cart", cart.Code)
		return nil, &errs.MissingRedirectLinkError{LinkKey: s.linkKey, PaymentID: resp.ID}
	}

	info := cart.PaymentInfo()
	info.SetGatewayPaymentID(resp.ID)

	return &AuthorizeOutcome{
		Redirect:     true,
		RedirectURL:  href,
		DataRequired: info.RequiresUserData(),
	}, nil
}

// MultibancoResponseStrategy handles Multibanco pending responses, which
// carry a static reference page the customer pays offline, under a
// Multibanco-specific link key.
type MultibancoResponseStrategy struct {
	DefaultResponseStrategy
}

func NewMultibancoResponseStrategy(logger *slog.Logger) *MultibancoResponseStrategy {
	return &MultibancoResponseStrategy{DefaultResponseStrategy{logger: logger, linkKey: gateway.LinkMultibancoTicket}}
}

// FawryResponseStrategy rejects pending handling for Fawry: the customer
// completes payment out-of-band and the flow has no page to redirect to.
type FawryResponseStrategy struct{}

func NewFawryResponseStrategy() *FawryResponseStrategy { return &FawryResponseStrategy{} }

func (s *FawryResponseStrategy) HandlePending(resp *gateway.PaymentResponse, _ *model.Cart) (*AuthorizeOutcome, error) {
	return nil, errs.UnsupportedOperation("pending response handling for fawry payment %s is not supported", resp.ID)
}
