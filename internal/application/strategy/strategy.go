// Package strategy contains the per-payment-type request and response
// strategies. Each request strategy varies only the funding-source step (plus
// its capture and 3DS policy); a single shared build function applies the
// common population steps around it.
package strategy

import (
	"context"
	"log/slog"

	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/service"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// Metadata keys fixed by the gateway integration contract. The gateway's
// user-defined fields are repurposed for site and build tagging.
const (
	MetadataKeySite   = "udf1"
	MetadataKeyScheme = "udf2"
	MetadataKeyBuild  = "udf5"
)

// SchemeMada is the card-scheme marker attached to mada requests.
const SchemeMada = "mada"

// Deps are the collaborators every strategy may need. Passed explicitly at
// construction; nothing here is mutated after startup.
type Deps struct {
	Resolver *service.TypeResolver
	Site     port.SiteConfig
	Gateway  port.GatewayClient
	APMs     port.APMConfigStore
	Logger   *slog.Logger
	// BuildTag identifies this integration build; stamped on every request.
	BuildTag string
}

// RequestStrategy builds the type-specific parts of an authorization request.
// BuildSource is the only required variation point; Capture and ThreeDS let a
// type override the merchant-level defaults.
type RequestStrategy interface {
	PaymentType() valueobject.PaymentType
	// BuildSource validates the type's prerequisites and returns the funding
	// source payload.
	BuildSource(ctx context.Context, cart *model.Cart) (*gateway.Source, error)
	// Capture returns the capture flag to send, or nil to omit it.
	Capture(cart *model.Cart) *bool
	// ThreeDS returns the 3-D Secure block to send, or nil to omit it.
	ThreeDS(cart *model.Cart) *ThreeDSDecision
}

// ThreeDSDecision is the strategy-level 3DS verdict before wire mapping.
type ThreeDSDecision struct {
	Enabled    bool
	AttemptN3D bool
}

// RequestCustomizer is an optional extension for strategies that need to
// touch the request beyond the source block (payment context ids, extra
// metadata, customer ids).
type RequestCustomizer interface {
	Customize(req *gateway.PaymentRequest, cart *model.Cart) error
}

// baseStrategy supplies merchant-default capture and 3DS policies.
type baseStrategy struct {
	deps  Deps
	ptype valueobject.PaymentType
}

func (b baseStrategy) PaymentType() valueobject.PaymentType { return b.ptype }

// Capture defaults to the merchant's site-level auto-capture setting.
func (b baseStrategy) Capture(cart *model.Cart) *bool {
	capture := b.deps.Site.IsAutoCapture(cart.SiteID)
	return &capture
}

// ThreeDS defaults to absent; card strategies override.
func (b baseStrategy) ThreeDS(*model.Cart) *ThreeDSDecision { return nil }

func boolPtr(v bool) *bool { return &v }
