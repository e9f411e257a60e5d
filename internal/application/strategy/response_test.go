package strategy_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

func pendingResponse(links map[string]gateway.Link) *gateway.PaymentResponse {
	return &gateway.PaymentResponse{
		ID:     "pay_abc",
		Status: gateway.StatusPending,
		Links:  links,
	}
}

func TestDefaultResponseRedirect(t *testing.T) {
	reg := strategy.NewDefaultResponseRegistry(slog.Default())
	cart := testCart(&model.APMPaymentInfo{Method: "paypal"})

	resp := pendingResponse(map[string]gateway.Link{
		gateway.LinkRedirect: {Href: "https://gateway.example/redirect/abc"},
	})

	outcome, err := reg.HandlerFor(valueobject.TypePayPal).HandlePending(resp, cart)
	require.NoError(t, err)

	assert.True(t, outcome.Redirect)
	assert.Equal(t, "https://gateway.example/redirect/abc", outcome.RedirectURL)
	assert.False(t, outcome.DataRequired)
	assert.Equal(t, "pay_abc", cart.PaymentInfo().GatewayPaymentID())
}

func TestDefaultResponseMissingLink(t *testing.T) {
	reg := strategy.NewDefaultResponseRegistry(slog.Default())
	cart := testCart(&model.APMPaymentInfo{Method: "paypal"})

	_, err := reg.HandlerFor(valueobject.TypePayPal).HandlePending(pendingResponse(nil), cart)
	require.Error(t, err)
	assert.True(t, errs.IsMissingRedirectLink(err))
	assert.Empty(t, cart.PaymentInfo().GatewayPaymentID())
}

func TestMultibancoResponseUsesTicketLink(t *testing.T) {
	reg := strategy.NewDefaultResponseRegistry(slog.Default())
	cart := testCart(&model.APMPaymentInfo{Method: "multibanco"})

	t.Run("ticket link present", func(t *testing.T) {
		resp := pendingResponse(map[string]gateway.Link{
			gateway.LinkMultibancoTicket: {Href: "https://gateway.example/multibanco/ref"},
		})
		outcome, err := reg.HandlerFor(valueobject.TypeMultibanco).HandlePending(resp, cart)
		require.NoError(t, err)
		assert.Equal(t, "https://gateway.example/multibanco/ref", outcome.RedirectURL)
	})

	t.Run("standard redirect link is not enough", func(t *testing.T) {
		resp := pendingResponse(map[string]gateway.Link{
			gateway.LinkRedirect: {Href: "https://gateway.example/redirect/abc"},
		})
		_, err := reg.HandlerFor(valueobject.TypeMultibanco).HandlePending(resp, cart)
		require.Error(t, err)
		assert.True(t, errs.IsMissingRedirectLink(err))
	})
}

func TestFawryResponseUnsupported(t *testing.T) {
	reg := strategy.NewDefaultResponseRegistry(slog.Default())
	cart := testCart(&model.FawryPaymentInfo{MobileNumber: "01012345678", Email: "jane@example.com"})

	_, err := reg.HandlerFor(valueobject.TypeFawry).HandlePending(pendingResponse(nil), cart)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedOperation(err))
}

func TestDataRequiredFollowsPaymentInfo(t *testing.T) {
	reg := strategy.NewDefaultResponseRegistry(slog.Default())
	cart := testCart(&model.APMPaymentInfo{Method: "alipay", UserDataNeed: true})

	resp := pendingResponse(map[string]gateway.Link{
		gateway.LinkRedirect: {Href: "https://gateway.example/redirect/xyz"},
	})

	outcome, err := reg.HandlerFor(valueobject.TypeAlipay).HandlePending(resp, cart)
	require.NoError(t, err)
	assert.True(t, outcome.DataRequired)
}
