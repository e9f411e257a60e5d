package rest_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/service"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/infrastructure/adapters"
	"github.com/cartwise/payments/internal/presentation/rest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.Default()
	site := adapters.NewStaticSiteConfig(nil, adapters.SiteRecord{
		SuccessURL:  "https://shop.example/success",
		FailureURL:  "https://shop.example/failure",
		AutoCapture: true,
	})
	deps := strategy.Deps{
		Resolver: service.NewTypeResolver(),
		Site:     site,
		Gateway:  adapters.NewStubGatewayClient(logger),
		APMs:     adapters.NewStaticAPMStore(port.APMConfig{Method: valueobject.TypeFawry, Enabled: true}),
		Logger:   logger,
		BuildTag: "payments-test",
	}
	factory := usecase.NewRequestFactory(deps, strategy.NewDefaultRegistry(deps))
	authorize := usecase.NewAuthorizePaymentUseCase(
		factory, strategy.NewDefaultResponseRegistry(logger), deps, 5*time.Second, logger)

	mux := http.NewServeMux()
	rest.NewPaymentHandler(authorize, factory, deps.Gateway, logger).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthorizeEndpointApprovesCard(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/authorize", `{
		"cart_code": "cart-1",
		"site_id": "site-uk",
		"currency_code": "GBP",
		"total_price": "56.95",
		"customer": {"email": "jane@example.com", "name": "Jane Smith"},
		"payment_info": {"type": "card", "token": "tok_visa", "bin": "424242"}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthorizeEndpointRejectsUnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/authorize", `{
		"cart_code": "cart-2",
		"currency_code": "GBP",
		"total_price": "10.00",
		"payment_info": {"type": "carrier_billing"}
	}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthorizeEndpointMissingToken(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/authorize", `{
		"cart_code": "cart-3",
		"currency_code": "GBP",
		"total_price": "10.00",
		"payment_info": {"type": "card"}
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAuthorizeEndpointUnsupportedType(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/authorize", `{
		"cart_code": "cart-4",
		"currency_code": "MXN",
		"total_price": "100.00",
		"payment_info": {"type": "apm", "method": "oxxo"}
	}`)

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestCaptureEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/capture", `{
		"gateway_payment_id": "pay_1",
		"amount": "12.34",
		"currency_code": "EUR",
		"reference": "order-1",
		"site_id": "site-de"
	}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	missing := post(t, srv, "/payments/capture", `{"amount": "12.34", "currency_code": "EUR"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, missing.StatusCode)
}

func TestRefundEndpointFollowOn(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/payments/refund", `{
		"gateway_payment_id": "pay_2",
		"amount": "5.00",
		"currency_code": "EUR",
		"reference": "order-2",
		"follow_on": true
	}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}
