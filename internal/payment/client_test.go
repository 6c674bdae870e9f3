package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bepaid-gateway/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testGateway(t *testing.T, m Merchant, endpoint string) *bepaidGateway {
	t.Helper()
	g := NewGateway(m).(*bepaidGateway)
	g.endpoint = endpoint
	return g
}

func TestCreateCheckout_Success(t *testing.T) {
	var got CheckoutRequest
	var gotAuthUser, gotAuthPass string
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"checkout":{"token":"tok","redirect_url":"https://checkout.bepaid.by/v2/checkout?token=tok"}}`))
	}))
	defer srv.Close()

	g := testGateway(t, testMerchant(), srv.URL)

	redirect, err := g.CreateCheckout(context.Background(), testOrder(), testPayment())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.bepaid.by/v2/checkout?token=tok", redirect)

	assert.Equal(t, "123", gotAuthUser)
	assert.Equal(t, "secret", gotAuthPass)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, "no-cache", gotHeaders.Get("Cache-Control"))
	assert.Equal(t, "2", gotHeaders.Get("X-API-Version"))

	assert.Equal(t, "payment", got.Checkout.TransactionType)
	assert.Equal(t, int64(15000), got.Checkout.Order.Amount)
}

func TestCreateCheckout_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"shop_id":["is invalid"]}}`))
	}))
	defer srv.Close()

	g := testGateway(t, testMerchant(), srv.URL)

	redirect, err := g.CreateCheckout(context.Background(), testOrder(), testPayment())
	assert.ErrorIs(t, err, ErrNoRedirect)
	assert.Empty(t, redirect)
}

func TestCreateCheckout_MalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	g := testGateway(t, testMerchant(), srv.URL)

	_, err := g.CreateCheckout(context.Background(), testOrder(), testPayment())
	assert.ErrorIs(t, err, ErrNoRedirect)
}

func TestCreateCheckout_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	for _, debug := range []bool{false, true} {
		m := testMerchant()
		m.Debug = debug
		g := testGateway(t, m, srv.URL)

		redirect, err := g.CreateCheckout(context.Background(), testOrder(), testPayment())
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
		assert.Empty(t, redirect)
	}
}

func TestCreateCheckout_DebugGatedDiagnostics(t *testing.T) {
	t.Run("Transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		for _, debug := range []bool{false, true} {
			core, logs := observer.New(zapcore.DebugLevel)
			ctx := logger.WithLogger(context.Background(), zap.New(core))

			m := testMerchant()
			m.Debug = debug
			g := testGateway(t, m, srv.URL)

			_, err := g.CreateCheckout(ctx, testOrder(), testPayment())
			assert.ErrorIs(t, err, ErrGatewayUnavailable)

			if debug {
				entries := logs.FilterMessage("bepaid request failed").All()
				require.Len(t, entries, 1)
				assert.Contains(t, entries[0].ContextMap(), "request")
			} else {
				assert.Zero(t, logs.Len(), "nothing is recorded with debug off")
			}
		}
	})

	t.Run("Gateway rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":{"shop_id":["is invalid"]}}`))
		}))
		defer srv.Close()

		for _, debug := range []bool{false, true} {
			core, logs := observer.New(zapcore.DebugLevel)
			ctx := logger.WithLogger(context.Background(), zap.New(core))

			m := testMerchant()
			m.Debug = debug
			g := testGateway(t, m, srv.URL)

			_, err := g.CreateCheckout(ctx, testOrder(), testPayment())
			assert.ErrorIs(t, err, ErrNoRedirect)

			if debug {
				entries := logs.FilterMessage("bepaid returned no redirect url").All()
				require.Len(t, entries, 1)
				fields := entries[0].ContextMap()
				assert.Contains(t, fields, "request")
				assert.Contains(t, fields, "response")
			} else {
				assert.Zero(t, logs.Len(), "nothing is recorded with debug off")
			}
		}
	})
}

func TestCreateCheckout_MissingCredentials(t *testing.T) {
	m := testMerchant()
	m.ShopID = ""
	m.SecretKey = ""
	g := testGateway(t, m, "http://127.0.0.1:0")

	_, err := g.CreateCheckout(context.Background(), testOrder(), testPayment())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestEncodeCheckout_NoHTMLEscaping(t *testing.T) {
	m := testMerchant()
	m.Description = "Оплата & доставка"

	req, err := BuildCheckout(m, testOrder(), testPayment())
	require.NoError(t, err)

	body, err := encodeCheckout(req)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Оплата & доставка")
	assert.NotContains(t, string(body), `\u0026`)
}
