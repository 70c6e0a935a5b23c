//go:build unit

package gateway_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restobook/internal/infra/gateway"
	"restobook/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rzp_test_secret"

func newTestGateway(baseURL string) *gateway.RazorpayGateway {
	return gateway.NewRazorpayGateway(config.GatewayConfig{
		BaseURL: baseURL,
		KeyID:   "rzp_test_key",
		Secret:  testSecret,
		Timeout: 2 * time.Second,
	}).(*gateway.RazorpayGateway)
}

func sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := newTestGateway("http://unused")

	t.Run("accepts a correctly signed confirmation", func(t *testing.T) {
		assert.True(t, g.VerifySignature("order_abc", "pay_123", sign("order_abc", "pay_123")))
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		assert.False(t, g.VerifySignature("order_abc", "pay_123", sign("order_abc", "pay_999")))
	})

	t.Run("rejects refs swapped under a valid signature", func(t *testing.T) {
		assert.False(t, g.VerifySignature("pay_123", "order_abc", sign("order_abc", "pay_123")))
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		assert.False(t, g.VerifySignature("order_abc", "pay_123", ""))
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("posts amount and parses the gateway order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "rzp_test_key", user)
			require.Equal(t, testSecret, pass)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, float64(45000), body["amount"])
			require.Equal(t, "INR", body["currency"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_abc","amount":45000,"currency":"INR"}`))
		}))
		defer srv.Close()

		g := newTestGateway(srv.URL)
		order, err := g.CreateOrder(context.Background(), 45000, "INR", "rcpt_1")
		require.NoError(t, err)

		assert.Equal(t, "order_abc", order.Ref)
		assert.Equal(t, int64(45000), order.AmountMinor)
		assert.Equal(t, "INR", order.Currency)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestGateway(srv.URL).CreateOrder(context.Background(), 100, "INR", "rcpt_1")
		assert.Error(t, err)
	})

	t.Run("response without an order id is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := newTestGateway(srv.URL).CreateOrder(context.Background(), 100, "INR", "rcpt_1")
		assert.Error(t, err)
	})
}
