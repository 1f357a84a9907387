package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicebloom/storefront/pkg/httpclient"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(baseURL string) *Client {
	cfg := Config{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   baseURL,
	}
	return NewClient(cfg, httpclient.New(httpclient.DefaultConfig()), newTestLogger())
}

func signProof(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestClient_CreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "request must carry basic auth")
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var req struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(67_750), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "sess-1", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_abc123",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.CreateOrder(context.Background(), 67_750, "INR", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(67_750), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","message":"amount is required"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.CreateOrder(context.Background(), 0, "INR", "sess-1")
	assert.Nil(t, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment gateway")
}

func TestClient_CheckoutParams(t *testing.T) {
	client := newTestClient("http://gateway.invalid")

	params := client.CheckoutParams(&Order{
		ID:       "order_abc123",
		Amount:   67_750,
		Currency: "INR",
	})

	assert.Equal(t, "rzp_test_key", params.KeyID)
	assert.Equal(t, "order_abc123", params.OrderID)
	assert.Equal(t, int64(67_750), params.Amount)
	assert.Equal(t, "INR", params.Currency)
}

func TestClient_VerifySignature(t *testing.T) {
	client := newTestClient("http://gateway.invalid")

	valid := PaymentProof{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
		Signature: signProof("rzp_test_secret", "order_abc123", "pay_xyz789"),
	}
	assert.True(t, client.VerifySignature(valid))

	tampered := valid
	tampered.PaymentID = "pay_other"
	assert.False(t, client.VerifySignature(tampered), "signature must not verify for a different payment")

	wrongSecret := valid
	wrongSecret.Signature = signProof("wrong_secret", "order_abc123", "pay_xyz789")
	assert.False(t, client.VerifySignature(wrongSecret))

	empty := PaymentProof{OrderID: "order_abc123", PaymentID: "pay_xyz789"}
	assert.False(t, client.VerifySignature(empty))
}
