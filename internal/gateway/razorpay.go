// Package gateway implements the client for the hosted payment gateway used
// for redirect-style payments and wallet top-ups. The gateway's order and
// signature scheme follows the Razorpay wire format.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spicebloom/storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds the gateway credentials and endpoint.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// Client calls the payment gateway's REST API.
type Client struct {
	cfg        Config
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewClient creates a new gateway client.
func NewClient(cfg Config, httpClient HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Order is a payment order registered with the gateway. The client-side
// checkout widget references it by ID.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CheckoutParams are the parameters the browser widget needs to open the
// hosted payment window for an order.
type CheckoutParams struct {
	KeyID    string `json:"key_id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

// PaymentProof is the triple the gateway hands back to the browser after a
// successful payment. The signature binds the payment to the order.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// CreateOrder registers a payment order with the gateway for the given amount
// in paise. Receipt is an opaque caller reference echoed back by the gateway.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	type createOrderRequest struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal gateway order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create gateway order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "payment gateway")
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode gateway order response: %w", err)
	}

	c.logger.InfoContext(ctx, "gateway order created",
		slog.String("gateway_order_id", order.ID),
		slog.Int64("amount", amount),
		slog.String("receipt", receipt),
	)

	return &order, nil
}

// CheckoutParams returns the widget parameters for an order.
func (c *Client) CheckoutParams(order *Order) CheckoutParams {
	return CheckoutParams{
		KeyID:    c.cfg.KeyID,
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Name:     "Spice Bloom",
	}
}

// VerifySignature reports whether a payment proof's signature is authentic.
// The expected signature is HMAC-SHA256 over "order_id|payment_id" keyed with
// the gateway secret, hex encoded.
func (c *Client) VerifySignature(proof PaymentProof) bool {
	mac := hmac.New(sha256.New, []byte(c.cfg.KeySecret))
	mac.Write([]byte(proof.OrderID + "|" + proof.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(proof.Signature)) == 1
}
