// Package orderclient implements the client for the order service, which owns
// order records after a checkout is submitted.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client calls the order service's REST API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewClient creates a new order service client.
func NewClient(baseURL string, httpClient HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SubmissionItem is one purchased line in an order submission.
type SubmissionItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref,omitempty"`
}

// Submission is the order payload sent to the order service. SubmissionKey is
// minted once per checkout session, so retries of a failed submission carry
// the same key and the order service can deduplicate.
type Submission struct {
	SubmissionKey   string           `json:"submission_key"`
	UserID          string           `json:"user_id"`
	Items           []SubmissionItem `json:"items"`
	ShippingAddress *domain.Address  `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	Currency        string           `json:"currency"`
	Subtotal        int64            `json:"subtotal"`
	ShippingFee     int64            `json:"shipping_fee"`
	Tax             int64            `json:"tax"`
	GrandTotal      int64            `json:"grand_total"`
	PaymentProof    *PaymentProofRef `json:"payment_proof,omitempty"`
}

// PaymentProofRef references a verified gateway payment on the submission.
type PaymentProofRef struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
}

// Order is the order service's record of a placed order.
type Order struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	GrandTotal int64  `json:"grand_total"`
	Currency   string `json:"currency"`
	CreatedAt  string `json:"created_at"`
}

// OrderList is one page of a user's order history.
type OrderList struct {
	Orders     []Order `json:"orders"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
}

// Create submits an order. The submission key doubles as the idempotency key,
// so retrying after a timeout cannot place a duplicate order.
func (c *Client) Create(ctx context.Context, sub *Submission) (*Order, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal order submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", sub.SubmissionKey)

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "order")
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	c.logger.InfoContext(ctx, "order submitted",
		slog.String("order_id", order.ID),
		slog.String("submission_key", sub.SubmissionKey),
		slog.Int64("grand_total", sub.GrandTotal),
	)

	return &order, nil
}

// ListByUser fetches one page of a user's order history.
func (c *Client) ListByUser(ctx context.Context, userID string, page, perPage int) (*OrderList, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create list orders request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "order")
	}

	var list OrderList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode order list response: %w", err)
	}

	return &list, nil
}
