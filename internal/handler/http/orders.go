package http

import (
	"log/slog"
	"net/http"

	"github.com/spicebloom/storefront/internal/orderclient"
	"github.com/spicebloom/storefront/pkg/httputil"
	"github.com/spicebloom/storefront/pkg/pagination"
)

// OrderHandler proxies order history reads to the order service. Order
// creation goes through the checkout flow, never directly through here.
type OrderHandler struct {
	client *orderclient.Client
	logger *slog.Logger
}

// NewOrderHandler creates a new order history HTTP handler.
func NewOrderHandler(client *orderclient.Client, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		client: client,
		logger: logger,
	}
}

// ListMyOrders handles GET /api/v1/orders
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	list, err := h.client.ListByUser(r.Context(), userIDFromContext(r.Context()), params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(list.Orders, list.TotalCount, params))
}
