package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/service"
	"github.com/spicebloom/storefront/pkg/httputil"
	"github.com/spicebloom/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=500"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=10"`
	ImageRef  string `json:"image_ref"`
}

// SetQuantityRequest is the JSON request body for setting a line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse wraps a cart and the quantity-cap warning raised when an add
// was silently clamped to the per-line maximum.
type CartResponse struct {
	Cart    *domain.Cart `json:"cart"`
	Warning string       `json:"warning,omitempty"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CartResponse{Cart: cart}})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		ImageRef:  req.ImageRef,
	}

	cart, capped, err := h.service.AddItem(r.Context(), userIDFromContext(r.Context()), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := CartResponse{Cart: cart}
	if capped {
		resp.Warning = "quantity limited to 10 per item"
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// SetItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.SetQuantity(r.Context(), userIDFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CartResponse{Cart: cart}})
}

// DecreaseItemQuantity handles POST /api/v1/cart/items/{productId}/decrease
func (h *CartHandler) DecreaseItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	cart, err := h.service.DecreaseQuantity(r.Context(), userIDFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CartResponse{Cart: cart}})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userIDFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CartResponse{Cart: cart}})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), userIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
