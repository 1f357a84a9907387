package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spicebloom/storefront/internal/service"
	"github.com/spicebloom/storefront/pkg/httputil"
	"github.com/spicebloom/storefront/pkg/pagination"
)

// WishlistHandler handles HTTP requests for wishlists.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// ListWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	items, total, err := h.service.List(r.Context(), userIDFromContext(r.Context()), params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(items, total, params))
}

// AddToWishlist handles PUT /api/v1/wishlist/{productId}
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	productID := wishlistProductID(w, r)
	if productID == "" {
		return
	}

	if err := h.service.Add(r.Context(), userIDFromContext(r.Context()), productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "added"}})
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID := wishlistProductID(w, r)
	if productID == "" {
		return
	}

	if err := h.service.Remove(r.Context(), userIDFromContext(r.Context()), productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}

// CheckWishlist handles GET /api/v1/wishlist/{productId}
func (h *WishlistHandler) CheckWishlist(w http.ResponseWriter, r *http.Request) {
	productID := wishlistProductID(w, r)
	if productID == "" {
		return
	}

	exists, err := h.service.Contains(r.Context(), userIDFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"in_wishlist": exists}})
}

func wishlistProductID(w http.ResponseWriter, r *http.Request) string {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
	}
	return productID
}
