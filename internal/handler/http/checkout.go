package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/gateway"
	"github.com/spicebloom/storefront/internal/service"
	"github.com/spicebloom/storefront/pkg/httputil"
	"github.com/spicebloom/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout wizard.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// SelectAddressRequest is the JSON request body for selecting a shipping
// address from the address book.
type SelectAddressRequest struct {
	AddressID string `json:"address_id" validate:"required"`
}

// SelectPaymentMethodRequest is the JSON request body for selecting the
// payment method. Details carries the raw per-method fields; only the
// non-sensitive parts are persisted on the session.
type SelectPaymentMethodRequest struct {
	Method  string                 `json:"method" validate:"required"`
	Details *domain.PaymentDetails `json:"details"`
}

// ConfirmPaymentRequest is the JSON request body carrying the hosted
// gateway's payment proof.
type ConfirmPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// --- Handlers ---

// StartCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Start(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: session})
}

// GetCheckout handles GET /api/v1/checkout/{id}
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	session, err := h.service.Get(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SelectAddress handles PUT /api/v1/checkout/{id}/address
func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req SelectAddressRequest
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

	session, err := h.service.SelectAddress(r.Context(), userIDFromContext(r.Context()), id, req.AddressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// ClearAddress handles DELETE /api/v1/checkout/{id}/address
func (h *CheckoutHandler) ClearAddress(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	session, err := h.service.ClearAddressSelection(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SelectPaymentMethod handles PUT /api/v1/checkout/{id}/payment
func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req SelectPaymentMethodRequest
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

	session, err := h.service.SelectPaymentMethod(r.Context(), userIDFromContext(r.Context()), id, req.Method, req.Details)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// AdvanceStep handles POST /api/v1/checkout/{id}/advance
func (h *CheckoutHandler) AdvanceStep(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	session, err := h.service.Advance(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// RetreatStep handles POST /api/v1/checkout/{id}/back
func (h *CheckoutHandler) RetreatStep(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	session, err := h.service.Back(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SubmitCheckout handles POST /api/v1/checkout/{id}/submit
func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	out, err := h.service.Submit(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: out})
}

// ConfirmPayment handles POST /api/v1/checkout/{id}/confirm
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if id == "" {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ConfirmPaymentRequest
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

	proof := gateway.PaymentProof{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	}

	session, err := h.service.ConfirmGatewayPayment(r.Context(), userIDFromContext(r.Context()), id, proof)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// sessionID pulls the session id URL param, writing a 400 when absent.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "checkout session id is required"},
		})
	}
	return id
}
