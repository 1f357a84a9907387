package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spicebloom/storefront/internal/gateway"
	"github.com/spicebloom/storefront/internal/service"
	"github.com/spicebloom/storefront/pkg/httputil"
	"github.com/spicebloom/storefront/pkg/pagination"
	"github.com/spicebloom/storefront/pkg/validator"
)

// WalletHandler handles HTTP requests for the store wallet.
type WalletHandler struct {
	service *service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new wallet HTTP handler.
func NewWalletHandler(svc *service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// TopUpRequest is the JSON request body for creating a wallet top-up order.
type TopUpRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// VerifyTopUpRequest is the JSON request body carrying the gateway payment
// proof for a wallet top-up.
type VerifyTopUpRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// --- Handlers ---

// GetBalance handles GET /api/v1/wallet
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.Balance(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wallet})
}

// CreateTopUp handles POST /api/v1/wallet/topup
func (h *WalletHandler) CreateTopUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req TopUpRequest
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

	out, err := h.service.CreateTopUpOrder(r.Context(), userIDFromContext(r.Context()), req.Amount)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: out})
}

// VerifyTopUp handles POST /api/v1/wallet/topup/verify
func (h *WalletHandler) VerifyTopUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req VerifyTopUpRequest
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

	wallet, err := h.service.VerifyTopUp(r.Context(), userIDFromContext(r.Context()), proof)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wallet})
}

// ListTransactions handles GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	txs, total, err := h.service.Transactions(r.Context(), userIDFromContext(r.Context()), params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(txs, total, params))
}
