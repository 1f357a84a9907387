package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/gateway"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
	"github.com/spicebloom/storefront/pkg/httpclient"
)

// ---------------------------------------------------------------------------
// Wallet repository mock
// ---------------------------------------------------------------------------

type mockWalletRepository struct {
	mock.Mock
}

func (m *mockWalletRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *mockWalletRepository) Credit(ctx context.Context, userID string, amount int64, reference, txType string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount, reference, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *mockWalletRepository) Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *mockWalletRepository) RecordPendingTopUp(ctx context.Context, tx *domain.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockWalletRepository) SettleTopUp(ctx context.Context, userID, reference string) (*domain.Wallet, *domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.Get(1).(*domain.WalletTransaction), args.Error(2)
}

func (m *mockWalletRepository) ListTransactions(ctx context.Context, userID string, page, perPage int) ([]*domain.WalletTransaction, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.WalletTransaction), args.Int(1), args.Error(2)
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

const walletTestSecret = "rzp_test_secret"

func newWalletService(repo *mockWalletRepository, gatewayURL string) *WalletService {
	gw := gateway.NewClient(gateway.Config{
		KeyID:     "rzp_test_key",
		KeySecret: walletTestSecret,
		BaseURL:   gatewayURL,
	}, httpclient.New(httpclient.DefaultConfig()), newTestLogger())
	return NewWalletService(repo, gw, newTestEventProducer(), newTestLogger())
}

func signWalletProof(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(walletTestSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestWalletService_Balance_CreatesOnFirstRead(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	repo.On("GetOrCreate", mock.Anything, "u-1").Return(&domain.Wallet{UserID: "u-1", Balance: 0}, nil)

	wallet, err := svc.Balance(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), wallet.Balance)
	repo.AssertExpectations(t)
}

func TestWalletService_CreateTopUpOrder_RecordsPendingEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Amount  int64  `json:"amount"`
			Receipt string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(50_000), req.Amount)
		assert.Equal(t, "wallet-topup-u-1", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gateway.Order{
			ID:       "order_topup_1",
			Amount:   req.Amount,
			Currency: "INR",
			Status:   "created",
		})
	}))
	defer srv.Close()

	repo := new(mockWalletRepository)
	svc := newWalletService(repo, srv.URL)

	repo.On("RecordPendingTopUp", mock.Anything, mock.MatchedBy(func(tx *domain.WalletTransaction) bool {
		return tx.UserID == "u-1" &&
			tx.Type == domain.WalletTxTypeTopUp &&
			tx.Amount == 50_000 &&
			tx.Reference == "order_topup_1" &&
			tx.Status == domain.WalletTxStatusPending
	})).Return(nil)

	out, err := svc.CreateTopUpOrder(context.Background(), "u-1", 50_000)
	require.NoError(t, err)
	assert.Equal(t, "order_topup_1", out.GatewayOrderID)
	assert.Equal(t, int64(50_000), out.Amount)
	assert.Equal(t, "order_topup_1", out.Checkout.OrderID)
	repo.AssertExpectations(t)
}

func TestWalletService_CreateTopUpOrder_NonPositiveAmount(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	_, err := svc.CreateTopUpOrder(context.Background(), "u-1", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "RecordPendingTopUp")
}

func TestWalletService_VerifyTopUp_Settles(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	proof := gateway.PaymentProof{
		OrderID:   "order_topup_1",
		PaymentID: "pay_1",
		Signature: signWalletProof("order_topup_1", "pay_1"),
	}

	repo.On("SettleTopUp", mock.Anything, "u-1", "order_topup_1").Return(
		&domain.Wallet{UserID: "u-1", Balance: 50_000},
		&domain.WalletTransaction{ID: "wt-1", Amount: 50_000, Status: domain.WalletTxStatusSucceeded},
		nil,
	)

	wallet, err := svc.VerifyTopUp(context.Background(), "u-1", proof)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), wallet.Balance)
	repo.AssertExpectations(t)
}

func TestWalletService_VerifyTopUp_BadSignature(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	proof := gateway.PaymentProof{
		OrderID:   "order_topup_1",
		PaymentID: "pay_1",
		Signature: "bogus",
	}

	_, err := svc.VerifyTopUp(context.Background(), "u-1", proof)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentFailed))
	repo.AssertNotCalled(t, "SettleTopUp")
}

func TestWalletService_VerifyTopUp_IncompleteProof(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	_, err := svc.VerifyTopUp(context.Background(), "u-1", gateway.PaymentProof{OrderID: "order_topup_1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestWalletService_Refund_CreditsWithSameReference(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	repo.On("Credit", mock.Anything, "u-1", int64(52_000), "sub-key-1", domain.WalletTxTypeCredit).
		Return(&domain.Wallet{UserID: "u-1", Balance: 60_000}, nil)

	wallet, err := svc.Refund(context.Background(), "u-1", 52_000, "sub-key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(60_000), wallet.Balance)
	repo.AssertExpectations(t)
}

func TestWalletService_Debit_PropagatesInsufficientBalance(t *testing.T) {
	repo := new(mockWalletRepository)
	svc := newWalletService(repo, "http://gateway.invalid")

	repo.On("Debit", mock.Anything, "u-1", int64(52_000), "sub-key-1").
		Return(nil, apperrors.InsufficientBalance("wallet balance does not cover the order total"))

	_, err := svc.Debit(context.Background(), "u-1", 52_000, "sub-key-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientBalance))
}
