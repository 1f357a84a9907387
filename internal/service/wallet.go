package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/event"
	"github.com/spicebloom/storefront/internal/gateway"
	"github.com/spicebloom/storefront/internal/repository"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// WalletService implements the business logic for the store wallet: balance
// reads, gateway-backed top-ups, and the debits and refunds the checkout
// flow makes against the balance.
type WalletService struct {
	repo     repository.WalletRepository
	gateway  *gateway.Client
	producer *event.Producer
	logger   *slog.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(repo repository.WalletRepository, gw *gateway.Client, producer *event.Producer, logger *slog.Logger) *WalletService {
	return &WalletService{
		repo:     repo,
		gateway:  gw,
		producer: producer,
		logger:   logger,
	}
}

// TopUpOrderOutput holds the gateway order and widget parameters for a
// wallet top-up.
type TopUpOrderOutput struct {
	GatewayOrderID string                 `json:"gateway_order_id"`
	Amount         int64                  `json:"amount"`
	Currency       string                 `json:"currency"`
	Checkout       gateway.CheckoutParams `json:"checkout"`
}

// Balance returns the user's wallet, creating an empty one on first read.
func (s *WalletService) Balance(ctx context.Context, userID string) (*domain.Wallet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	wallet, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return wallet, nil
}

// CreateTopUpOrder registers a gateway order for the given amount and records
// a pending top-up referencing it. The credit lands only when VerifyTopUp
// sees a valid payment proof for the order.
func (s *WalletService) CreateTopUpOrder(ctx context.Context, userID string, amount int64) (*TopUpOrderOutput, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if amount <= 0 {
		return nil, apperrors.InvalidInput("top-up amount must be greater than 0")
	}

	order, err := s.gateway.CreateOrder(ctx, amount, defaultCurrency, "wallet-topup-"+userID)
	if err != nil {
		return nil, fmt.Errorf("create gateway top-up order: %w", err)
	}

	if err := s.repo.RecordPendingTopUp(ctx, &domain.WalletTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.WalletTxTypeTopUp,
		Amount:    amount,
		Reference: order.ID,
		Status:    domain.WalletTxStatusPending,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("record pending top-up: %w", err)
	}

	s.logger.InfoContext(ctx, "wallet top-up order created",
		slog.String("user_id", userID),
		slog.String("gateway_order_id", order.ID),
		slog.Int64("amount", amount),
	)

	return &TopUpOrderOutput{
		GatewayOrderID: order.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Checkout:       s.gateway.CheckoutParams(order),
	}, nil
}

// VerifyTopUp checks a gateway payment proof and, when authentic, settles the
// pending top-up it references. Settling is idempotent, so a replayed proof
// cannot credit the balance twice.
func (s *WalletService) VerifyTopUp(ctx context.Context, userID string, proof gateway.PaymentProof) (*domain.Wallet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if proof.OrderID == "" || proof.PaymentID == "" || proof.Signature == "" {
		return nil, apperrors.InvalidInput("payment proof is incomplete")
	}

	if !s.gateway.VerifySignature(proof) {
		s.logger.WarnContext(ctx, "wallet top-up signature verification failed",
			slog.String("user_id", userID),
			slog.String("gateway_order_id", proof.OrderID),
		)
		return nil, apperrors.PaymentFailed("payment signature verification failed")
	}

	wallet, entry, err := s.repo.SettleTopUp(ctx, userID, proof.OrderID)
	if err != nil {
		return nil, fmt.Errorf("settle top-up: %w", err)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishWalletCredited(ctx, wallet, entry.Amount, proof.OrderID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wallet.credited event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wallet top-up settled",
		slog.String("user_id", userID),
		slog.String("gateway_order_id", proof.OrderID),
		slog.Int64("balance", wallet.Balance),
	)

	return wallet, nil
}

// Debit charges the wallet for a checkout submission. The reference is the
// session's submission key.
func (s *WalletService) Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	wallet, err := s.repo.Debit(ctx, userID, amount, reference)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "wallet debited",
		slog.String("user_id", userID),
		slog.Int64("amount", amount),
		slog.String("reference", reference),
		slog.Int64("balance", wallet.Balance),
	)

	return wallet, nil
}

// Refund returns a previously debited amount to the wallet. Used to unwind a
// wallet charge when the order submission that followed it fails.
func (s *WalletService) Refund(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	wallet, err := s.repo.Credit(ctx, userID, amount, reference, domain.WalletTxTypeCredit)
	if err != nil {
		return nil, err
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishWalletCredited(ctx, wallet, amount, reference); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wallet.credited event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wallet refunded",
		slog.String("user_id", userID),
		slog.Int64("amount", amount),
		slog.String("reference", reference),
	)

	return wallet, nil
}

// Transactions returns one page of the user's wallet ledger.
func (s *WalletService) Transactions(ctx context.Context, userID string, page, perPage int) ([]*domain.WalletTransaction, int, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("user id is required")
	}

	txs, total, err := s.repo.ListTransactions(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet transactions: %w", err)
	}

	return txs, total, nil
}
