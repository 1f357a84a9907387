package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spicebloom/storefront/internal/domain"
	pkgkafka "github.com/spicebloom/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
var (
	TopicCartUpdated       = pkgkafka.Topic("cart", "updated")
	TopicCartCleared       = pkgkafka.Topic("cart", "cleared")
	TopicCheckoutCompleted = pkgkafka.Topic("checkout", "completed")
	TopicCheckoutFailed    = pkgkafka.Topic("checkout", "failed")
	TopicWalletCredited    = pkgkafka.Topic("wallet", "credited")
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeCheckout = "checkout"
	AggregateTypeWallet   = "wallet"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
	Currency  string `json:"currency"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	GrandTotal    int64  `json:"grand_total"`
	Currency      string `json:"currency"`
}

// CheckoutFailedData is the payload for a checkout.failed event.
type CheckoutFailedData struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	FailureReason string `json:"failure_reason"`
}

// WalletCreditedData is the payload for a wallet.credited event.
type WalletCreditedData struct {
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
	Reference string `json:"reference"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		UserID:    cart.UserID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		Currency:  cart.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	data := CartUpdatedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutCompletedData{
		SessionID:     session.ID,
		UserID:        session.UserID,
		OrderID:       session.OrderID,
		PaymentMethod: session.Payment.Method,
		GrandTotal:    session.Totals.GrandTotal,
		Currency:      "INR",
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("session_id", session.ID),
		slog.String("order_id", session.OrderID),
	)

	return nil
}

// PublishCheckoutFailed publishes a checkout.failed event.
func (p *Producer) PublishCheckoutFailed(ctx context.Context, session *domain.CheckoutSession) error {
	data := CheckoutFailedData{
		SessionID:     session.ID,
		UserID:        session.UserID,
		FailureReason: session.FailureReason,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutFailed, session.ID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.failed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutFailed, event); err != nil {
		return fmt.Errorf("publish checkout.failed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.failed event",
		slog.String("session_id", session.ID),
		slog.String("failure_reason", session.FailureReason),
	)

	return nil
}

// PublishWalletCredited publishes a wallet.credited event.
func (p *Producer) PublishWalletCredited(ctx context.Context, wallet *domain.Wallet, amount int64, reference string) error {
	data := WalletCreditedData{
		UserID:    wallet.UserID,
		Amount:    amount,
		Balance:   wallet.Balance,
		Reference: reference,
	}

	event, err := pkgkafka.NewEvent(TopicWalletCredited, wallet.UserID, AggregateTypeWallet, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wallet.credited event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWalletCredited, event); err != nil {
		return fmt.Errorf("publish wallet.credited event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wallet.credited event",
		slog.String("user_id", wallet.UserID),
		slog.Int64("amount", amount),
	)

	return nil
}
