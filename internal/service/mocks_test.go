package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/event"
	"github.com/spicebloom/storefront/internal/gateway"
	"github.com/spicebloom/storefront/internal/orderclient"
	"github.com/spicebloom/storefront/internal/provider"
	pkgkafka "github.com/spicebloom/storefront/pkg/kafka"
)

// --- Mock Cart Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock Address Repository ---

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Address), args.Error(1)
}

func (m *mockAddressRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// --- Mock Checkout Repository ---

type mockCheckoutRepository struct {
	mock.Mock
}

func (m *mockCheckoutRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockCheckoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

func (m *mockCheckoutRepository) Update(ctx context.Context, session *domain.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// --- Mock Wallet Charger ---

type mockWalletCharger struct {
	mock.Mock
}

func (m *mockWalletCharger) Balance(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *mockWalletCharger) Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *mockWalletCharger) Refund(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// --- Mock Gateway Client ---

type mockGatewayClient struct {
	mock.Mock
}

func (m *mockGatewayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}

func (m *mockGatewayClient) CheckoutParams(order *gateway.Order) gateway.CheckoutParams {
	args := m.Called(order)
	return args.Get(0).(gateway.CheckoutParams)
}

func (m *mockGatewayClient) VerifySignature(proof gateway.PaymentProof) bool {
	args := m.Called(proof)
	return args.Bool(0)
}

// --- Mock Charge Provider ---

type mockChargeProvider struct {
	mock.Mock
}

func (m *mockChargeProvider) Name() string {
	return "mock"
}

func (m *mockChargeProvider) Charge(ctx context.Context, input *provider.ChargeInput) (*provider.ChargeResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.ChargeResult), args.Error(1)
}

func (m *mockChargeProvider) Refund(ctx context.Context, input *provider.RefundInput) (*provider.RefundResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.RefundResult), args.Error(1)
}

// --- Mock Order Submitter ---

type mockOrderSubmitter struct {
	mock.Mock
}

func (m *mockOrderSubmitter) Create(ctx context.Context, sub *orderclient.Submission) (*orderclient.Order, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderclient.Order), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testPricing() domain.PricingConfig {
	return domain.PricingConfig{
		FreeShippingThreshold: 100_000,
		FlatShippingFee:       10_000,
		TaxRateBasisPoints:    500,
	}
}
