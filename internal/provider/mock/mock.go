// Package mock implements a deterministic payment provider for development
// and test environments where no real acquirer is configured. Outcomes are
// driven by the charge amount so flows can exercise the declined branch:
// amounts whose paise value ends in 99 are declined, everything else is
// approved.
package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spicebloom/storefront/internal/provider"
)

// declineSuffix marks amounts the mock refuses, sandbox style.
const declineSuffix = 99

// Provider is a deterministic mock payment provider.
type Provider struct{}

// NewProvider creates a new mock payment provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// Charge simulates capturing a payment. Amounts ending in 99 paise decline.
func (p *Provider) Charge(_ context.Context, input *provider.ChargeInput) (*provider.ChargeResult, error) {
	// Simulate acquirer latency.
	time.Sleep(50 * time.Millisecond)

	if input.Amount%100 == declineSuffix {
		return &provider.ChargeResult{
			Status:        provider.ChargeFailed,
			FailureReason: "card declined by issuer",
		}, nil
	}

	return &provider.ChargeResult{
		ProviderPaymentID: "mock_pay_" + uuid.New().String(),
		Status:            provider.ChargeSucceeded,
	}, nil
}

// Refund simulates reversing a captured charge. Refunds always succeed.
func (p *Provider) Refund(_ context.Context, _ *provider.RefundInput) (*provider.RefundResult, error) {
	time.Sleep(50 * time.Millisecond)

	return &provider.RefundResult{
		ProviderRefundID: "mock_ref_" + uuid.New().String(),
		Status:           provider.ChargeSucceeded,
	}, nil
}
