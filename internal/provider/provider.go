// Package provider defines the interface for charging card, UPI and external
// wallet payments collected directly during checkout submission.
package provider

import (
	"context"
)

// Charge result statuses.
const (
	ChargeSucceeded = "succeeded"
	ChargeFailed    = "failed"
)

// ChargeInput holds the parameters for charging a payment. Reference is the
// checkout submission key, passed through for provider-side reconciliation.
type ChargeInput struct {
	Amount    int64
	Currency  string
	Method    string
	Reference string
	Details   map[string]string
}

// ChargeResult holds the outcome of a charge attempt.
type ChargeResult struct {
	ProviderPaymentID string
	Status            string
	FailureReason     string
}

// RefundInput holds the parameters for refunding a captured charge.
type RefundInput struct {
	ProviderPaymentID string
	Amount            int64
	Currency          string
	Reason            string
}

// RefundResult holds the outcome of a refund attempt.
type RefundResult struct {
	ProviderRefundID string
	Status           string
	FailureReason    string
}

// Provider is a payment provider integration.
type Provider interface {
	// Name returns the provider name (e.g., "mock").
	Name() string

	// Charge captures a payment through the provider.
	Charge(ctx context.Context, input *ChargeInput) (*ChargeResult, error)

	// Refund reverses a captured charge.
	Refund(ctx context.Context, input *RefundInput) (*RefundResult, error)
}
