package domain

import "time"

// Checkout wizard steps. Transitions are forward/backward only, one step at
// a time, and advancing is gated on the current step's validation.
const (
	StepShipping = 1
	StepPayment  = 2
	StepReview   = 3
)

// Checkout session status constants.
const (
	CheckoutStatusActive         = "active"
	CheckoutStatusPaymentPending = "payment_pending"
	CheckoutStatusCompleted      = "completed"
	CheckoutStatusFailed         = "failed"
	CheckoutStatusExpired        = "expired"
)

// CheckoutSession is the persisted state of one checkout wizard run.
// Totals are refreshed from the live cart on every read and again at
// submission; the stored copy is a display snapshot, not a source of truth.
type CheckoutSession struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Step              int              `json:"step"`
	Status            string           `json:"status"`
	SelectedAddressID string           `json:"selected_address_id,omitempty"`
	ShippingAddress   *Address         `json:"shipping_address,omitempty"`
	Payment           PaymentSelection `json:"payment"`
	Totals            Totals           `json:"totals"`
	// SubmissionKey is minted once at session creation and carried on every
	// order submission attempt so retried submissions deduplicate server-side.
	SubmissionKey  string    `json:"submission_key"`
	GatewayOrderID string    `json:"gateway_order_id,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsExpired checks whether the session has passed its expiry time.
func (s *CheckoutSession) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// IsTerminal returns true if the session is in a final state.
func (s *CheckoutSession) IsTerminal() bool {
	return s.Status == CheckoutStatusCompleted ||
		s.Status == CheckoutStatusFailed ||
		s.Status == CheckoutStatusExpired
}

// AdvanceStep moves the wizard forward, clamped at the review step.
func (s *CheckoutSession) AdvanceStep() {
	if s.Step < StepReview {
		s.Step++
	}
}

// RetreatStep moves the wizard backward, clamped at the shipping step.
// Going back always succeeds.
func (s *CheckoutSession) RetreatStep() {
	if s.Step > StepShipping {
		s.Step--
	}
}

// ValidCheckoutStatuses returns the set of valid session statuses.
func ValidCheckoutStatuses() []string {
	return []string{
		CheckoutStatusActive,
		CheckoutStatusPaymentPending,
		CheckoutStatusCompleted,
		CheckoutStatusFailed,
		CheckoutStatusExpired,
	}
}
