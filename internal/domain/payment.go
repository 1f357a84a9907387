package domain

import (
	"regexp"
	"strings"
)

// Payment method constants. Exactly one method is active on a checkout
// session at a time.
const (
	PaymentMethodCard        = "card"
	PaymentMethodUPI         = "upi"
	PaymentMethodWallet      = "wallet"
	PaymentMethodStoreWallet = "store_wallet"
	PaymentMethodCOD         = "cod"
	PaymentMethodRazorpay    = "razorpay"
)

// ValidPaymentMethods returns the closed set of supported payment methods.
func ValidPaymentMethods() []string {
	return []string{
		PaymentMethodCard,
		PaymentMethodUPI,
		PaymentMethodWallet,
		PaymentMethodStoreWallet,
		PaymentMethodCOD,
		PaymentMethodRazorpay,
	}
}

// IsValidPaymentMethod checks whether the given method is supported.
func IsValidPaymentMethod(method string) bool {
	for _, m := range ValidPaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// PaymentDetails carries the raw per-method fields collected on the payment
// step. Only the fields required by the active method are read; the rest are
// ignored. Card data never leaves this struct: the persisted selection keeps
// the last four digits and the holder name only.
type PaymentDetails struct {
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
	CardHolder string `json:"card_holder,omitempty"`

	UPIID string `json:"upi_id,omitempty"`

	WalletProvider string `json:"wallet_provider,omitempty"`
}

// PaymentSelection is the persisted, non-sensitive payment choice on a
// checkout session. Switching methods replaces the whole selection, so stale
// fields from a previous method never survive.
type PaymentSelection struct {
	Method         string `json:"method"`
	CardLast4      string `json:"card_last4,omitempty"`
	CardHolder     string `json:"card_holder,omitempty"`
	UPIID          string `json:"upi_id,omitempty"`
	WalletProvider string `json:"wallet_provider,omitempty"`
}

var cardNumberPattern = regexp.MustCompile(`^\d{16}$`)

// NormalizeCardNumber strips all whitespace from a card number and reports
// whether the result is exactly 16 digits.
func NormalizeCardNumber(raw string) (string, bool) {
	number := strings.Join(strings.Fields(raw), "")
	return number, cardNumberPattern.MatchString(number)
}
