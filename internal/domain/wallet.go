package domain

import "time"

// Wallet transaction types.
const (
	WalletTxTypeCredit = "credit"
	WalletTxTypeDebit  = "debit"
	WalletTxTypeTopUp  = "topup"
)

// Wallet transaction statuses.
const (
	WalletTxStatusPending   = "pending"
	WalletTxStatusSucceeded = "succeeded"
	WalletTxStatusFailed    = "failed"
)

// Wallet is a user's prepaid store balance (in paise), usable as a payment
// method distinct from external digital wallets.
type Wallet struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletTransaction is one ledger entry against a wallet. Reference ties the
// entry to its origin: a gateway order id for top-ups, a checkout submission
// key for debits and refunds.
type WalletTransaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
