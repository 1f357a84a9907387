package repository

import (
	"context"

	"github.com/spicebloom/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its user ID.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for the user.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by the user ID.
	Delete(ctx context.Context, userID string) error
}

// AddressRepository defines the interface for address book persistence.
type AddressRepository interface {
	// Create inserts a new address into the store.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByUser returns all addresses for a user in store order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Address, error)

	// Delete removes an address owned by the given user.
	Delete(ctx context.Context, userID, id string) error
}

// CheckoutRepository defines the interface for checkout session persistence.
type CheckoutRepository interface {
	// Create inserts a new checkout session into the store.
	Create(ctx context.Context, session *domain.CheckoutSession) error

	// GetByID retrieves a checkout session by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error)

	// Update modifies an existing checkout session in the store.
	Update(ctx context.Context, session *domain.CheckoutSession) error
}

// WalletRepository defines the interface for wallet balance and ledger
// persistence. All balance changes write a ledger entry in the same
// transaction.
type WalletRepository interface {
	// GetOrCreate returns the wallet for a user, creating a zero-balance
	// wallet if none exists.
	GetOrCreate(ctx context.Context, userID string) (*domain.Wallet, error)

	// Credit adds amount to the wallet balance and records a ledger entry.
	Credit(ctx context.Context, userID string, amount int64, reference, txType string) (*domain.Wallet, error)

	// Debit subtracts amount from the wallet balance iff the balance covers
	// it, recording a ledger entry. Returns ErrInsufficientBalance otherwise.
	Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error)

	// RecordPendingTopUp inserts a pending top-up ledger entry.
	RecordPendingTopUp(ctx context.Context, tx *domain.WalletTransaction) error

	// SettleTopUp marks the pending top-up with the given reference as
	// succeeded and credits its amount, atomically. Idempotent: settling an
	// already-settled reference returns the wallet unchanged. The returned
	// transaction is the settled ledger entry.
	SettleTopUp(ctx context.Context, userID, reference string) (*domain.Wallet, *domain.WalletTransaction, error)

	// ListTransactions returns a page of ledger entries, newest first, with
	// the total count.
	ListTransactions(ctx context.Context, userID string, page, perPage int) ([]*domain.WalletTransaction, int, error)
}

// WishlistRepository defines the interface for wishlist persistence operations.
type WishlistRepository interface {
	// Add inserts a product into the user's wishlist (idempotent).
	Add(ctx context.Context, userID, productID string) error

	// Remove deletes a product from the user's wishlist.
	Remove(ctx context.Context, userID, productID string) error

	// List returns a paginated list of wishlist items for the user and the total count.
	List(ctx context.Context, userID string, page, perPage int) ([]*domain.WishlistItem, int, error)

	// Exists checks whether a product is in the user's wishlist.
	Exists(ctx context.Context, userID, productID string) (bool, error)
}
